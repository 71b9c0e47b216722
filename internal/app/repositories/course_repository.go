package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yigit/eduverse/internal/app/analytics"
	"github.com/yigit/eduverse/internal/app/models"
	"github.com/yigit/eduverse/internal/pkg/dberrors"
	"github.com/yigit/eduverse/internal/pkg/logger"
)

// ErrCourseAlreadyExists is returned when a course with the same code exists
var ErrCourseAlreadyExists = errors.New("course with this code already exists")

// CourseRepository handles course database operations
type CourseRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// ListCourses returns courses with their instructor ids, ordered by code
func (r *CourseRepository) ListCourses(ctx context.Context, filter analytics.CourseFilter) ([]models.Course, error) {
	q := r.sb.Select(
		"c.id", "c.name", "c.description", "c.credit_hours", "c.enrolled", "c.capacity",
		"COALESCE(array_agg(ci.instructor_id ORDER BY ci.instructor_id) FILTER (WHERE ci.instructor_id IS NOT NULL), '{}')",
	).
		From("courses c").
		LeftJoin("course_instructors ci ON ci.course_id = c.id").
		GroupBy("c.id").
		OrderBy("c.id ASC")
	if filter.IDs != nil {
		q = q.Where(squirrel.Eq{"c.id": filter.IDs})
	}
	if filter.InstructorID != 0 {
		q = q.Where("EXISTS (SELECT 1 FROM course_instructors t WHERE t.course_id = c.id AND t.instructor_id = ?)", filter.InstructorID)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list courses SQL")
		return nil, fmt.Errorf("failed to build list courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying courses: %w", err)
	}
	defer rows.Close()

	courses := []models.Course{}
	for rows.Next() {
		var c models.Course
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreditHours, &c.Enrolled, &c.Capacity, &c.InstructorIDs); err != nil {
			return nil, fmt.Errorf("error scanning course row: %w", err)
		}
		courses = append(courses, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating course rows: %w", err)
	}
	return courses, nil
}

// CreateCourse inserts a course and links its instructors
func (r *CourseRepository) CreateCourse(ctx context.Context, course *models.Course) error {
	sql, args, err := r.sb.Insert("courses").
		Columns("id", "name", "description", "credit_hours", "enrolled", "capacity").
		Values(course.ID, course.Name, course.Description, course.CreditHours, course.Enrolled, course.Capacity).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create course query: %w", err)
	}
	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "courses_pkey") {
			return ErrCourseAlreadyExists
		}
		logger.Error().Err(err).Str("courseID", course.ID).Msg("Error executing create course query")
		return fmt.Errorf("error creating course: %w", err)
	}

	if len(course.InstructorIDs) == 0 {
		return nil
	}
	ins := r.sb.Insert("course_instructors").Columns("course_id", "instructor_id").Suffix("ON CONFLICT DO NOTHING")
	for _, id := range course.InstructorIDs {
		ins = ins.Values(course.ID, id)
	}
	sql, args, err = ins.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build course instructors query: %w", err)
	}
	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error linking instructors to course %s: %w", course.ID, err)
	}
	return nil
}

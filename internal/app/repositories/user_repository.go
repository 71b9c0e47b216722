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

// ErrEmailAlreadyExists is returned when a user with the same email exists
var ErrEmailAlreadyExists = errors.New("email already in use")

// UserRepository handles user database operations
type UserRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// ListUsers returns users with their enrolled course codes, ordered by id
func (r *UserRepository) ListUsers(ctx context.Context, filter analytics.UserFilter) ([]models.User, error) {
	q := r.sb.Select(
		"u.id", "u.name", "u.email", "u.level", "u.role", "u.created_at",
		"COALESCE(array_agg(uc.course_id ORDER BY uc.course_id) FILTER (WHERE uc.course_id IS NOT NULL), '{}')",
	).
		From("users u").
		LeftJoin("user_courses uc ON uc.user_id = u.id").
		GroupBy("u.id").
		OrderBy("u.id ASC")
	if filter.IDs != nil {
		q = q.Where(squirrel.Eq{"u.id": filter.IDs})
	}
	if filter.Role != "" {
		q = q.Where(squirrel.Eq{"u.role": filter.Role})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list users SQL")
		return nil, fmt.Errorf("failed to build list users query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying users: %w", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Level, &u.Role, &u.CreatedAt, &u.Courses); err != nil {
			return nil, fmt.Errorf("error scanning user row: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}
	return users, nil
}

// CreateUser inserts a user and its enrollments and returns the new id
func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) (int64, error) {
	sql, args, err := r.sb.Insert("users").
		Columns("name", "email", "password", "level", "role").
		Values(user.Name, user.Email, user.Password, user.Level, user.Role).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create user query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_email_key") {
			return 0, ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Str("email", user.Email).Msg("Error executing create user query")
		return 0, fmt.Errorf("error creating user: %w", err)
	}

	if len(user.Courses) > 0 {
		ins := r.sb.Insert("user_courses").Columns("user_id", "course_id").Suffix("ON CONFLICT DO NOTHING")
		for _, code := range user.Courses {
			ins = ins.Values(id, code)
		}
		sql, args, err := ins.ToSql()
		if err != nil {
			return 0, fmt.Errorf("failed to build enrollment query: %w", err)
		}
		if _, err := r.db.Exec(ctx, sql, args...); err != nil {
			return 0, fmt.Errorf("error enrolling user %d: %w", id, err)
		}
	}
	return id, nil
}

// CountUsers returns the number of rows in the users table
func (r *UserRepository) CountUsers(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM users").Scan(&n); err != nil {
		return 0, fmt.Errorf("error counting users: %w", err)
	}
	return n, nil
}

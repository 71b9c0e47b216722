package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yigit/eduverse/internal/app/analytics"
	"github.com/yigit/eduverse/internal/app/models"
	"github.com/yigit/eduverse/internal/pkg/logger"
)

// PostRepository handles post database operations
type PostRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewPostRepository creates a new PostRepository
func NewPostRepository(db *pgxpool.Pool) *PostRepository {
	return &PostRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// ListPosts returns posts ordered by id
func (r *PostRepository) ListPosts(ctx context.Context, filter analytics.PostFilter) ([]models.Post, error) {
	q := r.sb.Select("id", "sender_id", "sender_name", "course_id", "title", "body", "type", "answered", "created_at").
		From("posts").
		OrderBy("id ASC")
	if filter.IDs != nil {
		q = q.Where(squirrel.Eq{"id": filter.IDs})
	}
	if filter.CourseID != "" {
		q = q.Where(squirrel.Eq{"course_id": filter.CourseID})
	}
	if filter.SenderID != 0 {
		q = q.Where(squirrel.Eq{"sender_id": filter.SenderID})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list posts SQL")
		return nil, fmt.Errorf("failed to build list posts query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying posts: %w", err)
	}
	defer rows.Close()

	posts := []models.Post{}
	for rows.Next() {
		var p models.Post
		if err := rows.Scan(&p.ID, &p.SenderID, &p.SenderName, &p.CourseID, &p.Title, &p.Body, &p.Type, &p.Answered, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning post row: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating post rows: %w", err)
	}
	return posts, nil
}

// CreatePost inserts a post and returns its id
func (r *PostRepository) CreatePost(ctx context.Context, post *models.Post) (int64, error) {
	sql, args, err := r.sb.Insert("posts").
		Columns("sender_id", "sender_name", "course_id", "title", "body", "type", "answered", "created_at").
		Values(post.SenderID, post.SenderName, post.CourseID, post.Title, post.Body, post.Type, post.Answered,
			createdAtOrNow(post.CreatedAt)).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create post query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Str("courseID", post.CourseID).Msg("Error executing create post query")
		return 0, fmt.Errorf("error creating post: %w", err)
	}
	return id, nil
}

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

// CommentRepository handles comment database operations
type CommentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// ListComments returns comments ordered by id
func (r *CommentRepository) ListComments(ctx context.Context, filter analytics.CommentFilter) ([]models.Comment, error) {
	q := r.sb.Select("id", "post_id", "sender_id", "sender_name", "body", "created_at").
		From("comments").
		OrderBy("id ASC")
	if filter.PostIDs != nil {
		q = q.Where(squirrel.Eq{"post_id": filter.PostIDs})
	}
	if filter.SenderID != 0 {
		q = q.Where(squirrel.Eq{"sender_id": filter.SenderID})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list comments SQL")
		return nil, fmt.Errorf("failed to build list comments query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying comments: %w", err)
	}
	defer rows.Close()

	comments := []models.Comment{}
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.SenderID, &c.SenderName, &c.Body, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning comment row: %w", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comment rows: %w", err)
	}
	return comments, nil
}

// CreateComment inserts a comment and returns its id
func (r *CommentRepository) CreateComment(ctx context.Context, comment *models.Comment) (int64, error) {
	sql, args, err := r.sb.Insert("comments").
		Columns("post_id", "sender_id", "sender_name", "body", "created_at").
		Values(comment.PostID, comment.SenderID, comment.SenderName, comment.Body, createdAtOrNow(comment.CreatedAt)).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create comment query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Int64("postID", comment.PostID).Msg("Error executing create comment query")
		return 0, fmt.Errorf("error creating comment: %w", err)
	}
	return id, nil
}

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

// ReactionRepository handles reaction database operations
type ReactionRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewReactionRepository creates a new ReactionRepository
func NewReactionRepository(db *pgxpool.Pool) *ReactionRepository {
	return &ReactionRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// ListReactions returns reactions ordered by id
func (r *ReactionRepository) ListReactions(ctx context.Context, filter analytics.ReactionFilter) ([]models.Reaction, error) {
	q := r.sb.Select("id", "post_id", "sender_id", "type", "created_at").
		From("reactions").
		OrderBy("id ASC")
	if filter.PostIDs != nil {
		q = q.Where(squirrel.Eq{"post_id": filter.PostIDs})
	}
	if filter.SenderID != 0 {
		q = q.Where(squirrel.Eq{"sender_id": filter.SenderID})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list reactions SQL")
		return nil, fmt.Errorf("failed to build list reactions query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying reactions: %w", err)
	}
	defer rows.Close()

	reactions := []models.Reaction{}
	for rows.Next() {
		var rc models.Reaction
		if err := rows.Scan(&rc.ID, &rc.PostID, &rc.SenderID, &rc.Type, &rc.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning reaction row: %w", err)
		}
		reactions = append(reactions, rc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reaction rows: %w", err)
	}
	return reactions, nil
}

// UpsertReaction records a user's reaction to a post. A second reaction by the
// same user on the same post replaces the type.
func (r *ReactionRepository) UpsertReaction(ctx context.Context, reaction *models.Reaction) (int64, error) {
	sql, args, err := r.sb.Insert("reactions").
		Columns("post_id", "sender_id", "type").
		Values(reaction.PostID, reaction.SenderID, reaction.Type).
		Suffix("ON CONFLICT (post_id, sender_id) DO UPDATE SET type = EXCLUDED.type, created_at = NOW() RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build upsert reaction query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Int64("postID", reaction.PostID).Msg("Error executing upsert reaction query")
		return 0, fmt.Errorf("error upserting reaction: %w", err)
	}
	return id, nil
}

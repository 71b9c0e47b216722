package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/yigit/eduverse/internal/app/models"
	appRepos "github.com/yigit/eduverse/internal/app/repositories"
	"github.com/yigit/eduverse/internal/app/repositories/inmem"
	"github.com/yigit/eduverse/internal/pkg/auth"
)

// DemoPassword is the plain text password of every seeded account
const DemoPassword = "password123"

// Store is the write side needed to insert the demo dataset
type Store interface {
	CountUsers(ctx context.Context) (int64, error)
	CreateUser(ctx context.Context, user *models.User) (int64, error)
	CreateCourse(ctx context.Context, course *models.Course) error
	CreatePost(ctx context.Context, post *models.Post) (int64, error)
	CreateComment(ctx context.Context, comment *models.Comment) (int64, error)
	UpsertReaction(ctx context.Context, reaction *models.Reaction) (int64, error)
}

// RepositoryStore adapts the PostgreSQL repositories to Store
type RepositoryStore struct {
	*appRepos.UserRepository
	*appRepos.CourseRepository
	*appRepos.PostRepository
	*appRepos.CommentRepository
	*appRepos.ReactionRepository
}

// NewRepositoryStore creates a Store backed by repos
func NewRepositoryStore(repos *appRepos.Repositories) *RepositoryStore {
	return &RepositoryStore{
		UserRepository:     repos.UserRepository,
		CourseRepository:   repos.CourseRepository,
		PostRepository:     repos.PostRepository,
		CommentRepository:  repos.CommentRepository,
		ReactionRepository: repos.ReactionRepository,
	}
}

// CreateDefaultData inserts the demo dataset when the users table is empty.
// It reports whether anything was inserted.
func CreateDefaultData(ctx context.Context, store Store, lgr zerolog.Logger) (bool, error) {
	count, err := store.CountUsers(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		lgr.Info().Int64("users", count).Msg("Users already present, skipping demo data")
		return false, nil
	}

	lgr.Info().Msg("Creating demo data...")
	if err := Apply(ctx, store, Demo()); err != nil {
		return false, err
	}
	lgr.Info().Msg("Demo data created")
	return true, nil
}

// Apply inserts f into store. Ids in f are local to the fixture; they are
// remapped to the ids the store assigns.
func Apply(ctx context.Context, store Store, f inmem.Fixture) error {
	hash, err := auth.HashPassword(DemoPassword)
	if err != nil {
		return err
	}

	userIDs := make(map[int64]int64, len(f.Users))
	for _, u := range f.Users {
		user := u
		user.Password = hash
		id, err := store.CreateUser(ctx, &user)
		if err != nil {
			if errors.Is(err, appRepos.ErrEmailAlreadyExists) {
				continue
			}
			return fmt.Errorf("error creating user %s: %w", u.Email, err)
		}
		userIDs[u.ID] = id
	}

	for _, c := range f.Courses {
		course := c
		course.InstructorIDs = remapAll(userIDs, c.InstructorIDs)
		if err := store.CreateCourse(ctx, &course); err != nil && !errors.Is(err, appRepos.ErrCourseAlreadyExists) {
			return fmt.Errorf("error creating course %s: %w", c.ID, err)
		}
	}

	postIDs := make(map[int64]int64, len(f.Posts))
	for _, p := range f.Posts {
		post := p
		post.SenderID = remap(userIDs, p.SenderID)
		id, err := store.CreatePost(ctx, &post)
		if err != nil {
			return fmt.Errorf("error creating post %q: %w", p.Title, err)
		}
		postIDs[p.ID] = id
	}

	for _, c := range f.Comments {
		comment := c
		comment.PostID = remap(postIDs, c.PostID)
		comment.SenderID = remap(userIDs, c.SenderID)
		if _, err := store.CreateComment(ctx, &comment); err != nil {
			return fmt.Errorf("error creating comment on post %d: %w", c.PostID, err)
		}
	}

	for _, r := range f.Reactions {
		reaction := r
		reaction.PostID = remap(postIDs, r.PostID)
		reaction.SenderID = remap(userIDs, r.SenderID)
		if _, err := store.UpsertReaction(ctx, &reaction); err != nil {
			return fmt.Errorf("error creating reaction on post %d: %w", r.PostID, err)
		}
	}
	return nil
}

// remap keeps ids that were never inserted so dangling references survive as dangling
func remap(ids map[int64]int64, id int64) int64 {
	if mapped, ok := ids[id]; ok {
		return mapped
	}
	return id
}

func remapAll(ids map[int64]int64, list []int64) []int64 {
	out := make([]int64, 0, len(list))
	for _, id := range list {
		out = append(out, remap(ids, id))
	}
	return out
}

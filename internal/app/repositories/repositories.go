package repositories

import (
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yigit/eduverse/internal/app/analytics"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository     *UserRepository
	CourseRepository   *CourseRepository
	PostRepository     *PostRepository
	CommentRepository  *CommentRepository
	ReactionRepository *ReactionRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:     NewUserRepository(db),
		CourseRepository:   NewCourseRepository(db),
		PostRepository:     NewPostRepository(db),
		CommentRepository:  NewCommentRepository(db),
		ReactionRepository: NewReactionRepository(db),
	}
}

// FactStore exposes the repositories as the read-only source used by reports
type FactStore struct {
	*UserRepository
	*CourseRepository
	*PostRepository
	*CommentRepository
	*ReactionRepository
}

var _ analytics.FactSource = (*FactStore)(nil)

// FactStore returns the report view over the repositories
func (r *Repositories) FactStore() *FactStore {
	return &FactStore{
		UserRepository:     r.UserRepository,
		CourseRepository:   r.CourseRepository,
		PostRepository:     r.PostRepository,
		CommentRepository:  r.CommentRepository,
		ReactionRepository: r.ReactionRepository,
	}
}

// createdAtOrNow lets inserts keep a historical timestamp and otherwise defers to the server clock
func createdAtOrNow(t time.Time) interface{} {
	if t.IsZero() {
		return squirrel.Expr("NOW()")
	}
	return t
}

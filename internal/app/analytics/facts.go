// Package analytics computes engagement analytics, leaderboards and performance
// reports from the raw interaction facts (posts, comments, reactions) of the platform.
//
// A report runs in three stages: a Collector gathers the FactSet for a Scope,
// the Aggregate* functions reduce it into per-entity counts using a single
// post index, and the scoring helpers turn counts into ranked results.
package analytics

import (
	"context"

	"github.com/yigit/eduverse/internal/app/models"
)

// UserFilter restricts ListUsers. Zero fields do not restrict; a nil IDs slice means any id.
type UserFilter struct {
	IDs  []int64
	Role models.RoleType
}

// CourseFilter restricts ListCourses.
type CourseFilter struct {
	IDs          []string
	InstructorID int64
}

// PostFilter restricts ListPosts. Set fields are combined with AND.
type PostFilter struct {
	IDs      []int64
	CourseID string
	SenderID int64
}

// CommentFilter restricts ListComments. Set fields are combined with AND.
type CommentFilter struct {
	PostIDs  []int64
	SenderID int64
}

// ReactionFilter restricts ListReactions. Set fields are combined with AND.
type ReactionFilter struct {
	PostIDs  []int64
	SenderID int64
}

// FactSource is the read-only view of the persistent store used by reports.
// Implementations return rows ordered by id.
type FactSource interface {
	ListUsers(ctx context.Context, filter UserFilter) ([]models.User, error)
	ListCourses(ctx context.Context, filter CourseFilter) ([]models.Course, error)
	ListPosts(ctx context.Context, filter PostFilter) ([]models.Post, error)
	ListComments(ctx context.Context, filter CommentFilter) ([]models.Comment, error)
	ListReactions(ctx context.Context, filter ReactionFilter) ([]models.Reaction, error)
}

// FactSet is the scoped snapshot a single report is computed from
type FactSet struct {
	Scope     Scope
	Users     []models.User
	Courses   []models.Course
	Posts     []models.Post
	Comments  []models.Comment
	Reactions []models.Reaction
}

// IsEmpty reports whether the scope resolved to nothing
func (f *FactSet) IsEmpty() bool {
	return len(f.Users) == 0 && len(f.Courses) == 0 && len(f.Posts) == 0 &&
		len(f.Comments) == 0 && len(f.Reactions) == 0
}

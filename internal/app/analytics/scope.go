package analytics

import (
	"fmt"

	"github.com/yigit/eduverse/internal/pkg/apperrors"
	"github.com/yigit/eduverse/internal/pkg/validation"
)

// ScopeKind selects which entity a report is computed relative to
type ScopeKind string

const (
	ScopeGlobal ScopeKind = "global"
	ScopeCourse ScopeKind = "course"
	ScopeUser   ScopeKind = "user"
)

// Scope describes the set of facts a report reads
type Scope struct {
	Kind     ScopeKind
	CourseID string
	UserID   int64
}

// GlobalScope covers every fact in the store
func GlobalScope() Scope {
	return Scope{Kind: ScopeGlobal}
}

// CourseScope covers one course's posts and the comments/reactions on them
func CourseScope(courseID string) Scope {
	return Scope{Kind: ScopeCourse, CourseID: courseID}
}

// UserScope covers what one user authored and what landed on the user's posts
func UserScope(userID int64) Scope {
	return Scope{Kind: ScopeUser, UserID: userID}
}

// Validate rejects malformed identifiers before any store access
func (s Scope) Validate() error {
	switch s.Kind {
	case ScopeGlobal:
		return nil
	case ScopeCourse:
		return ValidateCourseCode(s.CourseID)
	case ScopeUser:
		return ValidateUserID(s.UserID)
	default:
		return apperrors.NewInvalidScopeError(fmt.Sprintf("unknown scope kind %q", s.Kind))
	}
}

// String is used in log fields
func (s Scope) String() string {
	switch s.Kind {
	case ScopeCourse:
		return "course:" + s.CourseID
	case ScopeUser:
		return fmt.Sprintf("user:%d", s.UserID)
	default:
		return string(s.Kind)
	}
}

// ValidateCourseCode checks the course code format
func ValidateCourseCode(code string) error {
	if !validation.IsCourseCode(code) {
		return apperrors.NewInvalidScopeError(fmt.Sprintf("invalid course code %q", code))
	}
	return nil
}

// ValidateUserID checks that a user id can exist
func ValidateUserID(id int64) error {
	if id <= 0 {
		return apperrors.NewInvalidScopeError(fmt.Sprintf("invalid user id %d", id))
	}
	return nil
}

package auth

import (
	"github.com/yigit/eduverse/internal/app/models"
	"github.com/yigit/eduverse/internal/pkg/apperrors"
)

// Principal is the authenticated caller of a report
type Principal struct {
	UserID int64
	Role   models.RoleType
}

// ReportPolicy decides which report scopes a caller may read. A nil principal
// means authentication is disabled and everything is readable.
type ReportPolicy struct{}

// NewReportPolicy creates a new ReportPolicy
func NewReportPolicy() *ReportPolicy {
	return &ReportPolicy{}
}

// InstructorScope returns the instructor id the caller may report on.
// Instructors see only their own courses; admins may pick any instructor or all of them.
func (p *ReportPolicy) InstructorScope(caller *Principal, requested int64) (int64, error) {
	if caller == nil {
		return requested, nil
	}
	switch caller.Role {
	case models.RoleAdmin:
		return requested, nil
	case models.RoleInstructor:
		if requested == 0 || requested == caller.UserID {
			return caller.UserID, nil
		}
	}
	return 0, apperrors.ErrPermissionDenied
}

// CanViewUserStats reports whether caller may read the stats of userID.
// Students only see their own numbers.
func (p *ReportPolicy) CanViewUserStats(caller *Principal, userID int64) error {
	if caller == nil || caller.UserID == userID {
		return nil
	}
	switch caller.Role {
	case models.RoleAdmin, models.RoleInstructor, models.RoleTA:
		return nil
	}
	return apperrors.ErrPermissionDenied
}

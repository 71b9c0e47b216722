package models

// RoleType defines the user role type
type RoleType string

const (
	RoleStudent    RoleType = "student"
	RoleInstructor RoleType = "instructor"
	RoleTA         RoleType = "ta"
	RoleAdmin      RoleType = "admin"
)

// IsValid reports whether r is one of the known roles
func (r RoleType) IsValid() bool {
	switch r {
	case RoleStudent, RoleInstructor, RoleTA, RoleAdmin:
		return true
	}
	return false
}

// PostType defines the kind of a course post
type PostType string

const (
	PostTypeQuestion     PostType = "question"
	PostTypeAnnouncement PostType = "announcement"
	PostTypeDiscussion   PostType = "discussion"
)

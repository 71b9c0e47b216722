package models

// Course is identified by its human readable code (e.g. CS101), not a surrogate key.
type Course struct {
	ID          string `json:"id" db:"id" yaml:"id"`
	Name        string `json:"name" db:"name" yaml:"name"`
	Description string `json:"description,omitempty" db:"description" yaml:"description"`
	CreditHours int    `json:"creditHours" db:"credit_hours" yaml:"creditHours"`
	Enrolled    int    `json:"enrolled" db:"enrolled" yaml:"enrolled"`
	Capacity    int    `json:"capacity" db:"capacity" yaml:"capacity"`

	// Instructor user ids from 'course_instructors'
	InstructorIDs []int64 `json:"instructorIds" db:"-" yaml:"instructorIds"`
}

// HasInstructor reports whether userID teaches the course
func (c *Course) HasInstructor(userID int64) bool {
	for _, id := range c.InstructorIDs {
		if id == userID {
			return true
		}
	}
	return false
}

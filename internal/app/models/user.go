package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID        int64     `json:"id" db:"id" yaml:"id"`
	Name      string    `json:"name" db:"name" yaml:"name"`
	Email     string    `json:"email" db:"email" yaml:"email"`
	Password  string    `json:"-" db:"password" yaml:"-"`
	Level     string    `json:"level,omitempty" db:"level" yaml:"level"`
	Role      RoleType  `json:"role" db:"role" yaml:"role"`
	CreatedAt time.Time `json:"createdAt" db:"created_at" yaml:"createdAt"`

	// Enrolled course codes from 'user_courses'
	Courses []string `json:"courses" db:"-" yaml:"courses"`
}

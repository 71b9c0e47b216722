package models

import "time"

// Post is a course post authored by exactly one user
type Post struct {
	ID         int64     `json:"id" db:"id" yaml:"id"`
	SenderID   int64     `json:"senderId" db:"sender_id" yaml:"senderId"`
	SenderName string    `json:"senderName" db:"sender_name" yaml:"senderName"`
	CourseID   string    `json:"courseId" db:"course_id" yaml:"courseId"`
	Title      string    `json:"title" db:"title" yaml:"title"`
	Body       string    `json:"body" db:"body" yaml:"body"`
	Type       PostType  `json:"type" db:"type" yaml:"type"`
	Answered   bool      `json:"answered" db:"answered" yaml:"answered"` // only meaningful for questions
	CreatedAt  time.Time `json:"createdAt" db:"created_at" yaml:"createdAt"`
}

// Comment is attached to exactly one post
type Comment struct {
	ID         int64     `json:"id" db:"id" yaml:"id"`
	PostID     int64     `json:"postId" db:"post_id" yaml:"postId"`
	SenderID   int64     `json:"senderId" db:"sender_id" yaml:"senderId"`
	SenderName string    `json:"senderName" db:"sender_name" yaml:"senderName"`
	Body       string    `json:"body" db:"body" yaml:"body"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at" yaml:"createdAt"`
}

// Reaction is a free-form tag (like, love, shocked...) a user puts on a post.
// A user holds at most one reaction per post; a repeat reaction replaces the type.
type Reaction struct {
	ID        int64     `json:"id" db:"id" yaml:"id"`
	PostID    int64     `json:"postId" db:"post_id" yaml:"postId"`
	SenderID  int64     `json:"senderId" db:"sender_id" yaml:"senderId"`
	Type      string    `json:"type" db:"type" yaml:"type"`
	CreatedAt time.Time `json:"createdAt" db:"created_at" yaml:"createdAt"`
}

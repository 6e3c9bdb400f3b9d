package model

import "time"

type Course struct {
	ID          string    `json:"id"`
	Code        string    `json:"course_code"` // e.g., "CS137", globally unique
	Name        string    `json:"course_name"`
	Description string    `json:"description"`
	Slug        string    `json:"slug"`
	CreatorID   string    `json:"creator_id"`
	CreatedAt   time.Time `json:"created_at"`

	// Derived per requesting user; professors always see true.
	IsEnrolled *bool `json:"is_enrolled,omitempty"`
}

type Topic struct {
	ID          string    `json:"id"`
	CourseID    string    `json:"course_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type Assignment struct {
	ID          string    `json:"id"`
	CourseID    string    `json:"course_id"`
	Name        string    `json:"assignment_name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

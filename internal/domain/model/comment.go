package model

import "time"

// Comment belongs to exactly one of a study note or a solution; the unused
// parent pointer stays nil.
type Comment struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	NoteID     *string   `json:"note_id,omitempty"`
	SolutionID *string   `json:"solution_id,omitempty"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

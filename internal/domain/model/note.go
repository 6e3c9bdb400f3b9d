package model

import "time"

type ResourceType string

const (
	ResourceNotes     ResourceType = "notes"
	ResourceSlides    ResourceType = "slides"
	ResourceExercises ResourceType = "exercises"
	ResourceLinks     ResourceType = "links"
)

func ValidResourceType(rt ResourceType) bool {
	switch rt {
	case ResourceNotes, ResourceSlides, ResourceExercises, ResourceLinks:
		return true
	}
	return false
}

type StudyNote struct {
	ID           string       `json:"id"`
	TopicID      string       `json:"topic_id"`
	AuthorID     string       `json:"author_id"`
	Title        string       `json:"title"`
	Content      string       `json:"content"`
	Summary      string       `json:"summary,omitempty"`
	ResourceType ResourceType `json:"resource_type,omitempty"`
	LikesCount   int          `json:"likes_count"`
	CreatedAt    time.Time    `json:"created_at"`
}

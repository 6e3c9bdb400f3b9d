package model

import "time"

type QuestionDifficulty string

const (
	DifficultyEasy   QuestionDifficulty = "easy"
	DifficultyMedium QuestionDifficulty = "medium"
	DifficultyHard   QuestionDifficulty = "hard"
)

func ValidDifficulty(d QuestionDifficulty) bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

type Question struct {
	ID           string             `json:"id"`
	AssignmentID string             `json:"assignment_id"`
	Title        string             `json:"title"`
	Description  string             `json:"description"`
	Difficulty   QuestionDifficulty `json:"difficulty,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
}

type Testcase struct {
	ID             string `json:"id"`
	QuestionID     string `json:"question_id"`
	InputData      string `json:"input_data"`
	ExpectedOutput string `json:"expected_output"`
	IsHidden       bool   `json:"is_hidden"`
}

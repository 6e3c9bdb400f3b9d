package model

import "time"

type SolutionStatus string

const (
	SolutionPending SolutionStatus = "pending"
	SolutionPassed  SolutionStatus = "passed"
	SolutionFailed  SolutionStatus = "failed"
)

type SolutionLanguage string

const (
	LangPython     SolutionLanguage = "python"
	LangJava       SolutionLanguage = "java"
	LangCpp        SolutionLanguage = "cpp"
	LangJavascript SolutionLanguage = "javascript"
)

func ValidLanguage(l SolutionLanguage) bool {
	switch l {
	case LangPython, LangJava, LangCpp, LangJavascript:
		return true
	}
	return false
}

type Solution struct {
	ID          string           `json:"id"`
	QuestionID  string           `json:"question_id"`
	SubmitterID string           `json:"submitter_id"`
	Code        string           `json:"code"`
	Language    SolutionLanguage `json:"language"`
	Status      SolutionStatus   `json:"status"`
	Likes       int              `json:"likes"`
	CreatedAt   time.Time        `json:"created_at"`
}

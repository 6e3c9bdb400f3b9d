package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/xingyi1145/Waterloo-Assignment-Hub/internal/common"
	"github.com/xingyi1145/Waterloo-Assignment-Hub/internal/domain/model"
	"github.com/xingyi1145/Waterloo-Assignment-Hub/internal/domain/repository"
)

type QuestionService struct {
	questionRepo   repository.QuestionRepository
	assignmentRepo repository.AssignmentRepository
	courseRepo     repository.CourseRepository
}

func NewQuestionService(
	questionRepo repository.QuestionRepository,
	assignmentRepo repository.AssignmentRepository,
	courseRepo repository.CourseRepository,
) *QuestionService {
	return &QuestionService{
		questionRepo:   questionRepo,
		assignmentRepo: assignmentRepo,
		courseRepo:     courseRepo,
	}
}

type CreateQuestionRequest struct {
	AssignmentID string                   `json:"assignment_id"`
	Title        string                   `json:"title"`
	Description  string                   `json:"description"`
	Difficulty   model.QuestionDifficulty `json:"difficulty"`
}

type UpdateQuestionRequest struct {
	Title       string                   `json:"title"`
	Description string                   `json:"description"`
	Difficulty  model.QuestionDifficulty `json:"difficulty"`
}

type CreateTestcaseRequest struct {
	InputData      string `json:"input_data"`
	ExpectedOutput string `json:"expected_output"`
	IsHidden       bool   `json:"is_hidden"`
}

func (s *QuestionService) Create(ctx context.Context, professorID string, req CreateQuestionRequest) (*model.Question, error) {
	if req.AssignmentID == "" || req.Title == "" || req.Description == "" {
		return nil, fmt.Errorf("assignment_id, title and description are required: %w", common.ErrBadRequest)
	}
	if req.Difficulty != "" && !model.ValidDifficulty(req.Difficulty) {
		return nil, fmt.Errorf("difficulty must be easy, medium or hard: %w", common.ErrValidation)
	}

	assignment, err := s.assignmentRepo.FindByID(ctx, req.AssignmentID)
	if err != nil {
		return nil, err
	}
	course, err := s.courseRepo.FindByID(ctx, assignment.CourseID)
	if err != nil {
		return nil, err
	}
	if course.CreatorID != professorID {
		return nil, fmt.Errorf("you can only create questions in your own courses: %w", common.ErrForbidden)
	}

	question := &model.Question{
		ID:           uuid.NewString(),
		AssignmentID: req.AssignmentID,
		Title:        req.Title,
		Description:  req.Description,
		Difficulty:   req.Difficulty,
	}
	if err := s.questionRepo.Create(ctx, question); err != nil {
		return nil, err
	}
	return question, nil
}

func (s *QuestionService) ListByAssignment(ctx context.Context, assignmentID string) ([]model.Question, error) {
	if _, err := s.assignmentRepo.FindByID(ctx, assignmentID); err != nil {
		return nil, err
	}
	return s.questionRepo.ListByAssignmentID(ctx, assignmentID)
}

func (s *QuestionService) Get(ctx context.Context, questionID string) (*model.Question, error) {
	return s.questionRepo.FindByID(ctx, questionID)
}

func (s *QuestionService) Update(ctx context.Context, questionID string, req UpdateQuestionRequest) (*model.Question, error) {
	if req.Title == "" || req.Description == "" {
		return nil, fmt.Errorf("title and description are required: %w", common.ErrBadRequest)
	}
	if req.Difficulty != "" && !model.ValidDifficulty(req.Difficulty) {
		return nil, fmt.Errorf("difficulty must be easy, medium or hard: %w", common.ErrValidation)
	}
	question, err := s.questionRepo.FindByID(ctx, questionID)
	if err != nil {
		return nil, err
	}
	question.Title = req.Title
	question.Description = req.Description
	question.Difficulty = req.Difficulty
	if err := s.questionRepo.Update(ctx, question); err != nil {
		return nil, err
	}
	return question, nil
}

func (s *QuestionService) Delete(ctx context.Context, questionID string) error {
	if _, err := s.questionRepo.FindByID(ctx, questionID); err != nil {
		return err
	}
	return s.questionRepo.Delete(ctx, questionID)
}

// AddTestcase gates on course ownership like question creation does.
func (s *QuestionService) AddTestcase(ctx context.Context, professorID, questionID string, req CreateTestcaseRequest) (*model.Testcase, error) {
	if req.InputData == "" || req.ExpectedOutput == "" {
		return nil, fmt.Errorf("input_data and expected_output are required: %w", common.ErrBadRequest)
	}
	question, err := s.questionRepo.FindByID(ctx, questionID)
	if err != nil {
		return nil, err
	}
	assignment, err := s.assignmentRepo.FindByID(ctx, question.AssignmentID)
	if err != nil {
		return nil, err
	}
	course, err := s.courseRepo.FindByID(ctx, assignment.CourseID)
	if err != nil {
		return nil, err
	}
	if course.CreatorID != professorID {
		return nil, fmt.Errorf("you can only add testcases in your own courses: %w", common.ErrForbidden)
	}

	tc := &model.Testcase{
		ID:             uuid.NewString(),
		QuestionID:     questionID,
		InputData:      req.InputData,
		ExpectedOutput: req.ExpectedOutput,
		IsHidden:       req.IsHidden,
	}
	if err := s.questionRepo.AddTestcase(ctx, tc); err != nil {
		return nil, err
	}
	return tc, nil
}

// ListTestcases hides hidden rows from students.
func (s *QuestionService) ListTestcases(ctx context.Context, questionID string, role model.Role) ([]model.Testcase, error) {
	if _, err := s.questionRepo.FindByID(ctx, questionID); err != nil {
		return nil, err
	}
	return s.questionRepo.ListTestcases(ctx, questionID, role == model.RoleProfessor)
}

package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/xingyi1145/Waterloo-Assignment-Hub/internal/common"
	"github.com/xingyi1145/Waterloo-Assignment-Hub/internal/domain/model"
	"github.com/xingyi1145/Waterloo-Assignment-Hub/internal/domain/repository"
)

type SolutionService struct {
	solutionRepo repository.SolutionRepository
	questionRepo repository.QuestionRepository
	commentRepo  repository.CommentRepository
	db           *sql.DB // For transactions
}

func NewSolutionService(
	solutionRepo repository.SolutionRepository,
	questionRepo repository.QuestionRepository,
	commentRepo repository.CommentRepository,
	db *sql.DB,
) *SolutionService {
	return &SolutionService{solutionRepo: solutionRepo, questionRepo: questionRepo, commentRepo: commentRepo, db: db}
}

type CreateSolutionRequest struct {
	QuestionID string                 `json:"question_id"`
	Code       string                 `json:"code"`
	Language   model.SolutionLanguage `json:"language"`
}

// Create records a submission. Grading runs elsewhere; every solution
// starts out pending.
func (s *SolutionService) Create(ctx context.Context, submitterID string, req CreateSolutionRequest) (*model.Solution, error) {
	if req.QuestionID == "" || req.Code == "" {
		return nil, fmt.Errorf("question_id and code are required: %w", common.ErrBadRequest)
	}
	if !model.ValidLanguage(req.Language) {
		return nil, fmt.Errorf("language must be python, java, cpp or javascript: %w", common.ErrValidation)
	}
	if _, err := s.questionRepo.FindByID(ctx, req.QuestionID); err != nil {
		return nil, err
	}

	solution := &model.Solution{
		ID:          uuid.NewString(),
		QuestionID:  req.QuestionID,
		SubmitterID: submitterID,
		Code:        req.Code,
		Language:    req.Language,
		Status:      model.SolutionPending,
	}
	if err := s.solutionRepo.Create(ctx, solution); err != nil {
		return nil, err
	}
	return solution, nil
}

func (s *SolutionService) ListByQuestion(ctx context.Context, questionID string) ([]model.Solution, error) {
	if _, err := s.questionRepo.FindByID(ctx, questionID); err != nil {
		return nil, err
	}
	return s.solutionRepo.ListByQuestionID(ctx, questionID)
}

func (s *SolutionService) Get(ctx context.Context, solutionID string) (*model.Solution, error) {
	return s.solutionRepo.FindByID(ctx, solutionID)
}

func (s *SolutionService) Like(ctx context.Context, userID, solutionID string) (*LikeResponse, error) {
	if _, err := s.solutionRepo.FindByID(ctx, solutionID); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, common.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // Rollback if not committed

	inserted, err := s.solutionRepo.InsertLike(ctx, tx, userID, solutionID)
	if err != nil {
		return nil, err
	}
	if !inserted {
		return nil, fmt.Errorf("you have already liked this solution: %w", common.ErrBadRequest)
	}
	likes, err := s.solutionRepo.IncrementLikes(ctx, tx, solutionID)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, common.Errorf("failed to commit transaction: %w", err)
	}
	return &LikeResponse{Message: "Solution liked", Likes: likes}, nil
}

func (s *SolutionService) AddComment(ctx context.Context, userID, solutionID string, req CreateCommentRequest) (*model.Comment, error) {
	if req.Content == "" {
		return nil, fmt.Errorf("content is required: %w", common.ErrBadRequest)
	}
	if _, err := s.solutionRepo.FindByID(ctx, solutionID); err != nil {
		return nil, err
	}

	comment := &model.Comment{
		ID:         uuid.NewString(),
		UserID:     userID,
		SolutionID: &solutionID,
		Content:    req.Content,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *SolutionService) ListComments(ctx context.Context, solutionID string) ([]model.Comment, error) {
	if _, err := s.solutionRepo.FindByID(ctx, solutionID); err != nil {
		return nil, err
	}
	return s.commentRepo.ListBySolutionID(ctx, solutionID)
}

// Delete is allowed for the submitter or any professor. Like rows go first,
// then the solution row, in one transaction.
func (s *SolutionService) Delete(ctx context.Context, solutionID, userID string, role model.Role) error {
	solution, err := s.solutionRepo.FindByID(ctx, solutionID)
	if err != nil {
		return err
	}
	if solution.SubmitterID != userID && role != model.RoleProfessor {
		return fmt.Errorf("you can only delete your own solutions: %w", common.ErrForbidden)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return common.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.solutionRepo.ClearLikes(ctx, tx, solutionID); err != nil {
		return err
	}
	if err := s.solutionRepo.Delete(ctx, tx, solutionID); err != nil {
		return err
	}
	return tx.Commit()
}

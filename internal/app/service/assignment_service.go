package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/xingyi1145/Waterloo-Assignment-Hub/internal/common"
	"github.com/xingyi1145/Waterloo-Assignment-Hub/internal/domain/model"
	"github.com/xingyi1145/Waterloo-Assignment-Hub/internal/domain/repository"
)

type AssignmentService struct {
	assignmentRepo repository.AssignmentRepository
	courseRepo     repository.CourseRepository
}

func NewAssignmentService(assignmentRepo repository.AssignmentRepository, courseRepo repository.CourseRepository) *AssignmentService {
	return &AssignmentService{assignmentRepo: assignmentRepo, courseRepo: courseRepo}
}

type CreateAssignmentRequest struct {
	CourseID    string `json:"course_id"`
	Name        string `json:"assignment_name"`
	Description string `json:"description"`
}

type UpdateAssignmentRequest struct {
	Name        string `json:"assignment_name"`
	Description string `json:"description"`
}

func (s *AssignmentService) Create(ctx context.Context, professorID string, req CreateAssignmentRequest) (*model.Assignment, error) {
	if req.CourseID == "" || req.Name == "" {
		return nil, fmt.Errorf("course_id and assignment_name are required: %w", common.ErrBadRequest)
	}
	course, err := s.courseRepo.FindByID(ctx, req.CourseID)
	if err != nil {
		return nil, err
	}
	if course.CreatorID != professorID {
		return nil, fmt.Errorf("you can only create assignments in your own courses: %w", common.ErrForbidden)
	}

	assignment := &model.Assignment{
		ID:          uuid.NewString(),
		CourseID:    req.CourseID,
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.assignmentRepo.Create(ctx, assignment); err != nil {
		return nil, err
	}
	return assignment, nil
}

func (s *AssignmentService) ListByCourse(ctx context.Context, courseID, userID string, role model.Role) ([]model.Assignment, error) {
	if _, err := s.courseRepo.FindByID(ctx, courseID); err != nil {
		return nil, err
	}
	if role == model.RoleStudent {
		enrolled, err := s.courseRepo.IsEnrolled(ctx, userID, courseID)
		if err != nil {
			return nil, err
		}
		if !enrolled {
			return nil, fmt.Errorf("you must be enrolled in this course to view assignments: %w", common.ErrForbidden)
		}
	}
	return s.assignmentRepo.ListByCourseID(ctx, courseID)
}

func (s *AssignmentService) Get(ctx context.Context, assignmentID string) (*model.Assignment, error) {
	return s.assignmentRepo.FindByID(ctx, assignmentID)
}

func (s *AssignmentService) Update(ctx context.Context, assignmentID string, req UpdateAssignmentRequest) (*model.Assignment, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("assignment_name is required: %w", common.ErrBadRequest)
	}
	assignment, err := s.assignmentRepo.FindByID(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	assignment.Name = req.Name
	assignment.Description = req.Description
	if err := s.assignmentRepo.Update(ctx, assignment); err != nil {
		return nil, err
	}
	return assignment, nil
}

func (s *AssignmentService) Delete(ctx context.Context, assignmentID string) error {
	if _, err := s.assignmentRepo.FindByID(ctx, assignmentID); err != nil {
		return err
	}
	return s.assignmentRepo.Delete(ctx, assignmentID)
}

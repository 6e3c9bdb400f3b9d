package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"github.com/xingyi1145/Waterloo-Assignment-Hub/internal/common"
	"github.com/xingyi1145/Waterloo-Assignment-Hub/internal/domain/model"
	"github.com/xingyi1145/Waterloo-Assignment-Hub/internal/domain/repository"
)

type CourseService struct {
	courseRepo repository.CourseRepository
	db         *sql.DB // For transactions
}

func NewCourseService(courseRepo repository.CourseRepository, db *sql.DB) *CourseService {
	return &CourseService{courseRepo: courseRepo, db: db}
}

type CourseRequest struct {
	Code        string `json:"course_code"`
	Name        string `json:"course_name"`
	Description string `json:"description"`
}

func (s *CourseService) Create(ctx context.Context, creatorID string, req CourseRequest) (*model.Course, error) {
	if req.Code == "" || req.Name == "" {
		return nil, fmt.Errorf("course_code and course_name are required: %w", common.ErrBadRequest)
	}

	course := &model.Course{
		ID:          uuid.NewString(),
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
		Slug:        slug.Make(req.Code + " " + req.Name),
		CreatorID:   creatorID,
	}
	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

// List returns every course with is_enrolled resolved for the requesting
// user: students get a membership test, professors always see true.
func (s *CourseService) List(ctx context.Context, userID string, role model.Role) ([]model.Course, error) {
	courses, err := s.courseRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range courses {
		if err := s.attachEnrollment(ctx, &courses[i], userID, role); err != nil {
			return nil, err
		}
	}
	return courses, nil
}

func (s *CourseService) Get(ctx context.Context, courseID, userID string, role model.Role) (*model.Course, error) {
	course, err := s.courseRepo.FindByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if err := s.attachEnrollment(ctx, course, userID, role); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CourseService) GetBySlug(ctx context.Context, courseSlug, userID string, role model.Role) (*model.Course, error) {
	course, err := s.courseRepo.FindBySlug(ctx, courseSlug)
	if err != nil {
		return nil, err
	}
	if err := s.attachEnrollment(ctx, course, userID, role); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CourseService) attachEnrollment(ctx context.Context, course *model.Course, userID string, role model.Role) error {
	enrolled := true
	if role == model.RoleStudent {
		var err error
		enrolled, err = s.courseRepo.IsEnrolled(ctx, userID, course.ID)
		if err != nil {
			return err
		}
	}
	course.IsEnrolled = &enrolled
	return nil
}

// Update is a full-field overwrite; any professor may edit any course.
func (s *CourseService) Update(ctx context.Context, courseID string, req CourseRequest) (*model.Course, error) {
	if req.Code == "" || req.Name == "" {
		return nil, fmt.Errorf("course_code and course_name are required: %w", common.ErrBadRequest)
	}
	course, err := s.courseRepo.FindByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	course.Code = req.Code
	course.Name = req.Name
	course.Description = req.Description
	course.Slug = slug.Make(req.Code + " " + req.Name)

	if err := s.courseRepo.Update(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

// Delete clears the enrollment rows and removes the course in one
// transaction; topics, notes, assignments, questions, testcases, solutions
// and comments go with it through the declared cascade rules.
func (s *CourseService) Delete(ctx context.Context, courseID string) error {
	if _, err := s.courseRepo.FindByID(ctx, courseID); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return common.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // Rollback if not committed

	if err := s.courseRepo.ClearEnrollments(ctx, tx, courseID); err != nil {
		return err
	}
	if err := s.courseRepo.Delete(ctx, tx, courseID); err != nil {
		return err
	}
	return tx.Commit()
}

type EnrollResponse struct {
	Message string `json:"message"`
}

func (s *CourseService) Enroll(ctx context.Context, userID, courseID string) (*EnrollResponse, error) {
	if _, err := s.courseRepo.FindByID(ctx, courseID); err != nil {
		return nil, err
	}

	inserted, err := s.courseRepo.Enroll(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}
	if !inserted {
		return nil, fmt.Errorf("already enrolled in this course: %w", common.ErrBadRequest)
	}
	return &EnrollResponse{Message: "Successfully enrolled in course"}, nil
}

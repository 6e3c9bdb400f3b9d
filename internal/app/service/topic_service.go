package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/xingyi1145/Waterloo-Assignment-Hub/internal/common"
	"github.com/xingyi1145/Waterloo-Assignment-Hub/internal/domain/model"
	"github.com/xingyi1145/Waterloo-Assignment-Hub/internal/domain/repository"
)

type TopicService struct {
	topicRepo  repository.TopicRepository
	courseRepo repository.CourseRepository
}

func NewTopicService(topicRepo repository.TopicRepository, courseRepo repository.CourseRepository) *TopicService {
	return &TopicService{topicRepo: topicRepo, courseRepo: courseRepo}
}

type CreateTopicRequest struct {
	CourseID    string `json:"course_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type UpdateTopicRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Create adds a topic to a course. Creation is gated on course ownership;
// editing and deleting existing topics is open to any professor.
func (s *TopicService) Create(ctx context.Context, professorID string, req CreateTopicRequest) (*model.Topic, error) {
	if req.CourseID == "" || req.Title == "" {
		return nil, fmt.Errorf("course_id and title are required: %w", common.ErrBadRequest)
	}
	course, err := s.courseRepo.FindByID(ctx, req.CourseID)
	if err != nil {
		return nil, err
	}
	if course.CreatorID != professorID {
		return nil, fmt.Errorf("you can only create topics in your own courses: %w", common.ErrForbidden)
	}

	topic := &model.Topic{
		ID:          uuid.NewString(),
		CourseID:    req.CourseID,
		Title:       req.Title,
		Description: req.Description,
	}
	if err := s.topicRepo.Create(ctx, topic); err != nil {
		return nil, err
	}
	return topic, nil
}

// ListByCourse enforces the enrollment gate: students only see topics for
// courses in their enrolled set, professors see everything.
func (s *TopicService) ListByCourse(ctx context.Context, courseID, userID string, role model.Role) ([]model.Topic, error) {
	if _, err := s.courseRepo.FindByID(ctx, courseID); err != nil {
		return nil, err
	}
	if role == model.RoleStudent {
		enrolled, err := s.courseRepo.IsEnrolled(ctx, userID, courseID)
		if err != nil {
			return nil, err
		}
		if !enrolled {
			return nil, fmt.Errorf("you must be enrolled in this course to view topics: %w", common.ErrForbidden)
		}
	}
	return s.topicRepo.ListByCourseID(ctx, courseID)
}

func (s *TopicService) Get(ctx context.Context, topicID string) (*model.Topic, error) {
	return s.topicRepo.FindByID(ctx, topicID)
}

func (s *TopicService) Update(ctx context.Context, topicID string, req UpdateTopicRequest) (*model.Topic, error) {
	if req.Title == "" {
		return nil, fmt.Errorf("title is required: %w", common.ErrBadRequest)
	}
	topic, err := s.topicRepo.FindByID(ctx, topicID)
	if err != nil {
		return nil, err
	}
	topic.Title = req.Title
	topic.Description = req.Description
	if err := s.topicRepo.Update(ctx, topic); err != nil {
		return nil, err
	}
	return topic, nil
}

func (s *TopicService) Delete(ctx context.Context, topicID string) error {
	if _, err := s.topicRepo.FindByID(ctx, topicID); err != nil {
		return err
	}
	return s.topicRepo.Delete(ctx, topicID)
}

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

type NoteService struct {
	noteRepo    repository.NoteRepository
	topicRepo   repository.TopicRepository
	commentRepo repository.CommentRepository
	db          *sql.DB // For transactions
}

func NewNoteService(
	noteRepo repository.NoteRepository,
	topicRepo repository.TopicRepository,
	commentRepo repository.CommentRepository,
	db *sql.DB,
) *NoteService {
	return &NoteService{noteRepo: noteRepo, topicRepo: topicRepo, commentRepo: commentRepo, db: db}
}

type CreateNoteRequest struct {
	TopicID      string             `json:"topic_id"`
	Title        string             `json:"title"`
	Content      string             `json:"content"`
	Summary      string             `json:"summary"`
	ResourceType model.ResourceType `json:"resource_type"`
}

type LikeResponse struct {
	Message string `json:"message"`
	Likes   int    `json:"likes"`
}

type CreateCommentRequest struct {
	Content string `json:"content"`
}

func (s *NoteService) Create(ctx context.Context, authorID string, req CreateNoteRequest) (*model.StudyNote, error) {
	if req.TopicID == "" || req.Title == "" || req.Content == "" {
		return nil, fmt.Errorf("topic_id, title and content are required: %w", common.ErrBadRequest)
	}
	if req.ResourceType != "" && !model.ValidResourceType(req.ResourceType) {
		return nil, fmt.Errorf("unknown resource_type: %w", common.ErrValidation)
	}
	if _, err := s.topicRepo.FindByID(ctx, req.TopicID); err != nil {
		return nil, err
	}

	note := &model.StudyNote{
		ID:           uuid.NewString(),
		TopicID:      req.TopicID,
		AuthorID:     authorID,
		Title:        req.Title,
		Content:      req.Content,
		Summary:      req.Summary,
		ResourceType: req.ResourceType,
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *NoteService) ListByTopic(ctx context.Context, topicID string) ([]model.StudyNote, error) {
	if _, err := s.topicRepo.FindByID(ctx, topicID); err != nil {
		return nil, err
	}
	return s.noteRepo.ListByTopicID(ctx, topicID)
}

func (s *NoteService) Get(ctx context.Context, noteID string) (*model.StudyNote, error) {
	return s.noteRepo.FindByID(ctx, noteID)
}

// Like inserts the like row and bumps the counter in one transaction. The
// join table's composite key makes the second like from the same user a
// no-op insert, which surfaces as "already liked" — no decrement path
// exists, the counter only grows.
func (s *NoteService) Like(ctx context.Context, userID, noteID string) (*LikeResponse, error) {
	if _, err := s.noteRepo.FindByID(ctx, noteID); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, common.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // Rollback if not committed

	inserted, err := s.noteRepo.InsertLike(ctx, tx, userID, noteID)
	if err != nil {
		return nil, err
	}
	if !inserted {
		return nil, fmt.Errorf("you have already liked this note: %w", common.ErrBadRequest)
	}
	likes, err := s.noteRepo.IncrementLikes(ctx, tx, noteID)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, common.Errorf("failed to commit transaction: %w", err)
	}
	return &LikeResponse{Message: "Note liked successfully", Likes: likes}, nil
}

func (s *NoteService) AddComment(ctx context.Context, userID, noteID string, req CreateCommentRequest) (*model.Comment, error) {
	if req.Content == "" {
		return nil, fmt.Errorf("content is required: %w", common.ErrBadRequest)
	}
	if _, err := s.noteRepo.FindByID(ctx, noteID); err != nil {
		return nil, err
	}

	comment := &model.Comment{
		ID:      uuid.NewString(),
		UserID:  userID,
		NoteID:  &noteID,
		Content: req.Content,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *NoteService) ListComments(ctx context.Context, noteID string) ([]model.Comment, error) {
	if _, err := s.noteRepo.FindByID(ctx, noteID); err != nil {
		return nil, err
	}
	return s.commentRepo.ListByNoteID(ctx, noteID)
}

// Delete is allowed for the author or any professor. Like rows are cleared
// before the note row inside one transaction; comments cascade.
func (s *NoteService) Delete(ctx context.Context, noteID, userID string, role model.Role) error {
	note, err := s.noteRepo.FindByID(ctx, noteID)
	if err != nil {
		return err
	}
	if note.AuthorID != userID && role != model.RoleProfessor {
		return fmt.Errorf("you can only delete your own notes: %w", common.ErrForbidden)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return common.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.noteRepo.ClearLikes(ctx, tx, noteID); err != nil {
		return err
	}
	if err := s.noteRepo.Delete(ctx, tx, noteID); err != nil {
		return err
	}
	return tx.Commit()
}

package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/xingyi1145/Waterloo-Assignment-Hub/internal/domain/model"
)

type CommentRepository interface {
	Create(ctx context.Context, c *model.Comment) error
	ListByNoteID(ctx context.Context, noteID string) ([]model.Comment, error)
	ListBySolutionID(ctx context.Context, solutionID string) ([]model.Comment, error)
}

type pgCommentRepository struct {
	db *sql.DB
}

func NewPgCommentRepository(db *sql.DB) CommentRepository {
	return &pgCommentRepository{db: db}
}

func (r *pgCommentRepository) Create(ctx context.Context, c *model.Comment) error {
	query := `INSERT INTO comments (id, user_id, note_id, solution_id, content)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING created_at`
	err := r.db.QueryRowContext(ctx, query, c.ID, c.UserID, c.NoteID, c.SolutionID, c.Content).
		Scan(&c.CreatedAt)
	if err != nil {
		return fmt.Errorf("pgCommentRepository.Create: %w", err)
	}
	return nil
}

func (r *pgCommentRepository) ListByNoteID(ctx context.Context, noteID string) ([]model.Comment, error) {
	return r.list(ctx, "note_id", noteID)
}

func (r *pgCommentRepository) ListBySolutionID(ctx context.Context, solutionID string) ([]model.Comment, error) {
	return r.list(ctx, "solution_id", solutionID)
}

func (r *pgCommentRepository) list(ctx context.Context, column, value string) ([]model.Comment, error) {
	query := fmt.Sprintf(`SELECT id, user_id, note_id, solution_id, content, created_at
	          FROM comments WHERE %s = $1 ORDER BY created_at ASC`, column)
	rows, err := r.db.QueryContext(ctx, query, value)
	if err != nil {
		return nil, fmt.Errorf("pgCommentRepository.list(%s) query: %w", column, err)
	}
	defer rows.Close()

	comments := []model.Comment{}
	for rows.Next() {
		var c model.Comment
		if err := rows.Scan(&c.ID, &c.UserID, &c.NoteID, &c.SolutionID, &c.Content, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("pgCommentRepository.list(%s) scan: %w", column, err)
		}
		comments = append(comments, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgCommentRepository.list(%s) rows.Err: %w", column, err)
	}
	return comments, nil
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/xingyi1145/Waterloo-Assignment-Hub/internal/common"
	"github.com/xingyi1145/Waterloo-Assignment-Hub/internal/domain/model"
)

type SolutionRepository interface {
	Create(ctx context.Context, s *model.Solution) error
	FindByID(ctx context.Context, id string) (*model.Solution, error)
	ListByQuestionID(ctx context.Context, questionID string) ([]model.Solution, error)
	Delete(ctx context.Context, tx *sql.Tx, id string) error

	InsertLike(ctx context.Context, tx *sql.Tx, userID, solutionID string) (bool, error)
	IncrementLikes(ctx context.Context, tx *sql.Tx, solutionID string) (int, error)
	ClearLikes(ctx context.Context, tx *sql.Tx, solutionID string) error
}

type pgSolutionRepository struct {
	db *sql.DB
}

func NewPgSolutionRepository(db *sql.DB) SolutionRepository {
	return &pgSolutionRepository{db: db}
}

const solutionColumns = `id, question_id, submitter_id, code, language, status, likes, created_at`

func (r *pgSolutionRepository) Create(ctx context.Context, s *model.Solution) error {
	query := `INSERT INTO solutions (id, question_id, submitter_id, code, language, status)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING created_at`
	err := r.db.QueryRowContext(ctx, query, s.ID, s.QuestionID, s.SubmitterID, s.Code, s.Language, s.Status).
		Scan(&s.CreatedAt)
	if err != nil {
		return fmt.Errorf("pgSolutionRepository.Create: %w", err)
	}
	return nil
}

func (r *pgSolutionRepository) FindByID(ctx context.Context, id string) (*model.Solution, error) {
	query := fmt.Sprintf(`SELECT %s FROM solutions WHERE id = $1`, solutionColumns)
	s := &model.Solution{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&s.ID, &s.QuestionID, &s.SubmitterID, &s.Code, &s.Language, &s.Status, &s.Likes, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgSolutionRepository.FindByID: %w", err)
	}
	return s, nil
}

func (r *pgSolutionRepository) ListByQuestionID(ctx context.Context, questionID string) ([]model.Solution, error) {
	query := fmt.Sprintf(`SELECT %s FROM solutions WHERE question_id = $1 ORDER BY likes DESC, created_at DESC`, solutionColumns)
	rows, err := r.db.QueryContext(ctx, query, questionID)
	if err != nil {
		return nil, fmt.Errorf("pgSolutionRepository.ListByQuestionID query: %w", err)
	}
	defer rows.Close()

	solutions := []model.Solution{}
	for rows.Next() {
		var s model.Solution
		if err := rows.Scan(&s.ID, &s.QuestionID, &s.SubmitterID, &s.Code, &s.Language, &s.Status, &s.Likes, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("pgSolutionRepository.ListByQuestionID scan: %w", err)
		}
		solutions = append(solutions, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgSolutionRepository.ListByQuestionID rows.Err: %w", err)
	}
	return solutions, nil
}

// Delete removes the solution row. Like rows must be cleared first
// (ClearLikes) inside the same transaction.
func (r *pgSolutionRepository) Delete(ctx context.Context, tx *sql.Tx, id string) error {
	res, err := tx.ExecContext(ctx, `DELETE FROM solutions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pgSolutionRepository.Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgSolutionRepository) InsertLike(ctx context.Context, tx *sql.Tx, userID, solutionID string) (bool, error) {
	query := `INSERT INTO user_solution_likes (user_id, solution_id) VALUES ($1, $2)
	          ON CONFLICT DO NOTHING`
	res, err := tx.ExecContext(ctx, query, userID, solutionID)
	if err != nil {
		return false, fmt.Errorf("pgSolutionRepository.InsertLike: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("pgSolutionRepository.InsertLike rows: %w", err)
	}
	return n == 1, nil
}

func (r *pgSolutionRepository) IncrementLikes(ctx context.Context, tx *sql.Tx, solutionID string) (int, error) {
	var likes int
	query := `UPDATE solutions SET likes = likes + 1 WHERE id = $1 RETURNING likes`
	if err := tx.QueryRowContext(ctx, query, solutionID).Scan(&likes); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, common.ErrNotFound
		}
		return 0, fmt.Errorf("pgSolutionRepository.IncrementLikes: %w", err)
	}
	return likes, nil
}

func (r *pgSolutionRepository) ClearLikes(ctx context.Context, tx *sql.Tx, solutionID string) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM user_solution_likes WHERE solution_id = $1`, solutionID); err != nil {
		return fmt.Errorf("pgSolutionRepository.ClearLikes: %w", err)
	}
	return nil
}

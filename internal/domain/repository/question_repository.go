package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/xingyi1145/Waterloo-Assignment-Hub/internal/common"
	"github.com/xingyi1145/Waterloo-Assignment-Hub/internal/domain/model"
)

type QuestionRepository interface {
	Create(ctx context.Context, q *model.Question) error
	FindByID(ctx context.Context, id string) (*model.Question, error)
	ListByAssignmentID(ctx context.Context, assignmentID string) ([]model.Question, error)
	Update(ctx context.Context, q *model.Question) error
	Delete(ctx context.Context, id string) error

	AddTestcase(ctx context.Context, tc *model.Testcase) error
	ListTestcases(ctx context.Context, questionID string, includeHidden bool) ([]model.Testcase, error)
}

type pgQuestionRepository struct {
	db *sql.DB
}

func NewPgQuestionRepository(db *sql.DB) QuestionRepository {
	return &pgQuestionRepository{db: db}
}

func (r *pgQuestionRepository) Create(ctx context.Context, q *model.Question) error {
	query := `INSERT INTO questions (id, assignment_id, title, description, difficulty)
	          VALUES ($1, $2, $3, $4, NULLIF($5, ''))
	          RETURNING created_at`
	err := r.db.QueryRowContext(ctx, query, q.ID, q.AssignmentID, q.Title, q.Description, q.Difficulty).
		Scan(&q.CreatedAt)
	if err != nil {
		return fmt.Errorf("pgQuestionRepository.Create: %w", err)
	}
	return nil
}

func (r *pgQuestionRepository) FindByID(ctx context.Context, id string) (*model.Question, error) {
	query := `SELECT id, assignment_id, title, description, COALESCE(difficulty, ''), created_at
	          FROM questions WHERE id = $1`
	q := &model.Question{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&q.ID, &q.AssignmentID, &q.Title, &q.Description, &q.Difficulty, &q.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgQuestionRepository.FindByID: %w", err)
	}
	return q, nil
}

func (r *pgQuestionRepository) ListByAssignmentID(ctx context.Context, assignmentID string) ([]model.Question, error) {
	query := `SELECT id, assignment_id, title, description, COALESCE(difficulty, ''), created_at
	          FROM questions WHERE assignment_id = $1 ORDER BY created_at ASC`
	rows, err := r.db.QueryContext(ctx, query, assignmentID)
	if err != nil {
		return nil, fmt.Errorf("pgQuestionRepository.ListByAssignmentID query: %w", err)
	}
	defer rows.Close()

	questions := []model.Question{}
	for rows.Next() {
		var q model.Question
		if err := rows.Scan(&q.ID, &q.AssignmentID, &q.Title, &q.Description, &q.Difficulty, &q.CreatedAt); err != nil {
			return nil, fmt.Errorf("pgQuestionRepository.ListByAssignmentID scan: %w", err)
		}
		questions = append(questions, q)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgQuestionRepository.ListByAssignmentID rows.Err: %w", err)
	}
	return questions, nil
}

func (r *pgQuestionRepository) Update(ctx context.Context, q *model.Question) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE questions SET title = $1, description = $2, difficulty = NULLIF($3, '') WHERE id = $4`,
		q.Title, q.Description, q.Difficulty, q.ID)
	if err != nil {
		return fmt.Errorf("pgQuestionRepository.Update: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgQuestionRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM questions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pgQuestionRepository.Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgQuestionRepository) AddTestcase(ctx context.Context, tc *model.Testcase) error {
	query := `INSERT INTO testcases (id, question_id, input_data, expected_output, is_hidden)
	          VALUES ($1, $2, $3, $4, $5)`
	if _, err := r.db.ExecContext(ctx, query, tc.ID, tc.QuestionID, tc.InputData, tc.ExpectedOutput, tc.IsHidden); err != nil {
		return fmt.Errorf("pgQuestionRepository.AddTestcase: %w", err)
	}
	return nil
}

// ListTestcases returns a question's testcases; hidden rows are filtered out
// unless the caller is allowed to see them.
func (r *pgQuestionRepository) ListTestcases(ctx context.Context, questionID string, includeHidden bool) ([]model.Testcase, error) {
	query := `SELECT id, question_id, input_data, expected_output, is_hidden
	          FROM testcases WHERE question_id = $1`
	if !includeHidden {
		query += ` AND is_hidden = FALSE`
	}
	rows, err := r.db.QueryContext(ctx, query, questionID)
	if err != nil {
		return nil, fmt.Errorf("pgQuestionRepository.ListTestcases query: %w", err)
	}
	defer rows.Close()

	testcases := []model.Testcase{}
	for rows.Next() {
		var tc model.Testcase
		if err := rows.Scan(&tc.ID, &tc.QuestionID, &tc.InputData, &tc.ExpectedOutput, &tc.IsHidden); err != nil {
			return nil, fmt.Errorf("pgQuestionRepository.ListTestcases scan: %w", err)
		}
		testcases = append(testcases, tc)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgQuestionRepository.ListTestcases rows.Err: %w", err)
	}
	return testcases, nil
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/xingyi1145/Waterloo-Assignment-Hub/internal/common"
	"github.com/xingyi1145/Waterloo-Assignment-Hub/internal/domain/model"
)

type AssignmentRepository interface {
	Create(ctx context.Context, a *model.Assignment) error
	FindByID(ctx context.Context, id string) (*model.Assignment, error)
	ListByCourseID(ctx context.Context, courseID string) ([]model.Assignment, error)
	Update(ctx context.Context, a *model.Assignment) error
	Delete(ctx context.Context, id string) error
}

type pgAssignmentRepository struct {
	db *sql.DB
}

func NewPgAssignmentRepository(db *sql.DB) AssignmentRepository {
	return &pgAssignmentRepository{db: db}
}

func (r *pgAssignmentRepository) Create(ctx context.Context, a *model.Assignment) error {
	query := `INSERT INTO assignments (id, course_id, name, description)
	          VALUES ($1, $2, $3, $4)
	          RETURNING created_at`
	err := r.db.QueryRowContext(ctx, query, a.ID, a.CourseID, a.Name, a.Description).Scan(&a.CreatedAt)
	if err != nil {
		return fmt.Errorf("pgAssignmentRepository.Create: %w", err)
	}
	return nil
}

func (r *pgAssignmentRepository) FindByID(ctx context.Context, id string) (*model.Assignment, error) {
	query := `SELECT id, course_id, name, description, created_at FROM assignments WHERE id = $1`
	a := &model.Assignment{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&a.ID, &a.CourseID, &a.Name, &a.Description, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgAssignmentRepository.FindByID: %w", err)
	}
	return a, nil
}

func (r *pgAssignmentRepository) ListByCourseID(ctx context.Context, courseID string) ([]model.Assignment, error) {
	query := `SELECT id, course_id, name, description, created_at
	          FROM assignments WHERE course_id = $1 ORDER BY created_at ASC`
	rows, err := r.db.QueryContext(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("pgAssignmentRepository.ListByCourseID query: %w", err)
	}
	defer rows.Close()

	assignments := []model.Assignment{}
	for rows.Next() {
		var a model.Assignment
		if err := rows.Scan(&a.ID, &a.CourseID, &a.Name, &a.Description, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("pgAssignmentRepository.ListByCourseID scan: %w", err)
		}
		assignments = append(assignments, a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgAssignmentRepository.ListByCourseID rows.Err: %w", err)
	}
	return assignments, nil
}

func (r *pgAssignmentRepository) Update(ctx context.Context, a *model.Assignment) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE assignments SET name = $1, description = $2 WHERE id = $3`,
		a.Name, a.Description, a.ID)
	if err != nil {
		return fmt.Errorf("pgAssignmentRepository.Update: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgAssignmentRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM assignments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pgAssignmentRepository.Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

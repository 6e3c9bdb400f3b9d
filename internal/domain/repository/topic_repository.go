package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/xingyi1145/Waterloo-Assignment-Hub/internal/common"
	"github.com/xingyi1145/Waterloo-Assignment-Hub/internal/domain/model"
)

type TopicRepository interface {
	Create(ctx context.Context, topic *model.Topic) error
	FindByID(ctx context.Context, id string) (*model.Topic, error)
	ListByCourseID(ctx context.Context, courseID string) ([]model.Topic, error)
	Update(ctx context.Context, topic *model.Topic) error
	Delete(ctx context.Context, id string) error
}

type pgTopicRepository struct {
	db *sql.DB
}

func NewPgTopicRepository(db *sql.DB) TopicRepository {
	return &pgTopicRepository{db: db}
}

func (r *pgTopicRepository) Create(ctx context.Context, t *model.Topic) error {
	query := `INSERT INTO topics (id, course_id, title, description)
	          VALUES ($1, $2, $3, $4)
	          RETURNING created_at`
	err := r.db.QueryRowContext(ctx, query, t.ID, t.CourseID, t.Title, t.Description).Scan(&t.CreatedAt)
	if err != nil {
		return fmt.Errorf("pgTopicRepository.Create: %w", err)
	}
	return nil
}

func (r *pgTopicRepository) FindByID(ctx context.Context, id string) (*model.Topic, error) {
	query := `SELECT id, course_id, title, description, created_at FROM topics WHERE id = $1`
	t := &model.Topic{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&t.ID, &t.CourseID, &t.Title, &t.Description, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgTopicRepository.FindByID: %w", err)
	}
	return t, nil
}

func (r *pgTopicRepository) ListByCourseID(ctx context.Context, courseID string) ([]model.Topic, error) {
	query := `SELECT id, course_id, title, description, created_at
	          FROM topics WHERE course_id = $1 ORDER BY created_at ASC`
	rows, err := r.db.QueryContext(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("pgTopicRepository.ListByCourseID query: %w", err)
	}
	defer rows.Close()

	topics := []model.Topic{}
	for rows.Next() {
		var t model.Topic
		if err := rows.Scan(&t.ID, &t.CourseID, &t.Title, &t.Description, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("pgTopicRepository.ListByCourseID scan: %w", err)
		}
		topics = append(topics, t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgTopicRepository.ListByCourseID rows.Err: %w", err)
	}
	return topics, nil
}

func (r *pgTopicRepository) Update(ctx context.Context, t *model.Topic) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE topics SET title = $1, description = $2 WHERE id = $3`,
		t.Title, t.Description, t.ID)
	if err != nil {
		return fmt.Errorf("pgTopicRepository.Update: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgTopicRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM topics WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pgTopicRepository.Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

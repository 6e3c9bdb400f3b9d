package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/xingyi1145/Waterloo-Assignment-Hub/internal/common"
	"github.com/xingyi1145/Waterloo-Assignment-Hub/internal/domain/model"
)

type NoteRepository interface {
	Create(ctx context.Context, n *model.StudyNote) error
	FindByID(ctx context.Context, id string) (*model.StudyNote, error)
	ListByTopicID(ctx context.Context, topicID string) ([]model.StudyNote, error)
	Delete(ctx context.Context, tx *sql.Tx, id string) error

	// InsertLike returns false when the (user, note) pair already exists;
	// the composite primary key is the source of truth, not a prior read.
	InsertLike(ctx context.Context, tx *sql.Tx, userID, noteID string) (bool, error)
	IncrementLikes(ctx context.Context, tx *sql.Tx, noteID string) (int, error)
	ClearLikes(ctx context.Context, tx *sql.Tx, noteID string) error
}

type pgNoteRepository struct {
	db *sql.DB
}

func NewPgNoteRepository(db *sql.DB) NoteRepository {
	return &pgNoteRepository{db: db}
}

const noteColumns = `id, topic_id, author_id, title, content, COALESCE(summary, ''), COALESCE(resource_type, ''), likes_count, created_at`

func (r *pgNoteRepository) Create(ctx context.Context, n *model.StudyNote) error {
	query := `INSERT INTO study_notes (id, topic_id, author_id, title, content, summary, resource_type)
	          VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), NULLIF($7, ''))
	          RETURNING created_at`
	err := r.db.QueryRowContext(ctx, query,
		n.ID, n.TopicID, n.AuthorID, n.Title, n.Content, n.Summary, n.ResourceType,
	).Scan(&n.CreatedAt)
	if err != nil {
		return fmt.Errorf("pgNoteRepository.Create: %w", err)
	}
	return nil
}

func (r *pgNoteRepository) FindByID(ctx context.Context, id string) (*model.StudyNote, error) {
	query := fmt.Sprintf(`SELECT %s FROM study_notes WHERE id = $1`, noteColumns)
	n := &model.StudyNote{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&n.ID, &n.TopicID, &n.AuthorID, &n.Title, &n.Content, &n.Summary, &n.ResourceType, &n.LikesCount, &n.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgNoteRepository.FindByID: %w", err)
	}
	return n, nil
}

func (r *pgNoteRepository) ListByTopicID(ctx context.Context, topicID string) ([]model.StudyNote, error) {
	query := fmt.Sprintf(`SELECT %s FROM study_notes WHERE topic_id = $1 ORDER BY likes_count DESC, created_at DESC`, noteColumns)
	rows, err := r.db.QueryContext(ctx, query, topicID)
	if err != nil {
		return nil, fmt.Errorf("pgNoteRepository.ListByTopicID query: %w", err)
	}
	defer rows.Close()

	notes := []model.StudyNote{}
	for rows.Next() {
		var n model.StudyNote
		if err := rows.Scan(&n.ID, &n.TopicID, &n.AuthorID, &n.Title, &n.Content, &n.Summary, &n.ResourceType, &n.LikesCount, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("pgNoteRepository.ListByTopicID scan: %w", err)
		}
		notes = append(notes, n)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgNoteRepository.ListByTopicID rows.Err: %w", err)
	}
	return notes, nil
}

func (r *pgNoteRepository) Delete(ctx context.Context, tx *sql.Tx, id string) error {
	res, err := tx.ExecContext(ctx, `DELETE FROM study_notes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pgNoteRepository.Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgNoteRepository) InsertLike(ctx context.Context, tx *sql.Tx, userID, noteID string) (bool, error) {
	query := `INSERT INTO user_note_likes (user_id, note_id) VALUES ($1, $2)
	          ON CONFLICT DO NOTHING`
	res, err := tx.ExecContext(ctx, query, userID, noteID)
	if err != nil {
		return false, fmt.Errorf("pgNoteRepository.InsertLike: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("pgNoteRepository.InsertLike rows: %w", err)
	}
	return n == 1, nil
}

func (r *pgNoteRepository) IncrementLikes(ctx context.Context, tx *sql.Tx, noteID string) (int, error) {
	var likes int
	query := `UPDATE study_notes SET likes_count = likes_count + 1 WHERE id = $1 RETURNING likes_count`
	if err := tx.QueryRowContext(ctx, query, noteID).Scan(&likes); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, common.ErrNotFound
		}
		return 0, fmt.Errorf("pgNoteRepository.IncrementLikes: %w", err)
	}
	return likes, nil
}

func (r *pgNoteRepository) ClearLikes(ctx context.Context, tx *sql.Tx, noteID string) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM user_note_likes WHERE note_id = $1`, noteID); err != nil {
		return fmt.Errorf("pgNoteRepository.ClearLikes: %w", err)
	}
	return nil
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/xingyi1145/Waterloo-Assignment-Hub/internal/common"
	"github.com/xingyi1145/Waterloo-Assignment-Hub/internal/domain/model"
)

type CourseRepository interface {
	Create(ctx context.Context, course *model.Course) error
	FindByID(ctx context.Context, id string) (*model.Course, error)
	FindBySlug(ctx context.Context, slug string) (*model.Course, error)
	List(ctx context.Context) ([]model.Course, error)
	Update(ctx context.Context, course *model.Course) error
	Delete(ctx context.Context, tx *sql.Tx, id string) error

	Enroll(ctx context.Context, userID, courseID string) (bool, error)
	IsEnrolled(ctx context.Context, userID, courseID string) (bool, error)
	ClearEnrollments(ctx context.Context, tx *sql.Tx, courseID string) error
}

type pgCourseRepository struct {
	db *sql.DB
}

func NewPgCourseRepository(db *sql.DB) CourseRepository {
	return &pgCourseRepository{db: db}
}

const courseColumns = `id, code, name, description, slug, creator_id, created_at`

func (r *pgCourseRepository) Create(ctx context.Context, c *model.Course) error {
	query := `INSERT INTO courses (id, code, name, description, slug, creator_id)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING created_at`
	err := r.db.QueryRowContext(ctx, query, c.ID, c.Code, c.Name, c.Description, c.Slug, c.CreatorID).
		Scan(&c.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("course code already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgCourseRepository.Create: %w", err)
	}
	return nil
}

func (r *pgCourseRepository) FindByID(ctx context.Context, id string) (*model.Course, error) {
	return r.findOne(ctx, "id", id)
}

func (r *pgCourseRepository) FindBySlug(ctx context.Context, slug string) (*model.Course, error) {
	return r.findOne(ctx, "slug", slug)
}

func (r *pgCourseRepository) findOne(ctx context.Context, column, value string) (*model.Course, error) {
	query := fmt.Sprintf(`SELECT %s FROM courses WHERE %s = $1`, courseColumns, column)
	c := &model.Course{}
	err := r.db.QueryRowContext(ctx, query, value).Scan(
		&c.ID, &c.Code, &c.Name, &c.Description, &c.Slug, &c.CreatorID, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgCourseRepository.findOne(%s): %w", column, err)
	}
	return c, nil
}

func (r *pgCourseRepository) List(ctx context.Context) ([]model.Course, error) {
	query := fmt.Sprintf(`SELECT %s FROM courses ORDER BY created_at DESC`, courseColumns)
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pgCourseRepository.List query: %w", err)
	}
	defer rows.Close()

	courses := []model.Course{}
	for rows.Next() {
		var c model.Course
		if err := rows.Scan(&c.ID, &c.Code, &c.Name, &c.Description, &c.Slug, &c.CreatorID, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("pgCourseRepository.List scan: %w", err)
		}
		courses = append(courses, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgCourseRepository.List rows.Err: %w", err)
	}
	return courses, nil
}

func (r *pgCourseRepository) Update(ctx context.Context, c *model.Course) error {
	query := `UPDATE courses SET code = $1, name = $2, description = $3, slug = $4 WHERE id = $5`
	res, err := r.db.ExecContext(ctx, query, c.Code, c.Name, c.Description, c.Slug, c.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("course code already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgCourseRepository.Update: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

// Delete removes the course row itself. Enrollment rows must be cleared
// first (ClearEnrollments) inside the same transaction; child rows follow
// the declared cascade rules.
func (r *pgCourseRepository) Delete(ctx context.Context, tx *sql.Tx, id string) error {
	res, err := tx.ExecContext(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pgCourseRepository.Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

// Enroll inserts the enrollment row. The second return is false when the
// user was already enrolled (composite primary key hit).
func (r *pgCourseRepository) Enroll(ctx context.Context, userID, courseID string) (bool, error) {
	query := `INSERT INTO user_courses (user_id, course_id) VALUES ($1, $2)
	          ON CONFLICT DO NOTHING`
	res, err := r.db.ExecContext(ctx, query, userID, courseID)
	if err != nil {
		return false, fmt.Errorf("pgCourseRepository.Enroll: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("pgCourseRepository.Enroll rows: %w", err)
	}
	return n == 1, nil
}

func (r *pgCourseRepository) IsEnrolled(ctx context.Context, userID, courseID string) (bool, error) {
	var enrolled bool
	query := `SELECT EXISTS(SELECT 1 FROM user_courses WHERE user_id = $1 AND course_id = $2)`
	if err := r.db.QueryRowContext(ctx, query, userID, courseID).Scan(&enrolled); err != nil {
		return false, fmt.Errorf("pgCourseRepository.IsEnrolled: %w", err)
	}
	return enrolled, nil
}

func (r *pgCourseRepository) ClearEnrollments(ctx context.Context, tx *sql.Tx, courseID string) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM user_courses WHERE course_id = $1`, courseID); err != nil {
		return fmt.Errorf("pgCourseRepository.ClearEnrollments: %w", err)
	}
	return nil
}

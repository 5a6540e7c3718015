package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/oti-labs/studify-api/internal/models"
)

// UserLessonRepository provides persistence for user-created lessons and
// tasks.
type UserLessonRepository struct {
	db *sqlx.DB
}

// NewUserLessonRepository creates a new user lesson repository.
func NewUserLessonRepository(db *sqlx.DB) *UserLessonRepository {
	return &UserLessonRepository{db: db}
}

const userLessonColumns = "id, day, start_time, end_time, subject, type, teacher, room, notes, due_date, is_completed, completed_at, created_at, updated_at"

// List returns every user lesson ordered by day and start time.
func (r *UserLessonRepository) List(ctx context.Context) ([]models.UserLesson, error) {
	query := fmt.Sprintf("SELECT %s FROM user_lessons ORDER BY day ASC, start_time ASC", userLessonColumns)
	var lessons []models.UserLesson
	if err := r.db.SelectContext(ctx, &lessons, query); err != nil {
		return nil, fmt.Errorf("list user lessons: %w", err)
	}
	return lessons, nil
}

// FindByID loads one user lesson.
func (r *UserLessonRepository) FindByID(ctx context.Context, id int64) (*models.UserLesson, error) {
	query := fmt.Sprintf("SELECT %s FROM user_lessons WHERE id = $1", userLessonColumns)
	var lesson models.UserLesson
	if err := r.db.GetContext(ctx, &lesson, query, id); err != nil {
		return nil, err
	}
	return &lesson, nil
}

// Create inserts a new lesson and fills in its generated id.
func (r *UserLessonRepository) Create(ctx context.Context, lesson *models.UserLesson) error {
	now := time.Now().UTC()
	lesson.CreatedAt = now
	lesson.UpdatedAt = now

	const query = `INSERT INTO user_lessons (day, start_time, end_time, subject, type, teacher, room, notes, due_date, is_completed, completed_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13) RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query,
		lesson.Day, lesson.StartTime, lesson.EndTime, lesson.Subject, lesson.Type,
		lesson.Teacher, lesson.Room, lesson.Notes, lesson.DueDate,
		lesson.IsCompleted, lesson.CompletedAt, lesson.CreatedAt, lesson.UpdatedAt,
	).Scan(&lesson.ID); err != nil {
		return fmt.Errorf("create user lesson: %w", err)
	}
	return nil
}

// Update replaces a lesson's fields in place by id.
func (r *UserLessonRepository) Update(ctx context.Context, lesson *models.UserLesson) error {
	lesson.UpdatedAt = time.Now().UTC()

	const query = `UPDATE user_lessons SET day = :day, start_time = :start_time, end_time = :end_time,
		subject = :subject, type = :type, teacher = :teacher, room = :room, notes = :notes,
		due_date = :due_date, is_completed = :is_completed, completed_at = :completed_at,
		updated_at = :updated_at WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, lesson)
	if err != nil {
		return fmt.Errorf("update user lesson: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("update user lesson %d: no such row", lesson.ID)
	}
	return nil
}

// Delete removes a lesson by id.
func (r *UserLessonRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM user_lessons WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete user lesson: %w", err)
	}
	return nil
}

// ClearAll removes every user lesson. Executed by the schedule version
// guard.
func (r *UserLessonRepository) ClearAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM user_lessons"); err != nil {
		return fmt.Errorf("clear user lessons: %w", err)
	}
	return nil
}

// DeleteCompletedBefore removes completed tasks whose completion date
// falls before the cutoff. Rows flagged completed without a usable date
// are treated as stale and removed as well.
func (r *UserLessonRepository) DeleteCompletedBefore(ctx context.Context, cutoff string) (int64, error) {
	const query = `DELETE FROM user_lessons WHERE is_completed = TRUE AND (completed_at IS NULL OR completed_at < $1)`
	res, err := r.db.ExecContext(ctx, query, cutoff)
	if err != nil {
		return 0, fmt.Errorf("sweep completed user lessons: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("sweep completed user lessons: %w", err)
	}
	return affected, nil
}

package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// HiddenLessonRepository stores the stable keys of official lessons the
// user has suppressed. The schedule document itself is never modified;
// hidden entries are filtered out at reconciliation time.
type HiddenLessonRepository struct {
	db *sqlx.DB
}

// NewHiddenLessonRepository creates a new hidden lesson repository.
func NewHiddenLessonRepository(db *sqlx.DB) *HiddenLessonRepository {
	return &HiddenLessonRepository{db: db}
}

// Keys returns all hidden lesson keys.
func (r *HiddenLessonRepository) Keys(ctx context.Context) ([]string, error) {
	var keys []string
	if err := r.db.SelectContext(ctx, &keys, "SELECT lesson_key FROM hidden_lessons ORDER BY lesson_key"); err != nil {
		return nil, fmt.Errorf("list hidden lesson keys: %w", err)
	}
	return keys, nil
}

// Hide marks a lesson key as hidden. Hiding an already hidden key is a
// no-op.
func (r *HiddenLessonRepository) Hide(ctx context.Context, key string) error {
	const query = `INSERT INTO hidden_lessons (lesson_key, created_at) VALUES ($1, $2) ON CONFLICT (lesson_key) DO NOTHING`
	if _, err := r.db.ExecContext(ctx, query, key, time.Now().UTC()); err != nil {
		return fmt.Errorf("hide lesson: %w", err)
	}
	return nil
}

// Unhide removes a key from the hidden set.
func (r *HiddenLessonRepository) Unhide(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM hidden_lessons WHERE lesson_key = $1", key); err != nil {
		return fmt.Errorf("unhide lesson: %w", err)
	}
	return nil
}

// ClearAll empties the hidden set. Executed by the schedule version guard.
func (r *HiddenLessonRepository) ClearAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM hidden_lessons"); err != nil {
		return fmt.Errorf("clear hidden lessons: %w", err)
	}
	return nil
}

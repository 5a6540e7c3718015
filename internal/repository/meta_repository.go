package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// MetaKeyScheduleVersion stores the generated_from identifier of the last
// schedule document the version guard accepted.
const MetaKeyScheduleVersion = "last_schedule_version"

// MetaRepository is a small key/value store for engine bookkeeping, the
// schedule version marker foremost.
type MetaRepository struct {
	db *sqlx.DB
}

// NewMetaRepository creates a new meta repository.
func NewMetaRepository(db *sqlx.DB) *MetaRepository {
	return &MetaRepository{db: db}
}

// Get returns the stored value for key, or "" when the key is absent.
func (r *MetaRepository) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.GetContext(ctx, &value, "SELECT value FROM app_meta WHERE key = $1", key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get meta %s: %w", key, err)
	}
	return value, nil
}

// Set stores the value for key, replacing any previous value.
func (r *MetaRepository) Set(ctx context.Context, key, value string) error {
	const query = `INSERT INTO app_meta (key, value, updated_at) VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`
	if _, err := r.db.ExecContext(ctx, query, key, value, time.Now().UTC()); err != nil {
		return fmt.Errorf("set meta %s: %w", key, err)
	}
	return nil
}

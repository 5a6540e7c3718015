package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/oti-labs/studify-api/internal/models"
)

// AttendanceRepository persists per-lesson presence marks. The unique
// (lesson_key, date) index enforces the at-most-one-record invariant;
// writes replace.
type AttendanceRepository struct {
	db *sqlx.DB
}

// NewAttendanceRepository creates a new attendance repository.
func NewAttendanceRepository(db *sqlx.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

const attendanceColumns = "id, lesson_key, date, subject, is_present, created_at, updated_at"

// List returns every attendance record.
func (r *AttendanceRepository) List(ctx context.Context) ([]models.AttendanceRecord, error) {
	query := fmt.Sprintf("SELECT %s FROM attendance ORDER BY date DESC, lesson_key", attendanceColumns)
	var records []models.AttendanceRecord
	if err := r.db.SelectContext(ctx, &records, query); err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	return records, nil
}

// Find loads the record for one lesson on one date, if present.
func (r *AttendanceRepository) Find(ctx context.Context, date, lessonKey string) (*models.AttendanceRecord, error) {
	query := fmt.Sprintf("SELECT %s FROM attendance WHERE date = $1 AND lesson_key = $2", attendanceColumns)
	var record models.AttendanceRecord
	if err := r.db.GetContext(ctx, &record, query, date, lessonKey); err != nil {
		return nil, err
	}
	return &record, nil
}

// Upsert inserts or replaces the record for (lesson_key, date).
func (r *AttendanceRepository) Upsert(ctx context.Context, record *models.AttendanceRecord) error {
	now := time.Now().UTC()
	record.UpdatedAt = now
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}

	const query = `INSERT INTO attendance (lesson_key, date, subject, is_present, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (lesson_key, date)
		DO UPDATE SET subject = EXCLUDED.subject, is_present = EXCLUDED.is_present, updated_at = EXCLUDED.updated_at
		RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query,
		record.LessonKey, record.Date, record.Subject, record.IsPresent, record.CreatedAt, record.UpdatedAt,
	).Scan(&record.ID); err != nil {
		return fmt.Errorf("upsert attendance: %w", err)
	}
	return nil
}

// ClearAll removes every attendance record. Executed by the schedule
// version guard.
func (r *AttendanceRepository) ClearAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM attendance"); err != nil {
		return fmt.Errorf("clear attendance: %w", err)
	}
	return nil
}

package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oti-labs/studify-api/internal/models"
)

func errNoRows() error { return sql.ErrNoRows }

func TestAttendanceRepositoryUpsert(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewAttendanceRepository(db)
	mock.ExpectQuery("INSERT INTO attendance").
		WithArgs("key-1", "2026-08-31", "Databases", true, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))

	record := &models.AttendanceRecord{LessonKey: "key-1", Date: "2026-08-31", Subject: "Databases", IsPresent: true}
	require.NoError(t, repo.Upsert(context.Background(), record))
	assert.Equal(t, int64(5), record.ID)
}

func TestAttendanceRepositoryFind(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewAttendanceRepository(db)
	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "lesson_key", "date", "subject", "is_present", "created_at", "updated_at"}).
		AddRow(5, "key-1", "2026-08-31", "Databases", false, now, now)
	mock.ExpectQuery("SELECT (.+) FROM attendance WHERE date").
		WithArgs("2026-08-31", "key-1").
		WillReturnRows(rows)

	record, err := repo.Find(context.Background(), "2026-08-31", "key-1")
	require.NoError(t, err)
	assert.False(t, record.IsPresent)
	assert.Equal(t, "key-1", record.LessonKey)
}

func TestAttendanceRepositoryClearAll(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewAttendanceRepository(db)
	mock.ExpectExec("DELETE FROM attendance").
		WillReturnResult(sqlmock.NewResult(0, 2))

	require.NoError(t, repo.ClearAll(context.Background()))
}

func TestMetaRepositoryGetMissingKey(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewMetaRepository(db)
	mock.ExpectQuery("SELECT value FROM app_meta").
		WithArgs(MetaKeyScheduleVersion).
		WillReturnError(errNoRows())

	value, err := repo.Get(context.Background(), MetaKeyScheduleVersion)
	require.NoError(t, err)
	assert.Empty(t, value)
}

func TestMetaRepositorySet(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewMetaRepository(db)
	mock.ExpectExec("INSERT INTO app_meta").
		WithArgs(MetaKeyScheduleVersion, "v2", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Set(context.Background(), MetaKeyScheduleVersion, "v2"))
}

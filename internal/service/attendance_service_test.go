package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oti-labs/studify-api/internal/dto"
	"github.com/oti-labs/studify-api/internal/models"
	appErrors "github.com/oti-labs/studify-api/pkg/errors"
)

type mockAttendanceStore struct {
	records   []models.AttendanceRecord
	upserted  []*models.AttendanceRecord
	upsertErr error
}

func (m *mockAttendanceStore) List(_ context.Context) ([]models.AttendanceRecord, error) {
	return m.records, nil
}

func (m *mockAttendanceStore) Find(_ context.Context, date, lessonKey string) (*models.AttendanceRecord, error) {
	for i := range m.records {
		if m.records[i].Date == date && m.records[i].LessonKey == lessonKey {
			return &m.records[i], nil
		}
	}
	return nil, appErrors.ErrNotFound
}

func (m *mockAttendanceStore) Upsert(_ context.Context, record *models.AttendanceRecord) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.upserted = append(m.upserted, record)
	for i := range m.records {
		if m.records[i].Date == record.Date && m.records[i].LessonKey == record.LessonKey {
			m.records[i] = *record
			return nil
		}
	}
	m.records = append(m.records, *record)
	return nil
}

const testLessonKey = "0123456789abcdef0123456789abcdef01234567"

func TestAttendanceServiceMarkDefaultsDateToToday(t *testing.T) {
	store := &mockAttendanceStore{}
	svc := NewAttendanceService(AttendanceServiceParams{
		Store: store,
		Now:   fixedNow(t, "2026-08-31 10:15"),
	})

	record, err := svc.Mark(context.Background(), &dto.AttendanceRequest{
		LessonKey: testLessonKey,
		Subject:   "Databases",
		IsPresent: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "2026-08-31", record.Date)
	assert.True(t, record.IsPresent)
}

func TestAttendanceServiceRemarkOverwrites(t *testing.T) {
	store := &mockAttendanceStore{}
	svc := NewAttendanceService(AttendanceServiceParams{Store: store})

	req := &dto.AttendanceRequest{
		LessonKey: testLessonKey,
		Date:      "2026-08-31",
		Subject:   "Databases",
		IsPresent: true,
	}
	_, err := svc.Mark(context.Background(), req)
	require.NoError(t, err)

	req.IsPresent = false
	_, err = svc.Mark(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, store.records, 1)
	assert.False(t, store.records[0].IsPresent)
}

func TestAttendanceServiceMarkRejectsMalformedKey(t *testing.T) {
	svc := NewAttendanceService(AttendanceServiceParams{Store: &mockAttendanceStore{}})

	cases := []string{
		"",
		"short",
		strings.Repeat("g", 40),
		strings.Repeat("a", 41),
	}
	for _, key := range cases {
		_, err := svc.Mark(context.Background(), &dto.AttendanceRequest{
			LessonKey: key,
			Subject:   "Databases",
		})
		require.Error(t, err, "key %q", key)
		assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	}
}

func TestAttendanceServiceListNeverReturnsNil(t *testing.T) {
	svc := NewAttendanceService(AttendanceServiceParams{Store: &mockAttendanceStore{}})

	records, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

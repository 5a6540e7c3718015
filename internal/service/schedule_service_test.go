package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oti-labs/studify-api/internal/models"
	"github.com/oti-labs/studify-api/internal/repository"
	"github.com/oti-labs/studify-api/internal/timetable"
)

type mockDocumentSource struct {
	doc         *models.ScheduleDocument
	err         error
	getCalls    int
	invalidated int
}

func (m *mockDocumentSource) Get(_ context.Context) (*models.ScheduleDocument, error) {
	m.getCalls++
	if m.err != nil {
		return nil, m.err
	}
	return m.doc, nil
}

func (m *mockDocumentSource) Invalidate() { m.invalidated++ }

type mockMetaStore struct {
	values map[string]string
	getErr error
	setErr error
}

func (m *mockMetaStore) Get(_ context.Context, key string) (string, error) {
	if m.getErr != nil {
		return "", m.getErr
	}
	return m.values[key], nil
}

func (m *mockMetaStore) Set(_ context.Context, key, value string) error {
	if m.setErr != nil {
		return m.setErr
	}
	if m.values == nil {
		m.values = map[string]string{}
	}
	m.values[key] = value
	return nil
}

type mockResettable struct {
	calls int
	err   error
}

func (m *mockResettable) ClearAll(_ context.Context) error {
	m.calls++
	return m.err
}

type mockOfficialFeed struct {
	group   string
	version string
	index   map[models.Weekday][]timetable.ViewLesson
	calls   int
}

func (m *mockOfficialFeed) SetOfficial(group, version string, index map[models.Weekday][]timetable.ViewLesson) {
	m.group = group
	m.version = version
	m.index = index
	m.calls++
}

func scheduleFixture(version string) *models.ScheduleDocument {
	return &models.ScheduleDocument{
		Group:         "SE-201",
		GeneratedFrom: version,
		Lessons: []models.OfficialLesson{
			{Day: models.Monday, TimeRange: "09:00-10:30", Subject: "Databases"},
			{Day: models.Monday, TimeRange: "10:40-12:10", Subject: "Networks"},
			{Day: models.Wednesday, TimeRange: "09:00-10:30", Subject: "Economics"},
		},
	}
}

func newScheduleFixture(source *mockDocumentSource, meta *mockMetaStore) (*ScheduleService, *mockResettable, *mockResettable, *mockResettable, *mockOfficialFeed) {
	lessons := &mockResettable{}
	hidden := &mockResettable{}
	attendance := &mockResettable{}
	feed := &mockOfficialFeed{}
	svc := NewScheduleService(ScheduleServiceParams{
		Source:     source,
		Meta:       meta,
		Lessons:    lessons,
		Hidden:     hidden,
		Attendance: attendance,
		Feed:       feed,
	})
	return svc, lessons, hidden, attendance, feed
}

func TestScheduleServiceFirstLoadRecordsVersionWithoutReset(t *testing.T) {
	source := &mockDocumentSource{doc: scheduleFixture("timetable-2026-spring.xlsx")}
	meta := &mockMetaStore{}
	svc, lessons, hidden, attendance, feed := newScheduleFixture(source, meta)

	doc, err := svc.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, doc)

	assert.Zero(t, lessons.calls)
	assert.Zero(t, hidden.calls)
	assert.Zero(t, attendance.calls)
	assert.Equal(t, "timetable-2026-spring.xlsx", meta.values[repository.MetaKeyScheduleVersion])
	assert.Equal(t, 1, feed.calls)
	assert.Equal(t, "SE-201", feed.group)
}

func TestScheduleServiceVersionChangeResetsUserData(t *testing.T) {
	source := &mockDocumentSource{doc: scheduleFixture("timetable-2026-fall.xlsx")}
	meta := &mockMetaStore{values: map[string]string{
		repository.MetaKeyScheduleVersion: "timetable-2026-spring.xlsx",
	}}
	svc, lessons, hidden, attendance, _ := newScheduleFixture(source, meta)

	_, err := svc.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, lessons.calls)
	assert.Equal(t, 1, hidden.calls)
	assert.Equal(t, 1, attendance.calls)
	assert.Equal(t, "timetable-2026-fall.xlsx", meta.values[repository.MetaKeyScheduleVersion])
}

func TestScheduleServiceSameVersionIsIdempotent(t *testing.T) {
	source := &mockDocumentSource{doc: scheduleFixture("timetable-2026-spring.xlsx")}
	meta := &mockMetaStore{values: map[string]string{
		repository.MetaKeyScheduleVersion: "timetable-2026-spring.xlsx",
	}}
	svc, lessons, hidden, attendance, feed := newScheduleFixture(source, meta)

	for i := 0; i < 3; i++ {
		_, err := svc.Load(context.Background())
		require.NoError(t, err)
	}

	assert.Zero(t, lessons.calls)
	assert.Zero(t, hidden.calls)
	assert.Zero(t, attendance.calls)
	assert.Equal(t, 3, feed.calls)
}

func TestScheduleServiceResetFailureKeepsOldVersion(t *testing.T) {
	source := &mockDocumentSource{doc: scheduleFixture("timetable-2026-fall.xlsx")}
	meta := &mockMetaStore{values: map[string]string{
		repository.MetaKeyScheduleVersion: "timetable-2026-spring.xlsx",
	}}
	lessons := &mockResettable{err: errors.New("db down")}
	svc := NewScheduleService(ScheduleServiceParams{
		Source:  source,
		Meta:    meta,
		Lessons: lessons,
	})

	_, err := svc.Load(context.Background())
	require.Error(t, err)
	assert.Equal(t, "timetable-2026-spring.xlsx", meta.values[repository.MetaKeyScheduleVersion])
}

func TestScheduleServiceIndexGroupsByDay(t *testing.T) {
	svc := NewScheduleService(ScheduleServiceParams{})
	doc := scheduleFixture("v1")
	doc.Lessons = append(doc.Lessons, models.OfficialLesson{Day: "FIRSTDAY", TimeRange: "08:00-09:30", Subject: "Mystery"})

	index := svc.Index(doc)

	require.Len(t, index[models.Monday], 2)
	require.Len(t, index[models.Wednesday], 1)
	assert.NotContains(t, index, models.Weekday("FIRSTDAY"))
	assert.Equal(t, "Databases", index[models.Monday][0].Lesson.Subject)
	assert.NotEmpty(t, index[models.Monday][0].StableKey)
}

func TestScheduleServiceReloadInvalidatesSource(t *testing.T) {
	source := &mockDocumentSource{doc: scheduleFixture("v1")}
	meta := &mockMetaStore{}
	svc, _, _, _, _ := newScheduleFixture(source, meta)

	_, err := svc.Reload(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, source.invalidated)
	assert.Equal(t, 1, source.getCalls)
}

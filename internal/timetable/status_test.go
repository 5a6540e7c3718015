package timetable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oti-labs/studify-api/internal/models"
)

func mondayLessons() []ViewLesson {
	return []ViewLesson{
		official(models.Monday, "9:00-10:30", "Databases", nil),
		official(models.Monday, "10:40-12:10", "Networks", nil),
	}
}

func TestStatusAtInProgress(t *testing.T) {
	// Scenario: now=10:15 inside [9:00, 10:30).
	st := StatusAt(mondayLessons(), MinuteOf(10, 15))
	require.Equal(t, StatusInProgress, st.Kind)
	require.NotNil(t, st.Lesson)
	assert.Equal(t, "Databases", st.Lesson.Lesson.Subject)
	assert.Equal(t, 15, st.Minutes)
}

func TestStatusAtBoundaries(t *testing.T) {
	lessons := mondayLessons()

	// Start is inclusive, end is exclusive.
	assert.Equal(t, StatusInProgress, StatusAt(lessons, MinuteOf(9, 0)).Kind)
	st := StatusAt(lessons, MinuteOf(10, 30))
	assert.Equal(t, StatusUpNext, st.Kind)
	assert.Equal(t, "Networks", st.Lesson.Lesson.Subject)
	assert.Equal(t, 10, st.Minutes)
}

func TestStatusAtUpNextBeforeFirst(t *testing.T) {
	st := StatusAt(mondayLessons(), MinuteOf(7, 0))
	require.Equal(t, StatusUpNext, st.Kind)
	assert.Equal(t, "Databases", st.Lesson.Lesson.Subject)
	assert.Equal(t, 120, st.Minutes)
}

func TestStatusAtDayEnded(t *testing.T) {
	st := StatusAt(mondayLessons(), MinuteOf(18, 0))
	assert.Equal(t, StatusDayEnded, st.Kind)
	assert.Nil(t, st.Lesson)
}

func TestStatusAtNoLessons(t *testing.T) {
	assert.Equal(t, StatusNoLessons, StatusAt(nil, MinuteOf(12, 0)).Kind)

	// Only unparseable or inactive lessons: same answer.
	broken := official(models.Monday, "soon", "Mystery", nil)
	inactive := official(models.Monday, "9:00-10:30", "Databases", weekTypePtr(models.WeekTypeOdd))
	inactive.IsActiveWeek = false
	assert.Equal(t, StatusNoLessons, StatusAt([]ViewLesson{broken, inactive}, MinuteOf(9, 30)).Kind)
}

func TestStatusAtSkipsCancelled(t *testing.T) {
	lessons := mondayLessons()
	lessons[0].IsCancelled = true

	st := StatusAt(lessons, MinuteOf(9, 30))
	require.Equal(t, StatusUpNext, st.Kind)
	assert.Equal(t, "Networks", st.Lesson.Lesson.Subject)
}

func TestNextUpcoming(t *testing.T) {
	lessons := mondayLessons()

	next := NextUpcoming(lessons, MinuteOf(9, 30))
	require.NotNil(t, next)
	assert.Equal(t, "Networks", next.Lesson.Subject)

	assert.Nil(t, NextUpcoming(lessons, MinuteOf(13, 0)))

	// Strictly after: a lesson starting exactly now is not upcoming.
	assert.Equal(t, "Networks", NextUpcoming(lessons, MinuteOf(9, 0)).Lesson.Subject)
}

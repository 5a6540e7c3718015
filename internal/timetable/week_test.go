package timetable

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/oti-labs/studify-api/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func TestIsOddWeekFlipsAtWeekBoundary(t *testing.T) {
	// 2026-01-05 is the Monday of ISO week 2.
	sunday := date(2026, time.January, 4)
	monday := date(2026, time.January, 5)

	assert.True(t, IsOddWeek(sunday), "week 1 is odd")
	assert.False(t, IsOddWeek(monday), "week 2 is even")
}

func TestIsOddWeekIdempotentWithinWeek(t *testing.T) {
	// Monday through Sunday of ISO week 11, 2026.
	start := date(2026, time.March, 9)
	want := IsOddWeek(start)
	for i := 1; i < 7; i++ {
		assert.Equal(t, want, IsOddWeek(start.AddDate(0, 0, i)))
	}
}

func TestActiveThisWeek(t *testing.T) {
	odd := models.WeekTypeOdd
	even := models.WeekTypeEven

	assert.True(t, ActiveThisWeek(nil, true))
	assert.True(t, ActiveThisWeek(nil, false))
	assert.True(t, ActiveThisWeek(&odd, true))
	assert.False(t, ActiveThisWeek(&odd, false))
	assert.False(t, ActiveThisWeek(&even, true))
	assert.True(t, ActiveThisWeek(&even, false))
}

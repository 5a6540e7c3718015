package timetable

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oti-labs/studify-api/internal/models"
)

func noCancelled() map[string]struct{} { return map[string]struct{}{} }

func TestVibeWeekend(t *testing.T) {
	assert.Equal(t, VibeWeekend, VibeAt(mondayLessons(), MinuteOf(9, 30), true, noCancelled()))
	assert.Equal(t, VibeWeekend, VibeAt(nil, MinuteOf(9, 30), false, noCancelled()))

	// Only off-week lessons: nothing actually happens this week.
	inactive := official(models.Saturday, "9:00-10:30", "Databases", weekTypePtr(models.WeekTypeOdd))
	inactive.IsActiveWeek = false
	assert.Equal(t, VibeWeekend, VibeAt([]ViewLesson{inactive}, MinuteOf(9, 30), false, noCancelled()))
}

func TestVibeDayDone(t *testing.T) {
	assert.Equal(t, VibeDayDone, VibeAt(mondayLessons(), MinuteOf(20, 0), false, noCancelled()))
}

func TestVibeWarmup(t *testing.T) {
	// 45 minutes or less before the first lesson.
	assert.Equal(t, VibeWarmup, VibeAt(mondayLessons(), MinuteOf(8, 20), false, noCancelled()))
	assert.Equal(t, VibeWarmup, VibeAt(mondayLessons(), MinuteOf(8, 15), false, noCancelled()))
	// Further out it is just a break.
	assert.Equal(t, VibeBreak, VibeAt(mondayLessons(), MinuteOf(7, 0), false, noCancelled()))
}

func TestVibeInClassAndFinalStretch(t *testing.T) {
	// 9:00-10:30 lesson: more than 40 minutes left at 9:10.
	assert.Equal(t, VibeInClass, VibeAt(mondayLessons(), MinuteOf(9, 10), false, noCancelled()))
	// 40 minutes or less left at 9:50.
	assert.Equal(t, VibeFinalStretch, VibeAt(mondayLessons(), MinuteOf(9, 50), false, noCancelled()))
}

func TestVibeCancelledLesson(t *testing.T) {
	lessons := mondayLessons()
	cancelled := map[string]struct{}{lessons[0].StableKey: {}}

	assert.Equal(t, VibeCancelled, VibeAt(lessons, MinuteOf(9, 30), false, cancelled))
	// The second lesson is unaffected.
	assert.Equal(t, VibeInClass, VibeAt(lessons, MinuteOf(10, 45), false, cancelled))
}

func TestVibeBreakBetweenLessons(t *testing.T) {
	lessons := []ViewLesson{
		official(models.Monday, "9:00-10:30", "Databases", nil),
		official(models.Monday, "12:00-13:30", "Networks", nil),
	}
	assert.Equal(t, VibeBreak, VibeAt(lessons, MinuteOf(11, 0), false, noCancelled()))
}

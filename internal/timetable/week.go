package timetable

import (
	"time"

	"github.com/oti-labs/studify-api/internal/models"
)

// IsOddWeek reports whether the ISO week (Monday-start week numbering)
// containing date has an odd week number. The caller re-evaluates this
// whenever the calendar day changes; the app may run across midnight.
func IsOddWeek(date time.Time) bool {
	_, week := date.ISOWeek()
	return week%2 != 0
}

// ActiveThisWeek evaluates the odd/even alternation filter: a lesson with
// no week type runs every week, otherwise its type must match the current
// parity.
func ActiveThisWeek(weekType *models.WeekType, isOdd bool) bool {
	if weekType == nil {
		return true
	}
	switch *weekType {
	case models.WeekTypeOdd:
		return isOdd
	case models.WeekTypeEven:
		return !isOdd
	default:
		return true
	}
}

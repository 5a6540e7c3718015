package dto

import (
	"github.com/oti-labs/studify-api/internal/models"
	"github.com/oti-labs/studify-api/internal/timetable"
)

// DayView is one reconciled day as served to clients.
type DayView struct {
	Day     models.Weekday         `json:"day"`
	Lessons []timetable.ViewLesson `json:"lessons"`
}

// WeekView is the full reconciled week plus document metadata.
type WeekView struct {
	Group     string    `json:"group"`
	Version   string    `json:"version"`
	IsOddWeek bool      `json:"is_odd_week"`
	Days      []DayView `json:"days"`
}

// StatusView answers the live now/next query for today.
type StatusView struct {
	Day    models.Weekday      `json:"day"`
	Now    string              `json:"now"`
	Status timetable.DayStatus `json:"status"`
	Vibe   timetable.Vibe      `json:"vibe"`
}

// NextLessonView is the reminder-facing answer to nextUpcoming.
type NextLessonView struct {
	Lesson       *timetable.ViewLesson `json:"lesson,omitempty"`
	MinutesUntil int                   `json:"minutes_until,omitempty"`
}

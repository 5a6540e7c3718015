package models

import "time"

// AttendanceRecord marks presence for one lesson on one calendar date.
// At most one record exists per (lesson_key, date) pair; writes replace.
type AttendanceRecord struct {
	ID        int64     `db:"id" json:"id"`
	LessonKey string    `db:"lesson_key" json:"lesson_key"`
	Date      string    `db:"date" json:"date"`
	Subject   string    `db:"subject" json:"subject"`
	IsPresent bool      `db:"is_present" json:"is_present"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// HiddenLesson is a persisted suppression of one official lesson,
// addressed by its stable key. Distinct from the session-scoped
// cancelled set: hiding survives restarts, cancelling does not.
type HiddenLesson struct {
	LessonKey string    `db:"lesson_key" json:"lesson_key"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

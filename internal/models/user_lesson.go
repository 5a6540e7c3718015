package models

import "time"

// UserLesson is a locally owned class or task entry, fully editable by
// the user. Dates are stored as YYYY-MM-DD text to match the wire format.
type UserLesson struct {
	ID          int64     `db:"id" json:"id"`
	Day         Weekday   `db:"day" json:"day"`
	StartTime   string    `db:"start_time" json:"start_time"`
	EndTime     string    `db:"end_time" json:"end_time"`
	Subject     string    `db:"subject" json:"subject"`
	Type        *string   `db:"type" json:"type,omitempty"`
	Teacher     *string   `db:"teacher" json:"teacher,omitempty"`
	Room        *string   `db:"room" json:"room,omitempty"`
	Notes       *string   `db:"notes" json:"notes,omitempty"`
	DueDate     *string   `db:"due_date" json:"due_date,omitempty"`
	IsCompleted bool      `db:"is_completed" json:"is_completed"`
	CompletedAt *string   `db:"completed_at" json:"completed_at,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// AsOfficial materialises the user lesson as an official-shaped lesson so
// key derivation and classification treat both sources uniformly. The
// derived key stays stable across edits that leave day/time/subject/type
// untouched, which keeps attendance associations intact.
func (l UserLesson) AsOfficial() OfficialLesson {
	return OfficialLesson{
		Day:       l.Day,
		TimeRange: l.StartTime + "-" + l.EndTime,
		Subject:   l.Subject,
		Type:      l.Type,
		Teacher:   l.Teacher,
		Room:      l.Room,
	}
}

package dto

// LessonRequest describes the payload for creating or updating a user
// lesson. Times are HH:MM, dates are YYYY-MM-DD.
type LessonRequest struct {
	Day       string  `json:"day" validate:"required,weekday"`
	StartTime string  `json:"start_time" validate:"required,hhmm"`
	EndTime   string  `json:"end_time" validate:"required,hhmm"`
	Subject   string  `json:"subject" validate:"required"`
	Type      *string `json:"type"`
	Teacher   *string `json:"teacher"`
	Room      *string `json:"room"`
	Notes     *string `json:"notes"`
	DueDate   *string `json:"due_date" validate:"omitempty,dateymd"`
}

// CompletionRequest toggles task completion state.
type CompletionRequest struct {
	IsCompleted bool `json:"is_completed"`
}

// HideLessonRequest suppresses an official lesson by content. The server
// derives the stable key so clients never compute digests themselves.
type HideLessonRequest struct {
	Day       string  `json:"day" validate:"required,weekday"`
	TimeRange string  `json:"time" validate:"required"`
	Subject   string  `json:"subject" validate:"required"`
	Type      *string `json:"type"`
	WeekType  *string `json:"weekType" validate:"omitempty,oneof=odd even"`
}

// AttendanceRequest marks presence for a lesson on a date.
type AttendanceRequest struct {
	LessonKey string `json:"lesson_key" validate:"required,len=40,hexadecimal"`
	Date      string `json:"date" validate:"omitempty,dateymd"`
	Subject   string `json:"subject" validate:"required"`
	IsPresent bool   `json:"is_present"`
}

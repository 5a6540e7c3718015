package models

// Weekday is an uppercase day name as it appears in the schedule document.
type Weekday string

const (
	Monday    Weekday = "MONDAY"
	Tuesday   Weekday = "TUESDAY"
	Wednesday Weekday = "WEDNESDAY"
	Thursday  Weekday = "THURSDAY"
	Friday    Weekday = "FRIDAY"
	Saturday  Weekday = "SATURDAY"
	Sunday    Weekday = "SUNDAY"
)

// DayOrder lists the seven weekdays in presentation order.
var DayOrder = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// Valid returns true when the weekday is a supported value.
func (d Weekday) Valid() bool {
	switch d {
	case Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday:
		return true
	default:
		return false
	}
}

// Weekend reports whether the day falls on a weekend.
func (d Weekday) Weekend() bool {
	return d == Saturday || d == Sunday
}

// WeekType marks lessons that only occur on alternating weeks.
type WeekType string

const (
	WeekTypeOdd  WeekType = "odd"
	WeekTypeEven WeekType = "even"
)

// OfficialLesson is a single entry from the authoritative schedule
// document. It carries no natural primary key; identity is derived from
// its content (see timetable.DeriveKey).
type OfficialLesson struct {
	Day       Weekday   `json:"day"`
	TimeRange string    `json:"time"`
	Subject   string    `json:"subject"`
	Type      *string   `json:"type,omitempty"`
	Teacher   *string   `json:"teacher,omitempty"`
	Room      *string   `json:"room,omitempty"`
	WeekType  *WeekType `json:"weekType,omitempty"`
}

// ScheduleDocument is the upstream schedule file. Unknown fields are
// ignored so upstream additions never break loading.
type ScheduleDocument struct {
	Group         string           `json:"group"`
	GeneratedFrom string           `json:"generated_from"`
	Lessons       []OfficialLesson `json:"lessons"`
}

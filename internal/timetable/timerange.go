package timetable

import (
	"fmt"
	"strconv"
	"strings"
)

// Minute is a local wall-clock minute of day in [0, 1439].
type Minute int

// String renders the minute as zero-padded HH:MM.
func (m Minute) String() string {
	return fmt.Sprintf("%02d:%02d", int(m)/60, int(m)%60)
}

// MinuteOf converts an hour/minute pair to a Minute.
func MinuteOf(hour, min int) Minute {
	return Minute(hour*60 + min)
}

// ParseRange parses a free-text lesson time range ("9:00-10:30",
// "09:00 – 10:30") into start and end minutes of day. Any of the three
// dash glyphs separates the segments; segments shorter than five
// characters gain a leading zero. The result is all-or-nothing: any
// failure yields (nil, nil), never a partial pair.
func ParseRange(text string) (start, end *Minute) {
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return r == '-' || r == '–' || r == '—'
	})
	if len(parts) < 2 {
		return nil, nil
	}
	s, err := parseClock(parts[0])
	if err != nil {
		return nil, nil
	}
	e, err := parseClock(parts[1])
	if err != nil {
		return nil, nil
	}
	return &s, &e
}

func parseClock(segment string) (Minute, error) {
	v := strings.TrimSpace(segment)
	if len(v) < 5 {
		v = strings.Repeat("0", 5-len(v)) + v
	}
	if len(v) != 5 || v[2] != ':' {
		return 0, fmt.Errorf("malformed clock value %q", segment)
	}
	hour, err := strconv.Atoi(v[:2])
	if err != nil {
		return 0, err
	}
	min, err := strconv.Atoi(v[3:])
	if err != nil {
		return 0, err
	}
	if hour < 0 || hour > 23 || min < 0 || min > 59 {
		return 0, fmt.Errorf("clock value %q out of range", segment)
	}
	return MinuteOf(hour, min), nil
}

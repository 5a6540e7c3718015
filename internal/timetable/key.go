// Package timetable implements the schedule reconciliation engine: stable
// lesson identity, time-range parsing, week parity, subject classification
// and the merge of official and user lessons into per-day views. Every
// function here is pure; persistence and transport live elsewhere.
package timetable

import (
	"crypto/sha1"
	"encoding/hex"
	"strings"

	"github.com/oti-labs/studify-api/internal/models"
)

const keyDelimiter = "|"

var dashReplacer = strings.NewReplacer("–", "-", "—", "-", " ", "")

// DeriveKey produces the stable content-based identifier for a lesson.
// The official schedule carries no primary key, so hiding and attendance
// are addressed by this digest. The derivation is persisted state: it must
// never change silently, only together with a schedule version reset.
//
// Known limitation: two lessons whose normalised day/time/subject/type/
// weekType coincide collapse to one key.
func DeriveKey(lesson models.OfficialLesson) string {
	parts := []string{
		strings.ToUpper(strings.TrimSpace(string(lesson.Day))),
		NormalizeTimeRange(lesson.TimeRange),
		strings.ToUpper(strings.TrimSpace(lesson.Subject)),
		strings.ToUpper(strings.TrimSpace(deref(lesson.Type))),
		strings.ToUpper(strings.TrimSpace(string(derefWeekType(lesson.WeekType)))),
	}
	sum := sha1.Sum([]byte(strings.Join(parts, keyDelimiter)))
	return hex.EncodeToString(sum[:])
}

// NormalizeTimeRange collapses dash glyph and whitespace variation in a
// raw time range so insignificant formatting differences do not change
// lesson identity.
func NormalizeTimeRange(raw string) string {
	return strings.TrimSpace(dashReplacer.Replace(raw))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefWeekType(w *models.WeekType) models.WeekType {
	if w == nil {
		return ""
	}
	return *w
}

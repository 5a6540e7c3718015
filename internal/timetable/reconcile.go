package timetable

import (
	"sort"

	"github.com/oti-labs/studify-api/internal/models"
)

// Source distinguishes where a view lesson originated.
type Source string

const (
	SourceOfficial Source = "OFFICIAL"
	SourceUser     Source = "USER"
)

// ViewLesson is the ephemeral merged representation of a lesson handed to
// the presentation layer. It is recomputed on every reconciliation pass
// and never persisted.
type ViewLesson struct {
	Lesson       models.OfficialLesson `json:"lesson"`
	Source       Source                `json:"source"`
	UserLessonID *int64                `json:"user_lesson_id,omitempty"`
	StableKey    string                `json:"stable_key"`
	Start        *Minute               `json:"start_minute,omitempty"`
	End          *Minute               `json:"end_minute,omitempty"`
	Category     Category              `json:"category"`
	IsActiveWeek bool                  `json:"is_active_week"`
	IsCancelled  bool                  `json:"is_cancelled"`
}

// OfficialView builds the view form of one official lesson. Called once
// per lesson at document load; the result is reused across passes since
// the official schedule is immutable.
func OfficialView(lesson models.OfficialLesson, classifier *Classifier) ViewLesson {
	start, end := ParseRange(lesson.TimeRange)
	return ViewLesson{
		Lesson:    lesson,
		Source:    SourceOfficial,
		StableKey: DeriveKey(lesson),
		Start:     start,
		End:       end,
		Category:  classifier.Classify(lesson.Subject),
		// Active until a reconciliation pass applies the parity filter.
		IsActiveWeek: true,
	}
}

// UserView builds the view form of one user lesson. The stable key is
// derived from the materialised lesson content, so attendance keyed
// against it survives edits that keep day/time/subject/type unchanged.
func UserView(entity models.UserLesson, classifier *Classifier) ViewLesson {
	lesson := entity.AsOfficial()
	start, end := ParseRange(lesson.TimeRange)
	id := entity.ID
	return ViewLesson{
		Lesson:       lesson,
		Source:       SourceUser,
		UserLessonID: &id,
		StableKey:    DeriveKey(lesson),
		Start:        start,
		End:          end,
		Category:     classifier.Classify(lesson.Subject),
		IsActiveWeek: true,
	}
}

// Reconcile merges the official index with user lessons into sorted
// per-day lists. Hidden official lessons are dropped; lessons belonging
// to the other week parity are kept but flagged IsActiveWeek=false so the
// presentation can dim them while status queries skip them. User lessons
// are parity-independent. The result is a pure function of its inputs:
// identical inputs yield identical output.
func Reconcile(officialByDay map[models.Weekday][]ViewLesson, userLessons []ViewLesson, hiddenKeys map[string]struct{}, isOdd bool) map[models.Weekday][]ViewLesson {
	userByDay := make(map[models.Weekday][]ViewLesson)
	for _, ul := range userLessons {
		userByDay[ul.Lesson.Day] = append(userByDay[ul.Lesson.Day], ul)
	}

	out := make(map[models.Weekday][]ViewLesson, len(models.DayOrder))
	for _, day := range models.DayOrder {
		merged := make([]ViewLesson, 0, len(officialByDay[day])+len(userByDay[day]))
		for _, ol := range officialByDay[day] {
			if ol.StableKey == "" {
				continue
			}
			if _, hidden := hiddenKeys[ol.StableKey]; hidden {
				continue
			}
			ol.IsActiveWeek = ActiveThisWeek(ol.Lesson.WeekType, isOdd)
			merged = append(merged, ol)
		}
		merged = append(merged, userByDay[day]...)

		// Stable sort keeps official-before-user on equal start times.
		sort.SliceStable(merged, func(i, j int) bool {
			return startOrMin(merged[i].Start) < startOrMin(merged[j].Start)
		})
		out[day] = merged
	}
	return out
}

// Lessons without a parseable start sort before everything else.
func startOrMin(m *Minute) Minute {
	if m == nil {
		return Minute(-1)
	}
	return *m
}

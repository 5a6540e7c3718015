package timetable

// StatusKind classifies a day's live state at a point in time.
type StatusKind string

const (
	StatusInProgress StatusKind = "IN_PROGRESS"
	StatusUpNext     StatusKind = "UP_NEXT"
	StatusDayEnded   StatusKind = "DAY_ENDED"
	StatusNoLessons  StatusKind = "NO_LESSONS"
)

// DayStatus is the answer to the now/next query for one day.
type DayStatus struct {
	Kind StatusKind `json:"kind"`
	// Lesson is the running or upcoming lesson, nil for DAY_ENDED and
	// NO_LESSONS.
	Lesson *ViewLesson `json:"lesson,omitempty"`
	// Minutes is time remaining for IN_PROGRESS and time until start for
	// UP_NEXT.
	Minutes int `json:"minutes"`
}

// statusCandidates filters a day list down to lessons that participate in
// live status: active this week, not cancelled, with parseable times.
func statusCandidates(lessons []ViewLesson) []ViewLesson {
	out := make([]ViewLesson, 0, len(lessons))
	for _, l := range lessons {
		if !l.IsActiveWeek || l.IsCancelled || l.Start == nil || l.End == nil {
			continue
		}
		out = append(out, l)
	}
	return out
}

// StatusAt computes the live status for an already-sorted day list:
// the currently running lesson (now within [start, end)), else the
// earliest lesson starting after now, else day-ended when everything is
// in the past. Lessons outside the active week, cancelled lessons and
// lessons with unparseable times never influence the answer.
func StatusAt(lessons []ViewLesson, now Minute) DayStatus {
	active := statusCandidates(lessons)
	if len(active) == 0 {
		return DayStatus{Kind: StatusNoLessons}
	}

	for i := range active {
		l := active[i]
		if now >= *l.Start && now < *l.End {
			return DayStatus{Kind: StatusInProgress, Lesson: &active[i], Minutes: int(*l.End - now)}
		}
	}
	for i := range active {
		if *active[i].Start > now {
			return DayStatus{Kind: StatusUpNext, Lesson: &active[i], Minutes: int(*active[i].Start - now)}
		}
	}
	return DayStatus{Kind: StatusDayEnded}
}

// NextUpcoming returns the earliest lesson starting strictly after now,
// or nil when none remains. Used by the reminder scheduler.
func NextUpcoming(lessons []ViewLesson, now Minute) *ViewLesson {
	var best *ViewLesson
	for i := range lessons {
		l := &lessons[i]
		if !l.IsActiveWeek || l.IsCancelled || l.Start == nil {
			continue
		}
		if *l.Start > now && (best == nil || *l.Start < *best.Start) {
			best = l
		}
	}
	return best
}

package timetable

// Vibe is the coarse mood banner derived from the day's shape around the
// current time.
type Vibe string

const (
	VibeWeekend      Vibe = "WEEKEND"       // weekend or nothing scheduled this week
	VibeDayDone      Vibe = "DAY_DONE"      // everything is over
	VibeWarmup       Vibe = "WARMUP"        // first lesson starts within 45 minutes
	VibeCancelled    Vibe = "CANCELLED"     // the running lesson was cancelled
	VibeFinalStretch Vibe = "FINAL_STRETCH" // 40 minutes or less remain in the running lesson
	VibeInClass      Vibe = "IN_CLASS"      // mid-lesson
	VibeBreak        Vibe = "BREAK"         // between lessons, or well before the first
)

const (
	warmupWindowMinutes = 45
	finalStretchMinutes = 40
)

// VibeAt classifies the day. Lessons outside the active week or without
// parseable times are excluded first; without that, alternating Saturday
// lessons would flicker the banner on off weeks. Cancelled lessons stay
// in: a cancelled running lesson is its own mood.
func VibeAt(lessons []ViewLesson, now Minute, weekend bool, cancelledKeys map[string]struct{}) Vibe {
	active := make([]ViewLesson, 0, len(lessons))
	for _, l := range lessons {
		if !l.IsActiveWeek || l.Start == nil || l.End == nil {
			continue
		}
		active = append(active, l)
	}

	if weekend || len(active) == 0 {
		return VibeWeekend
	}

	first, last := active[0], active[0]
	for _, l := range active[1:] {
		if *l.Start < *first.Start {
			first = l
		}
		if *l.End > *last.End {
			last = l
		}
	}

	if now > *last.End {
		return VibeDayDone
	}
	if now < *first.Start && *first.Start-now <= warmupWindowMinutes {
		return VibeWarmup
	}

	for _, l := range active {
		if now >= *l.Start && now < *l.End {
			if _, cancelled := cancelledKeys[l.StableKey]; cancelled {
				return VibeCancelled
			}
			if *l.End-now <= finalStretchMinutes {
				return VibeFinalStretch
			}
			return VibeInClass
		}
	}
	return VibeBreak
}

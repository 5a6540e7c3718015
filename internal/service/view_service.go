package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/oti-labs/studify-api/internal/dto"
	"github.com/oti-labs/studify-api/internal/models"
	"github.com/oti-labs/studify-api/internal/timetable"
	appErrors "github.com/oti-labs/studify-api/pkg/errors"
)

// Clock supplies the current wall-clock time. Injected so tests control
// it.
type Clock interface {
	Now() time.Time
}

// RealClock reads the system clock.
type RealClock struct{}

// Now implements Clock.
func (RealClock) Now() time.Time { return time.Now() }

// Snapshot is one consistent output of the reconciliation pipeline. All
// five inputs are read under a single lock at compute time, so a snapshot
// never mixes a new user-lesson list with a stale hidden set.
type Snapshot struct {
	Loaded        bool
	Group         string
	Version       string
	IsOddWeek     bool
	Days          map[models.Weekday][]timetable.ViewLesson
	CancelledKeys map[string]struct{}
	Today         models.Weekday
	Now           timetable.Minute
	ComputedAt    time.Time
}

type feedInputs struct {
	loaded   bool
	group    string
	version  string
	official map[models.Weekday][]timetable.ViewLesson

	userLessons []timetable.ViewLesson
	hiddenKeys  map[string]struct{}
	cancelled   map[string]struct{}

	now time.Time
}

// ViewService is the reactive heart of the engine: each input (official
// index, user lessons, hidden keys, cancelled overlay, clock) is updated
// independently; the merged view is recomputed from a consistent copy of
// all inputs whenever any of them changes. Recomputes triggered in quick
// succession coalesce into one pass.
type ViewService struct {
	classifier *timetable.Classifier
	metrics    *MetricsService
	logger     *zap.Logger
	clock      Clock
	debounce   time.Duration

	mu sync.Mutex
	in feedInputs

	dirty chan struct{}

	snapMu sync.RWMutex
	snap   Snapshot

	subMu   sync.Mutex
	subs    map[int]chan Snapshot
	nextSub int
}

// ViewServiceParams groups constructor dependencies.
type ViewServiceParams struct {
	Classifier *timetable.Classifier
	Metrics    *MetricsService
	Logger     *zap.Logger
	Clock      Clock
	Debounce   time.Duration
}

// NewViewService constructs the view pipeline with sane defaults.
func NewViewService(params ViewServiceParams) *ViewService {
	if params.Classifier == nil {
		params.Classifier = timetable.NewClassifier(nil)
	}
	if params.Logger == nil {
		params.Logger = zap.NewNop()
	}
	if params.Clock == nil {
		params.Clock = RealClock{}
	}
	if params.Debounce <= 0 {
		params.Debounce = 50 * time.Millisecond
	}

	s := &ViewService{
		classifier: params.Classifier,
		metrics:    params.Metrics,
		logger:     params.Logger,
		clock:      params.Clock,
		debounce:   params.Debounce,
		dirty:      make(chan struct{}, 1),
		subs:       make(map[int]chan Snapshot),
	}
	s.in.hiddenKeys = map[string]struct{}{}
	s.in.cancelled = map[string]struct{}{}
	s.in.now = s.clock.Now()
	s.RecomputeNow()
	return s
}

// Run drives debounced recomputation until ctx is cancelled. Multiple
// input changes landing within the debounce window produce one pass over
// the latest inputs.
func (s *ViewService) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.dirty:
			timer := time.NewTimer(s.debounce)
		drain:
			for {
				select {
				case <-ctx.Done():
					timer.Stop()
					return
				case <-s.dirty:
					// absorbed into the pending pass
				case <-timer.C:
					break drain
				}
			}
			s.RecomputeNow()
		}
	}
}

func (s *ViewService) markDirty() {
	select {
	case s.dirty <- struct{}{}:
	default:
	}
}

// SetOfficial publishes a freshly indexed official schedule.
func (s *ViewService) SetOfficial(group, version string, index map[models.Weekday][]timetable.ViewLesson) {
	s.mu.Lock()
	s.in.loaded = true
	s.in.group = group
	s.in.version = version
	s.in.official = index
	s.mu.Unlock()
	s.markDirty()
}

// SetUserLessons publishes the current user-lesson collection.
func (s *ViewService) SetUserLessons(entities []models.UserLesson) {
	views := make([]timetable.ViewLesson, 0, len(entities))
	for _, e := range entities {
		views = append(views, timetable.UserView(e, s.classifier))
	}
	s.mu.Lock()
	s.in.userLessons = views
	s.mu.Unlock()
	s.markDirty()
}

// SetHiddenKeys publishes the current hidden-key set.
func (s *ViewService) SetHiddenKeys(keys []string) {
	set := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}
	s.mu.Lock()
	s.in.hiddenKeys = set
	s.mu.Unlock()
	s.markDirty()
}

// SetCancelled publishes the session-scoped cancelled overlay.
func (s *ViewService) SetCancelled(keys map[string]struct{}) {
	copied := make(map[string]struct{}, len(keys))
	for k := range keys {
		copied[k] = struct{}{}
	}
	s.mu.Lock()
	s.in.cancelled = copied
	s.mu.Unlock()
	s.markDirty()
}

// Tick feeds the clock. Only a change of visible minute (or calendar
// day, which may flip week parity) propagates, bounding recompute
// frequency no matter how often the ticker fires.
func (s *ViewService) Tick(now time.Time) {
	s.mu.Lock()
	prev := s.in.now
	sameMinute := prev.Minute() == now.Minute() && prev.Hour() == now.Hour() &&
		prev.YearDay() == now.YearDay() && prev.Year() == now.Year()
	if sameMinute {
		s.mu.Unlock()
		return
	}
	s.in.now = now
	s.mu.Unlock()
	s.markDirty()
}

// RecomputeNow performs one reconciliation pass over a consistent copy of
// the inputs and publishes the resulting snapshot.
func (s *ViewService) RecomputeNow() {
	s.mu.Lock()
	in := s.in
	s.mu.Unlock()

	start := time.Now()
	days := timetable.Reconcile(in.official, in.userLessons, in.hiddenKeys, timetable.IsOddWeek(in.now))
	for day, lessons := range days {
		for i := range lessons {
			_, cancelled := in.cancelled[lessons[i].StableKey]
			lessons[i].IsCancelled = cancelled
		}
		days[day] = lessons
	}

	snap := Snapshot{
		Loaded:        in.loaded,
		Group:         in.group,
		Version:       in.version,
		IsOddWeek:     timetable.IsOddWeek(in.now),
		Days:          days,
		CancelledKeys: in.cancelled,
		Today:         weekdayOf(in.now),
		Now:           timetable.MinuteOf(in.now.Hour(), in.now.Minute()),
		ComputedAt:    time.Now(),
	}

	s.snapMu.Lock()
	s.snap = snap
	s.snapMu.Unlock()

	if s.metrics != nil {
		s.metrics.ObserveReconcile(time.Since(start))
	}
	s.publish(snap)
}

func (s *ViewService) publish(snap Snapshot) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- snap:
		default:
			// slow subscriber skips this snapshot and catches the next
		}
	}
}

// Subscribe registers a snapshot listener. The returned cancel func must
// be called to release the channel.
func (s *ViewService) Subscribe() (<-chan Snapshot, func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	id := s.nextSub
	s.nextSub++
	ch := make(chan Snapshot, 1)
	s.subs[id] = ch
	return ch, func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
	}
}

// Current returns the latest snapshot.
func (s *ViewService) Current() Snapshot {
	s.snapMu.RLock()
	defer s.snapMu.RUnlock()
	return s.snap
}

// WeekView renders the whole reconciled week.
func (s *ViewService) WeekView() (*dto.WeekView, error) {
	snap := s.Current()
	if !snap.Loaded {
		return nil, appErrors.ErrNoSchedule
	}
	view := &dto.WeekView{
		Group:     snap.Group,
		Version:   snap.Version,
		IsOddWeek: snap.IsOddWeek,
		Days:      make([]dto.DayView, 0, len(models.DayOrder)),
	}
	for _, day := range models.DayOrder {
		view.Days = append(view.Days, dto.DayView{Day: day, Lessons: snap.Days[day]})
	}
	return view, nil
}

// DayView renders one reconciled day.
func (s *ViewService) DayView(day models.Weekday) (*dto.DayView, error) {
	if !day.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown weekday")
	}
	snap := s.Current()
	if !snap.Loaded {
		return nil, appErrors.ErrNoSchedule
	}
	return &dto.DayView{Day: day, Lessons: snap.Days[day]}, nil
}

// StatusToday answers the live now/next query for the current day.
func (s *ViewService) StatusToday() (*dto.StatusView, error) {
	snap := s.Current()
	if !snap.Loaded {
		return nil, appErrors.ErrNoSchedule
	}
	lessons := snap.Days[snap.Today]
	return &dto.StatusView{
		Day:    snap.Today,
		Now:    snap.Now.String(),
		Status: timetable.StatusAt(lessons, snap.Now),
		Vibe:   timetable.VibeAt(lessons, snap.Now, snap.Today.Weekend(), snap.CancelledKeys),
	}, nil
}

// NextUpcoming answers the reminder query: the earliest lesson today
// starting strictly after the snapshot's current minute.
func (s *ViewService) NextUpcoming() dto.NextLessonView {
	snap := s.Current()
	if !snap.Loaded {
		return dto.NextLessonView{}
	}
	next := timetable.NextUpcoming(snap.Days[snap.Today], snap.Now)
	if next == nil {
		return dto.NextLessonView{}
	}
	return dto.NextLessonView{Lesson: next, MinutesUntil: int(*next.Start - snap.Now)}
}

func weekdayOf(t time.Time) models.Weekday {
	switch t.Weekday() {
	case time.Monday:
		return models.Monday
	case time.Tuesday:
		return models.Tuesday
	case time.Wednesday:
		return models.Wednesday
	case time.Thursday:
		return models.Thursday
	case time.Friday:
		return models.Friday
	case time.Saturday:
		return models.Saturday
	default:
		return models.Sunday
	}
}

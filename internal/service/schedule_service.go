package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/oti-labs/studify-api/internal/models"
	"github.com/oti-labs/studify-api/internal/repository"
	"github.com/oti-labs/studify-api/internal/timetable"
)

// DocumentSource yields the parsed official schedule document.
type DocumentSource interface {
	Get(ctx context.Context) (*models.ScheduleDocument, error)
	Invalidate()
}

// MetaStore persists small key/value app state.
type MetaStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// Resettable is any store the version guard wipes on a document change.
type Resettable interface {
	ClearAll(ctx context.Context) error
}

// OfficialFeed receives the indexed official schedule.
type OfficialFeed interface {
	SetOfficial(group, version string, index map[models.Weekday][]timetable.ViewLesson)
}

// ScheduleService loads the official document, indexes it by day, and
// enforces the version guard: when the document's generated_from changes,
// every user-authored record tied to the old document is wiped before the
// new version is recorded.
type ScheduleService struct {
	source     DocumentSource
	meta       MetaStore
	lessons    Resettable
	hidden     Resettable
	attendance Resettable
	feed       OfficialFeed
	classifier *timetable.Classifier
	cache      *CacheService
	logger     *zap.Logger
}

// ScheduleServiceParams groups constructor dependencies.
type ScheduleServiceParams struct {
	Source     DocumentSource
	Meta       MetaStore
	Lessons    Resettable
	Hidden     Resettable
	Attendance Resettable
	Feed       OfficialFeed
	Classifier *timetable.Classifier
	Cache      *CacheService
	Logger     *zap.Logger
}

// NewScheduleService wires the document pipeline.
func NewScheduleService(params ScheduleServiceParams) *ScheduleService {
	if params.Classifier == nil {
		params.Classifier = timetable.NewClassifier(nil)
	}
	if params.Logger == nil {
		params.Logger = zap.NewNop()
	}
	return &ScheduleService{
		source:     params.Source,
		meta:       params.Meta,
		lessons:    params.Lessons,
		hidden:     params.Hidden,
		attendance: params.Attendance,
		feed:       params.Feed,
		classifier: params.Classifier,
		cache:      params.Cache,
		logger:     params.Logger,
	}
}

// Load reads the document, runs the version guard, and publishes the
// official index into the view feed.
func (s *ScheduleService) Load(ctx context.Context) (*models.ScheduleDocument, error) {
	doc, err := s.source.Get(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.guardVersion(ctx, doc.GeneratedFrom); err != nil {
		return nil, err
	}

	index := s.Index(doc)
	if s.feed != nil {
		s.feed.SetOfficial(doc.Group, doc.GeneratedFrom, index)
	}
	s.invalidateViews(ctx)
	return doc, nil
}

// Reload drops the cached document and loads it again. Used when the
// file on disk has been replaced.
func (s *ScheduleService) Reload(ctx context.Context) (*models.ScheduleDocument, error) {
	s.source.Invalidate()
	return s.Load(ctx)
}

// Index groups the document's lessons into per-day view slices. Order
// within a day is document order; sorting happens during reconciliation.
func (s *ScheduleService) Index(doc *models.ScheduleDocument) map[models.Weekday][]timetable.ViewLesson {
	index := make(map[models.Weekday][]timetable.ViewLesson)
	for _, lesson := range doc.Lessons {
		if !lesson.Day.Valid() {
			s.logger.Warn("skipping lesson with unknown day",
				zap.String("day", string(lesson.Day)),
				zap.String("subject", lesson.Subject))
			continue
		}
		index[lesson.Day] = append(index[lesson.Day], timetable.OfficialView(lesson, s.classifier))
	}
	return index
}

// guardVersion wipes user lessons, hidden keys, and attendance when the
// document identity changed since the last run. The wipe happens before
// the new identity is recorded, so a crash mid-reset repeats the reset on
// the next start instead of losing it.
func (s *ScheduleService) guardVersion(ctx context.Context, version string) error {
	last, err := s.meta.Get(ctx, repository.MetaKeyScheduleVersion)
	if err != nil {
		return err
	}
	if last == version {
		return nil
	}

	if last != "" {
		s.logger.Info("schedule document changed, resetting user data",
			zap.String("previous", last),
			zap.String("current", version))
		for _, store := range []Resettable{s.lessons, s.hidden, s.attendance} {
			if store == nil {
				continue
			}
			if err := store.ClearAll(ctx); err != nil {
				return err
			}
		}
	}
	return s.meta.Set(ctx, repository.MetaKeyScheduleVersion, version)
}

func (s *ScheduleService) invalidateViews(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, "view:*")
	}
}

package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/oti-labs/studify-api/internal/dto"
	"github.com/oti-labs/studify-api/internal/models"
	appErrors "github.com/oti-labs/studify-api/pkg/errors"
)

// UserLessonStore is the persistence surface for user lessons.
type UserLessonStore interface {
	List(ctx context.Context) ([]models.UserLesson, error)
	FindByID(ctx context.Context, id int64) (*models.UserLesson, error)
	Create(ctx context.Context, lesson *models.UserLesson) error
	Update(ctx context.Context, lesson *models.UserLesson) error
	Delete(ctx context.Context, id int64) error
	DeleteCompletedBefore(ctx context.Context, cutoff string) (int64, error)
}

// UserLessonFeed receives the refreshed user-lesson collection after
// every mutation.
type UserLessonFeed interface {
	SetUserLessons(entities []models.UserLesson)
}

// LessonService owns the user-lesson lifecycle: CRUD, completion state,
// and the stale-task sweep.
type LessonService struct {
	store    UserLessonStore
	feed     UserLessonFeed
	cache    *CacheService
	validate *validator.Validate
	logger   *zap.Logger
	now      func() time.Time
}

// LessonServiceParams groups constructor dependencies.
type LessonServiceParams struct {
	Store    UserLessonStore
	Feed     UserLessonFeed
	Cache    *CacheService
	Validate *validator.Validate
	Logger   *zap.Logger
	Now      func() time.Time
}

// NewLessonService wires the user-lesson service.
func NewLessonService(params LessonServiceParams) *LessonService {
	if params.Validate == nil {
		params.Validate = NewValidator()
	}
	if params.Logger == nil {
		params.Logger = zap.NewNop()
	}
	if params.Now == nil {
		params.Now = time.Now
	}
	return &LessonService{
		store:    params.Store,
		feed:     params.Feed,
		cache:    params.Cache,
		validate: params.Validate,
		logger:   params.Logger,
		now:      params.Now,
	}
}

// List returns all user lessons in day/time order.
func (s *LessonService) List(ctx context.Context) ([]models.UserLesson, error) {
	return s.store.List(ctx)
}

// Get returns one lesson by id.
func (s *LessonService) Get(ctx context.Context, id int64) (*models.UserLesson, error) {
	return s.store.FindByID(ctx, id)
}

// Create validates and persists a new lesson.
func (s *LessonService) Create(ctx context.Context, req *dto.LessonRequest) (*models.UserLesson, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}
	lesson := s.fromRequest(req)
	if err := s.store.Create(ctx, lesson); err != nil {
		return nil, err
	}
	s.refresh(ctx)
	return lesson, nil
}

// Update validates and persists edits to an existing lesson. Completion
// state is untouched here; SetCompleted owns it.
func (s *LessonService) Update(ctx context.Context, id int64, req *dto.LessonRequest) (*models.UserLesson, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}
	existing, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := s.fromRequest(req)
	updated.ID = existing.ID
	updated.IsCompleted = existing.IsCompleted
	updated.CompletedAt = existing.CompletedAt
	updated.CreatedAt = existing.CreatedAt
	if err := s.store.Update(ctx, updated); err != nil {
		return nil, err
	}
	s.refresh(ctx)
	return updated, nil
}

// SetCompleted toggles a lesson's completion flag. Marking complete
// stamps completed_at with today's date; clearing the flag clears the
// stamp so the cleanup sweep never reaps an active task.
func (s *LessonService) SetCompleted(ctx context.Context, id int64, completed bool) (*models.UserLesson, error) {
	lesson, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	lesson.IsCompleted = completed
	if completed {
		stamp := s.now().Format("2006-01-02")
		lesson.CompletedAt = &stamp
	} else {
		lesson.CompletedAt = nil
	}
	if err := s.store.Update(ctx, lesson); err != nil {
		return nil, err
	}
	s.refresh(ctx)
	return lesson, nil
}

// Delete removes a lesson.
func (s *LessonService) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.refresh(ctx)
	return nil
}

// CleanupStale removes completed lessons whose completion either predates
// the first day of the current month or was never stamped. Returns the
// number of rows removed.
func (s *LessonService) CleanupStale(ctx context.Context) (int64, error) {
	firstOfMonth := s.now().Format("2006-01") + "-01"
	removed, err := s.store.DeleteCompletedBefore(ctx, firstOfMonth)
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		s.logger.Info("removed stale completed lessons", zap.Int64("count", removed))
		s.refresh(ctx)
	}
	return removed, nil
}

// Refresh pushes the current collection into the view feed. Called once
// at startup and after every mutation.
func (s *LessonService) Refresh(ctx context.Context) error {
	lessons, err := s.store.List(ctx)
	if err != nil {
		return err
	}
	if s.feed != nil {
		s.feed.SetUserLessons(lessons)
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, "view:*")
	}
	return nil
}

func (s *LessonService) refresh(ctx context.Context) {
	if err := s.Refresh(ctx); err != nil {
		s.logger.Error("failed to refresh lesson feed", zap.Error(err))
	}
}

func (s *LessonService) fromRequest(req *dto.LessonRequest) *models.UserLesson {
	return &models.UserLesson{
		Day:       models.Weekday(strings.ToUpper(strings.TrimSpace(req.Day))),
		StartTime: padClock(req.StartTime),
		EndTime:   padClock(req.EndTime),
		Subject:   strings.TrimSpace(req.Subject),
		Type:      trimPtr(req.Type),
		Teacher:   trimPtr(req.Teacher),
		Room:      trimPtr(req.Room),
		Notes:     trimPtr(req.Notes),
		DueDate:   trimPtr(req.DueDate),
	}
}

// padClock widens "9:30" to "09:30" so stored times compare and sort
// lexicographically.
func padClock(v string) string {
	v = strings.TrimSpace(v)
	if len(v) == 4 {
		return "0" + v
	}
	return v
}

func trimPtr(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

package service

import (
	"context"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/oti-labs/studify-api/internal/dto"
	"github.com/oti-labs/studify-api/internal/models"
	"github.com/oti-labs/studify-api/internal/timetable"
	appErrors "github.com/oti-labs/studify-api/pkg/errors"
)

// HiddenKeyStore persists the set of suppressed lesson keys.
type HiddenKeyStore interface {
	Keys(ctx context.Context) ([]string, error)
	Hide(ctx context.Context, key string) error
	Unhide(ctx context.Context, key string) error
}

// OverlayFeed receives the hidden and cancelled overlays.
type OverlayFeed interface {
	SetHiddenKeys(keys []string)
	SetCancelled(keys map[string]struct{})
}

// OverlayService manages the two per-lesson overlays. Hiding persists
// across restarts and removes the lesson from every view. Cancelling is
// session-scoped: the lesson stays visible, marked cancelled, and the
// mark vanishes on restart.
type OverlayService struct {
	store    HiddenKeyStore
	feed     OverlayFeed
	cache    *CacheService
	validate *validator.Validate
	logger   *zap.Logger

	mu        sync.Mutex
	cancelled map[string]struct{}
}

// OverlayServiceParams groups constructor dependencies.
type OverlayServiceParams struct {
	Store    HiddenKeyStore
	Feed     OverlayFeed
	Cache    *CacheService
	Validate *validator.Validate
	Logger   *zap.Logger
}

// NewOverlayService wires the overlay service.
func NewOverlayService(params OverlayServiceParams) *OverlayService {
	if params.Validate == nil {
		params.Validate = NewValidator()
	}
	if params.Logger == nil {
		params.Logger = zap.NewNop()
	}
	return &OverlayService{
		store:     params.Store,
		feed:      params.Feed,
		cache:     params.Cache,
		validate:  params.Validate,
		logger:    params.Logger,
		cancelled: map[string]struct{}{},
	}
}

// Hide derives the stable key from the lesson's content and persists it.
// Hiding an already hidden lesson is a no-op.
func (s *OverlayService) Hide(ctx context.Context, req *dto.HideLessonRequest) (string, error) {
	if err := s.validate.Struct(req); err != nil {
		return "", appErrors.Clone(appErrors.ErrValidation, err.Error())
	}
	key := s.keyFromRequest(req)
	if err := s.store.Hide(ctx, key); err != nil {
		return "", err
	}
	if err := s.refreshHidden(ctx); err != nil {
		return "", err
	}
	return key, nil
}

// Unhide restores a previously hidden lesson by key.
func (s *OverlayService) Unhide(ctx context.Context, key string) error {
	if err := s.store.Unhide(ctx, key); err != nil {
		return err
	}
	return s.refreshHidden(ctx)
}

// HiddenKeys lists the currently suppressed keys.
func (s *OverlayService) HiddenKeys(ctx context.Context) ([]string, error) {
	keys, err := s.store.Keys(ctx)
	if err != nil {
		return nil, err
	}
	if keys == nil {
		keys = []string{}
	}
	return keys, nil
}

// Cancel marks a lesson cancelled for this session.
func (s *OverlayService) Cancel(key string) {
	s.mu.Lock()
	s.cancelled[key] = struct{}{}
	snapshot := s.cancelledLocked()
	s.mu.Unlock()
	s.pushCancelled(snapshot)
}

// Uncancel clears a session cancellation.
func (s *OverlayService) Uncancel(key string) {
	s.mu.Lock()
	delete(s.cancelled, key)
	snapshot := s.cancelledLocked()
	s.mu.Unlock()
	s.pushCancelled(snapshot)
}

// Cancelled lists the session's cancelled keys.
func (s *OverlayService) Cancelled() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, 0, len(s.cancelled))
	for k := range s.cancelled {
		keys = append(keys, k)
	}
	return keys
}

// Refresh pushes the persisted hidden set into the view feed. Called at
// startup so the feed starts from stored state.
func (s *OverlayService) Refresh(ctx context.Context) error {
	return s.refreshHidden(ctx)
}

func (s *OverlayService) refreshHidden(ctx context.Context) error {
	keys, err := s.store.Keys(ctx)
	if err != nil {
		return err
	}
	if s.feed != nil {
		s.feed.SetHiddenKeys(keys)
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, "view:*")
	}
	return nil
}

func (s *OverlayService) pushCancelled(keys map[string]struct{}) {
	if s.feed != nil {
		s.feed.SetCancelled(keys)
	}
}

func (s *OverlayService) cancelledLocked() map[string]struct{} {
	copied := make(map[string]struct{}, len(s.cancelled))
	for k := range s.cancelled {
		copied[k] = struct{}{}
	}
	return copied
}

func (s *OverlayService) keyFromRequest(req *dto.HideLessonRequest) string {
	var weekType *models.WeekType
	if req.WeekType != nil {
		wt := models.WeekType(strings.ToLower(strings.TrimSpace(*req.WeekType)))
		weekType = &wt
	}
	return timetable.DeriveKey(models.OfficialLesson{
		Day:       models.Weekday(strings.ToUpper(strings.TrimSpace(req.Day))),
		TimeRange: req.TimeRange,
		Subject:   req.Subject,
		Type:      req.Type,
		WeekType:  weekType,
	})
}

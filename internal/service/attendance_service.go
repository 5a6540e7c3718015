package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/oti-labs/studify-api/internal/dto"
	"github.com/oti-labs/studify-api/internal/models"
	appErrors "github.com/oti-labs/studify-api/pkg/errors"
)

// AttendanceStore persists per-date attendance marks.
type AttendanceStore interface {
	List(ctx context.Context) ([]models.AttendanceRecord, error)
	Find(ctx context.Context, date, lessonKey string) (*models.AttendanceRecord, error)
	Upsert(ctx context.Context, record *models.AttendanceRecord) error
}

// AttendanceService records presence against stable lesson keys, one
// mark per lesson per date.
type AttendanceService struct {
	store    AttendanceStore
	validate *validator.Validate
	logger   *zap.Logger
	now      func() time.Time
}

// AttendanceServiceParams groups constructor dependencies.
type AttendanceServiceParams struct {
	Store    AttendanceStore
	Validate *validator.Validate
	Logger   *zap.Logger
	Now      func() time.Time
}

// NewAttendanceService wires the attendance service.
func NewAttendanceService(params AttendanceServiceParams) *AttendanceService {
	if params.Validate == nil {
		params.Validate = NewValidator()
	}
	if params.Logger == nil {
		params.Logger = zap.NewNop()
	}
	if params.Now == nil {
		params.Now = time.Now
	}
	return &AttendanceService{
		store:    params.Store,
		validate: params.Validate,
		logger:   params.Logger,
		now:      params.Now,
	}
}

// Mark records presence for a lesson. An omitted date defaults to today.
// Re-marking the same lesson and date overwrites the previous value.
func (s *AttendanceService) Mark(ctx context.Context, req *dto.AttendanceRequest) (*models.AttendanceRecord, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}
	date := req.Date
	if date == "" {
		date = s.now().Format("2006-01-02")
	}
	record := &models.AttendanceRecord{
		LessonKey: req.LessonKey,
		Date:      date,
		Subject:   req.Subject,
		IsPresent: req.IsPresent,
	}
	if err := s.store.Upsert(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// List returns every stored attendance record.
func (s *AttendanceService) List(ctx context.Context) ([]models.AttendanceRecord, error) {
	records, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []models.AttendanceRecord{}
	}
	return records, nil
}

// Find returns the mark for one lesson on one date, if any.
func (s *AttendanceService) Find(ctx context.Context, date, lessonKey string) (*models.AttendanceRecord, error) {
	return s.store.Find(ctx, date, lessonKey)
}

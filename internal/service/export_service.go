package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/oti-labs/studify-api/internal/dto"
	"github.com/oti-labs/studify-api/internal/timetable"
	appErrors "github.com/oti-labs/studify-api/pkg/errors"
	"github.com/oti-labs/studify-api/pkg/export"
)

// ExportFormat selects the render target.
type ExportFormat string

const (
	FormatCSV ExportFormat = "csv"
	FormatPDF ExportFormat = "pdf"
)

var exportHeaders = []string{"Day", "Time", "Subject", "Type", "Teacher", "Room", "Source", "Week"}

// WeekSource provides the reconciled week to export.
type WeekSource interface {
	WeekView() (*dto.WeekView, error)
}

// ExportService renders the reconciled week to CSV or PDF. Rendered
// bytes are cached per format and invalidated with the view cache, so
// repeated downloads between schedule changes hit the cache.
type ExportService struct {
	source WeekSource
	csv    *export.CSVExporter
	pdf    *export.PDFExporter
	cache  *CacheService
	logger *zap.Logger
}

// NewExportService wires the export service.
func NewExportService(source WeekSource, cache *CacheService, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		source: source,
		csv:    export.NewCSVExporter(),
		pdf:    export.NewPDFExporter(),
		cache:  cache,
		logger: logger,
	}
}

// Render produces the week schedule in the requested format.
func (s *ExportService) Render(ctx context.Context, format ExportFormat) ([]byte, error) {
	if format != FormatCSV && format != FormatPDF {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}

	week, err := s.source.WeekView()
	if err != nil {
		return nil, err
	}

	cacheKey := fmt.Sprintf("view:export:%s:%s", format, week.Version)
	if s.cache != nil {
		var cached []byte
		if s.cache.Get(ctx, cacheKey, &cached) {
			return cached, nil
		}
	}

	data := s.dataset(week)
	var out []byte
	switch format {
	case FormatCSV:
		out, err = s.csv.Render(data)
	case FormatPDF:
		title := fmt.Sprintf("Schedule %s", week.Group)
		out, err = s.pdf.Render(data, title)
	}
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(ctx, cacheKey, out)
	}
	return out, nil
}

// dataset flattens the week into export rows. Hidden lessons are already
// gone; inactive-week lessons are kept and labelled so a printed sheet
// still shows the full alternating timetable.
func (s *ExportService) dataset(week *dto.WeekView) export.Dataset {
	rows := make([]map[string]string, 0)
	for _, day := range week.Days {
		for _, lesson := range day.Lessons {
			rows = append(rows, map[string]string{
				"Day":     string(day.Day),
				"Time":    timeLabel(lesson),
				"Subject": lesson.Lesson.Subject,
				"Type":    strOrEmpty(lesson.Lesson.Type),
				"Teacher": strOrEmpty(lesson.Lesson.Teacher),
				"Room":    strOrEmpty(lesson.Lesson.Room),
				"Source":  string(lesson.Source),
				"Week":    weekLabel(lesson),
			})
		}
	}
	return export.Dataset{Headers: exportHeaders, Rows: rows}
}

func timeLabel(lesson timetable.ViewLesson) string {
	if lesson.Start == nil || lesson.End == nil {
		return lesson.Lesson.TimeRange
	}
	return lesson.Start.String() + "-" + lesson.End.String()
}

func weekLabel(lesson timetable.ViewLesson) string {
	if lesson.Lesson.WeekType == nil {
		return "every"
	}
	return string(*lesson.Lesson.WeekType)
}

func strOrEmpty(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

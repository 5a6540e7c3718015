package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oti-labs/studify-api/internal/dto"
	"github.com/oti-labs/studify-api/internal/models"
	"github.com/oti-labs/studify-api/internal/timetable"
	appErrors "github.com/oti-labs/studify-api/pkg/errors"
)

type stubWeekSource struct {
	week *dto.WeekView
	err  error
}

func (s *stubWeekSource) WeekView() (*dto.WeekView, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.week, nil
}

func exportWeekFixture() *dto.WeekView {
	classifier := timetable.NewClassifier(nil)
	teacher := "Ivanova"
	week := &dto.WeekView{Group: "SE-201", Version: "v1", Days: []dto.DayView{}}
	for _, day := range models.DayOrder {
		view := dto.DayView{Day: day, Lessons: []timetable.ViewLesson{}}
		if day == models.Monday {
			view.Lessons = append(view.Lessons, timetable.OfficialView(models.OfficialLesson{
				Day: models.Monday, TimeRange: "09:00-10:30", Subject: "Databases", Teacher: &teacher,
			}, classifier))
		}
		week.Days = append(week.Days, view)
	}
	return week
}

func TestExportServiceRendersCSV(t *testing.T) {
	svc := NewExportService(&stubWeekSource{week: exportWeekFixture()}, nil, nil)

	out, err := svc.Render(context.Background(), FormatCSV)
	require.NoError(t, err)

	text := string(out)
	lines := strings.Split(strings.TrimSpace(text), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Day,Time,Subject,Type,Teacher,Room,Source,Week", strings.TrimSpace(lines[0]))
	assert.Contains(t, lines[1], "MONDAY")
	assert.Contains(t, lines[1], "09:00-10:30")
	assert.Contains(t, lines[1], "Databases")
	assert.Contains(t, lines[1], "Ivanova")
	assert.Contains(t, lines[1], "every")
}

func TestExportServiceRendersPDF(t *testing.T) {
	svc := NewExportService(&stubWeekSource{week: exportWeekFixture()}, nil, nil)

	out, err := svc.Render(context.Background(), FormatPDF)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "%PDF"))
}

func TestExportServiceRejectsUnknownFormat(t *testing.T) {
	svc := NewExportService(&stubWeekSource{week: exportWeekFixture()}, nil, nil)

	_, err := svc.Render(context.Background(), ExportFormat("xlsx"))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestExportServicePropagatesMissingSchedule(t *testing.T) {
	svc := NewExportService(&stubWeekSource{err: appErrors.ErrNoSchedule}, nil, nil)

	_, err := svc.Render(context.Background(), FormatCSV)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNoSchedule.Code, appErrors.FromError(err).Code)
}

func TestExportServiceLabelsAlternatingWeeks(t *testing.T) {
	week := exportWeekFixture()
	odd := models.WeekTypeOdd
	week.Days[0].Lessons[0].Lesson.WeekType = &odd
	svc := NewExportService(&stubWeekSource{week: week}, nil, nil)

	out, err := svc.Render(context.Background(), FormatCSV)
	require.NoError(t, err)
	assert.Contains(t, string(out), "odd")
}

package handler

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oti-labs/studify-api/internal/dto"
	"github.com/oti-labs/studify-api/internal/models"
	"github.com/oti-labs/studify-api/internal/service"
	"github.com/oti-labs/studify-api/pkg/response"
)

// ScheduleViewer serves reconciled schedule views.
type ScheduleViewer interface {
	WeekView() (*dto.WeekView, error)
	DayView(day models.Weekday) (*dto.DayView, error)
	StatusToday() (*dto.StatusView, error)
	NextUpcoming() dto.NextLessonView
	Subscribe() (<-chan service.Snapshot, func())
}

// ScheduleReloader re-reads the official document from disk.
type ScheduleReloader interface {
	Reload(ctx context.Context) (*models.ScheduleDocument, error)
}

// ScheduleHandler exposes the reconciled schedule endpoints.
type ScheduleHandler struct {
	views    ScheduleViewer
	reloader ScheduleReloader
}

// NewScheduleHandler constructs the schedule handler.
func NewScheduleHandler(views ScheduleViewer, reloader ScheduleReloader) *ScheduleHandler {
	return &ScheduleHandler{views: views, reloader: reloader}
}

// Week returns the full reconciled week.
func (h *ScheduleHandler) Week(c *gin.Context) {
	week, err := h.views.WeekView()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, week)
}

// Day returns one reconciled day.
func (h *ScheduleHandler) Day(c *gin.Context) {
	day := models.Weekday(strings.ToUpper(c.Param("day")))
	view, err := h.views.DayView(day)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// Status returns the live now/next answer for today.
func (h *ScheduleHandler) Status(c *gin.Context) {
	status, err := h.views.StatusToday()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, status)
}

// Next returns the earliest lesson today starting after now. Data is
// null when nothing further is scheduled.
func (h *ScheduleHandler) Next(c *gin.Context) {
	next := h.views.NextUpcoming()
	if next.Lesson == nil {
		response.JSON(c, http.StatusOK, nil)
		return
	}
	response.JSON(c, http.StatusOK, next)
}

// Events streams reconciliation snapshots as server-sent events. Each
// event carries the snapshot summary; clients refetch the views they
// display. The stream ends when the client disconnects.
func (h *ScheduleHandler) Events(c *gin.Context) {
	snaps, cancel := h.views.Subscribe()
	defer cancel()

	c.Header("Cache-Control", "no-cache")
	c.Stream(func(_ io.Writer) bool {
		select {
		case snap, ok := <-snaps:
			if !ok {
				return false
			}
			c.SSEvent("schedule", gin.H{
				"loaded":      snap.Loaded,
				"version":     snap.Version,
				"is_odd_week": snap.IsOddWeek,
				"today":       snap.Today,
				"now":         snap.Now.String(),
				"computed_at": snap.ComputedAt,
			})
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

// Reload re-reads the document, runs the version guard, and publishes the
// new index.
func (h *ScheduleHandler) Reload(c *gin.Context) {
	doc, err := h.reloader.Reload(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{
		"group":   doc.Group,
		"version": doc.GeneratedFrom,
		"lessons": len(doc.Lessons),
	})
}

package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oti-labs/studify-api/internal/dto"
	"github.com/oti-labs/studify-api/internal/models"
	appErrors "github.com/oti-labs/studify-api/pkg/errors"
	"github.com/oti-labs/studify-api/pkg/response"
)

// AttendanceManager is the attendance service surface the handler needs.
type AttendanceManager interface {
	Mark(ctx context.Context, req *dto.AttendanceRequest) (*models.AttendanceRecord, error)
	List(ctx context.Context) ([]models.AttendanceRecord, error)
	Find(ctx context.Context, date, lessonKey string) (*models.AttendanceRecord, error)
}

// AttendanceHandler exposes presence tracking.
type AttendanceHandler struct {
	attendance AttendanceManager
}

// NewAttendanceHandler constructs the attendance handler.
func NewAttendanceHandler(attendance AttendanceManager) *AttendanceHandler {
	return &AttendanceHandler{attendance: attendance}
}

// Mark records or overwrites a presence mark.
func (h *AttendanceHandler) Mark(c *gin.Context) {
	var req dto.AttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, err.Error()))
		return
	}
	record, err := h.attendance.Mark(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record)
}

// List returns all attendance records.
func (h *AttendanceHandler) List(c *gin.Context) {
	records, err := h.attendance.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, records)
}

// Find returns the mark for one lesson on one date.
func (h *AttendanceHandler) Find(c *gin.Context) {
	record, err := h.attendance.Find(c.Request.Context(), c.Param("date"), c.Param("key"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record)
}

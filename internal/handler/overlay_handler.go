package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oti-labs/studify-api/internal/dto"
	appErrors "github.com/oti-labs/studify-api/pkg/errors"
	"github.com/oti-labs/studify-api/pkg/response"
)

// OverlayManager is the overlay service surface the handler needs.
type OverlayManager interface {
	Hide(ctx context.Context, req *dto.HideLessonRequest) (string, error)
	Unhide(ctx context.Context, key string) error
	HiddenKeys(ctx context.Context) ([]string, error)
	Cancel(key string)
	Uncancel(key string)
	Cancelled() []string
}

// OverlayHandler exposes hide and cancel operations on official lessons.
type OverlayHandler struct {
	overlays OverlayManager
}

// NewOverlayHandler constructs the overlay handler.
func NewOverlayHandler(overlays OverlayManager) *OverlayHandler {
	return &OverlayHandler{overlays: overlays}
}

// Hide suppresses an official lesson identified by its content.
func (h *OverlayHandler) Hide(c *gin.Context) {
	var req dto.HideLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, err.Error()))
		return
	}
	key, err := h.overlays.Hide(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"key": key})
}

// Unhide restores a hidden lesson.
func (h *OverlayHandler) Unhide(c *gin.Context) {
	if err := h.overlays.Unhide(c.Request.Context(), c.Param("key")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListHidden returns the persisted hidden keys.
func (h *OverlayHandler) ListHidden(c *gin.Context) {
	keys, err := h.overlays.HiddenKeys(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"keys": keys})
}

// Cancel marks a lesson cancelled for the current session.
func (h *OverlayHandler) Cancel(c *gin.Context) {
	h.overlays.Cancel(c.Param("key"))
	response.NoContent(c)
}

// Uncancel clears a session cancellation.
func (h *OverlayHandler) Uncancel(c *gin.Context) {
	h.overlays.Uncancel(c.Param("key"))
	response.NoContent(c)
}

// ListCancelled returns the session's cancelled keys.
func (h *OverlayHandler) ListCancelled(c *gin.Context) {
	response.JSON(c, http.StatusOK, gin.H{"keys": h.overlays.Cancelled()})
}

package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/oti-labs/studify-api/internal/dto"
	"github.com/oti-labs/studify-api/internal/models"
	appErrors "github.com/oti-labs/studify-api/pkg/errors"
	"github.com/oti-labs/studify-api/pkg/response"
)

// LessonManager is the user-lesson service surface the handler needs.
type LessonManager interface {
	List(ctx context.Context) ([]models.UserLesson, error)
	Get(ctx context.Context, id int64) (*models.UserLesson, error)
	Create(ctx context.Context, req *dto.LessonRequest) (*models.UserLesson, error)
	Update(ctx context.Context, id int64, req *dto.LessonRequest) (*models.UserLesson, error)
	SetCompleted(ctx context.Context, id int64, completed bool) (*models.UserLesson, error)
	Delete(ctx context.Context, id int64) error
	CleanupStale(ctx context.Context) (int64, error)
}

// LessonHandler exposes user-lesson CRUD.
type LessonHandler struct {
	lessons LessonManager
}

// NewLessonHandler constructs the lesson handler.
func NewLessonHandler(lessons LessonManager) *LessonHandler {
	return &LessonHandler{lessons: lessons}
}

// List returns all user lessons.
func (h *LessonHandler) List(c *gin.Context) {
	lessons, err := h.lessons.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	if lessons == nil {
		lessons = []models.UserLesson{}
	}
	response.JSON(c, http.StatusOK, lessons)
}

// Get returns one lesson by id.
func (h *LessonHandler) Get(c *gin.Context) {
	id, err := lessonID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	lesson, err := h.lessons.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, lesson)
}

// Create adds a new user lesson.
func (h *LessonHandler) Create(c *gin.Context) {
	var req dto.LessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, err.Error()))
		return
	}
	lesson, err := h.lessons.Create(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, lesson)
}

// Update edits an existing lesson.
func (h *LessonHandler) Update(c *gin.Context) {
	id, err := lessonID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.LessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, err.Error()))
		return
	}
	lesson, err := h.lessons.Update(c.Request.Context(), id, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, lesson)
}

// SetCompletion toggles the completion flag.
func (h *LessonHandler) SetCompletion(c *gin.Context) {
	id, err := lessonID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.CompletionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, err.Error()))
		return
	}
	lesson, err := h.lessons.SetCompleted(c.Request.Context(), id, req.IsCompleted)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, lesson)
}

// Delete removes a lesson.
func (h *LessonHandler) Delete(c *gin.Context) {
	id, err := lessonID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.lessons.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Cleanup triggers the stale-task sweep on demand.
func (h *LessonHandler) Cleanup(c *gin.Context) {
	removed, err := h.lessons.CleanupStale(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"removed": removed})
}

func lessonID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, appErrors.Clone(appErrors.ErrValidation, "invalid lesson id")
	}
	return id, nil
}

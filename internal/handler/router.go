package handler

import "github.com/gin-gonic/gin"

// Handlers bundles every route handler for registration.
type Handlers struct {
	Schedule   *ScheduleHandler
	Lessons    *LessonHandler
	Overlays   *OverlayHandler
	Attendance *AttendanceHandler
	Export     *ExportHandler
	Health     *HealthHandler
}

// Register mounts all API routes on the engine.
func Register(r *gin.Engine, h Handlers) {
	r.GET("/health", h.Health.Health)
	r.GET("/ready", h.Health.Ready)

	api := r.Group("/api/v1")

	schedule := api.Group("/schedule")
	schedule.GET("", h.Schedule.Week)
	schedule.GET("/days/:day", h.Schedule.Day)
	schedule.GET("/status", h.Schedule.Status)
	schedule.GET("/next", h.Schedule.Next)
	schedule.GET("/events", h.Schedule.Events)
	schedule.POST("/reload", h.Schedule.Reload)
	schedule.GET("/export", h.Export.Download)

	lessons := api.Group("/lessons")
	lessons.GET("", h.Lessons.List)
	lessons.POST("", h.Lessons.Create)
	lessons.GET("/:id", h.Lessons.Get)
	lessons.PUT("/:id", h.Lessons.Update)
	lessons.PATCH("/:id/completion", h.Lessons.SetCompletion)
	lessons.DELETE("/:id", h.Lessons.Delete)
	lessons.POST("/cleanup", h.Lessons.Cleanup)

	overlays := api.Group("/overlays")
	overlays.GET("/hidden", h.Overlays.ListHidden)
	overlays.POST("/hidden", h.Overlays.Hide)
	overlays.DELETE("/hidden/:key", h.Overlays.Unhide)
	overlays.GET("/cancelled", h.Overlays.ListCancelled)
	overlays.POST("/cancelled/:key", h.Overlays.Cancel)
	overlays.DELETE("/cancelled/:key", h.Overlays.Uncancel)

	attendance := api.Group("/attendance")
	attendance.GET("", h.Attendance.List)
	attendance.POST("", h.Attendance.Mark)
	attendance.GET("/:date/:key", h.Attendance.Find)
}

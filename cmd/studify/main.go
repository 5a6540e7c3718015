package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/oti-labs/studify-api/internal/handler"
	"github.com/oti-labs/studify-api/internal/loader"
	"github.com/oti-labs/studify-api/internal/middleware"
	"github.com/oti-labs/studify-api/internal/repository"
	"github.com/oti-labs/studify-api/internal/service"
	"github.com/oti-labs/studify-api/internal/timetable"
	"github.com/oti-labs/studify-api/pkg/cache"
	"github.com/oti-labs/studify-api/pkg/config"
	"github.com/oti-labs/studify-api/pkg/database"
	"github.com/oti-labs/studify-api/pkg/jobs"
	"github.com/oti-labs/studify-api/pkg/logger"
	corsmiddleware "github.com/oti-labs/studify-api/pkg/middleware/cors"
	reqidmiddleware "github.com/oti-labs/studify-api/pkg/middleware/requestid"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, view caching disabled", "error", err)
		redisClient = nil
	}

	rootCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Repositories.
	lessonRepo := repository.NewUserLessonRepository(db)
	hiddenRepo := repository.NewHiddenLessonRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	metaRepo := repository.NewMetaRepository(db)

	// Services.
	classifier := timetable.NewClassifier(nil)
	metricsSvc := service.NewMetricsService()

	var cacheSvc *service.CacheService
	if redisClient != nil {
		cacheSvc = service.NewCacheService(
			repository.NewViewCacheRepository(redisClient),
			metricsSvc,
			cfg.Schedule.ViewCacheTTL,
			logr,
			cfg.Schedule.CacheEnabled,
		)
	}

	viewSvc := service.NewViewService(service.ViewServiceParams{
		Classifier: classifier,
		Metrics:    metricsSvc,
		Logger:     logr,
	})
	go viewSvc.Run(rootCtx)

	documents := loader.NewDocumentCache(loader.NewFileLoader(cfg.Schedule.DocumentPath))
	scheduleSvc := service.NewScheduleService(service.ScheduleServiceParams{
		Source:     documents,
		Meta:       metaRepo,
		Lessons:    lessonRepo,
		Hidden:     hiddenRepo,
		Attendance: attendanceRepo,
		Feed:       viewSvc,
		Classifier: classifier,
		Cache:      cacheSvc,
		Logger:     logr,
	})
	lessonSvc := service.NewLessonService(service.LessonServiceParams{
		Store:  lessonRepo,
		Feed:   viewSvc,
		Cache:  cacheSvc,
		Logger: logr,
	})
	overlaySvc := service.NewOverlayService(service.OverlayServiceParams{
		Store:  hiddenRepo,
		Feed:   viewSvc,
		Cache:  cacheSvc,
		Logger: logr,
	})
	attendanceSvc := service.NewAttendanceService(service.AttendanceServiceParams{
		Store:  attendanceRepo,
		Logger: logr,
	})
	exportSvc := service.NewExportService(viewSvc, cacheSvc, logr)

	reminderSvc := service.NewReminderService(service.ReminderServiceParams{
		Source:  viewSvc,
		Window:  cfg.Jobs.ReminderWindow,
		Webhook: cfg.Jobs.ReminderWebhook,
		Logger:  logr,
	})
	reminderQueue := jobs.NewQueue("reminders", reminderSvc.Deliver, jobs.QueueConfig{
		Workers: cfg.Jobs.WorkerConcurrency,
		Logger:  logr,
	})
	// Checks enqueue; the queue's workers call Deliver.
	reminderSvc.SetQueue(reminderQueue)
	reminderQueue.Start(rootCtx)
	defer reminderQueue.Stop()

	// Initial load: official document, stored user data, overlays.
	if _, err := scheduleSvc.Load(rootCtx); err != nil {
		logr.Sugar().Warnw("schedule document not loaded, serving without it", "error", err)
	}
	if err := lessonSvc.Refresh(rootCtx); err != nil {
		logr.Sugar().Fatalw("failed to load user lessons", "error", err)
	}
	if err := overlaySvc.Refresh(rootCtx); err != nil {
		logr.Sugar().Fatalw("failed to load hidden lessons", "error", err)
	}

	// Background schedule: clock tick, reminder check, daily maintenance.
	scheduler := cron.New()
	tick := cfg.Jobs.ClockTickInterval
	if tick <= 0 {
		tick = 20 * time.Second
	}
	if _, err := scheduler.AddFunc(fmt.Sprintf("@every %s", tick), func() {
		viewSvc.Tick(time.Now())
		if cfg.Jobs.ReminderEnabled {
			if err := reminderSvc.Check(rootCtx); err != nil {
				logr.Warn("reminder check failed", zap.Error(err))
			}
		}
	}); err != nil {
		logr.Sugar().Fatalw("failed to schedule clock tick", "error", err)
	}
	if _, err := scheduler.AddFunc(cfg.Jobs.CleanupSchedule, func() {
		reminderSvc.ResetDay()
		if _, err := lessonSvc.CleanupStale(rootCtx); err != nil {
			logr.Warn("stale lesson cleanup failed", zap.Error(err))
		}
	}); err != nil {
		logr.Sugar().Fatalw("failed to schedule cleanup", "error", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	handler.Register(r, handler.Handlers{
		Schedule:   handler.NewScheduleHandler(viewSvc, scheduleSvc),
		Lessons:    handler.NewLessonHandler(lessonSvc),
		Overlays:   handler.NewOverlayHandler(overlaySvc),
		Attendance: handler.NewAttendanceHandler(attendanceSvc),
		Export:     handler.NewExportHandler(exportSvc),
		Health:     handler.NewHealthHandler(db),
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{Addr: addr, Handler: r}

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-rootCtx.Done()
	logr.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Warn("graceful shutdown failed", zap.Error(err))
	}
}

package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/oti-labs/studify-api/internal/dto"
	"github.com/oti-labs/studify-api/pkg/jobs"
)

// UpcomingSource answers the "what starts next today" query.
type UpcomingSource interface {
	NextUpcoming() dto.NextLessonView
}

// ReminderDispatcher accepts reminder jobs for background delivery.
type ReminderDispatcher interface {
	Enqueue(job jobs.Job) error
}

// ReminderPayload is the body of a dispatched reminder.
type ReminderPayload struct {
	Subject      string `json:"subject"`
	StartTime    string `json:"start_time"`
	Room         string `json:"room,omitempty"`
	MinutesUntil int    `json:"minutes_until"`
}

// ReminderService watches the upcoming-lesson feed and dispatches one
// reminder per lesson when its start falls inside the notify window.
// Dispatch is keyed by stable key plus start minute so a lesson is never
// announced twice, while the next lesson of the same subject still is.
type ReminderService struct {
	source  UpcomingSource
	queue   ReminderDispatcher
	window  time.Duration
	webhook string
	client  *http.Client
	logger  *zap.Logger

	mu   sync.Mutex
	sent map[string]struct{}
}

// ReminderServiceParams groups constructor dependencies.
type ReminderServiceParams struct {
	Source  UpcomingSource
	Queue   ReminderDispatcher
	Window  time.Duration
	Webhook string
	Client  *http.Client
	Logger  *zap.Logger
}

// NewReminderService wires the reminder service.
func NewReminderService(params ReminderServiceParams) *ReminderService {
	if params.Window <= 0 {
		params.Window = 10 * time.Minute
	}
	if params.Client == nil {
		params.Client = &http.Client{Timeout: 10 * time.Second}
	}
	if params.Logger == nil {
		params.Logger = zap.NewNop()
	}
	return &ReminderService{
		source:  params.Source,
		queue:   params.Queue,
		window:  params.Window,
		webhook: params.Webhook,
		client:  params.Client,
		logger:  params.Logger,
		sent:    map[string]struct{}{},
	}
}

// SetQueue attaches the dispatch queue. The queue's handler is this
// service's Deliver, so the two are constructed in sequence and joined
// here before any Check runs.
func (s *ReminderService) SetQueue(queue ReminderDispatcher) {
	s.queue = queue
}

// Check inspects the next upcoming lesson and enqueues a reminder when it
// starts within the notify window. Safe to call on every tick.
func (s *ReminderService) Check(ctx context.Context) error {
	next := s.source.NextUpcoming()
	if next.Lesson == nil {
		return nil
	}
	if next.MinutesUntil < 0 || time.Duration(next.MinutesUntil)*time.Minute > s.window {
		return nil
	}

	dedupe := fmt.Sprintf("%s@%d", next.Lesson.StableKey, int(*next.Lesson.Start))
	s.mu.Lock()
	if _, already := s.sent[dedupe]; already {
		s.mu.Unlock()
		return nil
	}
	s.sent[dedupe] = struct{}{}
	s.mu.Unlock()

	payload := ReminderPayload{
		Subject:      next.Lesson.Lesson.Subject,
		StartTime:    next.Lesson.Start.String(),
		MinutesUntil: next.MinutesUntil,
	}
	if next.Lesson.Lesson.Room != nil {
		payload.Room = *next.Lesson.Lesson.Room
	}

	if s.queue == nil {
		return s.Deliver(ctx, jobs.Job{Payload: payload})
	}
	return s.queue.Enqueue(jobs.Job{
		ID:      uuid.NewString(),
		Type:    "lesson_reminder",
		Payload: payload,
	})
}

// Deliver is the queue handler: it posts the reminder to the configured
// webhook, or logs it when no webhook is set.
func (s *ReminderService) Deliver(ctx context.Context, job jobs.Job) error {
	payload, ok := job.Payload.(ReminderPayload)
	if !ok {
		return fmt.Errorf("unexpected reminder payload %T", job.Payload)
	}

	if s.webhook == "" {
		s.logger.Info("lesson reminder",
			zap.String("subject", payload.Subject),
			zap.String("start_time", payload.StartTime),
			zap.Int("minutes_until", payload.MinutesUntil))
		return nil
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhook, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("reminder webhook returned %d", resp.StatusCode)
	}
	return nil
}

// ResetDay clears the dedupe set. Scheduled at midnight so yesterday's
// keys do not accumulate.
func (s *ReminderService) ResetDay() {
	s.mu.Lock()
	s.sent = map[string]struct{}{}
	s.mu.Unlock()
}

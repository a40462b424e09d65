package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	portssvc "github.com/EstateBooks/plot_booking_app/internal/core/ports/services"
	"github.com/EstateBooks/plot_booking_app/internal/middleware"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTypeReminderScan is the task type for the daily payment reminder scan.
	TaskTypeReminderScan = "reminders:scan"
)

// ReminderScanPayload parameterises a reminder scan run. An empty AsOf means
// "scan as of now".
type ReminderScanPayload struct {
	AsOf time.Time `json:"asOf,omitzero"`
}

// NewReminderScanTask constructs an Asynq task for the reminder scan.
func NewReminderScanTask(payload ReminderScanPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeReminderScan, data), nil
}

// ReminderScanJob runs the due-booking scan against the reminder service.
type ReminderScanJob struct {
	reminderService portssvc.ReminderSvcFacade
	logger          *slog.Logger
	clock           func() time.Time
}

// NewReminderScanJob initialises the reminder scan handler.
func NewReminderScanJob(reminderService portssvc.ReminderSvcFacade, logger *slog.Logger) *ReminderScanJob {
	return &ReminderScanJob{
		reminderService: reminderService,
		logger:          logger,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Handle executes TaskTypeReminderScan tasks.
func (j *ReminderScanJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.reminderService == nil {
		return errors.New("reminder scan: handler not configured")
	}
	var payload ReminderScanPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	now := payload.AsOf
	if now.IsZero() {
		now = j.clock()
	}

	logger := j.logger.With(slog.String("task", TaskTypeReminderScan))
	ctx = middleware.WithLogger(ctx, logger)

	logger.Info("Starting reminder scan", slog.Time("as_of", now))
	issued, err := j.reminderService.ScanDueBookings(ctx, now)
	if err != nil {
		logger.Error("Reminder scan failed", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Reminder scan complete", slog.Int("issued", issued))
	return nil
}

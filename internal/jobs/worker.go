package jobs

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	portssvc "github.com/EstateBooks/plot_booking_app/internal/core/ports/services"
)

// WorkerConfig collects the dependencies required to bootstrap the worker.
type WorkerConfig struct {
	RedisOpts        asynq.RedisClientOpt
	ReminderSchedule string
	Services         *portssvc.ServiceContainer
	Logger           *slog.Logger
}

// Worker wraps the Asynq server and the cron scheduler that feeds it.
type Worker struct {
	server    *asynq.Server
	mux       *asynq.ServeMux
	scheduler *asynq.Scheduler
	logger    *slog.Logger
}

// NewWorker constructs a Worker with the reminder scan registered on the
// configured cron schedule.
func NewWorker(cfg WorkerConfig) (*Worker, error) {
	srv := asynq.NewServer(cfg.RedisOpts, asynq.Config{
		Concurrency: 5,
		Queues: map[string]int{
			QueueDefault: 1,
		},
	})

	mux := asynq.NewServeMux()
	reminderJob := NewReminderScanJob(cfg.Services.Reminder, cfg.Logger)
	mux.HandleFunc(TaskTypeReminderScan, reminderJob.Handle)

	scheduler := asynq.NewScheduler(cfg.RedisOpts, &asynq.SchedulerOpts{Location: time.UTC})
	task, err := NewReminderScanTask(ReminderScanPayload{})
	if err != nil {
		return nil, err
	}
	if _, err := scheduler.Register(cfg.ReminderSchedule, task, asynq.Queue(QueueDefault)); err != nil {
		return nil, err
	}

	return &Worker{server: srv, mux: mux, scheduler: scheduler, logger: cfg.Logger}, nil
}

// Run starts processing jobs until context cancellation.
func (w *Worker) Run(ctx context.Context) error {
	if w == nil {
		return errors.New("worker: not configured")
	}
	if err := w.scheduler.Start(); err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- w.server.Run(w.mux)
	}()

	select {
	case <-ctx.Done():
		w.scheduler.Shutdown()
		w.server.Shutdown()
		return ctx.Err()
	case err := <-errCh:
		w.scheduler.Shutdown()
		return err
	}
}

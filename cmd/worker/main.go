package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/EstateBooks/plot_booking_app/internal/core/services"
	"github.com/EstateBooks/plot_booking_app/internal/jobs"
	"github.com/EstateBooks/plot_booking_app/internal/platform/config"
	"github.com/EstateBooks/plot_booking_app/internal/repositories/database/pgsql"
	"github.com/EstateBooks/plot_booking_app/pkg/database"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()

	repos := pgsql.NewRepositoryProvider(dbPool)
	svcContainer := services.NewContainer(repos)

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts:        asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		ReminderSchedule: cfg.ReminderSchedule,
		Services:         svcContainer,
		Logger:           logger,
	})
	if err != nil {
		logger.Error("Failed to build worker", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("Worker starting",
		slog.String("redis_addr", cfg.RedisAddr),
		slog.String("reminder_schedule", cfg.ReminderSchedule))
	if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker stopped with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Worker shut down.")
}

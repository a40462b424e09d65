package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/EstateBooks/plot_booking_app/internal/apperrors"
	"github.com/EstateBooks/plot_booking_app/internal/core/domain"
	portsrepo "github.com/EstateBooks/plot_booking_app/internal/core/ports/repositories"
	"github.com/EstateBooks/plot_booking_app/internal/models"
)

type PgxReminderRepository struct {
	pool *pgxpool.Pool
}

func newPgxReminderRepository(pool *pgxpool.Pool) portsrepo.ReminderRepositoryFacade {
	return &PgxReminderRepository{pool: pool}
}

var _ portsrepo.ReminderRepositoryFacade = (*PgxReminderRepository)(nil)

func (r *PgxReminderRepository) SaveReminder(ctx context.Context, reminder domain.PaymentReminder) error {
	query := `
		INSERT INTO payment_reminders (reminder_id, project_id, booking_id, due_date, remaining, created_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.pool.Exec(ctx, query,
		reminder.ReminderID, reminder.ProjectID, reminder.BookingID,
		reminder.DueDate, reminder.Remaining, reminder.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save reminder for booking %s: %w", reminder.BookingID, err)
	}
	return nil
}

func (r *PgxReminderRepository) ExistsForBookingOn(ctx context.Context, bookingID string, day time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM payment_reminders
			WHERE booking_id = $1 AND due_date = $2
		);
	`
	var exists bool
	if err := r.pool.QueryRow(ctx, query, bookingID, day).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check reminder for booking %s: %w", bookingID, err)
	}
	return exists, nil
}

func (r *PgxReminderRepository) ListRemindersByProject(ctx context.Context, projectID string, limit int, offset int) ([]domain.PaymentReminder, error) {
	query := `
		SELECT reminder_id, project_id, booking_id, due_date, remaining, created_at
		FROM payment_reminders
		WHERE project_id = $1
		ORDER BY due_date DESC, created_at DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.pool.Query(ctx, query, projectID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list reminders: %w", err)
	}
	defer rows.Close()

	var reminders []domain.PaymentReminder
	for rows.Next() {
		var m models.PaymentReminder
		if err := rows.Scan(&m.ReminderID, &m.ProjectID, &m.BookingID, &m.DueDate, &m.Remaining, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan reminder row: %w", err)
		}
		reminders = append(reminders, domain.PaymentReminder{
			ReminderID: m.ReminderID,
			ProjectID:  m.ProjectID,
			BookingID:  m.BookingID,
			DueDate:    m.DueDate,
			Remaining:  m.Remaining,
			CreatedAt:  m.CreatedAt,
		})
	}
	return reminders, rows.Err()
}

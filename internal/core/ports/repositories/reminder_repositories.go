package repositories

import (
	"context"
	"time"

	"github.com/EstateBooks/plot_booking_app/internal/core/domain"
)

// ReminderRepositoryFacade defines operations for payment reminders. The
// reminder scan only ever reads bookings/postings and writes reminder rows.
type ReminderRepositoryFacade interface {
	// SaveReminder persists a new reminder.
	SaveReminder(ctx context.Context, reminder domain.PaymentReminder) error

	// ExistsForBookingOn reports whether a reminder already exists for the
	// booking on the given calendar day.
	ExistsForBookingOn(ctx context.Context, bookingID string, day time.Time) (bool, error)

	// ListRemindersByProject retrieves reminders, newest first.
	ListRemindersByProject(ctx context.Context, projectID string, limit int, offset int) ([]domain.PaymentReminder, error)
}

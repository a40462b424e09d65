package services

import (
	"context"
	"time"

	"github.com/EstateBooks/plot_booking_app/internal/core/domain"
)

// ReminderSvcFacade issues payment reminders for bookings that still owe
// money. ScanDueBookings is invoked by the daily background job; it is
// idempotent per booking per calendar day.
type ReminderSvcFacade interface {
	// ScanDueBookings issues reminders for all active bookings with a
	// positive remaining amount, returning the number issued.
	ScanDueBookings(ctx context.Context, now time.Time) (int, error)

	ListReminders(ctx context.Context, projectID string, limit, offset int) ([]domain.PaymentReminder, error)
}

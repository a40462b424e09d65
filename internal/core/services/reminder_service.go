package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/EstateBooks/plot_booking_app/internal/core/domain"
	portsrepo "github.com/EstateBooks/plot_booking_app/internal/core/ports/repositories"
	portssvc "github.com/EstateBooks/plot_booking_app/internal/core/ports/services"
	"github.com/EstateBooks/plot_booking_app/internal/middleware"
)

// reminderService issues payment reminders for bookings that still owe money.
// It only reads bookings and writes reminder rows; it never touches the
// ledger. The scan is idempotent per booking per calendar day.
type reminderService struct {
	bookingRepo  portsrepo.BookingRepositoryFacade
	reminderRepo portsrepo.ReminderRepositoryFacade
}

// NewReminderService creates a new ReminderService.
func NewReminderService(bookingRepo portsrepo.BookingRepositoryFacade, reminderRepo portsrepo.ReminderRepositoryFacade) portssvc.ReminderSvcFacade {
	return &reminderService{bookingRepo: bookingRepo, reminderRepo: reminderRepo}
}

var _ portssvc.ReminderSvcFacade = (*reminderService)(nil)

func (s *reminderService) ScanDueBookings(ctx context.Context, now time.Time) (int, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	bookings, err := s.bookingRepo.ListOpenBookingsWithRemaining(ctx)
	if err != nil {
		return 0, err
	}

	day := now.UTC().Truncate(24 * time.Hour)
	issued := 0
	for _, booking := range bookings {
		exists, err := s.reminderRepo.ExistsForBookingOn(ctx, booking.BookingID, day)
		if err != nil {
			return issued, err
		}
		if exists {
			continue
		}
		reminder := domain.PaymentReminder{
			ReminderID: uuid.NewString(),
			ProjectID:  booking.ProjectID,
			BookingID:  booking.BookingID,
			DueDate:    day,
			Remaining:  booking.Remaining,
			CreatedAt:  now.UTC(),
		}
		if err := s.reminderRepo.SaveReminder(ctx, reminder); err != nil {
			return issued, err
		}
		issued++
	}

	logger.Info("Reminder scan finished", slog.Int("candidates", len(bookings)), slog.Int("issued", issued))
	return issued, nil
}

func (s *reminderService) ListReminders(ctx context.Context, projectID string, limit, offset int) ([]domain.PaymentReminder, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.reminderRepo.ListRemindersByProject(ctx, projectID, limit, offset)
}

package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/EstateBooks/plot_booking_app/internal/core/domain"
)

// BookingReader defines read operations for booking data.
type BookingReader interface {
	// FindBookingByID retrieves a booking with its plot links.
	FindBookingByID(ctx context.Context, bookingID string) (*domain.Booking, error)

	// ListBookingsByProject retrieves a paginated list of bookings.
	ListBookingsByProject(ctx context.Context, projectID string, limit int, nextToken *string) ([]domain.Booking, *string, error)

	// ListOpenBookingsWithRemaining retrieves active bookings whose remaining
	// amount is positive. Used by the reminder scan.
	ListOpenBookingsWithRemaining(ctx context.Context) ([]domain.Booking, error)
}

// BookingWriter defines in-transaction write operations for booking data.
type BookingWriter interface {
	// NextBookingSeqInTx atomically increments and returns the per-project
	// booking sequence used to mint human-readable booking numbers.
	NextBookingSeqInTx(ctx context.Context, tx pgx.Tx, projectID string) (int, error)

	// InsertBookingInTx inserts the booking row and its plot links.
	InsertBookingInTx(ctx context.Context, tx pgx.Tx, booking domain.Booking) error

	// UpdateBookingInTx overwrites the mutable fields of a booking.
	UpdateBookingInTx(ctx context.Context, tx pgx.Tx, booking domain.Booking) error

	// UpdateBookingStatusInTx sets only the lifecycle status of a booking.
	UpdateBookingStatusInTx(ctx context.Context, tx pgx.Tx, bookingID string, status domain.BookingStatus, userID string) error

	// DeleteBookingInTx removes the booking row and its plot links.
	DeleteBookingInTx(ctx context.Context, tx pgx.Tx, bookingID string) error
}

// BookingRepositoryFacade combines booking reads and writes.
type BookingRepositoryFacade interface {
	BookingReader
	BookingWriter
}

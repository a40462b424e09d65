package services

import (
	"context"

	"github.com/EstateBooks/plot_booking_app/internal/core/domain"
	"github.com/EstateBooks/plot_booking_app/internal/dto"
)

// BookingSvcFacade owns the booking lifecycle and its posting workflow. Every
// operation runs as one atomic unit of work covering the booking row, plot
// statuses, the advance fund and all derived postings.
type BookingSvcFacade interface {
	CreateBooking(ctx context.Context, req dto.CreateBookingRequest, creatorUserID string) (*domain.Booking, error)
	UpdateBooking(ctx context.Context, bookingID string, req dto.UpdateBookingRequest, userID string) (*domain.Booking, error)
	DeleteBooking(ctx context.Context, bookingID string, userID string) error
	GetBookingByID(ctx context.Context, bookingID string) (*domain.Booking, error)
	ListBookings(ctx context.Context, projectID string, limit int, nextToken *string) ([]domain.Booking, *string, error)
}

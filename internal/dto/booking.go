package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/EstateBooks/plot_booking_app/internal/core/domain"
)

// CreateBookingRequest defines the data needed to create a booking. A linked
// token must be pending; its amount counts towards the receiving total.
type CreateBookingRequest struct {
	ProjectID            string          `json:"projectID" binding:"required"`
	CustomerID           string          `json:"customerID" binding:"required"`
	PlotIDs              []string        `json:"plotIDs" binding:"required,min=1"`
	TokenID              *string         `json:"tokenID"`
	BookingDate          time.Time       `json:"bookingDate" binding:"required"`
	TotalAmount          decimal.Decimal `json:"totalAmount" binding:"decimalgt"`
	Advance              decimal.Decimal `json:"advance"`
	AdvanceBankID        *string         `json:"advanceBankID"`
	AdvancePaymentMethod string          `json:"advancePaymentMethod"`
	DealerName           string          `json:"dealerName"`
	DealerComissionAmt   decimal.Decimal `json:"dealerComissionAmount"`
}

// UpdateBookingRequest defines the fields a booking update may change.
// Pointers distinguish "not provided" from zero values. Changing PlotIDs
// re-derives the plot-cost legs and swaps plot statuses accordingly.
type UpdateBookingRequest struct {
	PlotIDs              []string         `json:"plotIDs"`
	BookingDate          *time.Time       `json:"bookingDate"`
	TotalAmount          *decimal.Decimal `json:"totalAmount"`
	Advance              *decimal.Decimal `json:"advance"`
	AdvanceBankID        *string          `json:"advanceBankID"`
	AdvancePaymentMethod *string          `json:"advancePaymentMethod"`
	DealerName           *string          `json:"dealerName"`
	DealerComissionAmt   *decimal.Decimal `json:"dealerComissionAmount"`
}

// BookingResponse mirrors domain.Booking for API output.
type BookingResponse struct {
	BookingID            string          `json:"bookingID"`
	BookingNo            string          `json:"bookingNo"`
	ProjectID            string          `json:"projectID"`
	CustomerID           string          `json:"customerID"`
	PlotIDs              []string        `json:"plotIDs"`
	TokenID              *string         `json:"tokenID,omitempty"`
	BookingDate          time.Time       `json:"bookingDate"`
	TotalAmount          decimal.Decimal `json:"totalAmount"`
	Advance              decimal.Decimal `json:"advance"`
	DealerName           string          `json:"dealerName,omitempty"`
	DealerComissionAmt   decimal.Decimal `json:"dealerComissionAmount"`
	TotalReceivingAmount decimal.Decimal `json:"totalReceivingAmount"`
	Remaining            decimal.Decimal `json:"remaining"`
	Status               string          `json:"status"`
	CreatedAt            time.Time       `json:"createdAt"`
}

// ToBookingResponse converts a domain.Booking to BookingResponse.
func ToBookingResponse(b *domain.Booking) BookingResponse {
	return BookingResponse{
		BookingID:            b.BookingID,
		BookingNo:            b.BookingNo,
		ProjectID:            b.ProjectID,
		CustomerID:           b.CustomerID,
		PlotIDs:              b.PlotIDs,
		TokenID:              b.TokenID,
		BookingDate:          b.BookingDate,
		TotalAmount:          b.TotalAmount,
		Advance:              b.Advance,
		DealerName:           b.DealerName,
		DealerComissionAmt:   b.DealerComissionAmt,
		TotalReceivingAmount: b.TotalReceivingAmount,
		Remaining:            b.Remaining,
		Status:               string(b.Status),
		CreatedAt:            b.CreatedAt,
	}
}

// ToBookingResponses converts a slice of bookings.
func ToBookingResponses(bookings []domain.Booking) []BookingResponse {
	responses := make([]BookingResponse, len(bookings))
	for i := range bookings {
		responses[i] = ToBookingResponse(&bookings[i])
	}
	return responses
}

// ListBookingsResponse is a paginated booking list.
type ListBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	NextToken *string           `json:"nextToken,omitempty"`
}

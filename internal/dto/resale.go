package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/EstateBooks/plot_booking_app/internal/core/domain"
)

// CreateResaleRequest defines the data needed to resell a booked plot.
type CreateResaleRequest struct {
	BookingID         string          `json:"bookingID" binding:"required"`
	ResaleDate        time.Time       `json:"resaleDate" binding:"required"`
	OldAmount         decimal.Decimal `json:"oldAmount"`
	NewAmount         decimal.Decimal `json:"newAmount"`
	CompanyAmountPaid decimal.Decimal `json:"companyAmountPaid"`
	AmountReceived    decimal.Decimal `json:"amountReceived"`
	Remaining         decimal.Decimal `json:"remaining"`
}

// UpdateResaleRequest carries the full replacement terms of a resale; its
// postings are regenerated wholesale, so no partial-field semantics exist.
type UpdateResaleRequest struct {
	ResaleDate        time.Time       `json:"resaleDate" binding:"required"`
	OldAmount         decimal.Decimal `json:"oldAmount"`
	NewAmount         decimal.Decimal `json:"newAmount"`
	CompanyAmountPaid decimal.Decimal `json:"companyAmountPaid"`
	AmountReceived    decimal.Decimal `json:"amountReceived"`
	Remaining         decimal.Decimal `json:"remaining"`
}

// ResaleResponse mirrors domain.PlotResale for API output.
type ResaleResponse struct {
	ResaleID          string          `json:"resaleID"`
	ProjectID         string          `json:"projectID"`
	BookingID         string          `json:"bookingID"`
	ResaleDate        time.Time       `json:"resaleDate"`
	OldAmount         decimal.Decimal `json:"oldAmount"`
	NewAmount         decimal.Decimal `json:"newAmount"`
	CompanyAmountPaid decimal.Decimal `json:"companyAmountPaid"`
	AmountReceived    decimal.Decimal `json:"amountReceived"`
	Remaining         decimal.Decimal `json:"remaining"`
	CreatedAt         time.Time       `json:"createdAt"`
}

// ToResaleResponse converts a domain.PlotResale to ResaleResponse.
func ToResaleResponse(r *domain.PlotResale) ResaleResponse {
	return ResaleResponse{
		ResaleID:          r.ResaleID,
		ProjectID:         r.ProjectID,
		BookingID:         r.BookingID,
		ResaleDate:        r.ResaleDate,
		OldAmount:         r.OldAmount,
		NewAmount:         r.NewAmount,
		CompanyAmountPaid: r.CompanyAmountPaid,
		AmountReceived:    r.AmountReceived,
		Remaining:         r.Remaining,
		CreatedAt:         r.CreatedAt,
	}
}

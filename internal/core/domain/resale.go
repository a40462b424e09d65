package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PlotResale closes a booking and records the reconciliation of amounts paid
// back by the company versus received from the new party. Its postings are
// always regenerated wholesale on update, never patched in place.
type PlotResale struct {
	ResaleID          string          `json:"resaleID"`
	ProjectID         string          `json:"projectID"`
	BookingID         string          `json:"bookingID"`
	ResaleDate        time.Time       `json:"resaleDate"`
	OldAmount         decimal.Decimal `json:"oldAmount"`
	NewAmount         decimal.Decimal `json:"newAmount"`
	CompanyAmountPaid decimal.Decimal `json:"companyAmountPaid"`
	AmountReceived    decimal.Decimal `json:"amountReceived"`
	Remaining         decimal.Decimal `json:"remaining"`
	AuditFields
}

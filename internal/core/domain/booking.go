package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	BookingActive BookingStatus = "active"
	BookingClosed BookingStatus = "close"
)

// PaymentMethodCheque is the payment method spelling that delays cheque
// clearance on advance/token postings.
const PaymentMethodCheque = "Cheque"

// Booking sells one or more plots to a customer. TotalReceivingAmount and
// Remaining are denormalised from the payment history (token amount plus
// signed incoming funds) and maintained by the booking workflow.
type Booking struct {
	BookingID            string          `json:"bookingID"`
	BookingNo            string          `json:"bookingNo"`
	ProjectID            string          `json:"projectID"`
	CustomerID           string          `json:"customerID"`
	PlotIDs              []string        `json:"plotIDs"`
	TokenID              *string         `json:"tokenID,omitempty"`
	BookingDate          time.Time       `json:"bookingDate"`
	TotalAmount          decimal.Decimal `json:"totalAmount"`
	Advance              decimal.Decimal `json:"advance"`
	AdvanceBankID        *string         `json:"advanceBankID,omitempty"`
	AdvancePaymentMethod string          `json:"advancePaymentMethod"`
	DealerName           string          `json:"dealerName"`
	DealerComissionAmt   decimal.Decimal `json:"dealerComissionAmount"`
	TotalReceivingAmount decimal.Decimal `json:"totalReceivingAmount"`
	Remaining            decimal.Decimal `json:"remaining"`
	Status               BookingStatus   `json:"status"`
	AuditFields
}

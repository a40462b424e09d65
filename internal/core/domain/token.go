package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TokenStatus is the lifecycle state of a reservation token.
type TokenStatus string

const (
	TokenPending   TokenStatus = "pending"
	TokenAccepted  TokenStatus = "accepted"
	TokenCancelled TokenStatus = "cancelled"
	TokenRefunded  TokenStatus = "refunded"
)

// Token reserves plots for a customer against an upfront amount. A pending
// token can be promoted into a booking (status accepted, amount counted into
// the booking's receiving total) or refunded (plots released, refund legs
// posted).
type Token struct {
	TokenID       string          `json:"tokenID"`
	DocumentNo    string          `json:"documentNo"`
	ProjectID     string          `json:"projectID"`
	CustomerID    string          `json:"customerID"`
	PlotIDs       []string        `json:"plotIDs"`
	Amount        decimal.Decimal `json:"amount"`
	TokenDate     time.Time       `json:"tokenDate"`
	ExpiryDate    time.Time       `json:"expiryDate"`
	BankID        *string         `json:"bankID,omitempty"`
	PaymentMethod string          `json:"paymentMethod"`
	Status        TokenStatus     `json:"status"`
	AuditFields
}

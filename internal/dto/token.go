package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/EstateBooks/plot_booking_app/internal/core/domain"
)

// CreateTokenRequest defines the data needed to create a reservation token.
type CreateTokenRequest struct {
	ProjectID     string          `json:"projectID" binding:"required"`
	CustomerID    string          `json:"customerID" binding:"required"`
	PlotIDs       []string        `json:"plotIDs" binding:"required,min=1"`
	Amount        decimal.Decimal `json:"amount" binding:"decimalgt"`
	TokenDate     time.Time       `json:"tokenDate" binding:"required"`
	ExpiryDate    time.Time       `json:"expiryDate" binding:"required"`
	BankID        *string         `json:"bankID"`
	PaymentMethod string          `json:"paymentMethod"`
}

// UpdateTokenRequest defines the fields a token update may change.
type UpdateTokenRequest struct {
	Amount        *decimal.Decimal `json:"amount"`
	TokenDate     *time.Time       `json:"tokenDate"`
	ExpiryDate    *time.Time       `json:"expiryDate"`
	BankID        *string          `json:"bankID"`
	PaymentMethod *string          `json:"paymentMethod"`
}

// RefundTokenRequest closes a token by refund or cancellation. NewStatus
// "refunded" issues TokenRefund postings; "cancelled" only releases plots.
type RefundTokenRequest struct {
	RefundBankID *string   `json:"refundBankID"`
	RefundDate   time.Time `json:"refundDate" binding:"required"`
	RefundMethod string    `json:"refundMethod"`
	NewStatus    string    `json:"newStatus" binding:"required,oneof=refunded cancelled"`
}

// TokenResponse mirrors domain.Token for API output.
type TokenResponse struct {
	TokenID       string          `json:"tokenID"`
	DocumentNo    string          `json:"documentNo"`
	ProjectID     string          `json:"projectID"`
	CustomerID    string          `json:"customerID"`
	PlotIDs       []string        `json:"plotIDs"`
	Amount        decimal.Decimal `json:"amount"`
	TokenDate     time.Time       `json:"tokenDate"`
	ExpiryDate    time.Time       `json:"expiryDate"`
	PaymentMethod string          `json:"paymentMethod"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// ToTokenResponse converts a domain.Token to TokenResponse.
func ToTokenResponse(t *domain.Token) TokenResponse {
	return TokenResponse{
		TokenID:       t.TokenID,
		DocumentNo:    t.DocumentNo,
		ProjectID:     t.ProjectID,
		CustomerID:    t.CustomerID,
		PlotIDs:       t.PlotIDs,
		Amount:        t.Amount,
		TokenDate:     t.TokenDate,
		ExpiryDate:    t.ExpiryDate,
		PaymentMethod: t.PaymentMethod,
		Status:        string(t.Status),
		CreatedAt:     t.CreatedAt,
	}
}

// ToTokenResponses converts a slice of tokens.
func ToTokenResponses(tokens []domain.Token) []TokenResponse {
	responses := make([]TokenResponse, len(tokens))
	for i := range tokens {
		responses[i] = ToTokenResponse(&tokens[i])
	}
	return responses
}

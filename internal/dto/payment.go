package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/EstateBooks/plot_booking_app/internal/core/domain"
)

// CreateFundRequest defines the data needed to record a customer payment or
// refund against a booking.
type CreateFundRequest struct {
	BookingID     string          `json:"bookingID" binding:"required"`
	Reference     string          `json:"reference" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"decimalgt"`
	Date          time.Time       `json:"date" binding:"required"`
	BankID        *string         `json:"bankID"`
	PaymentMethod string          `json:"paymentMethod"`
	Remarks       string          `json:"remarks"`
}

// UpdateFundRequest defines the fields a fund update may change. Amount
// changes propagate to the booking totals by signed delta.
type UpdateFundRequest struct {
	Amount        *decimal.Decimal `json:"amount"`
	Date          *time.Time       `json:"date"`
	BankID        *string          `json:"bankID"`
	PaymentMethod *string          `json:"paymentMethod"`
	Remarks       *string          `json:"remarks"`
}

// FundResponse mirrors domain.IncomingFund for API output.
type FundResponse struct {
	FundID        string          `json:"fundID"`
	DocumentNo    string          `json:"documentNo"`
	ProjectID     string          `json:"projectID"`
	BookingID     string          `json:"bookingID"`
	Reference     string          `json:"reference"`
	IsAdvance     bool            `json:"isAdvance"`
	Amount        decimal.Decimal `json:"amount"`
	Date          time.Time       `json:"date"`
	PaymentMethod string          `json:"paymentMethod"`
	Remarks       string          `json:"remarks,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// ToFundResponse converts a domain.IncomingFund to FundResponse.
func ToFundResponse(f *domain.IncomingFund) FundResponse {
	return FundResponse{
		FundID:        f.FundID,
		DocumentNo:    f.DocumentNo,
		ProjectID:     f.ProjectID,
		BookingID:     f.BookingID,
		Reference:     string(f.Reference),
		IsAdvance:     f.IsAdvance,
		Amount:        f.Amount,
		Date:          f.Date,
		PaymentMethod: f.PaymentMethod,
		Remarks:       f.Remarks,
		CreatedAt:     f.CreatedAt,
	}
}

// ToFundResponses converts a slice of funds.
func ToFundResponses(funds []domain.IncomingFund) []FundResponse {
	responses := make([]FundResponse, len(funds))
	for i := range funds {
		responses[i] = ToFundResponse(&funds[i])
	}
	return responses
}

// CreateDepositRequest moves undeposited funds into a bank, clearing the
// referenced cheque postings.
type CreateDepositRequest struct {
	ProjectID  string          `json:"projectID" binding:"required"`
	BankID     string          `json:"bankID" binding:"required"`
	Amount     decimal.Decimal `json:"amount" binding:"decimalgt"`
	Date       time.Time       `json:"date" binding:"required"`
	PostingIDs []string        `json:"postingIDs"`
	Remarks    string          `json:"remarks"`
}

// UpdateDepositRequest carries full replacement values; the deposit's posting
// pair is deleted and recreated.
type UpdateDepositRequest struct {
	BankID  string          `json:"bankID" binding:"required"`
	Amount  decimal.Decimal `json:"amount" binding:"decimalgt"`
	Date    time.Time       `json:"date" binding:"required"`
	Remarks string          `json:"remarks"`
}

// CreateTransferRequest moves funds between two banks of a project.
type CreateTransferRequest struct {
	ProjectID  string          `json:"projectID" binding:"required"`
	FromBankID string          `json:"fromBankID" binding:"required"`
	ToBankID   string          `json:"toBankID" binding:"required"`
	Amount     decimal.Decimal `json:"amount" binding:"decimalgt"`
	Date       time.Time       `json:"date" binding:"required"`
	Remarks    string          `json:"remarks"`
}

// UpdateTransferRequest carries full replacement values; the transfer's
// posting pair is deleted and recreated.
type UpdateTransferRequest struct {
	FromBankID string          `json:"fromBankID" binding:"required"`
	ToBankID   string          `json:"toBankID" binding:"required"`
	Amount     decimal.Decimal `json:"amount" binding:"decimalgt"`
	Date       time.Time       `json:"date" binding:"required"`
	Remarks    string          `json:"remarks"`
}

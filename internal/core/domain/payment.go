package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FundReference discriminates the direction of an incoming fund.
type FundReference string

const (
	// FundPayment increases the booking's received total.
	FundPayment FundReference = "payment"
	// FundRefund decreases the booking's received total.
	FundRefund FundReference = "refund"
)

// SignedAmount applies the reference sign to the fund amount: +amount for
// payments, -amount for refunds.
func (f *IncomingFund) SignedAmount() decimal.Decimal {
	if f.Reference == FundRefund {
		return f.Amount.Neg()
	}
	return f.Amount
}

// IncomingFund is a customer payment or refund against a booking. The advance
// captured at booking time is recorded as an IncomingFund with IsAdvance set;
// its ledger legs are owned by the booking workflow, not this record.
type IncomingFund struct {
	FundID        string          `json:"fundID"`
	DocumentNo    string          `json:"documentNo"`
	ProjectID     string          `json:"projectID"`
	BookingID     string          `json:"bookingID"`
	Reference     FundReference   `json:"reference"`
	IsAdvance     bool            `json:"isAdvance"`
	Amount        decimal.Decimal `json:"amount"`
	Date          time.Time       `json:"date"`
	BankID        *string         `json:"bankID,omitempty"`
	PaymentMethod string          `json:"paymentMethod"`
	Remarks       string          `json:"remarks"`
	AuditFields
}

// BankDeposit moves undeposited funds into a bank account and clears the
// referenced cheque postings.
type BankDeposit struct {
	DepositID  string          `json:"depositID"`
	ProjectID  string          `json:"projectID"`
	BankID     string          `json:"bankID"`
	Amount     decimal.Decimal `json:"amount"`
	Date       time.Time       `json:"date"`
	PostingIDs []string        `json:"postingIDs"`
	Remarks    string          `json:"remarks"`
	AuditFields
}

// BankTransfer moves funds between two bank accounts of the same project.
type BankTransfer struct {
	TransferID string          `json:"transferID"`
	ProjectID  string          `json:"projectID"`
	FromBankID string          `json:"fromBankID"`
	ToBankID   string          `json:"toBankID"`
	Amount     decimal.Decimal `json:"amount"`
	Date       time.Time       `json:"date"`
	Remarks    string          `json:"remarks"`
	AuditFields
}

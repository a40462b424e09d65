// Package models holds the database row representations. Repositories map
// these to and from the domain types; nothing outside the repository layer
// touches them.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AuditFields mirrors the audit columns shared by every table.
type AuditFields struct {
	CreatedAt     time.Time
	CreatedBy     string
	LastUpdatedAt time.Time
	LastUpdatedBy string
}

type Project struct {
	ProjectID string
	Code      string
	Name      string
	Address   string
	IsActive  bool
	AuditFields
}

type Customer struct {
	CustomerID string
	ProjectID  string
	Name       string
	FatherName string
	CNIC       string
	Phone      string
	Address    string
	AuditFields
}

type Plot struct {
	PlotID    string
	ProjectID string
	Number    string
	Sector    string
	AreaSqft  decimal.Decimal
	CostPrice decimal.Decimal
	SalePrice decimal.Decimal
	Status    string
	AuditFields
}

type BankAccount struct {
	AccountID       string
	ProjectID       string
	Name            string
	UsedFor         string
	MainType        string
	DetailType      string
	ParentAccountID *string
	IsActive        bool
	AuditFields
}

type BankTransaction struct {
	TransactionID   string
	ProjectID       string
	AccountID       string
	Kind            string
	Payment         decimal.Decimal
	Deposit         decimal.Decimal
	TransactionDate time.Time
	RelatedTable    string
	RelatedID       string
	IsDeposit       bool
	IsChequeClear   bool
	AuditFields
}

type Booking struct {
	BookingID            string
	BookingNo            string
	ProjectID            string
	CustomerID           string
	TokenID              *string
	BookingDate          time.Time
	TotalAmount          decimal.Decimal
	Advance              decimal.Decimal
	AdvanceBankID        *string
	AdvancePaymentMethod string
	DealerName           string
	DealerComissionAmt   decimal.Decimal
	TotalReceivingAmount decimal.Decimal
	Remaining            decimal.Decimal
	Status               string
	AuditFields
}

type Token struct {
	TokenID       string
	DocumentNo    string
	ProjectID     string
	CustomerID    string
	Amount        decimal.Decimal
	TokenDate     time.Time
	ExpiryDate    time.Time
	BankID        *string
	PaymentMethod string
	Status        string
	AuditFields
}

type PlotResale struct {
	ResaleID          string
	ProjectID         string
	BookingID         string
	ResaleDate        time.Time
	OldAmount         decimal.Decimal
	NewAmount         decimal.Decimal
	CompanyAmountPaid decimal.Decimal
	AmountReceived    decimal.Decimal
	Remaining         decimal.Decimal
	AuditFields
}

type IncomingFund struct {
	FundID        string
	DocumentNo    string
	ProjectID     string
	BookingID     string
	Reference     string
	IsAdvance     bool
	Amount        decimal.Decimal
	Date          time.Time
	BankID        *string
	PaymentMethod string
	Remarks       string
	AuditFields
}

type BankDeposit struct {
	DepositID string
	ProjectID string
	BankID    string
	Amount    decimal.Decimal
	Date      time.Time
	Remarks   string
	AuditFields
}

type BankTransfer struct {
	TransferID string
	ProjectID  string
	FromBankID string
	ToBankID   string
	Amount     decimal.Decimal
	Date       time.Time
	Remarks    string
	AuditFields
}

type PaymentReminder struct {
	ReminderID string
	ProjectID  string
	BookingID  string
	DueDate    time.Time
	Remaining  decimal.Decimal
	CreatedAt  time.Time
}

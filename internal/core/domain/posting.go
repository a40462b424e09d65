package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind tags a posting with the business event family it belongs to.
// The spellings match the persisted values and must not be normalised.
type TransactionKind string

const (
	KindBooking         TransactionKind = "Booking"
	KindBookingAdvance  TransactionKind = "Booking_Advance"
	KindDealerComission TransactionKind = "Dealer_Comission"
	KindToken           TransactionKind = "Token"
	KindTokenRefund     TransactionKind = "TokenRefund"
	KindCloseBooking    TransactionKind = "Close_Booking"
	KindDeposit         TransactionKind = "deposit"
	KindTransfer        TransactionKind = "transfer"
)

// RelatedTable identifies the entity type a posting originates from.
type RelatedTable string

const (
	RelBooking      RelatedTable = "Booking"
	RelToken        RelatedTable = "Token"
	RelPlotResale   RelatedTable = "PlotResale"
	RelIncomingFund RelatedTable = "IncomingFund"
	RelBankDeposit  RelatedTable = "BankDeposit"
	RelBankTransfer RelatedTable = "BankTransfer"
)

// EventRef is the (related_table, related_id) pair identifying the business
// event that owns a set of postings.
type EventRef struct {
	Table RelatedTable `json:"relatedTable"`
	ID    string       `json:"relatedID"`
}

// BankTransaction is a single posting against one account, created and
// maintained exclusively by the workflow that owns its originating event.
// Payment is the debit-side magnitude, Deposit the credit-side magnitude;
// exactly one of them is normally non-zero.
type BankTransaction struct {
	TransactionID   string          `json:"transactionID"`
	ProjectID       string          `json:"projectID"`
	AccountID       string          `json:"accountID"`
	Kind            TransactionKind `json:"kind"`
	Payment         decimal.Decimal `json:"payment"`
	Deposit         decimal.Decimal `json:"deposit"`
	TransactionDate time.Time       `json:"transactionDate"`
	Ref             EventRef        `json:"ref"`
	IsDeposit       bool            `json:"isDeposit"`
	IsChequeClear   bool            `json:"isChequeClear"`
	AuditFields
}

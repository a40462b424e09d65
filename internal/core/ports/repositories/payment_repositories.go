package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/EstateBooks/plot_booking_app/internal/core/domain"
)

// FundReader defines read operations for incoming fund data.
type FundReader interface {
	// FindFundByID retrieves an incoming fund record.
	FindFundByID(ctx context.Context, fundID string) (*domain.IncomingFund, error)

	// ListFundsByBooking retrieves the payment history of a booking in
	// document order.
	ListFundsByBooking(ctx context.Context, bookingID string) ([]domain.IncomingFund, error)

	// SumFundsByBooking computes the signed sum of a booking's funds
	// (payments positive, refunds negative).
	SumFundsByBooking(ctx context.Context, bookingID string) (decimal.Decimal, error)
}

// FundWriter defines in-transaction write operations for incoming funds.
type FundWriter interface {
	// NextDocumentSeqInTx atomically increments and returns the per-project
	// incoming fund document sequence.
	NextDocumentSeqInTx(ctx context.Context, tx pgx.Tx, projectID string) (int, error)

	// InsertFundInTx inserts the fund row.
	InsertFundInTx(ctx context.Context, tx pgx.Tx, fund domain.IncomingFund) error

	// UpdateFundInTx overwrites the mutable fields of a fund.
	UpdateFundInTx(ctx context.Context, tx pgx.Tx, fund domain.IncomingFund) error

	// DeleteFundInTx removes the fund row.
	DeleteFundInTx(ctx context.Context, tx pgx.Tx, fundID string) error
}

// FundRepositoryFacade combines incoming fund reads and writes.
type FundRepositoryFacade interface {
	FundReader
	FundWriter
}

// BankingWriter defines in-transaction write operations for bank deposits and
// transfers.
type BankingWriter interface {
	InsertDepositInTx(ctx context.Context, tx pgx.Tx, deposit domain.BankDeposit) error
	UpdateDepositInTx(ctx context.Context, tx pgx.Tx, deposit domain.BankDeposit) error
	DeleteDepositInTx(ctx context.Context, tx pgx.Tx, depositID string) error
	InsertTransferInTx(ctx context.Context, tx pgx.Tx, transfer domain.BankTransfer) error
	UpdateTransferInTx(ctx context.Context, tx pgx.Tx, transfer domain.BankTransfer) error
	DeleteTransferInTx(ctx context.Context, tx pgx.Tx, transferID string) error
}

// BankingReader defines read operations for deposits and transfers.
type BankingReader interface {
	FindDepositByID(ctx context.Context, depositID string) (*domain.BankDeposit, error)
	FindTransferByID(ctx context.Context, transferID string) (*domain.BankTransfer, error)
	ListDepositsByProject(ctx context.Context, projectID string, limit int, offset int) ([]domain.BankDeposit, error)
	ListTransfersByProject(ctx context.Context, projectID string, limit int, offset int) ([]domain.BankTransfer, error)
}

// BankingRepositoryFacade combines deposit/transfer reads and writes.
type BankingRepositoryFacade interface {
	BankingReader
	BankingWriter
}

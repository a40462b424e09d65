package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/EstateBooks/plot_booking_app/internal/core/domain"
)

// LedgerWriter defines the posting mutations available to workflows. All
// writers run on the caller's transaction so that an event's entity writes
// and posting writes commit or roll back together.
type LedgerWriter interface {
	// InsertPostingInTx inserts a new posting row.
	InsertPostingInTx(ctx context.Context, tx pgx.Tx, posting domain.BankTransaction) error

	// FindPostingForUpdateInTx locates the unique posting for
	// (project, account, kind, related_table, related_id) and locks it.
	// Returns nil (no error) when absent; the caller falls back to insert.
	FindPostingForUpdateInTx(ctx context.Context, tx pgx.Tx, projectID, accountID string, kind domain.TransactionKind, ref domain.EventRef) (*domain.BankTransaction, error)

	// FindKindPostingForUpdateInTx locates the posting for (project, kind,
	// related_table, related_id) whose account is NOT excludeAccountID, and
	// locks it. Used for bank-side legs whose account may change between
	// updates. Returns nil (no error) when absent.
	FindKindPostingForUpdateInTx(ctx context.Context, tx pgx.Tx, projectID string, kind domain.TransactionKind, ref domain.EventRef, excludeAccountID string) (*domain.BankTransaction, error)

	// UpdatePostingInTx overwrites amounts, date and flags of an existing
	// posting identified by its TransactionID.
	UpdatePostingInTx(ctx context.Context, tx pgx.Tx, posting domain.BankTransaction) error

	// DeletePostingsByRefInTx deletes every posting belonging to the given
	// event, used on entity deletion and on full resale regeneration.
	DeletePostingsByRefInTx(ctx context.Context, tx pgx.Tx, ref domain.EventRef) error

	// MarkPostingDepositedInTx flips is_deposit/is_cheque_clear on a posting
	// being cleared by a bank deposit. Returns ErrNotFound when the posting
	// does not exist; callers report it as a warning and skip.
	MarkPostingDepositedInTx(ctx context.Context, tx pgx.Tx, postingID string) error
}

// LedgerReader defines read-only consumers of the ledger (reporting,
// reminders, bank detail views).
type LedgerReader interface {
	// FindPostingByID retrieves a posting by its identifier.
	FindPostingByID(ctx context.Context, postingID string) (*domain.BankTransaction, error)

	// ListPostingsByRef retrieves every posting for a business event.
	ListPostingsByRef(ctx context.Context, ref domain.EventRef) ([]domain.BankTransaction, error)

	// ListPostingsByAccount retrieves a paginated list of postings for an
	// account using token-based pagination.
	ListPostingsByAccount(ctx context.Context, projectID, accountID string, limit int, nextToken *string) ([]domain.BankTransaction, *string, error)

	// AccountBalance computes SUM(deposit) - SUM(payment) over an account's
	// postings. Balances are never cached on the account row.
	AccountBalance(ctx context.Context, accountID string) (decimal.Decimal, error)

	// ListUndepositedPostings retrieves postings of a project still held as
	// undeposited funds (is_deposit=false).
	ListUndepositedPostings(ctx context.Context, projectID string) ([]domain.BankTransaction, error)
}

// LedgerRepositoryFacade combines ledger reads and writes.
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}

// LedgerRepositoryWithTx extends LedgerRepositoryFacade with transaction
// management, letting workflow services own the unit-of-work boundary.
type LedgerRepositoryWithTx interface {
	LedgerRepositoryFacade
	TransactionManager
}

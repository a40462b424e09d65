package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TransactionManager defines methods for database transaction management.
// Each business event runs its entity writes and posting mutations on a
// single transaction obtained here; any failure rolls the whole unit back.
type TransactionManager interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) (pgx.Tx, error)

	// Commit commits a transaction.
	Commit(ctx context.Context, tx pgx.Tx) error

	// Rollback rolls back a transaction. Safe to call after Commit.
	Rollback(ctx context.Context, tx pgx.Tx) error
}

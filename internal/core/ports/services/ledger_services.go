package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/EstateBooks/plot_booking_app/internal/core/domain"
)

// LedgerSvcFacade exposes read-only views over the posting ledger for the
// reporting endpoints. All mutation goes through the event workflows.
type LedgerSvcFacade interface {
	GetPostingByID(ctx context.Context, postingID string) (*domain.BankTransaction, error)
	ListPostingsByAccount(ctx context.Context, projectID, accountID string, limit int, nextToken *string) ([]domain.BankTransaction, *string, error)
	ListPostingsByRef(ctx context.Context, ref domain.EventRef) ([]domain.BankTransaction, error)
	AccountBalance(ctx context.Context, accountID string) (decimal.Decimal, error)
	ListUndeposited(ctx context.Context, projectID string) ([]domain.BankTransaction, error)
}

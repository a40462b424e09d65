package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/EstateBooks/plot_booking_app/internal/core/domain"
	portsrepo "github.com/EstateBooks/plot_booking_app/internal/core/ports/repositories"
	portssvc "github.com/EstateBooks/plot_booking_app/internal/core/ports/services"
)

// ledgerService is the read-only reporting surface over the posting ledger.
type ledgerService struct {
	ledgerRepo portsrepo.LedgerRepositoryFacade
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepositoryFacade) portssvc.LedgerSvcFacade {
	return &ledgerService{ledgerRepo: ledgerRepo}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

func (s *ledgerService) GetPostingByID(ctx context.Context, postingID string) (*domain.BankTransaction, error) {
	return s.ledgerRepo.FindPostingByID(ctx, postingID)
}

func (s *ledgerService) ListPostingsByAccount(ctx context.Context, projectID, accountID string, limit int, nextToken *string) ([]domain.BankTransaction, *string, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.ledgerRepo.ListPostingsByAccount(ctx, projectID, accountID, limit, nextToken)
}

func (s *ledgerService) ListPostingsByRef(ctx context.Context, ref domain.EventRef) ([]domain.BankTransaction, error) {
	return s.ledgerRepo.ListPostingsByRef(ctx, ref)
}

// AccountBalance computes the balance on demand; nothing is cached on the
// account row.
func (s *ledgerService) AccountBalance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	return s.ledgerRepo.AccountBalance(ctx, accountID)
}

func (s *ledgerService) ListUndeposited(ctx context.Context, projectID string) ([]domain.BankTransaction, error) {
	return s.ledgerRepo.ListUndepositedPostings(ctx, projectID)
}

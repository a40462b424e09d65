package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/EstateBooks/plot_booking_app/internal/apperrors"
	"github.com/EstateBooks/plot_booking_app/internal/core/domain"
	portsrepo "github.com/EstateBooks/plot_booking_app/internal/core/ports/repositories"
	portssvc "github.com/EstateBooks/plot_booking_app/internal/core/ports/services"
)

// asValidation re-raises a workflow failure as a single user-facing
// validation error, preserving the original message. The atomic unit of work
// has already been rolled back by the time this is called.
func asValidation(err error) error {
	if errors.Is(err, apperrors.ErrValidation) {
		return err
	}
	return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
}

// receivedFlags derives is_deposit/is_cheque_clear for a money-in posting:
// funds into an undeposited-funds account are not yet banked, and cheques
// are not cleared until deposited.
func receivedFlags(bank *domain.BankAccount, paymentMethod string) (isDeposit, isChequeClear bool) {
	return !bank.IsUndepositedFunds(), paymentMethod != domain.PaymentMethodCheque
}

// recomputeIsDeposit applies the bank-change rule on update: a new bank that
// is not undeposited funds forces true; moving from a banked account into
// undeposited funds forces false; otherwise the prior value is kept.
func recomputeIsDeposit(prior bool, oldBank, newBank *domain.BankAccount) bool {
	if newBank == nil {
		return prior
	}
	if !newBank.IsUndepositedFunds() {
		return true
	}
	if oldBank != nil && !oldBank.IsUndepositedFunds() {
		return false
	}
	return prior
}

// postingLeg is one derived ledger row before persistence.
type postingLeg struct {
	Account       *domain.BankAccount
	Kind          domain.TransactionKind
	Payment       decimal.Decimal
	Deposit       decimal.Decimal
	IsDeposit     bool
	IsChequeClear bool
}

// toPosting materialises a leg into a BankTransaction for the given event.
func (l postingLeg) toPosting(projectID string, ref domain.EventRef, date time.Time, userID string, now time.Time) domain.BankTransaction {
	return domain.BankTransaction{
		TransactionID:   uuid.NewString(),
		ProjectID:       projectID,
		AccountID:       l.Account.AccountID,
		Kind:            l.Kind,
		Payment:         l.Payment,
		Deposit:         l.Deposit,
		TransactionDate: date,
		Ref:             ref,
		IsDeposit:       l.IsDeposit,
		IsChequeClear:   l.IsChequeClear,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
}

// insertLegs posts each leg whose account resolved. Legs with a nil account
// are skipped silently; a missing role is a configuration gap, not an error.
func insertLegs(ctx context.Context, tx pgx.Tx, ledger portsrepo.LedgerWriter, legs []postingLeg, projectID string, ref domain.EventRef, date time.Time, userID string, now time.Time) error {
	for _, leg := range legs {
		if leg.Account == nil {
			continue
		}
		if err := ledger.InsertPostingInTx(ctx, tx, leg.toPosting(projectID, ref, date, userID, now)); err != nil {
			return err
		}
	}
	return nil
}

// upsertLeg overwrites the posting matching (project, account, kind, ref) in
// place, preserving its row identity and flags, or inserts it when absent.
// Returns the resulting posting.
func upsertLeg(ctx context.Context, tx pgx.Tx, ledger portsrepo.LedgerWriter, leg postingLeg, projectID string, ref domain.EventRef, date time.Time, userID string, now time.Time) (*domain.BankTransaction, error) {
	existing, err := ledger.FindPostingForUpdateInTx(ctx, tx, projectID, leg.Account.AccountID, leg.Kind, ref)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		posting := leg.toPosting(projectID, ref, date, userID, now)
		if err := ledger.InsertPostingInTx(ctx, tx, posting); err != nil {
			return nil, err
		}
		return &posting, nil
	}

	existing.Payment = leg.Payment
	existing.Deposit = leg.Deposit
	existing.TransactionDate = date
	existing.LastUpdatedAt = now
	existing.LastUpdatedBy = userID
	if err := ledger.UpdatePostingInTx(ctx, tx, *existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// projectAccounts memoizes the role lookups one workflow invocation needs so
// a single event never resolves the same role twice.
type projectAccounts struct {
	directory portssvc.AccountDirectorySvc
	projectID string
	cache     map[domain.AccountRole]*domain.BankAccount
}

func newProjectAccounts(directory portssvc.AccountDirectorySvc, projectID string) *projectAccounts {
	return &projectAccounts{
		directory: directory,
		projectID: projectID,
		cache:     make(map[domain.AccountRole]*domain.BankAccount),
	}
}

func (p *projectAccounts) get(ctx context.Context, role domain.AccountRole) (*domain.BankAccount, error) {
	if account, ok := p.cache[role]; ok {
		return account, nil
	}
	account, err := p.directory.FindByRole(ctx, p.projectID, role)
	if err != nil {
		return nil, err
	}
	p.cache[role] = account
	return account, nil
}

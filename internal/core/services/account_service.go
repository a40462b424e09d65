package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/EstateBooks/plot_booking_app/internal/apperrors"
	"github.com/EstateBooks/plot_booking_app/internal/core/domain"
	portsrepo "github.com/EstateBooks/plot_booking_app/internal/core/ports/repositories"
	portssvc "github.com/EstateBooks/plot_booking_app/internal/core/ports/services"
	"github.com/EstateBooks/plot_booking_app/internal/dto"
	"github.com/EstateBooks/plot_booking_app/internal/middleware"
)

// accountService provides bank account CRUD and the role directory used by
// all posting workflows.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// FindByRole resolves the canonical account for (project, role). A missing
// role returns nil without error; callers skip the dependent posting leg.
// Ties between duplicate role accounts break on creation time then ID.
func (s *accountService) FindByRole(ctx context.Context, projectID string, role domain.AccountRole) (*domain.BankAccount, error) {
	account, err := s.accountRepo.FindAccountByRole(ctx, projectID, role)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve account role %s: %w", role, err)
	}
	return account, nil
}

func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.BankAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	account := domain.BankAccount{
		AccountID:       uuid.NewString(),
		ProjectID:       req.ProjectID,
		Name:            req.Name,
		UsedFor:         req.UsedFor,
		MainType:        req.MainType,
		DetailType:      req.DetailType,
		ParentAccountID: req.ParentAccountID,
		IsActive:        true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if req.ParentAccountID != nil {
		parent, err := s.accountRepo.FindAccountByID(ctx, *req.ParentAccountID)
		if err != nil {
			return nil, fmt.Errorf("parent account lookup failed: %w", err)
		}
		if parent.ProjectID != req.ProjectID {
			return nil, fmt.Errorf("%w: parent account belongs to a different project", apperrors.ErrValidation)
		}
		// Sub-accounts roll up one level only.
		if parent.ParentAccountID != nil {
			return nil, fmt.Errorf("%w: parent account is already a sub-account", apperrors.ErrValidation)
		}
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save account", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("used_for", string(account.UsedFor)))
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.BankAccount, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

func (s *accountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.BankAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Name != nil {
		account.Name = *req.Name
		updated = true
	}
	if req.UsedFor != nil {
		account.UsedFor = *req.UsedFor
		updated = true
	}
	if req.DetailType != nil {
		account.DetailType = *req.DetailType
		updated = true
	}
	if !updated {
		return account, nil
	}

	account.LastUpdatedAt = time.Now().UTC()
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		logger.Error("Failed to update account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	logger.Info("Account updated", slog.String("account_id", accountID))
	return account, nil
}

func (s *accountService) DeactivateAccount(ctx context.Context, accountID string, userID string) error {
	if err := s.accountRepo.DeactivateAccount(ctx, accountID, userID, time.Now().UTC()); err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to deactivate account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return err
	}
	return nil
}

func (s *accountService) ListAccounts(ctx context.Context, projectID string, limit, offset int) ([]domain.BankAccount, error) {
	if limit <= 0 {
		limit = 50
	}
	accounts, err := s.accountRepo.ListAccounts(ctx, projectID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

package services

import (
	"context"

	"github.com/EstateBooks/plot_booking_app/internal/core/domain"
	"github.com/EstateBooks/plot_booking_app/internal/dto"
)

// AccountDirectorySvc resolves account roles for the posting workflows.
// Absence of a role is not an error: the dependent posting leg is skipped.
type AccountDirectorySvc interface {
	// FindByRole returns the canonical account for (project, role), or nil.
	FindByRole(ctx context.Context, projectID string, role domain.AccountRole) (*domain.BankAccount, error)
}

// AccountSvcFacade provides account CRUD plus directory resolution.
type AccountSvcFacade interface {
	AccountDirectorySvc

	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.BankAccount, error)
	GetAccountByID(ctx context.Context, accountID string) (*domain.BankAccount, error)
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.BankAccount, error)
	DeactivateAccount(ctx context.Context, accountID string, userID string) error
	ListAccounts(ctx context.Context, projectID string, limit, offset int) ([]domain.BankAccount, error)
}

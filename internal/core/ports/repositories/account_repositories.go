package repositories

import (
	"context"
	"time"

	"github.com/EstateBooks/plot_booking_app/internal/core/domain"
)

// AccountReader defines read operations for bank account data.
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.BankAccount, error)

	// FindAccountByRole retrieves the canonical account for (project, role):
	// the first active match ordered by creation time then account ID. Returns
	// nil (no error) when the role is not configured for the project.
	FindAccountByRole(ctx context.Context, projectID string, role domain.AccountRole) (*domain.BankAccount, error)

	// ListAccounts retrieves the accounts of a project.
	ListAccounts(ctx context.Context, projectID string, limit int, offset int) ([]domain.BankAccount, error)
}

// AccountWriter defines write operations for bank account data.
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.BankAccount) error

	// UpdateAccount updates an existing account's details.
	UpdateAccount(ctx context.Context, account domain.BankAccount) error

	// DeactivateAccount marks an account as inactive.
	DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}

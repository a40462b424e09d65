package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/EstateBooks/plot_booking_app/internal/apperrors"
	"github.com/EstateBooks/plot_booking_app/internal/core/domain"
	portsrepo "github.com/EstateBooks/plot_booking_app/internal/core/ports/repositories"
	"github.com/EstateBooks/plot_booking_app/internal/models"
)

type PgxAccountRepository struct {
	pool *pgxpool.Pool
}

func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{pool: pool}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

func toDomainAccount(m models.BankAccount) domain.BankAccount {
	return domain.BankAccount{
		AccountID:       m.AccountID,
		ProjectID:       m.ProjectID,
		Name:            m.Name,
		UsedFor:         domain.AccountRole(m.UsedFor),
		MainType:        domain.AccountType(m.MainType),
		DetailType:      m.DetailType,
		ParentAccountID: m.ParentAccountID,
		IsActive:        m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const accountColumns = `account_id, project_id, name, used_for, main_type, detail_type, parent_account_id, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanAccount(row pgx.Row) (models.BankAccount, error) {
	var m models.BankAccount
	err := row.Scan(
		&m.AccountID, &m.ProjectID, &m.Name, &m.UsedFor, &m.MainType, &m.DetailType,
		&m.ParentAccountID, &m.IsActive,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.BankAccount) error {
	query := `
		INSERT INTO bank_accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.pool.Exec(ctx, query,
		account.AccountID, account.ProjectID, account.Name, string(account.UsedFor),
		string(account.MainType), account.DetailType, account.ParentAccountID, account.IsActive,
		account.CreatedAt, account.CreatedBy, account.LastUpdatedAt, account.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: account with ID %s already exists", apperrors.ErrDuplicate, account.AccountID)
		}
		return fmt.Errorf("failed to save account %s: %w", account.AccountID, err)
	}
	return nil
}

func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.BankAccount, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM bank_accounts
		WHERE account_id = $1;
	`
	m, err := scanAccount(r.pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	account := toDomainAccount(m)
	return &account, nil
}

// FindAccountByRole returns the canonical account for (project, role). The
// tie-break when duplicates exist is creation time then account id, so the
// selection is stable rather than arbitrary.
func (r *PgxAccountRepository) FindAccountByRole(ctx context.Context, projectID string, role domain.AccountRole) (*domain.BankAccount, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM bank_accounts
		WHERE project_id = $1 AND used_for = $2 AND is_active
		ORDER BY created_at, account_id
		LIMIT 1;
	`
	m, err := scanAccount(r.pool.QueryRow(ctx, query, projectID, string(role)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find account for role %s: %w", role, err)
	}
	account := toDomainAccount(m)
	return &account, nil
}

func (r *PgxAccountRepository) ListAccounts(ctx context.Context, projectID string, limit int, offset int) ([]domain.BankAccount, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM bank_accounts
		WHERE project_id = $1
		ORDER BY name
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.pool.Query(ctx, query, projectID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []domain.BankAccount
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, toDomainAccount(m))
	}
	return accounts, rows.Err()
}

func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.BankAccount) error {
	query := `
		UPDATE bank_accounts
		SET name = $2, used_for = $3, main_type = $4, detail_type = $5, parent_account_id = $6, last_updated_at = $7, last_updated_by = $8
		WHERE account_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		account.AccountID, account.Name, string(account.UsedFor), string(account.MainType),
		account.DetailType, account.ParentAccountID, account.LastUpdatedAt, account.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update account %s: %w", account.AccountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	query := `
		UPDATE bank_accounts
		SET is_active = false, last_updated_at = $2, last_updated_by = $3
		WHERE account_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query, accountID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate account %s: %w", accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

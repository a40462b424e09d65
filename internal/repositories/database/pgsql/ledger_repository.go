package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/EstateBooks/plot_booking_app/internal/apperrors"
	"github.com/EstateBooks/plot_booking_app/internal/core/domain"
	portsrepo "github.com/EstateBooks/plot_booking_app/internal/core/ports/repositories"
	"github.com/EstateBooks/plot_booking_app/internal/models"
	"github.com/EstateBooks/plot_booking_app/internal/utils/pagination"
)

// PgxLedgerRepository persists postings. Rows are addressable by
// (project, account, kind, related_table, related_id) for overwrite-in-place
// flows and by (related_table, related_id) for bulk deletion.
type PgxLedgerRepository struct {
	BaseRepository
}

func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryWithTx {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LedgerRepositoryWithTx = (*PgxLedgerRepository)(nil)

func toDomainPosting(m models.BankTransaction) domain.BankTransaction {
	return domain.BankTransaction{
		TransactionID:   m.TransactionID,
		ProjectID:       m.ProjectID,
		AccountID:       m.AccountID,
		Kind:            domain.TransactionKind(m.Kind),
		Payment:         m.Payment,
		Deposit:         m.Deposit,
		TransactionDate: m.TransactionDate,
		Ref:             domain.EventRef{Table: domain.RelatedTable(m.RelatedTable), ID: m.RelatedID},
		IsDeposit:       m.IsDeposit,
		IsChequeClear:   m.IsChequeClear,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const postingColumns = `transaction_id, project_id, account_id, kind, payment, deposit, transaction_date, related_table, related_id, is_deposit, is_cheque_clear, created_at, created_by, last_updated_at, last_updated_by`

func scanPosting(row pgx.Row) (models.BankTransaction, error) {
	var m models.BankTransaction
	err := row.Scan(
		&m.TransactionID, &m.ProjectID, &m.AccountID, &m.Kind, &m.Payment, &m.Deposit,
		&m.TransactionDate, &m.RelatedTable, &m.RelatedID, &m.IsDeposit, &m.IsChequeClear,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxLedgerRepository) InsertPostingInTx(ctx context.Context, tx pgx.Tx, posting domain.BankTransaction) error {
	query := `
		INSERT INTO bank_transactions (` + postingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := tx.Exec(ctx, query,
		posting.TransactionID, posting.ProjectID, posting.AccountID, string(posting.Kind),
		posting.Payment, posting.Deposit, posting.TransactionDate,
		string(posting.Ref.Table), posting.Ref.ID, posting.IsDeposit, posting.IsChequeClear,
		posting.CreatedAt, posting.CreatedBy, posting.LastUpdatedAt, posting.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert posting %s: %w", posting.TransactionID, err)
	}
	return nil
}

func (r *PgxLedgerRepository) FindPostingForUpdateInTx(ctx context.Context, tx pgx.Tx, projectID, accountID string, kind domain.TransactionKind, ref domain.EventRef) (*domain.BankTransaction, error) {
	query := `
		SELECT ` + postingColumns + `
		FROM bank_transactions
		WHERE project_id = $1 AND account_id = $2 AND kind = $3 AND related_table = $4 AND related_id = $5
		FOR UPDATE;
	`
	m, err := scanPosting(tx.QueryRow(ctx, query, projectID, accountID, string(kind), string(ref.Table), ref.ID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find posting for update: %w", err)
	}
	posting := toDomainPosting(m)
	return &posting, nil
}

func (r *PgxLedgerRepository) FindKindPostingForUpdateInTx(ctx context.Context, tx pgx.Tx, projectID string, kind domain.TransactionKind, ref domain.EventRef, excludeAccountID string) (*domain.BankTransaction, error) {
	query := `
		SELECT ` + postingColumns + `
		FROM bank_transactions
		WHERE project_id = $1 AND kind = $2 AND related_table = $3 AND related_id = $4 AND account_id <> $5
		ORDER BY created_at
		LIMIT 1
		FOR UPDATE;
	`
	m, err := scanPosting(tx.QueryRow(ctx, query, projectID, string(kind), string(ref.Table), ref.ID, excludeAccountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find kind posting for update: %w", err)
	}
	posting := toDomainPosting(m)
	return &posting, nil
}

func (r *PgxLedgerRepository) UpdatePostingInTx(ctx context.Context, tx pgx.Tx, posting domain.BankTransaction) error {
	query := `
		UPDATE bank_transactions
		SET account_id = $2, payment = $3, deposit = $4, transaction_date = $5, is_deposit = $6, is_cheque_clear = $7, last_updated_at = $8, last_updated_by = $9
		WHERE transaction_id = $1;
	`
	tag, err := tx.Exec(ctx, query,
		posting.TransactionID, posting.AccountID, posting.Payment, posting.Deposit,
		posting.TransactionDate, posting.IsDeposit, posting.IsChequeClear,
		posting.LastUpdatedAt, posting.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update posting %s: %w", posting.TransactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxLedgerRepository) DeletePostingsByRefInTx(ctx context.Context, tx pgx.Tx, ref domain.EventRef) error {
	query := `DELETE FROM bank_transactions WHERE related_table = $1 AND related_id = $2;`
	if _, err := tx.Exec(ctx, query, string(ref.Table), ref.ID); err != nil {
		return fmt.Errorf("failed to delete postings for %s/%s: %w", ref.Table, ref.ID, err)
	}
	return nil
}

func (r *PgxLedgerRepository) MarkPostingDepositedInTx(ctx context.Context, tx pgx.Tx, postingID string) error {
	query := `
		UPDATE bank_transactions
		SET is_deposit = true, is_cheque_clear = true, last_updated_at = now()
		WHERE transaction_id = $1;
	`
	tag, err := tx.Exec(ctx, query, postingID)
	if err != nil {
		return fmt.Errorf("failed to mark posting %s deposited: %w", postingID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxLedgerRepository) FindPostingByID(ctx context.Context, postingID string) (*domain.BankTransaction, error) {
	query := `
		SELECT ` + postingColumns + `
		FROM bank_transactions
		WHERE transaction_id = $1;
	`
	m, err := scanPosting(r.Pool.QueryRow(ctx, query, postingID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find posting %s: %w", postingID, err)
	}
	posting := toDomainPosting(m)
	return &posting, nil
}

func (r *PgxLedgerRepository) ListPostingsByRef(ctx context.Context, ref domain.EventRef) ([]domain.BankTransaction, error) {
	query := `
		SELECT ` + postingColumns + `
		FROM bank_transactions
		WHERE related_table = $1 AND related_id = $2
		ORDER BY created_at;
	`
	rows, err := r.Pool.Query(ctx, query, string(ref.Table), ref.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list postings for %s/%s: %w", ref.Table, ref.ID, err)
	}
	defer rows.Close()
	return collectPostings(rows)
}

// ListPostingsByAccount pages through an account's postings newest first,
// using a (transaction_date, created_at) keyset cursor.
func (r *PgxLedgerRepository) ListPostingsByAccount(ctx context.Context, projectID, accountID string, limit int, nextToken *string) ([]domain.BankTransaction, *string, error) {
	args := []interface{}{projectID, accountID, limit + 1}
	query := `
		SELECT ` + postingColumns + `
		FROM bank_transactions
		WHERE project_id = $1 AND account_id = $2
	`
	if nextToken != nil && *nextToken != "" {
		txnDate, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		query += ` AND (transaction_date, created_at) < ($4, $5)`
		args = append(args, txnDate, createdAt)
	}
	query += `
		ORDER BY transaction_date DESC, created_at DESC
		LIMIT $3;
	`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list postings: %w", err)
	}
	defer rows.Close()

	postings, err := collectPostings(rows)
	if err != nil {
		return nil, nil, err
	}

	var token *string
	if len(postings) > limit {
		postings = postings[:limit]
		last := postings[len(postings)-1]
		t := pagination.EncodeToken(last.TransactionDate, last.CreatedAt)
		token = &t
	}
	return postings, token, nil
}

func (r *PgxLedgerRepository) AccountBalance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(deposit), 0) - COALESCE(SUM(payment), 0)
		FROM bank_transactions
		WHERE account_id = $1;
	`
	var balance decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, accountID).Scan(&balance); err != nil {
		return decimal.Zero, fmt.Errorf("failed to compute balance for account %s: %w", accountID, err)
	}
	return balance, nil
}

func (r *PgxLedgerRepository) ListUndepositedPostings(ctx context.Context, projectID string) ([]domain.BankTransaction, error) {
	query := `
		SELECT ` + postingColumns + `
		FROM bank_transactions
		WHERE project_id = $1 AND NOT is_deposit
		ORDER BY transaction_date, created_at;
	`
	rows, err := r.Pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list undeposited postings: %w", err)
	}
	defer rows.Close()
	return collectPostings(rows)
}

func collectPostings(rows pgx.Rows) ([]domain.BankTransaction, error) {
	var postings []domain.BankTransaction
	for rows.Next() {
		m, err := scanPosting(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan posting row: %w", err)
		}
		postings = append(postings, toDomainPosting(m))
	}
	return postings, rows.Err()
}

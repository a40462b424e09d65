package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/EstateBooks/plot_booking_app/internal/apperrors"
	"github.com/EstateBooks/plot_booking_app/internal/core/domain"
	portsrepo "github.com/EstateBooks/plot_booking_app/internal/core/ports/repositories"
	"github.com/EstateBooks/plot_booking_app/internal/models"
)

type PgxFundRepository struct {
	pool *pgxpool.Pool
}

func newPgxFundRepository(pool *pgxpool.Pool) portsrepo.FundRepositoryFacade {
	return &PgxFundRepository{pool: pool}
}

var _ portsrepo.FundRepositoryFacade = (*PgxFundRepository)(nil)

func toDomainFund(m models.IncomingFund) domain.IncomingFund {
	return domain.IncomingFund{
		FundID:        m.FundID,
		DocumentNo:    m.DocumentNo,
		ProjectID:     m.ProjectID,
		BookingID:     m.BookingID,
		Reference:     domain.FundReference(m.Reference),
		IsAdvance:     m.IsAdvance,
		Amount:        m.Amount,
		Date:          m.Date,
		BankID:        m.BankID,
		PaymentMethod: m.PaymentMethod,
		Remarks:       m.Remarks,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const fundColumns = `fund_id, document_no, project_id, booking_id, reference, is_advance, amount, date, bank_id, payment_method, remarks, created_at, created_by, last_updated_at, last_updated_by`

func scanFund(row pgx.Row) (models.IncomingFund, error) {
	var m models.IncomingFund
	err := row.Scan(
		&m.FundID, &m.DocumentNo, &m.ProjectID, &m.BookingID, &m.Reference, &m.IsAdvance,
		&m.Amount, &m.Date, &m.BankID, &m.PaymentMethod, &m.Remarks,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxFundRepository) NextDocumentSeqInTx(ctx context.Context, tx pgx.Tx, projectID string) (int, error) {
	query := `
		INSERT INTO project_sequences (project_id, seq_name, value)
		VALUES ($1, 'document', 1)
		ON CONFLICT (project_id, seq_name) DO UPDATE SET value = project_sequences.value + 1
		RETURNING value;
	`
	var seq int
	if err := tx.QueryRow(ctx, query, projectID).Scan(&seq); err != nil {
		return 0, fmt.Errorf("failed to advance document sequence for project %s: %w", projectID, err)
	}
	return seq, nil
}

func (r *PgxFundRepository) InsertFundInTx(ctx context.Context, tx pgx.Tx, fund domain.IncomingFund) error {
	query := `
		INSERT INTO incoming_funds (` + fundColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := tx.Exec(ctx, query,
		fund.FundID, fund.DocumentNo, fund.ProjectID, fund.BookingID, string(fund.Reference),
		fund.IsAdvance, fund.Amount, fund.Date, fund.BankID, fund.PaymentMethod, fund.Remarks,
		fund.CreatedAt, fund.CreatedBy, fund.LastUpdatedAt, fund.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: fund document %s already exists", apperrors.ErrDuplicate, fund.DocumentNo)
		}
		return fmt.Errorf("failed to insert fund %s: %w", fund.FundID, err)
	}
	return nil
}

func (r *PgxFundRepository) UpdateFundInTx(ctx context.Context, tx pgx.Tx, fund domain.IncomingFund) error {
	query := `
		UPDATE incoming_funds
		SET amount = $2, date = $3, bank_id = $4, payment_method = $5, remarks = $6, last_updated_at = $7, last_updated_by = $8
		WHERE fund_id = $1;
	`
	tag, err := tx.Exec(ctx, query,
		fund.FundID, fund.Amount, fund.Date, fund.BankID, fund.PaymentMethod, fund.Remarks,
		fund.LastUpdatedAt, fund.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update fund %s: %w", fund.FundID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxFundRepository) DeleteFundInTx(ctx context.Context, tx pgx.Tx, fundID string) error {
	tag, err := tx.Exec(ctx, `DELETE FROM incoming_funds WHERE fund_id = $1;`, fundID)
	if err != nil {
		return fmt.Errorf("failed to delete fund %s: %w", fundID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxFundRepository) FindFundByID(ctx context.Context, fundID string) (*domain.IncomingFund, error) {
	query := `
		SELECT ` + fundColumns + `
		FROM incoming_funds
		WHERE fund_id = $1;
	`
	m, err := scanFund(r.pool.QueryRow(ctx, query, fundID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find fund %s: %w", fundID, err)
	}
	fund := toDomainFund(m)
	return &fund, nil
}

func (r *PgxFundRepository) ListFundsByBooking(ctx context.Context, bookingID string) ([]domain.IncomingFund, error) {
	query := `
		SELECT ` + fundColumns + `
		FROM incoming_funds
		WHERE booking_id = $1
		ORDER BY date, created_at;
	`
	rows, err := r.pool.Query(ctx, query, bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to list funds: %w", err)
	}
	defer rows.Close()

	var funds []domain.IncomingFund
	for rows.Next() {
		m, err := scanFund(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fund row: %w", err)
		}
		funds = append(funds, toDomainFund(m))
	}
	return funds, rows.Err()
}

// SumFundsByBooking computes the signed payment history total: payments
// count positive, refunds negative.
func (r *PgxFundRepository) SumFundsByBooking(ctx context.Context, bookingID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(CASE WHEN reference = 'refund' THEN -amount ELSE amount END), 0)
		FROM incoming_funds
		WHERE booking_id = $1;
	`
	var sum decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, bookingID).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum funds for booking %s: %w", bookingID, err)
	}
	return sum, nil
}

type PgxBankingRepository struct {
	pool *pgxpool.Pool
}

func newPgxBankingRepository(pool *pgxpool.Pool) portsrepo.BankingRepositoryFacade {
	return &PgxBankingRepository{pool: pool}
}

var _ portsrepo.BankingRepositoryFacade = (*PgxBankingRepository)(nil)

const depositColumns = `deposit_id, project_id, bank_id, amount, date, remarks, created_at, created_by, last_updated_at, last_updated_by`

func (r *PgxBankingRepository) InsertDepositInTx(ctx context.Context, tx pgx.Tx, deposit domain.BankDeposit) error {
	query := `
		INSERT INTO bank_deposits (` + depositColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := tx.Exec(ctx, query,
		deposit.DepositID, deposit.ProjectID, deposit.BankID, deposit.Amount, deposit.Date, deposit.Remarks,
		deposit.CreatedAt, deposit.CreatedBy, deposit.LastUpdatedAt, deposit.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert deposit %s: %w", deposit.DepositID, err)
	}
	for _, postingID := range deposit.PostingIDs {
		if _, err := tx.Exec(ctx, `INSERT INTO bank_deposit_details (deposit_id, transaction_id) VALUES ($1, $2);`, deposit.DepositID, postingID); err != nil {
			return fmt.Errorf("failed to link posting %s to deposit %s: %w", postingID, deposit.DepositID, err)
		}
	}
	return nil
}

func (r *PgxBankingRepository) UpdateDepositInTx(ctx context.Context, tx pgx.Tx, deposit domain.BankDeposit) error {
	query := `
		UPDATE bank_deposits
		SET bank_id = $2, amount = $3, date = $4, remarks = $5, last_updated_at = $6, last_updated_by = $7
		WHERE deposit_id = $1;
	`
	tag, err := tx.Exec(ctx, query,
		deposit.DepositID, deposit.BankID, deposit.Amount, deposit.Date, deposit.Remarks,
		deposit.LastUpdatedAt, deposit.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update deposit %s: %w", deposit.DepositID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxBankingRepository) DeleteDepositInTx(ctx context.Context, tx pgx.Tx, depositID string) error {
	if _, err := tx.Exec(ctx, `DELETE FROM bank_deposit_details WHERE deposit_id = $1;`, depositID); err != nil {
		return fmt.Errorf("failed to delete deposit details: %w", err)
	}
	tag, err := tx.Exec(ctx, `DELETE FROM bank_deposits WHERE deposit_id = $1;`, depositID)
	if err != nil {
		return fmt.Errorf("failed to delete deposit %s: %w", depositID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxBankingRepository) FindDepositByID(ctx context.Context, depositID string) (*domain.BankDeposit, error) {
	query := `
		SELECT ` + depositColumns + `
		FROM bank_deposits
		WHERE deposit_id = $1;
	`
	var m models.BankDeposit
	err := r.pool.QueryRow(ctx, query, depositID).Scan(
		&m.DepositID, &m.ProjectID, &m.BankID, &m.Amount, &m.Date, &m.Remarks,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find deposit %s: %w", depositID, err)
	}

	rows, err := r.pool.Query(ctx, `SELECT transaction_id FROM bank_deposit_details WHERE deposit_id = $1;`, depositID)
	if err != nil {
		return nil, fmt.Errorf("failed to load deposit details: %w", err)
	}
	defer rows.Close()

	var postingIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan deposit detail: %w", err)
		}
		postingIDs = append(postingIDs, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	deposit := domain.BankDeposit{
		DepositID:  m.DepositID,
		ProjectID:  m.ProjectID,
		BankID:     m.BankID,
		Amount:     m.Amount,
		Date:       m.Date,
		PostingIDs: postingIDs,
		Remarks:    m.Remarks,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
	return &deposit, nil
}

func (r *PgxBankingRepository) ListDepositsByProject(ctx context.Context, projectID string, limit int, offset int) ([]domain.BankDeposit, error) {
	query := `
		SELECT ` + depositColumns + `
		FROM bank_deposits
		WHERE project_id = $1
		ORDER BY date DESC, created_at DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.pool.Query(ctx, query, projectID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list deposits: %w", err)
	}
	defer rows.Close()

	var deposits []domain.BankDeposit
	for rows.Next() {
		var m models.BankDeposit
		if err := rows.Scan(
			&m.DepositID, &m.ProjectID, &m.BankID, &m.Amount, &m.Date, &m.Remarks,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan deposit row: %w", err)
		}
		deposits = append(deposits, domain.BankDeposit{
			DepositID: m.DepositID,
			ProjectID: m.ProjectID,
			BankID:    m.BankID,
			Amount:    m.Amount,
			Date:      m.Date,
			Remarks:   m.Remarks,
			AuditFields: domain.AuditFields{
				CreatedAt:     m.CreatedAt,
				CreatedBy:     m.CreatedBy,
				LastUpdatedAt: m.LastUpdatedAt,
				LastUpdatedBy: m.LastUpdatedBy,
			},
		})
	}
	return deposits, rows.Err()
}

const transferColumns = `transfer_id, project_id, from_bank_id, to_bank_id, amount, date, remarks, created_at, created_by, last_updated_at, last_updated_by`

func scanTransfer(row pgx.Row) (models.BankTransfer, error) {
	var m models.BankTransfer
	err := row.Scan(
		&m.TransferID, &m.ProjectID, &m.FromBankID, &m.ToBankID, &m.Amount, &m.Date, &m.Remarks,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

func toDomainTransfer(m models.BankTransfer) domain.BankTransfer {
	return domain.BankTransfer{
		TransferID: m.TransferID,
		ProjectID:  m.ProjectID,
		FromBankID: m.FromBankID,
		ToBankID:   m.ToBankID,
		Amount:     m.Amount,
		Date:       m.Date,
		Remarks:    m.Remarks,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func (r *PgxBankingRepository) InsertTransferInTx(ctx context.Context, tx pgx.Tx, transfer domain.BankTransfer) error {
	query := `
		INSERT INTO bank_transfers (` + transferColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := tx.Exec(ctx, query,
		transfer.TransferID, transfer.ProjectID, transfer.FromBankID, transfer.ToBankID,
		transfer.Amount, transfer.Date, transfer.Remarks,
		transfer.CreatedAt, transfer.CreatedBy, transfer.LastUpdatedAt, transfer.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transfer %s: %w", transfer.TransferID, err)
	}
	return nil
}

func (r *PgxBankingRepository) UpdateTransferInTx(ctx context.Context, tx pgx.Tx, transfer domain.BankTransfer) error {
	query := `
		UPDATE bank_transfers
		SET from_bank_id = $2, to_bank_id = $3, amount = $4, date = $5, remarks = $6, last_updated_at = $7, last_updated_by = $8
		WHERE transfer_id = $1;
	`
	tag, err := tx.Exec(ctx, query,
		transfer.TransferID, transfer.FromBankID, transfer.ToBankID, transfer.Amount,
		transfer.Date, transfer.Remarks, transfer.LastUpdatedAt, transfer.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update transfer %s: %w", transfer.TransferID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxBankingRepository) DeleteTransferInTx(ctx context.Context, tx pgx.Tx, transferID string) error {
	tag, err := tx.Exec(ctx, `DELETE FROM bank_transfers WHERE transfer_id = $1;`, transferID)
	if err != nil {
		return fmt.Errorf("failed to delete transfer %s: %w", transferID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxBankingRepository) FindTransferByID(ctx context.Context, transferID string) (*domain.BankTransfer, error) {
	query := `
		SELECT ` + transferColumns + `
		FROM bank_transfers
		WHERE transfer_id = $1;
	`
	m, err := scanTransfer(r.pool.QueryRow(ctx, query, transferID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transfer %s: %w", transferID, err)
	}
	transfer := toDomainTransfer(m)
	return &transfer, nil
}

func (r *PgxBankingRepository) ListTransfersByProject(ctx context.Context, projectID string, limit int, offset int) ([]domain.BankTransfer, error) {
	query := `
		SELECT ` + transferColumns + `
		FROM bank_transfers
		WHERE project_id = $1
		ORDER BY date DESC, created_at DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.pool.Query(ctx, query, projectID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list transfers: %w", err)
	}
	defer rows.Close()

	var transfers []domain.BankTransfer
	for rows.Next() {
		m, err := scanTransfer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transfer row: %w", err)
		}
		transfers = append(transfers, toDomainTransfer(m))
	}
	return transfers, rows.Err()
}

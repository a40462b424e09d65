package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/EstateBooks/plot_booking_app/internal/apperrors"
	"github.com/EstateBooks/plot_booking_app/internal/core/domain"
	portsrepo "github.com/EstateBooks/plot_booking_app/internal/core/ports/repositories"
	"github.com/EstateBooks/plot_booking_app/internal/models"
)

type PgxResaleRepository struct {
	pool *pgxpool.Pool
}

func newPgxResaleRepository(pool *pgxpool.Pool) portsrepo.ResaleRepositoryFacade {
	return &PgxResaleRepository{pool: pool}
}

var _ portsrepo.ResaleRepositoryFacade = (*PgxResaleRepository)(nil)

func toDomainResale(m models.PlotResale) domain.PlotResale {
	return domain.PlotResale{
		ResaleID:          m.ResaleID,
		ProjectID:         m.ProjectID,
		BookingID:         m.BookingID,
		ResaleDate:        m.ResaleDate,
		OldAmount:         m.OldAmount,
		NewAmount:         m.NewAmount,
		CompanyAmountPaid: m.CompanyAmountPaid,
		AmountReceived:    m.AmountReceived,
		Remaining:         m.Remaining,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const resaleColumns = `resale_id, project_id, booking_id, resale_date, old_amount, new_amount, company_amount_paid, amount_received, remaining, created_at, created_by, last_updated_at, last_updated_by`

func scanResale(row pgx.Row) (models.PlotResale, error) {
	var m models.PlotResale
	err := row.Scan(
		&m.ResaleID, &m.ProjectID, &m.BookingID, &m.ResaleDate, &m.OldAmount, &m.NewAmount,
		&m.CompanyAmountPaid, &m.AmountReceived, &m.Remaining,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxResaleRepository) InsertResaleInTx(ctx context.Context, tx pgx.Tx, resale domain.PlotResale) error {
	query := `
		INSERT INTO plot_resales (` + resaleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := tx.Exec(ctx, query,
		resale.ResaleID, resale.ProjectID, resale.BookingID, resale.ResaleDate,
		resale.OldAmount, resale.NewAmount, resale.CompanyAmountPaid, resale.AmountReceived, resale.Remaining,
		resale.CreatedAt, resale.CreatedBy, resale.LastUpdatedAt, resale.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: resale for booking %s already exists", apperrors.ErrDuplicate, resale.BookingID)
		}
		return fmt.Errorf("failed to insert resale %s: %w", resale.ResaleID, err)
	}
	return nil
}

func (r *PgxResaleRepository) UpdateResaleInTx(ctx context.Context, tx pgx.Tx, resale domain.PlotResale) error {
	query := `
		UPDATE plot_resales
		SET resale_date = $2, old_amount = $3, new_amount = $4, company_amount_paid = $5,
		    amount_received = $6, remaining = $7, last_updated_at = $8, last_updated_by = $9
		WHERE resale_id = $1;
	`
	tag, err := tx.Exec(ctx, query,
		resale.ResaleID, resale.ResaleDate, resale.OldAmount, resale.NewAmount,
		resale.CompanyAmountPaid, resale.AmountReceived, resale.Remaining,
		resale.LastUpdatedAt, resale.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update resale %s: %w", resale.ResaleID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxResaleRepository) DeleteResaleInTx(ctx context.Context, tx pgx.Tx, resaleID string) error {
	tag, err := tx.Exec(ctx, `DELETE FROM plot_resales WHERE resale_id = $1;`, resaleID)
	if err != nil {
		return fmt.Errorf("failed to delete resale %s: %w", resaleID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxResaleRepository) FindResaleByID(ctx context.Context, resaleID string) (*domain.PlotResale, error) {
	query := `
		SELECT ` + resaleColumns + `
		FROM plot_resales
		WHERE resale_id = $1;
	`
	m, err := scanResale(r.pool.QueryRow(ctx, query, resaleID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find resale %s: %w", resaleID, err)
	}
	resale := toDomainResale(m)
	return &resale, nil
}

func (r *PgxResaleRepository) ListResalesByProject(ctx context.Context, projectID string, limit int, offset int) ([]domain.PlotResale, error) {
	query := `
		SELECT ` + resaleColumns + `
		FROM plot_resales
		WHERE project_id = $1
		ORDER BY resale_date DESC, created_at DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.pool.Query(ctx, query, projectID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list resales: %w", err)
	}
	defer rows.Close()

	var resales []domain.PlotResale
	for rows.Next() {
		m, err := scanResale(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan resale row: %w", err)
		}
		resales = append(resales, toDomainResale(m))
	}
	return resales, rows.Err()
}

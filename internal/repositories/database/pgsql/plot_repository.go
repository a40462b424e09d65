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

type PgxPlotRepository struct {
	pool *pgxpool.Pool
}

func newPgxPlotRepository(pool *pgxpool.Pool) portsrepo.PlotRepositoryFacade {
	return &PgxPlotRepository{pool: pool}
}

var _ portsrepo.PlotRepositoryFacade = (*PgxPlotRepository)(nil)

func toDomainPlot(m models.Plot) domain.Plot {
	return domain.Plot{
		PlotID:    m.PlotID,
		ProjectID: m.ProjectID,
		Number:    m.Number,
		Sector:    m.Sector,
		AreaSqft:  m.AreaSqft,
		CostPrice: m.CostPrice,
		SalePrice: m.SalePrice,
		Status:    domain.PlotStatus(m.Status),
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const plotColumns = `plot_id, project_id, number, sector, area_sqft, cost_price, sale_price, status, created_at, created_by, last_updated_at, last_updated_by`

func scanPlot(row pgx.Row) (models.Plot, error) {
	var m models.Plot
	err := row.Scan(
		&m.PlotID, &m.ProjectID, &m.Number, &m.Sector, &m.AreaSqft, &m.CostPrice, &m.SalePrice, &m.Status,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxPlotRepository) SavePlot(ctx context.Context, plot domain.Plot) error {
	query := `
		INSERT INTO plots (` + plotColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.pool.Exec(ctx, query,
		plot.PlotID, plot.ProjectID, plot.Number, plot.Sector, plot.AreaSqft,
		plot.CostPrice, plot.SalePrice, string(plot.Status),
		plot.CreatedAt, plot.CreatedBy, plot.LastUpdatedAt, plot.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: plot %s already exists in project", apperrors.ErrDuplicate, plot.Number)
		}
		return fmt.Errorf("failed to save plot %s: %w", plot.PlotID, err)
	}
	return nil
}

func (r *PgxPlotRepository) FindPlotsByIDs(ctx context.Context, plotIDs []string) ([]domain.Plot, error) {
	if len(plotIDs) == 0 {
		return nil, nil
	}
	query := `
		SELECT ` + plotColumns + `
		FROM plots
		WHERE plot_id = ANY($1);
	`
	rows, err := r.pool.Query(ctx, query, plotIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to find plots: %w", err)
	}
	defer rows.Close()

	var plots []domain.Plot
	for rows.Next() {
		m, err := scanPlot(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan plot row: %w", err)
		}
		plots = append(plots, toDomainPlot(m))
	}
	return plots, rows.Err()
}

func (r *PgxPlotRepository) ListPlotsByProject(ctx context.Context, projectID string, status domain.PlotStatus) ([]domain.Plot, error) {
	query := `
		SELECT ` + plotColumns + `
		FROM plots
		WHERE project_id = $1 AND ($2 = '' OR status = $2)
		ORDER BY number;
	`
	rows, err := r.pool.Query(ctx, query, projectID, string(status))
	if err != nil {
		return nil, fmt.Errorf("failed to list plots: %w", err)
	}
	defer rows.Close()

	var plots []domain.Plot
	for rows.Next() {
		m, err := scanPlot(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan plot row: %w", err)
		}
		plots = append(plots, toDomainPlot(m))
	}
	return plots, rows.Err()
}

func (r *PgxPlotRepository) UpdatePlot(ctx context.Context, plot domain.Plot) error {
	query := `
		UPDATE plots
		SET number = $2, sector = $3, area_sqft = $4, cost_price = $5, sale_price = $6, last_updated_at = $7, last_updated_by = $8
		WHERE plot_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		plot.PlotID, plot.Number, plot.Sector, plot.AreaSqft, plot.CostPrice, plot.SalePrice,
		plot.LastUpdatedAt, plot.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update plot %s: %w", plot.PlotID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxPlotRepository) UpdatePlotStatusInTx(ctx context.Context, tx pgx.Tx, plotIDs []string, status domain.PlotStatus, userID string) error {
	if len(plotIDs) == 0 {
		return nil
	}
	query := `
		UPDATE plots
		SET status = $2, last_updated_at = now(), last_updated_by = $3
		WHERE plot_id = ANY($1);
	`
	tag, err := tx.Exec(ctx, query, plotIDs, string(status), userID)
	if err != nil {
		return fmt.Errorf("failed to update plot statuses: %w", err)
	}
	if int(tag.RowsAffected()) != len(plotIDs) {
		return fmt.Errorf("%w: expected %d plots, updated %d", apperrors.ErrNotFound, len(plotIDs), tag.RowsAffected())
	}
	return nil
}

package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/EstateBooks/plot_booking_app/internal/core/domain"
)

// PlotReader defines read operations for plot data.
type PlotReader interface {
	// FindPlotsByIDs retrieves multiple plots by their IDs.
	FindPlotsByIDs(ctx context.Context, plotIDs []string) ([]domain.Plot, error)

	// ListPlotsByProject retrieves the plots of a project, optionally
	// filtered by status ("" means all).
	ListPlotsByProject(ctx context.Context, projectID string, status domain.PlotStatus) ([]domain.Plot, error)
}

// PlotWriter defines write operations for plot data.
type PlotWriter interface {
	// SavePlot persists a new plot.
	SavePlot(ctx context.Context, plot domain.Plot) error

	// UpdatePlot updates an existing plot's details.
	UpdatePlot(ctx context.Context, plot domain.Plot) error

	// UpdatePlotStatusInTx moves the given plots to a new status within the
	// caller's transaction.
	UpdatePlotStatusInTx(ctx context.Context, tx pgx.Tx, plotIDs []string, status domain.PlotStatus, userID string) error
}

// PlotRepositoryFacade combines plot reads and writes.
type PlotRepositoryFacade interface {
	PlotReader
	PlotWriter
}

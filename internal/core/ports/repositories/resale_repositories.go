package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/EstateBooks/plot_booking_app/internal/core/domain"
)

// ResaleReader defines read operations for plot resale data.
type ResaleReader interface {
	// FindResaleByID retrieves a resale record.
	FindResaleByID(ctx context.Context, resaleID string) (*domain.PlotResale, error)

	// ListResalesByProject retrieves the resales of a project.
	ListResalesByProject(ctx context.Context, projectID string, limit int, offset int) ([]domain.PlotResale, error)
}

// ResaleWriter defines in-transaction write operations for resale data.
type ResaleWriter interface {
	// InsertResaleInTx inserts the resale row.
	InsertResaleInTx(ctx context.Context, tx pgx.Tx, resale domain.PlotResale) error

	// UpdateResaleInTx overwrites the mutable fields of a resale.
	UpdateResaleInTx(ctx context.Context, tx pgx.Tx, resale domain.PlotResale) error

	// DeleteResaleInTx removes the resale row.
	DeleteResaleInTx(ctx context.Context, tx pgx.Tx, resaleID string) error
}

// ResaleRepositoryFacade combines resale reads and writes.
type ResaleRepositoryFacade interface {
	ResaleReader
	ResaleWriter
}

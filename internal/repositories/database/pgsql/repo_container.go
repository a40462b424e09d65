package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/EstateBooks/plot_booking_app/internal/core/ports/repositories"
)

// NewRepositoryProvider builds the full set of postgres-backed repositories
// sharing a single connection pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		ProjectRepo:  newPgxProjectRepository(dbPool),
		CustomerRepo: newPgxCustomerRepository(dbPool),
		PlotRepo:     newPgxPlotRepository(dbPool),
		AccountRepo:  newPgxAccountRepository(dbPool),
		LedgerRepo:   newPgxLedgerRepository(dbPool),
		BookingRepo:  newPgxBookingRepository(dbPool),
		TokenRepo:    newPgxTokenRepository(dbPool),
		ResaleRepo:   newPgxResaleRepository(dbPool),
		FundRepo:     newPgxFundRepository(dbPool),
		BankingRepo:  newPgxBankingRepository(dbPool),
		ReminderRepo: newPgxReminderRepository(dbPool),
	}
}

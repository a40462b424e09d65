package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	ProjectRepo  ProjectRepositoryFacade
	CustomerRepo CustomerRepositoryFacade
	PlotRepo     PlotRepositoryFacade
	AccountRepo  AccountRepositoryFacade
	LedgerRepo   LedgerRepositoryWithTx
	BookingRepo  BookingRepositoryFacade
	TokenRepo    TokenRepositoryFacade
	ResaleRepo   ResaleRepositoryFacade
	FundRepo     FundRepositoryFacade
	BankingRepo  BankingRepositoryFacade
	ReminderRepo ReminderRepositoryFacade
}

package services

import (
	portsrepo "github.com/EstateBooks/plot_booking_app/internal/core/ports/repositories"
	portssvc "github.com/EstateBooks/plot_booking_app/internal/core/ports/services"
)

// NewContainer wires every service facade from the repository provider.
func NewContainer(repos *portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	accountSvc := NewAccountService(repos.AccountRepo)
	return &portssvc.ServiceContainer{
		Project:  NewProjectService(repos.ProjectRepo),
		Customer: NewCustomerService(repos.CustomerRepo, repos.ProjectRepo),
		Plot:     NewPlotService(repos.PlotRepo, repos.ProjectRepo),
		Account:  accountSvc,
		Ledger:   NewLedgerService(repos.LedgerRepo),
		Booking:  NewBookingService(repos.BookingRepo, repos.PlotRepo, repos.TokenRepo, repos.FundRepo, repos.ProjectRepo, repos.CustomerRepo, repos.LedgerRepo, accountSvc),
		Token:    NewTokenService(repos.TokenRepo, repos.PlotRepo, repos.ProjectRepo, repos.LedgerRepo, accountSvc),
		Resale:   NewResaleService(repos.ResaleRepo, repos.BookingRepo, repos.PlotRepo, repos.LedgerRepo, accountSvc),
		Payment:  NewPaymentService(repos.FundRepo, repos.BankingRepo, repos.BookingRepo, repos.ProjectRepo, repos.LedgerRepo, accountSvc),
		Reminder: NewReminderService(repos.BookingRepo, repos.ReminderRepo),
	}
}

package services

// ServiceContainer holds all the service facades handed to the HTTP layer.
type ServiceContainer struct {
	Project  ProjectSvcFacade
	Customer CustomerSvcFacade
	Plot     PlotSvcFacade
	Account  AccountSvcFacade
	Ledger   LedgerSvcFacade
	Booking  BookingSvcFacade
	Token    TokenSvcFacade
	Resale   ResaleSvcFacade
	Payment  PaymentSvcFacade
	Reminder ReminderSvcFacade
}

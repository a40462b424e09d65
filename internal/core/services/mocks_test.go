package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/EstateBooks/plot_booking_app/internal/core/domain"
	portsrepo "github.com/EstateBooks/plot_booking_app/internal/core/ports/repositories"
	portssvc "github.com/EstateBooks/plot_booking_app/internal/core/ports/services"
	"github.com/EstateBooks/plot_booking_app/internal/dto"
)

// --- Mock LedgerRepository ---
type MockLedgerRepository struct {
	mock.Mock
}

// Ensure MockLedgerRepository implements portsrepo.LedgerRepositoryWithTx
var _ portsrepo.LedgerRepositoryWithTx = (*MockLedgerRepository)(nil)

func (m *MockLedgerRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockLedgerRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockLedgerRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockLedgerRepository) InsertPostingInTx(ctx context.Context, tx pgx.Tx, posting domain.BankTransaction) error {
	args := m.Called(ctx, tx, posting)
	return args.Error(0)
}

func (m *MockLedgerRepository) FindPostingForUpdateInTx(ctx context.Context, tx pgx.Tx, projectID, accountID string, kind domain.TransactionKind, ref domain.EventRef) (*domain.BankTransaction, error) {
	args := m.Called(ctx, tx, projectID, accountID, kind, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankTransaction), args.Error(1)
}

func (m *MockLedgerRepository) FindKindPostingForUpdateInTx(ctx context.Context, tx pgx.Tx, projectID string, kind domain.TransactionKind, ref domain.EventRef, excludeAccountID string) (*domain.BankTransaction, error) {
	args := m.Called(ctx, tx, projectID, kind, ref, excludeAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankTransaction), args.Error(1)
}

func (m *MockLedgerRepository) UpdatePostingInTx(ctx context.Context, tx pgx.Tx, posting domain.BankTransaction) error {
	args := m.Called(ctx, tx, posting)
	return args.Error(0)
}

func (m *MockLedgerRepository) DeletePostingsByRefInTx(ctx context.Context, tx pgx.Tx, ref domain.EventRef) error {
	args := m.Called(ctx, tx, ref)
	return args.Error(0)
}

func (m *MockLedgerRepository) MarkPostingDepositedInTx(ctx context.Context, tx pgx.Tx, postingID string) error {
	args := m.Called(ctx, tx, postingID)
	return args.Error(0)
}

func (m *MockLedgerRepository) FindPostingByID(ctx context.Context, postingID string) (*domain.BankTransaction, error) {
	args := m.Called(ctx, postingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankTransaction), args.Error(1)
}

func (m *MockLedgerRepository) ListPostingsByRef(ctx context.Context, ref domain.EventRef) ([]domain.BankTransaction, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BankTransaction), args.Error(1)
}

func (m *MockLedgerRepository) ListPostingsByAccount(ctx context.Context, projectID, accountID string, limit int, nextToken *string) ([]domain.BankTransaction, *string, error) {
	args := m.Called(ctx, projectID, accountID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.BankTransaction), returnedNextToken, args.Error(2)
}

func (m *MockLedgerRepository) AccountBalance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockLedgerRepository) ListUndepositedPostings(ctx context.Context, projectID string) ([]domain.BankTransaction, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BankTransaction), args.Error(1)
}

// --- Mock BookingRepository ---
type MockBookingRepository struct {
	mock.Mock
}

var _ portsrepo.BookingRepositoryFacade = (*MockBookingRepository)(nil)

func (m *MockBookingRepository) FindBookingByID(ctx context.Context, bookingID string) (*domain.Booking, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListBookingsByProject(ctx context.Context, projectID string, limit int, nextToken *string) ([]domain.Booking, *string, error) {
	args := m.Called(ctx, projectID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Booking), returnedNextToken, args.Error(2)
}

func (m *MockBookingRepository) ListOpenBookingsWithRemaining(ctx context.Context) ([]domain.Booking, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) NextBookingSeqInTx(ctx context.Context, tx pgx.Tx, projectID string) (int, error) {
	args := m.Called(ctx, tx, projectID)
	return args.Int(0), args.Error(1)
}

func (m *MockBookingRepository) InsertBookingInTx(ctx context.Context, tx pgx.Tx, booking domain.Booking) error {
	args := m.Called(ctx, tx, booking)
	return args.Error(0)
}

func (m *MockBookingRepository) UpdateBookingInTx(ctx context.Context, tx pgx.Tx, booking domain.Booking) error {
	args := m.Called(ctx, tx, booking)
	return args.Error(0)
}

func (m *MockBookingRepository) UpdateBookingStatusInTx(ctx context.Context, tx pgx.Tx, bookingID string, status domain.BookingStatus, userID string) error {
	args := m.Called(ctx, tx, bookingID, status, userID)
	return args.Error(0)
}

func (m *MockBookingRepository) DeleteBookingInTx(ctx context.Context, tx pgx.Tx, bookingID string) error {
	args := m.Called(ctx, tx, bookingID)
	return args.Error(0)
}

// --- Mock PlotRepository ---
type MockPlotRepository struct {
	mock.Mock
}

var _ portsrepo.PlotRepositoryFacade = (*MockPlotRepository)(nil)

func (m *MockPlotRepository) FindPlotsByIDs(ctx context.Context, plotIDs []string) ([]domain.Plot, error) {
	args := m.Called(ctx, plotIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Plot), args.Error(1)
}

func (m *MockPlotRepository) ListPlotsByProject(ctx context.Context, projectID string, status domain.PlotStatus) ([]domain.Plot, error) {
	args := m.Called(ctx, projectID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Plot), args.Error(1)
}

func (m *MockPlotRepository) SavePlot(ctx context.Context, plot domain.Plot) error {
	args := m.Called(ctx, plot)
	return args.Error(0)
}

func (m *MockPlotRepository) UpdatePlot(ctx context.Context, plot domain.Plot) error {
	args := m.Called(ctx, plot)
	return args.Error(0)
}

func (m *MockPlotRepository) UpdatePlotStatusInTx(ctx context.Context, tx pgx.Tx, plotIDs []string, status domain.PlotStatus, userID string) error {
	args := m.Called(ctx, tx, plotIDs, status, userID)
	return args.Error(0)
}

// --- Mock TokenRepository ---
type MockTokenRepository struct {
	mock.Mock
}

var _ portsrepo.TokenRepositoryFacade = (*MockTokenRepository)(nil)

func (m *MockTokenRepository) FindTokenByID(ctx context.Context, tokenID string) (*domain.Token, error) {
	args := m.Called(ctx, tokenID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Token), args.Error(1)
}

func (m *MockTokenRepository) ListTokensByProject(ctx context.Context, projectID string, limit int, nextToken *string) ([]domain.Token, *string, error) {
	args := m.Called(ctx, projectID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Token), returnedNextToken, args.Error(2)
}

func (m *MockTokenRepository) NextTokenSeqInTx(ctx context.Context, tx pgx.Tx, projectID string) (int, error) {
	args := m.Called(ctx, tx, projectID)
	return args.Int(0), args.Error(1)
}

func (m *MockTokenRepository) InsertTokenInTx(ctx context.Context, tx pgx.Tx, token domain.Token) error {
	args := m.Called(ctx, tx, token)
	return args.Error(0)
}

func (m *MockTokenRepository) UpdateTokenInTx(ctx context.Context, tx pgx.Tx, token domain.Token) error {
	args := m.Called(ctx, tx, token)
	return args.Error(0)
}

func (m *MockTokenRepository) UpdateTokenStatusInTx(ctx context.Context, tx pgx.Tx, tokenID string, status domain.TokenStatus, userID string) error {
	args := m.Called(ctx, tx, tokenID, status, userID)
	return args.Error(0)
}

// --- Mock FundRepository ---
type MockFundRepository struct {
	mock.Mock
}

var _ portsrepo.FundRepositoryFacade = (*MockFundRepository)(nil)

func (m *MockFundRepository) FindFundByID(ctx context.Context, fundID string) (*domain.IncomingFund, error) {
	args := m.Called(ctx, fundID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IncomingFund), args.Error(1)
}

func (m *MockFundRepository) ListFundsByBooking(ctx context.Context, bookingID string) ([]domain.IncomingFund, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.IncomingFund), args.Error(1)
}

func (m *MockFundRepository) SumFundsByBooking(ctx context.Context, bookingID string) (decimal.Decimal, error) {
	args := m.Called(ctx, bookingID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockFundRepository) NextDocumentSeqInTx(ctx context.Context, tx pgx.Tx, projectID string) (int, error) {
	args := m.Called(ctx, tx, projectID)
	return args.Int(0), args.Error(1)
}

func (m *MockFundRepository) InsertFundInTx(ctx context.Context, tx pgx.Tx, fund domain.IncomingFund) error {
	args := m.Called(ctx, tx, fund)
	return args.Error(0)
}

func (m *MockFundRepository) UpdateFundInTx(ctx context.Context, tx pgx.Tx, fund domain.IncomingFund) error {
	args := m.Called(ctx, tx, fund)
	return args.Error(0)
}

func (m *MockFundRepository) DeleteFundInTx(ctx context.Context, tx pgx.Tx, fundID string) error {
	args := m.Called(ctx, tx, fundID)
	return args.Error(0)
}

// --- Mock BankingRepository ---
type MockBankingRepository struct {
	mock.Mock
}

var _ portsrepo.BankingRepositoryFacade = (*MockBankingRepository)(nil)

func (m *MockBankingRepository) FindDepositByID(ctx context.Context, depositID string) (*domain.BankDeposit, error) {
	args := m.Called(ctx, depositID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankDeposit), args.Error(1)
}

func (m *MockBankingRepository) FindTransferByID(ctx context.Context, transferID string) (*domain.BankTransfer, error) {
	args := m.Called(ctx, transferID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankTransfer), args.Error(1)
}

func (m *MockBankingRepository) ListDepositsByProject(ctx context.Context, projectID string, limit int, offset int) ([]domain.BankDeposit, error) {
	args := m.Called(ctx, projectID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BankDeposit), args.Error(1)
}

func (m *MockBankingRepository) ListTransfersByProject(ctx context.Context, projectID string, limit int, offset int) ([]domain.BankTransfer, error) {
	args := m.Called(ctx, projectID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BankTransfer), args.Error(1)
}

func (m *MockBankingRepository) InsertDepositInTx(ctx context.Context, tx pgx.Tx, deposit domain.BankDeposit) error {
	args := m.Called(ctx, tx, deposit)
	return args.Error(0)
}

func (m *MockBankingRepository) UpdateDepositInTx(ctx context.Context, tx pgx.Tx, deposit domain.BankDeposit) error {
	args := m.Called(ctx, tx, deposit)
	return args.Error(0)
}

func (m *MockBankingRepository) DeleteDepositInTx(ctx context.Context, tx pgx.Tx, depositID string) error {
	args := m.Called(ctx, tx, depositID)
	return args.Error(0)
}

func (m *MockBankingRepository) InsertTransferInTx(ctx context.Context, tx pgx.Tx, transfer domain.BankTransfer) error {
	args := m.Called(ctx, tx, transfer)
	return args.Error(0)
}

func (m *MockBankingRepository) UpdateTransferInTx(ctx context.Context, tx pgx.Tx, transfer domain.BankTransfer) error {
	args := m.Called(ctx, tx, transfer)
	return args.Error(0)
}

func (m *MockBankingRepository) DeleteTransferInTx(ctx context.Context, tx pgx.Tx, transferID string) error {
	args := m.Called(ctx, tx, transferID)
	return args.Error(0)
}

// --- Mock ProjectRepository ---
type MockProjectRepository struct {
	mock.Mock
}

var _ portsrepo.ProjectRepositoryFacade = (*MockProjectRepository)(nil)

func (m *MockProjectRepository) SaveProject(ctx context.Context, project domain.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *MockProjectRepository) FindProjectByID(ctx context.Context, projectID string) (*domain.Project, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}

func (m *MockProjectRepository) UpdateProject(ctx context.Context, project domain.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *MockProjectRepository) ListProjects(ctx context.Context, limit int, offset int) ([]domain.Project, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Project), args.Error(1)
}

// --- Mock CustomerRepository ---
type MockCustomerRepository struct {
	mock.Mock
}

var _ portsrepo.CustomerRepositoryFacade = (*MockCustomerRepository)(nil)

func (m *MockCustomerRepository) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) UpdateCustomer(ctx context.Context, customer domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) ListCustomersByProject(ctx context.Context, projectID string, limit int, offset int) ([]domain.Customer, error) {
	args := m.Called(ctx, projectID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Customer), args.Error(1)
}

// --- Mock ResaleRepository ---
type MockResaleRepository struct {
	mock.Mock
}

var _ portsrepo.ResaleRepositoryFacade = (*MockResaleRepository)(nil)

func (m *MockResaleRepository) FindResaleByID(ctx context.Context, resaleID string) (*domain.PlotResale, error) {
	args := m.Called(ctx, resaleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PlotResale), args.Error(1)
}

func (m *MockResaleRepository) ListResalesByProject(ctx context.Context, projectID string, limit int, offset int) ([]domain.PlotResale, error) {
	args := m.Called(ctx, projectID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PlotResale), args.Error(1)
}

func (m *MockResaleRepository) InsertResaleInTx(ctx context.Context, tx pgx.Tx, resale domain.PlotResale) error {
	args := m.Called(ctx, tx, resale)
	return args.Error(0)
}

func (m *MockResaleRepository) UpdateResaleInTx(ctx context.Context, tx pgx.Tx, resale domain.PlotResale) error {
	args := m.Called(ctx, tx, resale)
	return args.Error(0)
}

func (m *MockResaleRepository) DeleteResaleInTx(ctx context.Context, tx pgx.Tx, resaleID string) error {
	args := m.Called(ctx, tx, resaleID)
	return args.Error(0)
}

// --- Mock ReminderRepository ---
type MockReminderRepository struct {
	mock.Mock
}

var _ portsrepo.ReminderRepositoryFacade = (*MockReminderRepository)(nil)

func (m *MockReminderRepository) SaveReminder(ctx context.Context, reminder domain.PaymentReminder) error {
	args := m.Called(ctx, reminder)
	return args.Error(0)
}

func (m *MockReminderRepository) ExistsForBookingOn(ctx context.Context, bookingID string, day time.Time) (bool, error) {
	args := m.Called(ctx, bookingID, day)
	return args.Bool(0), args.Error(1)
}

func (m *MockReminderRepository) ListRemindersByProject(ctx context.Context, projectID string, limit int, offset int) ([]domain.PaymentReminder, error) {
	args := m.Called(ctx, projectID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentReminder), args.Error(1)
}

// --- Mock AccountService (as used by the posting workflows) ---
type MockAccountService struct {
	mock.Mock
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

func (m *MockAccountService) FindByRole(ctx context.Context, projectID string, role domain.AccountRole) (*domain.BankAccount, error) {
	args := m.Called(ctx, projectID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankAccount), args.Error(1)
}

func (m *MockAccountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.BankAccount, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankAccount), args.Error(1)
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, accountID string) (*domain.BankAccount, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankAccount), args.Error(1)
}

func (m *MockAccountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.BankAccount, error) {
	args := m.Called(ctx, accountID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankAccount), args.Error(1)
}

func (m *MockAccountService) DeactivateAccount(ctx context.Context, accountID string, userID string) error {
	args := m.Called(ctx, accountID, userID)
	return args.Error(0)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, projectID string, limit, offset int) ([]domain.BankAccount, error) {
	args := m.Called(ctx, projectID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BankAccount), args.Error(1)
}

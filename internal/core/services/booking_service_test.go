package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/EstateBooks/plot_booking_app/internal/apperrors"
	"github.com/EstateBooks/plot_booking_app/internal/core/domain"
	portssvc "github.com/EstateBooks/plot_booking_app/internal/core/ports/services"
	"github.com/EstateBooks/plot_booking_app/internal/core/services"
	"github.com/EstateBooks/plot_booking_app/internal/dto"
)

type BookingServiceTestSuite struct {
	suite.Suite
	mockBookingRepo  *MockBookingRepository
	mockPlotRepo     *MockPlotRepository
	mockTokenRepo    *MockTokenRepository
	mockFundRepo     *MockFundRepository
	mockProjectRepo  *MockProjectRepository
	mockCustomerRepo *MockCustomerRepository
	mockLedgerRepo   *MockLedgerRepository
	mockAccountSvc   *MockAccountService
	service          portssvc.BookingSvcFacade

	projectID  string
	customerID string
	userID     string
	project    domain.Project
	customer   domain.Customer

	receivable    domain.BankAccount
	saleAccount   domain.BankAccount
	cogs          domain.BankAccount
	landInventory domain.BankAccount
	payable       domain.BankAccount
	dealerExpense domain.BankAccount
	bank          domain.BankAccount

	plotA domain.Plot
	plotB domain.Plot
}

func (suite *BookingServiceTestSuite) SetupTest() {
	suite.mockBookingRepo = new(MockBookingRepository)
	suite.mockPlotRepo = new(MockPlotRepository)
	suite.mockTokenRepo = new(MockTokenRepository)
	suite.mockFundRepo = new(MockFundRepository)
	suite.mockProjectRepo = new(MockProjectRepository)
	suite.mockCustomerRepo = new(MockCustomerRepository)
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.mockAccountSvc = new(MockAccountService)
	suite.service = services.NewBookingService(
		suite.mockBookingRepo,
		suite.mockPlotRepo,
		suite.mockTokenRepo,
		suite.mockFundRepo,
		suite.mockProjectRepo,
		suite.mockCustomerRepo,
		suite.mockLedgerRepo,
		suite.mockAccountSvc,
	)

	suite.projectID = uuid.NewString()
	suite.customerID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.project = domain.Project{ProjectID: suite.projectID, Code: "PRJ", Name: "Test Scheme", IsActive: true}
	suite.customer = domain.Customer{CustomerID: suite.customerID, ProjectID: suite.projectID, Name: "Test Buyer"}

	suite.receivable = suite.roleAccount(domain.RoleAccountReceivable, domain.Asset)
	suite.saleAccount = suite.roleAccount(domain.RoleSaleAccount, domain.Income)
	suite.cogs = suite.roleAccount(domain.RoleCostOfGoodSold, domain.Expense)
	suite.landInventory = suite.roleAccount(domain.RoleLandInventory, domain.Asset)
	suite.payable = suite.roleAccount(domain.RoleAccountPayable, domain.Liability)
	suite.dealerExpense = suite.roleAccount(domain.RoleDealerExpense, domain.Expense)
	suite.bank = domain.BankAccount{
		AccountID:  uuid.NewString(),
		ProjectID:  suite.projectID,
		Name:       "Main Bank",
		MainType:   domain.Asset,
		DetailType: "Bank",
		IsActive:   true,
	}

	suite.plotA = domain.Plot{
		PlotID:    uuid.NewString(),
		ProjectID: suite.projectID,
		Number:    "A-1",
		CostPrice: decimal.NewFromInt(250000),
		Status:    domain.PlotActive,
	}
	suite.plotB = domain.Plot{
		PlotID:    uuid.NewString(),
		ProjectID: suite.projectID,
		Number:    "A-2",
		CostPrice: decimal.NewFromInt(350000),
		Status:    domain.PlotActive,
	}
}

func (suite *BookingServiceTestSuite) roleAccount(role domain.AccountRole, mainType domain.AccountType) domain.BankAccount {
	return domain.BankAccount{
		AccountID: uuid.NewString(),
		ProjectID: suite.projectID,
		Name:      string(role),
		UsedFor:   role,
		MainType:  mainType,
		IsActive:  true,
	}
}

func (suite *BookingServiceTestSuite) expectRole(ctx context.Context, account domain.BankAccount) {
	suite.mockAccountSvc.On("FindByRole", ctx, suite.projectID, account.UsedFor).Return(&account, nil).Once()
}

func (suite *BookingServiceTestSuite) expectTx(ctx context.Context) {
	suite.mockLedgerRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockLedgerRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()
	suite.mockLedgerRepo.On("Rollback", ctx, mock.Anything).Return(nil).Once()
}

func (suite *BookingServiceTestSuite) capturePostings(postings *[]domain.BankTransaction) {
	suite.mockLedgerRepo.On("InsertPostingInTx", mock.Anything, mock.Anything, mock.AnythingOfType("domain.BankTransaction")).
		Run(func(args mock.Arguments) {
			*postings = append(*postings, args.Get(2).(domain.BankTransaction))
		}).
		Return(nil)
}

func findPosting(postings []domain.BankTransaction, accountID string, kind domain.TransactionKind) *domain.BankTransaction {
	for i := range postings {
		if postings[i].AccountID == accountID && postings[i].Kind == kind {
			return &postings[i]
		}
	}
	return nil
}

// --- Test Cases ---

func (suite *BookingServiceTestSuite) TestCreateBooking_Success() {
	ctx := context.Background()
	plotIDs := []string{suite.plotA.PlotID, suite.plotB.PlotID}
	req := dto.CreateBookingRequest{
		ProjectID:   suite.projectID,
		CustomerID:  suite.customerID,
		PlotIDs:     plotIDs,
		BookingDate: time.Now().UTC(),
		TotalAmount: decimal.NewFromInt(1000000),
	}

	suite.mockProjectRepo.On("FindProjectByID", ctx, suite.projectID).Return(&suite.project, nil).Once()
	suite.mockCustomerRepo.On("FindCustomerByID", ctx, suite.customerID).Return(&suite.customer, nil).Once()
	suite.mockPlotRepo.On("FindPlotsByIDs", ctx, plotIDs).Return([]domain.Plot{suite.plotA, suite.plotB}, nil).Once()
	suite.expectRole(ctx, suite.receivable)
	suite.expectRole(ctx, suite.saleAccount)
	suite.expectRole(ctx, suite.cogs)
	suite.expectRole(ctx, suite.landInventory)

	suite.expectTx(ctx)
	suite.mockBookingRepo.On("NextBookingSeqInTx", ctx, mock.Anything, suite.projectID).Return(1, nil).Once()

	var insertedBooking domain.Booking
	suite.mockBookingRepo.On("InsertBookingInTx", ctx, mock.Anything, mock.AnythingOfType("domain.Booking")).
		Run(func(args mock.Arguments) { insertedBooking = args.Get(2).(domain.Booking) }).
		Return(nil).Once()
	suite.mockPlotRepo.On("UpdatePlotStatusInTx", ctx, mock.Anything, plotIDs, domain.PlotSold, suite.userID).Return(nil).Once()

	var postings []domain.BankTransaction
	suite.capturePostings(&postings)

	booking, err := suite.service.CreateBooking(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(booking)
	suite.Equal("PRJ-001", booking.BookingNo)
	suite.Equal("PRJ-001", insertedBooking.BookingNo)
	suite.Equal(domain.BookingActive, booking.Status)
	suite.True(booking.TotalReceivingAmount.IsZero())
	suite.True(booking.Remaining.Equal(decimal.NewFromInt(1000000)))

	suite.Require().Len(postings, 4)
	plotCost := decimal.NewFromInt(600000)
	ref := domain.EventRef{Table: domain.RelBooking, ID: booking.BookingID}
	for _, p := range postings {
		suite.Equal(ref, p.Ref)
		suite.Equal(suite.projectID, p.ProjectID)
	}

	arLeg := findPosting(postings, suite.receivable.AccountID, domain.KindBooking)
	suite.Require().NotNil(arLeg)
	suite.True(arLeg.Deposit.Equal(req.TotalAmount))
	suite.True(arLeg.Payment.IsZero())

	// The sale leg carries the same sign as the receivable leg.
	saleLeg := findPosting(postings, suite.saleAccount.AccountID, domain.KindBooking)
	suite.Require().NotNil(saleLeg)
	suite.True(saleLeg.Deposit.Equal(req.TotalAmount))

	cogsLeg := findPosting(postings, suite.cogs.AccountID, domain.KindBooking)
	suite.Require().NotNil(cogsLeg)
	suite.True(cogsLeg.Deposit.Equal(plotCost))

	landLeg := findPosting(postings, suite.landInventory.AccountID, domain.KindBooking)
	suite.Require().NotNil(landLeg)
	suite.True(landLeg.Payment.Equal(plotCost))

	suite.mockBookingRepo.AssertExpectations(suite.T())
	suite.mockLedgerRepo.AssertExpectations(suite.T())
	suite.mockFundRepo.AssertNotCalled(suite.T(), "InsertFundInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BookingServiceTestSuite) TestCreateBooking_WithAdvance() {
	ctx := context.Background()
	plotIDs := []string{suite.plotA.PlotID, suite.plotB.PlotID}
	req := dto.CreateBookingRequest{
		ProjectID:            suite.projectID,
		CustomerID:           suite.customerID,
		PlotIDs:              plotIDs,
		BookingDate:          time.Now().UTC(),
		TotalAmount:          decimal.NewFromInt(1000000),
		Advance:              decimal.NewFromInt(100000),
		AdvanceBankID:        &suite.bank.AccountID,
		AdvancePaymentMethod: "Cash",
	}

	suite.mockProjectRepo.On("FindProjectByID", ctx, suite.projectID).Return(&suite.project, nil).Once()
	suite.mockCustomerRepo.On("FindCustomerByID", ctx, suite.customerID).Return(&suite.customer, nil).Once()
	suite.mockPlotRepo.On("FindPlotsByIDs", ctx, plotIDs).Return([]domain.Plot{suite.plotA, suite.plotB}, nil).Once()
	suite.mockAccountSvc.On("GetAccountByID", ctx, suite.bank.AccountID).Return(&suite.bank, nil).Once()
	suite.expectRole(ctx, suite.receivable)
	suite.expectRole(ctx, suite.saleAccount)
	suite.expectRole(ctx, suite.cogs)
	suite.expectRole(ctx, suite.landInventory)

	suite.expectTx(ctx)
	suite.mockBookingRepo.On("NextBookingSeqInTx", ctx, mock.Anything, suite.projectID).Return(12, nil).Once()
	suite.mockBookingRepo.On("InsertBookingInTx", ctx, mock.Anything, mock.AnythingOfType("domain.Booking")).Return(nil).Once()
	suite.mockPlotRepo.On("UpdatePlotStatusInTx", ctx, mock.Anything, plotIDs, domain.PlotSold, suite.userID).Return(nil).Once()
	suite.mockFundRepo.On("NextDocumentSeqInTx", ctx, mock.Anything, suite.projectID).Return(7, nil).Once()

	var insertedFund domain.IncomingFund
	suite.mockFundRepo.On("InsertFundInTx", ctx, mock.Anything, mock.AnythingOfType("domain.IncomingFund")).
		Run(func(args mock.Arguments) { insertedFund = args.Get(2).(domain.IncomingFund) }).
		Return(nil).Once()

	var postings []domain.BankTransaction
	suite.capturePostings(&postings)

	booking, err := suite.service.CreateBooking(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(booking)
	suite.Equal("PRJ-012", booking.BookingNo)
	suite.True(booking.TotalReceivingAmount.Equal(req.Advance))
	suite.True(booking.Remaining.Equal(decimal.NewFromInt(900000)))

	suite.Equal("PRJ-R0007", insertedFund.DocumentNo)
	suite.True(insertedFund.IsAdvance)
	suite.Equal(domain.FundPayment, insertedFund.Reference)
	suite.True(insertedFund.Amount.Equal(req.Advance))

	suite.Require().Len(postings, 6)

	arAdvance := findPosting(postings, suite.receivable.AccountID, domain.KindBookingAdvance)
	suite.Require().NotNil(arAdvance)
	suite.True(arAdvance.Payment.Equal(req.Advance))

	bankAdvance := findPosting(postings, suite.bank.AccountID, domain.KindBookingAdvance)
	suite.Require().NotNil(bankAdvance)
	suite.True(bankAdvance.Deposit.Equal(req.Advance))
	suite.True(bankAdvance.IsDeposit)
	suite.True(bankAdvance.IsChequeClear)

	suite.mockFundRepo.AssertExpectations(suite.T())
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *BookingServiceTestSuite) TestCreateBooking_ChequeIntoUndepositedFunds() {
	ctx := context.Background()
	undeposited := suite.bank
	undeposited.AccountID = uuid.NewString()
	undeposited.Name = "Undeposited Funds"
	undeposited.DetailType = domain.DetailTypeUndepositedFunds

	plotIDs := []string{suite.plotA.PlotID}
	req := dto.CreateBookingRequest{
		ProjectID:            suite.projectID,
		CustomerID:           suite.customerID,
		PlotIDs:              plotIDs,
		BookingDate:          time.Now().UTC(),
		TotalAmount:          decimal.NewFromInt(500000),
		Advance:              decimal.NewFromInt(50000),
		AdvanceBankID:        &undeposited.AccountID,
		AdvancePaymentMethod: "Cheque",
	}

	suite.mockProjectRepo.On("FindProjectByID", ctx, suite.projectID).Return(&suite.project, nil).Once()
	suite.mockCustomerRepo.On("FindCustomerByID", ctx, suite.customerID).Return(&suite.customer, nil).Once()
	suite.mockPlotRepo.On("FindPlotsByIDs", ctx, plotIDs).Return([]domain.Plot{suite.plotA}, nil).Once()
	suite.mockAccountSvc.On("GetAccountByID", ctx, undeposited.AccountID).Return(&undeposited, nil).Once()
	suite.expectRole(ctx, suite.receivable)
	suite.expectRole(ctx, suite.saleAccount)
	suite.expectRole(ctx, suite.cogs)
	suite.expectRole(ctx, suite.landInventory)

	suite.expectTx(ctx)
	suite.mockBookingRepo.On("NextBookingSeqInTx", ctx, mock.Anything, suite.projectID).Return(2, nil).Once()
	suite.mockBookingRepo.On("InsertBookingInTx", ctx, mock.Anything, mock.AnythingOfType("domain.Booking")).Return(nil).Once()
	suite.mockPlotRepo.On("UpdatePlotStatusInTx", ctx, mock.Anything, plotIDs, domain.PlotSold, suite.userID).Return(nil).Once()
	suite.mockFundRepo.On("NextDocumentSeqInTx", ctx, mock.Anything, suite.projectID).Return(1, nil).Once()
	suite.mockFundRepo.On("InsertFundInTx", ctx, mock.Anything, mock.AnythingOfType("domain.IncomingFund")).Return(nil).Once()

	var postings []domain.BankTransaction
	suite.capturePostings(&postings)

	_, err := suite.service.CreateBooking(ctx, req, suite.userID)

	suite.Require().NoError(err)
	bankAdvance := findPosting(postings, undeposited.AccountID, domain.KindBookingAdvance)
	suite.Require().NotNil(bankAdvance)
	suite.False(bankAdvance.IsDeposit)
	suite.False(bankAdvance.IsChequeClear)
}

func (suite *BookingServiceTestSuite) TestCreateBooking_DealerCommissionPair() {
	ctx := context.Background()
	plotIDs := []string{suite.plotA.PlotID}
	commission := decimal.NewFromInt(50000)
	req := dto.CreateBookingRequest{
		ProjectID:          suite.projectID,
		CustomerID:         suite.customerID,
		PlotIDs:            plotIDs,
		BookingDate:        time.Now().UTC(),
		TotalAmount:        decimal.NewFromInt(500000),
		DealerName:         "Dealer One",
		DealerComissionAmt: commission,
	}

	suite.mockProjectRepo.On("FindProjectByID", ctx, suite.projectID).Return(&suite.project, nil).Once()
	suite.mockCustomerRepo.On("FindCustomerByID", ctx, suite.customerID).Return(&suite.customer, nil).Once()
	suite.mockPlotRepo.On("FindPlotsByIDs", ctx, plotIDs).Return([]domain.Plot{suite.plotA}, nil).Once()
	suite.expectRole(ctx, suite.receivable)
	suite.expectRole(ctx, suite.saleAccount)
	suite.expectRole(ctx, suite.cogs)
	suite.expectRole(ctx, suite.landInventory)
	suite.expectRole(ctx, suite.payable)
	suite.expectRole(ctx, suite.dealerExpense)

	suite.expectTx(ctx)
	suite.mockBookingRepo.On("NextBookingSeqInTx", ctx, mock.Anything, suite.projectID).Return(3, nil).Once()
	suite.mockBookingRepo.On("InsertBookingInTx", ctx, mock.Anything, mock.AnythingOfType("domain.Booking")).Return(nil).Once()
	suite.mockPlotRepo.On("UpdatePlotStatusInTx", ctx, mock.Anything, plotIDs, domain.PlotSold, suite.userID).Return(nil).Once()

	var postings []domain.BankTransaction
	suite.capturePostings(&postings)

	_, err := suite.service.CreateBooking(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(postings, 6)

	payableLeg := findPosting(postings, suite.payable.AccountID, domain.KindDealerComission)
	suite.Require().NotNil(payableLeg)
	suite.True(payableLeg.Deposit.Equal(commission))

	expenseLeg := findPosting(postings, suite.dealerExpense.AccountID, domain.KindDealerComission)
	suite.Require().NotNil(expenseLeg)
	suite.True(expenseLeg.Deposit.Equal(commission))
}

func (suite *BookingServiceTestSuite) TestCreateBooking_MissingRoleSkipsLeg() {
	ctx := context.Background()
	plotIDs := []string{suite.plotA.PlotID}
	req := dto.CreateBookingRequest{
		ProjectID:   suite.projectID,
		CustomerID:  suite.customerID,
		PlotIDs:     plotIDs,
		BookingDate: time.Now().UTC(),
		TotalAmount: decimal.NewFromInt(500000),
	}

	suite.mockProjectRepo.On("FindProjectByID", ctx, suite.projectID).Return(&suite.project, nil).Once()
	suite.mockCustomerRepo.On("FindCustomerByID", ctx, suite.customerID).Return(&suite.customer, nil).Once()
	suite.mockPlotRepo.On("FindPlotsByIDs", ctx, plotIDs).Return([]domain.Plot{suite.plotA}, nil).Once()
	suite.expectRole(ctx, suite.receivable)
	suite.mockAccountSvc.On("FindByRole", ctx, suite.projectID, domain.RoleSaleAccount).Return(nil, nil).Once()
	suite.expectRole(ctx, suite.cogs)
	suite.expectRole(ctx, suite.landInventory)

	suite.expectTx(ctx)
	suite.mockBookingRepo.On("NextBookingSeqInTx", ctx, mock.Anything, suite.projectID).Return(1, nil).Once()
	suite.mockBookingRepo.On("InsertBookingInTx", ctx, mock.Anything, mock.AnythingOfType("domain.Booking")).Return(nil).Once()
	suite.mockPlotRepo.On("UpdatePlotStatusInTx", ctx, mock.Anything, plotIDs, domain.PlotSold, suite.userID).Return(nil).Once()

	var postings []domain.BankTransaction
	suite.capturePostings(&postings)

	_, err := suite.service.CreateBooking(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(postings, 3)
	suite.Nil(findPosting(postings, suite.saleAccount.AccountID, domain.KindBooking))
}

func (suite *BookingServiceTestSuite) TestCreateBooking_TokenNotPending() {
	ctx := context.Background()
	tokenID := uuid.NewString()
	req := dto.CreateBookingRequest{
		ProjectID:   suite.projectID,
		CustomerID:  suite.customerID,
		PlotIDs:     []string{suite.plotA.PlotID},
		TokenID:     &tokenID,
		BookingDate: time.Now().UTC(),
		TotalAmount: decimal.NewFromInt(500000),
	}

	suite.mockProjectRepo.On("FindProjectByID", ctx, suite.projectID).Return(&suite.project, nil).Once()
	suite.mockCustomerRepo.On("FindCustomerByID", ctx, suite.customerID).Return(&suite.customer, nil).Once()
	token := domain.Token{TokenID: tokenID, ProjectID: suite.projectID, Status: domain.TokenAccepted}
	suite.mockTokenRepo.On("FindTokenByID", ctx, tokenID).Return(&token, nil).Once()

	_, err := suite.service.CreateBooking(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrTokenNotPending)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *BookingServiceTestSuite) TestCreateBooking_SoldPlotRejected() {
	ctx := context.Background()
	soldPlot := suite.plotA
	soldPlot.Status = domain.PlotSold
	plotIDs := []string{soldPlot.PlotID}
	req := dto.CreateBookingRequest{
		ProjectID:   suite.projectID,
		CustomerID:  suite.customerID,
		PlotIDs:     plotIDs,
		BookingDate: time.Now().UTC(),
		TotalAmount: decimal.NewFromInt(500000),
	}

	suite.mockProjectRepo.On("FindProjectByID", ctx, suite.projectID).Return(&suite.project, nil).Once()
	suite.mockCustomerRepo.On("FindCustomerByID", ctx, suite.customerID).Return(&suite.customer, nil).Once()
	suite.mockPlotRepo.On("FindPlotsByIDs", ctx, plotIDs).Return([]domain.Plot{soldPlot}, nil).Once()

	_, err := suite.service.CreateBooking(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrPlotNotAvailable)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *BookingServiceTestSuite) TestCreateBooking_ReservedPlotNeedsToken() {
	ctx := context.Background()
	reserved := suite.plotA
	reserved.Status = domain.PlotReserved
	plotIDs := []string{reserved.PlotID}
	req := dto.CreateBookingRequest{
		ProjectID:   suite.projectID,
		CustomerID:  suite.customerID,
		PlotIDs:     plotIDs,
		BookingDate: time.Now().UTC(),
		TotalAmount: decimal.NewFromInt(500000),
	}

	suite.mockProjectRepo.On("FindProjectByID", ctx, suite.projectID).Return(&suite.project, nil).Once()
	suite.mockCustomerRepo.On("FindCustomerByID", ctx, suite.customerID).Return(&suite.customer, nil).Once()
	suite.mockPlotRepo.On("FindPlotsByIDs", ctx, plotIDs).Return([]domain.Plot{reserved}, nil).Once()

	_, err := suite.service.CreateBooking(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrPlotNotAvailable)
}

func (suite *BookingServiceTestSuite) TestCreateBooking_CustomerWrongProject() {
	ctx := context.Background()
	stranger := suite.customer
	stranger.ProjectID = uuid.NewString()
	req := dto.CreateBookingRequest{
		ProjectID:   suite.projectID,
		CustomerID:  suite.customerID,
		PlotIDs:     []string{suite.plotA.PlotID},
		BookingDate: time.Now().UTC(),
		TotalAmount: decimal.NewFromInt(500000),
	}

	suite.mockProjectRepo.On("FindProjectByID", ctx, suite.projectID).Return(&suite.project, nil).Once()
	suite.mockCustomerRepo.On("FindCustomerByID", ctx, suite.customerID).Return(&stranger, nil).Once()

	_, err := suite.service.CreateBooking(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockPlotRepo.AssertNotCalled(suite.T(), "FindPlotsByIDs", mock.Anything, mock.Anything)
}

func (suite *BookingServiceTestSuite) TestUpdateBooking_PreservesPostingRows() {
	ctx := context.Background()
	bookingID := uuid.NewString()
	plotIDs := []string{suite.plotA.PlotID, suite.plotB.PlotID}
	booking := domain.Booking{
		BookingID:            bookingID,
		BookingNo:            "PRJ-001",
		ProjectID:            suite.projectID,
		CustomerID:           suite.customerID,
		PlotIDs:              plotIDs,
		BookingDate:          time.Now().UTC().AddDate(0, 0, -7),
		TotalAmount:          decimal.NewFromInt(1000000),
		TotalReceivingAmount: decimal.Zero,
		Remaining:            decimal.NewFromInt(1000000),
		Status:               domain.BookingActive,
	}
	newTotal := decimal.NewFromInt(1200000)
	req := dto.UpdateBookingRequest{TotalAmount: &newTotal}

	suite.mockBookingRepo.On("FindBookingByID", ctx, bookingID).Return(&booking, nil).Once()
	suite.mockPlotRepo.On("FindPlotsByIDs", ctx, plotIDs).Return([]domain.Plot{suite.plotA, suite.plotB}, nil).Once()
	suite.expectRole(ctx, suite.receivable)
	suite.expectRole(ctx, suite.saleAccount)
	suite.expectRole(ctx, suite.cogs)
	suite.expectRole(ctx, suite.landInventory)

	suite.expectTx(ctx)
	ref := domain.EventRef{Table: domain.RelBooking, ID: bookingID}
	existingIDs := make(map[string]string)
	for _, account := range []domain.BankAccount{suite.receivable, suite.saleAccount, suite.cogs, suite.landInventory} {
		existing := domain.BankTransaction{
			TransactionID: uuid.NewString(),
			ProjectID:     suite.projectID,
			AccountID:     account.AccountID,
			Kind:          domain.KindBooking,
			Ref:           ref,
		}
		existingIDs[account.AccountID] = existing.TransactionID
		suite.mockLedgerRepo.On("FindPostingForUpdateInTx", ctx, mock.Anything, suite.projectID, account.AccountID, domain.KindBooking, ref).
			Return(&existing, nil).Once()
	}

	var updated []domain.BankTransaction
	suite.mockLedgerRepo.On("UpdatePostingInTx", ctx, mock.Anything, mock.AnythingOfType("domain.BankTransaction")).
		Run(func(args mock.Arguments) {
			updated = append(updated, args.Get(2).(domain.BankTransaction))
		}).
		Return(nil).Times(4)
	suite.mockFundRepo.On("SumFundsByBooking", ctx, bookingID).Return(decimal.Zero, nil).Once()
	suite.mockBookingRepo.On("UpdateBookingInTx", ctx, mock.Anything, mock.AnythingOfType("domain.Booking")).Return(nil).Once()

	result, err := suite.service.UpdateBooking(ctx, bookingID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(result)
	suite.True(result.TotalAmount.Equal(newTotal))
	suite.True(result.Remaining.Equal(newTotal))

	// Row identifiers survive the overwrite.
	suite.Require().Len(updated, 4)
	for _, p := range updated {
		suite.Equal(existingIDs[p.AccountID], p.TransactionID)
	}
	arLeg := findPosting(updated, suite.receivable.AccountID, domain.KindBooking)
	suite.Require().NotNil(arLeg)
	suite.True(arLeg.Deposit.Equal(newTotal))

	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "InsertPostingInTx", mock.Anything, mock.Anything, mock.Anything)
	suite.mockPlotRepo.AssertNotCalled(suite.T(), "UpdatePlotStatusInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *BookingServiceTestSuite) TestUpdateBooking_AddedAdvanceMintsFund() {
	ctx := context.Background()
	bookingID := uuid.NewString()
	plotIDs := []string{suite.plotA.PlotID, suite.plotB.PlotID}
	booking := domain.Booking{
		BookingID:            bookingID,
		BookingNo:            "PRJ-001",
		ProjectID:            suite.projectID,
		CustomerID:           suite.customerID,
		PlotIDs:              plotIDs,
		BookingDate:          time.Now().UTC().AddDate(0, 0, -7),
		TotalAmount:          decimal.NewFromInt(1000000),
		Advance:              decimal.Zero,
		TotalReceivingAmount: decimal.Zero,
		Remaining:            decimal.NewFromInt(1000000),
		Status:               domain.BookingActive,
	}
	advance := decimal.NewFromInt(100000)
	method := "Cash"
	req := dto.UpdateBookingRequest{
		Advance:              &advance,
		AdvanceBankID:        &suite.bank.AccountID,
		AdvancePaymentMethod: &method,
	}

	suite.mockBookingRepo.On("FindBookingByID", ctx, bookingID).Return(&booking, nil).Once()
	suite.mockPlotRepo.On("FindPlotsByIDs", ctx, plotIDs).Return([]domain.Plot{suite.plotA, suite.plotB}, nil).Once()
	suite.mockAccountSvc.On("GetAccountByID", ctx, suite.bank.AccountID).Return(&suite.bank, nil).Once()
	suite.expectRole(ctx, suite.receivable)
	suite.expectRole(ctx, suite.saleAccount)
	suite.expectRole(ctx, suite.cogs)
	suite.expectRole(ctx, suite.landInventory)

	suite.expectTx(ctx)
	ref := domain.EventRef{Table: domain.RelBooking, ID: bookingID}
	for _, account := range []domain.BankAccount{suite.receivable, suite.saleAccount, suite.cogs, suite.landInventory} {
		existing := domain.BankTransaction{
			TransactionID: uuid.NewString(),
			ProjectID:     suite.projectID,
			AccountID:     account.AccountID,
			Kind:          domain.KindBooking,
			Ref:           ref,
		}
		suite.mockLedgerRepo.On("FindPostingForUpdateInTx", ctx, mock.Anything, suite.projectID, account.AccountID, domain.KindBooking, ref).
			Return(&existing, nil).Once()
	}
	suite.mockLedgerRepo.On("UpdatePostingInTx", ctx, mock.Anything, mock.AnythingOfType("domain.BankTransaction")).Return(nil).Times(4)

	// No advance legs exist yet, so both fall back to inserts.
	suite.mockLedgerRepo.On("FindPostingForUpdateInTx", ctx, mock.Anything, suite.projectID, suite.receivable.AccountID, domain.KindBookingAdvance, ref).
		Return(nil, nil).Once()
	suite.mockLedgerRepo.On("FindKindPostingForUpdateInTx", ctx, mock.Anything, suite.projectID, domain.KindBookingAdvance, ref, suite.receivable.AccountID).
		Return(nil, nil).Once()
	var inserted []domain.BankTransaction
	suite.mockLedgerRepo.On("InsertPostingInTx", ctx, mock.Anything, mock.AnythingOfType("domain.BankTransaction")).
		Run(func(args mock.Arguments) {
			inserted = append(inserted, args.Get(2).(domain.BankTransaction))
		}).
		Return(nil).Times(2)

	suite.mockFundRepo.On("ListFundsByBooking", ctx, bookingID).Return([]domain.IncomingFund{}, nil).Once()
	suite.mockProjectRepo.On("FindProjectByID", ctx, suite.projectID).Return(&suite.project, nil).Once()
	suite.mockFundRepo.On("NextDocumentSeqInTx", ctx, mock.Anything, suite.projectID).Return(21, nil).Once()
	var mintedFund domain.IncomingFund
	suite.mockFundRepo.On("InsertFundInTx", ctx, mock.Anything, mock.AnythingOfType("domain.IncomingFund")).
		Run(func(args mock.Arguments) {
			mintedFund = args.Get(2).(domain.IncomingFund)
		}).
		Return(nil).Once()
	suite.mockFundRepo.On("SumFundsByBooking", ctx, bookingID).Return(advance, nil).Once()
	suite.mockBookingRepo.On("UpdateBookingInTx", ctx, mock.Anything, mock.AnythingOfType("domain.Booking")).Return(nil).Once()

	result, err := suite.service.UpdateBooking(ctx, bookingID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(result)

	suite.Equal("PRJ-R0021", mintedFund.DocumentNo)
	suite.True(mintedFund.IsAdvance)
	suite.Equal(domain.FundPayment, mintedFund.Reference)
	suite.True(mintedFund.Amount.Equal(advance))
	suite.Require().NotNil(mintedFund.BankID)
	suite.Equal(suite.bank.AccountID, *mintedFund.BankID)

	// Ledger and booking totals agree on the added advance.
	suite.True(result.TotalReceivingAmount.Equal(advance))
	suite.True(result.Remaining.Equal(decimal.NewFromInt(900000)))
	suite.Require().Len(inserted, 2)
	arLeg := findPosting(inserted, suite.receivable.AccountID, domain.KindBookingAdvance)
	suite.Require().NotNil(arLeg)
	suite.True(arLeg.Payment.Equal(advance))
	bankLeg := findPosting(inserted, suite.bank.AccountID, domain.KindBookingAdvance)
	suite.Require().NotNil(bankLeg)
	suite.True(bankLeg.Deposit.Equal(advance))
	suite.True(bankLeg.IsDeposit)
	suite.True(bankLeg.IsChequeClear)

	suite.mockFundRepo.AssertExpectations(suite.T())
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *BookingServiceTestSuite) TestUpdateBooking_ClosedRejected() {
	ctx := context.Background()
	bookingID := uuid.NewString()
	closed := domain.Booking{
		BookingID: bookingID,
		ProjectID: suite.projectID,
		Status:    domain.BookingClosed,
	}
	suite.mockBookingRepo.On("FindBookingByID", ctx, bookingID).Return(&closed, nil).Once()

	_, err := suite.service.UpdateBooking(ctx, bookingID, dto.UpdateBookingRequest{}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.ErrorIs(err, services.ErrBookingClosed)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *BookingServiceTestSuite) TestDeleteBooking_Success() {
	ctx := context.Background()
	bookingID := uuid.NewString()
	plotIDs := []string{suite.plotA.PlotID, suite.plotB.PlotID}
	booking := domain.Booking{
		BookingID: bookingID,
		ProjectID: suite.projectID,
		PlotIDs:   plotIDs,
		Status:    domain.BookingActive,
	}

	suite.mockBookingRepo.On("FindBookingByID", ctx, bookingID).Return(&booking, nil).Once()
	suite.expectTx(ctx)
	ref := domain.EventRef{Table: domain.RelBooking, ID: bookingID}
	suite.mockLedgerRepo.On("DeletePostingsByRefInTx", ctx, mock.Anything, ref).Return(nil).Once()
	suite.mockPlotRepo.On("UpdatePlotStatusInTx", ctx, mock.Anything, plotIDs, domain.PlotActive, suite.userID).Return(nil).Once()
	suite.mockBookingRepo.On("DeleteBookingInTx", ctx, mock.Anything, bookingID).Return(nil).Once()

	err := suite.service.DeleteBooking(ctx, bookingID, suite.userID)

	suite.Require().NoError(err)
	suite.mockBookingRepo.AssertExpectations(suite.T())
	suite.mockLedgerRepo.AssertExpectations(suite.T())
	suite.mockPlotRepo.AssertExpectations(suite.T())
}

func (suite *BookingServiceTestSuite) TestListBookings_DefaultLimit() {
	ctx := context.Background()
	suite.mockBookingRepo.On("ListBookingsByProject", ctx, suite.projectID, 20, (*string)(nil)).
		Return([]domain.Booking{}, nil, nil).Once()

	_, _, err := suite.service.ListBookings(ctx, suite.projectID, 0, nil)

	suite.Require().NoError(err)
	suite.mockBookingRepo.AssertExpectations(suite.T())
}

func TestBookingService(t *testing.T) {
	suite.Run(t, new(BookingServiceTestSuite))
}

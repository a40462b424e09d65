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

type PaymentServiceTestSuite struct {
	suite.Suite
	mockFundRepo    *MockFundRepository
	mockBankingRepo *MockBankingRepository
	mockBookingRepo *MockBookingRepository
	mockProjectRepo *MockProjectRepository
	mockLedgerRepo  *MockLedgerRepository
	mockAccountSvc  *MockAccountService
	service         portssvc.PaymentSvcFacade

	projectID   string
	userID      string
	project     domain.Project
	booking     domain.Booking
	bank        domain.BankAccount
	undeposited domain.BankAccount
}

func (suite *PaymentServiceTestSuite) SetupTest() {
	suite.mockFundRepo = new(MockFundRepository)
	suite.mockBankingRepo = new(MockBankingRepository)
	suite.mockBookingRepo = new(MockBookingRepository)
	suite.mockProjectRepo = new(MockProjectRepository)
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.mockAccountSvc = new(MockAccountService)
	suite.service = services.NewPaymentService(
		suite.mockFundRepo,
		suite.mockBankingRepo,
		suite.mockBookingRepo,
		suite.mockProjectRepo,
		suite.mockLedgerRepo,
		suite.mockAccountSvc,
	)

	suite.projectID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.project = domain.Project{ProjectID: suite.projectID, Code: "PRJ", IsActive: true}
	suite.booking = domain.Booking{
		BookingID:            uuid.NewString(),
		BookingNo:            "PRJ-001",
		ProjectID:            suite.projectID,
		TotalAmount:          decimal.NewFromInt(1000000),
		TotalReceivingAmount: decimal.NewFromInt(100000),
		Remaining:            decimal.NewFromInt(900000),
		Status:               domain.BookingActive,
	}
	suite.bank = domain.BankAccount{
		AccountID:  uuid.NewString(),
		ProjectID:  suite.projectID,
		Name:       "Main Bank",
		MainType:   domain.Asset,
		DetailType: "Bank",
		IsActive:   true,
	}
	suite.undeposited = domain.BankAccount{
		AccountID:  uuid.NewString(),
		ProjectID:  suite.projectID,
		Name:       "Undeposited Funds",
		UsedFor:    domain.RoleUndepositedFunds,
		MainType:   domain.Asset,
		DetailType: domain.DetailTypeUndepositedFunds,
		IsActive:   true,
	}
}

func (suite *PaymentServiceTestSuite) expectTx(ctx context.Context) {
	suite.mockLedgerRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockLedgerRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()
	suite.mockLedgerRepo.On("Rollback", ctx, mock.Anything).Return(nil).Once()
}

// --- Test Cases ---

func (suite *PaymentServiceTestSuite) TestCreateFund_PaymentIncreasesReceived() {
	ctx := context.Background()
	req := dto.CreateFundRequest{
		BookingID: suite.booking.BookingID,
		Reference: "payment",
		Amount:    decimal.NewFromInt(50000),
		Date:      time.Now().UTC(),
	}

	suite.mockBookingRepo.On("FindBookingByID", ctx, suite.booking.BookingID).Return(&suite.booking, nil).Once()
	suite.mockProjectRepo.On("FindProjectByID", ctx, suite.projectID).Return(&suite.project, nil).Once()
	suite.expectTx(ctx)
	suite.mockFundRepo.On("NextDocumentSeqInTx", ctx, mock.Anything, suite.projectID).Return(15, nil).Once()
	suite.mockFundRepo.On("InsertFundInTx", ctx, mock.Anything, mock.AnythingOfType("domain.IncomingFund")).Return(nil).Once()

	var updatedBooking domain.Booking
	suite.mockBookingRepo.On("UpdateBookingInTx", ctx, mock.Anything, mock.AnythingOfType("domain.Booking")).
		Run(func(args mock.Arguments) { updatedBooking = args.Get(2).(domain.Booking) }).
		Return(nil).Once()

	fund, err := suite.service.CreateFund(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(fund)
	suite.Equal("PRJ-R0015", fund.DocumentNo)
	suite.Equal(domain.FundPayment, fund.Reference)
	suite.False(fund.IsAdvance)

	suite.True(updatedBooking.TotalReceivingAmount.Equal(decimal.NewFromInt(150000)))
	suite.True(updatedBooking.Remaining.Equal(decimal.NewFromInt(850000)))

	suite.mockFundRepo.AssertExpectations(suite.T())
	suite.mockBookingRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestCreateFund_RefundDecreasesReceived() {
	ctx := context.Background()
	req := dto.CreateFundRequest{
		BookingID: suite.booking.BookingID,
		Reference: "refund",
		Amount:    decimal.NewFromInt(20000),
		Date:      time.Now().UTC(),
	}

	suite.mockBookingRepo.On("FindBookingByID", ctx, suite.booking.BookingID).Return(&suite.booking, nil).Once()
	suite.mockProjectRepo.On("FindProjectByID", ctx, suite.projectID).Return(&suite.project, nil).Once()
	suite.expectTx(ctx)
	suite.mockFundRepo.On("NextDocumentSeqInTx", ctx, mock.Anything, suite.projectID).Return(16, nil).Once()
	suite.mockFundRepo.On("InsertFundInTx", ctx, mock.Anything, mock.AnythingOfType("domain.IncomingFund")).Return(nil).Once()

	var updatedBooking domain.Booking
	suite.mockBookingRepo.On("UpdateBookingInTx", ctx, mock.Anything, mock.AnythingOfType("domain.Booking")).
		Run(func(args mock.Arguments) { updatedBooking = args.Get(2).(domain.Booking) }).
		Return(nil).Once()

	_, err := suite.service.CreateFund(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.True(updatedBooking.TotalReceivingAmount.Equal(decimal.NewFromInt(80000)))
	suite.True(updatedBooking.Remaining.Equal(decimal.NewFromInt(920000)))
}

func (suite *PaymentServiceTestSuite) TestCreateFund_UnknownReferenceRejected() {
	ctx := context.Background()
	req := dto.CreateFundRequest{
		BookingID: suite.booking.BookingID,
		Reference: "chargeback",
		Amount:    decimal.NewFromInt(20000),
		Date:      time.Now().UTC(),
	}

	_, err := suite.service.CreateFund(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockBookingRepo.AssertNotCalled(suite.T(), "FindBookingByID", mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestUpdateFund_PropagatesDelta() {
	ctx := context.Background()
	fundID := uuid.NewString()
	fund := domain.IncomingFund{
		FundID:    fundID,
		ProjectID: suite.projectID,
		BookingID: suite.booking.BookingID,
		Reference: domain.FundPayment,
		Amount:    decimal.NewFromInt(50000),
		Date:      time.Now().UTC().AddDate(0, 0, -1),
	}
	newAmount := decimal.NewFromInt(70000)
	req := dto.UpdateFundRequest{Amount: &newAmount}

	suite.mockFundRepo.On("FindFundByID", ctx, fundID).Return(&fund, nil).Once()
	suite.mockBookingRepo.On("FindBookingByID", ctx, suite.booking.BookingID).Return(&suite.booking, nil).Once()
	suite.expectTx(ctx)
	suite.mockFundRepo.On("UpdateFundInTx", ctx, mock.Anything, mock.AnythingOfType("domain.IncomingFund")).Return(nil).Once()

	var updatedBooking domain.Booking
	suite.mockBookingRepo.On("UpdateBookingInTx", ctx, mock.Anything, mock.AnythingOfType("domain.Booking")).
		Run(func(args mock.Arguments) { updatedBooking = args.Get(2).(domain.Booking) }).
		Return(nil).Once()

	result, err := suite.service.UpdateFund(ctx, fundID, req, suite.userID)

	suite.Require().NoError(err)
	suite.True(result.Amount.Equal(newAmount))
	suite.True(updatedBooking.TotalReceivingAmount.Equal(decimal.NewFromInt(120000)))
	suite.True(updatedBooking.Remaining.Equal(decimal.NewFromInt(880000)))
}

func (suite *PaymentServiceTestSuite) TestUpdateFund_NoDeltaSkipsBookingWrite() {
	ctx := context.Background()
	fundID := uuid.NewString()
	fund := domain.IncomingFund{
		FundID:    fundID,
		ProjectID: suite.projectID,
		BookingID: suite.booking.BookingID,
		Reference: domain.FundPayment,
		Amount:    decimal.NewFromInt(50000),
	}
	remarks := "corrected remarks"
	req := dto.UpdateFundRequest{Remarks: &remarks}

	suite.mockFundRepo.On("FindFundByID", ctx, fundID).Return(&fund, nil).Once()
	suite.mockBookingRepo.On("FindBookingByID", ctx, suite.booking.BookingID).Return(&suite.booking, nil).Once()
	suite.expectTx(ctx)
	suite.mockFundRepo.On("UpdateFundInTx", ctx, mock.Anything, mock.AnythingOfType("domain.IncomingFund")).Return(nil).Once()

	_, err := suite.service.UpdateFund(ctx, fundID, req, suite.userID)

	suite.Require().NoError(err)
	suite.mockBookingRepo.AssertNotCalled(suite.T(), "UpdateBookingInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestDeleteFund_AdvanceRejected() {
	ctx := context.Background()
	fundID := uuid.NewString()
	fund := domain.IncomingFund{
		FundID:    fundID,
		ProjectID: suite.projectID,
		BookingID: suite.booking.BookingID,
		Reference: domain.FundPayment,
		IsAdvance: true,
		Amount:    decimal.NewFromInt(100000),
	}

	suite.mockFundRepo.On("FindFundByID", ctx, fundID).Return(&fund, nil).Once()

	err := suite.service.DeleteFund(ctx, fundID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestDeleteFund_ReversesDelta() {
	ctx := context.Background()
	fundID := uuid.NewString()
	fund := domain.IncomingFund{
		FundID:    fundID,
		ProjectID: suite.projectID,
		BookingID: suite.booking.BookingID,
		Reference: domain.FundPayment,
		Amount:    decimal.NewFromInt(30000),
	}

	suite.mockFundRepo.On("FindFundByID", ctx, fundID).Return(&fund, nil).Once()
	suite.mockBookingRepo.On("FindBookingByID", ctx, suite.booking.BookingID).Return(&suite.booking, nil).Once()
	suite.expectTx(ctx)
	suite.mockFundRepo.On("DeleteFundInTx", ctx, mock.Anything, fundID).Return(nil).Once()

	var updatedBooking domain.Booking
	suite.mockBookingRepo.On("UpdateBookingInTx", ctx, mock.Anything, mock.AnythingOfType("domain.Booking")).
		Run(func(args mock.Arguments) { updatedBooking = args.Get(2).(domain.Booking) }).
		Return(nil).Once()

	err := suite.service.DeleteFund(ctx, fundID, suite.userID)

	suite.Require().NoError(err)
	suite.True(updatedBooking.TotalReceivingAmount.Equal(decimal.NewFromInt(70000)))
	suite.True(updatedBooking.Remaining.Equal(decimal.NewFromInt(930000)))
}

func (suite *PaymentServiceTestSuite) TestCreateDeposit_ClearsPostingsAndSkipsMissing() {
	ctx := context.Background()
	presentID := uuid.NewString()
	missingID := uuid.NewString()
	req := dto.CreateDepositRequest{
		ProjectID:  suite.projectID,
		BankID:     suite.bank.AccountID,
		Amount:     decimal.NewFromInt(80000),
		Date:       time.Now().UTC(),
		PostingIDs: []string{presentID, missingID},
	}

	suite.mockAccountSvc.On("GetAccountByID", ctx, suite.bank.AccountID).Return(&suite.bank, nil).Once()
	suite.mockAccountSvc.On("FindByRole", ctx, suite.projectID, domain.RoleUndepositedFunds).Return(&suite.undeposited, nil).Once()

	suite.expectTx(ctx)
	suite.mockBankingRepo.On("InsertDepositInTx", ctx, mock.Anything, mock.AnythingOfType("domain.BankDeposit")).Return(nil).Once()
	suite.mockLedgerRepo.On("MarkPostingDepositedInTx", ctx, mock.Anything, presentID).Return(nil).Once()
	suite.mockLedgerRepo.On("MarkPostingDepositedInTx", ctx, mock.Anything, missingID).Return(apperrors.ErrNotFound).Once()

	var postings []domain.BankTransaction
	suite.mockLedgerRepo.On("InsertPostingInTx", ctx, mock.Anything, mock.AnythingOfType("domain.BankTransaction")).
		Run(func(args mock.Arguments) { postings = append(postings, args.Get(2).(domain.BankTransaction)) }).
		Return(nil).Times(2)

	deposit, err := suite.service.CreateDeposit(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(deposit)
	suite.Equal(req.PostingIDs, deposit.PostingIDs)

	suite.Require().Len(postings, 2)
	undepositedLeg := findPosting(postings, suite.undeposited.AccountID, domain.KindDeposit)
	suite.Require().NotNil(undepositedLeg)
	suite.True(undepositedLeg.Payment.Equal(req.Amount))
	suite.True(undepositedLeg.IsDeposit)
	suite.True(undepositedLeg.IsChequeClear)

	bankLeg := findPosting(postings, suite.bank.AccountID, domain.KindDeposit)
	suite.Require().NotNil(bankLeg)
	suite.True(bankLeg.Deposit.Equal(req.Amount))

	suite.mockLedgerRepo.AssertExpectations(suite.T())
	suite.mockBankingRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestUpdateDeposit_RegeneratesPair() {
	ctx := context.Background()
	depositID := uuid.NewString()
	existing := domain.BankDeposit{
		DepositID: depositID,
		ProjectID: suite.projectID,
		BankID:    suite.bank.AccountID,
		Amount:    decimal.NewFromInt(80000),
	}
	req := dto.UpdateDepositRequest{
		BankID: suite.bank.AccountID,
		Amount: decimal.NewFromInt(90000),
		Date:   time.Now().UTC(),
	}

	suite.mockBankingRepo.On("FindDepositByID", ctx, depositID).Return(&existing, nil).Once()
	suite.mockAccountSvc.On("GetAccountByID", ctx, suite.bank.AccountID).Return(&suite.bank, nil).Once()
	suite.mockAccountSvc.On("FindByRole", ctx, suite.projectID, domain.RoleUndepositedFunds).Return(&suite.undeposited, nil).Once()

	suite.expectTx(ctx)
	suite.mockBankingRepo.On("UpdateDepositInTx", ctx, mock.Anything, mock.AnythingOfType("domain.BankDeposit")).Return(nil).Once()
	ref := domain.EventRef{Table: domain.RelBankDeposit, ID: depositID}
	suite.mockLedgerRepo.On("DeletePostingsByRefInTx", ctx, mock.Anything, ref).Return(nil).Once()
	suite.mockLedgerRepo.On("InsertPostingInTx", ctx, mock.Anything, mock.AnythingOfType("domain.BankTransaction")).Return(nil).Times(2)

	deposit, err := suite.service.UpdateDeposit(ctx, depositID, req, suite.userID)

	suite.Require().NoError(err)
	suite.True(deposit.Amount.Equal(req.Amount))
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestCreateTransfer_Success() {
	ctx := context.Background()
	toBank := domain.BankAccount{
		AccountID:  uuid.NewString(),
		ProjectID:  suite.projectID,
		Name:       "Second Bank",
		MainType:   domain.Asset,
		DetailType: "Bank",
		IsActive:   true,
	}
	req := dto.CreateTransferRequest{
		ProjectID:  suite.projectID,
		FromBankID: suite.bank.AccountID,
		ToBankID:   toBank.AccountID,
		Amount:     decimal.NewFromInt(40000),
		Date:       time.Now().UTC(),
	}

	suite.mockAccountSvc.On("GetAccountByID", ctx, suite.bank.AccountID).Return(&suite.bank, nil).Once()
	suite.mockAccountSvc.On("GetAccountByID", ctx, toBank.AccountID).Return(&toBank, nil).Once()

	suite.expectTx(ctx)
	suite.mockBankingRepo.On("InsertTransferInTx", ctx, mock.Anything, mock.AnythingOfType("domain.BankTransfer")).Return(nil).Once()

	var postings []domain.BankTransaction
	suite.mockLedgerRepo.On("InsertPostingInTx", ctx, mock.Anything, mock.AnythingOfType("domain.BankTransaction")).
		Run(func(args mock.Arguments) { postings = append(postings, args.Get(2).(domain.BankTransaction)) }).
		Return(nil).Times(2)

	transfer, err := suite.service.CreateTransfer(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(transfer)

	suite.Require().Len(postings, 2)
	fromLeg := findPosting(postings, suite.bank.AccountID, domain.KindTransfer)
	suite.Require().NotNil(fromLeg)
	suite.True(fromLeg.Payment.Equal(req.Amount))

	toLeg := findPosting(postings, toBank.AccountID, domain.KindTransfer)
	suite.Require().NotNil(toLeg)
	suite.True(toLeg.Deposit.Equal(req.Amount))
}

func (suite *PaymentServiceTestSuite) TestCreateTransfer_CrossProjectRejected() {
	ctx := context.Background()
	otherBank := domain.BankAccount{
		AccountID:  uuid.NewString(),
		ProjectID:  uuid.NewString(),
		Name:       "Foreign Bank",
		MainType:   domain.Asset,
		DetailType: "Bank",
		IsActive:   true,
	}
	req := dto.CreateTransferRequest{
		ProjectID:  suite.projectID,
		FromBankID: suite.bank.AccountID,
		ToBankID:   otherBank.AccountID,
		Amount:     decimal.NewFromInt(40000),
		Date:       time.Now().UTC(),
	}

	suite.mockAccountSvc.On("GetAccountByID", ctx, suite.bank.AccountID).Return(&suite.bank, nil).Once()
	suite.mockAccountSvc.On("GetAccountByID", ctx, otherBank.AccountID).Return(&otherBank, nil).Once()

	_, err := suite.service.CreateTransfer(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestCreateTransfer_ForeignProjectBanksRejected() {
	ctx := context.Background()
	foreignProjectID := uuid.NewString()
	fromBank := domain.BankAccount{
		AccountID:  uuid.NewString(),
		ProjectID:  foreignProjectID,
		Name:       "Foreign Bank A",
		MainType:   domain.Asset,
		DetailType: "Bank",
		IsActive:   true,
	}
	toBank := domain.BankAccount{
		AccountID:  uuid.NewString(),
		ProjectID:  foreignProjectID,
		Name:       "Foreign Bank B",
		MainType:   domain.Asset,
		DetailType: "Bank",
		IsActive:   true,
	}
	// Both banks agree with each other but belong to another project.
	req := dto.CreateTransferRequest{
		ProjectID:  suite.projectID,
		FromBankID: fromBank.AccountID,
		ToBankID:   toBank.AccountID,
		Amount:     decimal.NewFromInt(40000),
		Date:       time.Now().UTC(),
	}

	suite.mockAccountSvc.On("GetAccountByID", ctx, fromBank.AccountID).Return(&fromBank, nil).Once()
	suite.mockAccountSvc.On("GetAccountByID", ctx, toBank.AccountID).Return(&toBank, nil).Once()

	_, err := suite.service.CreateTransfer(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestDeleteTransfer_RemovesPostings() {
	ctx := context.Background()
	transferID := uuid.NewString()
	existing := domain.BankTransfer{
		TransferID: transferID,
		ProjectID:  suite.projectID,
		FromBankID: suite.bank.AccountID,
	}

	suite.mockBankingRepo.On("FindTransferByID", ctx, transferID).Return(&existing, nil).Once()
	suite.expectTx(ctx)
	ref := domain.EventRef{Table: domain.RelBankTransfer, ID: transferID}
	suite.mockLedgerRepo.On("DeletePostingsByRefInTx", ctx, mock.Anything, ref).Return(nil).Once()
	suite.mockBankingRepo.On("DeleteTransferInTx", ctx, mock.Anything, transferID).Return(nil).Once()

	err := suite.service.DeleteTransfer(ctx, transferID, suite.userID)

	suite.Require().NoError(err)
	suite.mockBankingRepo.AssertExpectations(suite.T())
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func TestPaymentService(t *testing.T) {
	suite.Run(t, new(PaymentServiceTestSuite))
}

package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/EstateBooks/plot_booking_app/internal/apperrors"
	"github.com/EstateBooks/plot_booking_app/internal/core/domain"
	portssvc "github.com/EstateBooks/plot_booking_app/internal/core/ports/services"
	"github.com/EstateBooks/plot_booking_app/internal/core/services"
)

type LedgerServiceTestSuite struct {
	suite.Suite
	mockLedgerRepo *MockLedgerRepository
	service        portssvc.LedgerSvcFacade
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.service = services.NewLedgerService(suite.mockLedgerRepo)
}

func (suite *LedgerServiceTestSuite) TestGetPostingByID() {
	ctx := context.Background()
	postingID := uuid.NewString()
	posting := domain.BankTransaction{
		TransactionID: postingID,
		AccountID:     uuid.NewString(),
		Kind:          domain.KindBooking,
		Deposit:       decimal.NewFromInt(1000000),
	}

	suite.mockLedgerRepo.On("FindPostingByID", ctx, postingID).Return(&posting, nil).Once()

	result, err := suite.service.GetPostingByID(ctx, postingID)

	suite.Require().NoError(err)
	suite.Require().NotNil(result)
	suite.Equal(postingID, result.TransactionID)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestGetPostingByID_NotFound() {
	ctx := context.Background()
	postingID := uuid.NewString()

	suite.mockLedgerRepo.On("FindPostingByID", ctx, postingID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetPostingByID(ctx, postingID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *LedgerServiceTestSuite) TestListPostingsByAccount_DefaultLimit() {
	ctx := context.Background()
	projectID := uuid.NewString()
	accountID := uuid.NewString()

	suite.mockLedgerRepo.On("ListPostingsByAccount", ctx, projectID, accountID, 50, (*string)(nil)).
		Return([]domain.BankTransaction{}, nil, nil).Once()

	_, _, err := suite.service.ListPostingsByAccount(ctx, projectID, accountID, 0, nil)

	suite.Require().NoError(err)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func TestLedgerService(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}

package services

import (
	"context"

	"github.com/EstateBooks/plot_booking_app/internal/core/domain"
	"github.com/EstateBooks/plot_booking_app/internal/dto"
)

// PaymentSvcFacade owns incoming funds (booking totals maintenance) and the
// bank deposit/transfer posting pairs.
type PaymentSvcFacade interface {
	CreateFund(ctx context.Context, req dto.CreateFundRequest, creatorUserID string) (*domain.IncomingFund, error)
	UpdateFund(ctx context.Context, fundID string, req dto.UpdateFundRequest, userID string) (*domain.IncomingFund, error)
	DeleteFund(ctx context.Context, fundID string, userID string) error
	ListFundsByBooking(ctx context.Context, bookingID string) ([]domain.IncomingFund, error)

	CreateDeposit(ctx context.Context, req dto.CreateDepositRequest, creatorUserID string) (*domain.BankDeposit, error)
	UpdateDeposit(ctx context.Context, depositID string, req dto.UpdateDepositRequest, userID string) (*domain.BankDeposit, error)
	DeleteDeposit(ctx context.Context, depositID string, userID string) error

	CreateTransfer(ctx context.Context, req dto.CreateTransferRequest, creatorUserID string) (*domain.BankTransfer, error)
	UpdateTransfer(ctx context.Context, transferID string, req dto.UpdateTransferRequest, userID string) (*domain.BankTransfer, error)
	DeleteTransfer(ctx context.Context, transferID string, userID string) error
}

package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/EstateBooks/plot_booking_app/internal/apperrors"
	"github.com/EstateBooks/plot_booking_app/internal/core/domain"
	portsrepo "github.com/EstateBooks/plot_booking_app/internal/core/ports/repositories"
	portssvc "github.com/EstateBooks/plot_booking_app/internal/core/ports/services"
	"github.com/EstateBooks/plot_booking_app/internal/dto"
	"github.com/EstateBooks/plot_booking_app/internal/middleware"
)

// paymentService owns incoming funds and the bank deposit/transfer pairs.
// Funds do not post ledger rows themselves (the booking workflow owns the
// advance legs); their contract is keeping the booking's receiving totals in
// step by the signed delta of each write. Deposits and transfers each post a
// symmetric two-row pair and are regenerated wholesale on update.
type paymentService struct {
	fundRepo    portsrepo.FundRepositoryFacade
	bankingRepo portsrepo.BankingRepositoryFacade
	bookingRepo portsrepo.BookingRepositoryFacade
	projectRepo portsrepo.ProjectRepositoryFacade
	ledgerRepo  portsrepo.LedgerRepositoryWithTx
	accountSvc  portssvc.AccountSvcFacade
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(
	fundRepo portsrepo.FundRepositoryFacade,
	bankingRepo portsrepo.BankingRepositoryFacade,
	bookingRepo portsrepo.BookingRepositoryFacade,
	projectRepo portsrepo.ProjectRepositoryFacade,
	ledgerRepo portsrepo.LedgerRepositoryWithTx,
	accountSvc portssvc.AccountSvcFacade,
) portssvc.PaymentSvcFacade {
	return &paymentService{
		fundRepo:    fundRepo,
		bankingRepo: bankingRepo,
		bookingRepo: bookingRepo,
		projectRepo: projectRepo,
		ledgerRepo:  ledgerRepo,
		accountSvc:  accountSvc,
	}
}

var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

// parseFundReference validates the reference discriminator. An unknown value
// rejects the whole write.
func parseFundReference(raw string) (domain.FundReference, error) {
	switch domain.FundReference(raw) {
	case domain.FundPayment:
		return domain.FundPayment, nil
	case domain.FundRefund:
		return domain.FundRefund, nil
	default:
		return "", fmt.Errorf("%w: unknown fund reference %q", apperrors.ErrValidation, raw)
	}
}

// applyReceivingDelta shifts the booking's denormalised totals by a signed
// amount inside the caller's transaction.
func (s *paymentService) applyReceivingDelta(ctx context.Context, tx pgx.Tx, booking *domain.Booking, delta decimal.Decimal, userID string, now time.Time) error {
	booking.TotalReceivingAmount = booking.TotalReceivingAmount.Add(delta)
	booking.Remaining = booking.TotalAmount.Sub(booking.TotalReceivingAmount)
	booking.LastUpdatedAt = now
	booking.LastUpdatedBy = userID
	return s.bookingRepo.UpdateBookingInTx(ctx, tx, *booking)
}

func (s *paymentService) CreateFund(ctx context.Context, req dto.CreateFundRequest, creatorUserID string) (*domain.IncomingFund, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	reference, err := parseFundReference(req.Reference)
	if err != nil {
		return nil, err
	}
	booking, err := s.bookingRepo.FindBookingByID(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}
	project, err := s.projectRepo.FindProjectByID(ctx, booking.ProjectID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	fund := domain.IncomingFund{
		FundID:        uuid.NewString(),
		ProjectID:     booking.ProjectID,
		BookingID:     booking.BookingID,
		Reference:     reference,
		Amount:        req.Amount,
		Date:          req.Date,
		BankID:        req.BankID,
		PaymentMethod: req.PaymentMethod,
		Remarks:       req.Remarks,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	tx, err := s.ledgerRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.ledgerRepo.Rollback(ctx, tx)

	err = func() error {
		docSeq, err := s.fundRepo.NextDocumentSeqInTx(ctx, tx, booking.ProjectID)
		if err != nil {
			return err
		}
		fund.DocumentNo = fmt.Sprintf("%s-R%04d", project.Code, docSeq)

		if err := s.fundRepo.InsertFundInTx(ctx, tx, fund); err != nil {
			return err
		}
		return s.applyReceivingDelta(ctx, tx, booking, fund.SignedAmount(), creatorUserID, now)
	}()
	if err != nil {
		logger.Error("Fund creation failed", slog.String("error", err.Error()), slog.String("booking_id", req.BookingID))
		return nil, asValidation(err)
	}

	if err := s.ledgerRepo.Commit(ctx, tx); err != nil {
		return nil, asValidation(err)
	}

	logger.Info("Fund recorded", slog.String("fund_id", fund.FundID), slog.String("document_no", fund.DocumentNo))
	return &fund, nil
}

func (s *paymentService) UpdateFund(ctx context.Context, fundID string, req dto.UpdateFundRequest, userID string) (*domain.IncomingFund, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	fund, err := s.fundRepo.FindFundByID(ctx, fundID)
	if err != nil {
		return nil, err
	}
	booking, err := s.bookingRepo.FindBookingByID(ctx, fund.BookingID)
	if err != nil {
		return nil, err
	}

	oldSigned := fund.SignedAmount()
	if req.Amount != nil {
		fund.Amount = *req.Amount
	}
	if req.Date != nil {
		fund.Date = *req.Date
	}
	if req.BankID != nil {
		fund.BankID = req.BankID
	}
	if req.PaymentMethod != nil {
		fund.PaymentMethod = *req.PaymentMethod
	}
	if req.Remarks != nil {
		fund.Remarks = *req.Remarks
	}

	now := time.Now().UTC()
	fund.LastUpdatedAt = now
	fund.LastUpdatedBy = userID
	delta := fund.SignedAmount().Sub(oldSigned)

	tx, err := s.ledgerRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.ledgerRepo.Rollback(ctx, tx)

	err = func() error {
		if err := s.fundRepo.UpdateFundInTx(ctx, tx, *fund); err != nil {
			return err
		}
		if delta.IsZero() {
			return nil
		}
		return s.applyReceivingDelta(ctx, tx, booking, delta, userID, now)
	}()
	if err != nil {
		logger.Error("Fund update failed", slog.String("error", err.Error()), slog.String("fund_id", fundID))
		return nil, asValidation(err)
	}

	if err := s.ledgerRepo.Commit(ctx, tx); err != nil {
		return nil, asValidation(err)
	}

	logger.Info("Fund updated", slog.String("fund_id", fundID))
	return fund, nil
}

func (s *paymentService) DeleteFund(ctx context.Context, fundID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	fund, err := s.fundRepo.FindFundByID(ctx, fundID)
	if err != nil {
		return err
	}
	if fund.IsAdvance {
		return fmt.Errorf("%w: the advance fund is owned by its booking", apperrors.ErrConflict)
	}
	booking, err := s.bookingRepo.FindBookingByID(ctx, fund.BookingID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	tx, err := s.ledgerRepo.Begin(ctx)
	if err != nil {
		return err
	}
	defer s.ledgerRepo.Rollback(ctx, tx)

	err = func() error {
		if err := s.fundRepo.DeleteFundInTx(ctx, tx, fundID); err != nil {
			return err
		}
		return s.applyReceivingDelta(ctx, tx, booking, fund.SignedAmount().Neg(), userID, now)
	}()
	if err != nil {
		logger.Error("Fund deletion failed", slog.String("error", err.Error()), slog.String("fund_id", fundID))
		return asValidation(err)
	}

	if err := s.ledgerRepo.Commit(ctx, tx); err != nil {
		return asValidation(err)
	}

	logger.Info("Fund deleted", slog.String("fund_id", fundID))
	return nil
}

func (s *paymentService) ListFundsByBooking(ctx context.Context, bookingID string) ([]domain.IncomingFund, error) {
	return s.fundRepo.ListFundsByBooking(ctx, bookingID)
}

// depositLegs posts the symmetric deposit pair: undeposited funds paid out,
// destination bank credited.
func (s *paymentService) depositLegs(ctx context.Context, projectID string, bankID string, amount decimal.Decimal) ([]postingLeg, error) {
	bank, err := s.accountSvc.GetAccountByID(ctx, bankID)
	if err != nil {
		return nil, err
	}
	undeposited, err := s.accountSvc.FindByRole(ctx, projectID, domain.RoleUndepositedFunds)
	if err != nil {
		return nil, err
	}
	return []postingLeg{
		{Account: undeposited, Kind: domain.KindDeposit, Payment: amount, IsDeposit: true, IsChequeClear: true},
		{Account: bank, Kind: domain.KindDeposit, Deposit: amount, IsDeposit: true, IsChequeClear: true},
	}, nil
}

func (s *paymentService) CreateDeposit(ctx context.Context, req dto.CreateDepositRequest, creatorUserID string) (*domain.BankDeposit, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	legs, err := s.depositLegs(ctx, req.ProjectID, req.BankID, req.Amount)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	deposit := domain.BankDeposit{
		DepositID:  uuid.NewString(),
		ProjectID:  req.ProjectID,
		BankID:     req.BankID,
		Amount:     req.Amount,
		Date:       req.Date,
		PostingIDs: req.PostingIDs,
		Remarks:    req.Remarks,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	tx, err := s.ledgerRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.ledgerRepo.Rollback(ctx, tx)

	err = func() error {
		if err := s.bankingRepo.InsertDepositInTx(ctx, tx, deposit); err != nil {
			return err
		}

		// Flip the referenced undeposited postings to deposited. A vanished
		// posting is reported and skipped, not fatal.
		for _, postingID := range req.PostingIDs {
			if err := s.ledgerRepo.MarkPostingDepositedInTx(ctx, tx, postingID); err != nil {
				if errors.Is(err, apperrors.ErrNotFound) {
					logger.Warn("Deposited posting not found, skipping", slog.String("posting_id", postingID))
					continue
				}
				return err
			}
		}

		ref := domain.EventRef{Table: domain.RelBankDeposit, ID: deposit.DepositID}
		return insertLegs(ctx, tx, s.ledgerRepo, legs, req.ProjectID, ref, req.Date, creatorUserID, now)
	}()
	if err != nil {
		logger.Error("Deposit creation failed", slog.String("error", err.Error()), slog.String("project_id", req.ProjectID))
		return nil, asValidation(err)
	}

	if err := s.ledgerRepo.Commit(ctx, tx); err != nil {
		return nil, asValidation(err)
	}

	logger.Info("Deposit created", slog.String("deposit_id", deposit.DepositID))
	return &deposit, nil
}

func (s *paymentService) UpdateDeposit(ctx context.Context, depositID string, req dto.UpdateDepositRequest, userID string) (*domain.BankDeposit, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	deposit, err := s.bankingRepo.FindDepositByID(ctx, depositID)
	if err != nil {
		return nil, err
	}

	deposit.BankID = req.BankID
	deposit.Amount = req.Amount
	deposit.Date = req.Date
	deposit.Remarks = req.Remarks
	now := time.Now().UTC()
	deposit.LastUpdatedAt = now
	deposit.LastUpdatedBy = userID

	legs, err := s.depositLegs(ctx, deposit.ProjectID, deposit.BankID, deposit.Amount)
	if err != nil {
		return nil, err
	}

	tx, err := s.ledgerRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.ledgerRepo.Rollback(ctx, tx)

	err = func() error {
		if err := s.bankingRepo.UpdateDepositInTx(ctx, tx, *deposit); err != nil {
			return err
		}
		ref := domain.EventRef{Table: domain.RelBankDeposit, ID: deposit.DepositID}
		if err := s.ledgerRepo.DeletePostingsByRefInTx(ctx, tx, ref); err != nil {
			return err
		}
		return insertLegs(ctx, tx, s.ledgerRepo, legs, deposit.ProjectID, ref, deposit.Date, userID, now)
	}()
	if err != nil {
		logger.Error("Deposit update failed", slog.String("error", err.Error()), slog.String("deposit_id", depositID))
		return nil, asValidation(err)
	}

	if err := s.ledgerRepo.Commit(ctx, tx); err != nil {
		return nil, asValidation(err)
	}

	logger.Info("Deposit updated", slog.String("deposit_id", depositID))
	return deposit, nil
}

func (s *paymentService) DeleteDeposit(ctx context.Context, depositID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.bankingRepo.FindDepositByID(ctx, depositID); err != nil {
		return err
	}

	tx, err := s.ledgerRepo.Begin(ctx)
	if err != nil {
		return err
	}
	defer s.ledgerRepo.Rollback(ctx, tx)

	err = func() error {
		ref := domain.EventRef{Table: domain.RelBankDeposit, ID: depositID}
		if err := s.ledgerRepo.DeletePostingsByRefInTx(ctx, tx, ref); err != nil {
			return err
		}
		return s.bankingRepo.DeleteDepositInTx(ctx, tx, depositID)
	}()
	if err != nil {
		logger.Error("Deposit deletion failed", slog.String("error", err.Error()), slog.String("deposit_id", depositID))
		return asValidation(err)
	}

	if err := s.ledgerRepo.Commit(ctx, tx); err != nil {
		return asValidation(err)
	}

	logger.Info("Deposit deleted", slog.String("deposit_id", depositID))
	return nil
}

// transferLegs posts the symmetric transfer pair: source bank paid,
// destination bank credited.
func (s *paymentService) transferLegs(ctx context.Context, projectID, fromBankID, toBankID string, amount decimal.Decimal) ([]postingLeg, error) {
	from, err := s.accountSvc.GetAccountByID(ctx, fromBankID)
	if err != nil {
		return nil, err
	}
	to, err := s.accountSvc.GetAccountByID(ctx, toBankID)
	if err != nil {
		return nil, err
	}
	if from.ProjectID != to.ProjectID {
		return nil, fmt.Errorf("%w: transfer banks belong to different projects", apperrors.ErrValidation)
	}
	if from.ProjectID != projectID {
		return nil, fmt.Errorf("%w: transfer banks do not belong to the project", apperrors.ErrValidation)
	}
	return []postingLeg{
		{Account: from, Kind: domain.KindTransfer, Payment: amount, IsDeposit: true, IsChequeClear: true},
		{Account: to, Kind: domain.KindTransfer, Deposit: amount, IsDeposit: true, IsChequeClear: true},
	}, nil
}

func (s *paymentService) CreateTransfer(ctx context.Context, req dto.CreateTransferRequest, creatorUserID string) (*domain.BankTransfer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	legs, err := s.transferLegs(ctx, req.ProjectID, req.FromBankID, req.ToBankID, req.Amount)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	transfer := domain.BankTransfer{
		TransferID: uuid.NewString(),
		ProjectID:  req.ProjectID,
		FromBankID: req.FromBankID,
		ToBankID:   req.ToBankID,
		Amount:     req.Amount,
		Date:       req.Date,
		Remarks:    req.Remarks,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	tx, err := s.ledgerRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.ledgerRepo.Rollback(ctx, tx)

	err = func() error {
		if err := s.bankingRepo.InsertTransferInTx(ctx, tx, transfer); err != nil {
			return err
		}
		ref := domain.EventRef{Table: domain.RelBankTransfer, ID: transfer.TransferID}
		return insertLegs(ctx, tx, s.ledgerRepo, legs, req.ProjectID, ref, req.Date, creatorUserID, now)
	}()
	if err != nil {
		logger.Error("Transfer creation failed", slog.String("error", err.Error()), slog.String("project_id", req.ProjectID))
		return nil, asValidation(err)
	}

	if err := s.ledgerRepo.Commit(ctx, tx); err != nil {
		return nil, asValidation(err)
	}

	logger.Info("Transfer created", slog.String("transfer_id", transfer.TransferID))
	return &transfer, nil
}

func (s *paymentService) UpdateTransfer(ctx context.Context, transferID string, req dto.UpdateTransferRequest, userID string) (*domain.BankTransfer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	transfer, err := s.bankingRepo.FindTransferByID(ctx, transferID)
	if err != nil {
		return nil, err
	}

	transfer.FromBankID = req.FromBankID
	transfer.ToBankID = req.ToBankID
	transfer.Amount = req.Amount
	transfer.Date = req.Date
	transfer.Remarks = req.Remarks
	now := time.Now().UTC()
	transfer.LastUpdatedAt = now
	transfer.LastUpdatedBy = userID

	legs, err := s.transferLegs(ctx, transfer.ProjectID, transfer.FromBankID, transfer.ToBankID, transfer.Amount)
	if err != nil {
		return nil, err
	}

	tx, err := s.ledgerRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.ledgerRepo.Rollback(ctx, tx)

	err = func() error {
		if err := s.bankingRepo.UpdateTransferInTx(ctx, tx, *transfer); err != nil {
			return err
		}
		ref := domain.EventRef{Table: domain.RelBankTransfer, ID: transfer.TransferID}
		if err := s.ledgerRepo.DeletePostingsByRefInTx(ctx, tx, ref); err != nil {
			return err
		}
		return insertLegs(ctx, tx, s.ledgerRepo, legs, transfer.ProjectID, ref, transfer.Date, userID, now)
	}()
	if err != nil {
		logger.Error("Transfer update failed", slog.String("error", err.Error()), slog.String("transfer_id", transferID))
		return nil, asValidation(err)
	}

	if err := s.ledgerRepo.Commit(ctx, tx); err != nil {
		return nil, asValidation(err)
	}

	logger.Info("Transfer updated", slog.String("transfer_id", transferID))
	return transfer, nil
}

func (s *paymentService) DeleteTransfer(ctx context.Context, transferID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.bankingRepo.FindTransferByID(ctx, transferID); err != nil {
		return err
	}

	tx, err := s.ledgerRepo.Begin(ctx)
	if err != nil {
		return err
	}
	defer s.ledgerRepo.Rollback(ctx, tx)

	err = func() error {
		ref := domain.EventRef{Table: domain.RelBankTransfer, ID: transferID}
		if err := s.ledgerRepo.DeletePostingsByRefInTx(ctx, tx, ref); err != nil {
			return err
		}
		return s.bankingRepo.DeleteTransferInTx(ctx, tx, transferID)
	}()
	if err != nil {
		logger.Error("Transfer deletion failed", slog.String("error", err.Error()), slog.String("transfer_id", transferID))
		return asValidation(err)
	}

	if err := s.ledgerRepo.Commit(ctx, tx); err != nil {
		return asValidation(err)
	}

	logger.Info("Transfer deleted", slog.String("transfer_id", transferID))
	return nil
}

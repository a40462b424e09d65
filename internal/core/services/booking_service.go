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

var (
	ErrPlotNotAvailable = errors.New("plot is not available for booking")
	ErrTokenNotPending  = errors.New("token is not pending")
	ErrBookingClosed    = errors.New("booking is closed")
)

// bookingService owns the booking lifecycle and derives the booking posting
// set. Each operation is one atomic unit of work: booking row, plot statuses,
// advance fund and every ledger leg commit or roll back together.
type bookingService struct {
	bookingRepo  portsrepo.BookingRepositoryFacade
	plotRepo     portsrepo.PlotRepositoryFacade
	tokenRepo    portsrepo.TokenRepositoryFacade
	fundRepo     portsrepo.FundRepositoryFacade
	projectRepo  portsrepo.ProjectRepositoryFacade
	customerRepo portsrepo.CustomerRepositoryFacade
	ledgerRepo   portsrepo.LedgerRepositoryWithTx
	accountSvc   portssvc.AccountSvcFacade
}

// NewBookingService creates a new BookingService.
func NewBookingService(
	bookingRepo portsrepo.BookingRepositoryFacade,
	plotRepo portsrepo.PlotRepositoryFacade,
	tokenRepo portsrepo.TokenRepositoryFacade,
	fundRepo portsrepo.FundRepositoryFacade,
	projectRepo portsrepo.ProjectRepositoryFacade,
	customerRepo portsrepo.CustomerRepositoryFacade,
	ledgerRepo portsrepo.LedgerRepositoryWithTx,
	accountSvc portssvc.AccountSvcFacade,
) portssvc.BookingSvcFacade {
	return &bookingService{
		bookingRepo:  bookingRepo,
		plotRepo:     plotRepo,
		tokenRepo:    tokenRepo,
		fundRepo:     fundRepo,
		projectRepo:  projectRepo,
		customerRepo: customerRepo,
		ledgerRepo:   ledgerRepo,
		accountSvc:   accountSvc,
	}
}

var _ portssvc.BookingSvcFacade = (*bookingService)(nil)

// bookingLegs derives the base posting legs of a booking. Legs whose role is
// not configured stay nil-accounted and are skipped at insert time. The
// Account_Receivable and Sale_Account legs are deposited with the same sign
// deliberately; this schema is not a classical balanced debit/credit pair and
// downstream reports rely on the asymmetry.
func (s *bookingService) bookingLegs(ctx context.Context, accounts *projectAccounts, totalAmount, plotCost decimal.Decimal) ([]postingLeg, error) {
	receivable, err := accounts.get(ctx, domain.RoleAccountReceivable)
	if err != nil {
		return nil, err
	}
	sale, err := accounts.get(ctx, domain.RoleSaleAccount)
	if err != nil {
		return nil, err
	}
	cogs, err := accounts.get(ctx, domain.RoleCostOfGoodSold)
	if err != nil {
		return nil, err
	}
	inventory, err := accounts.get(ctx, domain.RoleLandInventory)
	if err != nil {
		return nil, err
	}

	return []postingLeg{
		{Account: receivable, Kind: domain.KindBooking, Deposit: totalAmount},
		{Account: sale, Kind: domain.KindBooking, Deposit: totalAmount},
		{Account: cogs, Kind: domain.KindBooking, Deposit: plotCost},
		{Account: inventory, Kind: domain.KindBooking, Payment: plotCost},
	}, nil
}

// dealerLegs derives the dealer commission pair. Both legs are issued only
// when both roles resolve.
func (s *bookingService) dealerLegs(ctx context.Context, accounts *projectAccounts, amount decimal.Decimal) ([]postingLeg, error) {
	if !amount.IsPositive() {
		return nil, nil
	}
	payable, err := accounts.get(ctx, domain.RoleAccountPayable)
	if err != nil {
		return nil, err
	}
	dealerExpense, err := accounts.get(ctx, domain.RoleDealerExpense)
	if err != nil {
		return nil, err
	}
	if payable == nil || dealerExpense == nil {
		return nil, nil
	}
	return []postingLeg{
		{Account: payable, Kind: domain.KindDealerComission, Deposit: amount},
		{Account: dealerExpense, Kind: domain.KindDealerComission, Deposit: amount},
	}, nil
}

// loadPlots fetches and validates the plots of a booking request.
func (s *bookingService) loadPlots(ctx context.Context, projectID string, plotIDs []string, allowReserved bool) ([]domain.Plot, error) {
	plots, err := s.plotRepo.FindPlotsByIDs(ctx, plotIDs)
	if err != nil {
		return nil, err
	}
	if len(plots) != len(plotIDs) {
		return nil, fmt.Errorf("%w: one or more plots do not exist", apperrors.ErrNotFound)
	}
	for _, plot := range plots {
		if plot.ProjectID != projectID {
			return nil, fmt.Errorf("%w: plot %s belongs to a different project", apperrors.ErrValidation, plot.PlotID)
		}
		if plot.Status == domain.PlotSold {
			return nil, fmt.Errorf("%w: plot %s", ErrPlotNotAvailable, plot.Number)
		}
		if plot.Status == domain.PlotReserved && !allowReserved {
			return nil, fmt.Errorf("%w: plot %s is reserved by a token", ErrPlotNotAvailable, plot.Number)
		}
	}
	return plots, nil
}

func (s *bookingService) CreateBooking(ctx context.Context, req dto.CreateBookingRequest, creatorUserID string) (*domain.Booking, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	project, err := s.projectRepo.FindProjectByID(ctx, req.ProjectID)
	if err != nil {
		return nil, err
	}
	if _, err := s.checkCustomer(ctx, req.ProjectID, req.CustomerID); err != nil {
		return nil, err
	}

	tokenAmount := decimal.Zero
	var token *domain.Token
	if req.TokenID != nil {
		token, err = s.tokenRepo.FindTokenByID(ctx, *req.TokenID)
		if err != nil {
			return nil, err
		}
		if token.Status != domain.TokenPending {
			return nil, fmt.Errorf("%w: status is %s", ErrTokenNotPending, token.Status)
		}
		tokenAmount = token.Amount
	}

	plots, err := s.loadPlots(ctx, req.ProjectID, req.PlotIDs, token != nil)
	if err != nil {
		return nil, err
	}
	plotCost := domain.SumPlotCost(plots)

	if req.Advance.IsNegative() || req.DealerComissionAmt.IsNegative() {
		return nil, fmt.Errorf("%w: amounts must not be negative", apperrors.ErrValidation)
	}

	var advanceBank *domain.BankAccount
	if req.Advance.IsPositive() && req.AdvanceBankID != nil {
		advanceBank, err = s.accountSvc.GetAccountByID(ctx, *req.AdvanceBankID)
		if err != nil {
			return nil, err
		}
	}

	accounts := newProjectAccounts(s.accountSvc, req.ProjectID)
	baseLegs, err := s.bookingLegs(ctx, accounts, req.TotalAmount, plotCost)
	if err != nil {
		return nil, err
	}
	dealerLegs, err := s.dealerLegs(ctx, accounts, req.DealerComissionAmt)
	if err != nil {
		return nil, err
	}
	advanceLegs, err := s.advanceLegs(ctx, accounts, req.Advance, advanceBank, req.AdvancePaymentMethod)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	receiving := req.Advance.Add(tokenAmount)
	booking := domain.Booking{
		BookingID:            uuid.NewString(),
		ProjectID:            req.ProjectID,
		CustomerID:           req.CustomerID,
		PlotIDs:              req.PlotIDs,
		TokenID:              req.TokenID,
		BookingDate:          req.BookingDate,
		TotalAmount:          req.TotalAmount,
		Advance:              req.Advance,
		AdvanceBankID:        req.AdvanceBankID,
		AdvancePaymentMethod: req.AdvancePaymentMethod,
		DealerName:           req.DealerName,
		DealerComissionAmt:   req.DealerComissionAmt,
		TotalReceivingAmount: receiving,
		Remaining:            req.TotalAmount.Sub(receiving),
		Status:               domain.BookingActive,
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
		seq, err := s.bookingRepo.NextBookingSeqInTx(ctx, tx, req.ProjectID)
		if err != nil {
			return err
		}
		booking.BookingNo = fmt.Sprintf("%s-%03d", project.Code, seq)

		if err := s.bookingRepo.InsertBookingInTx(ctx, tx, booking); err != nil {
			return err
		}
		if err := s.plotRepo.UpdatePlotStatusInTx(ctx, tx, req.PlotIDs, domain.PlotSold, creatorUserID); err != nil {
			return err
		}
		if token != nil {
			if err := s.tokenRepo.UpdateTokenStatusInTx(ctx, tx, token.TokenID, domain.TokenAccepted, creatorUserID); err != nil {
				return err
			}
		}

		if req.Advance.IsPositive() {
			docSeq, err := s.fundRepo.NextDocumentSeqInTx(ctx, tx, req.ProjectID)
			if err != nil {
				return err
			}
			fund := domain.IncomingFund{
				FundID:        uuid.NewString(),
				DocumentNo:    fmt.Sprintf("%s-R%04d", project.Code, docSeq),
				ProjectID:     req.ProjectID,
				BookingID:     booking.BookingID,
				Reference:     domain.FundPayment,
				IsAdvance:     true,
				Amount:        req.Advance,
				Date:          req.BookingDate,
				BankID:        req.AdvanceBankID,
				PaymentMethod: req.AdvancePaymentMethod,
				AuditFields:   booking.AuditFields,
			}
			if err := s.fundRepo.InsertFundInTx(ctx, tx, fund); err != nil {
				return err
			}
		}

		ref := domain.EventRef{Table: domain.RelBooking, ID: booking.BookingID}
		legs := append(append(baseLegs, advanceLegs...), dealerLegs...)
		return insertLegs(ctx, tx, s.ledgerRepo, legs, req.ProjectID, ref, req.BookingDate, creatorUserID, now)
	}()
	if err != nil {
		logger.Error("Booking creation failed", slog.String("error", err.Error()), slog.String("project_id", req.ProjectID))
		return nil, asValidation(err)
	}

	if err := s.ledgerRepo.Commit(ctx, tx); err != nil {
		return nil, asValidation(err)
	}

	logger.Info("Booking created", slog.String("booking_id", booking.BookingID), slog.String("booking_no", booking.BookingNo))
	return &booking, nil
}

// advanceLegs derives the two Booking_Advance legs: the receivable is paid
// down and the advance bank receives the funds.
func (s *bookingService) advanceLegs(ctx context.Context, accounts *projectAccounts, advance decimal.Decimal, advanceBank *domain.BankAccount, paymentMethod string) ([]postingLeg, error) {
	if !advance.IsPositive() {
		return nil, nil
	}
	receivable, err := accounts.get(ctx, domain.RoleAccountReceivable)
	if err != nil {
		return nil, err
	}
	legs := []postingLeg{}
	if receivable != nil {
		legs = append(legs, postingLeg{Account: receivable, Kind: domain.KindBookingAdvance, Payment: advance})
	}
	if advanceBank != nil {
		isDeposit, isChequeClear := receivedFlags(advanceBank, paymentMethod)
		legs = append(legs, postingLeg{
			Account:       advanceBank,
			Kind:          domain.KindBookingAdvance,
			Deposit:       advance,
			IsDeposit:     isDeposit,
			IsChequeClear: isChequeClear,
		})
	}
	return legs, nil
}

func (s *bookingService) UpdateBooking(ctx context.Context, bookingID string, req dto.UpdateBookingRequest, userID string) (*domain.Booking, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	booking, err := s.bookingRepo.FindBookingByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status == domain.BookingClosed {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrConflict, ErrBookingClosed)
	}

	oldPlotIDs := booking.PlotIDs
	applyBookingUpdate(booking, req)

	plots, err := s.plotsForUpdate(ctx, booking, oldPlotIDs, req.PlotIDs)
	if err != nil {
		return nil, err
	}
	plotCost := domain.SumPlotCost(plots)

	var newAdvanceBank *domain.BankAccount
	if booking.AdvanceBankID != nil {
		newAdvanceBank, err = s.accountSvc.GetAccountByID(ctx, *booking.AdvanceBankID)
		if err != nil {
			return nil, err
		}
	}

	accounts := newProjectAccounts(s.accountSvc, booking.ProjectID)
	baseLegs, err := s.bookingLegs(ctx, accounts, booking.TotalAmount, plotCost)
	if err != nil {
		return nil, err
	}
	dealerLegs, err := s.dealerLegs(ctx, accounts, booking.DealerComissionAmt)
	if err != nil {
		return nil, err
	}
	receivable, err := accounts.get(ctx, domain.RoleAccountReceivable)
	if err != nil {
		return nil, err
	}

	tokenAmount := decimal.Zero
	if booking.TokenID != nil {
		token, err := s.tokenRepo.FindTokenByID(ctx, *booking.TokenID)
		if err != nil {
			return nil, err
		}
		tokenAmount = token.Amount
	}

	now := time.Now().UTC()
	booking.LastUpdatedAt = now
	booking.LastUpdatedBy = userID
	ref := domain.EventRef{Table: domain.RelBooking, ID: booking.BookingID}

	tx, err := s.ledgerRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.ledgerRepo.Rollback(ctx, tx)

	err = func() error {
		if err := s.applyPlotSwap(ctx, tx, oldPlotIDs, booking.PlotIDs, userID); err != nil {
			return err
		}

		// Base and dealer legs are recomputed in place; row ids survive so
		// bank-deposit detail links stay valid.
		for _, leg := range append(baseLegs, dealerLegs...) {
			if leg.Account == nil {
				continue
			}
			if _, err := upsertLeg(ctx, tx, s.ledgerRepo, leg, booking.ProjectID, ref, booking.BookingDate, userID, now); err != nil {
				return err
			}
		}

		if booking.Advance.IsPositive() {
			if receivable != nil {
				leg := postingLeg{Account: receivable, Kind: domain.KindBookingAdvance, Payment: booking.Advance}
				if _, err := upsertLeg(ctx, tx, s.ledgerRepo, leg, booking.ProjectID, ref, booking.BookingDate, userID, now); err != nil {
					return err
				}
			}
			if err := s.updateAdvanceBankLeg(ctx, tx, booking, receivable, newAdvanceBank, ref, userID, now); err != nil {
				return err
			}
			if err := s.syncAdvanceFund(ctx, tx, booking, userID, now); err != nil {
				return err
			}
		}

		fundSum, err := s.fundRepo.SumFundsByBooking(ctx, booking.BookingID)
		if err != nil {
			return err
		}
		booking.TotalReceivingAmount = tokenAmount.Add(fundSum)
		booking.Remaining = booking.TotalAmount.Sub(booking.TotalReceivingAmount)

		return s.bookingRepo.UpdateBookingInTx(ctx, tx, *booking)
	}()
	if err != nil {
		logger.Error("Booking update failed", slog.String("error", err.Error()), slog.String("booking_id", bookingID))
		return nil, asValidation(err)
	}

	if err := s.ledgerRepo.Commit(ctx, tx); err != nil {
		return nil, asValidation(err)
	}

	logger.Info("Booking updated", slog.String("booking_id", bookingID))
	return booking, nil
}

// updateAdvanceBankLeg recomputes the bank-side Booking_Advance leg. The bank
// may have changed since creation, so the leg is located by (kind, ref)
// excluding the receivable account and re-pointed at the new bank; is_deposit
// follows the bank-change rule and is_cheque_clear follows the method.
func (s *bookingService) updateAdvanceBankLeg(ctx context.Context, tx pgx.Tx, booking *domain.Booking, receivable *domain.BankAccount, newBank *domain.BankAccount, ref domain.EventRef, userID string, now time.Time) error {
	if newBank == nil {
		return nil
	}
	excludeAccountID := ""
	if receivable != nil {
		excludeAccountID = receivable.AccountID
	}
	existing, err := s.ledgerRepo.FindKindPostingForUpdateInTx(ctx, tx, booking.ProjectID, domain.KindBookingAdvance, ref, excludeAccountID)
	if err != nil {
		return err
	}

	isChequeClear := booking.AdvancePaymentMethod != domain.PaymentMethodCheque
	if existing == nil {
		leg := postingLeg{
			Account:       newBank,
			Kind:          domain.KindBookingAdvance,
			Deposit:       booking.Advance,
			IsDeposit:     !newBank.IsUndepositedFunds(),
			IsChequeClear: isChequeClear,
		}
		return s.ledgerRepo.InsertPostingInTx(ctx, tx, leg.toPosting(booking.ProjectID, ref, booking.BookingDate, userID, now))
	}

	var oldBank *domain.BankAccount
	if existing.AccountID != newBank.AccountID {
		oldBank, err = s.accountSvc.GetAccountByID(ctx, existing.AccountID)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
	}

	existing.AccountID = newBank.AccountID
	existing.Deposit = booking.Advance
	existing.Payment = decimal.Zero
	existing.TransactionDate = booking.BookingDate
	existing.IsDeposit = recomputeIsDeposit(existing.IsDeposit, oldBank, newBank)
	existing.IsChequeClear = isChequeClear
	existing.LastUpdatedAt = now
	existing.LastUpdatedBy = userID
	return s.ledgerRepo.UpdatePostingInTx(ctx, tx, *existing)
}

// syncAdvanceFund keeps the advance-flagged IncomingFund row aligned with the
// booking's advance amount and bank.
func (s *bookingService) syncAdvanceFund(ctx context.Context, tx pgx.Tx, booking *domain.Booking, userID string, now time.Time) error {
	funds, err := s.fundRepo.ListFundsByBooking(ctx, booking.BookingID)
	if err != nil {
		return err
	}
	for i := range funds {
		if !funds[i].IsAdvance {
			continue
		}
		fund := funds[i]
		fund.Amount = booking.Advance
		fund.Date = booking.BookingDate
		fund.BankID = booking.AdvanceBankID
		fund.PaymentMethod = booking.AdvancePaymentMethod
		fund.LastUpdatedAt = now
		fund.LastUpdatedBy = userID
		return s.fundRepo.UpdateFundInTx(ctx, tx, fund)
	}

	// No advance fund exists; the advance was added after creation, so mint
	// the document here the same way CreateBooking does.
	project, err := s.projectRepo.FindProjectByID(ctx, booking.ProjectID)
	if err != nil {
		return err
	}
	docSeq, err := s.fundRepo.NextDocumentSeqInTx(ctx, tx, booking.ProjectID)
	if err != nil {
		return err
	}
	fund := domain.IncomingFund{
		FundID:        uuid.NewString(),
		DocumentNo:    fmt.Sprintf("%s-R%04d", project.Code, docSeq),
		ProjectID:     booking.ProjectID,
		BookingID:     booking.BookingID,
		Reference:     domain.FundPayment,
		IsAdvance:     true,
		Amount:        booking.Advance,
		Date:          booking.BookingDate,
		BankID:        booking.AdvanceBankID,
		PaymentMethod: booking.AdvancePaymentMethod,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	return s.fundRepo.InsertFundInTx(ctx, tx, fund)
}

// plotsForUpdate returns the plots the booking holds after the update,
// validating any newly added plots.
func (s *bookingService) plotsForUpdate(ctx context.Context, booking *domain.Booking, oldPlotIDs, newPlotIDs []string) ([]domain.Plot, error) {
	if newPlotIDs == nil {
		return s.plotRepo.FindPlotsByIDs(ctx, oldPlotIDs)
	}
	plots, err := s.plotRepo.FindPlotsByIDs(ctx, newPlotIDs)
	if err != nil {
		return nil, err
	}
	if len(plots) != len(newPlotIDs) {
		return nil, fmt.Errorf("%w: one or more plots do not exist", apperrors.ErrNotFound)
	}
	held := make(map[string]struct{}, len(oldPlotIDs))
	for _, id := range oldPlotIDs {
		held[id] = struct{}{}
	}
	for _, plot := range plots {
		if _, ok := held[plot.PlotID]; ok {
			continue
		}
		if plot.ProjectID != booking.ProjectID {
			return nil, fmt.Errorf("%w: plot %s belongs to a different project", apperrors.ErrValidation, plot.PlotID)
		}
		if plot.Status != domain.PlotActive {
			return nil, fmt.Errorf("%w: plot %s", ErrPlotNotAvailable, plot.Number)
		}
	}
	return plots, nil
}

// applyPlotSwap releases removed plots and claims added ones.
func (s *bookingService) applyPlotSwap(ctx context.Context, tx pgx.Tx, oldPlotIDs, newPlotIDs []string, userID string) error {
	oldSet := make(map[string]struct{}, len(oldPlotIDs))
	for _, id := range oldPlotIDs {
		oldSet[id] = struct{}{}
	}
	newSet := make(map[string]struct{}, len(newPlotIDs))
	for _, id := range newPlotIDs {
		newSet[id] = struct{}{}
	}

	var released, claimed []string
	for _, id := range oldPlotIDs {
		if _, ok := newSet[id]; !ok {
			released = append(released, id)
		}
	}
	for _, id := range newPlotIDs {
		if _, ok := oldSet[id]; !ok {
			claimed = append(claimed, id)
		}
	}

	if len(released) > 0 {
		if err := s.plotRepo.UpdatePlotStatusInTx(ctx, tx, released, domain.PlotActive, userID); err != nil {
			return err
		}
	}
	if len(claimed) > 0 {
		if err := s.plotRepo.UpdatePlotStatusInTx(ctx, tx, claimed, domain.PlotSold, userID); err != nil {
			return err
		}
	}
	return nil
}

func (s *bookingService) DeleteBooking(ctx context.Context, bookingID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	booking, err := s.bookingRepo.FindBookingByID(ctx, bookingID)
	if err != nil {
		return err
	}

	tx, err := s.ledgerRepo.Begin(ctx)
	if err != nil {
		return err
	}
	defer s.ledgerRepo.Rollback(ctx, tx)

	err = func() error {
		ref := domain.EventRef{Table: domain.RelBooking, ID: bookingID}
		if err := s.ledgerRepo.DeletePostingsByRefInTx(ctx, tx, ref); err != nil {
			return err
		}
		if len(booking.PlotIDs) > 0 {
			if err := s.plotRepo.UpdatePlotStatusInTx(ctx, tx, booking.PlotIDs, domain.PlotActive, userID); err != nil {
				return err
			}
		}
		return s.bookingRepo.DeleteBookingInTx(ctx, tx, bookingID)
	}()
	if err != nil {
		logger.Error("Booking deletion failed", slog.String("error", err.Error()), slog.String("booking_id", bookingID))
		return asValidation(err)
	}

	if err := s.ledgerRepo.Commit(ctx, tx); err != nil {
		return asValidation(err)
	}

	logger.Info("Booking deleted", slog.String("booking_id", bookingID))
	return nil
}

func (s *bookingService) GetBookingByID(ctx context.Context, bookingID string) (*domain.Booking, error) {
	return s.bookingRepo.FindBookingByID(ctx, bookingID)
}

func (s *bookingService) ListBookings(ctx context.Context, projectID string, limit int, nextToken *string) ([]domain.Booking, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.bookingRepo.ListBookingsByProject(ctx, projectID, limit, nextToken)
}

// checkCustomer verifies the customer exists within the project.
func (s *bookingService) checkCustomer(ctx context.Context, projectID, customerID string) (*domain.Customer, error) {
	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer.ProjectID != projectID {
		return nil, fmt.Errorf("%w: customer belongs to a different project", apperrors.ErrValidation)
	}
	return customer, nil
}

// applyBookingUpdate copies the provided fields onto the booking.
func applyBookingUpdate(booking *domain.Booking, req dto.UpdateBookingRequest) {
	if req.PlotIDs != nil {
		booking.PlotIDs = req.PlotIDs
	}
	if req.BookingDate != nil {
		booking.BookingDate = *req.BookingDate
	}
	if req.TotalAmount != nil {
		booking.TotalAmount = *req.TotalAmount
	}
	if req.Advance != nil {
		booking.Advance = *req.Advance
	}
	if req.AdvanceBankID != nil {
		booking.AdvanceBankID = req.AdvanceBankID
	}
	if req.AdvancePaymentMethod != nil {
		booking.AdvancePaymentMethod = *req.AdvancePaymentMethod
	}
	if req.DealerName != nil {
		booking.DealerName = *req.DealerName
	}
	if req.DealerComissionAmt != nil {
		booking.DealerComissionAmt = *req.DealerComissionAmt
	}
}

package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/EstateBooks/plot_booking_app/internal/apperrors"
	"github.com/EstateBooks/plot_booking_app/internal/core/domain"
	portsrepo "github.com/EstateBooks/plot_booking_app/internal/core/ports/repositories"
	portssvc "github.com/EstateBooks/plot_booking_app/internal/core/ports/services"
	"github.com/EstateBooks/plot_booking_app/internal/dto"
	"github.com/EstateBooks/plot_booking_app/internal/middleware"
)

// resaleService closes a booking and posts the fixed closing sequence. Unlike
// bookings and tokens, resale postings are never referenced externally, so
// updates purge and regenerate the whole set instead of patching rows.
type resaleService struct {
	resaleRepo  portsrepo.ResaleRepositoryFacade
	bookingRepo portsrepo.BookingRepositoryFacade
	plotRepo    portsrepo.PlotRepositoryFacade
	ledgerRepo  portsrepo.LedgerRepositoryWithTx
	accountSvc  portssvc.AccountSvcFacade
}

// NewResaleService creates a new ResaleService.
func NewResaleService(
	resaleRepo portsrepo.ResaleRepositoryFacade,
	bookingRepo portsrepo.BookingRepositoryFacade,
	plotRepo portsrepo.PlotRepositoryFacade,
	ledgerRepo portsrepo.LedgerRepositoryWithTx,
	accountSvc portssvc.AccountSvcFacade,
) portssvc.ResaleSvcFacade {
	return &resaleService{
		resaleRepo:  resaleRepo,
		bookingRepo: bookingRepo,
		plotRepo:    plotRepo,
		ledgerRepo:  ledgerRepo,
		accountSvc:  accountSvc,
	}
}

var _ portssvc.ResaleSvcFacade = (*resaleService)(nil)

// resaleLegs derives the closing sequence in its fixed order. The first slot
// carries the paid/received difference into the extra-refund expense or
// income account; the remainder unwinds the booking's original legs.
func (s *resaleService) resaleLegs(ctx context.Context, accounts *projectAccounts, resale domain.PlotResale, bookingTotal, plotCost decimal.Decimal) ([]postingLeg, error) {
	var legs []postingLeg

	switch cmp := resale.CompanyAmountPaid.Cmp(resale.AmountReceived); {
	case cmp > 0:
		expense, err := accounts.get(ctx, domain.RoleExtraRefundExpense)
		if err != nil {
			return nil, err
		}
		legs = append(legs, postingLeg{Account: expense, Kind: domain.KindCloseBooking, Deposit: resale.CompanyAmountPaid.Sub(resale.AmountReceived)})
	case cmp < 0:
		income, err := accounts.get(ctx, domain.RoleExtraRefundIncome)
		if err != nil {
			return nil, err
		}
		legs = append(legs, postingLeg{Account: income, Kind: domain.KindCloseBooking, Deposit: resale.AmountReceived.Sub(resale.CompanyAmountPaid)})
	}

	payable, err := accounts.get(ctx, domain.RoleAccountPayable)
	if err != nil {
		return nil, err
	}
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

	legs = append(legs,
		postingLeg{Account: payable, Kind: domain.KindCloseBooking, Deposit: resale.CompanyAmountPaid},
		postingLeg{Account: receivable, Kind: domain.KindCloseBooking, Payment: resale.Remaining},
		postingLeg{Account: sale, Kind: domain.KindCloseBooking, Payment: bookingTotal},
		postingLeg{Account: cogs, Kind: domain.KindCloseBooking, Payment: plotCost},
		postingLeg{Account: inventory, Kind: domain.KindCloseBooking, Deposit: plotCost},
	)
	return legs, nil
}

func (s *resaleService) bookingPlotCost(ctx context.Context, booking *domain.Booking) (decimal.Decimal, error) {
	plots, err := s.plotRepo.FindPlotsByIDs(ctx, booking.PlotIDs)
	if err != nil {
		return decimal.Zero, err
	}
	return domain.SumPlotCost(plots), nil
}

func (s *resaleService) CreateResale(ctx context.Context, req dto.CreateResaleRequest, creatorUserID string) (*domain.PlotResale, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	booking, err := s.bookingRepo.FindBookingByID(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status == domain.BookingClosed {
		return nil, fmt.Errorf("%w: booking %s is already closed", apperrors.ErrConflict, booking.BookingNo)
	}

	plotCost, err := s.bookingPlotCost(ctx, booking)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	resale := domain.PlotResale{
		ResaleID:          uuid.NewString(),
		ProjectID:         booking.ProjectID,
		BookingID:         booking.BookingID,
		ResaleDate:        req.ResaleDate,
		OldAmount:         req.OldAmount,
		NewAmount:         req.NewAmount,
		CompanyAmountPaid: req.CompanyAmountPaid,
		AmountReceived:    req.AmountReceived,
		Remaining:         req.Remaining,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	accounts := newProjectAccounts(s.accountSvc, booking.ProjectID)
	legs, err := s.resaleLegs(ctx, accounts, resale, booking.TotalAmount, plotCost)
	if err != nil {
		return nil, err
	}

	tx, err := s.ledgerRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.ledgerRepo.Rollback(ctx, tx)

	err = func() error {
		if err := s.resaleRepo.InsertResaleInTx(ctx, tx, resale); err != nil {
			return err
		}
		if err := s.bookingRepo.UpdateBookingStatusInTx(ctx, tx, booking.BookingID, domain.BookingClosed, creatorUserID); err != nil {
			return err
		}
		if len(booking.PlotIDs) > 0 {
			if err := s.plotRepo.UpdatePlotStatusInTx(ctx, tx, booking.PlotIDs, domain.PlotActive, creatorUserID); err != nil {
				return err
			}
		}
		ref := domain.EventRef{Table: domain.RelPlotResale, ID: resale.ResaleID}
		return insertLegs(ctx, tx, s.ledgerRepo, legs, booking.ProjectID, ref, req.ResaleDate, creatorUserID, now)
	}()
	if err != nil {
		logger.Error("Resale creation failed", slog.String("error", err.Error()), slog.String("booking_id", req.BookingID))
		return nil, asValidation(err)
	}

	if err := s.ledgerRepo.Commit(ctx, tx); err != nil {
		return nil, asValidation(err)
	}

	logger.Info("Resale created", slog.String("resale_id", resale.ResaleID), slog.String("booking_id", booking.BookingID))
	return &resale, nil
}

func (s *resaleService) UpdateResale(ctx context.Context, resaleID string, req dto.UpdateResaleRequest, userID string) (*domain.PlotResale, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	resale, err := s.resaleRepo.FindResaleByID(ctx, resaleID)
	if err != nil {
		return nil, err
	}
	booking, err := s.bookingRepo.FindBookingByID(ctx, resale.BookingID)
	if err != nil {
		return nil, err
	}
	plotCost, err := s.bookingPlotCost(ctx, booking)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	resale.ResaleDate = req.ResaleDate
	resale.OldAmount = req.OldAmount
	resale.NewAmount = req.NewAmount
	resale.CompanyAmountPaid = req.CompanyAmountPaid
	resale.AmountReceived = req.AmountReceived
	resale.Remaining = req.Remaining
	resale.LastUpdatedAt = now
	resale.LastUpdatedBy = userID

	accounts := newProjectAccounts(s.accountSvc, resale.ProjectID)
	legs, err := s.resaleLegs(ctx, accounts, *resale, booking.TotalAmount, plotCost)
	if err != nil {
		return nil, err
	}

	tx, err := s.ledgerRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.ledgerRepo.Rollback(ctx, tx)

	err = func() error {
		if err := s.resaleRepo.UpdateResaleInTx(ctx, tx, *resale); err != nil {
			return err
		}
		// Purge-and-regenerate: resale postings carry no external references,
		// so a full rewrite is simpler and immune to partial-overwrite drift.
		ref := domain.EventRef{Table: domain.RelPlotResale, ID: resale.ResaleID}
		if err := s.ledgerRepo.DeletePostingsByRefInTx(ctx, tx, ref); err != nil {
			return err
		}
		return insertLegs(ctx, tx, s.ledgerRepo, legs, resale.ProjectID, ref, req.ResaleDate, userID, now)
	}()
	if err != nil {
		logger.Error("Resale update failed", slog.String("error", err.Error()), slog.String("resale_id", resaleID))
		return nil, asValidation(err)
	}

	if err := s.ledgerRepo.Commit(ctx, tx); err != nil {
		return nil, asValidation(err)
	}

	logger.Info("Resale updated", slog.String("resale_id", resaleID))
	return resale, nil
}

// DeleteResale reverses the closure: the booking returns to active, its plots
// return to sold, and every resale posting is removed.
func (s *resaleService) DeleteResale(ctx context.Context, resaleID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	resale, err := s.resaleRepo.FindResaleByID(ctx, resaleID)
	if err != nil {
		return err
	}
	booking, err := s.bookingRepo.FindBookingByID(ctx, resale.BookingID)
	if err != nil {
		return err
	}

	tx, err := s.ledgerRepo.Begin(ctx)
	if err != nil {
		return err
	}
	defer s.ledgerRepo.Rollback(ctx, tx)

	err = func() error {
		ref := domain.EventRef{Table: domain.RelPlotResale, ID: resaleID}
		if err := s.ledgerRepo.DeletePostingsByRefInTx(ctx, tx, ref); err != nil {
			return err
		}
		if err := s.bookingRepo.UpdateBookingStatusInTx(ctx, tx, booking.BookingID, domain.BookingActive, userID); err != nil {
			return err
		}
		// The reopened booking still holds the plots, so they go back to
		// sold rather than active.
		// TODO: confirm with product whether deleting a resale should
		// instead release the plots to active.
		if len(booking.PlotIDs) > 0 {
			if err := s.plotRepo.UpdatePlotStatusInTx(ctx, tx, booking.PlotIDs, domain.PlotSold, userID); err != nil {
				return err
			}
		}
		return s.resaleRepo.DeleteResaleInTx(ctx, tx, resaleID)
	}()
	if err != nil {
		logger.Error("Resale deletion failed", slog.String("error", err.Error()), slog.String("resale_id", resaleID))
		return asValidation(err)
	}

	if err := s.ledgerRepo.Commit(ctx, tx); err != nil {
		return asValidation(err)
	}

	logger.Info("Resale deleted", slog.String("resale_id", resaleID))
	return nil
}

func (s *resaleService) GetResaleByID(ctx context.Context, resaleID string) (*domain.PlotResale, error) {
	return s.resaleRepo.FindResaleByID(ctx, resaleID)
}

func (s *resaleService) ListResales(ctx context.Context, projectID string, limit, offset int) ([]domain.PlotResale, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.resaleRepo.ListResalesByProject(ctx, projectID, limit, offset)
}

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

var ErrTokenNotRefundable = errors.New("token cannot be refunded in its current status")

// tokenService owns the token (reservation) lifecycle: creation reserves
// plots and posts the receivable/bank pair, refund releases plots and posts a
// separate TokenRefund pair without touching the original Token postings.
type tokenService struct {
	tokenRepo  portsrepo.TokenRepositoryFacade
	plotRepo   portsrepo.PlotRepositoryFacade
	projRepo   portsrepo.ProjectRepositoryFacade
	ledgerRepo portsrepo.LedgerRepositoryWithTx
	accountSvc portssvc.AccountSvcFacade
}

// NewTokenService creates a new TokenService.
func NewTokenService(
	tokenRepo portsrepo.TokenRepositoryFacade,
	plotRepo portsrepo.PlotRepositoryFacade,
	projRepo portsrepo.ProjectRepositoryFacade,
	ledgerRepo portsrepo.LedgerRepositoryWithTx,
	accountSvc portssvc.AccountSvcFacade,
) portssvc.TokenSvcFacade {
	return &tokenService{
		tokenRepo:  tokenRepo,
		plotRepo:   plotRepo,
		projRepo:   projRepo,
		ledgerRepo: ledgerRepo,
		accountSvc: accountSvc,
	}
}

var _ portssvc.TokenSvcFacade = (*tokenService)(nil)

// tokenLegs derives the two Token legs: receivable paid down, payment bank
// receiving the funds with the usual received flags.
func (s *tokenService) tokenLegs(ctx context.Context, accounts *projectAccounts, amount decimal.Decimal, bank *domain.BankAccount, paymentMethod string) ([]postingLeg, error) {
	receivable, err := accounts.get(ctx, domain.RoleAccountReceivable)
	if err != nil {
		return nil, err
	}
	legs := []postingLeg{}
	if receivable != nil {
		legs = append(legs, postingLeg{Account: receivable, Kind: domain.KindToken, Payment: amount})
	}
	if bank != nil {
		isDeposit, isChequeClear := receivedFlags(bank, paymentMethod)
		legs = append(legs, postingLeg{
			Account:       bank,
			Kind:          domain.KindToken,
			Deposit:       amount,
			IsDeposit:     isDeposit,
			IsChequeClear: isChequeClear,
		})
	}
	return legs, nil
}

func (s *tokenService) CreateToken(ctx context.Context, req dto.CreateTokenRequest, creatorUserID string) (*domain.Token, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	project, err := s.projRepo.FindProjectByID(ctx, req.ProjectID)
	if err != nil {
		return nil, err
	}

	plots, err := s.plotRepo.FindPlotsByIDs(ctx, req.PlotIDs)
	if err != nil {
		return nil, err
	}
	if len(plots) != len(req.PlotIDs) {
		return nil, fmt.Errorf("%w: one or more plots do not exist", apperrors.ErrNotFound)
	}
	for _, plot := range plots {
		if plot.ProjectID != req.ProjectID {
			return nil, fmt.Errorf("%w: plot %s belongs to a different project", apperrors.ErrValidation, plot.PlotID)
		}
		if plot.Status != domain.PlotActive {
			return nil, fmt.Errorf("%w: plot %s", ErrPlotNotAvailable, plot.Number)
		}
	}

	var bank *domain.BankAccount
	if req.BankID != nil {
		bank, err = s.accountSvc.GetAccountByID(ctx, *req.BankID)
		if err != nil {
			return nil, err
		}
	}

	accounts := newProjectAccounts(s.accountSvc, req.ProjectID)
	legs, err := s.tokenLegs(ctx, accounts, req.Amount, bank, req.PaymentMethod)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	token := domain.Token{
		TokenID:       uuid.NewString(),
		ProjectID:     req.ProjectID,
		CustomerID:    req.CustomerID,
		PlotIDs:       req.PlotIDs,
		Amount:        req.Amount,
		TokenDate:     req.TokenDate,
		ExpiryDate:    req.ExpiryDate,
		BankID:        req.BankID,
		PaymentMethod: req.PaymentMethod,
		Status:        domain.TokenPending,
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
		seq, err := s.tokenRepo.NextTokenSeqInTx(ctx, tx, req.ProjectID)
		if err != nil {
			return err
		}
		token.DocumentNo = fmt.Sprintf("%s-T%03d", project.Code, seq)

		if err := s.tokenRepo.InsertTokenInTx(ctx, tx, token); err != nil {
			return err
		}
		if err := s.plotRepo.UpdatePlotStatusInTx(ctx, tx, req.PlotIDs, domain.PlotReserved, creatorUserID); err != nil {
			return err
		}
		ref := domain.EventRef{Table: domain.RelToken, ID: token.TokenID}
		return insertLegs(ctx, tx, s.ledgerRepo, legs, req.ProjectID, ref, req.TokenDate, creatorUserID, now)
	}()
	if err != nil {
		logger.Error("Token creation failed", slog.String("error", err.Error()), slog.String("project_id", req.ProjectID))
		return nil, asValidation(err)
	}

	if err := s.ledgerRepo.Commit(ctx, tx); err != nil {
		return nil, asValidation(err)
	}

	logger.Info("Token created", slog.String("token_id", token.TokenID), slog.String("document_no", token.DocumentNo))
	return &token, nil
}

func (s *tokenService) UpdateToken(ctx context.Context, tokenID string, req dto.UpdateTokenRequest, userID string) (*domain.Token, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	token, err := s.tokenRepo.FindTokenByID(ctx, tokenID)
	if err != nil {
		return nil, err
	}
	if token.Status == domain.TokenRefunded || token.Status == domain.TokenCancelled {
		return nil, fmt.Errorf("%w: token is %s", apperrors.ErrConflict, token.Status)
	}

	if req.Amount != nil {
		token.Amount = *req.Amount
	}
	if req.TokenDate != nil {
		token.TokenDate = *req.TokenDate
	}
	if req.ExpiryDate != nil {
		token.ExpiryDate = *req.ExpiryDate
	}
	if req.BankID != nil {
		token.BankID = req.BankID
	}
	if req.PaymentMethod != nil {
		token.PaymentMethod = *req.PaymentMethod
	}

	var newBank *domain.BankAccount
	if token.BankID != nil {
		newBank, err = s.accountSvc.GetAccountByID(ctx, *token.BankID)
		if err != nil {
			return nil, err
		}
	}

	accounts := newProjectAccounts(s.accountSvc, token.ProjectID)
	receivable, err := accounts.get(ctx, domain.RoleAccountReceivable)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	token.LastUpdatedAt = now
	token.LastUpdatedBy = userID
	ref := domain.EventRef{Table: domain.RelToken, ID: token.TokenID}

	tx, err := s.ledgerRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.ledgerRepo.Rollback(ctx, tx)

	err = func() error {
		if receivable != nil {
			leg := postingLeg{Account: receivable, Kind: domain.KindToken, Payment: token.Amount}
			if _, err := upsertLeg(ctx, tx, s.ledgerRepo, leg, token.ProjectID, ref, token.TokenDate, userID, now); err != nil {
				return err
			}
		}
		if err := s.updateTokenBankLeg(ctx, tx, token, receivable, newBank, ref, userID, now); err != nil {
			return err
		}
		return s.tokenRepo.UpdateTokenInTx(ctx, tx, *token)
	}()
	if err != nil {
		logger.Error("Token update failed", slog.String("error", err.Error()), slog.String("token_id", tokenID))
		return nil, asValidation(err)
	}

	if err := s.ledgerRepo.Commit(ctx, tx); err != nil {
		return nil, asValidation(err)
	}

	logger.Info("Token updated", slog.String("token_id", tokenID))
	return token, nil
}

// updateTokenBankLeg recomputes the bank-side Token leg in place, re-pointing
// it at the current bank and applying the bank-change is_deposit rule.
func (s *tokenService) updateTokenBankLeg(ctx context.Context, tx pgx.Tx, token *domain.Token, receivable *domain.BankAccount, newBank *domain.BankAccount, ref domain.EventRef, userID string, now time.Time) error {
	if newBank == nil {
		return nil
	}
	excludeAccountID := ""
	if receivable != nil {
		excludeAccountID = receivable.AccountID
	}
	existing, err := s.ledgerRepo.FindKindPostingForUpdateInTx(ctx, tx, token.ProjectID, domain.KindToken, ref, excludeAccountID)
	if err != nil {
		return err
	}

	isChequeClear := token.PaymentMethod != domain.PaymentMethodCheque
	if existing == nil {
		leg := postingLeg{
			Account:       newBank,
			Kind:          domain.KindToken,
			Deposit:       token.Amount,
			IsDeposit:     !newBank.IsUndepositedFunds(),
			IsChequeClear: isChequeClear,
		}
		return s.ledgerRepo.InsertPostingInTx(ctx, tx, leg.toPosting(token.ProjectID, ref, token.TokenDate, userID, now))
	}

	var oldBank *domain.BankAccount
	if existing.AccountID != newBank.AccountID {
		oldBank, err = s.accountSvc.GetAccountByID(ctx, existing.AccountID)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
	}

	existing.AccountID = newBank.AccountID
	existing.Deposit = token.Amount
	existing.Payment = decimal.Zero
	existing.TransactionDate = token.TokenDate
	existing.IsDeposit = recomputeIsDeposit(existing.IsDeposit, oldBank, newBank)
	existing.IsChequeClear = isChequeClear
	existing.LastUpdatedAt = now
	existing.LastUpdatedBy = userID
	return s.ledgerRepo.UpdatePostingInTx(ctx, tx, *existing)
}

func (s *tokenService) RefundToken(ctx context.Context, tokenID string, req dto.RefundTokenRequest, userID string) (*domain.Token, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	token, err := s.tokenRepo.FindTokenByID(ctx, tokenID)
	if err != nil {
		return nil, err
	}
	if token.Status != domain.TokenPending {
		return nil, fmt.Errorf("%w: status is %s", ErrTokenNotRefundable, token.Status)
	}

	newStatus := domain.TokenStatus(req.NewStatus)

	var refundBank *domain.BankAccount
	var refundLegs []postingLeg
	if newStatus == domain.TokenRefunded {
		if req.RefundBankID == nil {
			return nil, fmt.Errorf("%w: refundBankID is required for a refund", apperrors.ErrValidation)
		}
		refundBank, err = s.accountSvc.GetAccountByID(ctx, *req.RefundBankID)
		if err != nil {
			return nil, err
		}

		accounts := newProjectAccounts(s.accountSvc, token.ProjectID)
		receivable, err := accounts.get(ctx, domain.RoleAccountReceivable)
		if err != nil {
			return nil, err
		}
		if receivable != nil {
			refundLegs = append(refundLegs, postingLeg{Account: receivable, Kind: domain.KindTokenRefund, Deposit: token.Amount})
		}

		// An equity-classified refund bank records the outflow on the deposit
		// side instead of the payment side.
		isDeposit, isChequeClear := receivedFlags(refundBank, req.RefundMethod)
		bankLeg := postingLeg{
			Account:       refundBank,
			Kind:          domain.KindTokenRefund,
			Payment:       token.Amount,
			IsDeposit:     isDeposit,
			IsChequeClear: isChequeClear,
		}
		if refundBank.MainType == domain.Equity {
			bankLeg.Payment, bankLeg.Deposit = bankLeg.Deposit, bankLeg.Payment
		}
		refundLegs = append(refundLegs, bankLeg)
	}

	now := time.Now().UTC()
	tx, err := s.ledgerRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.ledgerRepo.Rollback(ctx, tx)

	err = func() error {
		if err := s.tokenRepo.UpdateTokenStatusInTx(ctx, tx, tokenID, newStatus, userID); err != nil {
			return err
		}
		if len(token.PlotIDs) > 0 {
			if err := s.plotRepo.UpdatePlotStatusInTx(ctx, tx, token.PlotIDs, domain.PlotActive, userID); err != nil {
				return err
			}
		}
		if len(refundLegs) == 0 {
			return nil
		}
		ref := domain.EventRef{Table: domain.RelToken, ID: token.TokenID}
		return insertLegs(ctx, tx, s.ledgerRepo, refundLegs, token.ProjectID, ref, req.RefundDate, userID, now)
	}()
	if err != nil {
		logger.Error("Token refund failed", slog.String("error", err.Error()), slog.String("token_id", tokenID))
		return nil, asValidation(err)
	}

	if err := s.ledgerRepo.Commit(ctx, tx); err != nil {
		return nil, asValidation(err)
	}

	token.Status = newStatus
	token.LastUpdatedAt = now
	token.LastUpdatedBy = userID
	logger.Info("Token status changed", slog.String("token_id", tokenID), slog.String("status", string(newStatus)))
	return token, nil
}

func (s *tokenService) GetTokenByID(ctx context.Context, tokenID string) (*domain.Token, error) {
	return s.tokenRepo.FindTokenByID(ctx, tokenID)
}

func (s *tokenService) ListTokens(ctx context.Context, projectID string, limit int, nextToken *string) ([]domain.Token, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.tokenRepo.ListTokensByProject(ctx, projectID, limit, nextToken)
}

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/EstateBooks/plot_booking_app/internal/apperrors"
	"github.com/EstateBooks/plot_booking_app/internal/core/domain"
	portssvc "github.com/EstateBooks/plot_booking_app/internal/core/ports/services"
	"github.com/EstateBooks/plot_booking_app/internal/dto"
	"github.com/EstateBooks/plot_booking_app/internal/middleware"
)

// ledgerHandler exposes the read-only posting ledger views.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newLedgerHandler(ledgerService portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{ledgerService: ledgerService}
}

func (h *ledgerHandler) listPostingsByAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	projectID := c.Param("projectID")
	accountID := c.Param("accountID")

	var params dto.KeysetListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	postings, nextToken, err := h.ledgerService.ListPostingsByAccount(c.Request.Context(), projectID, accountID, params.Limit, params.NextToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Failed to list postings", slog.String("error", err.Error()), slog.String("account_id", accountID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list postings"})
		return
	}

	c.JSON(http.StatusOK, dto.ListPostingsResponse{
		Postings:  dto.ToPostingResponses(postings),
		NextToken: nextToken,
	})
}

func (h *ledgerHandler) getPosting(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	postingID := c.Param("postingID")

	posting, err := h.ledgerService.GetPostingByID(c.Request.Context(), postingID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Posting not found"})
			return
		}
		logger.Error("Failed to get posting", slog.String("error", err.Error()), slog.String("posting_id", postingID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to get posting"})
		return
	}

	c.JSON(http.StatusOK, dto.ToPostingResponse(posting))
}

func (h *ledgerHandler) listPostingsByRef(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ref := domain.EventRef{
		Table: domain.RelatedTable(c.Query("relatedTable")),
		ID:    c.Query("relatedID"),
	}
	if ref.Table == "" || ref.ID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "relatedTable and relatedID query parameters are required"})
		return
	}

	postings, err := h.ledgerService.ListPostingsByRef(c.Request.Context(), ref)
	if err != nil {
		logger.Error("Failed to list postings by ref", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list postings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"postings": dto.ToPostingResponses(postings)})
}

func (h *ledgerHandler) accountBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")

	balance, err := h.ledgerService.AccountBalance(c.Request.Context(), accountID)
	if err != nil {
		logger.Error("Failed to compute account balance", slog.String("error", err.Error()), slog.String("account_id", accountID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to compute balance"})
		return
	}

	c.JSON(http.StatusOK, dto.AccountBalanceResponse{AccountID: accountID, Balance: balance})
}

func (h *ledgerHandler) listUndeposited(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	projectID := c.Param("projectID")

	postings, err := h.ledgerService.ListUndeposited(c.Request.Context(), projectID)
	if err != nil {
		logger.Error("Failed to list undeposited postings", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list undeposited postings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"postings": dto.ToPostingResponses(postings)})
}

// registerLedgerRoutes registers posting ledger routes.
func registerLedgerRoutes(group *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(ledgerService)

	group.GET("/projects/:projectID/accounts/:accountID/postings", h.listPostingsByAccount)
	group.GET("/projects/:projectID/undeposited", h.listUndeposited)
	group.GET("/postings", h.listPostingsByRef)
	group.GET("/postings/:postingID", h.getPosting)
	group.GET("/accounts/:accountID/balance", h.accountBalance)
}

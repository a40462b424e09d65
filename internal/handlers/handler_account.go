package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/EstateBooks/plot_booking_app/internal/apperrors"
	portssvc "github.com/EstateBooks/plot_booking_app/internal/core/ports/services"
	"github.com/EstateBooks/plot_booking_app/internal/dto"
	"github.com/EstateBooks/plot_booking_app/internal/middleware"
)

// accountHandler handles HTTP requests related to bank accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
}

func newAccountHandler(accountService portssvc.AccountSvcFacade) *accountHandler {
	return &accountHandler{accountService: accountService}
}

func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	account, err := h.accountService.CreateAccount(c.Request.Context(), req, creatorUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Project not found"})
		default:
			logger.Error("Failed to create account", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create account"})
		}
		return
	}

	logger.Info("Account created successfully", slog.String("account_id", account.AccountID))
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

func (h *accountHandler) getAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")

	account, err := h.accountService.GetAccountByID(c.Request.Context(), accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Account not found"})
			return
		}
		logger.Error("Failed to get account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve account"})
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

func (h *accountHandler) updateAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")

	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	account, err := h.accountService.UpdateAccount(c.Request.Context(), accountID, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Account not found"})
			return
		}
		logger.Error("Failed to update account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update account"})
		return
	}

	logger.Info("Account updated successfully", slog.String("account_id", accountID))
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

func (h *accountHandler) deactivateAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.accountService.DeactivateAccount(c.Request.Context(), accountID, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Account not found"})
			return
		}
		logger.Error("Failed to deactivate account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to deactivate account"})
		return
	}

	logger.Info("Account deactivated", slog.String("account_id", accountID))
	c.Status(http.StatusNoContent)
}

func (h *accountHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	projectID := c.Param("projectID")

	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), projectID, params.Limit, params.Offset)
	if err != nil {
		logger.Error("Failed to list accounts", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list accounts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"accounts": dto.ToAccountResponses(accounts)})
}

// registerAccountRoutes registers bank account specific routes.
func registerAccountRoutes(group *gin.RouterGroup, accountService portssvc.AccountSvcFacade) {
	h := newAccountHandler(accountService)

	accounts := group.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("/:accountID", h.getAccount)
		accounts.PUT("/:accountID", h.updateAccount)
		accounts.DELETE("/:accountID", h.deactivateAccount)
	}
	group.GET("/projects/:projectID/accounts", h.listAccounts)
}

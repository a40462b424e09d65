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

// paymentHandler handles HTTP requests related to incoming funds, bank
// deposits and bank transfers.
type paymentHandler struct {
	paymentService portssvc.PaymentSvcFacade
}

func newPaymentHandler(paymentService portssvc.PaymentSvcFacade) *paymentHandler {
	return &paymentHandler{paymentService: paymentService}
}

func (h *paymentHandler) createFund(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateFundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateFund", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	fund, err := h.paymentService.CreateFund(c.Request.Context(), req, creatorUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error creating fund", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to create fund", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create fund"})
		}
		return
	}

	logger.Info("Fund created successfully",
		slog.String("fund_id", fund.FundID),
		slog.String("document_no", fund.DocumentNo))
	c.JSON(http.StatusCreated, dto.ToFundResponse(fund))
}

func (h *paymentHandler) updateFund(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	fundID := c.Param("fundID")

	var req dto.UpdateFundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	fund, err := h.paymentService.UpdateFund(c.Request.Context(), fundID, req, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Fund not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to update fund", slog.String("error", err.Error()), slog.String("fund_id", fundID))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update fund"})
		}
		return
	}

	logger.Info("Fund updated successfully", slog.String("fund_id", fundID))
	c.JSON(http.StatusOK, dto.ToFundResponse(fund))
}

func (h *paymentHandler) deleteFund(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	fundID := c.Param("fundID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.paymentService.DeleteFund(c.Request.Context(), fundID, userID); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Fund not found"})
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to delete fund", slog.String("error", err.Error()), slog.String("fund_id", fundID))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to delete fund"})
		}
		return
	}

	logger.Info("Fund deleted", slog.String("fund_id", fundID))
	c.Status(http.StatusNoContent)
}

func (h *paymentHandler) listFunds(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	bookingID := c.Param("bookingID")

	funds, err := h.paymentService.ListFundsByBooking(c.Request.Context(), bookingID)
	if err != nil {
		logger.Error("Failed to list funds", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list funds"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"funds": dto.ToFundResponses(funds)})
}

func (h *paymentHandler) createDeposit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateDepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	deposit, err := h.paymentService.CreateDeposit(c.Request.Context(), req, creatorUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to create deposit", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create deposit"})
		}
		return
	}

	logger.Info("Deposit created successfully", slog.String("deposit_id", deposit.DepositID))
	c.JSON(http.StatusCreated, deposit)
}

func (h *paymentHandler) updateDeposit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	depositID := c.Param("depositID")

	var req dto.UpdateDepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	deposit, err := h.paymentService.UpdateDeposit(c.Request.Context(), depositID, req, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Deposit not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to update deposit", slog.String("error", err.Error()), slog.String("deposit_id", depositID))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update deposit"})
		}
		return
	}

	logger.Info("Deposit updated successfully", slog.String("deposit_id", depositID))
	c.JSON(http.StatusOK, deposit)
}

func (h *paymentHandler) deleteDeposit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	depositID := c.Param("depositID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.paymentService.DeleteDeposit(c.Request.Context(), depositID, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Deposit not found"})
			return
		}
		logger.Error("Failed to delete deposit", slog.String("error", err.Error()), slog.String("deposit_id", depositID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to delete deposit"})
		return
	}

	logger.Info("Deposit deleted", slog.String("deposit_id", depositID))
	c.Status(http.StatusNoContent)
}

func (h *paymentHandler) createTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	transfer, err := h.paymentService.CreateTransfer(c.Request.Context(), req, creatorUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to create transfer", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create transfer"})
		}
		return
	}

	logger.Info("Transfer created successfully", slog.String("transfer_id", transfer.TransferID))
	c.JSON(http.StatusCreated, transfer)
}

func (h *paymentHandler) updateTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transferID := c.Param("transferID")

	var req dto.UpdateTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	transfer, err := h.paymentService.UpdateTransfer(c.Request.Context(), transferID, req, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Transfer not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to update transfer", slog.String("error", err.Error()), slog.String("transfer_id", transferID))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update transfer"})
		}
		return
	}

	logger.Info("Transfer updated successfully", slog.String("transfer_id", transferID))
	c.JSON(http.StatusOK, transfer)
}

func (h *paymentHandler) deleteTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transferID := c.Param("transferID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.paymentService.DeleteTransfer(c.Request.Context(), transferID, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Transfer not found"})
			return
		}
		logger.Error("Failed to delete transfer", slog.String("error", err.Error()), slog.String("transfer_id", transferID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to delete transfer"})
		return
	}

	logger.Info("Transfer deleted", slog.String("transfer_id", transferID))
	c.Status(http.StatusNoContent)
}

// registerPaymentRoutes registers incoming fund, deposit and transfer routes.
func registerPaymentRoutes(group *gin.RouterGroup, paymentService portssvc.PaymentSvcFacade) {
	h := newPaymentHandler(paymentService)

	funds := group.Group("/funds")
	{
		funds.POST("", h.createFund)
		funds.PUT("/:fundID", h.updateFund)
		funds.DELETE("/:fundID", h.deleteFund)
	}
	group.GET("/bookings/:bookingID/funds", h.listFunds)

	deposits := group.Group("/deposits")
	{
		deposits.POST("", h.createDeposit)
		deposits.PUT("/:depositID", h.updateDeposit)
		deposits.DELETE("/:depositID", h.deleteDeposit)
	}

	transfers := group.Group("/transfers")
	{
		transfers.POST("", h.createTransfer)
		transfers.PUT("/:transferID", h.updateTransfer)
		transfers.DELETE("/:transferID", h.deleteTransfer)
	}
}

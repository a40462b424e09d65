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

// tokenHandler handles HTTP requests related to reservation tokens.
type tokenHandler struct {
	tokenService portssvc.TokenSvcFacade
}

func newTokenHandler(tokenService portssvc.TokenSvcFacade) *tokenHandler {
	return &tokenHandler{tokenService: tokenService}
}

func (h *tokenHandler) createToken(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateToken", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	token, err := h.tokenService.CreateToken(c.Request.Context(), req, creatorUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error creating token", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to create token", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create token"})
		}
		return
	}

	logger.Info("Token created successfully",
		slog.String("token_id", token.TokenID),
		slog.String("document_no", token.DocumentNo))
	c.JSON(http.StatusCreated, dto.ToTokenResponse(token))
}

func (h *tokenHandler) getToken(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tokenID := c.Param("tokenID")

	token, err := h.tokenService.GetTokenByID(c.Request.Context(), tokenID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Token not found"})
			return
		}
		logger.Error("Failed to get token", slog.String("error", err.Error()), slog.String("token_id", tokenID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve token"})
		return
	}

	c.JSON(http.StatusOK, dto.ToTokenResponse(token))
}

func (h *tokenHandler) updateToken(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tokenID := c.Param("tokenID")

	var req dto.UpdateTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	token, err := h.tokenService.UpdateToken(c.Request.Context(), tokenID, req, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Token not found"})
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to update token", slog.String("error", err.Error()), slog.String("token_id", tokenID))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update token"})
		}
		return
	}

	logger.Info("Token updated successfully", slog.String("token_id", tokenID))
	c.JSON(http.StatusOK, dto.ToTokenResponse(token))
}

func (h *tokenHandler) refundToken(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tokenID := c.Param("tokenID")

	var req dto.RefundTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	token, err := h.tokenService.RefundToken(c.Request.Context(), tokenID, req, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Token not found"})
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to refund token", slog.String("error", err.Error()), slog.String("token_id", tokenID))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to refund token"})
		}
		return
	}

	logger.Info("Token closed", slog.String("token_id", tokenID), slog.String("status", string(token.Status)))
	c.JSON(http.StatusOK, dto.ToTokenResponse(token))
}

func (h *tokenHandler) listTokens(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	projectID := c.Param("projectID")

	var params dto.KeysetListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	tokens, nextToken, err := h.tokenService.ListTokens(c.Request.Context(), projectID, params.Limit, params.NextToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Failed to list tokens", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list tokens"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tokens":    dto.ToTokenResponses(tokens),
		"nextToken": nextToken,
	})
}

// registerTokenRoutes registers reservation token specific routes.
func registerTokenRoutes(group *gin.RouterGroup, tokenService portssvc.TokenSvcFacade) {
	h := newTokenHandler(tokenService)

	tokens := group.Group("/tokens")
	{
		tokens.POST("", h.createToken)
		tokens.GET("/:tokenID", h.getToken)
		tokens.PUT("/:tokenID", h.updateToken)
		tokens.POST("/:tokenID/refund", h.refundToken)
	}
	group.GET("/projects/:projectID/tokens", h.listTokens)
}

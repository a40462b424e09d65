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

// resaleHandler handles HTTP requests related to plot resales.
type resaleHandler struct {
	resaleService portssvc.ResaleSvcFacade
}

func newResaleHandler(resaleService portssvc.ResaleSvcFacade) *resaleHandler {
	return &resaleHandler{resaleService: resaleService}
}

func (h *resaleHandler) createResale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateResaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateResale", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	resale, err := h.resaleService.CreateResale(c.Request.Context(), req, creatorUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error creating resale", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to create resale", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create resale"})
		}
		return
	}

	logger.Info("Resale created successfully", slog.String("resale_id", resale.ResaleID))
	c.JSON(http.StatusCreated, dto.ToResaleResponse(resale))
}

func (h *resaleHandler) getResale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	resaleID := c.Param("resaleID")

	resale, err := h.resaleService.GetResaleByID(c.Request.Context(), resaleID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Resale not found"})
			return
		}
		logger.Error("Failed to get resale", slog.String("error", err.Error()), slog.String("resale_id", resaleID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve resale"})
		return
	}

	c.JSON(http.StatusOK, dto.ToResaleResponse(resale))
}

func (h *resaleHandler) updateResale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	resaleID := c.Param("resaleID")

	var req dto.UpdateResaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	resale, err := h.resaleService.UpdateResale(c.Request.Context(), resaleID, req, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Resale not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to update resale", slog.String("error", err.Error()), slog.String("resale_id", resaleID))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update resale"})
		}
		return
	}

	logger.Info("Resale updated successfully", slog.String("resale_id", resaleID))
	c.JSON(http.StatusOK, dto.ToResaleResponse(resale))
}

func (h *resaleHandler) deleteResale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	resaleID := c.Param("resaleID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.resaleService.DeleteResale(c.Request.Context(), resaleID, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Resale not found"})
			return
		}
		logger.Error("Failed to delete resale", slog.String("error", err.Error()), slog.String("resale_id", resaleID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to delete resale"})
		return
	}

	logger.Info("Resale deleted", slog.String("resale_id", resaleID))
	c.Status(http.StatusNoContent)
}

func (h *resaleHandler) listResales(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	projectID := c.Param("projectID")

	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	resales, err := h.resaleService.ListResales(c.Request.Context(), projectID, params.Limit, params.Offset)
	if err != nil {
		logger.Error("Failed to list resales", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list resales"})
		return
	}

	responses := make([]dto.ResaleResponse, len(resales))
	for i := range resales {
		responses[i] = dto.ToResaleResponse(&resales[i])
	}
	c.JSON(http.StatusOK, gin.H{"resales": responses})
}

// registerResaleRoutes registers plot resale specific routes.
func registerResaleRoutes(group *gin.RouterGroup, resaleService portssvc.ResaleSvcFacade) {
	h := newResaleHandler(resaleService)

	resales := group.Group("/resales")
	{
		resales.POST("", h.createResale)
		resales.GET("/:resaleID", h.getResale)
		resales.PUT("/:resaleID", h.updateResale)
		resales.DELETE("/:resaleID", h.deleteResale)
	}
	group.GET("/projects/:projectID/resales", h.listResales)
}

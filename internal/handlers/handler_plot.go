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

// plotHandler handles HTTP requests related to plots.
type plotHandler struct {
	plotService portssvc.PlotSvcFacade
}

func newPlotHandler(plotService portssvc.PlotSvcFacade) *plotHandler {
	return &plotHandler{plotService: plotService}
}

func (h *plotHandler) createPlot(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreatePlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreatePlot", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	plot, err := h.plotService.CreatePlot(c.Request.Context(), req, creatorUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Project not found"})
		case errors.Is(err, apperrors.ErrDuplicate):
			c.JSON(http.StatusConflict, ErrorResponse{Error: "A plot with this number already exists in the project"})
		default:
			logger.Error("Failed to create plot", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create plot"})
		}
		return
	}

	logger.Info("Plot created successfully", slog.String("plot_id", plot.PlotID))
	c.JSON(http.StatusCreated, dto.ToPlotResponse(plot))
}

func (h *plotHandler) updatePlot(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	plotID := c.Param("plotID")

	var req dto.UpdatePlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	plot, err := h.plotService.UpdatePlot(c.Request.Context(), plotID, req, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Plot not found"})
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to update plot", slog.String("error", err.Error()), slog.String("plot_id", plotID))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update plot"})
		}
		return
	}

	logger.Info("Plot updated successfully", slog.String("plot_id", plotID))
	c.JSON(http.StatusOK, dto.ToPlotResponse(plot))
}

func (h *plotHandler) listPlots(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	projectID := c.Param("projectID")
	status := domain.PlotStatus(c.Query("status"))

	plots, err := h.plotService.ListPlots(c.Request.Context(), projectID, status)
	if err != nil {
		logger.Error("Failed to list plots", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list plots"})
		return
	}

	responses := make([]dto.PlotResponse, len(plots))
	for i := range plots {
		responses[i] = dto.ToPlotResponse(&plots[i])
	}
	c.JSON(http.StatusOK, gin.H{"plots": responses})
}

// registerPlotRoutes registers plot specific routes.
func registerPlotRoutes(group *gin.RouterGroup, plotService portssvc.PlotSvcFacade) {
	h := newPlotHandler(plotService)

	plots := group.Group("/plots")
	{
		plots.POST("", h.createPlot)
		plots.PUT("/:plotID", h.updatePlot)
	}
	group.GET("/projects/:projectID/plots", h.listPlots)
}

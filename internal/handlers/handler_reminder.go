package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/EstateBooks/plot_booking_app/internal/core/ports/services"
	"github.com/EstateBooks/plot_booking_app/internal/dto"
	"github.com/EstateBooks/plot_booking_app/internal/middleware"
)

// reminderHandler exposes payment reminder listing and a manual scan trigger.
type reminderHandler struct {
	reminderService portssvc.ReminderSvcFacade
}

func newReminderHandler(reminderService portssvc.ReminderSvcFacade) *reminderHandler {
	return &reminderHandler{reminderService: reminderService}
}

func (h *reminderHandler) listReminders(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	projectID := c.Param("projectID")

	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	reminders, err := h.reminderService.ListReminders(c.Request.Context(), projectID, params.Limit, params.Offset)
	if err != nil {
		logger.Error("Failed to list reminders", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list reminders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reminders": reminders})
}

// scanReminders triggers the due-booking scan outside the daily schedule.
func (h *reminderHandler) scanReminders(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	issued, err := h.reminderService.ScanDueBookings(c.Request.Context(), time.Now())
	if err != nil {
		logger.Error("Reminder scan failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Reminder scan failed"})
		return
	}

	logger.Info("Reminder scan complete", slog.Int("issued", issued))
	c.JSON(http.StatusOK, gin.H{"issued": issued})
}

// registerReminderRoutes registers payment reminder routes.
func registerReminderRoutes(group *gin.RouterGroup, reminderService portssvc.ReminderSvcFacade) {
	h := newReminderHandler(reminderService)

	group.GET("/projects/:projectID/reminders", h.listReminders)
	group.POST("/reminders/scan", h.scanReminders)
}

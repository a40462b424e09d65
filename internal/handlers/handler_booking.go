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

// bookingHandler handles HTTP requests related to bookings.
type bookingHandler struct {
	bookingService portssvc.BookingSvcFacade
}

func newBookingHandler(bookingService portssvc.BookingSvcFacade) *bookingHandler {
	return &bookingHandler{bookingService: bookingService}
}

func (h *bookingHandler) createBooking(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateBooking", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	booking, err := h.bookingService.CreateBooking(c.Request.Context(), req, creatorUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error creating booking", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to create booking", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create booking"})
		}
		return
	}

	logger.Info("Booking created successfully",
		slog.String("booking_id", booking.BookingID),
		slog.String("booking_no", booking.BookingNo))
	c.JSON(http.StatusCreated, dto.ToBookingResponse(booking))
}

func (h *bookingHandler) getBooking(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	bookingID := c.Param("bookingID")

	booking, err := h.bookingService.GetBookingByID(c.Request.Context(), bookingID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Booking not found"})
			return
		}
		logger.Error("Failed to get booking", slog.String("error", err.Error()), slog.String("booking_id", bookingID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve booking"})
		return
	}

	c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *bookingHandler) updateBooking(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	bookingID := c.Param("bookingID")

	var req dto.UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateBooking", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	booking, err := h.bookingService.UpdateBooking(c.Request.Context(), bookingID, req, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Booking not found"})
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to update booking", slog.String("error", err.Error()), slog.String("booking_id", bookingID))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update booking"})
		}
		return
	}

	logger.Info("Booking updated successfully", slog.String("booking_id", bookingID))
	c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *bookingHandler) deleteBooking(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	bookingID := c.Param("bookingID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.bookingService.DeleteBooking(c.Request.Context(), bookingID, userID); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Booking not found"})
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to delete booking", slog.String("error", err.Error()), slog.String("booking_id", bookingID))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to delete booking"})
		}
		return
	}

	logger.Info("Booking deleted", slog.String("booking_id", bookingID))
	c.Status(http.StatusNoContent)
}

func (h *bookingHandler) listBookings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	projectID := c.Param("projectID")

	var params dto.KeysetListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	bookings, nextToken, err := h.bookingService.ListBookings(c.Request.Context(), projectID, params.Limit, params.NextToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Failed to list bookings", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list bookings"})
		return
	}

	c.JSON(http.StatusOK, dto.ListBookingsResponse{
		Bookings:  dto.ToBookingResponses(bookings),
		NextToken: nextToken,
	})
}

// registerBookingRoutes registers booking specific routes.
func registerBookingRoutes(group *gin.RouterGroup, bookingService portssvc.BookingSvcFacade) {
	h := newBookingHandler(bookingService)

	bookings := group.Group("/bookings")
	{
		bookings.POST("", h.createBooking)
		bookings.GET("/:bookingID", h.getBooking)
		bookings.PUT("/:bookingID", h.updateBooking)
		bookings.DELETE("/:bookingID", h.deleteBooking)
	}
	group.GET("/projects/:projectID/bookings", h.listBookings)
}

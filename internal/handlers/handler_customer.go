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

// customerHandler handles HTTP requests related to customers.
type customerHandler struct {
	customerService portssvc.CustomerSvcFacade
}

func newCustomerHandler(customerService portssvc.CustomerSvcFacade) *customerHandler {
	return &customerHandler{customerService: customerService}
}

func (h *customerHandler) createCustomer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateCustomer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	customer, err := h.customerService.CreateCustomer(c.Request.Context(), req, creatorUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Project not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to create customer", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create customer"})
		}
		return
	}

	logger.Info("Customer created successfully", slog.String("customer_id", customer.CustomerID))
	c.JSON(http.StatusCreated, dto.ToCustomerResponse(customer))
}

func (h *customerHandler) getCustomer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	customerID := c.Param("customerID")

	customer, err := h.customerService.GetCustomerByID(c.Request.Context(), customerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Customer not found"})
			return
		}
		logger.Error("Failed to get customer", slog.String("error", err.Error()), slog.String("customer_id", customerID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve customer"})
		return
	}

	c.JSON(http.StatusOK, dto.ToCustomerResponse(customer))
}

func (h *customerHandler) updateCustomer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	customerID := c.Param("customerID")

	var req dto.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	customer, err := h.customerService.UpdateCustomer(c.Request.Context(), customerID, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Customer not found"})
			return
		}
		logger.Error("Failed to update customer", slog.String("error", err.Error()), slog.String("customer_id", customerID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update customer"})
		return
	}

	logger.Info("Customer updated successfully", slog.String("customer_id", customerID))
	c.JSON(http.StatusOK, dto.ToCustomerResponse(customer))
}

func (h *customerHandler) listCustomers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	projectID := c.Param("projectID")

	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	customers, err := h.customerService.ListCustomers(c.Request.Context(), projectID, params.Limit, params.Offset)
	if err != nil {
		logger.Error("Failed to list customers", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list customers"})
		return
	}

	responses := make([]dto.CustomerResponse, len(customers))
	for i := range customers {
		responses[i] = dto.ToCustomerResponse(&customers[i])
	}
	c.JSON(http.StatusOK, gin.H{"customers": responses})
}

// registerCustomerRoutes registers customer specific routes.
func registerCustomerRoutes(group *gin.RouterGroup, customerService portssvc.CustomerSvcFacade) {
	h := newCustomerHandler(customerService)

	customers := group.Group("/customers")
	{
		customers.POST("", h.createCustomer)
		customers.GET("/:customerID", h.getCustomer)
		customers.PUT("/:customerID", h.updateCustomer)
	}
	group.GET("/projects/:projectID/customers", h.listCustomers)
}

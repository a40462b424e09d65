package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	portssvc "github.com/EstateBooks/plot_booking_app/internal/core/ports/services"
	"github.com/EstateBooks/plot_booking_app/internal/middleware"
	"github.com/EstateBooks/plot_booking_app/internal/platform/config"
)

// ErrorResponse is the generic error payload returned by all handlers.
type ErrorResponse struct {
	Error string `json:"error"`
}

// RegisterRoutes sets up all application routes, injecting dependencies using
// the service facades.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	registerValidators()

	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	registerAuthRoutes(r, cfg)

	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific
// entity route registrations.
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerProjectRoutes(v1, services.Project)
	registerCustomerRoutes(v1, services.Customer)
	registerPlotRoutes(v1, services.Plot)
	registerAccountRoutes(v1, services.Account)
	registerBookingRoutes(v1, services.Booking)
	registerTokenRoutes(v1, services.Token)
	registerResaleRoutes(v1, services.Resale)
	registerPaymentRoutes(v1, services.Payment)
	registerLedgerRoutes(v1, services.Ledger)
	registerReminderRoutes(v1, services.Reminder)
}

// registerValidators installs the custom binding validators. decimalgt
// requires a decimal field to be strictly positive.
func registerValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("decimalgt", func(fl validator.FieldLevel) bool {
		d, ok := fl.Field().Interface().(decimal.Decimal)
		if !ok {
			return false
		}
		return d.GreaterThan(decimal.Zero)
	})
}

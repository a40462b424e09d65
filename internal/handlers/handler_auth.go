package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/EstateBooks/plot_booking_app/internal/dto"
	"github.com/EstateBooks/plot_booking_app/internal/middleware"
	"github.com/EstateBooks/plot_booking_app/internal/platform/config"
	"github.com/EstateBooks/plot_booking_app/internal/utils"
)

// authHandler authenticates the single back-office operator against the
// configured admin credentials.
type authHandler struct {
	adminUsername     string
	adminPasswordHash string
	jwtSecret         string
	jwtDuration       time.Duration
	jwtIssuer         string
}

func newAuthHandler(cfg *config.Config) *authHandler {
	return &authHandler{
		adminUsername:     cfg.AdminUsername,
		adminPasswordHash: cfg.AdminPasswordHash,
		jwtSecret:         cfg.JWTSecret,
		jwtDuration:       cfg.JWTExpiryDuration,
		jwtIssuer:         cfg.JWTIssuer,
	}
}

// registerAuthRoutes sets up the public authentication routes with a login
// rate limit.
func registerAuthRoutes(r *gin.Engine, cfg *config.Config) {
	h := newAuthHandler(cfg)

	rate, _ := limiter.NewRateFromFormatted("5-M")
	store := memory.NewStore()
	ipLimiter := limiter.New(store, rate)

	auth := r.Group("/api/v1/auth")
	{
		auth.POST("/login", middleware.RateLimit(ipLimiter), h.login)
	}
}

func (h *authHandler) login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}
	if req.Username != h.adminUsername || !utils.CheckPasswordHash(req.Password, h.adminPasswordHash) {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid username or password"})
		return
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    h.jwtIssuer,
		Subject:   h.adminUsername,
		ExpiresAt: jwt.NewNumericDate(now.Add(h.jwtDuration)),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(h.jwtSecret))
	if err != nil {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to sign JWT token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Token:     signed,
		ExpiresIn: int64(h.jwtDuration.Seconds()),
	})
}

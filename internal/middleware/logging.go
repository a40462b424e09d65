package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// contextKey is a private type for context keys set by this package.
// Using a custom type prevents collisions.
type contextKey string

const loggerKey = contextKey("logger")

// StructuredLoggingMiddleware creates a Gin middleware handler that injects
// a request-scoped logger into both the Gin context and the request's
// standard context, so services reached through context.Context can log with
// the request fields attached.
func StructuredLoggingMiddleware(baseLogger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := uuid.NewString()

		requestLogger := baseLogger.With(
			slog.String("request_id", requestID),
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
		)

		c.Header("X-Request-ID", requestID)
		c.Set(string(loggerKey), requestLogger)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), loggerKey, requestLogger))

		c.Next()

		latency := time.Since(start)
		requestLogger.Info("Request completed",
			slog.Int("status", c.Writer.Status()),
			slog.Duration("latency", latency),
		)
	}
}

// GetLoggerFromCtx retrieves the request-scoped logger from a standard
// context. It returns the default logger when none is stored, e.g. in
// background jobs that did not pass through the HTTP middleware.
func GetLoggerFromCtx(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// WithLogger stores a logger in the context. Background jobs use this so the
// services they call log with the job's fields attached.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// GetLoggerFromContext retrieves the request-scoped logger from the Gin
// context, falling back to the request's standard context.
func GetLoggerFromContext(c *gin.Context) *slog.Logger {
	if logger, exists := c.Get(string(loggerKey)); exists {
		if slogLogger, ok := logger.(*slog.Logger); ok {
			return slogLogger
		}
	}
	return GetLoggerFromCtx(c.Request.Context())
}

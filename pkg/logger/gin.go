package logger

import (
	"log/slog"
	"time"

	"CakeshopWebhooks/pkg/correlation"

	"github.com/gin-gonic/gin"
)

// CorrelationMiddleware takes X-Correlation-ID from the request or generates one,
// stores it in the request context and echoes it in the response header.
func CorrelationMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		corrID := c.GetHeader(correlation.HeaderName)
		if corrID == "" {
			corrID = correlation.NewID()
		}

		ctx := correlation.WithID(c.Request.Context(), corrID)
		c.Request = c.Request.WithContext(ctx)
		c.Header(correlation.HeaderName, corrID)

		c.Next()
	}
}

// RequestLogger logs one line per request. Bodies are never logged:
// provider payloads carry customer data.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		level := slog.LevelInfo
		switch {
		case status >= 500:
			level = slog.LevelError
		case status >= 400:
			level = slog.LevelWarn
		}

		slog.Log(c.Request.Context(), level, "HTTP request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
	}
}

package server

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yemtakip/yemtakip/internal/userctx"
	"go.uber.org/zap"
)

const (
	headerRequestID = "X-Request-Id"
	headerUserEmail = "X-User-Email"
)

// RequestContextMiddleware stamps every request with a correlation ID
// and captures the acting user's email and client IP for the audit
// trail. Auth is out of scope; the header is trusted as-is.
func RequestContextMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader(headerRequestID))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(headerRequestID, requestID)

		ctx := c.Request.Context()
		ctx = userctx.WithRequestID(ctx, requestID)
		ctx = userctx.WithIPAddress(ctx, c.ClientIP())
		if email := strings.TrimSpace(c.GetHeader(headerUserEmail)); email != "" {
			ctx = userctx.WithUserEmail(ctx, email)
		}
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// LoggingMiddleware emits one structured line per request.
func LoggingMiddleware(log *zap.Logger) gin.HandlerFunc {
	logger := log.Named("http")
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("request_id", userctx.RequestIDFromContext(c.Request.Context())),
			zap.String("ip", c.ClientIP()),
		}
		if email := userctx.UserEmailFromContext(c.Request.Context()); email != "" {
			fields = append(fields, zap.String("user_email", email))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		switch {
		case c.Writer.Status() >= 500:
			logger.Error("request", fields...)
		case c.Writer.Status() >= 400:
			logger.Warn("request", fields...)
		default:
			logger.Info("request", fields...)
		}
	}
}

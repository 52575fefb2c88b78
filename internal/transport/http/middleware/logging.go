package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"blogapi/internal/pkg/logger"
)

const HeaderRequestID = "X-Request-ID"

// RequestID reuses an inbound X-Request-ID or generates one, echoes it on the
// response and stores it in the request context for the logger.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Header(HeaderRequestID, id)
		c.Request = c.Request.WithContext(logger.WithRequestID(c.Request.Context(), id))
		c.Next()
	}
}

// RequestLogger writes one structured record per request. Errors attached with
// c.Error are logged with the record.
func RequestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []any{
			slog.Int("status", c.Writer.Status()),
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.String("ip", c.ClientIP()),
			slog.Duration("latency", time.Since(start)),
		}
		if userID, ok := c.Get(ContextUserIDKey); ok {
			fields = append(fields, slog.Any("user_id", userID))
		}

		ctx := c.Request.Context()
		if len(c.Errors) > 0 {
			fields = append(fields, slog.String("error", c.Errors.Last().Error()))
			log.ErrorContext(ctx, "request failed", fields...)
			return
		}
		log.InfoContext(ctx, "request processed", fields...)
	}
}

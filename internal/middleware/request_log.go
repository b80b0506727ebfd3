package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/promptops/platform-api/internal/platform/logger"
)

// RequestLog emits one structured line per request through the sanitizing
// logger instead of gin's plain-text writer.
func RequestLog(log *logger.Logger) gin.HandlerFunc {
	reqLog := log.With("middleware", "RequestLog")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		reqLog.Info("Request handled",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
	}
}

package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/efficience-dental/agenda-api/pkg/logger"
)

// RequestLogger logs one line per request, leveled by the response
// status.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		zl := log.Zerolog().With().
			Str("request_id", c.GetString(ContextRequestID)).
			Str("client_ip", c.ClientIP()).
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Logger()

		switch status := c.Writer.Status(); {
		case status >= 500:
			zl.Error().Msg("server error")
		case status >= 400:
			zl.Warn().Msg("client error")
		default:
			zl.Info().Msg("request processed")
		}
	}
}

package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/efficience-dental/agenda-api/pkg/logger"
)

// Recovery turns panics into 500 responses instead of dropped
// connections.
func Recovery(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error(fmt.Errorf("%v", r), "request panic recovered",
					"stack", string(debug.Stack()),
					"method", c.Request.Method,
					"path", c.Request.URL.Path,
					"request_id", c.GetString(ContextRequestID))

				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
					Code:      http.StatusInternalServerError,
					Message:   "internal server error",
					RequestID: c.GetString(ContextRequestID),
				})
			}
		}()
		c.Next()
	}
}

package middleware

import (
	"github.com/gin-gonic/gin"

	apperrors "github.com/efficience-dental/agenda-api/pkg/errors"
	"github.com/efficience-dental/agenda-api/pkg/logger"
)

// ErrorResponse is the shape of errors surfaced by the error and
// recovery middleware.
type ErrorResponse struct {
	Code      int    `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// ErrorHandler logs errors attached to the gin context and converts the
// last one into a JSON response, mapping AppError codes to HTTP status.
func ErrorHandler(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		requestID := c.GetString(ContextRequestID)
		for _, e := range c.Errors {
			log.Error(e.Err, "request error",
				"request_id", requestID,
				"method", c.Request.Method,
				"path", c.Request.URL.Path)
		}

		lastErr := c.Errors.Last()
		status := apperrors.HTTPStatus(lastErr.Err)
		c.JSON(status, ErrorResponse{
			Code:      status,
			Message:   lastErr.Error(),
			RequestID: requestID,
		})
	}
}

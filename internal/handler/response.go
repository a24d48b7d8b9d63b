package handler

import (
	"github.com/gin-gonic/gin"

	apperrors "github.com/efficience-dental/agenda-api/pkg/errors"
)

type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func NewSuccessResponse(data interface{}) *Response {
	return &Response{
		Status: "success",
		Data:   data,
	}
}

func NewErrorResponse(message string) *Response {
	return &Response{
		Status:  "error",
		Message: message,
	}
}

// Error writes err as a JSON error response, using the AppError status
// code when the error carries one and 500 otherwise.
func Error(c *gin.Context, err error) {
	c.JSON(apperrors.HTTPStatus(err), NewErrorResponse(err.Error()))
}

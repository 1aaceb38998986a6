package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/medipresence/presence-api/pkg/errors"
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

// RespondError writes the HTTP mapping of a service error. Unclassified
// errors are reported as 500 without leaking internals.
func RespondError(c *gin.Context, err error) {
	if appErr, ok := apperrors.AsAppError(err); ok {
		_ = c.Error(err)
		c.JSON(appErr.StatusCode(), NewErrorResponse(appErr.Message))
		return
	}
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, NewErrorResponse("internal server error"))
}

package response

import (
	"errors"
	"net/http"

	"payx-ledger/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// errorBody is the machine-readable error payload nested under "error".
type errorBody struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// errorEnvelope is the exact §6 error envelope: {"error": {...}}.
type errorEnvelope struct {
	Error errorBody `json:"error"`
}

// OK sends a 200 response with the resource body as-is (no envelope).
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created sends a 201 response with the resource body as-is.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// NoContent sends a 204 response with an empty body.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error sends an error response. It maps an *apperror.AppError to its
// declared HTTP status and machine code; any other error is surfaced as an
// internal_error with no details leaked to the client.
func Error(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.HTTPStatus, errorEnvelope{Error: errorBody{
			Code:    appErr.Code,
			Message: appErr.Message,
			Details: appErr.Details,
		}})
		return
	}

	c.JSON(http.StatusInternalServerError, errorEnvelope{Error: errorBody{
		Code:    "internal_error",
		Message: "an internal error occurred",
	}})
}

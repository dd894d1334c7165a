package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string                 `json:"code"`
	Message    string                 `json:"message"`
	Details    map[string]interface{} `json:"details,omitempty"`
	HTTPStatus int                    `json:"-"`
	Err        error                  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// WithDetails attaches structured detail fields (e.g. insufficient_funds'
// {available, requested}) and returns the receiver for chaining.
func (e *AppError) WithDetails(details map[string]interface{}) *AppError {
	e.Details = details
	return e
}

// ---- §7 error taxonomy, exact machine codes ----

func ErrValidation(message string) *AppError {
	return New("validation_error", message, http.StatusBadRequest)
}

func ErrInvalidAPIKey() *AppError {
	return New("invalid_api_key", "invalid API credential", http.StatusUnauthorized)
}

func ErrRateLimitExceeded() *AppError {
	return New("rate_limit_exceeded", "rate limit exceeded", http.StatusTooManyRequests)
}

func ErrAccountNotFound() *AppError {
	return New("account_not_found", "account not found", http.StatusNotFound)
}

func ErrBusinessNotFound() *AppError {
	return New("business_not_found", "business not found", http.StatusNotFound)
}

func ErrTransactionNotFound() *AppError {
	return New("transaction_not_found", "transaction not found", http.StatusNotFound)
}

func ErrWebhookDeliveryNotFound() *AppError {
	return New("webhook_delivery_not_found", "webhook delivery not found", http.StatusNotFound)
}

func ErrCurrencyMismatch() *AppError {
	return New("currency_mismatch", "currency mismatch", http.StatusBadRequest)
}

func ErrInsufficientFunds(available, requested string) *AppError {
	return New("insufficient_funds", "insufficient funds", http.StatusUnprocessableEntity).
		WithDetails(map[string]interface{}{"available": available, "requested": requested})
}

func ErrIdempotencyConflict() *AppError {
	return New("idempotency_conflict", "idempotency key reused with a different request body", http.StatusConflict)
}

func ErrDatabase(err error) *AppError {
	return Wrap("database_error", "a database error occurred", http.StatusInternalServerError, err)
}

func ErrInternal(err error) *AppError {
	return Wrap("internal_error", "an internal error occurred", http.StatusInternalServerError, err)
}

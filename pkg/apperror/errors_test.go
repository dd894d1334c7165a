package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name:     "without wrapped error",
			appErr:   New("insufficient_funds", "insufficient funds", http.StatusUnprocessableEntity),
			expected: "[insufficient_funds] insufficient funds",
		},
		{
			name:     "with wrapped error",
			appErr:   Wrap("database_error", "db error", http.StatusInternalServerError, fmt.Errorf("connection refused")),
			expected: "[database_error] db error: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.appErr.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	inner := fmt.Errorf("inner error")
	appErr := Wrap("database_error", "wrapped", http.StatusInternalServerError, inner)

	assert.True(t, errors.Is(appErr, inner))
}

func TestAppError_IsNilUnwrap(t *testing.T) {
	appErr := New("validation_error", "test", http.StatusBadRequest)
	assert.Nil(t, appErr.Unwrap())
}

func TestTaxonomyCodesAndStatuses(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		code       string
		httpStatus int
	}{
		{"Validation", ErrValidation("bad input"), "validation_error", 400},
		{"InvalidAPIKey", ErrInvalidAPIKey(), "invalid_api_key", 401},
		{"RateLimitExceeded", ErrRateLimitExceeded(), "rate_limit_exceeded", 429},
		{"AccountNotFound", ErrAccountNotFound(), "account_not_found", 404},
		{"BusinessNotFound", ErrBusinessNotFound(), "business_not_found", 404},
		{"TransactionNotFound", ErrTransactionNotFound(), "transaction_not_found", 404},
		{"CurrencyMismatch", ErrCurrencyMismatch(), "currency_mismatch", 400},
		{"InsufficientFunds", ErrInsufficientFunds("50.0000", "100.0000"), "insufficient_funds", 422},
		{"IdempotencyConflict", ErrIdempotencyConflict(), "idempotency_conflict", 409},
		{"Database", ErrDatabase(fmt.Errorf("x")), "database_error", 500},
		{"Internal", ErrInternal(fmt.Errorf("x")), "internal_error", 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.httpStatus, tt.err.HTTPStatus)
		})
	}
}

func TestInsufficientFundsDetails(t *testing.T) {
	err := ErrInsufficientFunds("50.0000", "100.0000")
	assert.Equal(t, "50.0000", err.Details["available"])
	assert.Equal(t, "100.0000", err.Details["requested"])
}

func TestDatabaseErrorWrapsCause(t *testing.T) {
	inner := fmt.Errorf("pg: connection closed")
	dbErr := ErrDatabase(inner)
	assert.True(t, errors.Is(dbErr, inner))
}

// Package money implements the exact fixed-point currency type used
// throughout the ledger. No float64 ever touches a ledger row.
package money

import (
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"
)

// scale is the number of fractional digits every Money value is normalized to.
const scale = 4

// maxMagnitude is the exclusive upper bound on the absolute value of amount,
// matching the 19-significant-digit / 10^15 ceiling.
var maxMagnitude = decimal.New(1, 15)

var currencyRe = regexp.MustCompile(`^[A-Z]{3}$`)

// Money is an exact decimal amount paired with its ISO-4217 currency code.
type Money struct {
	amount   decimal.Decimal
	currency string
}

// ValidationError is returned for malformed amounts or currency codes, and
// is mapped by callers to the validation_error machine code.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// MismatchError is returned when an operation combines two Money values of
// different currencies, mapped to the currency_mismatch machine code.
type MismatchError struct {
	Left, Right string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("currency mismatch: %s vs %s", e.Left, e.Right)
}

// New constructs a Money value from a decimal and a currency code, validating
// both against the invariants in §4.1.
func New(amount decimal.Decimal, currency string) (Money, error) {
	if !currencyRe.MatchString(currency) {
		return Money{}, &ValidationError{Reason: "currency must be a 3-letter ISO-4217 code"}
	}
	if amount.Abs().GreaterThanOrEqual(maxMagnitude) {
		return Money{}, &ValidationError{Reason: "amount magnitude exceeds 10^15"}
	}
	if amount.Exponent() < -scale {
		return Money{}, &ValidationError{Reason: "amount has more than 4 fractional digits"}
	}
	return Money{amount: amount.Truncate(scale), currency: currency}, nil
}

// MustNew is New but panics on error. Reserved for values already known to
// be valid, such as amounts freshly loaded from storage.
func MustNew(amount decimal.Decimal, currency string) Money {
	m, err := New(amount, currency)
	if err != nil {
		panic(err)
	}
	return m
}

// Parse parses a decimal string (e.g. "100.00") plus currency code into Money.
func Parse(s string, currency string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, &ValidationError{Reason: "amount is not a valid decimal number"}
	}
	return New(d, currency)
}

// Zero returns the zero value for a given currency.
func Zero(currency string) Money {
	return Money{amount: decimal.Zero, currency: currency}
}

// Currency returns the 3-letter ISO currency code.
func (m Money) Currency() string { return m.currency }

// Decimal returns the underlying decimal.Decimal, for storage marshaling.
func (m Money) Decimal() decimal.Decimal { return m.amount }

// String renders the amount with exactly 4 fractional digits.
func (m Money) String() string {
	return m.amount.StringFixed(scale)
}

// IsPositive reports whether the amount is strictly greater than zero.
func (m Money) IsPositive() bool { return m.amount.IsPositive() }

// IsNegative reports whether the amount is strictly less than zero.
func (m Money) IsNegative() bool { return m.amount.IsNegative() }

// Equal reports whether two Money values have the same amount and currency.
func (m Money) Equal(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

// GreaterThanOrEqual reports whether m >= other, requiring matching currency.
func (m Money) GreaterThanOrEqual(other Money) (bool, error) {
	if m.currency != other.currency {
		return false, &MismatchError{Left: m.currency, Right: other.currency}
	}
	return m.amount.GreaterThanOrEqual(other.amount), nil
}

// Add returns m + other, requiring matching currency.
func (m Money) Add(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, &MismatchError{Left: m.currency, Right: other.currency}
	}
	return New(m.amount.Add(other.amount), m.currency)
}

// Sub returns m - other, requiring matching currency. The result may be
// negative; callers enforce non-negativity at the account/balance layer.
func (m Money) Sub(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, &MismatchError{Left: m.currency, Right: other.currency}
	}
	return New(m.amount.Sub(other.amount), m.currency)
}

// Package money provides the Money value object used for balances and
// transaction amounts. Amounts are exact decimals with at most two fractional
// digits (cents); arithmetic never goes through float64.
package money

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Decimals is the number of fractional digits a Money value may carry.
const Decimals = 2

// Symbol is printed in front of every formatted amount.
const Symbol = "R$"

const (
	// MaxIntegerDigits bounds the integer part of any amount.
	MaxIntegerDigits = 15

	// maxScale bounds the fractional digits accepted before reduction, so
	// trailing zeros like "1.000" still parse.
	maxScale = 18
)

var (
	// ErrInvalidAmount is returned when a text amount cannot be parsed.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrTooManyDecimals is returned when an amount is finer than one cent.
	ErrTooManyDecimals = errors.New("amount has more than two decimal places")

	// ErrAmountOutOfRange is returned when an amount has more than
	// MaxIntegerDigits integer digits.
	ErrAmountOutOfRange = errors.New("amount out of range")
)

// Money represents an amount of the ledger's single currency.
//
// Invariants:
//   - The underlying value never has more than Decimals fractional digits.
//   - The zero value is a valid zero amount.
type Money struct {
	amount decimal.Decimal
}

// Zero is the zero amount.
var Zero = Money{}

var maxAmount = decimal.New(1, MaxIntegerDigits)

// New builds Money from a decimal, rejecting sub-cent precision and
// magnitudes above MaxIntegerDigits.
//
// Exponent and digit count are checked before any comparison, which would
// rescale values like 1e99999999 into a coefficient with that many digits.
func New(d decimal.Decimal) (Money, error) {
	exp := int(d.Exponent())
	if exp > MaxIntegerDigits {
		return Money{}, ErrAmountOutOfRange
	}
	if exp < -maxScale {
		return Money{}, ErrTooManyDecimals
	}
	if d.NumDigits()+exp > MaxIntegerDigits {
		return Money{}, ErrAmountOutOfRange
	}
	if !d.Equal(d.Truncate(Decimals)) {
		return Money{}, ErrTooManyDecimals
	}
	if d.Abs().GreaterThanOrEqual(maxAmount) {
		return Money{}, ErrAmountOutOfRange
	}
	return Money{amount: d}, nil
}

// MustNew is New for constants and tests. It panics on invalid input.
func MustNew(s string) Money {
	m, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return m
}

// Parse reads an operator supplied amount. Both "10.50" and "10,50" are
// accepted; surrounding whitespace and a leading currency symbol are ignored.
func Parse(s string) (Money, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSpace(strings.TrimPrefix(s, Symbol))
	s = strings.ReplaceAll(s, ",", ".")
	if s == "" {
		return Money{}, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return New(d)
}

// FromCents builds Money from an integer number of cents.
func FromCents(cents int64) Money {
	return Money{amount: decimal.New(cents, -Decimals)}
}

// Decimal returns the underlying decimal value.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// IsPositive reports whether m > 0.
func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// IsNegative reports whether m < 0.
func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

// Add returns m + other.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Sub returns m - other. Callers are responsible for keeping balances non-negative.
func (m Money) Sub(other Money) Money {
	return Money{amount: m.amount.Sub(other.amount)}
}

// GreaterThan reports whether m > other.
func (m Money) GreaterThan(other Money) bool {
	return m.amount.GreaterThan(other.amount)
}

// Equal reports whether both amounts are numerically equal.
func (m Money) Equal(other Money) bool {
	return m.amount.Equal(other.amount)
}

// String formats the amount with exactly two decimals, e.g. "150.00".
func (m Money) String() string {
	return m.amount.StringFixed(Decimals)
}

// Format formats the amount with the currency symbol, e.g. "R$ 150.00".
func (m Money) Format() string {
	return Symbol + " " + m.String()
}

// MarshalJSON encodes Money as a JSON number with two decimals.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalJSON accepts both JSON numbers and quoted strings.
func (m *Money) UnmarshalJSON(data []byte) error {
	parsed, err := Parse(strings.Trim(string(data), `"`))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// UnmarshalText lets envconfig and flag parsers decode Money.
func (m *Money) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

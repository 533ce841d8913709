package service

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// amountScale is the number of fraction digits a recharge amount may carry
const amountScale = 2

var maxCents = decimal.NewFromInt(math.MaxInt64)

// amountFormat admits plain decimals only. Exponents and signs never reach
// the decimal parser, so the cost of parsing stays linear in the input.
var amountFormat = regexp.MustCompile(`^[0-9]{1,15}(\.[0-9]{1,15})?$`)

// ValidateAmount checks if amount is valid (positive)
func ValidateAmount(amountCents int64) error {
	if amountCents <= 0 {
		return fmt.Errorf("invalid amount: must be greater than 0")
	}

	return nil
}

// ParseAmount converts a decimal amount such as "50" or "12.75" to cents.
// More than two fraction digits is an error rather than a rounding.
func ParseAmount(s string) (int64, error) {
	trimmed := strings.TrimSpace(s)
	if !amountFormat.MatchString(trimmed) {
		return 0, fmt.Errorf("invalid amount %q: not a decimal number", s)
	}

	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: not a decimal number", s)
	}

	if !d.Equal(d.Truncate(amountScale)) {
		return 0, fmt.Errorf("invalid amount %q: at most %d decimal places allowed", s, amountScale)
	}

	cents := d.Shift(amountScale)
	if cents.GreaterThan(maxCents) {
		return 0, fmt.Errorf("invalid amount %q: too large", s)
	}

	amount := cents.IntPart()
	if err := ValidateAmount(amount); err != nil {
		return 0, err
	}

	return amount, nil
}

// FormatCents renders cents as a decimal string with two fraction digits
func FormatCents(cents int64) string {
	return decimal.New(cents, -amountScale).StringFixed(amountScale)
}

// addCents adds two non-negative amounts, failing instead of wrapping around
func addCents(a, b int64) (int64, error) {
	if b > 0 && a > math.MaxInt64-b {
		return 0, fmt.Errorf("amount overflows the card balance")
	}
	return a + b, nil
}

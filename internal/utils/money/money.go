// Package money holds the fixed-point helpers used for every amount in the ledger.
// All values are shopspring decimals at a currency scale of two places.
package money

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Scale is the number of fractional digits kept for currency amounts.
const Scale int32 = 2

var (
	ErrInvalidAmount  = errors.New("invalid monetary amount")
	ErrTooManyDecimal = errors.New("amount has more than two decimal places")
	ErrNoParts        = errors.New("cannot split an amount into zero parts")
	ErrAmountTooLarge = errors.New("amount exceeds the largest storable value")
)

// MaxAmount is the largest amount a NUMERIC(12,2) column holds.
var MaxAmount = decimal.RequireFromString("9999999999.99")

// Round rounds d to two places, half away from zero. Ledger amounts are never
// negative when rounded, so this is round-half-up.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(Scale)
}

// SplitEvenly divides total into n equal shares rounded to two places and
// returns the share together with the residual total - share*n.
// The residual may be negative when rounding went up.
func SplitEvenly(total decimal.Decimal, n int) (decimal.Decimal, decimal.Decimal, error) {
	if n <= 0 {
		return decimal.Zero, decimal.Zero, ErrNoParts
	}
	count := decimal.NewFromInt(int64(n))
	per := total.DivRound(count, Scale)
	residual := total.Sub(per.Mul(count))
	return per, residual, nil
}

// Sum adds the given values exactly.
func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

// IsPositive reports whether d is strictly greater than zero.
func IsPositive(d decimal.Decimal) bool {
	return d.GreaterThan(decimal.Zero)
}

// HasValidScale reports whether d has at most two fractional digits.
func HasValidScale(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(Scale))
}

// ValidatePositive checks that d is a strictly positive currency amount with at most two decimals
// and no larger than MaxAmount.
func ValidatePositive(d decimal.Decimal) error {
	if !IsPositive(d) {
		return fmt.Errorf("%w: %s must be greater than zero", ErrInvalidAmount, d.String())
	}
	if !HasValidScale(d) {
		return fmt.Errorf("%w: %s", ErrTooManyDecimal, d.String())
	}
	if d.GreaterThan(MaxAmount) {
		return fmt.Errorf("%w: %s is above %s", ErrAmountTooLarge, d.String(), String(MaxAmount))
	}
	return nil
}

// Parse reads a decimal string into a currency amount without going through float64.
func Parse(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if !HasValidScale(d) {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrTooManyDecimal, s)
	}
	return d, nil
}

// String formats d with exactly two decimal places.
func String(d decimal.Decimal) string {
	return d.StringFixed(Scale)
}

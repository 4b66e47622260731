// Package money converts between locale-formatted decimal amount strings and
// integer minor currency units (cents). All financial values in this service
// are carried as int64 cents to avoid floating-point rounding.
package money

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidAmount reports an amount string that cannot be represented as an
// integer number of cents. This is a data integrity failure: aborting is
// preferred over emitting wrong financial figures.
var ErrInvalidAmount = errors.New("invalid amount")

// ToCents parses a decimal amount string (e.g. "123.45", "-7.00") into minor
// currency units. Sub-cent precision or a non-numeric string fails with
// ErrInvalidAmount.
func ToCents(amount string) (int64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, amount)
	}

	cents := d.Shift(2)
	if !cents.IsInteger() {
		return 0, fmt.Errorf("%w: %q has sub-cent precision", ErrInvalidAmount, amount)
	}

	return cents.IntPart(), nil
}

// FromCents formats minor currency units as a fixed two-decimal string,
// e.g. 12345 -> "123.45".
func FromCents(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}

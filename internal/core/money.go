// Package core provides money parsing and formatting helpers.
//
// Fees are plain float64 lev amounts; nothing rounds before display, and
// display formatting rounds to two decimals only for presentation.
package core

import (
	"errors"
	"strconv"
	"strings"
)

var ErrInvalidDecimal = errors.New("invalid decimal amount")

// ParseDecimal converts a decimal string to a lev amount. Both dot (12.34)
// and comma (12,34) separators are accepted. Negative values are rejected;
// the ledger never records refunds.
func ParseDecimal(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidDecimal
	}
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, ErrInvalidDecimal
	}
	if v < 0 {
		return 0, ErrInvalidDecimal
	}
	return v, nil
}

// ParseDecimalOrZero applies the roster default-filling rule: blank or
// non-numeric fields become zero. Kept as an explicit step so the coercion
// is visible and testable rather than a silent parse fallback.
func ParseDecimalOrZero(s string) float64 {
	v, err := ParseDecimal(s)
	if err != nil {
		return 0
	}
	return v
}

// FormatLev formats a lev amount with two decimals and a comma separator,
// e.g. "42,80 лв".
func FormatLev(x float64) string {
	s := strconv.FormatFloat(x, 'f', 2, 64)
	s = strings.Replace(s, ".", ",", 1)
	return s + " лв"
}

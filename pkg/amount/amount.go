// Package amount converts between decimal amount strings and integer
// base units. Balances are stored as int64 units with 8 fractional
// digits, so every representable amount is exact.
package amount

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

const (
	// Decimals is the fixed fractional precision of stored amounts.
	Decimals = 8
	// Divisor converts between whole amounts and base units.
	Divisor = 100_000_000
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrNegative      = errors.New("amount must be positive")
	ErrTooPrecise    = errors.New("amount has too many decimal places")
)

// ParseUnits parses a decimal string into base units at the fixed
// 8-digit precision.
func ParseUnits(s string) (int64, error) {
	return ParseUnitsWithDecimals(s, Decimals)
}

// ParseUnitsWithDecimals parses a decimal string into base units for a
// currency with the given number of fractional digits. Rejects
// negative values and values with more fractional digits than the
// currency carries.
func ParseUnitsWithDecimals(s string, decimals uint32) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	if strings.HasPrefix(s, "-") {
		return 0, ErrNegative
	}

	whole := s
	frac := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole, frac = s[:i], s[i+1:]
	}
	if whole == "" && frac == "" {
		return 0, ErrInvalidAmount
	}
	if whole == "" {
		whole = "0"
	}
	if len(frac) > int(decimals) {
		if strings.Trim(frac[decimals:], "0") != "" {
			return 0, ErrTooPrecise
		}
		frac = frac[:decimals]
	}

	wholeVal, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}

	scale := int64(1)
	for i := uint32(0); i < decimals; i++ {
		scale *= 10
	}

	fracVal := int64(0)
	if frac != "" {
		padded := frac + strings.Repeat("0", int(decimals)-len(frac))
		fracVal, err = strconv.ParseInt(padded, 10, 64)
		if err != nil {
			return 0, ErrInvalidAmount
		}
	}

	if wholeVal > (math.MaxInt64-fracVal)/scale {
		return 0, ErrInvalidAmount
	}
	return wholeVal*scale + fracVal, nil
}

// FormatUnits renders base units as a decimal string with trailing
// zeros trimmed.
func FormatUnits(units int64) string {
	neg := units < 0
	if neg {
		units = -units
	}
	whole := units / Divisor
	frac := units % Divisor

	out := strconv.FormatInt(whole, 10)
	if frac > 0 {
		fracStr := strings.TrimRight(strconv.FormatInt(Divisor+frac, 10)[1:], "0")
		out += "." + fracStr
	}
	if neg {
		out = "-" + out
	}
	return out
}

// ApplyRate multiplies base units by a conversion rate, rounding to
// the nearest unit.
func ApplyRate(units int64, rate float64) int64 {
	return int64(math.Round(float64(units) * rate))
}

// Package moneypkg converts between decimal money amounts and their
// minor-unit (hundredths) integer representation.
package moneypkg

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrInvalidAmount indicates an amount that is NaN, infinite or not parseable.
	ErrInvalidAmount = errors.New("invalid money amount")
	// ErrOutOfRange indicates an amount whose minor-unit value does not fit int64.
	ErrOutOfRange = errors.New("money amount out of range")
)

// Scale is the number of minor units per major unit.
const Scale = 100

// minInt64F and maxInt64PlusOneF are exact float64 values; the range check
// must happen in floating point before the narrowing cast so that borderline
// truncation cannot overflow silently.
const (
	minInt64F         = -(1 << 63)
	maxInt64PlusOneF  = 1 << 63
	minInt64Formatted = "-92233720368547758.08"
)

// ToMinorUnits converts a decimal amount to minor units, truncating toward
// zero. NaN and infinities are rejected, as is any value outside int64.
func ToMinorUnits(amount float64) (int64, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, ErrInvalidAmount
	}

	scaled := math.Trunc(amount * Scale)
	if scaled < minInt64F || scaled >= maxInt64PlusOneF {
		return 0, ErrOutOfRange
	}

	return int64(scaled), nil
}

// Format renders minor units as a decimal string with a two-digit fraction.
func Format(minorUnits int64) string {
	// The magnitude of the smallest int64 cannot be negated.
	if minorUnits == math.MinInt64 {
		return minInt64Formatted
	}

	sign := ""
	if minorUnits < 0 {
		sign = "-"
		minorUnits = -minorUnits
	}

	return fmt.Sprintf("%s%d.%02d", sign, minorUnits/Scale, minorUnits%Scale)
}

// Parse converts a decimal string to minor units. It accepts an optional
// leading minus, an optional decimal point and up to two fractional digits.
// Parse(Format(x)) == x for every representable x; negative zero
// normalizes to 0.
func Parse(text string) (int64, error) {
	s := text

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign = "-"
		s = s[1:]
	}

	intPart, fracPart := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i+1:]
	}

	if intPart == "" && fracPart == "" {
		return 0, ErrInvalidAmount
	}

	if len(fracPart) > 2 || !digitsOnly(intPart) || !digitsOnly(fracPart) {
		return 0, ErrInvalidAmount
	}

	for len(fracPart) < 2 {
		fracPart += "0"
	}

	minorUnits, err := strconv.ParseInt(sign+intPart+fracPart, 10, 64)
	if err != nil {
		return 0, ErrOutOfRange
	}

	return minorUnits, nil
}

// Tax computes a transfer tax in minor units, rounded to nearest and
// clamped so it never exceeds the transferred amount.
func Tax(amount int64, rate float64) int64 {
	tax := int64(math.Round(float64(amount) * rate))

	if tax < 0 {
		return 0
	}

	if tax > amount {
		return amount
	}

	return tax
}

func digitsOnly(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}

	return true
}

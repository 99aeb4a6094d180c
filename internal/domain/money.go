// Package domain holds the core entities of the budget tracker:
// transactions, category budgets, saving goals and users, plus the
// fixed-point money type they share.
package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Money is a monetary amount in cents. All arithmetic inside the service
// is integer cents; conversion to a two-decimal value happens only when
// the amount crosses the JSON boundary.
type Money int64

// Cents builds a Money from a raw cent count.
func Cents(c int64) Money { return Money(c) }

// Units builds a Money from whole currency units.
func Units(u int64) Money { return Money(u * 100) }

// ParseMoney parses a decimal string into cents. Both "12.34" and "12,34"
// are accepted; a third decimal digit rounds half-up. The sign is kept —
// zero-amount validation is the caller's job.
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}
	s = strings.ReplaceAll(s, ",", ".")

	neg := false
	switch s[0] {
	case '-':
		neg = true
		s = s[1:]
	case '+':
		s = s[1:]
	}

	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart + fracPart {
		if !unicode.IsDigit(r) {
			return 0, fmt.Errorf("invalid amount %q", s)
		}
	}

	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	const maxSafe = (1<<63 - 1) / 100
	if iv > maxSafe {
		return 0, fmt.Errorf("amount out of range")
	}

	var frac int64
	if len(fracPart) > 0 {
		frac = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			frac += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				frac++
			}
		}
	}

	cents := iv*100 + frac
	if neg {
		cents = -cents
	}
	return Money(cents), nil
}

// String formats the amount with exactly two decimals, e.g. "123.45".
func (m Money) String() string {
	c := int64(m)
	sign := ""
	if c < 0 {
		sign = "-"
		c = -c
	}
	return fmt.Sprintf("%s%d.%02d", sign, c/100, c%100)
}

// Float returns the amount as a float64 for ratio computations.
func (m Money) Float() float64 { return float64(m) / 100.0 }

// Mul scales the amount by f, rounding half away from zero.
func (m Money) Mul(f float64) Money {
	return Money(math.Round(float64(m) * f))
}

// CeilUnits rounds the amount up to the next whole currency unit.
func (m Money) CeilUnits() Money {
	c := int64(m)
	if c%100 == 0 {
		return m
	}
	if c > 0 {
		return Money((c/100 + 1) * 100)
	}
	return Money((c / 100) * 100)
}

// MarshalJSON encodes the amount as a plain two-decimal number.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalJSON accepts a JSON number or a numeric string.
func (m *Money) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "null" {
		return nil
	}
	v, err := ParseMoney(s)
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// MeanMoney returns the mean of total over n samples, rounded half away
// from zero. A zero n yields zero, not an error.
func MeanMoney(total Money, n int) Money {
	if n == 0 {
		return 0
	}
	return Money(math.Round(float64(total) / float64(n)))
}

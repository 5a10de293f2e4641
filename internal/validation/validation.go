package validation

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// ErrInvalid is wrapped by every validation failure so callers can tell
// bad input apart from storage errors.
var ErrInvalid = errors.New("invalid input")

func invalid(msg string) error {
	return &validationError{msg: msg}
}

type validationError struct {
	msg string
}

func (e *validationError) Error() string { return e.msg }

func (e *validationError) Unwrap() error { return ErrInvalid }

// CoerceInt turns form input into a whole number.
// Anything that does not parse as a number becomes 0; fractions are truncated.
func CoerceInt(s string) int {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	if f > math.MaxInt32 {
		return math.MaxInt32
	}
	if f < math.MinInt32 {
		return math.MinInt32
	}
	return int(f)
}

// Clamp bounds n to [lo, hi].
func Clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

// Package phone normalizes raw contact phone text and builds wa.me deep links.
package phone

import (
	"errors"
	"fmt"
	"strings"
)

// MultiNumberSeparator joins multiple numbers inside a single exported field.
const MultiNumberSeparator = " ::: "

// ErrUnusableNumber indicates raw text that cannot be reduced to a 10-digit number.
var ErrUnusableNumber = errors.New("unusable phone number")

// UnusableNumberError reports raw input that failed normalization.
type UnusableNumberError struct {
	// Raw is the input after separator handling, as it entered digit stripping.
	Raw string
	// Digits is the number of decimal digits left after stripping.
	Digits int
}

func (e *UnusableNumberError) Error() string {
	if strings.TrimSpace(e.Raw) == "" {
		return "unusable phone number: empty value"
	}
	return fmt.Sprintf("unusable phone number %q: %d digits after cleanup, need 10", e.Raw, e.Digits)
}

func (e *UnusableNumberError) Unwrap() error {
	return ErrUnusableNumber
}

// Result is a normalized local subscriber number.
type Result struct {
	// Number is exactly 10 decimal digits.
	Number string
	// Truncated reports that the digit string had an unexpected length and
	// the last 10 digits were kept as a best effort.
	Truncated bool
}

// Normalize reduces raw phone text to a 10-digit local number.
//
// When the export concatenated several numbers with " ::: ", only the first
// segment is considered. All non-digit characters are stripped, then a
// leading "91" country code (12 digits) or "0" trunk prefix (11 digits) is
// removed. Any other string longer than 10 digits keeps its last 10 and is
// marked Truncated. Fewer than 10 digits yields an *UnusableNumberError.
func Normalize(raw string) (Result, error) {
	if first, _, found := strings.Cut(raw, MultiNumberSeparator); found {
		raw = strings.TrimSpace(first)
	}

	digits := stripNonDigits(raw)

	switch {
	case len(digits) == 10:
		return Result{Number: digits}, nil
	case len(digits) == 12 && strings.HasPrefix(digits, "91"):
		return Result{Number: digits[2:]}, nil
	case len(digits) == 11 && strings.HasPrefix(digits, "0"):
		return Result{Number: digits[1:]}, nil
	case len(digits) > 10:
		return Result{Number: digits[len(digits)-10:], Truncated: true}, nil
	default:
		return Result{}, &UnusableNumberError{Raw: raw, Digits: len(digits)}
	}
}

func stripNonDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// Link builds the wa.me deep link for a normalized number.
// Input is assumed to be an already-normalized 10-digit string.
func Link(countryCode, number string) string {
	return "https://wa.me/" + countryCode + number
}

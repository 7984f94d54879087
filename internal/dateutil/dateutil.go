// Package dateutil resolves document date values.
//
// A date value is either literal text, the keyword "today" (left for the
// typesetter to fill in at compile time), or "auto[:FORMAT]" which is
// resolved at conversion time.
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDateFormat indicates an invalid date format string.
var ErrInvalidDateFormat = errors.New("invalid date format")

// MaxDateFormatLength limits format string length to prevent abuse.
const MaxDateFormatLength = 50

// DefaultDateFormat is used when "auto" is specified without a format.
const DefaultDateFormat = "YYYY-MM-DD"

// Today is the date keyword resolved by the typesetter.
const Today = "today"

// dateTokens maps user-friendly tokens to Go time format components.
// Ordered by length descending for greedy matching.
var dateTokens = []struct {
	token string
	goFmt string
}{
	{"YYYY", "2006"},
	{"MMMM", "January"},
	{"MMM", "Jan"},
	{"YY", "06"},
	{"MM", "01"},
	{"DD", "02"},
	{"M", "1"},
	{"D", "2"},
}

// DatePresets provides named shortcuts for common date formats.
var DatePresets = map[string]string{
	"iso":      "YYYY-MM-DD",
	"european": "DD/MM/YYYY",
	"us":       "MM/DD/YYYY",
	"long":     "MMMM D, YYYY",
}

// ParseDateFormat converts a user-friendly format string to Go's time format.
// Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D. Text in brackets is kept
// literally, as is any other character.
func ParseDateFormat(format string) (string, error) {
	if format == "" {
		return "", fmt.Errorf("%w: format cannot be empty", ErrInvalidDateFormat)
	}
	if len(format) > MaxDateFormatLength {
		return "", fmt.Errorf("%w: format exceeds %d characters", ErrInvalidDateFormat, MaxDateFormatLength)
	}

	var b strings.Builder
	b.Grow(len(format) + 10)

	for i := 0; i < len(format); {
		if format[i] == '[' {
			end := strings.IndexByte(format[i+1:], ']')
			if end == -1 {
				return "", fmt.Errorf("%w: unclosed bracket at position %d", ErrInvalidDateFormat, i)
			}
			b.WriteString(format[i+1 : i+1+end])
			i += end + 2
			continue
		}

		n := matchToken(&b, format[i:])
		if n == 0 {
			b.WriteByte(format[i])
			n = 1
		}
		i += n
	}

	return b.String(), nil
}

// matchToken writes the Go layout of the token s starts with and returns
// its length, or 0 when s starts with no token.
func matchToken(b *strings.Builder, s string) int {
	for _, t := range dateTokens {
		if strings.HasPrefix(s, t.token) {
			b.WriteString(t.goFmt)
			return len(t.token)
		}
	}
	return 0
}

// IsToday reports whether value is the Today keyword (case-insensitive).
func IsToday(value string) bool {
	return strings.EqualFold(strings.TrimSpace(value), Today)
}

// ResolveDate handles "auto" and "auto:FORMAT" date values:
//   - "auto" formats t as YYYY-MM-DD
//   - "auto:FORMAT" formats t with FORMAT or a named preset (iso, european, us, long)
//   - any other value is returned unchanged
func ResolveDate(value string, t time.Time) (string, error) {
	layout, ok, err := autoLayout(value)
	if err != nil {
		return "", err
	}
	if !ok {
		return value, nil
	}
	return t.Format(layout), nil
}

// ValidateDate reports whether value would resolve without error.
func ValidateDate(value string) error {
	_, _, err := autoLayout(value)
	return err
}

// autoLayout returns the Go layout of an auto value. ok is false for values
// that are not auto values.
func autoLayout(value string) (layout string, ok bool, err error) {
	lower := strings.ToLower(value)
	if !strings.HasPrefix(lower, "auto") {
		return "", false, nil
	}

	format := DefaultDateFormat
	if lower != "auto" {
		if !strings.HasPrefix(lower, "auto:") {
			return "", false, fmt.Errorf("%w: invalid auto syntax %q, use \"auto\" or \"auto:FORMAT\"", ErrInvalidDateFormat, value)
		}
		// Keep the original case: format tokens are uppercase.
		format = value[len("auto:"):]
		if format == "" {
			return "", false, fmt.Errorf("%w: format cannot be empty after \"auto:\"", ErrInvalidDateFormat)
		}
		if preset, found := DatePresets[strings.ToLower(format)]; found {
			format = preset
		}
	}

	layout, err = ParseDateFormat(format)
	if err != nil {
		return "", false, err
	}
	return layout, true, nil
}

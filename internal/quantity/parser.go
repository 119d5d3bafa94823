// Package quantity turns user-typed numbers into stock quantities and limits.
package quantity

import (
	"errors"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidFormat is returned for text that is not a decimal number in an
// accepted form.
var ErrInvalidFormat = errors.New("invalid number format")

var decimalPattern = regexp.MustCompile(`^\d+(\.\d+)?$`)

// Literal inputs that clear a limit instead of setting one.
var clearLimitInputs = map[string]struct{}{
	"":     {},
	"-":    {},
	"0":    {},
	"0.0":  {},
	"0.00": {},
}

// ParseQuantity accepts "12", "2.5" or "2,5". Zero is a valid quantity.
func ParseQuantity(text string) (float64, error) {
	d, err := parseDecimal(normalize(text))
	if err != nil {
		return 0, err
	}
	if d.IsNegative() {
		return 0, ErrInvalidFormat
	}
	return d.InexactFloat64(), nil
}

// ParseLimit returns nil when the input clears the limit: empty, "-", any
// spelling of zero, or a non-positive value such as "-5".
func ParseLimit(text string) (*float64, error) {
	raw := normalize(text)
	if _, ok := clearLimitInputs[raw]; ok {
		return nil, nil
	}
	if rest, ok := strings.CutPrefix(raw, "-"); ok {
		if _, err := parseDecimal(rest); err != nil {
			return nil, err
		}
		return nil, nil
	}
	d, err := parseDecimal(raw)
	if err != nil {
		return nil, err
	}
	if !d.IsPositive() {
		return nil, nil
	}
	v := d.InexactFloat64()
	return &v, nil
}

// Format renders a quantity without trailing zeros: 4, 2.5, 0.125.
func Format(v float64) string {
	return decimal.NewFromFloat(v).String()
}

// FormatLimit renders a limit, using unset for a nil value.
func FormatLimit(v *float64, unset string) string {
	if v == nil {
		return unset
	}
	return Format(*v)
}

func normalize(text string) string {
	return strings.ReplaceAll(strings.TrimSpace(text), ",", ".")
}

func parseDecimal(raw string) (decimal.Decimal, error) {
	if !decimalPattern.MatchString(raw) {
		return decimal.Zero, ErrInvalidFormat
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, ErrInvalidFormat
	}
	return d, nil
}

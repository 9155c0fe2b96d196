// Package amount converts Brazilian-formatted monetary cells into whole
// currency units. Fractions are always truncated toward zero, never rounded.
package amount

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// ErrEmpty is returned for null, NaN or blank cells. Callers decide
	// whether that means zero or missing.
	ErrEmpty = errors.New("empty amount")
	// ErrUnparseable is returned when no integer can be read from a cell.
	ErrUnparseable = errors.New("unparseable amount")
)

// currencySymbols are stripped before parsing. Longer symbols come first so
// "R$" is not reduced to "R".
var currencySymbols = []string{"US$", "R$", "$", "€"}

// Parse converts a raw cell value to whole currency units.
//
// Integers pass through, floats and decimals are truncated toward zero and
// text is handled by ParseString.
func Parse(raw any) (int64, error) {
	switch v := raw.(type) {
	case nil:
		return 0, ErrEmpty
	case int:
		return int64(v), nil
	case int8:
		return int64(v), nil
	case int16:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case uint:
		return fromUint(uint64(v))
	case uint8:
		return int64(v), nil
	case uint16:
		return int64(v), nil
	case uint32:
		return int64(v), nil
	case uint64:
		return fromUint(v)
	case float32:
		return fromFloat(float64(v))
	case float64:
		return fromFloat(v)
	case decimal.Decimal:
		return fromDecimal(v)
	case string:
		return ParseString(v)
	case []byte:
		return ParseString(string(v))
	default:
		return 0, fmt.Errorf("%w: unsupported cell type %T", ErrUnparseable, raw)
	}
}

// ParseString parses locale-formatted monetary text.
//
// A comma is the decimal separator: everything from the first comma on is
// dropped. Without a comma, several periods are thousands separators and a
// single period is a decimal point. Parentheses are removed but do not
// negate the value.
func ParseString(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrEmpty
	}
	cleaned := s
	for _, sym := range currencySymbols {
		cleaned = strings.ReplaceAll(cleaned, sym, "")
	}
	cleaned = strings.NewReplacer("(", "", ")", "").Replace(cleaned)
	cleaned = strings.TrimSpace(cleaned)

	switch {
	case strings.Contains(cleaned, ","):
		cleaned, _, _ = strings.Cut(cleaned, ",")
	case strings.Count(cleaned, ".") == 1:
		cleaned, _, _ = strings.Cut(cleaned, ".")
	}
	// Multiple periods fall through: they are stripped with the other
	// non-digit characters.
	digits := keepDigits(cleaned)
	if !strings.ContainsAny(digits, "0123456789") {
		return 0, fmt.Errorf("%w: %q", ErrUnparseable, s)
	}
	d, err := decimal.NewFromString(digits)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrUnparseable, s)
	}
	return fromDecimal(d)
}

// keepDigits drops every rune that is not an ASCII digit or a minus sign.
func keepDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' || r == '-' {
			return r
		}
		return -1
	}, s)
}

func fromFloat(f float64) (int64, error) {
	if math.IsNaN(f) {
		return 0, ErrEmpty
	}
	if math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %v", ErrUnparseable, f)
	}
	return fromDecimal(decimal.NewFromFloat(f))
}

func fromDecimal(d decimal.Decimal) (int64, error) {
	whole := d.Truncate(0)
	if !whole.BigInt().IsInt64() {
		return 0, fmt.Errorf("%w: %s overflows int64", ErrUnparseable, d)
	}
	return whole.IntPart(), nil
}

func fromUint(u uint64) (int64, error) {
	if u > math.MaxInt64 {
		return 0, fmt.Errorf("%w: %d overflows int64", ErrUnparseable, u)
	}
	return int64(u), nil
}

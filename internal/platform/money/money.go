package money

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Every amount crossing the payment gateway boundary is integer minor
// units (cents). Conversion from the caller's major-unit string happens
// here and nowhere else; fractional cents are a caller bug and are
// rejected rather than truncated.

// ParseMajor converts a major-unit decimal string ("12.34") into minor
// units (1234). At most two fraction digits are allowed.
func ParseMajor(value string) (int64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, fmt.Errorf("amount is required")
	}

	negative := false
	if strings.HasPrefix(trimmed, "-") {
		negative = true
		trimmed = trimmed[1:]
	}

	whole := trimmed
	frac := ""
	if idx := strings.IndexByte(trimmed, '.'); idx >= 0 {
		whole = trimmed[:idx]
		frac = trimmed[idx+1:]
	}
	if whole == "" {
		whole = "0"
	}
	if len(frac) > 2 {
		return 0, fmt.Errorf("amount %q has sub-cent precision", value)
	}
	for len(frac) < 2 {
		frac += "0"
	}

	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", value, err)
	}
	cents, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", value, err)
	}

	if units > (math.MaxInt64-cents)/100 {
		return 0, fmt.Errorf("amount %q is out of range", value)
	}

	total := units*100 + cents
	if negative {
		total = -total
	}
	if total <= 0 {
		return 0, fmt.Errorf("amount must be greater than zero, got %q", value)
	}

	return total, nil
}

// FormatMajor renders minor units back as a major-unit decimal string:
// 1234 -> "12.34".
func FormatMajor(minor int64) string {
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}
	return fmt.Sprintf("%s%d.%02d", sign, minor/100, minor%100)
}

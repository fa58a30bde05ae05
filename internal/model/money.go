package model

import (
	"math"
	"strconv"
	"strings"
)

// All amounts in the storefront are Vietnamese dong, which has no minor unit.
// The backend serializes prices as JSON numbers but a few legacy endpoints
// (shipping fees, VNPay return parameters) still return them as strings, so
// the parsers here accept both integer and decimal text.

// ParseVND converts a string amount to int64 dong.
// Handles edge cases: empty strings, decimal text, large values.
// Examples: "100000" → 100000, "100000.00" → 100000, "" → 0
func ParseVND(s string) int64 {
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	// math.Round handles both positive and negative numbers correctly
	return int64(math.Round(f))
}

// FormatVND renders an amount with thousands separators and currency suffix,
// matching the storefront display convention. Examples: 250000 → "250.000 ₫".
func FormatVND(amount int64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}

	digits := strconv.FormatInt(amount, 10)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}

	out := b.String() + " ₫"
	if neg {
		out = "-" + out
	}
	return out
}

// LineTotal computes unit price times quantity for a cart line.
// Kept as a named helper so cart total derivation has a single definition.
func LineTotal(unitPrice int64, quantity int) int64 {
	return unitPrice * int64(quantity)
}

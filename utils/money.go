package utils

import (
	"math"
	"strconv"
	"strings"
)

// PricePlaceholder is rendered wherever a price is absent or not positive.
const PricePlaceholder = " --- "

// FormatARS formats an amount as an Argentinian peso string like
// "$12.500,75": dot as thousands separator, comma before the two
// decimal places.
func FormatARS(amount float64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}

	cents := int64(math.Round(amount * 100))
	whole := cents / 100
	frac := cents % 100

	s := strconv.FormatInt(whole, 10)

	var b strings.Builder
	// Pre-allocate: digits + separators + "$" + ",dd"
	b.Grow(len(s) + len(s)/3 + 5)
	if neg {
		b.WriteString("-$")
	} else {
		b.WriteString("$")
	}

	// Insert separators from the left.
	rem := len(s) % 3
	if rem == 0 {
		rem = 3
	}
	b.WriteString(s[:rem])
	for i := rem; i < len(s); i += 3 {
		b.WriteByte('.')
		b.WriteString(s[i : i+3])
	}

	b.WriteByte(',')
	if frac < 10 {
		b.WriteByte('0')
	}
	b.WriteString(strconv.FormatInt(frac, 10))

	return b.String()
}

// RenderPrice formats a price for display. Amounts that are absent or
// not positive render as the placeholder dash string.
func RenderPrice(amount float64) string {
	if amount <= 0 {
		return PricePlaceholder
	}
	return FormatARS(amount)
}

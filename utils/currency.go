package utils

import (
	"fmt"
	"math"
	"strings"
)

// Round2 rounds a monetary amount to 2 decimal places.
func Round2(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// FormatCurrencyCRC formats an amount as Costa Rican colones for receipts.
// Example: 9600 -> "₡9 600,00" (space as thousands separator, comma decimals).
func FormatCurrencyCRC(amount float64) string {
	formatted := fmt.Sprintf("%.2f", Round2(amount))

	parts := strings.Split(formatted, ".")
	integerPart := parts[0]
	decimalPart := parts[1]

	negative := strings.HasPrefix(integerPart, "-")
	if negative {
		integerPart = integerPart[1:]
	}

	var groups []string
	for i := len(integerPart); i > 0; i -= 3 {
		start := i - 3
		if start < 0 {
			start = 0
		}
		groups = append([]string{integerPart[start:i]}, groups...)
	}

	out := "₡" + strings.Join(groups, " ") + "," + decimalPart
	if negative {
		out = "-" + out
	}
	return out
}

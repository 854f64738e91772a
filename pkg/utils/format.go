// Package utils provides shared utility functions.
package utils

import (
	"fmt"
	"math"
	"time"
)

// FormatCurrency formats an amount as US dollars with 2 decimal places.
// NaN amounts (from permissive CSV imports) render as "$NaN".
func FormatCurrency(amount float64) string {
	if math.IsNaN(amount) {
		return "$NaN"
	}
	if amount < 0 {
		return fmt.Sprintf("-$%.2f", -amount)
	}
	return fmt.Sprintf("$%.2f", amount)
}

// FormatPnL formats a profit/loss amount with an explicit sign for gains.
func FormatPnL(pl float64) string {
	formatted := FormatCurrency(pl)
	if pl > 0 {
		return "+" + formatted
	}
	return formatted
}

// FormatPercent formats a percentage with 1 decimal place.
func FormatPercent(value float64) string {
	return fmt.Sprintf("%.1f%%", value)
}

// FormatDate formats a calendar date for display.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// ShortID truncates an id for display in tables.
func ShortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}

// Package format renders calculator values as display strings.
package format

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Currency returns a currency string with a dollar sign and thousands separators (e.g., "-$1,234.56").
func Currency(amount float64) string {
	formatted := printer.Sprintf("%.2f", math.Abs(amount))
	if amount < 0 {
		return "-$" + formatted
	}
	return "$" + formatted
}

// Number formats value with thousands separators and a fixed number of decimals.
func Number(value float64, decimals int) string {
	if decimals < 0 {
		decimals = 0
	}
	return printer.Sprintf(fmt.Sprintf("%%.%df", decimals), value)
}

// Percent formats a percentage value such as 12.34 as "12.3%".
func Percent(value float64) string {
	return fmt.Sprintf("%.1f%%", value)
}

// Duration describes a number of months in years and months.
func Duration(months float64) string {
	if months < 1 {
		return "Less than a month"
	}

	years := int(math.Floor(months / 12))
	remaining := int(math.Round(math.Mod(months, 12)))

	if years == 0 {
		return plural(remaining, "month")
	}
	if remaining == 0 {
		return plural(years, "year")
	}
	return plural(years, "year") + ", " + plural(remaining, "month")
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

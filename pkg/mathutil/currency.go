// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/BenTyson/calcverse/pkg/constants"
)

// Round rounds a value to two decimals, i.e. to represent real currency.
func Round(val float64) float64 {
	return math.Round(val*constants.DecimalPrecision) / constants.DecimalPrecision
}

// RoundPercent rounds a percentage to one decimal place.
func RoundPercent(val float64) float64 {
	return math.Round(val*constants.PercentPrecision) / constants.PercentPrecision
}

// RoundWhole rounds a value to the nearest whole unit.
func RoundWhole(val float64) float64 {
	return math.Round(val)
}

// CeilWhole rounds a value up to the next whole unit.
func CeilWhole(val float64) float64 {
	return math.Ceil(val)
}

// SafeDivide divides numerator by denominator, returning 0 unless the
// denominator is positive.
func SafeDivide(numerator, denominator float64) float64 {
	if denominator <= 0 {
		return 0
	}
	return numerator / denominator
}

// Clamp limits val to the closed interval [lo, hi].
func Clamp(val, lo, hi float64) float64 {
	return math.Max(lo, math.Min(val, hi))
}

// CalculatePercentage calculates what percentage value is of total
func CalculatePercentage(value, total float64) float64 {
	if total == 0 {
		return 0
	}
	return (value / total) * 100
}

// ApplyPercentage applies a percentage to a value
func ApplyPercentage(value, percentage float64) float64 {
	return value * (percentage / constants.PercentageMultiplier)
}

// Fraction converts a percentage such as 15.3 into its fraction 0.153.
func Fraction(percentage float64) float64 {
	return percentage / constants.PercentageMultiplier
}

package format

import (
	"fmt"

	"github.com/BenTyson/calcverse/pkg/calculator"
)

// Value renders value according to unit.
func Value(value float64, unit calculator.Unit) string {
	switch unit {
	case calculator.UnitCurrency:
		return Currency(value)
	case calculator.UnitPercent:
		return Percent(value)
	case calculator.UnitCount:
		return Number(value, 0)
	case calculator.UnitHours:
		return Number(value, 1) + " hrs"
	case calculator.UnitMonths:
		return Duration(value)
	case calculator.UnitMultiplier:
		return fmt.Sprintf("%.2fx", value)
	default:
		return Number(value, 2)
	}
}

// Metric renders a headline metric value.
func Metric(m calculator.Metric) string {
	return Value(m.Value, m.Unit)
}

// Line renders a breakdown amount, wrapping deductions in parentheses.
func Line(item calculator.LineItem) string {
	if item.IsDeduction && item.Amount > 0 {
		return "(" + Currency(item.Amount) + ")"
	}
	return Currency(item.Amount)
}

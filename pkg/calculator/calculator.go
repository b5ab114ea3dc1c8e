// Package calculator holds the result shapes shared by every calculator
// package: breakdown lines, headline metrics, value ranges and the
// quick/advanced input mode.
package calculator

import (
	"strings"
)

// Mode selects which input fields a caller exposes. Quick mode pins the
// advanced fields to the calculator's quick defaults.
type Mode string

const (
	ModeQuick    Mode = "quick"
	ModeAdvanced Mode = "advanced"
)

// DefaultMode is the mode used when none is requested.
const DefaultMode = ModeQuick

// ParseMode converts a user supplied mode name. Unknown or empty names fall
// back to DefaultMode.
func ParseMode(s string) Mode {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeAdvanced:
		return ModeAdvanced
	case ModeQuick:
		return ModeQuick
	default:
		return DefaultMode
	}
}

// Valid reports whether m is one of the known modes.
func (m Mode) Valid() bool {
	return m == ModeQuick || m == ModeAdvanced
}

// String implements fmt.Stringer.
func (m Mode) String() string {
	return string(m)
}

// LineItem is one row of a result breakdown table.
type LineItem struct {
	Label       string  `json:"label" yaml:"label"`
	Amount      float64 `json:"amount" yaml:"amount"`
	IsDeduction bool    `json:"isDeduction,omitempty" yaml:"isDeduction,omitempty"`
	Percentage  float64 `json:"percentage,omitempty" yaml:"percentage,omitempty"`
}

// Unit describes how a Metric value should be displayed.
type Unit string

const (
	UnitCurrency   Unit = "currency"
	UnitPercent    Unit = "percent"
	UnitCount      Unit = "count"
	UnitHours      Unit = "hours"
	UnitMonths     Unit = "months"
	UnitMultiplier Unit = "multiplier"
)

// Metric is a headline value shown as a result card.
type Metric struct {
	Key   string  `json:"key" yaml:"key"`
	Label string  `json:"label" yaml:"label"`
	Value float64 `json:"value" yaml:"value"`
	Unit  Unit    `json:"unit" yaml:"unit"`
}

// Range is a low/mid/high estimate.
type Range struct {
	Low  float64 `json:"low" yaml:"low"`
	Mid  float64 `json:"mid" yaml:"mid"`
	High float64 `json:"high" yaml:"high"`
}

// Map applies fn to every bound of the range.
func (r Range) Map(fn func(float64) float64) Range {
	return Range{Low: fn(r.Low), Mid: fn(r.Mid), High: fn(r.High)}
}

// Reportable is implemented by every calculator result so that callers can
// render cards and breakdown tables without knowing the concrete type.
type Reportable interface {
	Highlights() []Metric
	Lines() []LineItem
}

// Override copies *src into *dst when src is set. Calculator override
// structs use it to merge their pointer fields one by one.
func Override[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}

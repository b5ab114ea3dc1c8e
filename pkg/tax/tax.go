// Package tax holds the 2024 federal income tax tables and payroll tax rates
// used by the tax estimators.
package tax

import (
	"math"
	"strings"
)

// FilingStatus is an IRS filing status.
type FilingStatus string

const (
	Single          FilingStatus = "single"
	MarriedJoint    FilingStatus = "married_joint"
	MarriedSeparate FilingStatus = "married_separate"
	HeadOfHousehold FilingStatus = "head_household"
)

// Payroll and self-employment tax constants for 2024.
const (
	SocialSecurityRate       = 0.062
	MedicareRate             = 0.0145
	SelfEmploymentRate       = 0.153
	SelfEmploymentSSRate     = 0.124
	SelfEmploymentMedicare   = 0.029
	SelfEmploymentTaxable    = 0.9235
	SocialSecurityWageBase   = 168600.0
	DefaultSelfEmploymentPct = 15.3
)

// Bracket is one marginal rate band. Max is +Inf for the top band.
type Bracket struct {
	Min  float64
	Max  float64
	Rate float64
}

var brackets = map[FilingStatus][]Bracket{
	Single: {
		{0, 11600, 0.10},
		{11600, 47150, 0.12},
		{47150, 100525, 0.22},
		{100525, 191950, 0.24},
		{191950, 243725, 0.32},
		{243725, 609350, 0.35},
		{609350, math.Inf(1), 0.37},
	},
	MarriedJoint: {
		{0, 23200, 0.10},
		{23200, 94300, 0.12},
		{94300, 201050, 0.22},
		{201050, 383900, 0.24},
		{383900, 487450, 0.32},
		{487450, 731200, 0.35},
		{731200, math.Inf(1), 0.37},
	},
	MarriedSeparate: {
		{0, 11600, 0.10},
		{11600, 47150, 0.12},
		{47150, 100525, 0.22},
		{100525, 191950, 0.24},
		{191950, 243725, 0.32},
		{243725, 365600, 0.35},
		{365600, math.Inf(1), 0.37},
	},
	HeadOfHousehold: {
		{0, 16550, 0.10},
		{16550, 63100, 0.12},
		{63100, 100500, 0.22},
		{100500, 191950, 0.24},
		{191950, 243700, 0.32},
		{243700, 609350, 0.35},
		{609350, math.Inf(1), 0.37},
	},
}

var standardDeductions = map[FilingStatus]float64{
	Single:          14600,
	MarriedJoint:    29200,
	MarriedSeparate: 14600,
	HeadOfHousehold: 21900,
}

// Statuses lists the supported filing statuses in display order.
func Statuses() []FilingStatus {
	return []FilingStatus{Single, MarriedJoint, MarriedSeparate, HeadOfHousehold}
}

// ParseFilingStatus normalizes s. Unknown statuses fall back to Single.
func ParseFilingStatus(s string) FilingStatus {
	status := FilingStatus(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := brackets[status]; ok {
		return status
	}
	return Single
}

// Valid reports whether the status has a bracket table.
func (f FilingStatus) Valid() bool {
	_, ok := brackets[f]
	return ok
}

// Brackets returns a copy of the bracket table for the status.
func Brackets(status FilingStatus) []Bracket {
	table := brackets[ParseFilingStatus(string(status))]
	out := make([]Bracket, len(table))
	copy(out, table)
	return out
}

// StandardDeduction returns the 2024 standard deduction for the status.
func StandardDeduction(status FilingStatus) float64 {
	return standardDeductions[ParseFilingStatus(string(status))]
}

// FederalTax applies the progressive bracket table to taxable income.
// Negative income owes nothing.
func FederalTax(taxable float64, status FilingStatus) float64 {
	remaining := math.Max(0, taxable)
	tax := 0.0
	for _, b := range brackets[ParseFilingStatus(string(status))] {
		if remaining <= 0 {
			break
		}
		inBracket := math.Min(remaining, b.Max-b.Min)
		tax += inBracket * b.Rate
		remaining -= inBracket
	}
	return tax
}

// MarginalRate returns the rate of the band the last dollar of taxable
// income falls in.
func MarginalRate(taxable float64, status FilingStatus) float64 {
	table := brackets[ParseFilingStatus(string(status))]
	for _, b := range table {
		if taxable <= b.Max {
			return b.Rate
		}
	}
	return table[len(table)-1].Rate
}

// Package projectrate turns an hourly rate and an hour estimate into a
// fixed project quote with buffers, adjustments and tiered pricing.
package projectrate

import (
	"github.com/BenTyson/calcverse/pkg/calculator"
	"github.com/BenTyson/calcverse/pkg/mathutil"
)

// Option is a selectable multiplier.
type Option struct {
	Value float64 `json:"value"`
	Label string  `json:"label"`
}

// ComplexityOptions lists the complexity multipliers offered to users.
func ComplexityOptions() []Option {
	return []Option{
		{Value: 1.0, Label: "Standard"},
		{Value: 1.15, Label: "Moderate (+15%)"},
		{Value: 1.25, Label: "Complex (+25%)"},
		{Value: 1.5, Label: "Very Complex (+50%)"},
	}
}

// RushOptions lists the timeline multipliers offered to users.
func RushOptions() []Option {
	return []Option{
		{Value: 1.0, Label: "Standard Timeline"},
		{Value: 1.25, Label: "Rush (+25%)"},
		{Value: 1.5, Label: "Urgent (+50%)"},
		{Value: 2.0, Label: "Emergency (+100%)"},
	}
}

// Tier is one of the three quoted price points.
type Tier struct {
	Label       string  `json:"label"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
}

// Inputs describes the rate, the estimate and the adjustments to it.
type Inputs struct {
	HourlyRate           float64 `json:"hourlyRate" yaml:"hourlyRate"`
	EstimatedHours       float64 `json:"estimatedHours" yaml:"estimatedHours"`
	ComplexityMultiplier float64 `json:"complexityMultiplier" yaml:"complexityMultiplier"`
	RushMultiplier       float64 `json:"rushMultiplier" yaml:"rushMultiplier"`
	RevisionRounds       float64 `json:"revisionRounds" yaml:"revisionRounds"`
	HoursPerRevision     float64 `json:"hoursPerRevision" yaml:"hoursPerRevision"`
	ScopeBuffer          float64 `json:"scopeBuffer" yaml:"scopeBuffer"`
	Expenses             float64 `json:"expenses" yaml:"expenses"`
	ProfitMargin         float64 `json:"profitMargin" yaml:"profitMargin"`
}

// Results holds the quote and its tiered alternatives.
type Results struct {
	BasePrice            float64               `json:"basePrice"`
	ComplexityAdjustment float64               `json:"complexityAdjustment"`
	RushAdjustment       float64               `json:"rushAdjustment"`
	RevisionCost         float64               `json:"revisionCost"`
	ScopeBufferAmount    float64               `json:"scopeBufferAmount"`
	ExpensesTotal        float64               `json:"expensesTotal"`
	ProfitAmount         float64               `json:"profitAmount"`
	TotalProjectPrice    float64               `json:"totalProjectPrice"`
	TotalHours           float64               `json:"totalHours"`
	EffectiveHourlyRate  float64               `json:"effectiveHourlyRate"`
	Breakdown            []calculator.LineItem `json:"breakdown"`
	PricingTiers         []Tier                `json:"pricingTiers"`
}

// Overrides pins input fields when set.
type Overrides struct {
	ComplexityMultiplier *float64 `json:"complexityMultiplier,omitempty"`
	RushMultiplier       *float64 `json:"rushMultiplier,omitempty"`
	RevisionRounds       *float64 `json:"revisionRounds,omitempty"`
	HoursPerRevision     *float64 `json:"hoursPerRevision,omitempty"`
	ScopeBuffer          *float64 `json:"scopeBuffer,omitempty"`
	Expenses             *float64 `json:"expenses,omitempty"`
	ProfitMargin         *float64 `json:"profitMargin,omitempty"`
}

// Apply returns in with every set override copied over it.
func (o Overrides) Apply(in Inputs) Inputs {
	calculator.Override(&in.ComplexityMultiplier, o.ComplexityMultiplier)
	calculator.Override(&in.RushMultiplier, o.RushMultiplier)
	calculator.Override(&in.RevisionRounds, o.RevisionRounds)
	calculator.Override(&in.HoursPerRevision, o.HoursPerRevision)
	calculator.Override(&in.ScopeBuffer, o.ScopeBuffer)
	calculator.Override(&in.Expenses, o.Expenses)
	calculator.Override(&in.ProfitMargin, o.ProfitMargin)
	return in
}

// DefaultInputs returns a twenty hour project at $100 an hour.
func DefaultInputs() Inputs {
	return Inputs{
		HourlyRate:           100,
		EstimatedHours:       20,
		ComplexityMultiplier: 1.0,
		RushMultiplier:       1.0,
		RevisionRounds:       2,
		HoursPerRevision:     2,
		ScopeBuffer:          15,
		ProfitMargin:         10,
	}
}

// QuickDefaults prices a quick quote with no multipliers or expenses.
func QuickDefaults() Overrides {
	return Overrides{
		ComplexityMultiplier: calculator.Ptr(1.0),
		RushMultiplier:       calculator.Ptr(1.0),
		RevisionRounds:       calculator.Ptr(2.0),
		HoursPerRevision:     calculator.Ptr(2.0),
		ScopeBuffer:          calculator.Ptr(15.0),
		Expenses:             calculator.Ptr(0.0),
		ProfitMargin:         calculator.Ptr(10.0),
	}
}

// Calculate builds the quote. Expenses pass through without buffer or
// margin.
func Calculate(in Inputs) Results {
	base := in.HourlyRate * in.EstimatedHours
	complexity := base * (in.ComplexityMultiplier - 1)
	rush := base * (in.RushMultiplier - 1)
	revisionHours := in.RevisionRounds * in.HoursPerRevision
	revisions := revisionHours * in.HourlyRate

	subtotal := base + complexity + rush + revisions
	buffer := mathutil.ApplyPercentage(subtotal, in.ScopeBuffer)
	profit := (subtotal + buffer) * mathutil.Fraction(in.ProfitMargin)
	total := subtotal + buffer + profit + in.Expenses
	hours := in.EstimatedHours + revisionHours

	return Results{
		BasePrice:            mathutil.Round(base),
		ComplexityAdjustment: mathutil.Round(complexity),
		RushAdjustment:       mathutil.Round(rush),
		RevisionCost:         mathutil.Round(revisions),
		ScopeBufferAmount:    mathutil.Round(buffer),
		ExpensesTotal:        mathutil.Round(in.Expenses),
		ProfitAmount:         mathutil.Round(profit),
		TotalProjectPrice:    mathutil.Round(total),
		TotalHours:           hours,
		EffectiveHourlyRate:  mathutil.Round(mathutil.SafeDivide(total, hours)),
		Breakdown: []calculator.LineItem{
			{Label: "Base Price (Hours × Rate)", Amount: mathutil.Round(base)},
			{Label: "Complexity Adjustment", Amount: mathutil.Round(complexity)},
			{Label: "Rush Fee", Amount: mathutil.Round(rush)},
			{Label: "Revision Budget", Amount: mathutil.Round(revisions)},
			{Label: "Scope Buffer", Amount: mathutil.Round(buffer)},
			{Label: "Profit Margin", Amount: mathutil.Round(profit)},
			{Label: "Expenses", Amount: mathutil.Round(in.Expenses)},
		},
		PricingTiers: PricingTiers(total),
	}
}

// PricingTiers quotes budget, standard and premium prices in whole dollars.
func PricingTiers(total float64) []Tier {
	return []Tier{
		{Label: "Budget", Price: mathutil.RoundWhole(total * 0.75), Description: "Reduced scope, fewer revisions"},
		{Label: "Standard", Price: mathutil.RoundWhole(total), Description: "Full scope as estimated"},
		{Label: "Premium", Price: mathutil.RoundWhole(total * 1.35), Description: "Priority delivery, extra revisions"},
	}
}

// Highlights implements calculator.Reportable.
func (r Results) Highlights() []calculator.Metric {
	return []calculator.Metric{
		{Key: "totalProjectPrice", Label: "Project Price", Value: r.TotalProjectPrice, Unit: calculator.UnitCurrency},
		{Key: "effectiveHourlyRate", Label: "Effective Hourly Rate", Value: r.EffectiveHourlyRate, Unit: calculator.UnitCurrency},
		{Key: "totalHours", Label: "Total Hours", Value: r.TotalHours, Unit: calculator.UnitHours},
		{Key: "profitAmount", Label: "Profit", Value: r.ProfitAmount, Unit: calculator.UnitCurrency},
	}
}

// Lines implements calculator.Reportable.
func (r Results) Lines() []calculator.LineItem {
	return r.Breakdown
}

// Package freelancer works backwards from a desired take-home income to the
// hourly rate a freelancer needs to charge.
package freelancer

import (
	"github.com/BenTyson/calcverse/pkg/calculator"
	"github.com/BenTyson/calcverse/pkg/constants"
	"github.com/BenTyson/calcverse/pkg/mathutil"
)

// Inputs describes the income goal and the working year.
type Inputs struct {
	DesiredAnnualIncome    float64 `json:"desiredAnnualIncome" yaml:"desiredAnnualIncome"`
	AnnualBusinessExpenses float64 `json:"annualBusinessExpenses" yaml:"annualBusinessExpenses"`
	SelfEmploymentTaxRate  float64 `json:"selfEmploymentTaxRate" yaml:"selfEmploymentTaxRate"`
	EffectiveTaxRate       float64 `json:"effectiveTaxRate" yaml:"effectiveTaxRate"`
	BillableHoursPerWeek   float64 `json:"billableHoursPerWeek" yaml:"billableHoursPerWeek"`
	WeeksWorkedPerYear     float64 `json:"weeksWorkedPerYear" yaml:"weeksWorkedPerYear"`
	ProfitMargin           float64 `json:"profitMargin" yaml:"profitMargin"`
}

// Results are in whole dollars, rounded up.
type Results struct {
	HourlyRate              float64               `json:"hourlyRate"`
	DailyRate               float64               `json:"dailyRate"`
	MonthlyRevenue          float64               `json:"monthlyRevenue"`
	AnnualRevenue           float64               `json:"annualRevenue"`
	TotalTaxes              float64               `json:"totalTaxes"`
	EffectiveHourlyAfterTax float64               `json:"effectiveHourlyAfterTax"`
	BillableHours           float64               `json:"billableHours"`
	Breakdown               []calculator.LineItem `json:"breakdown"`
}

// DefaultInputs returns an $80,000 goal billed over 48 weeks.
func DefaultInputs() Inputs {
	return Inputs{
		DesiredAnnualIncome:    80000,
		AnnualBusinessExpenses: 5000,
		SelfEmploymentTaxRate:  15.3,
		EffectiveTaxRate:       22,
		BillableHoursPerWeek:   30,
		WeeksWorkedPerYear:     48,
		ProfitMargin:           20,
	}
}

// Calculate grosses the desired income up for taxes, adds expenses and then
// the profit margin. A combined tax rate or margin of 100% or more, or zero
// billable hours, yields zero rates.
func Calculate(in Inputs) Results {
	hours := in.BillableHoursPerWeek * in.WeeksWorkedPerYear
	seRate := mathutil.Fraction(in.SelfEmploymentTaxRate)
	incomeRate := mathutil.Fraction(in.EffectiveTaxRate)
	margin := mathutil.Fraction(in.ProfitMargin)

	beforeTax := mathutil.SafeDivide(in.DesiredAnnualIncome, 1-(seRate+incomeRate))
	withExpenses := beforeTax + in.AnnualBusinessExpenses
	withProfit := mathutil.SafeDivide(withExpenses, 1-margin)
	if beforeTax == 0 && in.DesiredAnnualIncome > 0 {
		withExpenses, withProfit = 0, 0
	}
	if hours <= 0 {
		withProfit = 0
	}

	hourly := mathutil.SafeDivide(withProfit, hours)
	seTax := beforeTax * seRate
	incomeTax := beforeTax * incomeRate
	profit := withProfit - withExpenses
	if withProfit == 0 {
		profit = 0
	}

	return Results{
		HourlyRate:              mathutil.CeilWhole(hourly),
		DailyRate:               mathutil.CeilWhole(hourly * constants.HoursPerDay),
		MonthlyRevenue:          mathutil.CeilWhole(withProfit / constants.MonthsPerYear),
		AnnualRevenue:           mathutil.CeilWhole(withProfit),
		TotalTaxes:              mathutil.CeilWhole(seTax + incomeTax),
		EffectiveHourlyAfterTax: mathutil.RoundWhole(mathutil.SafeDivide(in.DesiredAnnualIncome, hours)),
		BillableHours:           hours,
		Breakdown: []calculator.LineItem{
			{Label: "Target Take-Home", Amount: in.DesiredAnnualIncome},
			{Label: "Self-Employment Tax", Amount: mathutil.CeilWhole(seTax)},
			{Label: "Income Tax", Amount: mathutil.CeilWhole(incomeTax)},
			{Label: "Business Expenses", Amount: in.AnnualBusinessExpenses},
			{Label: "Profit Margin", Amount: mathutil.CeilWhole(profit)},
		},
	}
}

// Highlights implements calculator.Reportable.
func (r Results) Highlights() []calculator.Metric {
	return []calculator.Metric{
		{Key: "hourlyRate", Label: "Hourly Rate", Value: r.HourlyRate, Unit: calculator.UnitCurrency},
		{Key: "dailyRate", Label: "Day Rate", Value: r.DailyRate, Unit: calculator.UnitCurrency},
		{Key: "monthlyRevenue", Label: "Monthly Revenue", Value: r.MonthlyRevenue, Unit: calculator.UnitCurrency},
		{Key: "annualRevenue", Label: "Annual Revenue", Value: r.AnnualRevenue, Unit: calculator.UnitCurrency},
		{Key: "effectiveHourlyAfterTax", Label: "Take-Home per Hour", Value: r.EffectiveHourlyAfterTax, Unit: calculator.UnitCurrency},
	}
}

// Lines implements calculator.Reportable.
func (r Results) Lines() []calculator.LineItem {
	return r.Breakdown
}

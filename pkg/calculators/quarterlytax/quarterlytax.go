// Package quarterlytax estimates federal and state quarterly estimated tax
// payments for self-employed income.
package quarterlytax

import (
	"math"
	"time"

	"github.com/BenTyson/calcverse/pkg/calculator"
	"github.com/BenTyson/calcverse/pkg/constants"
	"github.com/BenTyson/calcverse/pkg/mathutil"
	"github.com/BenTyson/calcverse/pkg/tax"
)

// Inputs describes the year of self-employed income.
type Inputs struct {
	AnnualIncome          float64          `json:"annualIncome" yaml:"annualIncome"`
	FilingStatus          tax.FilingStatus `json:"filingStatus" yaml:"filingStatus"`
	BusinessExpenses      float64          `json:"businessExpenses" yaml:"businessExpenses"`
	SelfEmploymentTaxRate float64          `json:"selfEmploymentTaxRate" yaml:"selfEmploymentTaxRate"`
	StateTaxRate          float64          `json:"stateTaxRate" yaml:"stateTaxRate"`
	OtherIncome           float64          `json:"otherIncome" yaml:"otherIncome"`
	EstimatedDeductions   float64          `json:"estimatedDeductions" yaml:"estimatedDeductions"`
	AlreadyPaid           float64          `json:"alreadyPaid" yaml:"alreadyPaid"`
}

// Results holds the annual liability and the payment due each quarter.
type Results struct {
	NetSelfEmploymentIncome   float64               `json:"netSelfEmploymentIncome"`
	SelfEmploymentTax         float64               `json:"selfEmploymentTax"`
	TaxableIncome             float64               `json:"taxableIncome"`
	FederalIncomeTax          float64               `json:"federalIncomeTax"`
	StateTax                  float64               `json:"stateTax"`
	TotalAnnualTax            float64               `json:"totalAnnualTax"`
	QuarterlyPayment          float64               `json:"quarterlyPayment"`
	CurrentQuarter            int                   `json:"currentQuarter"`
	RemainingQuarters         int                   `json:"remainingQuarters"`
	RemainingQuarterlyPayment float64               `json:"remainingQuarterlyPayment"`
	EffectiveTaxRate          float64               `json:"effectiveTaxRate"`
	Breakdown                 []calculator.LineItem `json:"breakdown"`
}

// Overrides pins input fields when set.
type Overrides struct {
	BusinessExpenses      *float64 `json:"businessExpenses,omitempty"`
	SelfEmploymentTaxRate *float64 `json:"selfEmploymentTaxRate,omitempty"`
	StateTaxRate          *float64 `json:"stateTaxRate,omitempty"`
	OtherIncome           *float64 `json:"otherIncome,omitempty"`
	EstimatedDeductions   *float64 `json:"estimatedDeductions,omitempty"`
	AlreadyPaid           *float64 `json:"alreadyPaid,omitempty"`
}

// Apply returns in with every set override copied over it.
func (o Overrides) Apply(in Inputs) Inputs {
	calculator.Override(&in.BusinessExpenses, o.BusinessExpenses)
	calculator.Override(&in.SelfEmploymentTaxRate, o.SelfEmploymentTaxRate)
	calculator.Override(&in.StateTaxRate, o.StateTaxRate)
	calculator.Override(&in.OtherIncome, o.OtherIncome)
	calculator.Override(&in.EstimatedDeductions, o.EstimatedDeductions)
	calculator.Override(&in.AlreadyPaid, o.AlreadyPaid)
	return in
}

// DefaultInputs returns a single filer earning $75,000.
func DefaultInputs() Inputs {
	return Inputs{
		AnnualIncome:          75000,
		FilingStatus:          tax.Single,
		BusinessExpenses:      10000,
		SelfEmploymentTaxRate: tax.DefaultSelfEmploymentPct,
		StateTaxRate:          5,
	}
}

// QuickDefaults assumes self-employment is the only income and that nothing
// has been paid yet.
func QuickDefaults() Overrides {
	return Overrides{
		BusinessExpenses:      calculator.Ptr(10000.0),
		SelfEmploymentTaxRate: calculator.Ptr(tax.DefaultSelfEmploymentPct),
		StateTaxRate:          calculator.Ptr(5.0),
		OtherIncome:           calculator.Ptr(0.0),
		EstimatedDeductions:   calculator.Ptr(0.0),
		AlreadyPaid:           calculator.Ptr(0.0),
	}
}

// Quarter returns the calendar quarter (1-4) containing t.
func Quarter(t time.Time) int {
	return int(math.Ceil(float64(t.Month()) / 3))
}

// RemainingQuarters returns how many estimated payments are left in the
// calendar year of t, counting the current quarter.
func RemainingQuarters(t time.Time) int {
	return max(1, constants.QuartersPerYear+1-Quarter(t))
}

// Calculate estimates annual liability and spreads whatever is still unpaid
// over the quarters remaining in the year of asOf.
func Calculate(in Inputs, asOf time.Time) Results {
	status := tax.ParseFilingStatus(string(in.FilingStatus))

	netSE := math.Max(0, in.AnnualIncome-in.BusinessExpenses)
	seTax := netSE * tax.SelfEmploymentTaxable * mathutil.Fraction(in.SelfEmploymentTaxRate)
	seDeduction := seTax / 2

	totalIncome := netSE + in.OtherIncome
	deductions := math.Max(tax.StandardDeduction(status), in.EstimatedDeductions)
	taxable := math.Max(0, totalIncome-seDeduction-deductions)

	federal := tax.FederalTax(taxable, status)
	state := mathutil.ApplyPercentage(taxable, in.StateTaxRate)
	total := seTax + federal + state

	remaining := RemainingQuarters(asOf)
	unpaid := math.Max(0, total-in.AlreadyPaid)

	return Results{
		NetSelfEmploymentIncome:   mathutil.Round(netSE),
		SelfEmploymentTax:         mathutil.Round(seTax),
		TaxableIncome:             mathutil.Round(taxable),
		FederalIncomeTax:          mathutil.Round(federal),
		StateTax:                  mathutil.Round(state),
		TotalAnnualTax:            mathutil.Round(total),
		QuarterlyPayment:          mathutil.Round(total / constants.QuartersPerYear),
		CurrentQuarter:            Quarter(asOf),
		RemainingQuarters:         remaining,
		RemainingQuarterlyPayment: mathutil.Round(unpaid / float64(remaining)),
		EffectiveTaxRate:          mathutil.RoundPercent(mathutil.SafeDivide(total, totalIncome) * 100),
		Breakdown: []calculator.LineItem{
			{Label: "Self-Employment Tax", Amount: mathutil.Round(seTax)},
			{Label: "Federal Income Tax", Amount: mathutil.Round(federal)},
			{Label: "State Tax", Amount: mathutil.Round(state)},
			{Label: "SE Tax Deduction", Amount: -mathutil.Round(seDeduction), IsDeduction: true},
		},
	}
}

// Highlights implements calculator.Reportable.
func (r Results) Highlights() []calculator.Metric {
	return []calculator.Metric{
		{Key: "quarterlyPayment", Label: "Quarterly Payment", Value: r.QuarterlyPayment, Unit: calculator.UnitCurrency},
		{Key: "remainingQuarterlyPayment", Label: "Remaining Payments (each)", Value: r.RemainingQuarterlyPayment, Unit: calculator.UnitCurrency},
		{Key: "totalAnnualTax", Label: "Total Annual Tax", Value: r.TotalAnnualTax, Unit: calculator.UnitCurrency},
		{Key: "effectiveTaxRate", Label: "Effective Tax Rate", Value: r.EffectiveTaxRate, Unit: calculator.UnitPercent},
	}
}

// Lines implements calculator.Reportable.
func (r Results) Lines() []calculator.LineItem {
	return r.Breakdown
}

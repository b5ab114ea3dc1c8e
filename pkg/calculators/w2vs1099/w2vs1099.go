// Package w2vs1099 compares take-home pay for the same annual amount earned
// as a W2 employee and as a 1099 contractor.
package w2vs1099

import (
	"math"

	"github.com/BenTyson/calcverse/pkg/calculator"
	"github.com/BenTyson/calcverse/pkg/mathutil"
	"github.com/BenTyson/calcverse/pkg/tax"
)

// fallbackBreakEven is the salary multiple quoted when the contractor net is
// not positive.
const fallbackBreakEven = 1.3

// Inputs describes the offer and the costs of each arrangement.
type Inputs struct {
	AnnualSalary            float64          `json:"annualSalary" yaml:"annualSalary"`
	FilingStatus            tax.FilingStatus `json:"filingStatus" yaml:"filingStatus"`
	EmployerBenefitsValue   float64          `json:"employerBenefitsValue" yaml:"employerBenefitsValue"`
	BusinessExpenses1099    float64          `json:"businessExpenses1099" yaml:"businessExpenses1099"`
	StateTaxRate            float64          `json:"stateTaxRate" yaml:"stateTaxRate"`
	RetirementContribution  float64          `json:"retirementContribution" yaml:"retirementContribution"`
	HealthInsuranceCost1099 float64          `json:"healthInsuranceCost1099" yaml:"healthInsuranceCost1099"`
}

// W2 is the employee side of the comparison.
type W2 struct {
	GrossIncome            float64 `json:"grossIncome"`
	FederalTax             float64 `json:"federalTax"`
	StateTax               float64 `json:"stateTax"`
	SocialSecurityMedicare float64 `json:"socialSecurityMedicare"`
	Retirement             float64 `json:"retirement"`
	NetIncome              float64 `json:"netIncome"`
	TotalBenefitsValue     float64 `json:"totalBenefitsValue"`
	EffectiveTaxRate       float64 `json:"effectiveTaxRate"`
}

// Contractor is the 1099 side of the comparison.
type Contractor struct {
	GrossIncome       float64 `json:"grossIncome"`
	BusinessExpenses  float64 `json:"businessExpenses"`
	SelfEmploymentTax float64 `json:"selfEmploymentTax"`
	FederalTax        float64 `json:"federalTax"`
	StateTax          float64 `json:"stateTax"`
	HealthInsurance   float64 `json:"healthInsurance"`
	NetIncome         float64 `json:"netIncome"`
	EffectiveTaxRate  float64 `json:"effectiveTaxRate"`
}

// Results holds both sides of the comparison.
type Results struct {
	W2             W2         `json:"w2"`
	Contractor     Contractor `json:"contractor"`
	Difference     float64    `json:"difference"`
	BreakEvenRate  float64    `json:"breakEvenRate"`
	Recommendation string     `json:"recommendation"`
}

// Overrides pins input fields when set.
type Overrides struct {
	EmployerBenefitsValue   *float64 `json:"employerBenefitsValue,omitempty"`
	BusinessExpenses1099    *float64 `json:"businessExpenses1099,omitempty"`
	StateTaxRate            *float64 `json:"stateTaxRate,omitempty"`
	RetirementContribution  *float64 `json:"retirementContribution,omitempty"`
	HealthInsuranceCost1099 *float64 `json:"healthInsuranceCost1099,omitempty"`
}

// Apply returns in with every set override copied over it.
func (o Overrides) Apply(in Inputs) Inputs {
	calculator.Override(&in.EmployerBenefitsValue, o.EmployerBenefitsValue)
	calculator.Override(&in.BusinessExpenses1099, o.BusinessExpenses1099)
	calculator.Override(&in.StateTaxRate, o.StateTaxRate)
	calculator.Override(&in.RetirementContribution, o.RetirementContribution)
	calculator.Override(&in.HealthInsuranceCost1099, o.HealthInsuranceCost1099)
	return in
}

// DefaultInputs returns a $100,000 offer for a single filer.
func DefaultInputs() Inputs {
	return Inputs{
		AnnualSalary:            100000,
		FilingStatus:            tax.Single,
		EmployerBenefitsValue:   15000,
		BusinessExpenses1099:    5000,
		StateTaxRate:            5,
		RetirementContribution:  6000,
		HealthInsuranceCost1099: 6000,
	}
}

// QuickDefaults fills the advanced fields with typical benefits and costs.
func QuickDefaults() Overrides {
	return Overrides{
		EmployerBenefitsValue:   calculator.Ptr(15000.0),
		BusinessExpenses1099:    calculator.Ptr(5000.0),
		StateTaxRate:            calculator.Ptr(5.0),
		RetirementContribution:  calculator.Ptr(6000.0),
		HealthInsuranceCost1099: calculator.Ptr(6000.0),
	}
}

// Calculate compares both arrangements. The W2 side pays the employee half
// of FICA, the contractor pays full self-employment tax on 92.35% of net
// earnings and may deduct half of it along with health insurance.
func Calculate(in Inputs) Results {
	status := tax.ParseFilingStatus(string(in.FilingStatus))
	standard := tax.StandardDeduction(status)
	gross := in.AnnualSalary
	stateRate := mathutil.Fraction(in.StateTaxRate)

	w2Taxable := math.Max(0, gross-in.RetirementContribution-standard)
	fica := math.Min(gross, tax.SocialSecurityWageBase)*tax.SocialSecurityRate + gross*tax.MedicareRate
	w2Federal := tax.FederalTax(w2Taxable, status)
	w2State := w2Taxable * stateRate
	w2Net := gross - w2Federal - w2State - fica - in.RetirementContribution

	netSE := math.Max(0, gross-in.BusinessExpenses1099)
	seTax := SelfEmploymentTax(netSE)
	cTaxable := math.Max(0, netSE-seTax/2-in.HealthInsuranceCost1099-standard)
	cFederal := tax.FederalTax(cTaxable, status)
	cState := cTaxable * stateRate
	cNet := gross - in.BusinessExpenses1099 - seTax - cFederal - cState - in.HealthInsuranceCost1099

	w2Total := w2Net + in.EmployerBenefitsValue
	difference := cNet - w2Total

	return Results{
		W2: W2{
			GrossIncome:            mathutil.Round(gross),
			FederalTax:             mathutil.Round(w2Federal),
			StateTax:               mathutil.Round(w2State),
			SocialSecurityMedicare: mathutil.Round(fica),
			Retirement:             mathutil.Round(in.RetirementContribution),
			NetIncome:              mathutil.Round(w2Net),
			TotalBenefitsValue:     mathutil.Round(in.EmployerBenefitsValue),
			EffectiveTaxRate:       mathutil.RoundPercent(mathutil.SafeDivide(gross-w2Net, gross) * 100),
		},
		Contractor: Contractor{
			GrossIncome:       mathutil.Round(gross),
			BusinessExpenses:  mathutil.Round(in.BusinessExpenses1099),
			SelfEmploymentTax: mathutil.Round(seTax),
			FederalTax:        mathutil.Round(cFederal),
			StateTax:          mathutil.Round(cState),
			HealthInsurance:   mathutil.Round(in.HealthInsuranceCost1099),
			NetIncome:         mathutil.Round(cNet),
			EffectiveTaxRate:  mathutil.RoundPercent(mathutil.SafeDivide(gross-cNet, gross) * 100),
		},
		Difference:     mathutil.Round(difference),
		BreakEvenRate:  mathutil.Round(BreakEvenRate(gross, w2Total, cNet)),
		Recommendation: Recommend(difference),
	}
}

// SelfEmploymentTax returns Social Security and Medicare owed on net
// self-employment earnings. Only the Social Security part is capped at the
// wage base.
func SelfEmploymentTax(netSE float64) float64 {
	subject := netSE * tax.SelfEmploymentTaxable
	return math.Min(subject, tax.SocialSecurityWageBase)*tax.SelfEmploymentSSRate +
		subject*tax.SelfEmploymentMedicare
}

// BreakEvenRate scales the salary by the ratio of W2 total value to
// contractor net. It is a proportional estimate, not an exact solve.
func BreakEvenRate(salary, w2Total, contractorNet float64) float64 {
	divisor := contractorNet
	if divisor == 0 {
		divisor = 1
	}
	multiplier := w2Total / divisor
	if multiplier <= 0 {
		multiplier = fallbackBreakEven
	}
	return salary * multiplier
}

// Recommend describes which arrangement wins by the given margin.
func Recommend(difference float64) string {
	switch {
	case difference > 5000:
		return "1099 contractor work comes out ahead by a significant margin at this rate."
	case difference > 0:
		return "1099 is slightly better, but W2 benefits like job security and employer contributions may offset the difference."
	case difference > -5000:
		return "W2 employment is slightly better when accounting for benefits. Consider the value of stability and employer-provided insurance."
	default:
		return "W2 employment provides better total compensation at these rates. You'd need a higher contractor rate to match."
	}
}

// Highlights implements calculator.Reportable.
func (r Results) Highlights() []calculator.Metric {
	return []calculator.Metric{
		{Key: "w2Net", Label: "W2 Take-Home", Value: r.W2.NetIncome, Unit: calculator.UnitCurrency},
		{Key: "contractorNet", Label: "1099 Take-Home", Value: r.Contractor.NetIncome, Unit: calculator.UnitCurrency},
		{Key: "difference", Label: "1099 vs W2 + Benefits", Value: r.Difference, Unit: calculator.UnitCurrency},
		{Key: "breakEvenRate", Label: "Break-Even 1099 Rate", Value: r.BreakEvenRate, Unit: calculator.UnitCurrency},
	}
}

// Lines lists both tax bills side by side.
func (r Results) Lines() []calculator.LineItem {
	return []calculator.LineItem{
		{Label: "W2 Federal Tax", Amount: r.W2.FederalTax, IsDeduction: true},
		{Label: "W2 State Tax", Amount: r.W2.StateTax, IsDeduction: true},
		{Label: "W2 Social Security & Medicare", Amount: r.W2.SocialSecurityMedicare, IsDeduction: true},
		{Label: "W2 Retirement", Amount: r.W2.Retirement, IsDeduction: true},
		{Label: "W2 Net Income", Amount: r.W2.NetIncome},
		{Label: "W2 Benefits", Amount: r.W2.TotalBenefitsValue},
		{Label: "1099 Business Expenses", Amount: r.Contractor.BusinessExpenses, IsDeduction: true},
		{Label: "1099 Self-Employment Tax", Amount: r.Contractor.SelfEmploymentTax, IsDeduction: true},
		{Label: "1099 Federal Tax", Amount: r.Contractor.FederalTax, IsDeduction: true},
		{Label: "1099 State Tax", Amount: r.Contractor.StateTax, IsDeduction: true},
		{Label: "1099 Health Insurance", Amount: r.Contractor.HealthInsurance, IsDeduction: true},
		{Label: "1099 Net Income", Amount: r.Contractor.NetIncome},
	}
}

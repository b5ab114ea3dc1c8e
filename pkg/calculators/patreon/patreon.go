// Package patreon estimates creator take-home from Patreon pledges and
// projects patron counts under a constant monthly churn.
package patreon

import (
	"fmt"
	"math"
	"strings"

	"github.com/BenTyson/calcverse/pkg/calculator"
	"github.com/BenTyson/calcverse/pkg/constants"
	"github.com/BenTyson/calcverse/pkg/mathutil"
)

// FeeTier is a Patreon creator plan.
type FeeTier string

const (
	TierLite    FeeTier = "lite"
	TierPro     FeeTier = "pro"
	TierPremium FeeTier = "premium"
)

// feePercent is the platform fee taken by each plan.
var feePercent = map[FeeTier]float64{
	TierLite:    5,
	TierPro:     8,
	TierPremium: 12,
}

const (
	processingRate = 0.029
	processingFlat = 0.30
)

// ParseFeeTier normalizes s, falling back to TierPro.
func ParseFeeTier(s string) FeeTier {
	tier := FeeTier(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := feePercent[tier]; ok {
		return tier
	}
	return TierPro
}

// FeePercent returns the platform fee for the tier.
func (t FeeTier) FeePercent() float64 {
	return feePercent[ParseFeeTier(string(t))]
}

// Inputs describes the patron base and the plan it is billed on.
type Inputs struct {
	NumberOfPatrons float64 `json:"numberOfPatrons" yaml:"numberOfPatrons"`
	AveragePledge   float64 `json:"averagePledge" yaml:"averagePledge"`
	FeeTier         FeeTier `json:"feeTier" yaml:"feeTier"`
	ChurnRate       float64 `json:"churnRate" yaml:"churnRate"`
}

// Results holds monthly fees, take-home and patron projections.
type Results struct {
	MonthlyGross         float64               `json:"monthlyGross"`
	PatreonFee           float64               `json:"patreonFee"`
	PaymentProcessingFee float64               `json:"paymentProcessingFee"`
	TotalFees            float64               `json:"totalFees"`
	MonthlyNet           float64               `json:"monthlyNet"`
	AnnualNet            float64               `json:"annualNet"`
	EffectiveFeePct      float64               `json:"effectiveFeePct"`
	ProjectedPatrons6Mo  float64               `json:"projectedPatrons6Mo"`
	ProjectedPatrons12Mo float64               `json:"projectedPatrons12Mo"`
	Breakdown            []calculator.LineItem `json:"breakdown"`
}

// DefaultInputs returns one hundred patrons at $5 on the Pro plan.
func DefaultInputs() Inputs {
	return Inputs{
		NumberOfPatrons: 100,
		AveragePledge:   5,
		FeeTier:         TierPro,
		ChurnRate:       5,
	}
}

// Calculate charges the plan fee and per-pledge processing on gross pledges.
func Calculate(in Inputs) Results {
	tier := ParseFeeTier(string(in.FeeTier))
	gross := in.NumberOfPatrons * in.AveragePledge

	fee := mathutil.ApplyPercentage(gross, tier.FeePercent())
	processing := gross*processingRate + in.NumberOfPatrons*processingFlat
	total := fee + processing
	net := gross - total

	return Results{
		MonthlyGross:         mathutil.Round(gross),
		PatreonFee:           mathutil.Round(fee),
		PaymentProcessingFee: mathutil.Round(processing),
		TotalFees:            mathutil.Round(total),
		MonthlyNet:           mathutil.Round(net),
		AnnualNet:            mathutil.Round(net * constants.MonthsPerYear),
		EffectiveFeePct:      mathutil.RoundPercent(mathutil.CalculatePercentage(total, gross)),
		ProjectedPatrons6Mo:  ProjectPatrons(in.NumberOfPatrons, in.ChurnRate, 6),
		ProjectedPatrons12Mo: ProjectPatrons(in.NumberOfPatrons, in.ChurnRate, 12),
		Breakdown: []calculator.LineItem{
			{Label: "Monthly Gross", Amount: mathutil.Round(gross)},
			{Label: fmt.Sprintf("Patreon Fee (%g%%)", tier.FeePercent()), Amount: mathutil.Round(fee), IsDeduction: true},
			{Label: "Payment Processing", Amount: mathutil.Round(processing), IsDeduction: true},
		},
	}
}

// ProjectPatrons returns the rounded patron count after the given number of
// months of compounding churn with no new patrons.
func ProjectPatrons(patrons, churnPercent float64, months int) float64 {
	retention := 1 - mathutil.Fraction(churnPercent)
	return mathutil.RoundWhole(patrons * math.Pow(retention, float64(months)))
}

// Highlights implements calculator.Reportable.
func (r Results) Highlights() []calculator.Metric {
	return []calculator.Metric{
		{Key: "monthlyNet", Label: "Monthly Take-Home", Value: r.MonthlyNet, Unit: calculator.UnitCurrency},
		{Key: "annualNet", Label: "Annual Take-Home", Value: r.AnnualNet, Unit: calculator.UnitCurrency},
		{Key: "effectiveFeePct", Label: "Effective Fee", Value: r.EffectiveFeePct, Unit: calculator.UnitPercent},
		{Key: "projectedPatrons6Mo", Label: "Patrons in 6 Months", Value: r.ProjectedPatrons6Mo, Unit: calculator.UnitCount},
		{Key: "projectedPatrons12Mo", Label: "Patrons in 12 Months", Value: r.ProjectedPatrons12Mo, Unit: calculator.UnitCount},
	}
}

// Lines implements calculator.Reportable.
func (r Results) Lines() []calculator.LineItem {
	return r.Breakdown
}

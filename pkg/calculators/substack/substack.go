// Package substack estimates newsletter subscription revenue after Substack
// and Stripe fees and projects paid subscribers a year out.
package substack

import (
	"github.com/BenTyson/calcverse/pkg/calculator"
	"github.com/BenTyson/calcverse/pkg/constants"
	"github.com/BenTyson/calcverse/pkg/mathutil"
)

const (
	substackFeeRate = 0.10
	stripeRate      = 0.029
	stripeFlat      = 0.30
	// annualPlanMonths is what an annual plan costs in monthly prices.
	annualPlanMonths = 10
	projectionMonths = 12
	snapshotMonths   = 6
)

// Inputs describes the subscriber base and its growth.
type Inputs struct {
	PaidSubscribers   float64 `json:"paidSubscribers" yaml:"paidSubscribers"`
	MonthlyPrice      float64 `json:"monthlyPrice" yaml:"monthlyPrice"`
	FreeSubscribers   float64 `json:"freeSubscribers" yaml:"freeSubscribers"`
	ConversionRate    float64 `json:"conversionRate" yaml:"conversionRate"`
	ChurnRate         float64 `json:"churnRate" yaml:"churnRate"`
	AnnualPlanPercent float64 `json:"annualPlanPercent" yaml:"annualPlanPercent"`
}

// Results holds monthly revenue after fees and the one year projection.
type Results struct {
	MonthlyGross         float64               `json:"monthlyGross"`
	SubstackFee          float64               `json:"substackFee"`
	StripeFee            float64               `json:"stripeFee"`
	TotalFees            float64               `json:"totalFees"`
	MonthlyNet           float64               `json:"monthlyNet"`
	AnnualNet            float64               `json:"annualNet"`
	RevenuePerSubscriber float64               `json:"revenuePerSubscriber"`
	EffectiveFeePct      float64               `json:"effectiveFeePct"`
	ProjectedPaid6Mo     float64               `json:"projectedPaid6Mo"`
	ProjectedPaid12Mo    float64               `json:"projectedPaid12Mo"`
	Breakdown            []calculator.LineItem `json:"breakdown"`
}

// DefaultInputs returns one hundred paid subscribers at $10 a month.
func DefaultInputs() Inputs {
	return Inputs{
		PaidSubscribers:   100,
		MonthlyPrice:      10,
		FreeSubscribers:   2000,
		ConversionRate:    5,
		ChurnRate:         4,
		AnnualPlanPercent: 30,
	}
}

// Calculate amortizes annual plans over twelve months. Stripe's flat fee is
// charged on every monthly renewal and on one twelfth of the annual plans.
func Calculate(in Inputs) Results {
	annualShare := mathutil.Fraction(mathutil.Clamp(in.AnnualPlanPercent, 0, constants.PercentageMultiplier))
	monthlySubs := in.PaidSubscribers * (1 - annualShare)
	annualSubs := in.PaidSubscribers * annualShare
	annualMonthlyEquiv := in.MonthlyPrice * annualPlanMonths / constants.MonthsPerYear

	gross := monthlySubs*in.MonthlyPrice + annualSubs*annualMonthlyEquiv
	substackFee := gross * substackFeeRate
	transactions := monthlySubs + annualSubs/constants.MonthsPerYear
	stripeFee := gross*stripeRate + transactions*stripeFlat

	total := substackFee + stripeFee
	net := gross - total

	six, twelve := ProjectPaid(in)

	return Results{
		MonthlyGross:         mathutil.Round(gross),
		SubstackFee:          mathutil.Round(substackFee),
		StripeFee:            mathutil.Round(stripeFee),
		TotalFees:            mathutil.Round(total),
		MonthlyNet:           mathutil.Round(net),
		AnnualNet:            mathutil.Round(net * constants.MonthsPerYear),
		RevenuePerSubscriber: mathutil.Round(mathutil.SafeDivide(net, in.PaidSubscribers)),
		EffectiveFeePct:      mathutil.RoundPercent(mathutil.CalculatePercentage(total, gross)),
		ProjectedPaid6Mo:     mathutil.RoundWhole(six),
		ProjectedPaid12Mo:    mathutil.RoundWhole(twelve),
		Breakdown: []calculator.LineItem{
			{Label: "Monthly Gross", Amount: mathutil.Round(gross)},
			{Label: "Substack Fee (10%)", Amount: mathutil.Round(substackFee), IsDeduction: true},
			{Label: "Stripe Fees", Amount: mathutil.Round(stripeFee), IsDeduction: true},
		},
	}
}

// ProjectPaid steps paid subscribers forward month by month, adding the
// monthly share of converted free readers and removing churned ones. It
// returns the unrounded counts after six and twelve months.
func ProjectPaid(in Inputs) (sixMonths, twelveMonths float64) {
	newPaid := in.FreeSubscribers * mathutil.Fraction(in.ConversionRate) / constants.MonthsPerYear
	churn := mathutil.Fraction(in.ChurnRate)

	paid := in.PaidSubscribers
	sixMonths = paid
	for i := 0; i < projectionMonths; i++ {
		paid += newPaid - paid*churn
		if i < snapshotMonths {
			sixMonths = paid
		}
	}
	return sixMonths, paid
}

// Highlights implements calculator.Reportable.
func (r Results) Highlights() []calculator.Metric {
	return []calculator.Metric{
		{Key: "monthlyNet", Label: "Monthly Net", Value: r.MonthlyNet, Unit: calculator.UnitCurrency},
		{Key: "annualNet", Label: "Annual Net", Value: r.AnnualNet, Unit: calculator.UnitCurrency},
		{Key: "effectiveFeePct", Label: "Effective Fee", Value: r.EffectiveFeePct, Unit: calculator.UnitPercent},
		{Key: "projectedPaid12Mo", Label: "Paid Subscribers in 12 Months", Value: r.ProjectedPaid12Mo, Unit: calculator.UnitCount},
	}
}

// Lines implements calculator.Reportable.
func (r Results) Lines() []calculator.LineItem {
	return r.Breakdown
}

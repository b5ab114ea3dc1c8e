// Package instacart estimates weekly earnings for grocery shoppers.
package instacart

import (
	"github.com/BenTyson/calcverse/pkg/calculator"
	"github.com/BenTyson/calcverse/pkg/constants"
	"github.com/BenTyson/calcverse/pkg/mathutil"
)

// peakWindowsPerWeek is how many peak bonuses a shopper collects weekly.
const peakWindowsPerWeek = 4

// Inputs describes a shopper's week. AverageBatchPay is the combined pay per
// batch used in quick mode; advanced mode uses the base and tip split.
type Inputs struct {
	BatchesPerWeek  float64 `json:"batchesPerWeek" yaml:"batchesPerWeek"`
	AverageBatchPay float64 `json:"averageBatchPay" yaml:"averageBatchPay"`
	AverageBasePay  float64 `json:"averageBasePay" yaml:"averageBasePay"`
	AverageTip      float64 `json:"averageTip" yaml:"averageTip"`
	AverageItems    float64 `json:"averageItems" yaml:"averageItems"`
	MilesPerBatch   float64 `json:"milesPerBatch" yaml:"milesPerBatch"`
	GasPrice        float64 `json:"gasPrice" yaml:"gasPrice"`
	VehicleMPG      float64 `json:"vehicleMPG" yaml:"vehicleMPG"`
	HoursPerWeek    float64 `json:"hoursPerWeek" yaml:"hoursPerWeek"`
	PeakHoursBonus  float64 `json:"peakHoursBonus" yaml:"peakHoursBonus"`
}

// Results holds weekly, monthly and annual earnings.
type Results struct {
	WeeklyBatches       float64               `json:"weeklyBatches"`
	GrossWeeklyEarnings float64               `json:"grossWeeklyEarnings"`
	BasePay             float64               `json:"basePay"`
	Tips                float64               `json:"tips"`
	PeakBonuses         float64               `json:"peakBonuses"`
	GasExpenses         float64               `json:"gasExpenses"`
	NetWeeklyEarnings   float64               `json:"netWeeklyEarnings"`
	NetMonthlyEarnings  float64               `json:"netMonthlyEarnings"`
	NetAnnualEarnings   float64               `json:"netAnnualEarnings"`
	EffectiveHourlyRate float64               `json:"effectiveHourlyRate"`
	EarningsPerBatch    float64               `json:"earningsPerBatch"`
	EarningsPerMile     float64               `json:"earningsPerMile"`
	Breakdown           []calculator.LineItem `json:"breakdown"`
}

// Overrides pins input fields when set.
type Overrides struct {
	AverageBasePay *float64 `json:"averageBasePay,omitempty"`
	AverageTip     *float64 `json:"averageTip,omitempty"`
	AverageItems   *float64 `json:"averageItems,omitempty"`
	MilesPerBatch  *float64 `json:"milesPerBatch,omitempty"`
	GasPrice       *float64 `json:"gasPrice,omitempty"`
	VehicleMPG     *float64 `json:"vehicleMPG,omitempty"`
	HoursPerWeek   *float64 `json:"hoursPerWeek,omitempty"`
	PeakHoursBonus *float64 `json:"peakHoursBonus,omitempty"`
}

// Apply returns in with every set override merged over it.
func (o Overrides) Apply(in Inputs) Inputs {
	calculator.Override(&in.AverageBasePay, o.AverageBasePay)
	calculator.Override(&in.AverageTip, o.AverageTip)
	calculator.Override(&in.AverageItems, o.AverageItems)
	calculator.Override(&in.MilesPerBatch, o.MilesPerBatch)
	calculator.Override(&in.GasPrice, o.GasPrice)
	calculator.Override(&in.VehicleMPG, o.VehicleMPG)
	calculator.Override(&in.HoursPerWeek, o.HoursPerWeek)
	calculator.Override(&in.PeakHoursBonus, o.PeakHoursBonus)
	return in
}

// DefaultInputs returns twenty five batches a week.
func DefaultInputs() Inputs {
	return Inputs{
		BatchesPerWeek:  25,
		AverageBatchPay: 15,
		AverageBasePay:  8,
		AverageTip:      7,
		AverageItems:    30,
		MilesPerBatch:   5,
		GasPrice:        3.50,
		VehicleMPG:      28,
		HoursPerWeek:    25,
		PeakHoursBonus:  10,
	}
}

// QuickDefaults resets the advanced fields and drops the peak bonus.
func QuickDefaults() Overrides {
	return Overrides{
		AverageBasePay: calculator.Ptr(8.0),
		AverageTip:     calculator.Ptr(7.0),
		AverageItems:   calculator.Ptr(30.0),
		MilesPerBatch:  calculator.Ptr(5.0),
		GasPrice:       calculator.Ptr(3.50),
		VehicleMPG:     calculator.Ptr(28.0),
		HoursPerWeek:   calculator.Ptr(25.0),
		PeakHoursBonus: calculator.Ptr(0.0),
	}
}

// Effective returns the inputs the calculation runs on. Quick mode splits
// the combined batch pay evenly between base pay and tip.
func Effective(in Inputs, mode calculator.Mode) Inputs {
	if mode == calculator.ModeQuick {
		in.AverageBasePay = in.AverageBatchPay * 0.5
		in.AverageTip = in.AverageBatchPay * 0.5
	}
	return in
}

// Calculate estimates a shopper's earnings after fuel.
func Calculate(in Inputs) Results {
	batches := in.BatchesPerWeek
	base := batches * in.AverageBasePay
	tips := batches * in.AverageTip
	peak := in.PeakHoursBonus * peakWindowsPerWeek
	gross := base + tips + peak

	miles := batches * in.MilesPerBatch
	gas := mathutil.SafeDivide(miles, in.VehicleMPG) * in.GasPrice
	net := gross - gas

	return Results{
		WeeklyBatches:       batches,
		GrossWeeklyEarnings: mathutil.Round(gross),
		BasePay:             mathutil.Round(base),
		Tips:                mathutil.Round(tips),
		PeakBonuses:         mathutil.Round(peak),
		GasExpenses:         mathutil.Round(gas),
		NetWeeklyEarnings:   mathutil.Round(net),
		NetMonthlyEarnings:  mathutil.Round(net * constants.WeeksPerMonth),
		NetAnnualEarnings:   mathutil.Round(net * constants.WeeksPerYear),
		EffectiveHourlyRate: mathutil.Round(mathutil.SafeDivide(net, in.HoursPerWeek)),
		EarningsPerBatch:    mathutil.Round(mathutil.SafeDivide(net, batches)),
		EarningsPerMile:     mathutil.Round(mathutil.SafeDivide(net, miles)),
		Breakdown: []calculator.LineItem{
			{Label: "Base Pay", Amount: mathutil.Round(base)},
			{Label: "Tips", Amount: mathutil.Round(tips)},
			{Label: "Peak Bonuses", Amount: mathutil.Round(peak)},
			{Label: "Gas Expenses", Amount: -mathutil.Round(gas), IsDeduction: true},
		},
	}
}

// Highlights implements calculator.Reportable.
func (r Results) Highlights() []calculator.Metric {
	return []calculator.Metric{
		{Key: "netWeeklyEarnings", Label: "Weekly Net", Value: r.NetWeeklyEarnings, Unit: calculator.UnitCurrency},
		{Key: "netMonthlyEarnings", Label: "Monthly Net", Value: r.NetMonthlyEarnings, Unit: calculator.UnitCurrency},
		{Key: "netAnnualEarnings", Label: "Annual Net", Value: r.NetAnnualEarnings, Unit: calculator.UnitCurrency},
		{Key: "effectiveHourlyRate", Label: "Effective Hourly Rate", Value: r.EffectiveHourlyRate, Unit: calculator.UnitCurrency},
		{Key: "earningsPerBatch", Label: "Per Batch", Value: r.EarningsPerBatch, Unit: calculator.UnitCurrency},
		{Key: "earningsPerMile", Label: "Per Mile", Value: r.EarningsPerMile, Unit: calculator.UnitCurrency},
	}
}

// Lines implements calculator.Reportable.
func (r Results) Lines() []calculator.LineItem {
	return r.Breakdown
}

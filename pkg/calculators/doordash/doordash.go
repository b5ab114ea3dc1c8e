// Package doordash estimates weekly take-home pay for food delivery drivers.
package doordash

import (
	"github.com/BenTyson/calcverse/pkg/calculator"
	"github.com/BenTyson/calcverse/pkg/constants"
	"github.com/BenTyson/calcverse/pkg/mathutil"
)

// Inputs describes a typical delivery week.
type Inputs struct {
	DeliveriesPerWeek  float64 `json:"deliveriesPerWeek" yaml:"deliveriesPerWeek"`
	AverageTip         float64 `json:"averageTip" yaml:"averageTip"`
	BasePayPerDelivery float64 `json:"basePayPerDelivery" yaml:"basePayPerDelivery"`
	MilesPerDelivery   float64 `json:"milesPerDelivery" yaml:"milesPerDelivery"`
	GasPrice           float64 `json:"gasPrice" yaml:"gasPrice"`
	VehicleMpg         float64 `json:"vehicleMpg" yaml:"vehicleMpg"`
	ActiveHoursPerWeek float64 `json:"activeHoursPerWeek" yaml:"activeHoursPerWeek"`
}

// Results holds weekly earnings and their monthly and annual projections.
type Results struct {
	WeeklyGross         float64               `json:"weeklyGross"`
	WeeklyGasCost       float64               `json:"weeklyGasCost"`
	WeeklyMiles         float64               `json:"weeklyMiles"`
	WeeklyNet           float64               `json:"weeklyNet"`
	MonthlyNet          float64               `json:"monthlyNet"`
	AnnualNet           float64               `json:"annualNet"`
	EarningsPerDelivery float64               `json:"earningsPerDelivery"`
	EffectiveHourlyRate float64               `json:"effectiveHourlyRate"`
	CostPerMile         float64               `json:"costPerMile"`
	IRSMileageDeduction float64               `json:"irsMileageDeduction"`
	Breakdown           []calculator.LineItem `json:"breakdown"`
}

// DefaultInputs returns thirty deliveries a week at $3 base pay plus a $4 tip.
func DefaultInputs() Inputs {
	return Inputs{
		DeliveriesPerWeek:  30,
		AverageTip:         4,
		BasePayPerDelivery: 3,
		MilesPerDelivery:   5,
		GasPrice:           3.50,
		VehicleMpg:         25,
		ActiveHoursPerWeek: 15,
	}
}

// Calculate subtracts fuel from gross delivery pay. The IRS mileage
// deduction is reported for tax planning but not subtracted.
func Calculate(in Inputs) Results {
	perDelivery := in.BasePayPerDelivery + in.AverageTip
	gross := in.DeliveriesPerWeek * perDelivery

	miles := in.DeliveriesPerWeek * in.MilesPerDelivery
	gas := mathutil.SafeDivide(miles, in.VehicleMpg) * in.GasPrice

	net := gross - gas
	irs := miles * constants.IRSMileageRate

	return Results{
		WeeklyGross:         mathutil.Round(gross),
		WeeklyGasCost:       mathutil.Round(gas),
		WeeklyMiles:         mathutil.RoundWhole(miles),
		WeeklyNet:           mathutil.Round(net),
		MonthlyNet:          mathutil.Round(net * constants.WeeksPerMonth),
		AnnualNet:           mathutil.Round(net * constants.WeeksPerYear),
		EarningsPerDelivery: mathutil.Round(perDelivery),
		EffectiveHourlyRate: mathutil.Round(mathutil.SafeDivide(net, in.ActiveHoursPerWeek)),
		CostPerMile:         mathutil.Round(mathutil.SafeDivide(in.GasPrice, in.VehicleMpg)),
		IRSMileageDeduction: mathutil.Round(irs),
		Breakdown: []calculator.LineItem{
			{Label: "Base Pay", Amount: mathutil.Round(in.DeliveriesPerWeek * in.BasePayPerDelivery)},
			{Label: "Tips", Amount: mathutil.Round(in.DeliveriesPerWeek * in.AverageTip)},
			{Label: "Weekly Gross", Amount: mathutil.Round(gross)},
			{Label: "Gas Cost", Amount: mathutil.Round(gas), IsDeduction: true},
			{Label: "IRS Mileage Deduction", Amount: mathutil.Round(irs)},
		},
	}
}

// Highlights implements calculator.Reportable.
func (r Results) Highlights() []calculator.Metric {
	return []calculator.Metric{
		{Key: "weeklyNet", Label: "Weekly Net", Value: r.WeeklyNet, Unit: calculator.UnitCurrency},
		{Key: "monthlyNet", Label: "Monthly Net", Value: r.MonthlyNet, Unit: calculator.UnitCurrency},
		{Key: "annualNet", Label: "Annual Net", Value: r.AnnualNet, Unit: calculator.UnitCurrency},
		{Key: "effectiveHourlyRate", Label: "Effective Hourly Rate", Value: r.EffectiveHourlyRate, Unit: calculator.UnitCurrency},
		{Key: "earningsPerDelivery", Label: "Per Delivery", Value: r.EarningsPerDelivery, Unit: calculator.UnitCurrency},
		{Key: "costPerMile", Label: "Gas Cost per Mile", Value: r.CostPerMile, Unit: calculator.UnitCurrency},
	}
}

// Lines implements calculator.Reportable.
func (r Results) Lines() []calculator.LineItem {
	return r.Breakdown
}

// Package uberlyft estimates rideshare driver take-home after fuel,
// maintenance and depreciation.
package uberlyft

import (
	"strings"

	"github.com/BenTyson/calcverse/pkg/calculator"
	"github.com/BenTyson/calcverse/pkg/constants"
	"github.com/BenTyson/calcverse/pkg/mathutil"
)

// DepreciationPerMile is the assumed vehicle value lost per mile driven.
const DepreciationPerMile = 0.15

// Platform is the rideshare app a driver works for. It does not change the
// estimate.
type Platform string

const (
	PlatformUber Platform = "uber"
	PlatformLyft Platform = "lyft"
	PlatformBoth Platform = "both"
)

// ParsePlatform normalizes s, falling back to PlatformUber.
func ParsePlatform(s string) Platform {
	switch p := Platform(strings.ToLower(strings.TrimSpace(s))); p {
	case PlatformUber, PlatformLyft, PlatformBoth:
		return p
	default:
		return PlatformUber
	}
}

// Inputs describes a week of driving.
type Inputs struct {
	GrossWeeklyEarnings    float64  `json:"grossWeeklyEarnings" yaml:"grossWeeklyEarnings"`
	MilesDriven            float64  `json:"milesDriven" yaml:"milesDriven"`
	HoursWorked            float64  `json:"hoursWorked" yaml:"hoursWorked"`
	GasPrice               float64  `json:"gasPrice" yaml:"gasPrice"`
	VehicleMpg             float64  `json:"vehicleMpg" yaml:"vehicleMpg"`
	MaintenanceCostPerMile float64  `json:"maintenanceCostPerMile" yaml:"maintenanceCostPerMile"`
	Platform               Platform `json:"platform" yaml:"platform"`
}

// Results holds weekly vehicle costs and take-home.
type Results struct {
	Platform            Platform              `json:"platform"`
	WeeklyGross         float64               `json:"weeklyGross"`
	WeeklyGasCost       float64               `json:"weeklyGasCost"`
	WeeklyMaintenance   float64               `json:"weeklyMaintenance"`
	WeeklyDepreciation  float64               `json:"weeklyDepreciation"`
	TotalExpenses       float64               `json:"totalExpenses"`
	WeeklyNet           float64               `json:"weeklyNet"`
	MonthlyNet          float64               `json:"monthlyNet"`
	AnnualNet           float64               `json:"annualNet"`
	EffectiveHourlyRate float64               `json:"effectiveHourlyRate"`
	CostPerMile         float64               `json:"costPerMile"`
	IRSMileageDeduction float64               `json:"irsMileageDeduction"`
	Breakdown           []calculator.LineItem `json:"breakdown"`
}

// DefaultInputs returns $800 of weekly Uber fares over 500 miles.
func DefaultInputs() Inputs {
	return Inputs{
		GrossWeeklyEarnings:    800,
		MilesDriven:            500,
		HoursWorked:            30,
		GasPrice:               3.50,
		VehicleMpg:             28,
		MaintenanceCostPerMile: 0.05,
		Platform:               PlatformUber,
	}
}

// Calculate subtracts per-mile vehicle costs from gross fares. The IRS
// mileage deduction is reported but not subtracted.
func Calculate(in Inputs) Results {
	gas := mathutil.SafeDivide(in.MilesDriven, in.VehicleMpg) * in.GasPrice
	maintenance := in.MilesDriven * in.MaintenanceCostPerMile
	depreciation := in.MilesDriven * DepreciationPerMile
	expenses := gas + maintenance + depreciation

	net := in.GrossWeeklyEarnings - expenses
	irs := in.MilesDriven * constants.IRSMileageRate

	return Results{
		Platform:            ParsePlatform(string(in.Platform)),
		WeeklyGross:         mathutil.Round(in.GrossWeeklyEarnings),
		WeeklyGasCost:       mathutil.Round(gas),
		WeeklyMaintenance:   mathutil.Round(maintenance),
		WeeklyDepreciation:  mathutil.Round(depreciation),
		TotalExpenses:       mathutil.Round(expenses),
		WeeklyNet:           mathutil.Round(net),
		MonthlyNet:          mathutil.Round(net * constants.WeeksPerMonth),
		AnnualNet:           mathutil.Round(net * constants.WeeksPerYear),
		EffectiveHourlyRate: mathutil.Round(mathutil.SafeDivide(net, in.HoursWorked)),
		CostPerMile:         mathutil.Round(mathutil.SafeDivide(expenses, in.MilesDriven)),
		IRSMileageDeduction: mathutil.Round(irs),
		Breakdown: []calculator.LineItem{
			{Label: "Weekly Gross", Amount: mathutil.Round(in.GrossWeeklyEarnings)},
			{Label: "Gas Cost", Amount: mathutil.Round(gas), IsDeduction: true},
			{Label: "Maintenance", Amount: mathutil.Round(maintenance), IsDeduction: true},
			{Label: "Depreciation", Amount: mathutil.Round(depreciation), IsDeduction: true},
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
		{Key: "effectiveHourlyRate", Label: "True Hourly Rate", Value: r.EffectiveHourlyRate, Unit: calculator.UnitCurrency},
		{Key: "costPerMile", Label: "Cost per Mile", Value: r.CostPerMile, Unit: calculator.UnitCurrency},
	}
}

// Lines implements calculator.Reportable.
func (r Results) Lines() []calculator.LineItem {
	return r.Breakdown
}

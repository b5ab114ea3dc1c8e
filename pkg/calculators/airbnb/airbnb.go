// Package airbnb estimates the monthly profit of a short-term rental listing.
package airbnb

import (
	"github.com/BenTyson/calcverse/pkg/calculator"
	"github.com/BenTyson/calcverse/pkg/constants"
	"github.com/BenTyson/calcverse/pkg/mathutil"
)

// averageStayNights is the assumed length of one booking.
const averageStayNights = 3

// Inputs describes a listing and its monthly costs.
type Inputs struct {
	NightlyRate      float64 `json:"nightlyRate" yaml:"nightlyRate"`
	OccupancyRate    float64 `json:"occupancyRate" yaml:"occupancyRate"`
	CleaningFee      float64 `json:"cleaningFee" yaml:"cleaningFee"`
	AirbnbFeePercent float64 `json:"airbnbFeePercent" yaml:"airbnbFeePercent"`
	CleaningCost     float64 `json:"cleaningCost" yaml:"cleaningCost"`
	SuppliesCost     float64 `json:"suppliesCost" yaml:"suppliesCost"`
	UtilitiesCost    float64 `json:"utilitiesCost" yaml:"utilitiesCost"`
	MortgageOrRent   float64 `json:"mortgageOrRent" yaml:"mortgageOrRent"`
}

// Results holds the monthly profit estimate.
type Results struct {
	MonthlyGross          float64               `json:"monthlyGross"`
	AirbnbFee             float64               `json:"airbnbFee"`
	MonthlyCleaningCosts  float64               `json:"monthlyCleaningCosts"`
	MonthlyOperatingCosts float64               `json:"monthlyOperatingCosts"`
	TotalExpenses         float64               `json:"totalExpenses"`
	MonthlyNet            float64               `json:"monthlyNet"`
	AnnualNet             float64               `json:"annualNet"`
	BreakEvenOccupancy    int                   `json:"breakEvenOccupancy"`
	ProfitMargin          float64               `json:"profitMargin"`
	NightsBookedPerMonth  int                   `json:"nightsBookedPerMonth"`
	Breakdown             []calculator.LineItem `json:"breakdown"`
}

// DefaultInputs returns a typical mid-market listing.
func DefaultInputs() Inputs {
	return Inputs{
		NightlyRate:      150,
		OccupancyRate:    65,
		CleaningFee:      75,
		AirbnbFeePercent: 3,
		CleaningCost:     50,
		SuppliesCost:     100,
		UtilitiesCost:    150,
		MortgageOrRent:   1500,
	}
}

// Calculate estimates monthly gross, expenses and net profit for the listing.
func Calculate(in Inputs) Results {
	occupancy := mathutil.Clamp(in.OccupancyRate, 0, constants.PercentageMultiplier)
	nights := mathutil.RoundWhole(constants.DaysPerMonth * mathutil.Fraction(occupancy))
	bookings := nights / averageStayNights

	nightlyRevenue := nights * in.NightlyRate
	cleaningRevenue := bookings * in.CleaningFee
	gross := nightlyRevenue + cleaningRevenue

	fee := mathutil.ApplyPercentage(gross, in.AirbnbFeePercent)
	cleaning := bookings * in.CleaningCost
	operating := in.SuppliesCost + in.UtilitiesCost + in.MortgageOrRent
	expenses := fee + cleaning + operating

	net := gross - expenses
	margin := 0.0
	if gross > 0 {
		margin = net / gross * 100
	}

	return Results{
		MonthlyGross:          mathutil.Round(gross),
		AirbnbFee:             mathutil.Round(fee),
		MonthlyCleaningCosts:  mathutil.Round(cleaning),
		MonthlyOperatingCosts: mathutil.Round(operating),
		TotalExpenses:         mathutil.Round(expenses),
		MonthlyNet:            mathutil.Round(net),
		AnnualNet:             mathutil.Round(net * constants.MonthsPerYear),
		BreakEvenOccupancy:    BreakEvenOccupancy(in),
		ProfitMargin:          mathutil.RoundPercent(margin),
		NightsBookedPerMonth:  int(nights),
		Breakdown: []calculator.LineItem{
			{Label: "Nightly Revenue", Amount: mathutil.Round(nightlyRevenue)},
			{Label: "Cleaning Fees Collected", Amount: mathutil.Round(cleaningRevenue)},
			{Label: "Monthly Gross", Amount: mathutil.Round(gross)},
			{Label: "Airbnb Fee", Amount: mathutil.Round(fee), IsDeduction: true},
			{Label: "Cleaning Costs", Amount: mathutil.Round(cleaning), IsDeduction: true},
			{Label: "Operating Costs", Amount: mathutil.Round(operating), IsDeduction: true},
		},
	}
}

// BreakEvenOccupancy returns the smallest whole occupancy percentage in
// [1, 100] at which simulated gross covers simulated expenses, or 0 when the
// listing cannot break even. Simulated nights are not rounded.
func BreakEvenOccupancy(in Inputs) int {
	operating := in.SuppliesCost + in.UtilitiesCost + in.MortgageOrRent
	for occ := 1; occ <= 100; occ++ {
		nights := constants.DaysPerMonth * float64(occ) / 100
		bookings := nights / averageStayNights
		gross := nights*in.NightlyRate + bookings*in.CleaningFee
		expenses := mathutil.ApplyPercentage(gross, in.AirbnbFeePercent) + bookings*in.CleaningCost + operating
		if gross >= expenses {
			return occ
		}
	}
	return 0
}

// Highlights implements calculator.Reportable.
func (r Results) Highlights() []calculator.Metric {
	return []calculator.Metric{
		{Key: "monthlyNet", Label: "Monthly Net Profit", Value: r.MonthlyNet, Unit: calculator.UnitCurrency},
		{Key: "annualNet", Label: "Annual Net Profit", Value: r.AnnualNet, Unit: calculator.UnitCurrency},
		{Key: "profitMargin", Label: "Profit Margin", Value: r.ProfitMargin, Unit: calculator.UnitPercent},
		{Key: "breakEvenOccupancy", Label: "Break-Even Occupancy", Value: float64(r.BreakEvenOccupancy), Unit: calculator.UnitPercent},
		{Key: "nightsBookedPerMonth", Label: "Nights Booked", Value: float64(r.NightsBookedPerMonth), Unit: calculator.UnitCount},
	}
}

// Lines implements calculator.Reportable.
func (r Results) Lines() []calculator.LineItem {
	return r.Breakdown
}

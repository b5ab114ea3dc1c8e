package doordash

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateDefaults(t *testing.T) {
	r := Calculate(DefaultInputs())

	tests := []struct {
		name     string
		got      float64
		expected float64
	}{
		{"earnings per delivery", r.EarningsPerDelivery, 7},
		{"weekly gross", r.WeeklyGross, 210},
		{"weekly miles", r.WeeklyMiles, 150},
		{"weekly gas", r.WeeklyGasCost, 21},
		{"weekly net", r.WeeklyNet, 189},
		{"monthly net", r.MonthlyNet, 818.37},
		{"annual net", r.AnnualNet, 9828},
		{"hourly", r.EffectiveHourlyRate, 12.6},
		{"cost per mile", r.CostPerMile, 0.14},
		{"irs deduction", r.IRSMileageDeduction, 100.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, tt.got, 0.001)
		})
	}
}

func TestNetEqualsGrossMinusGas(t *testing.T) {
	in := Inputs{DeliveriesPerWeek: 42, AverageTip: 3.25, BasePayPerDelivery: 2.5, MilesPerDelivery: 4.2, GasPrice: 3.89, VehicleMpg: 31, ActiveHoursPerWeek: 20}
	r := Calculate(in)
	assert.InDelta(t, r.WeeklyGross-r.WeeklyGasCost, r.WeeklyNet, 0.011, "weekly net should be gross minus gas")
}

func TestZeroGuards(t *testing.T) {
	in := DefaultInputs()
	in.VehicleMpg = 0
	in.ActiveHoursPerWeek = 0
	r := Calculate(in)

	if r.WeeklyGasCost != 0 {
		t.Errorf("expected no gas cost with zero mpg, got %v", r.WeeklyGasCost)
	}
	if r.CostPerMile != 0 {
		t.Errorf("expected zero cost per mile, got %v", r.CostPerMile)
	}
	if r.EffectiveHourlyRate != 0 {
		t.Errorf("expected zero hourly rate, got %v", r.EffectiveHourlyRate)
	}
	if r.WeeklyNet != r.WeeklyGross {
		t.Errorf("net %v should equal gross %v", r.WeeklyNet, r.WeeklyGross)
	}
}

func TestBreakdown(t *testing.T) {
	r := Calculate(DefaultInputs())
	if len(r.Lines()) != 5 {
		t.Fatalf("expected 5 breakdown lines, got %d", len(r.Lines()))
	}
	if r.Breakdown[0].Amount != 90 || r.Breakdown[1].Amount != 120 {
		t.Errorf("unexpected base/tip split: %+v", r.Breakdown[:2])
	}
	if !r.Breakdown[3].IsDeduction {
		t.Error("gas cost should be a deduction")
	}
}

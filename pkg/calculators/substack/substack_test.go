package substack

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateDefaults(t *testing.T) {
	r := Calculate(DefaultInputs())

	assert.InDelta(t, 950.00, r.MonthlyGross, 0.001)
	assert.InDelta(t, 95.00, r.SubstackFee, 0.001)
	assert.InDelta(t, 49.30, r.StripeFee, 0.001)
	assert.InDelta(t, 144.30, r.TotalFees, 0.001)
	assert.InDelta(t, 805.70, r.MonthlyNet, 0.001)
	assert.InDelta(t, 9668.40, r.AnnualNet, 0.001)
	assert.InDelta(t, 8.06, r.RevenuePerSubscriber, 0.001)
	assert.InDelta(t, 15.2, r.EffectiveFeePct, 0.001)
	assert.Equal(t, 124.0, r.ProjectedPaid6Mo)
	assert.Equal(t, 142.0, r.ProjectedPaid12Mo)
}

func TestProjectPaid(t *testing.T) {
	tests := []struct {
		name   string
		in     Inputs
		six    float64
		twelve float64
	}{
		{"defaults", DefaultInputs(), 123.5346, 141.9564},
		{"no growth no churn", Inputs{PaidSubscribers: 50}, 50, 50},
		{"churn only", Inputs{PaidSubscribers: 100, ChurnRate: 10}, 53.1441, 28.2430},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			six, twelve := ProjectPaid(tt.in)
			assert.InDelta(t, tt.six, six, 0.0001)
			assert.InDelta(t, tt.twelve, twelve, 0.0001)
		})
	}
}

func TestAllMonthlyPlans(t *testing.T) {
	in := DefaultInputs()
	in.AnnualPlanPercent = 0
	r := Calculate(in)

	assert.InDelta(t, 1000.0, r.MonthlyGross, 0.001)
	assert.InDelta(t, 59.0, r.StripeFee, 0.001)
}

func TestAnnualPlanPercentOutOfRange(t *testing.T) {
	in := DefaultInputs()
	in.AnnualPlanPercent = 100
	allAnnual := Calculate(in)

	in.AnnualPlanPercent = 160
	assert.Equal(t, allAnnual, Calculate(in))

	in.AnnualPlanPercent = -10
	monthly := DefaultInputs()
	monthly.AnnualPlanPercent = 0
	assert.Equal(t, Calculate(monthly), Calculate(in))
}

func TestNoSubscribers(t *testing.T) {
	r := Calculate(Inputs{MonthlyPrice: 10})
	assert.Zero(t, r.MonthlyGross)
	assert.Zero(t, r.RevenuePerSubscriber)
	assert.Zero(t, r.EffectiveFeePct)
}

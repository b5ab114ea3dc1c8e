package etsy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateDefaults(t *testing.T) {
	r := Calculate(DefaultInputs())

	assert.InDelta(t, 30.00, r.GrossRevenue, 0.001)
	assert.InDelta(t, 0.20, r.ListingFee, 0.001)
	assert.InDelta(t, 1.95, r.TransactionFee, 0.001)
	assert.InDelta(t, 1.15, r.PaymentProcessingFee, 0.001)
	assert.Zero(t, r.EtsyAdsFee)
	assert.Zero(t, r.OffsiteAdsFee)
	assert.InDelta(t, 3.30, r.TotalFees, 0.001)
	assert.InDelta(t, 15.70, r.NetProfit, 0.001)
	assert.InDelta(t, 52.3, r.ProfitMargin, 0.001)
	assert.InDelta(t, 11.0, r.FeePercentage, 0.001)
}

func TestTotalFeesMatchLineItems(t *testing.T) {
	tests := []struct {
		name  string
		in    Inputs
		lines int
	}{
		{"no ads", DefaultInputs(), 6},
		{"etsy ads", Inputs{ItemPrice: 25, ShippingCharged: 5, ShippingCost: 3, ItemCost: 8, EtsyAdsPercent: 5}, 7},
		{"both ads", Inputs{ItemPrice: 25, ShippingCharged: 5, ShippingCost: 3, ItemCost: 8, EtsyAdsPercent: 5, OffsiteAdsOptedIn: true}, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Calculate(tt.in)
			sum := r.ListingFee + r.TransactionFee + r.PaymentProcessingFee + r.EtsyAdsFee + r.OffsiteAdsFee
			assert.InDelta(t, r.TotalFees, sum, 0.011)
			assert.InDelta(t, r.GrossRevenue-r.TotalFees-tt.in.ItemCost-tt.in.ShippingCost, r.NetProfit, 0.011)
			assert.Len(t, r.Breakdown, tt.lines)
		})
	}
}

func TestAdsLines(t *testing.T) {
	in := DefaultInputs()
	in.EtsyAdsPercent = 5
	in.OffsiteAdsOptedIn = true
	r := Calculate(in)

	assert.InDelta(t, 1.50, r.EtsyAdsFee, 0.001)
	assert.InDelta(t, 3.60, r.OffsiteAdsFee, 0.001)
	assert.InDelta(t, 8.40, r.TotalFees, 0.001)
	assert.InDelta(t, 10.60, r.NetProfit, 0.001)
	assert.Equal(t, "Etsy Ads", r.Breakdown[4].Label)
	assert.Equal(t, "Offsite Ads (12%)", r.Breakdown[5].Label)
}

func TestZeroPrice(t *testing.T) {
	r := Calculate(Inputs{})
	assert.Zero(t, r.ProfitMargin)
	assert.Zero(t, r.FeePercentage)
	assert.InDelta(t, 0.45, r.TotalFees, 0.001)
}

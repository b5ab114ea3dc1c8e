package kofi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateDefaults(t *testing.T) {
	r := Calculate(DefaultInputs())

	assert.InDelta(t, 100.0, r.DonationRevenue, 0.001)
	assert.InDelta(t, 50.0, r.MembershipRevenue, 0.001)
	assert.InDelta(t, 75.0, r.ShopRevenue, 0.001)
	assert.InDelta(t, 225.0, r.GrossMonthly, 0.001)
	assert.InDelta(t, 7.5, r.PlatformFees, 0.001)
	assert.Equal(t, 35.0, r.Transactions)
	assert.InDelta(t, 17.02, r.PaymentProcessingFees, 0.001)
	assert.InDelta(t, 24.53, r.TotalFees, 0.006)
	assert.InDelta(t, 200.48, r.NetMonthly, 0.006)
	assert.InDelta(t, 2405.70, r.NetAnnual, 0.006)
	assert.InDelta(t, 10.9, r.FeePercentage, 0.001)
}

func TestBreakdownOmitsEmptyStreams(t *testing.T) {
	r := Calculate(DefaultInputs())

	labels := make([]string, 0, len(r.Breakdown))
	total := 0.0
	for _, item := range r.Breakdown {
		labels = append(labels, item.Label)
		total += item.Percentage
	}
	assert.Equal(t, []string{"Donations", "Memberships", "Shop Sales"}, labels)
	assert.InDelta(t, 100.0, total, 0.2)
}

func TestGoldMemberSkipsPlatformFee(t *testing.T) {
	in := DefaultInputs()
	in.GoldMember = true
	in.CommissionSales = 250
	r := Calculate(in)

	assert.Zero(t, r.PlatformFees)
	assert.Equal(t, 38.0, r.Transactions, "250 in commissions counts as three transactions")
	assert.InDelta(t, 25.17, r.PaymentProcessingFees, 0.001)
	assert.Len(t, r.Breakdown, 4)
}

func TestQuickDefaults(t *testing.T) {
	in := DefaultInputs()
	in.GoldMember = true
	in = QuickDefaults().Apply(in)

	assert.Zero(t, in.ShopSalesPerMonth)
	assert.False(t, in.GoldMember)
	assert.Equal(t, 20.0, in.MonthlyDonations)

	r := Calculate(in)
	assert.InDelta(t, 150.0, r.GrossMonthly, 0.001)
	assert.InDelta(t, 129.15, r.NetMonthly, 0.006)
}

func TestNoRevenue(t *testing.T) {
	r := Calculate(Inputs{PaypalFeeRate: 2.9})
	assert.Zero(t, r.FeePercentage)
	assert.Empty(t, r.Breakdown)
}

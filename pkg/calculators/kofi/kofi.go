// Package kofi estimates monthly income from Ko-fi donations, memberships,
// shop sales and commissions.
package kofi

import (
	"math"

	"github.com/BenTyson/calcverse/pkg/calculator"
	"github.com/BenTyson/calcverse/pkg/constants"
	"github.com/BenTyson/calcverse/pkg/mathutil"
)

const (
	freePlatformFee = 0.05
	goldPlatformFee = 0.0
	perTransaction  = 0.30
	// commissionBlock is the assumed commission size used to count
	// commission transactions.
	commissionBlock = 100.0
)

// Inputs describes a month of supporter activity.
type Inputs struct {
	MonthlyDonations  float64 `json:"monthlyDonations" yaml:"monthlyDonations"`
	MembershipCount   float64 `json:"membershipCount" yaml:"membershipCount"`
	AvgDonationAmount float64 `json:"avgDonationAmount" yaml:"avgDonationAmount"`
	MembershipPrice   float64 `json:"membershipPrice" yaml:"membershipPrice"`
	ShopSalesPerMonth float64 `json:"shopSalesPerMonth" yaml:"shopSalesPerMonth"`
	AvgOrderValue     float64 `json:"avgOrderValue" yaml:"avgOrderValue"`
	CommissionSales   float64 `json:"commissionSales" yaml:"commissionSales"`
	GoldMember        bool    `json:"goldMember" yaml:"goldMember"`
	PaypalFeeRate     float64 `json:"paypalFeeRate" yaml:"paypalFeeRate"`
}

// Results holds monthly revenue by stream and the fees taken from it.
type Results struct {
	DonationRevenue       float64               `json:"donationRevenue"`
	MembershipRevenue     float64               `json:"membershipRevenue"`
	ShopRevenue           float64               `json:"shopRevenue"`
	CommissionRevenue     float64               `json:"commissionRevenue"`
	GrossMonthly          float64               `json:"grossMonthly"`
	PlatformFees          float64               `json:"platformFees"`
	PaymentProcessingFees float64               `json:"paymentProcessingFees"`
	TotalFees             float64               `json:"totalFees"`
	NetMonthly            float64               `json:"netMonthly"`
	NetAnnual             float64               `json:"netAnnual"`
	FeePercentage         float64               `json:"feePercentage"`
	Transactions          float64               `json:"transactions"`
	Breakdown             []calculator.LineItem `json:"breakdown"`
}

// Overrides pins input fields when set.
type Overrides struct {
	AvgDonationAmount *float64 `json:"avgDonationAmount,omitempty"`
	MembershipPrice   *float64 `json:"membershipPrice,omitempty"`
	ShopSalesPerMonth *float64 `json:"shopSalesPerMonth,omitempty"`
	AvgOrderValue     *float64 `json:"avgOrderValue,omitempty"`
	CommissionSales   *float64 `json:"commissionSales,omitempty"`
	GoldMember        *bool    `json:"goldMember,omitempty"`
	PaypalFeeRate     *float64 `json:"paypalFeeRate,omitempty"`
}

// Apply returns in with every set override copied over it.
func (o Overrides) Apply(in Inputs) Inputs {
	calculator.Override(&in.AvgDonationAmount, o.AvgDonationAmount)
	calculator.Override(&in.MembershipPrice, o.MembershipPrice)
	calculator.Override(&in.ShopSalesPerMonth, o.ShopSalesPerMonth)
	calculator.Override(&in.AvgOrderValue, o.AvgOrderValue)
	calculator.Override(&in.CommissionSales, o.CommissionSales)
	calculator.Override(&in.GoldMember, o.GoldMember)
	calculator.Override(&in.PaypalFeeRate, o.PaypalFeeRate)
	return in
}

// DefaultInputs returns a small free plan page with a few shop orders.
func DefaultInputs() Inputs {
	return Inputs{
		MonthlyDonations:  20,
		MembershipCount:   10,
		AvgDonationAmount: 5,
		MembershipPrice:   5,
		ShopSalesPerMonth: 5,
		AvgOrderValue:     15,
		PaypalFeeRate:     2.9,
	}
}

// QuickDefaults leaves the shop and commissions out of a quick estimate.
func QuickDefaults() Overrides {
	return Overrides{
		AvgDonationAmount: calculator.Ptr(5.0),
		MembershipPrice:   calculator.Ptr(5.0),
		ShopSalesPerMonth: calculator.Ptr(0.0),
		AvgOrderValue:     calculator.Ptr(15.0),
		CommissionSales:   calculator.Ptr(0.0),
		GoldMember:        calculator.Ptr(false),
		PaypalFeeRate:     calculator.Ptr(2.9),
	}
}

// Calculate applies the platform fee to donations and memberships only and
// the payment processor fee to every transaction.
func Calculate(in Inputs) Results {
	donations := in.MonthlyDonations * in.AvgDonationAmount
	memberships := in.MembershipCount * in.MembershipPrice
	shop := in.ShopSalesPerMonth * in.AvgOrderValue
	commissions := in.CommissionSales
	gross := donations + memberships + shop + commissions

	platformRate := freePlatformFee
	if in.GoldMember {
		platformRate = goldPlatformFee
	}
	platform := (donations + memberships) * platformRate

	commissionCount := 0.0
	if commissions > 0 {
		commissionCount = math.Ceil(commissions / commissionBlock)
	}
	transactions := in.MonthlyDonations + in.MembershipCount + in.ShopSalesPerMonth + commissionCount
	processing := mathutil.ApplyPercentage(gross, in.PaypalFeeRate) + transactions*perTransaction

	total := platform + processing
	net := gross - total

	var lines []calculator.LineItem
	for _, stream := range []struct {
		label string
		value float64
	}{
		{"Donations", donations},
		{"Memberships", memberships},
		{"Shop Sales", shop},
		{"Commissions", commissions},
	} {
		if stream.value <= 0 {
			continue
		}
		lines = append(lines, calculator.LineItem{
			Label:      stream.label,
			Amount:     mathutil.Round(stream.value),
			Percentage: mathutil.RoundPercent(mathutil.CalculatePercentage(stream.value, gross)),
		})
	}

	return Results{
		DonationRevenue:       mathutil.Round(donations),
		MembershipRevenue:     mathutil.Round(memberships),
		ShopRevenue:           mathutil.Round(shop),
		CommissionRevenue:     mathutil.Round(commissions),
		GrossMonthly:          mathutil.Round(gross),
		PlatformFees:          mathutil.Round(platform),
		PaymentProcessingFees: mathutil.Round(processing),
		TotalFees:             mathutil.Round(total),
		NetMonthly:            mathutil.Round(net),
		NetAnnual:             mathutil.Round(net * constants.MonthsPerYear),
		FeePercentage:         mathutil.RoundPercent(mathutil.SafeDivide(total, gross) * 100),
		Transactions:          transactions,
		Breakdown:             lines,
	}
}

// Highlights implements calculator.Reportable.
func (r Results) Highlights() []calculator.Metric {
	return []calculator.Metric{
		{Key: "netMonthly", Label: "Monthly Net", Value: r.NetMonthly, Unit: calculator.UnitCurrency},
		{Key: "netAnnual", Label: "Annual Net", Value: r.NetAnnual, Unit: calculator.UnitCurrency},
		{Key: "totalFees", Label: "Total Fees", Value: r.TotalFees, Unit: calculator.UnitCurrency},
		{Key: "feePercentage", Label: "Fee Percentage", Value: r.FeePercentage, Unit: calculator.UnitPercent},
	}
}

// Lines implements calculator.Reportable.
func (r Results) Lines() []calculator.LineItem {
	return r.Breakdown
}

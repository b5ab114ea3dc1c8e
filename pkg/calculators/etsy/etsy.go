// Package etsy breaks down the fees Etsy takes from a single sale.
package etsy

import (
	"github.com/BenTyson/calcverse/pkg/calculator"
	"github.com/BenTyson/calcverse/pkg/mathutil"
)

// Fee schedule.
const (
	ListingFee         = 0.20
	TransactionFeeRate = 0.065
	ProcessingRate     = 0.03
	ProcessingFlat     = 0.25
	OffsiteAdsRate     = 0.12
)

// Inputs describes one order.
type Inputs struct {
	ItemPrice         float64 `json:"itemPrice" yaml:"itemPrice"`
	ShippingCharged   float64 `json:"shippingCharged" yaml:"shippingCharged"`
	ShippingCost      float64 `json:"shippingCost" yaml:"shippingCost"`
	ItemCost          float64 `json:"itemCost" yaml:"itemCost"`
	EtsyAdsPercent    float64 `json:"etsyAdsPercent" yaml:"etsyAdsPercent"`
	OffsiteAdsOptedIn bool    `json:"offsiteAdsOptedIn" yaml:"offsiteAdsOptedIn"`
}

// Results holds per-order fees and profit.
type Results struct {
	ListingFee           float64               `json:"listingFee"`
	TransactionFee       float64               `json:"transactionFee"`
	PaymentProcessingFee float64               `json:"paymentProcessingFee"`
	EtsyAdsFee           float64               `json:"etsyAdsFee"`
	OffsiteAdsFee        float64               `json:"offsiteAdsFee"`
	TotalFees            float64               `json:"totalFees"`
	GrossRevenue         float64               `json:"grossRevenue"`
	NetProfit            float64               `json:"netProfit"`
	ProfitMargin         float64               `json:"profitMargin"`
	FeePercentage        float64               `json:"feePercentage"`
	Breakdown            []calculator.LineItem `json:"breakdown"`
}

// DefaultInputs returns a $25 item with $5 shipping.
func DefaultInputs() Inputs {
	return Inputs{
		ItemPrice:       25,
		ShippingCharged: 5,
		ShippingCost:    3,
		ItemCost:        8,
	}
}

// Calculate applies the fee schedule to the order total (item price plus
// shipping charged).
func Calculate(in Inputs) Results {
	gross := in.ItemPrice + in.ShippingCharged

	transaction := gross * TransactionFeeRate
	processing := gross*ProcessingRate + ProcessingFlat

	var ads, offsite float64
	if in.EtsyAdsPercent > 0 {
		ads = mathutil.ApplyPercentage(gross, in.EtsyAdsPercent)
	}
	if in.OffsiteAdsOptedIn {
		offsite = gross * OffsiteAdsRate
	}

	total := ListingFee + transaction + processing + ads + offsite
	net := gross - total - in.ItemCost - in.ShippingCost

	lines := []calculator.LineItem{
		{Label: "Gross Revenue", Amount: mathutil.Round(gross)},
		{Label: "Listing Fee", Amount: mathutil.Round(ListingFee), IsDeduction: true},
		{Label: "Transaction Fee (6.5%)", Amount: mathutil.Round(transaction), IsDeduction: true},
		{Label: "Payment Processing", Amount: mathutil.Round(processing), IsDeduction: true},
	}
	if ads > 0 {
		lines = append(lines, calculator.LineItem{Label: "Etsy Ads", Amount: mathutil.Round(ads), IsDeduction: true})
	}
	if offsite > 0 {
		lines = append(lines, calculator.LineItem{Label: "Offsite Ads (12%)", Amount: mathutil.Round(offsite), IsDeduction: true})
	}
	lines = append(lines,
		calculator.LineItem{Label: "Item Cost", Amount: mathutil.Round(in.ItemCost), IsDeduction: true},
		calculator.LineItem{Label: "Shipping Cost", Amount: mathutil.Round(in.ShippingCost), IsDeduction: true},
	)

	return Results{
		ListingFee:           mathutil.Round(ListingFee),
		TransactionFee:       mathutil.Round(transaction),
		PaymentProcessingFee: mathutil.Round(processing),
		EtsyAdsFee:           mathutil.Round(ads),
		OffsiteAdsFee:        mathutil.Round(offsite),
		TotalFees:            mathutil.Round(total),
		GrossRevenue:         mathutil.Round(gross),
		NetProfit:            mathutil.Round(net),
		ProfitMargin:         mathutil.RoundPercent(mathutil.CalculatePercentage(net, gross)),
		FeePercentage:        mathutil.RoundPercent(mathutil.CalculatePercentage(total, gross)),
		Breakdown:            lines,
	}
}

// Highlights implements calculator.Reportable.
func (r Results) Highlights() []calculator.Metric {
	return []calculator.Metric{
		{Key: "netProfit", Label: "Net Profit", Value: r.NetProfit, Unit: calculator.UnitCurrency},
		{Key: "totalFees", Label: "Total Etsy Fees", Value: r.TotalFees, Unit: calculator.UnitCurrency},
		{Key: "profitMargin", Label: "Profit Margin", Value: r.ProfitMargin, Unit: calculator.UnitPercent},
		{Key: "feePercentage", Label: "Fees as % of Sale", Value: r.FeePercentage, Unit: calculator.UnitPercent},
	}
}

// Lines implements calculator.Reportable.
func (r Results) Lines() []calculator.LineItem {
	return r.Breakdown
}

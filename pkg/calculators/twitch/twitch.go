// Package twitch estimates streamer income from subscriptions, bits, ads
// and sponsorships.
package twitch

import (
	"github.com/BenTyson/calcverse/pkg/calculator"
	"github.com/BenTyson/calcverse/pkg/constants"
	"github.com/BenTyson/calcverse/pkg/mathutil"
)

// Subscription prices per tier.
const (
	Tier1Price = 4.99
	Tier2Price = 9.99
	Tier3Price = 24.99
)

const (
	bitValue = 0.01
	// quickBitsPerViewer estimates monthly bits from average viewers.
	quickBitsPerViewer = 25
)

// Inputs describes the channel and a month of viewer support.
type Inputs struct {
	AverageViewers     float64 `json:"averageViewers" yaml:"averageViewers"`
	SubscriberCount    float64 `json:"subscriberCount" yaml:"subscriberCount"`
	StreamHoursPerWeek float64 `json:"streamHoursPerWeek" yaml:"streamHoursPerWeek"`
	Tier1Subs          float64 `json:"tier1Subs" yaml:"tier1Subs"`
	Tier2Subs          float64 `json:"tier2Subs" yaml:"tier2Subs"`
	Tier3Subs          float64 `json:"tier3Subs" yaml:"tier3Subs"`
	BitsPerMonth       float64 `json:"bitsPerMonth" yaml:"bitsPerMonth"`
	AdRevenuePerHour   float64 `json:"adRevenuePerHour" yaml:"adRevenuePerHour"`
	SponsorshipRevenue float64 `json:"sponsorshipRevenue" yaml:"sponsorshipRevenue"`
	TwitchCut          float64 `json:"twitchCut" yaml:"twitchCut"`
}

// SubscriptionRevenue is the streamer's share per tier.
type SubscriptionRevenue struct {
	Tier1 float64 `json:"tier1"`
	Tier2 float64 `json:"tier2"`
	Tier3 float64 `json:"tier3"`
	Total float64 `json:"total"`
}

// Results holds monthly income by source.
type Results struct {
	SubscriptionRevenue SubscriptionRevenue   `json:"subscriptionRevenue"`
	BitsRevenue         float64               `json:"bitsRevenue"`
	AdRevenue           float64               `json:"adRevenue"`
	SponsorshipRevenue  float64               `json:"sponsorshipRevenue"`
	GrossMonthly        float64               `json:"grossMonthly"`
	TwitchFees          float64               `json:"twitchFees"`
	NetMonthly          float64               `json:"netMonthly"`
	NetAnnual           float64               `json:"netAnnual"`
	RevenuePerViewer    float64               `json:"revenuePerViewer"`
	Breakdown           []calculator.LineItem `json:"breakdown"`
}

// Overrides pins input fields when set.
type Overrides struct {
	StreamHoursPerWeek *float64 `json:"streamHoursPerWeek,omitempty"`
	Tier2Subs          *float64 `json:"tier2Subs,omitempty"`
	Tier3Subs          *float64 `json:"tier3Subs,omitempty"`
	BitsPerMonth       *float64 `json:"bitsPerMonth,omitempty"`
	AdRevenuePerHour   *float64 `json:"adRevenuePerHour,omitempty"`
	SponsorshipRevenue *float64 `json:"sponsorshipRevenue,omitempty"`
	TwitchCut          *float64 `json:"twitchCut,omitempty"`
}

// Apply returns in with every set override copied over it.
func (o Overrides) Apply(in Inputs) Inputs {
	calculator.Override(&in.StreamHoursPerWeek, o.StreamHoursPerWeek)
	calculator.Override(&in.Tier2Subs, o.Tier2Subs)
	calculator.Override(&in.Tier3Subs, o.Tier3Subs)
	calculator.Override(&in.BitsPerMonth, o.BitsPerMonth)
	calculator.Override(&in.AdRevenuePerHour, o.AdRevenuePerHour)
	calculator.Override(&in.SponsorshipRevenue, o.SponsorshipRevenue)
	calculator.Override(&in.TwitchCut, o.TwitchCut)
	return in
}

// DefaultInputs returns an affiliate sized channel with fifty subscribers.
func DefaultInputs() Inputs {
	return Inputs{
		AverageViewers:     100,
		SubscriberCount:    50,
		StreamHoursPerWeek: 20,
		Tier1Subs:          45,
		Tier2Subs:          4,
		Tier3Subs:          1,
		BitsPerMonth:       5000,
		AdRevenuePerHour:   3.50,
		TwitchCut:          50,
	}
}

// QuickDefaults counts tier 1 subs only and leaves sponsorships out.
func QuickDefaults() Overrides {
	return Overrides{
		StreamHoursPerWeek: calculator.Ptr(20.0),
		Tier2Subs:          calculator.Ptr(0.0),
		Tier3Subs:          calculator.Ptr(0.0),
		BitsPerMonth:       calculator.Ptr(2500.0),
		AdRevenuePerHour:   calculator.Ptr(3.50),
		SponsorshipRevenue: calculator.Ptr(0.0),
		TwitchCut:          calculator.Ptr(50.0),
	}
}

// DistributeSubs splits a subscriber count 90/8/2 across the three tiers.
func DistributeSubs(total float64) (tier1, tier2, tier3 float64) {
	return mathutil.RoundWhole(total * 0.90),
		mathutil.RoundWhole(total * 0.08),
		mathutil.RoundWhole(total * 0.02)
}

// Effective returns the inputs the calculation runs on. Quick mode derives
// the tier split from the subscriber count and bits from average viewers.
func Effective(in Inputs, mode calculator.Mode) Inputs {
	if mode == calculator.ModeQuick {
		in.Tier1Subs, in.Tier2Subs, in.Tier3Subs = DistributeSubs(in.SubscriberCount)
		in.BitsPerMonth = in.AverageViewers * quickBitsPerViewer
	}
	return in
}

// Calculate applies the Twitch cut to subscriptions only. Breakdown
// percentages are shares of gross, with Twitch's share listed as a deduction.
func Calculate(in Inputs) Results {
	keep := (100 - in.TwitchCut) / 100

	tier1 := in.Tier1Subs * Tier1Price
	tier2 := in.Tier2Subs * Tier2Price
	tier3 := in.Tier3Subs * Tier3Price
	subsGross := tier1 + tier2 + tier3
	subsNet := subsGross * keep

	bits := in.BitsPerMonth * bitValue
	ads := in.StreamHoursPerWeek * constants.WeeksPerMonth * in.AdRevenuePerHour
	gross := subsGross + bits + ads + in.SponsorshipRevenue
	fees := subsGross - subsNet
	net := subsNet + bits + ads + in.SponsorshipRevenue

	var lines []calculator.LineItem
	for _, stream := range []struct {
		label     string
		value     float64
		deduction bool
	}{
		{"Subscriptions", subsNet, false},
		{"Bits", bits, false},
		{"Ads", ads, false},
		{"Sponsorships", in.SponsorshipRevenue, false},
		{"Twitch Share", fees, true},
	} {
		if stream.value <= 0 {
			continue
		}
		lines = append(lines, calculator.LineItem{
			Label:       stream.label,
			Amount:      mathutil.Round(stream.value),
			IsDeduction: stream.deduction,
			Percentage:  mathutil.RoundPercent(mathutil.CalculatePercentage(stream.value, gross)),
		})
	}

	return Results{
		SubscriptionRevenue: SubscriptionRevenue{
			Tier1: mathutil.Round(tier1 * keep),
			Tier2: mathutil.Round(tier2 * keep),
			Tier3: mathutil.Round(tier3 * keep),
			Total: mathutil.Round(subsNet),
		},
		BitsRevenue:        mathutil.Round(bits),
		AdRevenue:          mathutil.Round(ads),
		SponsorshipRevenue: mathutil.Round(in.SponsorshipRevenue),
		GrossMonthly:       mathutil.Round(gross),
		TwitchFees:         mathutil.Round(fees),
		NetMonthly:         mathutil.Round(net),
		NetAnnual:          mathutil.Round(net * constants.MonthsPerYear),
		RevenuePerViewer:   mathutil.Round(mathutil.SafeDivide(net, in.AverageViewers)),
		Breakdown:          lines,
	}
}

// Highlights implements calculator.Reportable.
func (r Results) Highlights() []calculator.Metric {
	return []calculator.Metric{
		{Key: "netMonthly", Label: "Monthly Net", Value: r.NetMonthly, Unit: calculator.UnitCurrency},
		{Key: "netAnnual", Label: "Annual Net", Value: r.NetAnnual, Unit: calculator.UnitCurrency},
		{Key: "grossMonthly", Label: "Monthly Gross", Value: r.GrossMonthly, Unit: calculator.UnitCurrency},
		{Key: "twitchFees", Label: "Twitch Share", Value: r.TwitchFees, Unit: calculator.UnitCurrency},
		{Key: "revenuePerViewer", Label: "Revenue per Viewer", Value: r.RevenuePerViewer, Unit: calculator.UnitCurrency},
	}
}

// Lines implements calculator.Reportable.
func (r Results) Lines() []calculator.LineItem {
	return r.Breakdown
}

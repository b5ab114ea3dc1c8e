// Package podcast estimates monthly podcast income from ad slots, affiliate
// links and premium subscriptions.
package podcast

import (
	"github.com/BenTyson/calcverse/pkg/calculator"
	"github.com/BenTyson/calcverse/pkg/constants"
	"github.com/BenTyson/calcverse/pkg/mathutil"
)

// Slot CPM multipliers relative to the mid-roll baseline.
const (
	PreRollMultiplier  = 0.7
	MidRollMultiplier  = 1.0
	PostRollMultiplier = 0.5
)

// Benchmark is a typical CPM band for a podcast niche.
type Benchmark struct {
	Niche string `json:"niche"`
	CPM   string `json:"cpm"`
}

// Benchmarks returns typical CPM ranges by niche.
func Benchmarks() []Benchmark {
	return []Benchmark{
		{Niche: "Business/Finance", CPM: "$40-60"},
		{Niche: "Technology", CPM: "$30-50"},
		{Niche: "Health/Wellness", CPM: "$25-40"},
		{Niche: "True Crime", CPM: "$20-35"},
		{Niche: "Comedy", CPM: "$18-30"},
		{Niche: "General Interest", CPM: "$15-25"},
	}
}

// Inputs describes a month of episodes and the ad inventory in each.
type Inputs struct {
	DownloadsPerEpisode float64 `json:"downloadsPerEpisode" yaml:"downloadsPerEpisode"`
	EpisodesPerMonth    float64 `json:"episodesPerMonth" yaml:"episodesPerMonth"`
	CPMRate             float64 `json:"cpmRate" yaml:"cpmRate"`
	PreRollSpots        float64 `json:"preRollSpots" yaml:"preRollSpots"`
	MidRollSpots        float64 `json:"midRollSpots" yaml:"midRollSpots"`
	PostRollSpots       float64 `json:"postRollSpots" yaml:"postRollSpots"`
	FillRate            float64 `json:"fillRate" yaml:"fillRate"`
	AffiliateRevenue    float64 `json:"affiliateRevenue" yaml:"affiliateRevenue"`
	PremiumSubscribers  float64 `json:"premiumSubscribers" yaml:"premiumSubscribers"`
	PremiumPrice        float64 `json:"premiumPrice" yaml:"premiumPrice"`
}

// Results holds monthly income by source.
type Results struct {
	MonthlyDownloads   float64               `json:"monthlyDownloads"`
	PreRollRevenue     float64               `json:"preRollRevenue"`
	MidRollRevenue     float64               `json:"midRollRevenue"`
	PostRollRevenue    float64               `json:"postRollRevenue"`
	TotalAdRevenue     float64               `json:"totalAdRevenue"`
	AffiliateRevenue   float64               `json:"affiliateRevenue"`
	PremiumRevenue     float64               `json:"premiumRevenue"`
	GrossMonthly       float64               `json:"grossMonthly"`
	NetMonthly         float64               `json:"netMonthly"`
	NetAnnual          float64               `json:"netAnnual"`
	EffectiveCPM       float64               `json:"effectiveCPM"`
	RevenuePerDownload float64               `json:"revenuePerDownload"`
	Breakdown          []calculator.LineItem `json:"breakdown"`
}

// Overrides pins input fields when set.
type Overrides struct {
	CPMRate            *float64 `json:"cpmRate,omitempty"`
	PreRollSpots       *float64 `json:"preRollSpots,omitempty"`
	MidRollSpots       *float64 `json:"midRollSpots,omitempty"`
	PostRollSpots      *float64 `json:"postRollSpots,omitempty"`
	FillRate           *float64 `json:"fillRate,omitempty"`
	AffiliateRevenue   *float64 `json:"affiliateRevenue,omitempty"`
	PremiumSubscribers *float64 `json:"premiumSubscribers,omitempty"`
	PremiumPrice       *float64 `json:"premiumPrice,omitempty"`
}

// Apply returns in with every set override copied over it.
func (o Overrides) Apply(in Inputs) Inputs {
	calculator.Override(&in.CPMRate, o.CPMRate)
	calculator.Override(&in.PreRollSpots, o.PreRollSpots)
	calculator.Override(&in.MidRollSpots, o.MidRollSpots)
	calculator.Override(&in.PostRollSpots, o.PostRollSpots)
	calculator.Override(&in.FillRate, o.FillRate)
	calculator.Override(&in.AffiliateRevenue, o.AffiliateRevenue)
	calculator.Override(&in.PremiumSubscribers, o.PremiumSubscribers)
	calculator.Override(&in.PremiumPrice, o.PremiumPrice)
	return in
}

// DefaultInputs returns four episodes a month at 5,000 downloads each.
func DefaultInputs() Inputs {
	return Inputs{
		DownloadsPerEpisode: 5000,
		EpisodesPerMonth:    4,
		CPMRate:             25,
		PreRollSpots:        1,
		MidRollSpots:        2,
		PostRollSpots:       1,
		FillRate:            70,
		AffiliateRevenue:    200,
		PremiumPrice:        5,
	}
}

// QuickDefaults estimates ad income only.
func QuickDefaults() Overrides {
	return Overrides{
		CPMRate:            calculator.Ptr(25.0),
		PreRollSpots:       calculator.Ptr(1.0),
		MidRollSpots:       calculator.Ptr(2.0),
		PostRollSpots:      calculator.Ptr(1.0),
		FillRate:           calculator.Ptr(70.0),
		AffiliateRevenue:   calculator.Ptr(0.0),
		PremiumSubscribers: calculator.Ptr(0.0),
		PremiumPrice:       calculator.Ptr(5.0),
	}
}

// Calculate prices each ad slot as downloads/1000 x CPM x slot multiplier x
// spots x fill rate. There is no network cut, so net equals gross.
func Calculate(in Inputs) Results {
	downloads := in.DownloadsPerEpisode * in.EpisodesPerMonth
	fill := mathutil.Fraction(in.FillRate)
	slot := func(multiplier, spots float64) float64 {
		return downloads / 1000 * in.CPMRate * multiplier * spots * fill
	}

	pre := slot(PreRollMultiplier, in.PreRollSpots)
	mid := slot(MidRollMultiplier, in.MidRollSpots)
	post := slot(PostRollMultiplier, in.PostRollSpots)
	ads := pre + mid + post
	premium := in.PremiumSubscribers * in.PremiumPrice
	gross := ads + in.AffiliateRevenue + premium
	net := gross

	var lines []calculator.LineItem
	for _, stream := range []struct {
		label string
		value float64
	}{
		{"Mid-Roll Ads", mid},
		{"Pre-Roll Ads", pre},
		{"Post-Roll Ads", post},
		{"Affiliates", in.AffiliateRevenue},
		{"Premium Subs", premium},
	} {
		if stream.value > 0 {
			lines = append(lines, calculator.LineItem{
				Label:      stream.label,
				Amount:     mathutil.Round(stream.value),
				Percentage: mathutil.RoundPercent(mathutil.CalculatePercentage(stream.value, gross)),
			})
		}
	}

	return Results{
		MonthlyDownloads:   downloads,
		PreRollRevenue:     mathutil.Round(pre),
		MidRollRevenue:     mathutil.Round(mid),
		PostRollRevenue:    mathutil.Round(post),
		TotalAdRevenue:     mathutil.Round(ads),
		AffiliateRevenue:   mathutil.Round(in.AffiliateRevenue),
		PremiumRevenue:     mathutil.Round(premium),
		GrossMonthly:       mathutil.Round(gross),
		NetMonthly:         mathutil.Round(net),
		NetAnnual:          mathutil.Round(net * constants.MonthsPerYear),
		EffectiveCPM:       mathutil.Round(mathutil.SafeDivide(ads, downloads) * 1000),
		RevenuePerDownload: mathutil.Round(mathutil.SafeDivide(gross, downloads)),
		Breakdown:          lines,
	}
}

// Highlights implements calculator.Reportable.
func (r Results) Highlights() []calculator.Metric {
	return []calculator.Metric{
		{Key: "netMonthly", Label: "Monthly Revenue", Value: r.NetMonthly, Unit: calculator.UnitCurrency},
		{Key: "netAnnual", Label: "Annual Revenue", Value: r.NetAnnual, Unit: calculator.UnitCurrency},
		{Key: "totalAdRevenue", Label: "Ad Revenue", Value: r.TotalAdRevenue, Unit: calculator.UnitCurrency},
		{Key: "effectiveCPM", Label: "Effective CPM", Value: r.EffectiveCPM, Unit: calculator.UnitCurrency},
		{Key: "monthlyDownloads", Label: "Monthly Downloads", Value: r.MonthlyDownloads, Unit: calculator.UnitCount},
	}
}

// Lines implements calculator.Reportable.
func (r Results) Lines() []calculator.LineItem {
	return r.Breakdown
}

// Package youtube estimates AdSense earnings ranges for a YouTube channel
// from views, niche and audience location.
package youtube

import (
	"strings"

	"github.com/BenTyson/calcverse/pkg/calculator"
	"github.com/BenTyson/calcverse/pkg/constants"
	"github.com/BenTyson/calcverse/pkg/mathutil"
)

const (
	defaultNiche    = "general"
	defaultLocation = "mixed"
	// baselineDuration is the view duration in seconds that earns the base CPM.
	baselineDuration   = 50.0
	maxWatchMultiplier = 1.5
	monetizationRate   = 0.5
	creatorShare       = 0.55
)

// Niche is a content category with its advertiser CPM range.
type Niche struct {
	Key   string           `json:"key"`
	Label string           `json:"label"`
	CPM   calculator.Range `json:"cpm"`
}

// Location is an audience region with its CPM multiplier.
type Location struct {
	Key        string  `json:"key"`
	Label      string  `json:"label"`
	Multiplier float64 `json:"multiplier"`
}

var niches = []Niche{
	{"finance", "Finance & Investing", calculator.Range{Low: 8, Mid: 15, High: 30}},
	{"tech", "Technology", calculator.Range{Low: 5, Mid: 10, High: 20}},
	{"business", "Business & Marketing", calculator.Range{Low: 6, Mid: 12, High: 25}},
	{"education", "Education", calculator.Range{Low: 4, Mid: 8, High: 15}},
	{"howto", "How-To & DIY", calculator.Range{Low: 3, Mid: 7, High: 14}},
	{"gaming", "Gaming", calculator.Range{Low: 2, Mid: 4, High: 8}},
	{"entertainment", "Entertainment", calculator.Range{Low: 2, Mid: 5, High: 10}},
	{"lifestyle", "Lifestyle & Vlogs", calculator.Range{Low: 3, Mid: 6, High: 12}},
	{"health", "Health & Fitness", calculator.Range{Low: 5, Mid: 10, High: 18}},
	{"general", "General Content", calculator.Range{Low: 2, Mid: 5, High: 10}},
}

var locations = []Location{
	{"us", "United States", 1.5},
	{"uk", "United Kingdom", 1.3},
	{"canada", "Canada", 1.2},
	{"australia", "Australia", 1.2},
	{"europe", "Western Europe", 1.0},
	{"mixed", "Mixed Global", 0.7},
	{"global", "Developing Countries", 0.5},
}

// Niches returns the niche table in display order.
func Niches() []Niche {
	return append([]Niche(nil), niches...)
}

// Locations returns the audience location table in display order.
func Locations() []Location {
	return append([]Location(nil), locations...)
}

// LookupNiche finds a niche by key, falling back to general content.
func LookupNiche(key string) Niche {
	key = strings.ToLower(strings.TrimSpace(key))
	var fallback Niche
	for _, n := range niches {
		if n.Key == key {
			return n
		}
		if n.Key == defaultNiche {
			fallback = n
		}
	}
	return fallback
}

// LookupLocation finds a location by key, falling back to a mixed audience.
func LookupLocation(key string) Location {
	key = strings.ToLower(strings.TrimSpace(key))
	var fallback Location
	for _, l := range locations {
		if l.Key == key {
			return l
		}
		if l.Key == defaultLocation {
			fallback = l
		}
	}
	return fallback
}

// Inputs describes the channel and its audience.
type Inputs struct {
	MonthlyViews        float64 `json:"monthlyViews" yaml:"monthlyViews"`
	Niche               string  `json:"niche" yaml:"niche"`
	AudienceLocation    string  `json:"audienceLocation" yaml:"audienceLocation"`
	AverageViewDuration float64 `json:"averageViewDuration" yaml:"averageViewDuration"`
	UploadsPerMonth     float64 `json:"uploadsPerMonth" yaml:"uploadsPerMonth"`
}

// Results holds the low, mid and high earnings estimates.
type Results struct {
	Niche            string           `json:"niche"`
	AudienceLocation string           `json:"audienceLocation"`
	EffectiveCPM     calculator.Range `json:"effectiveCPM"`
	EstimatedRPM     calculator.Range `json:"estimatedRPM"`
	MonthlyEarnings  calculator.Range `json:"monthlyEarnings"`
	AnnualEarnings   calculator.Range `json:"annualEarnings"`
	EarningsPerVideo calculator.Range `json:"earningsPerVideo"`
}

// DefaultInputs returns a 100,000 view channel with a US audience.
func DefaultInputs() Inputs {
	return Inputs{
		MonthlyViews:        100000,
		Niche:               defaultNiche,
		AudienceLocation:    defaultLocation,
		AverageViewDuration: 50,
		UploadsPerMonth:     8,
	}
}

// Calculate scales the niche CPM by audience location and watch time, then
// applies the monetized share of views and the creator revenue share.
func Calculate(in Inputs) Results {
	niche := LookupNiche(in.Niche)
	location := LookupLocation(in.AudienceLocation)
	watch := min(in.AverageViewDuration/baselineDuration, maxWatchMultiplier)
	monetized := in.MonthlyViews * monetizationRate

	cpm := niche.CPM.Map(func(v float64) float64 { return v * location.Multiplier * watch })
	rpm := cpm.Map(func(v float64) float64 { return v * creatorShare })
	monthly := rpm.Map(func(v float64) float64 { return monetized / 1000 * v })
	annual := monthly.Map(func(v float64) float64 { return v * constants.MonthsPerYear })
	perVideo := monthly.Map(func(v float64) float64 { return mathutil.SafeDivide(v, in.UploadsPerMonth) })

	return Results{
		Niche:            niche.Label,
		AudienceLocation: location.Label,
		EffectiveCPM:     cpm.Map(mathutil.Round),
		EstimatedRPM:     rpm.Map(mathutil.Round),
		MonthlyEarnings:  monthly.Map(mathutil.Round),
		AnnualEarnings:   annual.Map(mathutil.Round),
		EarningsPerVideo: perVideo.Map(mathutil.Round),
	}
}

// Highlights implements calculator.Reportable.
func (r Results) Highlights() []calculator.Metric {
	return []calculator.Metric{
		{Key: "monthlyEarnings", Label: "Monthly Earnings (mid)", Value: r.MonthlyEarnings.Mid, Unit: calculator.UnitCurrency},
		{Key: "annualEarnings", Label: "Annual Earnings (mid)", Value: r.AnnualEarnings.Mid, Unit: calculator.UnitCurrency},
		{Key: "estimatedRPM", Label: "RPM (mid)", Value: r.EstimatedRPM.Mid, Unit: calculator.UnitCurrency},
		{Key: "earningsPerVideo", Label: "Per Video (mid)", Value: r.EarningsPerVideo.Mid, Unit: calculator.UnitCurrency},
	}
}

// Lines lists the monthly earnings range.
func (r Results) Lines() []calculator.LineItem {
	return []calculator.LineItem{
		{Label: "Monthly (low)", Amount: r.MonthlyEarnings.Low},
		{Label: "Monthly (mid)", Amount: r.MonthlyEarnings.Mid},
		{Label: "Monthly (high)", Amount: r.MonthlyEarnings.High},
	}
}

// Package registry maps calculator slugs to the calculator packages and runs
// evaluations over partial JSON input records.
package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/BenTyson/calcverse/pkg/calculator"
	"github.com/BenTyson/calcverse/pkg/calculators/airbnb"
	"github.com/BenTyson/calcverse/pkg/calculators/doordash"
	"github.com/BenTyson/calcverse/pkg/calculators/etsy"
	"github.com/BenTyson/calcverse/pkg/calculators/freelancer"
	"github.com/BenTyson/calcverse/pkg/calculators/instacart"
	"github.com/BenTyson/calcverse/pkg/calculators/kofi"
	"github.com/BenTyson/calcverse/pkg/calculators/patreon"
	"github.com/BenTyson/calcverse/pkg/calculators/podcast"
	"github.com/BenTyson/calcverse/pkg/calculators/projectrate"
	"github.com/BenTyson/calcverse/pkg/calculators/quarterlytax"
	"github.com/BenTyson/calcverse/pkg/calculators/sidehustle"
	"github.com/BenTyson/calcverse/pkg/calculators/substack"
	"github.com/BenTyson/calcverse/pkg/calculators/twitch"
	"github.com/BenTyson/calcverse/pkg/calculators/uberlyft"
	"github.com/BenTyson/calcverse/pkg/calculators/w2vs1099"
	"github.com/BenTyson/calcverse/pkg/calculators/youtube"
	"go.uber.org/zap"
)

// ErrUnknownCalculator is returned when a slug does not name a calculator.
var ErrUnknownCalculator = errors.New("unknown calculator")

// Category groups calculators on the index page.
type Category string

const (
	CategoryGig        Category = "gig-economy"
	CategoryFreelancer Category = "freelancer"
	CategoryCreator    Category = "creator"
	CategoryTax        Category = "tax"
)

// Info describes a calculator for listings.
type Info struct {
	Slug        string   `json:"slug"`
	Name        string   `json:"name"`
	Category    Category `json:"category"`
	Description string   `json:"description"`
	QuickMode   bool     `json:"quickMode"`
}

// Evaluation is the outcome of running one calculator. Inputs holds the
// merged record that produced the results, so it can be shared or re-run.
type Evaluation struct {
	Slug       string                `json:"slug"`
	Name       string                `json:"name"`
	Mode       calculator.Mode       `json:"mode"`
	Inputs     any                   `json:"inputs"`
	Results    any                   `json:"results"`
	Highlights []calculator.Metric   `json:"highlights"`
	Lines      []calculator.LineItem `json:"lines"`
}

// Defaults carries a calculator's default record and, when it has a quick
// mode, the fields quick mode pins.
type Defaults struct {
	Slug          string `json:"slug"`
	Inputs        any    `json:"inputs"`
	QuickDefaults any    `json:"quickDefaults,omitempty"`
}

type entry interface {
	info() Info
	defaults() any
	quickDefaults() any
	evaluate(raw json.RawMessage, mode calculator.Mode, now time.Time) (Evaluation, error)
}

// adapter binds one calculator package to the entry interface.
type adapter[I any, R calculator.Reportable] struct {
	meta      Info
	newInputs func() I
	quick     func(I) I
	quickView any
	effective func(I, calculator.Mode) I
	calc      func(I, time.Time) R
}

func (a adapter[I, R]) info() Info {
	return a.meta
}

func (a adapter[I, R]) defaults() any {
	return a.newInputs()
}

func (a adapter[I, R]) quickDefaults() any {
	return a.quickView
}

func (a adapter[I, R]) evaluate(raw json.RawMessage, mode calculator.Mode, now time.Time) (Evaluation, error) {
	in := a.newInputs()
	if len(raw) > 0 && string(raw) != "null" {
		if err := json.Unmarshal(raw, &in); err != nil {
			return Evaluation{}, fmt.Errorf("decoding %s inputs: %w", a.meta.Slug, err)
		}
	}
	if mode == calculator.ModeQuick && a.quick != nil {
		in = a.quick(in)
	}
	run := in
	if a.effective != nil {
		run = a.effective(in, mode)
	}
	res := a.calc(run, now)
	return Evaluation{
		Slug:       a.meta.Slug,
		Name:       a.meta.Name,
		Mode:       mode,
		Inputs:     in,
		Results:    res,
		Highlights: res.Highlights(),
		Lines:      res.Lines(),
	}, nil
}

// pure lifts a calculation that does not depend on the clock.
func pure[I, R any](fn func(I) R) func(I, time.Time) R {
	return func(in I, _ time.Time) R { return fn(in) }
}

// Registry resolves slugs to calculators.
type Registry struct {
	entries map[string]entry
	order   []string
	now     func() time.Time
	logger  *zap.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithClock sets the clock used by date-dependent calculators.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) {
		if now != nil {
			r.now = now
		}
	}
}

// New returns a registry holding every calculator.
func New(logger *zap.Logger, opts ...Option) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Registry{
		entries: make(map[string]entry),
		now:     time.Now,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	for _, e := range builtin() {
		slug := e.info().Slug
		r.entries[slug] = e
		r.order = append(r.order, slug)
	}
	sort.Strings(r.order)
	return r
}

// List returns calculator metadata sorted by slug.
func (r *Registry) List() []Info {
	out := make([]Info, 0, len(r.order))
	for _, slug := range r.order {
		out = append(out, r.entries[slug].info())
	}
	return out
}

// Lookup returns the metadata for slug.
func (r *Registry) Lookup(slug string) (Info, error) {
	e, err := r.entry(slug)
	if err != nil {
		return Info{}, err
	}
	return e.info(), nil
}

// Defaults returns the default record for slug.
func (r *Registry) Defaults(slug string) (Defaults, error) {
	e, err := r.entry(slug)
	if err != nil {
		return Defaults{}, err
	}
	return Defaults{Slug: e.info().Slug, Inputs: e.defaults(), QuickDefaults: e.quickDefaults()}, nil
}

// Evaluate merges raw over the calculator defaults and runs it. Keys in raw
// that the calculator does not know are ignored.
func (r *Registry) Evaluate(slug string, raw json.RawMessage, mode calculator.Mode) (Evaluation, error) {
	e, err := r.entry(slug)
	if err != nil {
		return Evaluation{}, err
	}
	if !mode.Valid() {
		mode = calculator.DefaultMode
	}

	ev, err := e.evaluate(raw, mode, r.now())
	if err != nil {
		r.logger.Debug("evaluation rejected inputs",
			zap.String("op", "registry.Evaluate"),
			zap.String("calculator", slug),
			zap.Error(err),
		)
		return Evaluation{}, err
	}

	r.logger.Debug("evaluated calculator",
		zap.String("op", "registry.Evaluate"),
		zap.String("calculator", slug),
		zap.String("mode", mode.String()),
	)
	return ev, nil
}

// EvaluateState evaluates share state. Unlike Evaluate, a record that does
// not decode into the calculator inputs is dropped and the defaults are used.
func (r *Registry) EvaluateState(slug string, raw json.RawMessage, mode calculator.Mode) (Evaluation, error) {
	if _, err := r.entry(slug); err != nil {
		return Evaluation{}, err
	}
	ev, err := r.Evaluate(slug, raw, mode)
	if err == nil {
		return ev, nil
	}
	r.logger.Debug("ignoring undecodable share state",
		zap.String("op", "registry.EvaluateState"),
		zap.String("calculator", slug),
		zap.Error(err),
	)
	return r.Evaluate(slug, nil, mode)
}

// InputsFromPairs converts key=value pairs into a JSON input record for
// slug. Keys match input fields case-insensitively and unknown keys are an
// error. Values are parsed according to the type of the default value.
func (r *Registry) InputsFromPairs(slug string, pairs []string) (json.RawMessage, error) {
	e, err := r.entry(slug)
	if err != nil {
		return nil, err
	}

	buf, err := json.Marshal(e.defaults())
	if err != nil {
		return nil, fmt.Errorf("encoding %s defaults: %w", slug, err)
	}
	var fields map[string]any
	if err := json.Unmarshal(buf, &fields); err != nil {
		return nil, fmt.Errorf("decoding %s defaults: %w", slug, err)
	}
	names := make(map[string]string, len(fields))
	for name := range fields {
		names[strings.ToLower(name)] = name
	}

	out := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("invalid input %q, expected key=value", pair)
		}
		name, known := names[strings.ToLower(strings.TrimSpace(key))]
		if !known {
			return nil, fmt.Errorf("unknown input %q for %s", key, slug)
		}
		value = strings.TrimSpace(value)
		switch fields[name].(type) {
		case float64:
			f, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return nil, fmt.Errorf("input %s: %w", name, err)
			}
			out[name] = f
		case bool:
			b, err := strconv.ParseBool(value)
			if err != nil {
				return nil, fmt.Errorf("input %s: %w", name, err)
			}
			out[name] = b
		default:
			out[name] = value
		}
	}
	return json.Marshal(out)
}

func (r *Registry) entry(slug string) (entry, error) {
	e, ok := r.entries[strings.ToLower(strings.TrimSpace(slug))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCalculator, slug)
	}
	return e, nil
}

func builtin() []entry {
	return []entry{
		adapter[airbnb.Inputs, airbnb.Results]{
			meta: Info{
				Slug:        "airbnb-profit",
				Name:        "Airbnb Profit Calculator",
				Category:    CategoryGig,
				Description: "Monthly and annual profit of a short-term rental, with break-even occupancy.",
			},
			newInputs: airbnb.DefaultInputs,
			calc:      pure(airbnb.Calculate),
		},
		adapter[doordash.Inputs, doordash.Results]{
			meta: Info{
				Slug:        "doordash-earnings",
				Name:        "DoorDash Earnings Calculator",
				Category:    CategoryGig,
				Description: "Weekly, monthly and hourly delivery earnings after gas.",
			},
			newInputs: doordash.DefaultInputs,
			calc:      pure(doordash.Calculate),
		},
		adapter[etsy.Inputs, etsy.Results]{
			meta: Info{
				Slug:        "etsy-fees",
				Name:        "Etsy Fee Calculator",
				Category:    CategoryCreator,
				Description: "Listing, transaction, payment processing and ad fees for one sale.",
			},
			newInputs: etsy.DefaultInputs,
			calc:      pure(etsy.Calculate),
		},
		adapter[freelancer.Inputs, freelancer.Results]{
			meta: Info{
				Slug:        "freelancer-rate",
				Name:        "Freelancer Rate Calculator",
				Category:    CategoryFreelancer,
				Description: "Hourly, daily and project rates needed to reach a target income.",
			},
			newInputs: freelancer.DefaultInputs,
			calc:      pure(freelancer.Calculate),
		},
		adapter[instacart.Inputs, instacart.Results]{
			meta: Info{
				Slug:        "instacart-earnings",
				Name:        "Instacart Shopper Earnings Calculator",
				Category:    CategoryGig,
				Description: "Batch pay, tips and gas costs for full-service shoppers.",
				QuickMode:   true,
			},
			newInputs: instacart.DefaultInputs,
			quick:     instacart.QuickDefaults().Apply,
			quickView: instacart.QuickDefaults(),
			effective: instacart.Effective,
			calc:      pure(instacart.Calculate),
		},
		adapter[kofi.Inputs, kofi.Results]{
			meta: Info{
				Slug:        "kofi-earnings",
				Name:        "Ko-fi Earnings Calculator",
				Category:    CategoryCreator,
				Description: "Donations, memberships and shop sales after Ko-fi and processor fees.",
				QuickMode:   true,
			},
			newInputs: kofi.DefaultInputs,
			quick:     kofi.QuickDefaults().Apply,
			quickView: kofi.QuickDefaults(),
			calc:      pure(kofi.Calculate),
		},
		adapter[patreon.Inputs, patreon.Results]{
			meta: Info{
				Slug:        "patreon-earnings",
				Name:        "Patreon Earnings Calculator",
				Category:    CategoryCreator,
				Description: "Creator earnings by plan with patron churn projections.",
			},
			newInputs: patreon.DefaultInputs,
			calc:      pure(patreon.Calculate),
		},
		adapter[podcast.Inputs, podcast.Results]{
			meta: Info{
				Slug:        "podcast-sponsorship",
				Name:        "Podcast Sponsorship Calculator",
				Category:    CategoryCreator,
				Description: "CPM based sponsorship revenue per episode, month and year.",
				QuickMode:   true,
			},
			newInputs: podcast.DefaultInputs,
			quick:     podcast.QuickDefaults().Apply,
			quickView: podcast.QuickDefaults(),
			calc:      pure(podcast.Calculate),
		},
		adapter[projectrate.Inputs, projectrate.Results]{
			meta: Info{
				Slug:        "project-rate",
				Name:        "Project Rate Calculator",
				Category:    CategoryFreelancer,
				Description: "Project quotes from hours, complexity, rush and expenses with pricing tiers.",
				QuickMode:   true,
			},
			newInputs: projectrate.DefaultInputs,
			quick:     projectrate.QuickDefaults().Apply,
			quickView: projectrate.QuickDefaults(),
			calc:      pure(projectrate.Calculate),
		},
		adapter[quarterlytax.Inputs, quarterlytax.Results]{
			meta: Info{
				Slug:        "quarterly-tax",
				Name:        "Quarterly Estimated Tax Calculator",
				Category:    CategoryTax,
				Description: "Self-employment, federal and state estimated payments per quarter.",
				QuickMode:   true,
			},
			newInputs: quarterlytax.DefaultInputs,
			quick:     quarterlytax.QuickDefaults().Apply,
			quickView: quarterlytax.QuickDefaults(),
			calc:      quarterlytax.Calculate,
		},
		adapter[sidehustle.Inputs, sidehustle.Results]{
			meta: Info{
				Slug:        "side-hustle-goal",
				Name:        "Side Hustle Goal Calculator",
				Category:    CategoryFreelancer,
				Description: "Months to a savings goal with milestones and a monthly projection.",
			},
			newInputs: sidehustle.DefaultInputs,
			calc:      sidehustle.Calculate,
		},
		adapter[substack.Inputs, substack.Results]{
			meta: Info{
				Slug:        "substack-revenue",
				Name:        "Substack Revenue Calculator",
				Category:    CategoryCreator,
				Description: "Paid newsletter revenue after platform and Stripe fees with growth projections.",
			},
			newInputs: substack.DefaultInputs,
			calc:      pure(substack.Calculate),
		},
		adapter[twitch.Inputs, twitch.Results]{
			meta: Info{
				Slug:        "twitch-revenue",
				Name:        "Twitch Revenue Calculator",
				Category:    CategoryCreator,
				Description: "Subscriptions, bits and ads revenue after the Twitch cut.",
				QuickMode:   true,
			},
			newInputs: twitch.DefaultInputs,
			quick:     twitch.QuickDefaults().Apply,
			quickView: twitch.QuickDefaults(),
			effective: twitch.Effective,
			calc:      pure(twitch.Calculate),
		},
		adapter[uberlyft.Inputs, uberlyft.Results]{
			meta: Info{
				Slug:        "uber-lyft-earnings",
				Name:        "Uber & Lyft Driver Earnings Calculator",
				Category:    CategoryGig,
				Description: "Rideshare earnings after gas, maintenance, insurance and depreciation.",
			},
			newInputs: uberlyft.DefaultInputs,
			calc:      pure(uberlyft.Calculate),
		},
		adapter[w2vs1099.Inputs, w2vs1099.Results]{
			meta: Info{
				Slug:        "w2-vs-1099",
				Name:        "W2 vs 1099 Calculator",
				Category:    CategoryTax,
				Description: "Employee total compensation against contractor net income.",
				QuickMode:   true,
			},
			newInputs: w2vs1099.DefaultInputs,
			quick:     w2vs1099.QuickDefaults().Apply,
			quickView: w2vs1099.QuickDefaults(),
			calc:      pure(w2vs1099.Calculate),
		},
		adapter[youtube.Inputs, youtube.Results]{
			meta: Info{
				Slug:        "youtube-adsense",
				Name:        "YouTube AdSense Calculator",
				Category:    CategoryCreator,
				Description: "Ad revenue ranges by niche and audience location.",
			},
			newInputs: youtube.DefaultInputs,
			calc:      pure(youtube.Calculate),
		},
	}
}

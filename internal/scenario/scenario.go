// Package scenario defines the results of a scenario batch and includes
// functions for computing them.
package scenario

import (
	"encoding/json"
	"fmt"

	"github.com/BenTyson/calcverse/internal/config"
	"github.com/BenTyson/calcverse/internal/registry"
	"github.com/BenTyson/calcverse/pkg/calculator"
	"go.uber.org/zap"
)

// Evaluator runs one calculator over a partial input record.
type Evaluator interface {
	Evaluate(slug string, raw json.RawMessage, mode calculator.Mode) (registry.Evaluation, error)
}

// Result holds the evaluation of one named scenario. Index is the position
// of the scenario in the configuration it came from.
type Result struct {
	Name       string
	Index      int
	Evaluation registry.Evaluation
}

// Run evaluates every active scenario in conf, in file order.
func Run(logger *zap.Logger, eval Evaluator, conf config.Configuration) ([]Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var results []Result
	for i, sc := range conf.Scenarios {
		if !sc.Active {
			logger.Debug(fmt.Sprintf("skipping scenario %s because it is inactive", sc.Name),
				zap.String("op", "scenario.Run"),
			)
			continue
		}

		raw, err := json.Marshal(sc.Inputs)
		if err != nil {
			return results, fmt.Errorf("scenario %s: encoding inputs: %w", sc.Name, err)
		}

		ev, err := eval.Evaluate(sc.Calculator, raw, sc.EffectiveMode())
		if err != nil {
			return results, fmt.Errorf("scenario %s: %w", sc.Name, err)
		}

		logger.Debug("scenario evaluated",
			zap.String("op", "scenario.Run"),
			zap.String("scenario", sc.Name),
			zap.String("calculator", ev.Slug),
		)
		results = append(results, Result{Name: sc.Name, Index: i, Evaluation: ev})
	}

	return results, nil
}

// Resolve returns a copy of conf where each evaluated scenario carries the
// complete input record it ran with, so the batch can be re-run as is.
func Resolve(conf config.Configuration, results []Result) (config.Configuration, error) {
	byIndex := make(map[int]registry.Evaluation, len(results))
	for _, r := range results {
		if r.Index < 0 || r.Index >= len(conf.Scenarios) || conf.Scenarios[r.Index].Name != r.Name {
			return config.Configuration{}, fmt.Errorf("result %s does not match scenario #%d", r.Name, r.Index+1)
		}
		byIndex[r.Index] = r.Evaluation
	}

	out := conf
	out.Scenarios = make([]config.Scenario, len(conf.Scenarios))
	for i, sc := range conf.Scenarios {
		ev, ok := byIndex[i]
		if !sc.Active || !ok {
			out.Scenarios[i] = sc
			continue
		}

		buf, err := json.Marshal(ev.Inputs)
		if err != nil {
			return config.Configuration{}, fmt.Errorf("scenario %s: encoding inputs: %w", sc.Name, err)
		}
		var inputs map[string]any
		if err := json.Unmarshal(buf, &inputs); err != nil {
			return config.Configuration{}, fmt.Errorf("scenario %s: decoding inputs: %w", sc.Name, err)
		}

		sc.Calculator = ev.Slug
		sc.Mode = ev.Mode.String()
		sc.Inputs = inputs
		out.Scenarios[i] = sc
	}
	return out, nil
}

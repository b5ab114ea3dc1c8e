// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/BenTyson/calcverse/internal/scenario"
	"github.com/BenTyson/calcverse/pkg/calculator"
)

// FindScenario finds a scenario by name in the results slice.
// Returns a pointer to the result if found, nil otherwise.
func FindScenario(results []scenario.Result, name string) *scenario.Result {
	for i := range results {
		if results[i].Name == name {
			return &results[i]
		}
	}
	return nil
}

// FindHighlight returns the metric with the given key.
func FindHighlight(metrics []calculator.Metric, key string) (calculator.Metric, bool) {
	for _, m := range metrics {
		if m.Key == key {
			return m, true
		}
	}
	return calculator.Metric{}, false
}

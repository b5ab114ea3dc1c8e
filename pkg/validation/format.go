// Package validation provides common validation utilities for command line
// flags.
package validation

import (
	"fmt"
	"strings"

	"github.com/BenTyson/calcverse/pkg/calculator"
	"github.com/BenTyson/calcverse/pkg/constants"
)

// ScenarioFormats are the output formats for scenario batches.
var ScenarioFormats = []string{constants.OutputFormatPretty, constants.OutputFormatCSV}

// EvaluationFormats are the output formats for a single calculator run.
var EvaluationFormats = []string{constants.OutputFormatPretty, constants.OutputFormatCSV, constants.OutputFormatJSON}

// ValidateOutputFormat checks if the output format is one of the allowed
// formats. With no allowed formats given, ScenarioFormats apply.
func ValidateOutputFormat(format string, allowed ...string) error {
	if len(allowed) == 0 {
		allowed = ScenarioFormats
	}
	for _, candidate := range allowed {
		if format == candidate {
			return nil
		}
	}
	return fmt.Errorf("expected output format of %s, got %q", strings.Join(allowed, " or "), format)
}

// ValidateMode checks a mode flag. Empty selects the default mode.
func ValidateMode(mode string) (calculator.Mode, error) {
	if mode == "" {
		return calculator.DefaultMode, nil
	}
	m := calculator.Mode(mode)
	if !m.Valid() {
		return "", fmt.Errorf("expected mode of %s or %s, got %q", calculator.ModeQuick, calculator.ModeAdvanced, mode)
	}
	return m, nil
}

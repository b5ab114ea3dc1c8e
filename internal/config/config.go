// Package config defines the scenario batch file and includes functions for
// loading, validating and exporting it.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/BenTyson/calcverse/pkg/calculator"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// ErrNoScenarios is returned when a batch file defines no scenarios at all.
var ErrNoScenarios = errors.New("no scenarios defined")

// Configuration holds a batch of calculator scenarios.
type Configuration struct {
	Scenarios []Scenario    `yaml:"scenarios"`
	Logging   LoggingConfig `yaml:"logging,omitempty"`
	Output    OutputConfig  `yaml:"output,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// Scenario is one named calculator run. Inputs is a partial input record
// merged over the calculator's defaults.
type Scenario struct {
	Name       string         `yaml:"name"`
	Calculator string         `yaml:"calculator"`
	Mode       string         `yaml:"mode,omitempty"`
	Active     bool           `yaml:"active"`
	Inputs     map[string]any `yaml:"inputs,omitempty"`
}

// EffectiveMode returns the scenario mode, falling back to the default mode
// when unset or unknown.
func (s Scenario) EffectiveMode() calculator.Mode {
	return calculator.ParseMode(s.Mode)
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.AutomaticEnv()

	v.SetConfigType("yml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %w", err)
	}

	return decode(v)
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := viper.New()
	v.SetConfigType("yml")

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %w", err)
	}

	return decode(v)
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}

	if len(configuration.Scenarios) == 0 {
		return nil, ErrNoScenarios
	}

	for i := range configuration.Scenarios {
		for key, value := range configuration.Scenarios[i].Inputs {
			configuration.Scenarios[i].Inputs[key] = normalize(value)
		}
	}

	return &configuration, nil
}

// normalize converts nested YAML mappings into string keyed maps so inputs
// can be encoded as JSON.
func normalize(value any) any {
	switch v := value.(type) {
	case map[any]any:
		out := make(map[string]any, len(v))
		for key, inner := range v {
			out[fmt.Sprint(key)] = normalize(inner)
		}
		return out
	case map[string]any:
		for key, inner := range v {
			v[key] = normalize(inner)
		}
		return v
	case []any:
		for i, inner := range v {
			v[i] = normalize(inner)
		}
		return v
	default:
		return value
	}
}

// ActiveScenarios returns the scenarios marked active, in file order.
func (c *Configuration) ActiveScenarios() []Scenario {
	var active []Scenario
	for _, scenario := range c.Scenarios {
		if scenario.Active {
			active = append(active, scenario)
		}
	}
	return active
}

// ValidateConfiguration performs general validation of the configuration
// against the known calculator slugs and returns warnings.
func (c *Configuration) ValidateConfiguration(calculators []string) []string {
	known := make(map[string]struct{}, len(calculators))
	for _, slug := range calculators {
		known[slug] = struct{}{}
	}

	var warnings []string
	seen := make(map[string]int)
	active := 0
	for i, scenario := range c.Scenarios {
		label := scenario.Name
		if strings.TrimSpace(label) == "" {
			label = fmt.Sprintf("#%d", i+1)
			warnings = append(warnings, fmt.Sprintf("scenario %s has no name", label))
		}

		if _, ok := known[strings.ToLower(strings.TrimSpace(scenario.Calculator))]; !ok {
			warnings = append(warnings,
				fmt.Sprintf("scenario %s uses unknown calculator %q", label, scenario.Calculator))
		}

		if scenario.Mode != "" && !calculator.Mode(strings.ToLower(strings.TrimSpace(scenario.Mode))).Valid() {
			warnings = append(warnings,
				fmt.Sprintf("scenario %s has unknown mode %q, using %s", label, scenario.Mode, calculator.DefaultMode))
		}

		if scenario.Name != "" {
			seen[scenario.Name]++
		}
		if scenario.Active {
			active++
		}
	}

	duplicates := make([]string, 0)
	for name, count := range seen {
		if count > 1 {
			duplicates = append(duplicates, name)
		}
	}
	sort.Strings(duplicates)
	for _, name := range duplicates {
		warnings = append(warnings, fmt.Sprintf("scenario name %q is used %d times", name, seen[name]))
	}

	if active == 0 {
		warnings = append(warnings, "no active scenarios")
	}

	return warnings
}

// Export renders the configuration as YAML.
func (c *Configuration) Export() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("encoding configuration: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding configuration: %w", err)
	}
	return buf.Bytes(), nil
}

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/BenTyson/calcverse/internal/config"
	"github.com/BenTyson/calcverse/internal/registry"
	"github.com/BenTyson/calcverse/internal/report"
	"github.com/BenTyson/calcverse/internal/scenario"
	"github.com/BenTyson/calcverse/internal/sharestate"
	"github.com/BenTyson/calcverse/pkg/constants"
	"github.com/BenTyson/calcverse/pkg/output"
	"github.com/BenTyson/calcverse/pkg/validation"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// inputFlags are shared by the commands that evaluate a single calculator.
type inputFlags struct {
	mode  string
	state string
	set   []string
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.mode, "mode", "", "calculator mode (quick, advanced)")
	cmd.Flags().StringVar(&f.state, "state", "", "encoded share state to start from")
	cmd.Flags().StringArrayVar(&f.set, "set", nil, "input override as key=value (repeatable)")
}

// evaluate runs slug over the share state with the --set pairs applied on top.
func (f *inputFlags) evaluate(reg *registry.Registry, slug string) (registry.Evaluation, error) {
	mode, err := validation.ValidateMode(f.mode)
	if err != nil {
		return registry.Evaluation{}, err
	}

	var base json.RawMessage
	if f.state != "" {
		base, err = sharestate.Raw(f.state)
		if err != nil {
			return registry.Evaluation{}, err
		}
	}

	overrides, err := reg.InputsFromPairs(slug, f.set)
	if err != nil {
		return registry.Evaluation{}, err
	}

	raw, err := mergeInputs(base, overrides)
	if err != nil {
		return registry.Evaluation{}, err
	}
	return reg.Evaluate(slug, raw, mode)
}

// mergeInputs overlays the top level keys of overlay onto base.
func mergeInputs(base, overlay json.RawMessage) (json.RawMessage, error) {
	merged := make(map[string]json.RawMessage)
	for _, raw := range []json.RawMessage{base, overlay} {
		if len(raw) == 0 {
			continue
		}
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(raw, &fields); err != nil {
			return nil, fmt.Errorf("decoding inputs: %w", err)
		}
		for k, v := range fields {
			merged[k] = v
		}
	}
	return json.Marshal(merged)
}

func (a *app) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the available calculators",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list := registry.New(nil).List()

			width := len("Calculator")
			for _, info := range list {
				width = max(width, len(info.Slug))
			}

			fmt.Fprintf(a.out, "%-*s | Quick | Name\n", width, "Calculator")
			fmt.Fprintf(a.out, "%s | _____ | ____\n", strings.Repeat("_", width))
			for _, info := range list {
				quick := "no"
				if info.QuickMode {
					quick = "yes"
				}
				fmt.Fprintf(a.out, "%-*s | %-5s | %s\n", width, info.Slug, quick, info.Name)
			}
			return nil
		},
	}
}

func (a *app) newCalcCmd() *cobra.Command {
	var (
		flags        inputFlags
		outputFormat string
		pdfPath      string
		baseURL      string
	)

	cmd := &cobra.Command{
		Use:   "calc <calculator>",
		Short: "Run one calculator and print its results",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validation.ValidateOutputFormat(outputFormat, validation.EvaluationFormats...); err != nil {
				return err
			}

			logger, err := initializeLogger(config.LoggingConfig{Format: "console", Level: "warn"}, a.logLevel)
			if err != nil {
				return err
			}
			defer func() {
				_ = logger.Sync()
			}()

			reg := registry.New(logger, registry.WithClock(a.now))
			ev, err := flags.evaluate(reg, args[0])
			if err != nil {
				return err
			}

			if err := writeEvaluation(a, ev, outputFormat); err != nil {
				return err
			}

			if pdfPath == "" {
				return nil
			}
			shareURL, err := sharestate.ShareURL(strings.TrimRight(baseURL, "/")+"/api/calculators/"+ev.Slug, ev.Inputs, ev.Mode)
			if err != nil {
				return err
			}
			if err := writePDF(pdfPath, ev, report.Options{ShareURL: shareURL, Generated: a.now()}); err != nil {
				return err
			}
			logger.Info("wrote PDF report",
				zap.String("op", "main.calc"),
				zap.String("path", pdfPath),
			)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&outputFormat, "output-format", constants.OutputFormatPretty, "output format (pretty, csv, json)")
	cmd.Flags().StringVar(&pdfPath, "pdf", "", "also write a PDF report to this path")
	cmd.Flags().StringVar(&baseURL, "base-url", constants.DefaultBaseURL, "base URL for the share link in the PDF")
	return cmd
}

func (a *app) newShareCmd() *cobra.Command {
	var (
		flags   inputFlags
		baseURL string
	)

	cmd := &cobra.Command{
		Use:   "share <calculator>",
		Short: "Print a share link for a calculator input record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := registry.New(nil, registry.WithClock(a.now))
			ev, err := flags.evaluate(reg, args[0])
			if err != nil {
				return err
			}

			u, err := sharestate.ShareURL(strings.TrimRight(baseURL, "/")+"/api/calculators/"+ev.Slug, ev.Inputs, ev.Mode)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, u)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&baseURL, "base-url", constants.DefaultBaseURL, "base URL of the calcverse server")
	return cmd
}

func writeEvaluation(a *app, ev registry.Evaluation, format string) error {
	results := []scenario.Result{{Name: ev.Name, Evaluation: ev}}
	switch format {
	case constants.OutputFormatCSV:
		return output.CsvFormat(a.out, results)
	case constants.OutputFormatJSON:
		enc := json.NewEncoder(a.out)
		enc.SetIndent("", "  ")
		return enc.Encode(ev)
	default:
		output.PrettyFormat(a.out, results)
		return nil
	}
}

func writePDF(path string, ev registry.Evaluation, opts report.Options) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, closeErr)
		}
	}()
	return report.GeneratePDF(ev, opts, file)
}

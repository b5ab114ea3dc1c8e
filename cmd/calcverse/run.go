package main

import (
	"fmt"
	"os"

	"github.com/BenTyson/calcverse/internal/config"
	"github.com/BenTyson/calcverse/internal/registry"
	"github.com/BenTyson/calcverse/internal/scenario"
	"github.com/BenTyson/calcverse/pkg/constants"
	"github.com/BenTyson/calcverse/pkg/output"
	"github.com/BenTyson/calcverse/pkg/validation"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (a *app) newRunCmd() *cobra.Command {
	var (
		configLocation   string
		outputFormatFlag string
		exportPath       string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Evaluate every active scenario in a scenario file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := config.LoadConfiguration(configLocation)
			if err != nil {
				return fmt.Errorf("failed to load configuration at %s: %w", configLocation, err)
			}

			logger, err := initializeLogger(conf.Logging, a.logLevel)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer func() {
				_ = logger.Sync()
			}()

			// CLI override takes precedence over config
			outputFormat := conf.Output.Format
			if outputFormatFlag != "" {
				outputFormat = outputFormatFlag
			}
			if outputFormat == "" {
				outputFormat = constants.OutputFormatPretty
			}
			if err := validation.ValidateOutputFormat(outputFormat); err != nil {
				return err
			}

			reg := registry.New(logger, registry.WithClock(a.now))

			slugs := make([]string, 0)
			for _, info := range reg.List() {
				slugs = append(slugs, info.Slug)
			}
			for _, warning := range conf.ValidateConfiguration(slugs) {
				logger.Warn("Configuration warning: "+warning,
					zap.String("op", "main.run"),
				)
			}

			results, err := scenario.Run(logger, reg, *conf)
			if err != nil {
				return fmt.Errorf("failed to compute scenarios: %w", err)
			}

			switch outputFormat {
			case constants.OutputFormatCSV:
				if err := output.CsvFormat(a.out, results); err != nil {
					return err
				}
			default:
				output.PrettyFormat(a.out, results)
			}

			if exportPath == "" {
				return nil
			}
			resolved, err := scenario.Resolve(*conf, results)
			if err != nil {
				return err
			}
			data, err := resolved.Export()
			if err != nil {
				return err
			}
			if err := os.WriteFile(exportPath, data, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", exportPath, err)
			}
			logger.Info("exported resolved scenarios",
				zap.String("op", "main.run"),
				zap.String("path", exportPath),
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&configLocation, "config", constants.DefaultConfigFile, "path to scenario file")
	cmd.Flags().StringVar(&outputFormatFlag, "output-format", "", "type of output override: pretty, csv")
	cmd.Flags().StringVar(&exportPath, "export", "", "write the scenarios with fully resolved inputs to this path")
	return cmd
}

package main

import (
	"fmt"
	"os"

	"github.com/iwvelando/refinance-calculator/internal/compare"
	"github.com/iwvelando/refinance-calculator/internal/config"
	"github.com/iwvelando/refinance-calculator/pkg/constants"
	"github.com/iwvelando/refinance-calculator/pkg/output"
	"github.com/iwvelando/refinance-calculator/pkg/validation"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newCalcCmd() *cobra.Command {
	var (
		configLocation string
		outputFormat   string
		pdfFile        string
		logLevel       string
	)

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Evaluate the configured refinance scenarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := config.LoadConfiguration(configLocation)
			if err != nil {
				return fmt.Errorf("failed to load configuration at %s: %w", configLocation, err)
			}

			logger, err := initializeLogger(conf.Logging, logLevel)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer func() {
				_ = logger.Sync()
			}()

			// CLI override takes precedence over config.
			format := conf.Output.Format
			if outputFormat != "" {
				format = outputFormat
			}
			if format == "" {
				format = constants.OutputFormatPretty
			}
			if err := validation.ValidateOutputFormat(format); err != nil {
				return err
			}

			destination := conf.Output.PDFFile
			if pdfFile != "" {
				destination = pdfFile
			}
			if destination == "" {
				destination = constants.DefaultPDFFile
			}

			for _, warning := range conf.ValidateConfiguration() {
				logger.Warn("Configuration warning: "+warning,
					zap.String("op", "main"),
				)
			}

			results, err := compare.Run(logger, conf)
			if err != nil {
				return fmt.Errorf("failed to evaluate scenarios: %w", err)
			}

			for _, warning := range results.Warnings() {
				logger.Warn("Input adjusted: "+warning,
					zap.String("op", "main"),
				)
			}

			switch format {
			case constants.OutputFormatPretty:
				output.PrettyFormat(results)
			case constants.OutputFormatCSV:
				output.CsvFormat(results)
			case constants.OutputFormatPDF:
				pdfBytes, err := output.PDFReport(results)
				if err != nil {
					return fmt.Errorf("failed to render PDF report: %w", err)
				}
				if err := os.WriteFile(destination, pdfBytes, 0644); err != nil {
					return fmt.Errorf("failed to write PDF report: %w", err)
				}
				logger.Info("wrote PDF report",
					zap.String("op", "main"),
					zap.String("file", destination),
				)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&configLocation, "config", "c", constants.DefaultConfigFile, "path to configuration file")
	cmd.Flags().StringVarP(&outputFormat, "output-format", "o", "", "type of output override: pretty, csv, pdf")
	cmd.Flags().StringVar(&pdfFile, "pdf-file", "", "destination path for pdf output")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "log level override (debug, info, warn, error)")

	return cmd
}

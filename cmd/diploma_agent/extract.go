package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/diploma-scanner/internal/config"
	"github.com/jonathan/diploma-scanner/internal/extraction"
	"github.com/jonathan/diploma-scanner/internal/fetch"
	"github.com/jonathan/diploma-scanner/internal/ingestion"
	"github.com/jonathan/diploma-scanner/internal/metrics"
	"github.com/jonathan/diploma-scanner/internal/observability"
	"github.com/jonathan/diploma-scanner/internal/schemas"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract a structured record from a diploma's text",
	Long: "Extract reads the raw text of a diploma (or an HTML rendition of it) and prints a record " +
		"with the diploma number, holder, birth details, field of study, grade, dates, certificate type and institution. " +
		"Fields missing from the text take their defaults.",
	Args: cobra.NoArgs,
	RunE: runExtract,
}

var (
	extractInput    string
	extractOutput   string
	extractHTML     bool
	extractLegacy   bool
	extractFormat   string
	extractValidate bool
)

func init() {
	extractCmd.Flags().StringVarP(&extractInput, "in", "i", "-", "Input file, http(s) URL, or - for stdin")
	extractCmd.Flags().StringVarP(&extractOutput, "out", "o", "", "Output file (default stdout)")
	extractCmd.Flags().BoolVar(&extractHTML, "html", false, "Treat the input as HTML")
	extractCmd.Flags().BoolVar(&extractLegacy, "legacy", false, "Fall back to legacy label patterns")
	extractCmd.Flags().StringVar(&extractFormat, "format", "", "Output format: json or yaml")
	extractCmd.Flags().BoolVar(&extractValidate, "validate", false, "Validate the record against the record schema")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	format := cfg.Format
	if cmd.Flags().Changed("format") {
		format = extractFormat
	}
	legacy := extractLegacy || cfg.LegacyFallbacks

	text, meta, err := readDocument(cmd.Context(), cmd.InOrStdin(), cfg)
	if err != nil {
		return err
	}
	if extractHTML && meta.Format != ingestion.FormatHTML {
		if text, err = ingestion.TextFromHTML(text); err != nil {
			return err
		}
		meta.Format = ingestion.FormatHTML
	}
	logger.Debug("document loaded",
		zap.String("id", meta.ID),
		zap.String("source", meta.Source),
		zap.String("format", meta.Format),
		zap.Int("bytes", meta.Bytes),
		zap.String("sha256", meta.Hash))

	schema, err := extraction.SchemaFor(legacy, cfg.Defaults, cfg.Patterns)
	if err != nil {
		return fmt.Errorf("failed to build extraction schema: %w", err)
	}
	record, report := extraction.New(schema).ExtractWithReport(text)

	mode := metrics.ModeStandard
	if legacy {
		mode = metrics.ModeLegacy
	}
	metrics.ObserveReport(mode, report.Outcomes)
	logger.Info("document extracted",
		zap.String("id", meta.ID),
		zap.String("mode", mode),
		zap.Int("matched", report.Matched()),
		zap.Strings("fallbacks", report.Fallbacks()))

	if extractValidate {
		if err := schemas.ValidateRecord(record); err != nil {
			var validationErr *schemas.ValidationError
			if errors.As(err, &validationErr) {
				return fmt.Errorf("extracted record does not validate against schema: %w", err)
			}
			return fmt.Errorf("could not validate record: %w", err)
		}
	}

	data, err := marshal(record, format)
	if err != nil {
		return err
	}
	if err := writeOutput(cmd.OutOrStdout(), extractOutput, data); err != nil {
		return err
	}

	if verbose {
		printer := observability.NewPrinter(cmd.ErrOrStderr())
		printer.PrintDiploma(record)
		printer.PrintReport(report.Outcomes)
	}
	return nil
}

// readDocument resolves the --in flag, falling back to the config's input or
// input_url when --in is left at stdin.
func readDocument(ctx context.Context, stdin io.Reader, cfg *config.Config) (string, *ingestion.Metadata, error) {
	source := extractInput
	if source == "-" || source == "" {
		switch {
		case cfg.InputURL != "":
			source = cfg.InputURL
		case cfg.Input != "":
			source = cfg.Input
		}
	}

	switch {
	case source == "-" || source == "":
		return ingestion.IngestFromReader(stdin, "stdin")
	case isURL(source):
		opts := fetch.DefaultOptions()
		opts.Timeout = cfg.FetchTimeout
		return ingestion.IngestFromURL(ctx, source, opts)
	default:
		return ingestion.IngestFromFile(source)
	}
}

func isURL(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"artool/internal/analysis"
	"artool/internal/config"
	"artool/internal/dataset"
	"artool/internal/logger"
	"artool/internal/report"
	"artool/internal/sheets"
	"artool/pkg/models"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run AR aging and collections analysis on an invoice export",
	Long: `Classify each invoice as paid, collectible AR, or excluded, compute
days past due, age the collectible subset into fixed bands, and render
the report.

Exclusion rules: unpaid invoices whose document number is in the
withholding set are excluded as withholding tax; remaining unpaid
invoices at or below the wire-fee threshold are excluded as wire fees.
Paid invoices are never excluded.

Input may be a local CSV file or a Google Sheets URL. Output is either
a CSV file set (default) or a Google Sheets URL. Sheet access needs:
  GOOGLE_APPLICATION_CREDENTIALS - Path to service account JSON file, OR
  GOOGLE_CREDENTIALS - Inline JSON credentials string`,
	Example: `  # CSV in, CSV report out
  artool analyze --input invoices.csv --output ar_report

  # Analyze as of a fixed date with a custom threshold
  artool analyze --input invoices.csv --as-of 2025-03-01 --wire-fee-threshold 250

  # Read from one spreadsheet, write the report into another
  artool analyze --input https://docs.google.com/spreadsheets/d/SRC/edit \
    --sheet "AR Export" \
    --output https://docs.google.com/spreadsheets/d/DST/edit`,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().String("input", "", "Invoice export: CSV file path or Google Sheets URL (required)")
	analyzeCmd.Flags().String("output", "", "Report target: CSV base path or Google Sheets URL (default: ar_analysis_<timestamp>)")
	analyzeCmd.Flags().String("as-of", "", "Evaluation date for days past due (format: YYYY-MM-DD, default: today)")
	analyzeCmd.Flags().String("wire-fee-threshold", "", "Unpaid amounts at or below this are excluded as wire fees")
	analyzeCmd.Flags().StringSlice("withholding-doc", nil, "Document number excluded as withholding tax (repeatable)")
	analyzeCmd.Flags().String("sheet", "Sheet1", "Worksheet name when the input is a Google Sheets URL")

	_ = analyzeCmd.MarkFlagRequired("input")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("analyze")

	input, _ := cmd.Flags().GetString("input")
	output, _ := cmd.Flags().GetString("output")
	asOfStr, _ := cmd.Flags().GetString("as-of")
	thresholdStr, _ := cmd.Flags().GetString("wire-fee-threshold")
	withholdingDocs, _ := cmd.Flags().GetStringSlice("withholding-doc")
	worksheet, _ := cmd.Flags().GetString("sheet")

	asOf := time.Now()
	if asOfStr != "" {
		parsed, err := time.Parse("2006-01-02", asOfStr)
		if err != nil {
			return fmt.Errorf("invalid as-of date format. Use YYYY-MM-DD: %w", err)
		}
		asOf = parsed
	}

	if output == "" {
		output = fmt.Sprintf("ar_analysis_%s", time.Now().Format("20060102_150405"))
	}

	cfg, err := analyzeConfig(asOf, thresholdStr, withholdingDocs)
	if err != nil {
		return err
	}

	log.Info().
		Str("input", input).
		Str("output", output).
		Str("as_of", asOf.Format("2006-01-02")).
		Str("wire_fee_threshold", cfg.WireFeeThreshold.String()).
		Strs("withholding_docs", cfg.WithholdingDocs).
		Msg("Starting AR analysis")

	ctx := context.Background()

	records, err := loadRecords(ctx, input, worksheet)
	if err != nil {
		return fmt.Errorf("failed to load invoice records: %w", err)
	}
	log.Info().Int("records", len(records)).Msg("Invoice records loaded")

	classifier, err := analysis.NewClassifier(cfg)
	if err != nil {
		return fmt.Errorf("invalid analysis configuration: %w", err)
	}

	classified := classifier.Classify(records)
	rep := report.Build(classified, asOf)

	if err := writeReport(ctx, output, rep); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	log.Info().
		Str("collectible_ar", report.FormatAmount(rep.Metrics.CollectibleAR)).
		Str("total_payments", report.FormatAmount(rep.Metrics.TotalPayments)).
		Str("excluded_total", report.FormatAmount(rep.Metrics.ExcludedTotal)).
		Float64("collection_rate", rep.Metrics.CollectionRate).
		Int("oldest_days", rep.Metrics.OldestDays).
		Msg("AR analysis completed successfully")

	return nil
}

// analyzeConfig builds the classifier configuration from the environment
// with CLI flag overrides.
func analyzeConfig(asOf time.Time, thresholdStr string, withholdingDocs []string) (analysis.Config, error) {
	appCfg, err := config.Load()
	if err != nil {
		return analysis.Config{}, err
	}

	cfg := analysis.Config{
		AsOf:             asOf,
		WireFeeThreshold: appCfg.WireFeeThreshold,
		WithholdingDocs:  appCfg.WithholdingDocs,
		WireFeeNote:      appCfg.WireFeeNote,
		WithholdingNote:  appCfg.WithholdingNote,
	}

	if thresholdStr != "" {
		threshold, err := decimal.NewFromString(thresholdStr)
		if err != nil {
			return analysis.Config{}, fmt.Errorf("invalid wire-fee threshold %q: %w", thresholdStr, err)
		}
		cfg.WireFeeThreshold = threshold
	}
	if len(withholdingDocs) > 0 {
		cfg.WithholdingDocs = withholdingDocs
	}

	return cfg, nil
}

// loadRecords reads and coerces the invoice export from either source.
func loadRecords(ctx context.Context, input, worksheet string) ([]models.InvoiceRecord, error) {
	var rows []dataset.Row
	var err error

	if sheets.IsSheetURL(input) {
		svc, svcErr := sheets.NewService(ctx, input)
		if svcErr != nil {
			return nil, fmt.Errorf("failed to initialize Google Sheets service: %w", svcErr)
		}
		rows, err = dataset.ReadSheet(ctx, svc, worksheet)
	} else {
		rows, err = dataset.ReadCSVFile(input)
	}
	if err != nil {
		return nil, err
	}

	return dataset.ToRecords(rows)
}

// writeReport renders the report to CSV files or a Google spreadsheet,
// depending on the output location.
func writeReport(ctx context.Context, output string, rep report.Report) error {
	if sheets.IsSheetURL(output) {
		svc, err := sheets.NewService(ctx, output)
		if err != nil {
			return fmt.Errorf("failed to initialize Google Sheets service: %w", err)
		}
		return report.WriteSheets(ctx, svc, rep)
	}

	files, err := report.WriteCSVFiles(output, rep)
	if err != nil {
		return err
	}

	log := logger.WithComponent("analyze")
	log.Info().
		Strs("files", files).
		Msg("Report files written")
	return nil
}

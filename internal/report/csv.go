package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"time"

	"artool/internal/logger"
)

const dateLayout = "01/02/2006"

// WriteCSVFiles renders the report into three CSV files next to the
// given base path: <base>_summary.csv, <base>_invoices.csv and
// <base>_aging.csv. Returns the written file names.
func WriteCSVFiles(base string, r Report) ([]string, error) {
	const op = "WriteCSVFiles"

	targets := []struct {
		suffix string
		write  func(io.Writer, Report) error
	}{
		{"_summary.csv", WriteSummaryCSV},
		{"_invoices.csv", WriteInvoicesCSV},
		{"_aging.csv", WriteAgingCSV},
	}

	log := logger.WithComponent("report-csv")

	files := make([]string, 0, len(targets))
	for _, target := range targets {
		path := base + target.suffix
		file, err := os.Create(path)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to create %s: %w", op, path, err)
		}
		err = target.write(file, r)
		if closeErr := file.Close(); err == nil {
			err = closeErr
		}
		if err != nil {
			return nil, fmt.Errorf("%s: failed to write %s: %w", op, path, err)
		}
		log.Info().Str("file", path).Msg("Report sheet written")
		files = append(files, path)
	}

	return files, nil
}

// WriteSummaryCSV serialises the executive summary: key metrics, the
// aging summary, and the derived findings and recommended actions.
func WriteSummaryCSV(w io.Writer, r Report) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	records := [][]string{
		{"ACCOUNTS RECEIVABLE EXECUTIVE SUMMARY"},
		{fmt.Sprintf("As of %s", r.AsOf.Format("January 2, 2006"))},
		{},
		{"KEY METRICS"},
		{"Total Payments Received:", FormatAmount(r.Metrics.TotalPayments)},
		{"Collectible Outstanding AR:", FormatAmount(r.Metrics.CollectibleAR)},
		{"Excluded Items:", FormatAmount(r.Metrics.ExcludedTotal)},
		{"  - India Withholding Tax:", FormatAmount(r.Metrics.IndiaWithholding)},
		{"  - Wire Fees:", FormatAmount(r.Metrics.WireFees)},
		{"Collectible Outstanding Invoices:", fmt.Sprintf("%d", r.Metrics.CollectibleCount)},
		{"Collection Rate (by count):", fmt.Sprintf("%.1f%%", r.Metrics.CollectionRate)},
		{},
		{"AGING SUMMARY"},
		{"Category", "Amount", "Percentage", "Invoice Count"},
	}
	for _, record := range records {
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	for _, band := range r.Aging {
		if err := writer.Write([]string{
			string(band.Band),
			FormatAmount(band.TotalAmount),
			fmt.Sprintf("%.1f%%", r.BandPercent(band)),
			fmt.Sprintf("%d", band.InvoiceCount),
		}); err != nil {
			return err
		}
	}

	if err := writer.Write([]string{}); err != nil {
		return err
	}
	if err := writer.Write([]string{"KEY FINDINGS & RECOMMENDATIONS"}); err != nil {
		return err
	}
	for _, finding := range r.Findings {
		if err := writer.Write([]string{finding}); err != nil {
			return err
		}
	}

	if err := writer.Write([]string{}); err != nil {
		return err
	}
	if err := writer.Write([]string{"RECOMMENDED ACTIONS"}); err != nil {
		return err
	}
	for _, action := range r.Actions {
		if err := writer.Write([]string{action}); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteInvoicesCSV emits the full classified row set, sorted by days
// past due descending, with the exclusion reason in a Notes column.
func WriteInvoicesCSV(w io.Writer, r Report) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write([]string{
		"Document Number", "Name", "Invoice Date", "Due Date", "Payment Date",
		"Amount", "Days Past Due", "Category", "Notes",
	}); err != nil {
		return err
	}

	for _, rec := range r.Records {
		if err := writer.Write([]string{
			rec.DocumentNumber,
			rec.Name,
			formatDate(rec.InvoiceDate),
			formatDate(rec.DueDate),
			formatOptionalDate(rec.PaymentDate),
			rec.Amount.StringFixed(2),
			fmt.Sprintf("%d", rec.DaysPastDue),
			string(rec.Category),
			rec.ExclusionReason,
		}); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteAgingCSV emits the collections analysis: the aging table with
// percentages and a TOTAL row.
func WriteAgingCSV(w io.Writer, r Report) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write([]string{"Aging Category", "Total Amount", "Invoice Count", "Percentage"}); err != nil {
		return err
	}

	totalCount := 0
	for _, band := range r.Aging {
		totalCount += band.InvoiceCount
		if err := writer.Write([]string{
			string(band.Band),
			FormatAmount(band.TotalAmount),
			fmt.Sprintf("%d", band.InvoiceCount),
			fmt.Sprintf("%.1f%%", r.BandPercent(band)),
		}); err != nil {
			return err
		}
	}

	if err := writer.Write([]string{
		"TOTAL",
		FormatAmount(r.Metrics.CollectibleAR),
		fmt.Sprintf("%d", totalCount),
		"100.0%",
	}); err != nil {
		return err
	}

	writer.Flush()
	return writer.Error()
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

func formatOptionalDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

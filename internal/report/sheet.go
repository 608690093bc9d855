package report

import (
	"context"
	"fmt"

	"artool/internal/logger"
)

// Worksheet names written into the report spreadsheet.
const (
	SheetExecutiveSummary    = "Executive Summary"
	SheetInvoiceData         = "Invoice Data"
	SheetCollectionsAnalysis = "Collections Analysis"
)

// SheetOverwriter replaces a worksheet's contents. Satisfied by the
// Google Sheets service.
type SheetOverwriter interface {
	OverwriteSheet(ctx context.Context, sheetName string, headers []string, rows [][]interface{}) error
}

// WriteSheets renders the report into the three worksheets of a Google
// spreadsheet.
func WriteSheets(ctx context.Context, svc SheetOverwriter, r Report) error {
	const op = "WriteSheets"

	log := logger.WithComponent("report-sheets")

	if err := svc.OverwriteSheet(ctx, SheetExecutiveSummary, summaryHeaders(r), summaryRows(r)); err != nil {
		return fmt.Errorf("%s: failed to write executive summary: %w", op, err)
	}
	if err := svc.OverwriteSheet(ctx, SheetInvoiceData, invoiceHeaders(), invoiceRows(r)); err != nil {
		return fmt.Errorf("%s: failed to write invoice data: %w", op, err)
	}
	if err := svc.OverwriteSheet(ctx, SheetCollectionsAnalysis, agingHeaders(), agingRows(r)); err != nil {
		return fmt.Errorf("%s: failed to write collections analysis: %w", op, err)
	}

	log.Info().
		Strs("sheets", []string{SheetExecutiveSummary, SheetInvoiceData, SheetCollectionsAnalysis}).
		Msg("Report spreadsheet written")

	return nil
}

func summaryHeaders(r Report) []string {
	return []string{
		"ACCOUNTS RECEIVABLE EXECUTIVE SUMMARY",
		fmt.Sprintf("As of %s", r.AsOf.Format("January 2, 2006")),
	}
}

func summaryRows(r Report) [][]interface{} {
	rows := [][]interface{}{
		{"KEY METRICS"},
		{"Total Payments Received:", FormatAmount(r.Metrics.TotalPayments)},
		{"Collectible Outstanding AR:", FormatAmount(r.Metrics.CollectibleAR)},
		{"Excluded Items:", FormatAmount(r.Metrics.ExcludedTotal)},
		{"  - India Withholding Tax:", FormatAmount(r.Metrics.IndiaWithholding)},
		{"  - Wire Fees:", FormatAmount(r.Metrics.WireFees)},
		{"Collectible Outstanding Invoices:", r.Metrics.CollectibleCount},
		{"Collection Rate (by count):", fmt.Sprintf("%.1f%%", r.Metrics.CollectionRate)},
		{},
		{"AGING SUMMARY"},
		{"Category", "Amount", "Percentage", "Invoice Count"},
	}
	for _, band := range r.Aging {
		rows = append(rows, []interface{}{
			string(band.Band),
			FormatAmount(band.TotalAmount),
			fmt.Sprintf("%.1f%%", r.BandPercent(band)),
			band.InvoiceCount,
		})
	}

	rows = append(rows, []interface{}{}, []interface{}{"KEY FINDINGS & RECOMMENDATIONS"})
	for _, finding := range r.Findings {
		rows = append(rows, []interface{}{finding})
	}
	rows = append(rows, []interface{}{}, []interface{}{"RECOMMENDED ACTIONS"})
	for _, action := range r.Actions {
		rows = append(rows, []interface{}{action})
	}

	return rows
}

func invoiceHeaders() []string {
	return []string{
		"Document Number", "Name", "Invoice Date", "Due Date", "Payment Date",
		"Amount", "Days Past Due", "Category", "Notes",
	}
}

func invoiceRows(r Report) [][]interface{} {
	rows := make([][]interface{}, 0, len(r.Records))
	for _, rec := range r.Records {
		amount, _ := rec.Amount.Float64()
		rows = append(rows, []interface{}{
			rec.DocumentNumber,
			rec.Name,
			formatDate(rec.InvoiceDate),
			formatDate(rec.DueDate),
			formatOptionalDate(rec.PaymentDate),
			amount,
			rec.DaysPastDue,
			string(rec.Category),
			rec.ExclusionReason,
		})
	}
	return rows
}

func agingHeaders() []string {
	return []string{"Aging Category", "Total Amount", "Invoice Count", "Percentage"}
}

func agingRows(r Report) [][]interface{} {
	rows := make([][]interface{}, 0, len(r.Aging)+1)
	totalCount := 0
	for _, band := range r.Aging {
		totalCount += band.InvoiceCount
		amount, _ := band.TotalAmount.Float64()
		rows = append(rows, []interface{}{
			string(band.Band),
			amount,
			band.InvoiceCount,
			fmt.Sprintf("%.1f%%", r.BandPercent(band)),
		})
	}
	total, _ := r.Metrics.CollectibleAR.Float64()
	rows = append(rows, []interface{}{"TOTAL", total, totalCount, "100.0%"})
	return rows
}

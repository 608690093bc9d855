package analysis

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"artool/pkg/models"
)

// BandTotal aggregates the collectible AR rows falling into one aging band.
type BandTotal struct {
	Band         models.AgingBand
	TotalAmount  decimal.Decimal
	InvoiceCount int
}

// MetricsSummary holds the run-wide derived numbers for the report.
// Computed once from the fully classified dataset; not mutated afterward.
type MetricsSummary struct {
	TotalPayments    decimal.Decimal
	CollectibleAR    decimal.Decimal
	ExcludedTotal    decimal.Decimal
	WireFees         decimal.Decimal
	IndiaWithholding decimal.Decimal

	PaidCount        int
	CollectibleCount int
	ExcludedCount    int

	// CollectionRate is paid / (paid + collectible) by count, as a
	// percentage. Zero when there are no paid or collectible rows.
	CollectionRate float64

	// OldestDays is the largest days-past-due among collectible rows,
	// zero when there are none.
	OldestDays int
}

// AgingTable groups collectible AR rows into the five fixed bands,
// in canonical order. Every band is present in the result even when
// no row falls into it, so downstream rendering sees a stable band set.
func AgingTable(records []models.InvoiceRecord) []BandTotal {
	byBand := make(map[models.AgingBand]*BandTotal, 5)
	table := make([]BandTotal, 0, 5)
	for _, band := range models.AgingBands() {
		table = append(table, BandTotal{Band: band, TotalAmount: decimal.Zero})
	}
	for i := range table {
		byBand[table[i].Band] = &table[i]
	}

	for _, rec := range records {
		if rec.Category != models.CategoryCollectible {
			continue
		}
		entry := byBand[models.BandForDays(rec.DaysPastDue)]
		entry.TotalAmount = entry.TotalAmount.Add(rec.Amount)
		entry.InvoiceCount++
	}

	return table
}

// Summarize computes the metrics summary over a classified dataset.
// An empty dataset yields an all-zero summary.
func Summarize(records []models.InvoiceRecord) MetricsSummary {
	summary := MetricsSummary{
		TotalPayments:    decimal.Zero,
		CollectibleAR:    decimal.Zero,
		ExcludedTotal:    decimal.Zero,
		WireFees:         decimal.Zero,
		IndiaWithholding: decimal.Zero,
	}

	for _, rec := range records {
		switch rec.Category {
		case models.CategoryPaid:
			summary.TotalPayments = summary.TotalPayments.Add(rec.Amount)
			summary.PaidCount++
		case models.CategoryCollectible:
			summary.CollectibleAR = summary.CollectibleAR.Add(rec.Amount)
			summary.CollectibleCount++
			if rec.DaysPastDue > summary.OldestDays {
				summary.OldestDays = rec.DaysPastDue
			}
		case models.CategoryExcluded:
			summary.ExcludedTotal = summary.ExcludedTotal.Add(rec.Amount)
			summary.ExcludedCount++
			// Split by reason text, not by re-deriving the rules.
			if strings.Contains(rec.ExclusionReason, withholdingMarker) {
				summary.IndiaWithholding = summary.IndiaWithholding.Add(rec.Amount)
			} else if strings.Contains(rec.ExclusionReason, wireFeeMarker) {
				summary.WireFees = summary.WireFees.Add(rec.Amount)
			}
		}
	}

	if denominator := summary.PaidCount + summary.CollectibleCount; denominator > 0 {
		summary.CollectionRate = float64(summary.PaidCount) / float64(denominator) * 100
	}

	return summary
}

// SortByDaysPastDue returns the records ordered by days-past-due
// descending, input order preserved among ties. The input is not modified.
func SortByDaysPastDue(records []models.InvoiceRecord) []models.InvoiceRecord {
	sorted := make([]models.InvoiceRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].DaysPastDue > sorted[j].DaysPastDue
	})
	return sorted
}

package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"artool/internal/analysis"
	"artool/pkg/models"
)

// Report bundles the three artifacts the renderers consume: the
// classified rows sorted by days past due, the ordered aging table, and
// the metrics summary, plus the narrative lines derived from them.
type Report struct {
	AsOf    time.Time
	Records []models.InvoiceRecord // days-past-due descending
	Aging   []analysis.BandTotal
	Metrics analysis.MetricsSummary

	Findings []string
	Actions  []string
}

// Build assembles a report from a classified dataset. It performs no
// classification of its own.
func Build(records []models.InvoiceRecord, asOf time.Time) Report {
	r := Report{
		AsOf:    asOf,
		Records: analysis.SortByDaysPastDue(records),
		Aging:   analysis.AgingTable(records),
		Metrics: analysis.Summarize(records),
	}
	r.Findings = buildFindings(r)
	r.Actions = buildActions(r)
	return r
}

// BandPercent returns a band's share of the collectible total as a
// percentage, zero when there is no collectible AR.
func (r Report) BandPercent(band analysis.BandTotal) float64 {
	if r.Metrics.CollectibleAR.IsZero() {
		return 0
	}
	pct, _ := band.TotalAmount.Div(r.Metrics.CollectibleAR).Mul(decimal.NewFromInt(100)).Float64()
	return pct
}

func (r Report) over90() analysis.BandTotal {
	for _, band := range r.Aging {
		if band.Band == models.BandOver90 {
			return band
		}
	}
	return analysis.BandTotal{Band: models.BandOver90, TotalAmount: decimal.Zero}
}

func buildFindings(r Report) []string {
	over90 := r.over90()
	return []string{
		fmt.Sprintf("Collection Success: %.1f%% of collectible invoices have been collected", r.Metrics.CollectionRate),
		fmt.Sprintf("Outstanding AR: %s in truly collectible receivables (%d invoices)",
			FormatAmount(r.Metrics.CollectibleAR), r.Metrics.CollectibleCount),
		fmt.Sprintf("High Risk: %s over 90 days past due across %d invoices",
			FormatAmount(over90.TotalAmount), over90.InvoiceCount),
		fmt.Sprintf("Excluded Items: %s properly categorized as non-collectible",
			FormatAmount(r.Metrics.ExcludedTotal)),
	}
}

func buildActions(r Report) []string {
	over90 := r.over90()
	return []string{
		fmt.Sprintf("1. FOCUS: Target %d invoices over 90 days past due (%s)",
			over90.InvoiceCount, FormatAmount(over90.TotalAmount)),
		"2. PRIORITY: Large invoices in 31-60 day bucket need immediate attention",
		"3. INVESTIGATE: Why no current AR - all outstanding invoices are past due",
		fmt.Sprintf("4. ESCALATE: Oldest invoice (%d days) requires legal action", r.Metrics.OldestDays),
		fmt.Sprintf("5. PROCESS: Review collection process - %.0f%% of invoices remain uncollected",
			100-r.Metrics.CollectionRate),
	}
}

// FormatAmount renders a monetary value as $1,234.56 (sign before the
// dollar symbol for negatives).
func FormatAmount(amount decimal.Decimal) string {
	fixed := amount.StringFixed(2)

	negative := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	parts := strings.SplitN(fixed, ".", 2)
	grouped := groupThousands(parts[0])

	out := "$" + grouped + "." + parts[1]
	if negative {
		out = "-" + out
	}
	return out
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

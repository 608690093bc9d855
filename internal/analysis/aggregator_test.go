package analysis

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artool/pkg/models"
)

func collectible(doc string, amount int64, daysPastDue int) models.InvoiceRecord {
	return models.InvoiceRecord{
		DocumentNumber: doc,
		Amount:         decimal.NewFromInt(amount),
		DaysPastDue:    daysPastDue,
		Category:       models.CategoryCollectible,
		AgingCategory:  models.BandForDays(daysPastDue),
	}
}

func TestBandForDaysBoundaries(t *testing.T) {
	tests := []struct {
		days int
		want models.AgingBand
	}{
		{0, models.BandOnTime},
		{1, models.Band1To30},
		{30, models.Band1To30},
		{31, models.Band31To60},
		{60, models.Band31To60},
		{61, models.Band61To90},
		{90, models.Band61To90},
		{91, models.BandOver90},
		{365, models.BandOver90},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, models.BandForDays(tt.days), "days=%d", tt.days)
	}
}

func TestAgingTableEmitsAllBands(t *testing.T) {
	table := AgingTable(nil)
	require.Len(t, table, 5)

	wantOrder := models.AgingBands()
	for i, band := range table {
		assert.Equal(t, wantOrder[i], band.Band)
		assert.True(t, band.TotalAmount.IsZero())
		assert.Zero(t, band.InvoiceCount)
	}
}

func TestAgingTableCanonicalOrderAndTotals(t *testing.T) {
	records := []models.InvoiceRecord{
		collectible("1", 300, 95),
		collectible("2", 500, 0),
		collectible("3", 200, 45),
		collectible("4", 400, 15),
		collectible("5", 100, 45),
		// Non-collectible rows must not contribute.
		{DocumentNumber: "6", Amount: decimal.NewFromInt(9999), Category: models.CategoryPaid},
		{DocumentNumber: "7", Amount: decimal.NewFromInt(50), Category: models.CategoryExcluded, ExclusionReason: "Remaining wire fees - excluded from AR"},
	}

	table := AgingTable(records)
	require.Len(t, table, 5)

	assert.Equal(t, models.BandOnTime, table[0].Band)
	assert.True(t, table[0].TotalAmount.Equal(decimal.NewFromInt(500)))
	assert.Equal(t, 1, table[0].InvoiceCount)

	assert.Equal(t, models.Band1To30, table[1].Band)
	assert.True(t, table[1].TotalAmount.Equal(decimal.NewFromInt(400)))

	assert.Equal(t, models.Band31To60, table[2].Band)
	assert.True(t, table[2].TotalAmount.Equal(decimal.NewFromInt(300)))
	assert.Equal(t, 2, table[2].InvoiceCount)

	assert.Equal(t, models.Band61To90, table[3].Band)
	assert.Zero(t, table[3].InvoiceCount)

	assert.Equal(t, models.BandOver90, table[4].Band)
	assert.True(t, table[4].TotalAmount.Equal(decimal.NewFromInt(300)))

	// Band totals must add up to the collectible AR total.
	sum := decimal.Zero
	for _, band := range table {
		sum = sum.Add(band.TotalAmount)
	}
	summary := Summarize(records)
	assert.True(t, sum.Equal(summary.CollectibleAR), "band sum %s != collectible %s", sum, summary.CollectibleAR)
}

func TestSummarizeEmptyDataset(t *testing.T) {
	summary := Summarize(nil)

	assert.True(t, summary.TotalPayments.IsZero())
	assert.True(t, summary.CollectibleAR.IsZero())
	assert.True(t, summary.ExcludedTotal.IsZero())
	assert.Zero(t, summary.PaidCount)
	assert.Zero(t, summary.CollectibleCount)
	assert.Zero(t, summary.ExcludedCount)
	assert.Zero(t, summary.CollectionRate)
	assert.Zero(t, summary.OldestDays)
}

func TestSummarizeExcludedSplitByReason(t *testing.T) {
	records := []models.InvoiceRecord{
		{DocumentNumber: "1", Amount: decimal.NewFromInt(60), Category: models.CategoryExcluded, ExclusionReason: "Remaining wire fees - excluded from AR"},
		{DocumentNumber: "2", Amount: decimal.NewFromInt(40), Category: models.CategoryExcluded, ExclusionReason: "Remaining wire fees - excluded from AR"},
		{DocumentNumber: "3148", Amount: decimal.NewFromInt(500), Category: models.CategoryExcluded, ExclusionReason: "India Withholding Tax - excluded from AR"},
	}

	summary := Summarize(records)
	assert.True(t, summary.WireFees.Equal(decimal.NewFromInt(100)))
	assert.True(t, summary.IndiaWithholding.Equal(decimal.NewFromInt(500)))
	assert.True(t, summary.ExcludedTotal.Equal(decimal.NewFromInt(600)))
	assert.Equal(t, 3, summary.ExcludedCount)
}

func TestSummarizeCollectionRate(t *testing.T) {
	records := []models.InvoiceRecord{
		{DocumentNumber: "1", Amount: decimal.NewFromInt(100), Category: models.CategoryPaid},
		collectible("2", 200, 10),
		collectible("3", 300, 151),
	}

	summary := Summarize(records)
	assert.InDelta(t, 100.0/3.0, summary.CollectionRate, 0.001)
	assert.Equal(t, 151, summary.OldestDays)
}

func TestSummarizeCollectionRateZeroDenominator(t *testing.T) {
	// Only excluded rows: no division by zero, rate stays 0.
	records := []models.InvoiceRecord{
		{DocumentNumber: "1", Amount: decimal.NewFromInt(50), Category: models.CategoryExcluded, ExclusionReason: "Remaining wire fees - excluded from AR"},
	}
	summary := Summarize(records)
	assert.Zero(t, summary.CollectionRate)
}

func TestSortByDaysPastDueDescending(t *testing.T) {
	records := []models.InvoiceRecord{
		collectible("a", 1, 10),
		collectible("b", 1, 151),
		collectible("c", 1, 0),
		collectible("d", 1, 10),
	}

	sorted := SortByDaysPastDue(records)
	require.Len(t, sorted, 4)
	assert.Equal(t, "b", sorted[0].DocumentNumber)
	// Ties keep input order.
	assert.Equal(t, "a", sorted[1].DocumentNumber)
	assert.Equal(t, "d", sorted[2].DocumentNumber)
	assert.Equal(t, "c", sorted[3].DocumentNumber)

	// Input slice untouched.
	assert.Equal(t, "a", records[0].DocumentNumber)
}

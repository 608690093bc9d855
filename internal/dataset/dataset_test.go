package dataset

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSVCanonicalHeaders(t *testing.T) {
	input := strings.Join([]string{
		"Document Number,Name,Invoice Date,Due Date,Payment Date,Amount",
		`1001,Acme Corp,2024-12-01,2025-01-01,,"$1,250.00"`,
		"1002,Globex,2024-12-15,2025-01-15,2025-02-15,500",
	}, "\n")

	rows, err := ReadCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 2, rows[0].Line)
	assert.Equal(t, "1001", rows[0].Fields[ColDocumentNumber])
	assert.Equal(t, "Acme Corp", rows[0].Fields[ColName])

	records, err := ToRecords(rows)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.True(t, records[0].Amount.Equal(decimal.RequireFromString("1250.00")))
	assert.Nil(t, records[0].PaymentDate)
	require.NotNil(t, records[1].PaymentDate)
	assert.Equal(t, time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC), *records[1].PaymentDate)
}

func TestReadCSVPivotAliases(t *testing.T) {
	input := strings.Join([]string{
		"Document Number,Name,Maximum of Date,Maximum of Due Date/Receive By,Maximum of Payment Date,Sum of Amount",
		"3148,Foreign Payer,2024-11-01,2024-12-01,,500",
	}, "\n")

	rows, err := ReadCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 1)

	records, err := ToRecords(rows)
	require.NoError(t, err)
	assert.Equal(t, "3148", records[0].DocumentNumber)
	assert.Equal(t, time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC), records[0].DueDate)
}

func TestReadCSVMissingColumn(t *testing.T) {
	input := "Document Number,Name,Invoice Date,Due Date,Payment Date\n1001,Acme,,,\n"
	_, err := ReadCSV(strings.NewReader(input))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingColumn))
	assert.Contains(t, err.Error(), "Amount")
}

func TestReadCSVEmptyInput(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmptyInput))
}

func TestToRecordsMissingAmount(t *testing.T) {
	rows := []Row{{
		Line: 4,
		Fields: map[string]string{
			ColDocumentNumber: "1001",
			ColDueDate:        "2025-01-01",
			ColAmount:         "",
		},
	}}

	_, err := ToRecords(rows)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDataQuality))

	var dqErr *DataQualityError
	require.True(t, errors.As(err, &dqErr))
	assert.Equal(t, 4, dqErr.Row)
	assert.Equal(t, "1001", dqErr.Document)
	assert.Equal(t, ColAmount, dqErr.Field)
}

func TestToRecordsUnparseableDate(t *testing.T) {
	rows := []Row{{
		Line: 7,
		Fields: map[string]string{
			ColDocumentNumber: "1002",
			ColDueDate:        "next tuesday",
			ColAmount:         "100",
		},
	}}

	_, err := ToRecords(rows)
	require.Error(t, err)

	var dqErr *DataQualityError
	require.True(t, errors.As(err, &dqErr))
	assert.Equal(t, ColDueDate, dqErr.Field)
	assert.Equal(t, "next tuesday", dqErr.Value)
}

func TestToRecordsMissingDocumentNumber(t *testing.T) {
	rows := []Row{{
		Line:   2,
		Fields: map[string]string{ColAmount: "100"},
	}}

	_, err := ToRecords(rows)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDataQuality))
}

func TestToRecordsMissingDatesAllowed(t *testing.T) {
	// Dates are optional; only amounts and document numbers are required.
	rows := []Row{{
		Line: 2,
		Fields: map[string]string{
			ColDocumentNumber: "1003",
			ColAmount:         "100",
		},
	}}

	records, err := ToRecords(rows)
	require.NoError(t, err)
	assert.True(t, records[0].DueDate.IsZero())
	assert.Nil(t, records[0].PaymentDate)
}

func TestParseAmountFormats(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"1234.56", "1234.56"},
		{"$1,234.56", "1234.56"},
		{"-12.5", "-12.5"},
		{"(500.00)", "-500"},
		{"$ 2,000", "2000"},
	}
	for _, tt := range tests {
		got, err := parseAmount(tt.raw)
		require.NoError(t, err, "raw=%q", tt.raw)
		assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "raw=%q got=%s", tt.raw, got)
	}

	_, err := parseAmount("abc")
	assert.Error(t, err)
}

func TestReadSheetRows(t *testing.T) {
	reader := stubRangeReader{values: [][]interface{}{
		{"Document Number", "Name", "Invoice Date", "Due Date", "Payment Date", "Amount"},
		{"1001", "Acme Corp", "2024-12-01", "2025-01-01", nil, 1250.0},
	}}

	rows, err := ReadSheet(context.Background(), reader, "Sheet1")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "1001", rows[0].Fields[ColDocumentNumber])
	assert.Equal(t, "1250", rows[0].Fields[ColAmount])
}

type stubRangeReader struct {
	values [][]interface{}
}

func (s stubRangeReader) ReadRange(_ context.Context, _ string) ([][]interface{}, error) {
	return s.values, nil
}

package dataset

import (
	"context"
	"fmt"
	"strings"

	"artool/internal/logger"
)

// RangeReader reads cell values from a spreadsheet range. Satisfied by
// the Google Sheets service.
type RangeReader interface {
	ReadRange(ctx context.Context, rangeSpec string) ([][]interface{}, error)
}

// ReadSheet loads rows from a Google Sheet worksheet. The first row is
// treated as the header, exactly like the CSV source.
func ReadSheet(ctx context.Context, reader RangeReader, sheetName string) ([]Row, error) {
	const op = "ReadSheet"

	log := logger.WithComponent("dataset-sheet")
	log.Info().Str("sheet", sheetName).Msg("Reading invoice records")

	values, err := reader.ReadRange(ctx, sheetName+"!A:F")
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read %s sheet: %w", op, sheetName, err)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("%s: %s sheet: %w", op, sheetName, ErrEmptyInput)
	}

	columns := make(map[string]int, len(values[0]))
	for i := range values[0] {
		columns[canonicalizeHeader(getString(values[0], i))] = i
	}
	if err := validateHeader(columns); err != nil {
		return nil, fmt.Errorf("%s: %s sheet: %w", op, sheetName, err)
	}

	rows := make([]Row, 0, len(values)-1)
	for i, record := range values[1:] {
		fields := make(map[string]string, len(columns))
		for col, idx := range columns {
			fields[col] = getString(record, idx)
		}
		rows = append(rows, Row{Line: i + 2, Fields: fields})
	}

	log.Info().
		Int("rows", len(rows)).
		Str("sheet", sheetName).
		Msg("Invoice records read successfully")

	return rows, nil
}

// getString safely extracts a string value from a row slice
func getString(row []interface{}, index int) string {
	if index >= len(row) || row[index] == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprintf("%v", row[index]))
}

package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"artool/internal/logger"
)

// ReadCSVFile loads rows from a CSV invoice export. The first record is
// the header; alternate header spellings are mapped onto the canonical
// column names before any row is built.
func ReadCSVFile(path string) ([]Row, error) {
	const op = "ReadCSVFile"

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to open %s: %w", op, path, err)
	}
	defer file.Close()

	rows, err := ReadCSV(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %s: %w", op, path, err)
	}

	log := logger.WithComponent("dataset-csv")
	log.Info().
		Str("file", path).
		Int("rows", len(rows)).
		Msg("Loaded invoice records")

	return rows, nil
}

// ReadCSV parses CSV data from a reader into canonical rows.
func ReadCSV(r io.Reader) ([]Row, error) {
	const op = "ReadCSV"

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // exports often have ragged trailing cells
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse CSV: %w", op, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrEmptyInput)
	}

	columns := make(map[string]int, len(records[0]))
	for i, cell := range records[0] {
		columns[canonicalizeHeader(cell)] = i
	}
	if err := validateHeader(columns); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows := make([]Row, 0, len(records)-1)
	for i, record := range records[1:] {
		fields := make(map[string]string, len(columns))
		for col, idx := range columns {
			if idx < len(record) {
				fields[col] = record[idx]
			}
		}
		rows = append(rows, Row{Line: i + 2, Fields: fields})
	}

	return rows, nil
}

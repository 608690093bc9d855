package dataset

import (
	"fmt"
	"strings"
)

// Canonical column names expected by the analysis core.
const (
	ColDocumentNumber = "Document Number"
	ColName           = "Name"
	ColInvoiceDate    = "Invoice Date"
	ColDueDate        = "Due Date"
	ColPaymentDate    = "Payment Date"
	ColAmount         = "Amount"
)

// requiredColumns are the columns that must be present after alias
// resolution. Name is informational and may be absent.
var requiredColumns = []string{
	ColDocumentNumber,
	ColInvoiceDate,
	ColDueDate,
	ColPaymentDate,
	ColAmount,
}

// headerAliases maps alternate header spellings seen in pivot-table
// exports onto the canonical column names.
var headerAliases = map[string]string{
	"maximum of date":                "Invoice Date",
	"maximum of due date/receive by": "Due Date",
	"maximum of payment date":        "Payment Date",
	"sum of amount":                  "Amount",
}

// Row is one input row keyed by canonical column name, with its 1-based
// position in the source for error reporting.
type Row struct {
	Line   int
	Fields map[string]string
}

// canonicalizeHeader resolves a raw header cell to its canonical column
// name. Matching is case-insensitive and whitespace-trimmed; unknown
// headers pass through trimmed so extra columns are carried harmlessly.
func canonicalizeHeader(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if canonical, ok := headerAliases[strings.ToLower(trimmed)]; ok {
		return canonical
	}
	for _, col := range requiredColumns {
		if strings.EqualFold(trimmed, col) {
			return col
		}
	}
	if strings.EqualFold(trimmed, ColName) {
		return ColName
	}
	return trimmed
}

// validateHeader checks that every required column is present.
func validateHeader(columns map[string]int) error {
	for _, col := range requiredColumns {
		if _, ok := columns[col]; !ok {
			return fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}
	return nil
}

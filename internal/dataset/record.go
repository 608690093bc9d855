package dataset

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"artool/pkg/models"
)

// dateFormats are tried in order when coercing date cells. Exports come
// out of spreadsheets in a handful of spellings.
var dateFormats = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"01/02/2006",
	"1/2/2006",
	"02.01.2006",
	"2006-01-02T15:04:05",
}

// ToRecords coerces canonical rows into invoice records. Any cell that
// blocks computing a category or days-past-due fails the whole load with
// a row-identified error; nothing is silently defaulted.
func ToRecords(rows []Row) ([]models.InvoiceRecord, error) {
	records := make([]models.InvoiceRecord, 0, len(rows))
	for _, row := range rows {
		rec, err := toRecord(row)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func toRecord(row Row) (models.InvoiceRecord, error) {
	doc := strings.TrimSpace(row.Fields[ColDocumentNumber])
	if doc == "" {
		return models.InvoiceRecord{}, NewDataQualityError(row.Line, "", ColDocumentNumber, "", "document number is required")
	}

	rec := models.InvoiceRecord{
		DocumentNumber: doc,
		Name:           strings.TrimSpace(row.Fields[ColName]),
		Category:       models.CategoryUnknown,
	}

	var err error
	if rec.InvoiceDate, err = parseDate(row, doc, ColInvoiceDate); err != nil {
		return models.InvoiceRecord{}, err
	}
	if rec.DueDate, err = parseDate(row, doc, ColDueDate); err != nil {
		return models.InvoiceRecord{}, err
	}
	payment, err := parseDate(row, doc, ColPaymentDate)
	if err != nil {
		return models.InvoiceRecord{}, err
	}
	if !payment.IsZero() {
		rec.PaymentDate = &payment
	}

	amountStr := strings.TrimSpace(row.Fields[ColAmount])
	if amountStr == "" {
		// A missing amount would turn into a $0 "wire fee" if defaulted.
		return models.InvoiceRecord{}, NewDataQualityError(row.Line, doc, ColAmount, "", "amount is required")
	}
	if rec.Amount, err = parseAmount(amountStr); err != nil {
		return models.InvoiceRecord{}, NewDataQualityError(row.Line, doc, ColAmount, amountStr, "amount is not numeric")
	}

	return rec, nil
}

// parseDate coerces an optional date cell. Empty cells yield the zero
// time; non-empty cells that match no known format are data errors.
func parseDate(row Row, doc, field string) (time.Time, error) {
	raw := strings.TrimSpace(row.Fields[field])
	if raw == "" {
		return time.Time{}, nil
	}
	for _, format := range dateFormats {
		if date, err := time.Parse(format, raw); err == nil {
			return date, nil
		}
	}
	return time.Time{}, NewDataQualityError(row.Line, doc, field, raw, "unparseable date")
}

// parseAmount coerces a monetary cell, tolerating currency symbols and
// thousands separators.
func parseAmount(raw string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(raw)

	negative := strings.HasPrefix(cleaned, "-")
	cleaned = strings.TrimPrefix(cleaned, "-")

	// Accounting exports mark negatives with parentheses.
	if strings.HasPrefix(cleaned, "(") && strings.HasSuffix(cleaned, ")") {
		negative = true
		cleaned = strings.TrimSuffix(strings.TrimPrefix(cleaned, "("), ")")
	}

	cleaned = strings.ReplaceAll(cleaned, "$", "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.ReplaceAll(cleaned, " ", "")

	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, err
	}
	if negative {
		amount = amount.Neg()
	}
	return amount, nil
}

package dataset

import (
	"errors"
	"fmt"
)

// Common dataset errors
var (
	// ErrDataQuality is returned when a row carries a value that blocks
	// classification (bad date, missing or non-numeric amount).
	ErrDataQuality = errors.New("data quality error")

	// ErrMissingColumn is returned when a required column is absent from
	// the input header, after alias resolution.
	ErrMissingColumn = errors.New("required column missing")

	// ErrEmptyInput is returned when the input has no header row at all.
	ErrEmptyInput = errors.New("input contains no rows")
)

// DataQualityError identifies the source row and field that could not be
// coerced, so the offending export cell can be fixed rather than silently
// defaulted.
type DataQualityError struct {
	// Row is the 1-based row number in the source (header counts as row 1).
	Row int

	// Document is the document number of the row, when known.
	Document string

	Field  string
	Value  string
	Reason string
}

// Error implements the error interface.
func (e *DataQualityError) Error() string {
	if e.Document != "" {
		return fmt.Sprintf("row %d (document %s): field '%s': %s (value: %q)", e.Row, e.Document, e.Field, e.Reason, e.Value)
	}
	return fmt.Sprintf("row %d: field '%s': %s (value: %q)", e.Row, e.Field, e.Reason, e.Value)
}

// Is implements error matching for errors.Is.
func (e *DataQualityError) Is(target error) bool {
	return target == ErrDataQuality
}

// NewDataQualityError creates a new DataQualityError.
func NewDataQualityError(row int, document, field, value, reason string) *DataQualityError {
	return &DataQualityError{
		Row:      row,
		Document: document,
		Field:    field,
		Value:    value,
		Reason:   reason,
	}
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category classifies an invoice for AR reporting purposes.
type Category string

const (
	// CategoryUnknown is the pre-classification default. It must never
	// appear on a record after classification has run.
	CategoryUnknown Category = "Unknown"

	// CategoryPaid marks invoices with a recorded payment date.
	CategoryPaid Category = "Paid"

	// CategoryCollectible marks unpaid invoices that count toward
	// outstanding receivables.
	CategoryCollectible Category = "Collectible AR"

	// CategoryExcluded marks unpaid invoices that are not collectible
	// (wire-fee residue, withholding tax).
	CategoryExcluded Category = "Excluded"
)

// AgingBand is one of the five fixed aging buckets for collectible AR.
type AgingBand string

const (
	BandOnTime AgingBand = "On Time"
	Band1To30  AgingBand = "1-30 Days Past Due"
	Band31To60 AgingBand = "31-60 Days Past Due"
	Band61To90 AgingBand = "61-90 Days Past Due"
	BandOver90 AgingBand = "Over 90 Days Past Due"
)

// AgingBands returns the five bands in canonical report order.
func AgingBands() []AgingBand {
	return []AgingBand{BandOnTime, Band1To30, Band31To60, Band61To90, BandOver90}
}

// BandForDays maps a non-negative days-past-due value to its aging band.
// Upper edges are inclusive: 30 is still "1-30", 31 starts "31-60".
func BandForDays(days int) AgingBand {
	switch {
	case days == 0:
		return BandOnTime
	case days <= 30:
		return Band1To30
	case days <= 60:
		return Band31To60
	case days <= 90:
		return Band61To90
	default:
		return BandOver90
	}
}

// InvoiceRecord is one row of the AR export, plus the fields derived
// during classification.
type InvoiceRecord struct {
	// Source fields
	DocumentNumber string // string-typed so numeric-looking values keep leading structure
	Name           string
	InvoiceDate    time.Time  // zero when absent
	DueDate        time.Time  // zero when absent
	PaymentDate    *time.Time // nil when unpaid
	Amount         decimal.Decimal

	// Derived by the classifier
	DaysPastDue     int
	Category        Category
	ExclusionReason string    // non-empty iff Category == CategoryExcluded
	AgingCategory   AgingBand // set only for CategoryCollectible
}

// IsPaid reports whether a payment date is recorded.
func (r *InvoiceRecord) IsPaid() bool {
	return r.PaymentDate != nil
}

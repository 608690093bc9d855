package analysis

import (
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"artool/internal/logger"
	"artool/pkg/models"
)

// Exclusion reason markers. The excluded-amount split in the metrics
// summary matches on these substrings, so configured note text must
// contain them.
const (
	wireFeeMarker     = "wire fee"
	withholdingMarker = "Withholding"
)

// Config holds the classification rules for one analysis run. It is
// immutable once handed to NewClassifier.
type Config struct {
	// AsOf is the evaluation moment for days-past-due on unpaid invoices.
	AsOf time.Time

	// WireFeeThreshold marks unpaid amounts at or below it as wire-fee
	// noise rather than collectible AR.
	WireFeeThreshold decimal.Decimal

	// WithholdingDocs lists document numbers excluded as withholding tax
	// regardless of amount.
	WithholdingDocs []string

	// Note text recorded as the exclusion reason on excluded rows.
	WireFeeNote     string
	WithholdingNote string
}

// DefaultConfig returns the standard exclusion rules: threshold 100,
// withholding document 3148.
func DefaultConfig(asOf time.Time) Config {
	return Config{
		AsOf:             asOf,
		WireFeeThreshold: decimal.NewFromInt(100),
		WithholdingDocs:  []string{"3148"},
		WireFeeNote:      "Remaining wire fees - excluded from AR",
		WithholdingNote:  "India Withholding Tax - excluded from AR",
	}
}

// Validate checks the configuration. Invalid settings are rejected here,
// before any row is processed.
func (c Config) Validate() error {
	if c.WireFeeThreshold.IsNegative() {
		return NewConfigurationError("WireFeeThreshold", c.WireFeeThreshold.String(), "threshold must not be negative")
	}
	if len(c.WithholdingDocs) == 0 {
		return NewConfigurationError("WithholdingDocs", c.WithholdingDocs, "withholding document set must not be empty")
	}
	if !strings.Contains(c.WireFeeNote, wireFeeMarker) {
		return NewConfigurationError("WireFeeNote", c.WireFeeNote, "note must contain the 'wire fee' marker")
	}
	if !strings.Contains(c.WithholdingNote, withholdingMarker) {
		return NewConfigurationError("WithholdingNote", c.WithholdingNote, "note must contain the 'Withholding' marker")
	}
	return nil
}

// Classifier assigns a category, exclusion reason, and days-past-due to
// each invoice record.
type Classifier struct {
	cfg             Config
	withholdingDocs map[string]struct{}
	log             zerolog.Logger
}

// NewClassifier creates a classifier after validating the configuration.
func NewClassifier(cfg Config) (*Classifier, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.AsOf.IsZero() {
		cfg.AsOf = time.Now()
	}

	withholding := make(map[string]struct{}, len(cfg.WithholdingDocs))
	for _, doc := range cfg.WithholdingDocs {
		withholding[doc] = struct{}{}
	}

	return &Classifier{
		cfg:             cfg,
		withholdingDocs: withholding,
		log:             logger.WithComponent("classifier"),
	}, nil
}

// Classify annotates every record with days-past-due, category, exclusion
// reason, and aging band. Rows are independent of each other; only the
// per-category counts for the summary log are accumulated across rows.
func (c *Classifier) Classify(records []models.InvoiceRecord) []models.InvoiceRecord {
	out := make([]models.InvoiceRecord, len(records))

	var paid, collectible, wireFee, withholding int
	for i, rec := range records {
		out[i] = c.classifyRecord(rec)
		switch {
		case out[i].Category == models.CategoryPaid:
			paid++
		case out[i].Category == models.CategoryCollectible:
			collectible++
		case out[i].ExclusionReason == c.cfg.WithholdingNote:
			withholding++
		default:
			wireFee++
		}
	}

	c.log.Info().
		Int("paid", paid).
		Int("collectible", collectible).
		Int("wire_fees_excluded", wireFee).
		Int("withholding_excluded", withholding).
		Time("as_of", c.cfg.AsOf).
		Msg("Invoices categorized")

	return out
}

// classifyRecord applies the classification rules to a single record.
// The rule order encodes business precedence: payment wins over both
// exclusions, and the withholding check runs before the wire-fee
// threshold so a small withholding line is never reported as a wire fee.
func (c *Classifier) classifyRecord(rec models.InvoiceRecord) models.InvoiceRecord {
	rec.DaysPastDue = c.daysPastDue(rec)
	rec.ExclusionReason = ""
	rec.AgingCategory = ""

	switch {
	case rec.IsPaid():
		rec.Category = models.CategoryPaid
	case c.isWithholdingDoc(rec.DocumentNumber):
		rec.Category = models.CategoryExcluded
		rec.ExclusionReason = c.cfg.WithholdingNote
	case rec.Amount.LessThanOrEqual(c.cfg.WireFeeThreshold):
		rec.Category = models.CategoryExcluded
		rec.ExclusionReason = c.cfg.WireFeeNote
	default:
		rec.Category = models.CategoryCollectible
		rec.AgingCategory = models.BandForDays(rec.DaysPastDue)
	}

	return rec
}

// daysPastDue computes how many days past due the record is, never
// negative. Paid rows measure payment date against due date; unpaid rows
// measure the as-of date against due date. A missing due date yields zero.
func (c *Classifier) daysPastDue(rec models.InvoiceRecord) int {
	if rec.DueDate.IsZero() {
		return 0
	}
	reference := c.cfg.AsOf
	if rec.PaymentDate != nil {
		reference = *rec.PaymentDate
	}
	days := daysBetween(reference, rec.DueDate)
	if days < 0 {
		return 0
	}
	return days
}

func (c *Classifier) isWithholdingDoc(docNumber string) bool {
	_, ok := c.withholdingDocs[docNumber]
	return ok
}

// daysBetween returns whole calendar days from earlier to later,
// ignoring the time-of-day component.
func daysBetween(later, earlier time.Time) int {
	l := time.Date(later.Year(), later.Month(), later.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(earlier.Year(), earlier.Month(), earlier.Day(), 0, 0, 0, 0, time.UTC)
	return int(l.Sub(e).Hours() / 24)
}

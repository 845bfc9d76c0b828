package crawler

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/propradar/go-property-crawler/internal/logger"
	"github.com/propradar/go-property-crawler/internal/parser"
	"github.com/propradar/go-property-crawler/internal/repository"
	"github.com/propradar/go-property-crawler/internal/utils"
)

// Plausible bounds for a Bangalore builder project, in lakhs. Values
// outside are parsing accidents (a pin code, a square footage) and are
// nulled rather than saved.
const (
	priceFloorLakhs   = 0.1
	priceCeilingLakhs = 50000
)

// Field length caps applied before persistence.
const (
	maxNameLen     = 200
	maxBuilderLen  = 100
	maxLocalityLen = 150
	maxHandoverLen = 50
	maxBHKLen      = 30
	maxDisplayLen  = 80
)

// Navigation and filter-bar labels that bleed into scraped fields. Stripped
// on word boundaries wherever they appear.
var uiNoisePattern = regexp.MustCompile(`(?i)(?:\b(?:filter your search|sort by|quick links|find other projects|property list|bangalore, india|reset|list|map)\b|next\s*>>|<<\s*prev)`)

var validStatuses = map[string]struct{}{
	repository.StatusNewLaunch:         {},
	repository.StatusUnderConstruction: {},
	repository.StatusReadyToMove:       {},
}

// RecordVerifier is the single gate between extraction and persistence.
// VerifyAndClean is idempotent: cleaning an already-clean record returns it
// unchanged, so records can safely pass through the gate more than once
// (extraction, then again after enrichment).
type RecordVerifier struct {
	junk   *JunkFilter
	logger *logger.Logger
}

func NewRecordVerifier() *RecordVerifier {
	return &RecordVerifier{
		junk:   NewJunkFilter(),
		logger: logger.NewLogger("verifier"),
	}
}

// VerifyAll cleans each record and drops the unsalvageable ones, preserving
// order.
func (v *RecordVerifier) VerifyAll(records []repository.Property) []repository.Property {
	cleaned := make([]repository.Property, 0, len(records))
	dropped := 0
	for _, record := range records {
		clean, ok := v.VerifyAndClean(record)
		if !ok {
			dropped++
			continue
		}
		cleaned = append(cleaned, clean)
	}
	if dropped > 0 {
		v.logger.WithField("dropped", dropped).Info("Verifier rejected records")
	}
	return cleaned
}

// VerifyAndClean normalizes a record in place and reports whether it is
// fit to persist. Rejection reasons: unusable URL, junk or empty name.
func (v *RecordVerifier) VerifyAndClean(record repository.Property) (repository.Property, bool) {
	record.URL = strings.TrimSpace(record.URL)
	if !hasHTTPScheme(record.URL) {
		return record, false
	}

	record.Name = cleanField(record.Name, maxNameLen)
	if record.Name == "" || v.junk.IsJunkName(record.Name) {
		return record, false
	}

	record.Builder = cleanField(record.Builder, maxBuilderLen)
	record.Locality = cleanField(record.Locality, maxLocalityLen)
	record.Handover = cleanField(record.Handover, maxHandoverLen)
	record.BHK = cleanField(record.BHK, maxBHKLen)

	record.PriceMinLakhs = boundedPrice(record.PriceMinLakhs)
	record.PriceMaxLakhs = boundedPrice(record.PriceMaxLakhs)
	if record.PriceMinLakhs != nil && record.PriceMaxLakhs != nil && *record.PriceMinLakhs > *record.PriceMaxLakhs {
		record.PriceMinLakhs, record.PriceMaxLakhs = record.PriceMaxLakhs, record.PriceMinLakhs
	}
	if record.PriceMinLakhs != nil || record.PriceMaxLakhs != nil {
		record.PriceDisplay = parser.FormatPriceDisplay(record.PriceMinLakhs, record.PriceMaxLakhs)
	} else {
		record.PriceDisplay = cleanField(record.PriceDisplay, maxDisplayLen)
	}

	if record.HandoverYear != nil {
		if y := *record.HandoverYear; y < parser.HandoverYearMin || y > parser.HandoverYearMax {
			record.HandoverYear = nil
		}
	}

	if _, ok := validStatuses[record.Status]; !ok {
		record.Status = repository.StatusNewLaunch
	}
	if record.Source == "" {
		record.Source = repository.Source99Acres
	}
	if record.ID == "" {
		record.ID = repository.GeneratePropertyID(record.URL)
	}
	return record, true
}

func cleanField(s string, max int) string {
	s = uiNoisePattern.ReplaceAllString(s, " ")
	return utils.Truncate(utils.CollapseWhitespace(s), max)
}

func boundedPrice(p *float64) *float64 {
	if p == nil || *p < priceFloorLakhs || *p > priceCeilingLakhs {
		return nil
	}
	return p
}

func hasHTTPScheme(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}

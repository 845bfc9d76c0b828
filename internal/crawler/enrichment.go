package crawler

import (
	"context"
	"regexp"
	"strings"

	"github.com/propradar/go-property-crawler/internal/logger"
	"github.com/propradar/go-property-crawler/internal/parser"
	"github.com/propradar/go-property-crawler/internal/repository"
	"github.com/propradar/go-property-crawler/internal/utils"
)

// Fetcher retrieves one page by URL. Implemented by the colly-backed fetcher;
// tests substitute a canned one.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Overlay is a partial record parsed from a detail page. Zero-valued fields
// mean "no information", never "clear the field".
type Overlay struct {
	Name          string
	Builder       string
	Locality      string
	Status        string
	Handover      string
	BHK           string
	PriceMinLakhs *float64
	PriceMaxLakhs *float64
}

var (
	detailBuilderRegex  = regexp.MustCompile(`(?i)(?:Brought to you by|Developed by)\s+([A-Za-z][A-Za-z0-9\s&\.'-]{2,60}?)(?:\s*[,.]|\s+(?:the|a|an|is|has|offers)\b)`)
	detailAboutRegex    = regexp.MustCompile(`(?i)About\s+([A-Za-z][A-Za-z0-9\s&\.'-]{2,60}?)\s+(?:The|Established|Founded)\b`)
	detailLocalityRegex = regexp.MustCompile(`(?i)(?:in|at)\s+([A-Za-z][A-Za-z\s]{2,40}?),\s*Bangalore`)
	detailHandoverRegex = regexp.MustCompile(`(?i)Completion\s+from\s+([A-Za-z]+),?\s+(\d{4})`)
	detailBHKRegex      = regexp.MustCompile(`(?i)(\d[\d.,\s]*)\s*BHK\s+(?:Apartment|Flat|Villa|Plot|Home)`)
)

// DetailEnricher fetches a listing's own detail page and overlays the fields
// parsed there over the card-derived record. Detail pages outrank listing
// cards, so any non-empty detail value replaces the card value. A fetch or
// parse failure leaves the record exactly as it was.
type DetailEnricher struct {
	fetcher Fetcher
	logger  *logger.Logger
}

func NewDetailEnricher(fetcher Fetcher) *DetailEnricher {
	return &DetailEnricher{
		fetcher: fetcher,
		logger:  logger.NewLogger("enricher"),
	}
}

// EnrichAll enriches every record in place. Failures are logged per record
// and never abort the batch.
func (e *DetailEnricher) EnrichAll(ctx context.Context, records []repository.Property) {
	enriched := 0
	skipped := 0
	for i := range records {
		if !enrichable(&records[i]) {
			skipped++
			continue
		}
		if err := e.Enrich(ctx, &records[i]); err != nil {
			e.logger.WithError(err).WithField("url", records[i].URL).Warn("Detail enrichment failed")
			continue
		}
		enriched++
	}
	e.logger.WithFields(map[string]interface{}{
		"enriched": enriched,
		"skipped":  skipped,
		"total":    len(records),
	}).Info("Detail enrichment finished")
}

// enrichable reports whether the record's URL points at a fetchable detail
// page. NoBroker records recovered from raw markup carry synthetic slug URLs
// with no page behind them, and a 99acres path without the identifier marker
// is not a project page.
func enrichable(record *repository.Property) bool {
	switch record.Source {
	case repository.SourceNoBroker:
		return !strings.HasPrefix(record.URL, noBrokerSyntheticPrefix)
	case repository.Source99Acres:
		return strings.Contains(record.URL, "-"+parser.IdentifierMarker)
	}
	return false
}

// Enrich overlays detail-page fields onto record. Records whose URL is not a
// real detail page are left untouched.
func (e *DetailEnricher) Enrich(ctx context.Context, record *repository.Property) error {
	if !enrichable(record) {
		return nil
	}
	page, err := e.fetcher.Fetch(ctx, record.URL)
	if err != nil {
		return err
	}

	var overlay Overlay
	switch record.Source {
	case repository.SourceNoBroker:
		overlay = ParseNoBrokerDetail(page)
	default:
		overlay = Parse99AcresDetail(page)
	}
	applyOverlay(record, overlay)
	return nil
}

// applyOverlay copies non-empty overlay fields onto the record and keeps the
// derived fields consistent with the new values.
func applyOverlay(record *repository.Property, o Overlay) {
	if o.Name != "" {
		record.Name = o.Name
	}
	if o.Builder != "" {
		record.Builder = o.Builder
	}
	if o.Locality != "" {
		record.Locality = o.Locality
	}
	if o.Status != "" {
		record.Status = o.Status
	}
	if o.Handover != "" {
		record.Handover = o.Handover
		record.HandoverYear = parser.YearFromPossession(o.Handover)
	}
	if o.BHK != "" {
		record.BHK = o.BHK
	}
	if o.PriceMinLakhs != nil {
		record.PriceMinLakhs = o.PriceMinLakhs
	}
	if o.PriceMaxLakhs != nil {
		record.PriceMaxLakhs = o.PriceMaxLakhs
	}
	if o.PriceMinLakhs != nil || o.PriceMaxLakhs != nil {
		record.PriceDisplay = parser.FormatPriceDisplay(record.PriceMinLakhs, record.PriceMaxLakhs)
	}
}

// Parse99AcresDetail extracts overlay fields from a 99acres project detail
// page. Works on stripped text, the detail markup changes too often to pin
// selectors to.
func Parse99AcresDetail(page string) Overlay {
	text := utils.CollapseWhitespace(utils.StripTags(page))
	var o Overlay

	if m := detailBuilderRegex.FindStringSubmatch(text); m != nil {
		o.Builder = utils.Truncate(strings.TrimSpace(m[1]), maxBuilderLen)
	} else if m := detailAboutRegex.FindStringSubmatch(text); m != nil {
		o.Builder = utils.Truncate(strings.TrimSpace(m[1]), maxBuilderLen)
	}

	if loc := parser.LocalityFromText(text); loc != "" {
		o.Locality = loc
	} else if m := detailLocalityRegex.FindStringSubmatch(text); m != nil {
		o.Locality = utils.Truncate(strings.TrimSpace(m[1]), maxLocalityLen)
	}

	o.Status = statusFromText(text)

	if m := detailHandoverRegex.FindStringSubmatch(text); m != nil {
		o.Handover = m[1] + " " + m[2]
	} else if p := parser.ParsePossession(text); p != "" {
		o.Handover = p
	}

	o.PriceMinLakhs, o.PriceMaxLakhs = parser.ParsePriceRange(text)

	if m := detailBHKRegex.FindStringSubmatch(text); m != nil {
		o.BHK = utils.Truncate(strings.TrimSpace(m[1]), maxBHKLen)
	} else if bhk := parser.ParseBHK(text); bhk != "" {
		o.BHK = bhk
	}
	return o
}

// statusFromText maps construction-stage phrasing to a status value.
func statusFromText(text string) string {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "ready to move"):
		return repository.StatusReadyToMove
	case strings.Contains(lower, "under construction"):
		return repository.StatusUnderConstruction
	case strings.Contains(lower, "new launch"), strings.Contains(lower, "newly launched"):
		return repository.StatusNewLaunch
	}
	return ""
}

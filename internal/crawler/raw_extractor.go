package crawler

import (
	"regexp"
	"strings"

	"github.com/propradar/go-property-crawler/internal/logger"
	"github.com/propradar/go-property-crawler/internal/parser"
	"github.com/propradar/go-property-crawler/internal/repository"
	"github.com/propradar/go-property-crawler/internal/utils"
)

const (
	// Text window around a matched URL that the field parsers scan. The
	// window is asymmetric: prices and possession dates render after the
	// project link far more often than before it.
	rawWindowBefore = 500
	rawWindowAfter  = 800
)

// Listing URLs as they appear in raw markup: either absolute, or a rooted
// path slug ending in the identifier marker and a record number.
var rawListingURLRegex = regexp.MustCompile(
	`(https?://(?:www\.)?99acres\.com/[^"'<>\s]+?npxid[^"'<>\s]*?r\d+)` +
		`|(/(?:[a-z0-9-]+/)*[a-z0-9-]+-bangalore-(?:north|south|east|west)-npxid-r\d+[^"'<>\s]*)`)

// RawTextExtractor recovers listings from pages whose DOM the primary
// strategy cannot navigate, typically markup hidden inside script payloads.
// It scans the raw document for listing-shaped URLs and parses fields from a
// stripped-text window around each match.
type RawTextExtractor struct {
	junk   *JunkFilter
	logger *logger.Logger
}

func NewRawTextExtractor() *RawTextExtractor {
	return &RawTextExtractor{
		junk:   NewJunkFilter(),
		logger: logger.NewLogger("raw-extractor"),
	}
}

func (e *RawTextExtractor) Name() string {
	return "raw-text"
}

// Extract scans the raw document for listing URLs and builds one record per
// distinct URL, first match wins.
func (e *RawTextExtractor) Extract(document, baseURL, status string) []repository.Property {
	var records []repository.Property
	seen := make(map[string]struct{})

	for _, m := range rawListingURLRegex.FindAllStringSubmatchIndex(document, -1) {
		listingURL := e.matchedURL(document, m)
		if listingURL == "" {
			continue
		}
		if _, dup := seen[listingURL]; dup {
			continue
		}

		start := m[0] - rawWindowBefore
		if start < 0 {
			start = 0
		}
		end := m[1] + rawWindowAfter
		if end > len(document) {
			end = len(document)
		}
		window := utils.CollapseWhitespace(utils.StripTags(document[start:end]))

		record := e.buildRecord(listingURL, window, status)
		if record == nil {
			continue
		}
		seen[listingURL] = struct{}{}
		records = append(records, *record)
	}

	e.logger.WithFields(map[string]interface{}{
		"url":     baseURL,
		"status":  status,
		"records": len(records),
	}).Debug("Raw-text extraction finished")
	return records
}

func (e *RawTextExtractor) matchedURL(document string, m []int) string {
	var raw string
	switch {
	case m[2] >= 0:
		raw = document[m[2]:m[3]]
	case m[4] >= 0:
		raw = "https://www.99acres.com" + document[m[4]:m[5]]
	default:
		return ""
	}
	if i := strings.IndexByte(raw, '?'); i >= 0 {
		raw = raw[:i]
	}
	raw = strings.TrimRight(raw, `.,;:)\`)
	if !strings.HasPrefix(raw, "http") {
		return ""
	}
	return raw
}

func (e *RawTextExtractor) buildRecord(listingURL, window, status string) *repository.Property {
	name, locality := parser.NameAndLocalityFromPath(listingURL)
	if name == "" || e.junk.IsJunkName(name) {
		return nil
	}

	priceMin, priceMax := parser.ParsePriceRange(window)
	possession := parser.ParsePossession(window)
	if locality == "" {
		locality = parser.LocalityFromText(window)
	}

	return &repository.Property{
		ID:            repository.GeneratePropertyID(listingURL),
		Source:        repository.Source99Acres,
		Status:        status,
		Name:          utils.Truncate(name, 200),
		Builder:       parser.BuilderFromName(name),
		Locality:      locality,
		PriceMinLakhs: priceMin,
		PriceMaxLakhs: priceMax,
		PriceDisplay:  parser.FormatPriceDisplay(priceMin, priceMax),
		Handover:      possession,
		HandoverYear:  parser.YearFromPossession(possession),
		BHK:           parser.ParseBHK(window),
		URL:           listingURL,
	}
}

package crawler

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/propradar/go-property-crawler/internal/logger"
	"github.com/propradar/go-property-crawler/internal/parser"
	"github.com/propradar/go-property-crawler/internal/repository"
	"github.com/propradar/go-property-crawler/internal/utils"
)

var cardHeadingTags = []string{"h2", "h3", "h4", "strong"}

// DOMExtractor is the primary listing-page strategy. It finds project anchors
// by their URL shape, scopes each one to its card and runs the field parsers
// on card text only.
type DOMExtractor struct {
	scoper *CardScoper
	junk   *JunkFilter
	logger *logger.Logger
}

func NewDOMExtractor() *DOMExtractor {
	return &DOMExtractor{
		scoper: NewCardScoper(),
		junk:   NewJunkFilter(),
		logger: logger.NewLogger("dom-extractor"),
	}
}

func (e *DOMExtractor) Name() string {
	return "dom"
}

// Extract parses a listing page into property records. Records keep document
// order and each listing URL appears at most once.
func (e *DOMExtractor) Extract(document, baseURL, status string) []repository.Property {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(document))
	if err != nil {
		e.logger.WithError(err).Error("Failed to parse listing page")
		return nil
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		e.logger.WithError(err).WithField("url", baseURL).Error("Invalid base URL")
		return nil
	}

	var records []repository.Property
	seen := make(map[string]struct{})

	doc.Find("a[href]").Each(func(_ int, anchor *goquery.Selection) {
		href, _ := anchor.Attr("href")
		if !strings.Contains(href, "-"+parser.IdentifierMarker) || !strings.Contains(strings.ToLower(href), parser.CityToken) {
			return
		}
		listingURL := e.canonicalURL(base, href)
		if listingURL == "" {
			return
		}
		if _, dup := seen[listingURL]; dup {
			return
		}

		record := e.buildRecord(anchor, listingURL, status)
		if record == nil {
			return
		}
		seen[listingURL] = struct{}{}
		records = append(records, *record)
	})

	e.logger.WithFields(map[string]interface{}{
		"url":     baseURL,
		"status":  status,
		"records": len(records),
	}).Debug("DOM extraction finished")
	return records
}

func (e *DOMExtractor) buildRecord(anchor *goquery.Selection, listingURL, status string) *repository.Property {
	name, urlLocality := parser.NameAndLocalityFromPath(listingURL)

	// The slug name wins outright when present. Visible text is only
	// consulted for anchors whose slug carries no project name.
	if name == "" {
		name = e.nameFromDOM(anchor)
	}
	if name == "" {
		// last resort: title-case the slug even without a city token
		name = parser.NameFromSlug(listingURL)
	}
	if name == "" || e.junk.IsJunkName(name) {
		return nil
	}

	cardText := e.scoper.ScopeText(anchor)

	priceMin, priceMax := parser.ParsePriceRange(cardText)
	possession := parser.ParsePossession(cardText)

	locality := urlLocality
	if locality == "" {
		locality = parser.LocalityFromText(cardText)
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
		BHK:           parser.ParseBHK(cardText),
		URL:           listingURL,
	}
}

// nameFromDOM tries progressively weaker name sources: the anchor's own text,
// then nearby card headings, then the anchor's title attribute.
func (e *DOMExtractor) nameFromDOM(anchor *goquery.Selection) string {
	text := utils.CollapseWhitespace(anchor.Text())
	if isPlausibleName(text) {
		return text
	}

	card := anchor.Closest("div, article, section, li")
	if card.Length() > 0 {
		var heading string
		for _, tag := range cardHeadingTags {
			card.Find(tag).EachWithBreak(func(_ int, h *goquery.Selection) bool {
				t := utils.CollapseWhitespace(h.Text())
				if isPlausibleName(t) {
					heading = t
					return false
				}
				return true
			})
			if heading != "" {
				return heading
			}
		}
	}

	if title, ok := anchor.Attr("title"); ok {
		title = utils.CollapseWhitespace(title)
		if isPlausibleName(title) {
			return title
		}
	}
	return ""
}

// isPlausibleName rejects text too short to be a title, too long to be
// anything but a description, or carrying the city name (section headers).
func isPlausibleName(text string) bool {
	return len(text) >= 5 && len(text) <= 200 && !strings.Contains(text, "Bangalore")
}

// canonicalURL resolves href against base and strips query and fragment.
// Returns "" for links that do not resolve to an absolute http URL.
func (e *DOMExtractor) canonicalURL(base *url.URL, href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	resolved.RawQuery = ""
	resolved.Fragment = ""
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}
	return resolved.String()
}

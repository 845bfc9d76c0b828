package crawler

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/propradar/go-property-crawler/internal/logger"
	"github.com/propradar/go-property-crawler/internal/parser"
	"github.com/propradar/go-property-crawler/internal/repository"
	"github.com/propradar/go-property-crawler/internal/utils"
)

const (
	// Raw fallback fires when the DOM pass yields fewer cards than this on
	// a page big enough to be a real results page.
	noBrokerMinCards     = 5
	noBrokerMinPageBytes = 3000

	// Raw-pass records get URLs under this prefix; no real page lives
	// behind them, so the enricher must never fetch one.
	noBrokerSyntheticPrefix = "https://www.nobroker.in/new-projects/"
)

var (
	noBrokerNameLocRegex = regexp.MustCompile(`([A-Za-z0-9][A-Za-z0-9\s&\.'-]{4,120}),\s*([^,<]+),\s*Bangalore\s*,?\s*India`)
	builderSuffixRegex   = regexp.MustCompile(`(?i)\b[A-Za-z][A-Za-z\s&\.'-]*(?:Group|Developers?|Limited|Pvt|Builders?|Realty|Ventures?|Constructions?)$`)
	possessionInRegex    = regexp.MustCompile(`(?i)Possession\s+in\s+([A-Za-z]+,?\s+\d{4})`)
	noBrokerPriceRegex   = regexp.MustCompile(`(?i)₹?\s*([\d.]+)\s*(Cr|Crore|Lacs?|Lakhs?|L)\b`)
	nearAddressRegex     = regexp.MustCompile(`(?i)Near\s+([A-Za-z0-9][A-Za-z0-9\s,&\.'-]{3,80})`)
	byBuilderRegex       = regexp.MustCompile(`(?i)\bBy\s+([A-Za-z][A-Za-z0-9\s&\.'-]{2,60}?)(?:\s*[,.|]|$)`)
)

// Navigation paths that look like project links but are site chrome.
var noBrokerSkipPaths = []string{
	"/new-projects-in", "/about", "/contact", "/blog", "/login", "/signup",
	"/terms", "/privacy", "/faq",
}

// NoBrokerExtractor parses NoBroker new-project listing pages. NoBroker cards
// do not carry slug-encoded metadata, so fields come from the card's visible
// lines instead of the URL.
type NoBrokerExtractor struct {
	junk   *JunkFilter
	logger *logger.Logger
}

func NewNoBrokerExtractor() *NoBrokerExtractor {
	return &NoBrokerExtractor{
		junk:   NewJunkFilter(),
		logger: logger.NewLogger("nobroker-extractor"),
	}
}

func (e *NoBrokerExtractor) Name() string {
	return "nobroker"
}

// Extract parses a NoBroker listing page. When the DOM pass finds too few
// cards on a substantial page, a raw-text pass recovers name/locality pairs
// from the markup.
func (e *NoBrokerExtractor) Extract(document, baseURL, status string) []repository.Property {
	records := e.extractFromDOM(document, baseURL, status)
	if len(records) < noBrokerMinCards && len(document) > noBrokerMinPageBytes {
		e.logger.WithField("yield", len(records)).Info("NoBroker DOM pass thin, scanning raw markup")
		records = e.mergeRawPass(records, document, status)
	}
	return records
}

func (e *NoBrokerExtractor) extractFromDOM(document, baseURL, status string) []repository.Property {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(document))
	if err != nil {
		e.logger.WithError(err).Error("Failed to parse NoBroker page")
		return nil
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil
	}

	var records []repository.Property
	seen := make(map[string]struct{})

	doc.Find("a[href]").Each(func(_ int, anchor *goquery.Selection) {
		href, _ := anchor.Attr("href")
		detailURL := e.detailURL(base, href)
		if detailURL == "" {
			return
		}
		if _, dup := seen[detailURL]; dup {
			return
		}

		block := e.cardBlock(anchor)
		record := e.parseCard(block, detailURL, status)
		if record == nil {
			return
		}
		seen[detailURL] = struct{}{}
		records = append(records, *record)
	})
	return records
}

// detailURL keeps only links that plausibly point at a project detail page.
func (e *NoBrokerExtractor) detailURL(base *url.URL, href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	if !strings.Contains(resolved.Host, "nobroker.in") {
		return ""
	}
	path := resolved.Path
	if len(strings.Trim(path, "/")) < 10 || strings.Contains(path, "-page-") {
		return ""
	}
	for _, skip := range noBrokerSkipPaths {
		if strings.HasPrefix(path, skip) {
			return ""
		}
	}
	resolved.RawQuery = ""
	resolved.Fragment = ""
	return resolved.String()
}

// cardBlock returns the anchor's card text with line structure preserved.
// Climbs one extra level when the immediate card is too thin to parse.
func (e *NoBrokerExtractor) cardBlock(anchor *goquery.Selection) string {
	card := anchor.Closest("div, article, li")
	if card.Length() == 0 {
		return utils.SelectionText(anchor, "\n")
	}
	block := utils.SelectionText(card, "\n")
	if len(block) < 50 {
		parent := card.Parent().Closest("div, article, li")
		if parent.Length() > 0 {
			block = utils.SelectionText(parent, "\n")
		}
	}
	return block
}

// parseCard reads a card's lines into a record. The name comes from the
// "<project>, <locality>, Bangalore, India" line every card carries.
func (e *NoBrokerExtractor) parseCard(block, detailURL, status string) *repository.Property {
	var name, locality, builder, possession string

	for _, line := range strings.Split(block, "\n") {
		line = utils.CollapseWhitespace(line)
		if line == "" {
			continue
		}
		if name == "" {
			if m := noBrokerNameLocRegex.FindStringSubmatch(line); m != nil {
				name = strings.TrimSpace(m[1])
				locality = utils.Truncate(strings.TrimSpace(m[2]), maxLocalityLen)
				continue
			}
		}
		if builder == "" {
			if m := builderSuffixRegex.FindString(line); m != "" && len(m) <= maxBuilderLen {
				builder = strings.TrimSpace(m)
				continue
			}
		}
		if possession == "" {
			if m := possessionInRegex.FindStringSubmatch(line); m != nil {
				possession = strings.ReplaceAll(m[1], ",", "")
			} else if strings.Contains(strings.ToLower(line), "ready to move") {
				possession = parser.ReadyToMove
			}
		}
	}

	if name == "" || e.junk.IsJunkName(name) {
		return nil
	}

	priceMin, priceMax := foldNoBrokerPrices(block)
	if builder == "" {
		builder = parser.BuilderFromName(name)
	}

	recordStatus := status
	if possession == parser.ReadyToMove {
		recordStatus = repository.StatusReadyToMove
	}

	return &repository.Property{
		ID:            repository.GeneratePropertyID(detailURL),
		Source:        repository.SourceNoBroker,
		Status:        recordStatus,
		Name:          utils.Truncate(name, maxNameLen),
		Builder:       builder,
		Locality:      locality,
		PriceMinLakhs: priceMin,
		PriceMaxLakhs: priceMax,
		PriceDisplay:  parser.FormatPriceDisplay(priceMin, priceMax),
		Handover:      possession,
		HandoverYear:  parser.YearFromPossession(possession),
		BHK:           parser.ParseBHKLabel(block),
		URL:           detailURL,
	}
}

// foldNoBrokerPrices collects every priced amount in the card and keeps the
// smallest and largest. NoBroker prints one price per configuration line
// rather than a single range.
func foldNoBrokerPrices(block string) (*float64, *float64) {
	var lo, hi *float64
	for _, m := range noBrokerPriceRegex.FindAllStringSubmatch(block, -1) {
		lakhs := parser.ParsePriceLakhs(m[0])
		if lakhs == nil {
			continue
		}
		if lo == nil || *lakhs < *lo {
			lo = lakhs
		}
		if hi == nil || *lakhs > *hi {
			hi = lakhs
		}
	}
	return lo, hi
}

// mergeRawPass scans raw markup for "<project>, <locality>, Bangalore, India"
// pairs and appends the ones the DOM pass missed. Recovered records get a
// synthetic slug URL since the markup match carries none.
func (e *NoBrokerExtractor) mergeRawPass(records []repository.Property, document, status string) []repository.Property {
	seen := make(map[string]struct{}, len(records))
	for _, r := range records {
		seen[utils.NormalizeKey(r.Name)] = struct{}{}
	}

	for _, m := range noBrokerNameLocRegex.FindAllStringSubmatch(document, -1) {
		name := utils.CollapseWhitespace(m[1])
		if e.junk.IsJunkName(name) {
			continue
		}
		key := utils.NormalizeKey(name)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		locality := utils.Truncate(utils.CollapseWhitespace(m[2]), maxLocalityLen)
		syntheticURL := noBrokerSyntheticPrefix + slugify(name) + "-" + slugify(locality) + "-bangalore"
		records = append(records, repository.Property{
			ID:       repository.GeneratePropertyID(syntheticURL),
			Source:   repository.SourceNoBroker,
			Status:   status,
			Name:     utils.Truncate(name, maxNameLen),
			Builder:  parser.BuilderFromName(name),
			Locality: locality,
			URL:      syntheticURL,
		})
	}
	return records
}

func slugify(s string) string {
	s = strings.ToLower(utils.CollapseWhitespace(s))
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-':
			b.WriteByte('-')
		}
	}
	return strings.Trim(b.String(), "-")
}

// ParseNoBrokerDetail extracts overlay fields from a NoBroker project detail
// page.
func ParseNoBrokerDetail(page string) Overlay {
	text := utils.CollapseWhitespace(utils.StripTags(page))
	var o Overlay

	// NoBroker prints one price per configuration, so folding them wins
	// over range parsing whenever any amount is present.
	o.PriceMinLakhs, o.PriceMaxLakhs = foldNoBrokerPrices(text)
	if o.PriceMinLakhs == nil && o.PriceMaxLakhs == nil {
		o.PriceMinLakhs, o.PriceMaxLakhs = parser.ParsePriceRange(text)
	}

	if m := byBuilderRegex.FindStringSubmatch(text); m != nil {
		o.Builder = utils.Truncate(strings.TrimSpace(m[1]), maxBuilderLen)
	}
	if m := nearAddressRegex.FindStringSubmatch(text); m != nil {
		o.Locality = utils.Truncate(strings.TrimSpace(m[1]), maxLocalityLen)
	} else if loc := parser.LocalityFromText(text); loc != "" {
		o.Locality = loc
	}

	o.Status = statusFromText(text)

	if m := possessionInRegex.FindStringSubmatch(text); m != nil {
		o.Handover = strings.ReplaceAll(m[1], ",", "")
	} else if p := parser.ParsePossession(text); p != "" {
		o.Handover = p
	}

	if bhk := parser.ParseBHKLabel(text); bhk != "" {
		o.BHK = bhk
	} else {
		o.BHK = parser.ParseBHK(text)
	}
	return o
}

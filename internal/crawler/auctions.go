package crawler

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/propradar/go-property-crawler/internal/logger"
	"github.com/propradar/go-property-crawler/internal/parser"
	"github.com/propradar/go-property-crawler/internal/repository"
	"github.com/propradar/go-property-crawler/internal/utils"
)

var (
	auctionIDRegex       = regexp.MustCompile(`/properties/(\d+)`)
	reservePriceRegex    = regexp.MustCompile(`(?i)Reserve\s+Price[:\s]*([₹Rs.\s]*[\d,]+(?:\.\d+)?(?:\s*(?:Cr|Crore|Lakhs?|Lacs?))?)`)
	emdRegex             = regexp.MustCompile(`(?i)EMD(?:\s+Amount)?[:\s]*([₹Rs.\s]*[\d,]+(?:\.\d+)?(?:\s*(?:Cr|Crore|Lakhs?|Lacs?))?)`)
	bankNameRegex        = regexp.MustCompile(`(?i)\b([A-Z][A-Za-z\s]{2,40}Bank(?:\s+of\s+[A-Za-z]+)?)\b`)
	branchRegex          = regexp.MustCompile(`(?i)Branch\s*(?:Name)?[:\s]+([A-Za-z0-9][A-Za-z0-9\s,&\.'-]{2,60})`)
	contactPersonRegex   = regexp.MustCompile(`(?i)Contact\s*(?:Person)?[:\s]+([A-Za-z][A-Za-z\s\.]{2,40})`)
	contactMobileRegex   = regexp.MustCompile(`(?:\+91[\s-]?)?\b([6-9]\d{9})\b`)
	auctionDateTimeRegex = regexp.MustCompile(`(?i)Auction\s+Date(?:\s*(?:and|&)\s*Time)?[:\s]+(\d{1,2}[-/][A-Za-z0-9]{2,3}[-/]\d{2,4}(?:\s+\d{1,2}:\d{2}\s*(?:AM|PM)?)?)`)
	auctionStartRegex    = regexp.MustCompile(`(?i)(?:Auction\s+)?Start(?:s|\s+Date)?[:\s]+([0-9][\dA-Za-z\s,:/-]{4,30}?)(?:\s{2,}|$)`)
	auctionEndRegex      = regexp.MustCompile(`(?i)(?:Auction\s+)?End(?:s|\s+Date)?[:\s]+([0-9][\dA-Za-z\s,:/-]{4,30}?)(?:\s{2,}|$)`)
	auctionAddressRegex  = regexp.MustCompile(`(?i)(?:Property\s+)?Address[:\s]+([A-Za-z0-9][^|]{5,200}?)(?:\s{2,}|Reserve|EMD|$)`)
)

// Auction listing categories recognized in page text.
var auctionCategories = []string{
	"Flat", "House", "Plot", "Land", "Commercial", "Residential", "Industrial", "Shop", "Office",
}

// AuctionExtractor parses eauctionsindia bank-auction pages: listing pages
// yield numeric property ids, detail pages yield the full auction record.
type AuctionExtractor struct {
	logger *logger.Logger
}

func NewAuctionExtractor() *AuctionExtractor {
	return &AuctionExtractor{logger: logger.NewLogger("auction-extractor")}
}

// ExtractPropertyIDs collects the distinct numeric property ids referenced
// on a listing page, in document order.
func (e *AuctionExtractor) ExtractPropertyIDs(document string) []string {
	var ids []string
	seen := make(map[string]struct{})
	for _, m := range auctionIDRegex.FindAllStringSubmatch(document, -1) {
		if _, dup := seen[m[1]]; dup {
			continue
		}
		seen[m[1]] = struct{}{}
		ids = append(ids, m[1])
	}
	return ids
}

// ParseAuctionDetail builds an auction record from a property detail page.
// Returns nil when the page carries no recognizable title.
func (e *AuctionExtractor) ParseAuctionDetail(document, pageURL, propertyID string) *repository.AuctionProperty {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(document))
	if err != nil {
		e.logger.WithError(err).WithField("url", pageURL).Error("Failed to parse auction page")
		return nil
	}

	name := e.pageTitle(doc)
	if name == "" {
		return nil
	}

	text := utils.CollapseWhitespace(utils.StripTags(document))

	record := &repository.AuctionProperty{
		ID:     propertyID,
		Name:   utils.Truncate(name, maxNameLen),
		URL:    pageURL,
		SqFt:   parser.ParseSqFt(text),
		Source: repository.SourceEAuctions,
	}

	if m := reservePriceRegex.FindStringSubmatch(text); m != nil {
		record.PriceDisplay = utils.CollapseWhitespace(m[1])
		record.PriceLakhs = parser.ParsePriceLakhs(m[1])
	} else if display, lakhs := parser.ParseRupeeAmount(text); display != "" {
		record.PriceDisplay = display
		record.PriceLakhs = lakhs
	}
	if m := emdRegex.FindStringSubmatch(text); m != nil {
		record.EMDDisplay = utils.CollapseWhitespace(m[1])
		record.EMDLakhs = parser.ParsePriceLakhs(m[1])
	}

	if m := bankNameRegex.FindStringSubmatch(text); m != nil {
		record.BankName = utils.CollapseWhitespace(m[1])
	}
	if m := branchRegex.FindStringSubmatch(text); m != nil {
		record.BranchName = utils.Truncate(utils.CollapseWhitespace(m[1]), maxBuilderLen)
	}
	if m := contactPersonRegex.FindStringSubmatch(text); m != nil {
		record.ContactPerson = utils.CollapseWhitespace(m[1])
	}
	if m := contactMobileRegex.FindStringSubmatch(text); m != nil {
		record.ContactMobile = m[1]
	}
	if record.ContactPerson != "" || record.ContactMobile != "" {
		record.Contact = strings.TrimSpace(record.ContactPerson + " " + record.ContactMobile)
	}

	if m := auctionDateTimeRegex.FindStringSubmatch(text); m != nil {
		record.AuctionDateTime = utils.CollapseWhitespace(m[1])
	}
	if m := auctionStartRegex.FindStringSubmatch(text); m != nil {
		record.AuctionStart = utils.CollapseWhitespace(m[1])
	}
	if m := auctionEndRegex.FindStringSubmatch(text); m != nil {
		record.AuctionEnd = utils.CollapseWhitespace(m[1])
	}

	if m := auctionAddressRegex.FindStringSubmatch(text); m != nil {
		record.Address = utils.Truncate(utils.CollapseWhitespace(m[1]), maxNameLen)
	}
	record.Category = e.category(name + " " + text[:min(len(text), 600)])
	record.Description = utils.Truncate(text, 500)

	return record
}

// pageTitle prefers the detail page's own heading over the document title.
func (e *AuctionExtractor) pageTitle(doc *goquery.Document) string {
	for _, sel := range []string{"h1", "h2", "title"} {
		title := utils.CollapseWhitespace(doc.Find(sel).First().Text())
		if len(title) >= 5 {
			return title
		}
	}
	return ""
}

func (e *AuctionExtractor) category(text string) string {
	lower := strings.ToLower(text)
	for _, c := range auctionCategories {
		if strings.Contains(lower, strings.ToLower(c)) {
			return c
		}
	}
	return ""
}

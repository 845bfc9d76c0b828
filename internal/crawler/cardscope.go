package crawler

import (
	"regexp"

	"github.com/PuerkitoBio/goquery"

	"github.com/propradar/go-property-crawler/internal/logger"
	"github.com/propradar/go-property-crawler/internal/utils"
)

const (
	// Containers above this size span multiple cards and bleed fields
	// between neighbouring listings.
	cardTextCeiling = 5000

	// Containers below this size rarely carry more than the anchor itself.
	cardTextFloor = 80

	// Ancestor levels inspected before giving up on a single-card container.
	cardAncestorDepth = 6
)

// A price-shaped substring: "1.2 - 2.4 Cr", "45 - 80 L". Counting these in a
// container tells whether it wraps one card or a whole results column.
var priceShapeRegex = regexp.MustCompile(`(?i)[\d.]+[\s-]+[\d.]+\s*(?:L|Lakh|Lac|Cr)`)

// CardScoper walks up from a listing anchor and picks the smallest ancestor
// that still looks like a single listing card. Field parsers then run only on
// that container's text, so a neighbouring card's price or possession date
// cannot be attributed to this listing.
type CardScoper struct {
	logger *logger.Logger
}

func NewCardScoper() *CardScoper {
	return &CardScoper{logger: logger.NewLogger("card-scoper")}
}

// ScopeText returns the text of the card containing anchor. Selection order:
//  1. nearest ancestor whose text holds at most one price shape and at least
//     cardTextFloor characters
//  2. nearest ancestor with any price shape at all
//  3. the anchor's own text
func (s *CardScoper) ScopeText(anchor *goquery.Selection) string {
	ancestors := anchor.Parents().Filter("div, article, section, li")
	limit := ancestors.Length()
	if limit > cardAncestorDepth {
		limit = cardAncestorDepth
	}

	var firstWithPrice string
	for i := 0; i < limit; i++ {
		text := utils.CollapseWhitespace(ancestors.Eq(i).Text())
		if len(text) > cardTextCeiling {
			break
		}
		prices := len(priceShapeRegex.FindAllString(text, -1))
		if prices <= 1 && len(text) >= cardTextFloor {
			return text
		}
		if prices > 0 && firstWithPrice == "" {
			firstWithPrice = text
		}
	}
	if firstWithPrice != "" {
		return firstWithPrice
	}
	return utils.CollapseWhitespace(anchor.Text())
}

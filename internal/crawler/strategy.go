package crawler

import (
	"github.com/propradar/go-property-crawler/internal/logger"
	"github.com/propradar/go-property-crawler/internal/repository"
)

const (
	// A listing page that yields fewer records than this from the primary
	// strategy is suspected of hiding its cards from the DOM parser.
	minPrimaryYield = 3

	// Pages smaller than this are genuinely sparse, not obfuscated, and
	// never trigger escalation.
	minDocumentBytes = 5000
)

// ExtractionStrategy turns one fetched listing page into property records.
// Strategies are ordered by fidelity; lower-fidelity strategies run only
// when the ones before them under-deliver.
type ExtractionStrategy interface {
	Name() string
	Extract(document, baseURL, status string) []repository.Property
}

// StrategyChain runs strategies in order, escalating to the next one while
// the combined yield stays below minPrimaryYield and the document is large
// enough to plausibly hide listings. Records from later strategies never
// replace earlier ones for the same URL.
type StrategyChain struct {
	strategies []ExtractionStrategy
	logger     *logger.Logger
}

// NewStrategyChain builds the default chain: DOM first, raw-text fallback.
func NewStrategyChain() *StrategyChain {
	return &StrategyChain{
		strategies: []ExtractionStrategy{
			NewDOMExtractor(),
			NewRawTextExtractor(),
		},
		logger: logger.NewLogger("strategy-chain"),
	}
}

func (c *StrategyChain) Extract(document, baseURL, status string) []repository.Property {
	var records []repository.Property
	seen := make(map[string]struct{})

	for i, strategy := range c.strategies {
		if i > 0 {
			if len(records) >= minPrimaryYield || len(document) <= minDocumentBytes {
				break
			}
			c.logger.WithFields(map[string]interface{}{
				"strategy": strategy.Name(),
				"yield":    len(records),
				"bytes":    len(document),
			}).Info("Escalating to fallback extraction")
		}
		for _, record := range strategy.Extract(document, baseURL, status) {
			if _, dup := seen[record.URL]; dup {
				continue
			}
			seen[record.URL] = struct{}{}
			records = append(records, record)
		}
	}
	return records
}

package crawler

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/propradar/go-property-crawler/internal/config"
	"github.com/propradar/go-property-crawler/internal/logger"
	"github.com/propradar/go-property-crawler/internal/repository"
)

// Listing seeds, one per construction status. Page N of a seed lives at
// "<seed>-page-N".
var listingSeeds = []struct {
	Status string
	URL    string
}{
	{repository.StatusNewLaunch, "https://www.99acres.com/new-launch-projects-in-bangalore-ffid"},
	{repository.StatusUnderConstruction, "https://www.99acres.com/under-construction-projects-in-bangalore-ffid"},
	{repository.StatusReadyToMove, "https://www.99acres.com/ready-to-move-projects-in-bangalore-ffid"},
}

const (
	noBrokerSeed   = "https://www.nobroker.in/new-projects-in-bangalore"
	auctionSeed    = "https://www.eauctionsindia.com/cities/bangalore"
	auctionBaseURL = "https://www.eauctionsindia.com/properties/"
)

// CrawlStats summarizes one crawl run.
type CrawlStats struct {
	RunID        string        `json:"run_id"`
	PagesFetched int           `json:"pages_fetched"`
	Extracted    int           `json:"extracted"`
	Deduplicated int           `json:"deduplicated"`
	Verified     int           `json:"verified"`
	Enriched     bool          `json:"enriched"`
	FetchErrors  int           `json:"fetch_errors"`
	Duration     time.Duration `json:"duration"`
}

// Engine drives a full crawl: paginate each seed, extract, deduplicate
// across the whole run, verify, optionally enrich and verify again. Pages
// are crawled sequentially; the sites rate-limit aggressively and a polite
// single-stream crawl finishes well inside the schedule window.
type Engine struct {
	cfg      *config.Config
	fetcher  Fetcher
	chain    *StrategyChain
	noBroker *NoBrokerExtractor
	auctions *AuctionExtractor
	verifier *RecordVerifier
	enricher *DetailEnricher
	logger   *logger.Logger
}

func NewEngine(cfg *config.Config, fetcher Fetcher) *Engine {
	return &Engine{
		cfg:      cfg,
		fetcher:  fetcher,
		chain:    NewStrategyChain(),
		noBroker: NewNoBrokerExtractor(),
		auctions: NewAuctionExtractor(),
		verifier: NewRecordVerifier(),
		enricher: NewDetailEnricher(fetcher),
		logger:   logger.NewLogger("engine"),
	}
}

// CrawlProperties runs the builder-project pipeline and returns records
// ready to persist.
func (e *Engine) CrawlProperties(ctx context.Context) ([]repository.Property, *CrawlStats, error) {
	stats := &CrawlStats{RunID: uuid.New().String()}
	started := time.Now()
	e.logger.WithField("run_id", stats.RunID).Info("Starting property crawl")

	dedup := NewDeduplicator()
	var collected []repository.Property

	for _, seed := range listingSeeds {
		records, err := e.crawlSeed(ctx, seed.URL, seed.Status, e.chain.Extract, dedup, stats)
		if err != nil {
			return nil, stats, err
		}
		collected = append(collected, records...)
	}

	records, err := e.crawlSeed(ctx, noBrokerSeed, repository.StatusNewLaunch, e.noBroker.Extract, dedup, stats)
	if err != nil {
		return nil, stats, err
	}
	collected = append(collected, records...)

	stats.Deduplicated = len(collected)
	collected = e.verifier.VerifyAll(collected)
	stats.Verified = len(collected)

	if e.cfg.EnableEnrich {
		e.enricher.EnrichAll(ctx, collected)
		collected = e.verifier.VerifyAll(collected)
		stats.Enriched = true
	}

	stats.Duration = time.Since(started)
	e.logger.WithFields(map[string]interface{}{
		"run_id":   stats.RunID,
		"pages":    stats.PagesFetched,
		"verified": stats.Verified,
		"duration": stats.Duration.String(),
	}).Info("Property crawl finished")
	return collected, stats, nil
}

type extractFunc func(document, baseURL, status string) []repository.Property

// crawlSeed paginates one seed until a page yields nothing new, the page
// budget runs out or the context is cancelled. Fetch failures end the seed
// rather than the run.
func (e *Engine) crawlSeed(ctx context.Context, seed, status string, extract extractFunc, dedup *Deduplicator, stats *CrawlStats) ([]repository.Property, error) {
	var collected []repository.Property
	for page := 1; page <= e.cfg.MaxPages; page++ {
		if err := ctx.Err(); err != nil {
			return collected, err
		}

		pageURL := seed
		if page > 1 {
			pageURL = fmt.Sprintf("%s-page-%d", seed, page)
		}
		document, err := e.fetcher.Fetch(ctx, pageURL)
		if err != nil {
			stats.FetchErrors++
			e.logger.WithError(err).WithField("url", pageURL).Warn("Page fetch failed, ending seed")
			break
		}
		stats.PagesFetched++

		records := extract(document, pageURL, status)
		stats.Extracted += len(records)
		if len(records) == 0 {
			e.logger.WithFields(map[string]interface{}{
				"url":  pageURL,
				"page": page,
			}).Debug("Empty page, ending seed")
			break
		}
		collected = append(collected, dedup.Filter(records)...)
	}
	e.logger.WithFields(map[string]interface{}{
		"seed":    seed,
		"status":  status,
		"records": len(collected),
	}).Info("Seed crawl finished")
	return collected, nil
}

// CrawlAuctions runs the bank-auction pipeline: harvest property ids from
// listing pages, then fetch and parse each detail page.
func (e *Engine) CrawlAuctions(ctx context.Context) ([]repository.AuctionProperty, error) {
	e.logger.Info("Starting auction crawl")
	seen := make(map[string]struct{})
	var collected []repository.AuctionProperty

	for page := 1; page <= e.cfg.MaxAuctionPages; page++ {
		if err := ctx.Err(); err != nil {
			return collected, err
		}

		pageURL := auctionSeed
		if page > 1 {
			pageURL = fmt.Sprintf("%s?page=%d", auctionSeed, page)
		}
		document, err := e.fetcher.Fetch(ctx, pageURL)
		if err != nil {
			e.logger.WithError(err).WithField("url", pageURL).Warn("Auction page fetch failed")
			break
		}

		ids := e.auctions.ExtractPropertyIDs(document)
		fresh := 0
		for _, id := range ids {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			fresh++

			detailURL := auctionBaseURL + id
			detail, err := e.fetcher.Fetch(ctx, detailURL)
			if err != nil {
				e.logger.WithError(err).WithField("url", detailURL).Warn("Auction detail fetch failed")
				continue
			}
			record := e.auctions.ParseAuctionDetail(detail, detailURL, id)
			if record == nil {
				continue
			}
			collected = append(collected, *record)
		}
		if fresh == 0 {
			break
		}
	}

	e.logger.WithField("records", len(collected)).Info("Auction crawl finished")
	return collected, nil
}

// Sources lists the site tags a full crawl touches.
func (e *Engine) Sources() []string {
	return []string{repository.Source99Acres, repository.SourceNoBroker, repository.SourceEAuctions}
}

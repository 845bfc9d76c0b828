package fetcher

import (
	"context"
	"fmt"
	"time"

	"github.com/gocolly/colly/v2"
	"github.com/gocolly/colly/v2/extensions"

	"github.com/propradar/go-property-crawler/internal/config"
	"github.com/propradar/go-property-crawler/internal/logger"
)

// CollyFetcher fetches pages through a colly collector with rotating user
// agents, a fixed politeness delay between requests and bounded retries.
// Safe for sequential use only; the crawl engine is single-stream.
type CollyFetcher struct {
	base     *colly.Collector
	delay    time.Duration
	attempts int
	logger   *logger.Logger
}

func NewCollyFetcher(cfg *config.Config) *CollyFetcher {
	base := colly.NewCollector(
		colly.AllowURLRevisit(),
	)
	base.SetRequestTimeout(cfg.RequestTimeout)
	extensions.RandomUserAgent(base)
	extensions.Referer(base)

	attempts := cfg.RetryAttempts
	if attempts < 1 {
		attempts = 1
	}
	return &CollyFetcher{
		base:     base,
		delay:    cfg.RequestDelay,
		attempts: attempts,
		logger:   logger.NewLogger("fetcher"),
	}
}

// Fetch downloads one page, retrying transient failures. The politeness
// delay runs before every request including the first retry.
func (f *CollyFetcher) Fetch(ctx context.Context, url string) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= f.attempts; attempt++ {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(f.delay):
		}

		body, err := f.fetchOnce(url)
		if err == nil {
			return body, nil
		}
		lastErr = err
		f.logger.WithError(err).WithFields(map[string]interface{}{
			"url":     url,
			"attempt": attempt,
		}).Warn("Fetch attempt failed")
	}
	return "", fmt.Errorf("fetching %s after %d attempts: %w", url, f.attempts, lastErr)
}

func (f *CollyFetcher) fetchOnce(url string) (string, error) {
	c := f.base.Clone()

	var body string
	var fetchErr error
	c.OnResponse(func(r *colly.Response) {
		body = string(r.Body)
	})
	c.OnError(func(r *colly.Response, err error) {
		fetchErr = err
	})

	if err := c.Visit(url); err != nil {
		return "", err
	}
	c.Wait()
	if fetchErr != nil {
		return "", fetchErr
	}
	return body, nil
}

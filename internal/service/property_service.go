package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/propradar/go-property-crawler/internal/config"
	"github.com/propradar/go-property-crawler/internal/crawler"
	"github.com/propradar/go-property-crawler/internal/logger"
	"github.com/propradar/go-property-crawler/internal/repository"
)

// PropertyService owns the crawl lifecycle: it runs the engine, persists the
// results and answers read queries. At most one crawl runs at a time.
type PropertyService struct {
	cfg         *config.Config
	engine      *crawler.Engine
	properties  repository.PropertyRepository
	auctions    repository.AuctionRepository
	cron        *cron.Cron
	crawlActive bool
	mu          sync.Mutex
	logger      *logger.Logger
}

func NewPropertyService(cfg *config.Config, engine *crawler.Engine, properties repository.PropertyRepository, auctions repository.AuctionRepository) *PropertyService {
	return &PropertyService{
		cfg:        cfg,
		engine:     engine,
		properties: properties,
		auctions:   auctions,
		logger:     logger.NewLogger("property-service"),
	}
}

// ForceCrawling runs the full pipeline now: properties, then auctions, each
// saved as soon as its crawl finishes. Returns the run's stats.
func (s *PropertyService) ForceCrawling(ctx context.Context) (*crawler.CrawlStats, error) {
	s.mu.Lock()
	if s.crawlActive {
		s.mu.Unlock()
		return nil, fmt.Errorf("a crawl is already running")
	}
	s.crawlActive = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.crawlActive = false
		s.mu.Unlock()
	}()

	properties, stats, err := s.engine.CrawlProperties(ctx)
	if err != nil {
		return stats, fmt.Errorf("crawling properties: %w", err)
	}
	if err := s.properties.SaveAll(ctx, properties); err != nil {
		return stats, fmt.Errorf("saving properties: %w", err)
	}
	s.logger.WithField("count", len(properties)).Info("Properties saved")

	auctionRecords, err := s.engine.CrawlAuctions(ctx)
	if err != nil {
		return stats, fmt.Errorf("crawling auctions: %w", err)
	}
	if err := s.auctions.SaveAllAuctions(ctx, auctionRecords); err != nil {
		return stats, fmt.Errorf("saving auctions: %w", err)
	}
	s.logger.WithField("count", len(auctionRecords)).Info("Auctions saved")

	return stats, nil
}

// StartScheduler begins periodic crawls per CRAWL_SCHEDULE. No-op when the
// schedule is empty.
func (s *PropertyService) StartScheduler(ctx context.Context) error {
	if s.cfg.CrawlSchedule == "" {
		s.logger.Info("No crawl schedule configured")
		return nil
	}

	s.cron = cron.New()
	_, err := s.cron.AddFunc(s.cfg.CrawlSchedule, func() {
		if _, err := s.ForceCrawling(ctx); err != nil {
			s.logger.WithError(err).Error("Scheduled crawl failed")
		}
	})
	if err != nil {
		return fmt.Errorf("invalid crawl schedule %q: %w", s.cfg.CrawlSchedule, err)
	}
	s.cron.Start()
	s.logger.WithField("schedule", s.cfg.CrawlSchedule).Info("Crawl scheduler started")
	return nil
}

// StopScheduler stops periodic crawls and waits for a running job to finish.
func (s *PropertyService) StopScheduler() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
}

// GetAllProperties returns every stored builder project.
func (s *PropertyService) GetAllProperties(ctx context.Context) ([]repository.Property, error) {
	return s.properties.FindAll(ctx)
}

// SearchProperties runs a filtered, paginated query.
func (s *PropertyService) SearchProperties(ctx context.Context, filter repository.PropertyFilter, pagination repository.PaginationParams) (*repository.PropertySearchResult, error) {
	if pagination.Page < 1 {
		pagination.Page = 1
	}
	if pagination.PageSize < 1 || pagination.PageSize > 100 {
		pagination.PageSize = 20
	}
	return s.properties.FindWithFilters(ctx, filter, pagination)
}

// GetAllAuctions returns every stored auction record.
func (s *PropertyService) GetAllAuctions(ctx context.Context) ([]repository.AuctionProperty, error) {
	return s.auctions.FindAllAuctions(ctx)
}

// ClearProperties wipes the property store.
func (s *PropertyService) ClearProperties(ctx context.Context) error {
	return s.properties.ClearAll(ctx)
}

// IsCrawlActive reports whether a crawl is currently running.
func (s *PropertyService) IsCrawlActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.crawlActive
}

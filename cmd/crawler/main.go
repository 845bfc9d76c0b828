package main

import (
	"context"
	"flag"
	"log"

	"github.com/joho/godotenv"

	"github.com/propradar/go-property-crawler/internal/config"
	"github.com/propradar/go-property-crawler/internal/crawler"
	"github.com/propradar/go-property-crawler/internal/fetcher"
	"github.com/propradar/go-property-crawler/internal/repository"
	"github.com/propradar/go-property-crawler/internal/service"
)

func main() {
	quick := flag.Bool("quick", false, "crawl only the first few pages per seed")
	maxPages := flag.Int("max-pages", 0, "override the page budget per seed")
	enrich := flag.Bool("enrich", false, "fetch each listing's detail page for richer fields")
	clearStore := flag.Bool("clear", false, "wipe stored properties before crawling")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: no .env file found, using environment defaults")
	}
	cfg := config.LoadConfig()

	if *quick {
		cfg.MaxPages = 3
		cfg.MaxAuctionPages = 2
	}
	if *maxPages > 0 {
		cfg.MaxPages = *maxPages
	}
	if *enrich {
		cfg.EnableEnrich = true
	}

	repo := buildRepository(cfg)
	defer repo.Close()

	ctx := context.Background()
	if *clearStore {
		if err := repo.ClearAll(ctx); err != nil {
			log.Fatalf("Failed to clear stored properties: %v", err)
		}
		log.Println("Stored properties cleared")
	}

	engine := crawler.NewEngine(cfg, fetcher.NewCollyFetcher(cfg))
	propertyService := service.NewPropertyService(cfg, engine, repo, repo)

	stats, err := propertyService.ForceCrawling(ctx)
	if err != nil {
		log.Fatalf("Crawl failed: %v", err)
	}
	if stats.Verified == 0 {
		log.Println("Crawl finished with zero records; check the fetch log for blocks or layout changes")
		return
	}
	log.Printf("Crawl %s finished: %d pages, %d records saved", stats.RunID, stats.PagesFetched, stats.Verified)
}

type fullRepository interface {
	repository.PropertyRepository
	repository.AuctionRepository
}

// buildRepository prefers MongoDB and falls back to the JSON file store when
// Mongo is unreachable, so a local run needs no infrastructure.
func buildRepository(cfg *config.Config) fullRepository {
	repo, err := repository.NewMongoRepository(cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		log.Printf("MongoDB unavailable (%v), using JSON files %s and %s", err, cfg.OutputFile, cfg.AuctionFile)
		return repository.NewJSONRepository(cfg.OutputFile, cfg.AuctionFile)
	}
	return repo
}

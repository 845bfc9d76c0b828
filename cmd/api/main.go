package main

import (
	"context"
	"log"
	"net/http"

	"github.com/joho/godotenv"

	"github.com/propradar/go-property-crawler/api"
	"github.com/propradar/go-property-crawler/internal/config"
	"github.com/propradar/go-property-crawler/internal/crawler"
	"github.com/propradar/go-property-crawler/internal/fetcher"
	"github.com/propradar/go-property-crawler/internal/repository"
	"github.com/propradar/go-property-crawler/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: no .env file found, using environment defaults")
	}
	cfg := config.LoadConfig()

	repo, err := repository.NewMongoRepository(cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		log.Fatalf("Failed to create MongoDB repository: %v", err)
	}
	defer repo.Close()

	engine := crawler.NewEngine(cfg, fetcher.NewCollyFetcher(cfg))
	propertyService := service.NewPropertyService(cfg, engine, repo, repo)

	if err := propertyService.StartScheduler(context.Background()); err != nil {
		log.Fatalf("Failed to start crawl scheduler: %v", err)
	}
	defer propertyService.StopScheduler()

	router := api.SetupRouter(propertyService)

	log.Printf("Starting server on port %s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

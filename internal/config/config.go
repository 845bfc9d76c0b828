package config

import (
	"log"
	"time"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	Port            string        `env:"PORT" envDefault:"8080"`
	MongoURI        string        `env:"MONGO_URI" envDefault:"mongodb://localhost:27017"`
	MongoDatabase   string        `env:"MONGO_DATABASE" envDefault:"propradar"`
	OutputFile      string        `env:"OUTPUT_FILE" envDefault:"data/properties.json"`
	AuctionFile     string        `env:"AUCTION_FILE" envDefault:"data/auctions.json"`
	MaxPages        int           `env:"MAX_PAGES" envDefault:"999"`
	RequestDelay    time.Duration `env:"REQUEST_DELAY" envDefault:"2s"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" envDefault:"60s"`
	DetailTimeout   time.Duration `env:"DETAIL_TIMEOUT" envDefault:"10s"`
	RetryAttempts   int           `env:"RETRY_ATTEMPTS" envDefault:"3"`
	EnableEnrich    bool          `env:"ENABLE_ENRICH" envDefault:"false"`
	CrawlSchedule   string        `env:"CRAWL_SCHEDULE" envDefault:""`
	MaxAuctionPages int           `env:"MAX_AUCTION_PAGES" envDefault:"50"`
}

func LoadConfig() *Config {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		log.Fatalf("Failed to load environment variables: %v", err)
	}
	return cfg
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg := LoadConfig()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "propradar", cfg.MongoDatabase)
	assert.Equal(t, 999, cfg.MaxPages)
	assert.Equal(t, 2*time.Second, cfg.RequestDelay)
	assert.Equal(t, 3, cfg.RetryAttempts)
	assert.False(t, cfg.EnableEnrich)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("MAX_PAGES", "5")
	t.Setenv("ENABLE_ENRICH", "true")
	t.Setenv("CRAWL_SCHEDULE", "0 3 * * *")

	cfg := LoadConfig()
	assert.Equal(t, 5, cfg.MaxPages)
	assert.True(t, cfg.EnableEnrich)
	assert.Equal(t, "0 3 * * *", cfg.CrawlSchedule)
}

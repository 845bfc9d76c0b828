package crawler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propradar/go-property-crawler/internal/repository"
)

func TestDeduplicator_FirstRecordWins(t *testing.T) {
	dedup := NewDeduplicator()

	first := dedup.Filter([]repository.Property{
		{Name: "Prestige Suncrest", URL: "https://www.99acres.com/a-npxid-r1"},
		{Name: "Sobha Dream Acres", URL: "https://www.99acres.com/b-npxid-r2"},
	})
	require.Len(t, first, 2)

	// a later page repeats one URL with different data
	second := dedup.Filter([]repository.Property{
		{Name: "Prestige Suncrest Phase 2", URL: "https://www.99acres.com/a-npxid-r1"},
		{Name: "Godrej Park Retreat", URL: "https://www.99acres.com/c-npxid-r3"},
	})
	require.Len(t, second, 1)
	assert.Equal(t, "Godrej Park Retreat", second[0].Name)

	assert.True(t, dedup.Seen("https://www.99acres.com/a-npxid-r1"))
	assert.False(t, dedup.Seen("https://www.99acres.com/z-npxid-r9"))
	assert.Equal(t, 3, dedup.Count())
}

func TestDeduplicator_DuplicatesWithinOneBatch(t *testing.T) {
	dedup := NewDeduplicator()

	kept := dedup.Filter([]repository.Property{
		{Name: "First Sighting", URL: "https://www.99acres.com/a-npxid-r1"},
		{Name: "Second Sighting", URL: "https://www.99acres.com/a-npxid-r1"},
	})
	require.Len(t, kept, 1)
	assert.Equal(t, "First Sighting", kept[0].Name)
}

package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lakhs(v float64) *float64 { return &v }

func handoverYear(v int) *int { return &v }

func newTestRepository(t *testing.T) *JSONRepository {
	t.Helper()
	dir := t.TempDir()
	return NewJSONRepository(filepath.Join(dir, "properties.json"), filepath.Join(dir, "auctions.json"))
}

func TestJSONRepository_SaveAndFindAll(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	saved := []Property{
		{ID: "r1", Name: "Prestige Suncrest", Source: Source99Acres, URL: "https://www.99acres.com/a-npxid-r1"},
		{ID: "r2", Name: "Godrej Park Retreat", Source: Source99Acres, URL: "https://www.99acres.com/b-npxid-r2"},
	}
	require.NoError(t, repo.SaveAll(ctx, saved))

	loaded, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "Prestige Suncrest", loaded[0].Name)
	assert.Equal(t, "Godrej Park Retreat", loaded[1].Name)
}

func TestJSONRepository_FindAll_MissingFile(t *testing.T) {
	repo := newTestRepository(t)

	loaded, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestJSONRepository_ClearAll(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.SaveAll(ctx, []Property{{ID: "r1", Name: "Prestige Suncrest"}}))
	require.NoError(t, repo.ClearAll(ctx))

	loaded, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestJSONRepository_SaveAndFindAuctions(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.SaveAllAuctions(ctx, []AuctionProperty{
		{ID: "101", Name: "Residential Flat in Whitefield", Source: SourceEAuctions},
	}))

	loaded, err := repo.FindAllAuctions(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "101", loaded[0].ID)
}

func TestJSONRepository_FindWithFilters(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.SaveAll(ctx, []Property{
		{
			ID: "r1", Name: "Prestige Suncrest", Builder: "Prestige", Locality: "Electronic City",
			Status: StatusNewLaunch, Source: Source99Acres, BHK: "1, 2, 3",
			PriceMinLakhs: lakhs(71), PriceMaxLakhs: lakhs(211), HandoverYear: handoverYear(2026),
		},
		{
			ID: "r2", Name: "Godrej Park Retreat", Builder: "Godrej", Locality: "Hennur",
			Status: StatusReadyToMove, Source: Source99Acres, BHK: "2",
			PriceMinLakhs: lakhs(48), PriceMaxLakhs: lakhs(95),
		},
		{
			ID: "r3", Name: "Sattva Songbird", Builder: "Sattva Group", Locality: "Chikkanahalli",
			Status: StatusNewLaunch, Source: SourceNoBroker, BHK: "1,2,3",
			PriceMinLakhs: lakhs(45.5), PriceMaxLakhs: lakhs(120), HandoverYear: handoverYear(2027),
		},
	}))

	tests := []struct {
		name    string
		filter  PropertyFilter
		wantIDs []string
	}{
		{
			name:    "no filter returns all",
			filter:  PropertyFilter{},
			wantIDs: []string{"r1", "r2", "r3"},
		},
		{
			name:    "locality is case insensitive substring",
			filter:  PropertyFilter{Locality: "electronic"},
			wantIDs: []string{"r1"},
		},
		{
			name:    "status exact match",
			filter:  PropertyFilter{Status: StatusReadyToMove},
			wantIDs: []string{"r2"},
		},
		{
			name:    "source membership",
			filter:  PropertyFilter{Sources: []string{SourceNoBroker}},
			wantIDs: []string{"r3"},
		},
		{
			name:    "price floor excludes cheaper projects",
			filter:  PropertyFilter{PriceMinLakhs: 100},
			wantIDs: []string{"r1", "r3"},
		},
		{
			name:    "price ceiling excludes dearer projects",
			filter:  PropertyFilter{PriceMaxLakhs: 50},
			wantIDs: []string{"r2", "r3"},
		},
		{
			name:    "handover year cutoff",
			filter:  PropertyFilter{HandoverYear: 2026},
			wantIDs: []string{"r1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := repo.FindWithFilters(ctx, tt.filter, PaginationParams{Page: 1, PageSize: 10})
			require.NoError(t, err)

			var gotIDs []string
			for _, p := range result.Properties {
				gotIDs = append(gotIDs, p.ID)
			}
			assert.Equal(t, tt.wantIDs, gotIDs)
		})
	}
}

func TestJSONRepository_Pagination(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	properties := make([]Property, 0, 5)
	for _, id := range []string{"r1", "r2", "r3", "r4", "r5"} {
		properties = append(properties, Property{ID: id, Name: "Project " + id})
	}
	require.NoError(t, repo.SaveAll(ctx, properties))

	result, err := repo.FindWithFilters(ctx, PropertyFilter{}, PaginationParams{Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), result.TotalItems)
	assert.Equal(t, 3, result.TotalPages)
	require.Len(t, result.Properties, 2)
	assert.Equal(t, "r3", result.Properties[0].ID)
	assert.Equal(t, "r4", result.Properties[1].ID)
}

func TestGeneratePropertyID(t *testing.T) {
	id := GeneratePropertyID("https://www.99acres.com/prestige-suncrest-electronic-city-bangalore-south-npxid-r439895")
	assert.Equal(t, "thnpxidr439895", id)
	assert.Len(t, id, 14)

	// identical URLs always produce the same id
	assert.Equal(t, id, GeneratePropertyID("https://www.99acres.com/prestige-suncrest-electronic-city-bangalore-south-npxid-r439895"))
}

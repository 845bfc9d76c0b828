package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/propradar/go-property-crawler/internal/config"
	"github.com/propradar/go-property-crawler/internal/crawler"
	"github.com/propradar/go-property-crawler/internal/repository"
)

// Mock repository covering both the property and auction interfaces
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) SaveAll(ctx context.Context, properties []repository.Property) error {
	args := m.Called(ctx, properties)
	return args.Error(0)
}

func (m *MockRepository) FindAll(ctx context.Context) ([]repository.Property, error) {
	args := m.Called(ctx)
	return args.Get(0).([]repository.Property), args.Error(1)
}

func (m *MockRepository) FindWithFilters(ctx context.Context, filter repository.PropertyFilter, pagination repository.PaginationParams) (*repository.PropertySearchResult, error) {
	args := m.Called(ctx, filter, pagination)
	return args.Get(0).(*repository.PropertySearchResult), args.Error(1)
}

func (m *MockRepository) ClearAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockRepository) Close() {
	m.Called()
}

func (m *MockRepository) SaveAllAuctions(ctx context.Context, auctions []repository.AuctionProperty) error {
	args := m.Called(ctx, auctions)
	return args.Error(0)
}

func (m *MockRepository) FindAllAuctions(ctx context.Context) ([]repository.AuctionProperty, error) {
	args := m.Called(ctx)
	return args.Get(0).([]repository.AuctionProperty), args.Error(1)
}

// stubFetcher serves canned pages; every other URL fails, which ends the
// crawl of that seed.
type stubFetcher struct {
	pages map[string]string
}

func (f *stubFetcher) Fetch(_ context.Context, url string) (string, error) {
	page, ok := f.pages[url]
	if !ok {
		return "", errors.New("page not found")
	}
	return page, nil
}

const seedPageHTML = `<html><body>
<div class="card">
  <a href="/prestige-suncrest-electronic-city-bangalore-south-npxid-r439895">View details</a>
  <span>₹ 0.71 - 2.11 Cr</span>
  <p>1, 2, 3 BHK Apartment. Possession: Dec 2026. Premium homes near the metro station.</p>
</div>
<div class="card">
  <a href="/godrej-park-retreat-hennur-bangalore-north-npxid-r123456">View details</a>
  <span>48 Lakhs onwards</span>
  <p>2 BHK Apartment. Ready to move homes surrounded by parkland and lakes nearby.</p>
</div>
</body></html>`

func testConfig() *config.Config {
	return &config.Config{
		MaxPages:        2,
		MaxAuctionPages: 1,
	}
}

func TestPropertyService_ForceCrawling(t *testing.T) {
	fetcher := &stubFetcher{pages: map[string]string{
		"https://www.99acres.com/new-launch-projects-in-bangalore-ffid": seedPageHTML,
	}}
	engine := crawler.NewEngine(testConfig(), fetcher)

	mockRepo := &MockRepository{}
	mockRepo.On("SaveAll", mock.Anything, mock.Anything).Return(nil)
	mockRepo.On("SaveAllAuctions", mock.Anything, mock.Anything).Return(nil)

	svc := NewPropertyService(testConfig(), engine, mockRepo, mockRepo)

	stats, err := svc.ForceCrawling(context.Background())
	require.NoError(t, err)
	require.NotNil(t, stats)
	assert.Equal(t, 2, stats.Verified)
	assert.Equal(t, 1, stats.PagesFetched)
	assert.NotEmpty(t, stats.RunID)

	mockRepo.AssertCalled(t, "SaveAll", mock.Anything, mock.MatchedBy(func(props []repository.Property) bool {
		return len(props) == 2
	}))
	mockRepo.AssertCalled(t, "SaveAllAuctions", mock.Anything, mock.Anything)
	assert.False(t, svc.IsCrawlActive())
}

func TestPropertyService_ForceCrawling_SaveFailure(t *testing.T) {
	fetcher := &stubFetcher{pages: map[string]string{}}
	engine := crawler.NewEngine(testConfig(), fetcher)

	mockRepo := &MockRepository{}
	mockRepo.On("SaveAll", mock.Anything, mock.Anything).Return(errors.New("mongo down"))

	svc := NewPropertyService(testConfig(), engine, mockRepo, mockRepo)

	_, err := svc.ForceCrawling(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "saving properties")
	assert.False(t, svc.IsCrawlActive())
}

func TestPropertyService_SearchProperties_DefaultsPagination(t *testing.T) {
	mockRepo := &MockRepository{}
	expected := &repository.PropertySearchResult{CurrentPage: 1, PageSize: 20}
	mockRepo.On("FindWithFilters", mock.Anything, mock.Anything, repository.PaginationParams{Page: 1, PageSize: 20}).
		Return(expected, nil)

	svc := NewPropertyService(testConfig(), nil, mockRepo, mockRepo)

	result, err := svc.SearchProperties(context.Background(), repository.PropertyFilter{}, repository.PaginationParams{Page: 0, PageSize: 500})
	require.NoError(t, err)
	assert.Equal(t, expected, result)
	mockRepo.AssertExpectations(t)
}

func TestPropertyService_GetAllProperties(t *testing.T) {
	mockRepo := &MockRepository{}
	stored := []repository.Property{{Name: "Prestige Suncrest"}}
	mockRepo.On("FindAll", mock.Anything).Return(stored, nil)

	svc := NewPropertyService(testConfig(), nil, mockRepo, mockRepo)

	properties, err := svc.GetAllProperties(context.Background())
	require.NoError(t, err)
	assert.Equal(t, stored, properties)
}

func TestPropertyService_StartScheduler_InvalidSchedule(t *testing.T) {
	cfg := testConfig()
	cfg.CrawlSchedule = "not a cron expression"

	svc := NewPropertyService(cfg, nil, &MockRepository{}, &MockRepository{})

	err := svc.StartScheduler(context.Background())
	require.Error(t, err)
}

func TestPropertyService_StartScheduler_NoSchedule(t *testing.T) {
	svc := NewPropertyService(testConfig(), nil, &MockRepository{}, &MockRepository{})
	assert.NoError(t, svc.StartScheduler(context.Background()))
}

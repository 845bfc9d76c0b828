package crawler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propradar/go-property-crawler/internal/repository"
)

func TestAuctionExtractor_ExtractPropertyIDs(t *testing.T) {
	extractor := NewAuctionExtractor()

	page := `<html><body>
		<a href="/properties/101">Flat in Whitefield</a>
		<a href="/properties/205">Plot in Devanahalli</a>
		<a href="/properties/101">Flat in Whitefield (again)</a>
		<a href="/cities/bangalore">Bangalore</a>
	</body></html>`

	ids := extractor.ExtractPropertyIDs(page)
	assert.Equal(t, []string{"101", "205"}, ids)
}

func TestAuctionExtractor_ExtractPropertyIDs_Empty(t *testing.T) {
	extractor := NewAuctionExtractor()
	assert.Empty(t, extractor.ExtractPropertyIDs("<html><body>no auctions today</body></html>"))
}

func TestAuctionExtractor_ParseAuctionDetail(t *testing.T) {
	extractor := NewAuctionExtractor()

	page := `<html><head><title>eauctionsindia</title></head><body>
		<h1>Residential Flat in Whitefield Bangalore</h1>
		<p>Reserve Price: ₹ 36,90,000.00</p>
		<p>EMD Amount: ₹ 3,69,000.00</p>
		<p>Canara Bank</p>
		<p>Branch Name: Whitefield Branch</p>
		<p>Contact Person: Ramesh Kumar</p>
		<p>Mobile: +91 9876543210</p>
		<p>Auction Date and Time: 15-Sep-2026 11:00 AM</p>
		<p>Property Address: Flat 402, Sunrise Towers, Whitefield</p>
		<p>Built-up area 1,250 sq ft</p>
	</body></html>`

	record := extractor.ParseAuctionDetail(page, "https://www.eauctionsindia.com/properties/101", "101")
	require.NotNil(t, record)

	assert.Equal(t, "101", record.ID)
	assert.Equal(t, "Residential Flat in Whitefield Bangalore", record.Name)
	assert.Equal(t, repository.SourceEAuctions, record.Source)
	assert.Equal(t, "https://www.eauctionsindia.com/properties/101", record.URL)

	assert.Contains(t, record.PriceDisplay, "36,90,000")
	require.NotNil(t, record.PriceLakhs)
	assert.InDelta(t, 36.9, *record.PriceLakhs, 0.001)
	require.NotNil(t, record.EMDLakhs)
	assert.InDelta(t, 3.69, *record.EMDLakhs, 0.001)

	assert.Equal(t, "Canara Bank", record.BankName)
	assert.Contains(t, record.BranchName, "Whitefield")
	assert.Contains(t, record.ContactPerson, "Ramesh")
	assert.Equal(t, "9876543210", record.ContactMobile)
	assert.NotEmpty(t, record.Contact)
	assert.Contains(t, record.AuctionDateTime, "15-Sep-2026")
	assert.Contains(t, record.Address, "Sunrise Towers")
	assert.Equal(t, "1,250", record.SqFt)
	assert.Equal(t, "Flat", record.Category)
}

func TestAuctionExtractor_ParseAuctionDetail_NoTitle(t *testing.T) {
	extractor := NewAuctionExtractor()
	record := extractor.ParseAuctionDetail("<html><body><p>x</p></body></html>", "https://www.eauctionsindia.com/properties/9", "9")
	assert.Nil(t, record)
}

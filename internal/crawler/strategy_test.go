package crawler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propradar/go-property-crawler/internal/repository"
)

// scriptedPage buries listing URLs in a script payload and pads the document
// past the escalation size threshold.
func scriptedPage() string {
	payload := `<script>var data = {
		"cards": [
			{"url": "https://www.99acres.com/prestige-suncrest-electronic-city-bangalore-south-npxid-r439895",
			 "price": "0.71 - 2.11 Cr", "possession": "Possession: Dec 2026", "config": "1, 2, 3 BHK"},
			{"url": "/godrej-park-retreat-hennur-bangalore-north-npxid-r123456",
			 "price": "48 Lakhs onwards"}
		]
	};</script>`
	return "<html><body>" + payload + strings.Repeat("<!-- filler -->", 400) + "</body></html>"
}

func TestStrategyChain_EscalatesOnThinYield(t *testing.T) {
	chain := NewStrategyChain()

	page := scriptedPage()
	require.Greater(t, len(page), minDocumentBytes)

	records := chain.Extract(page, "https://www.99acres.com/new-launch-projects-in-bangalore-ffid", repository.StatusNewLaunch)
	require.Len(t, records, 2)

	byURL := make(map[string]repository.Property, len(records))
	for _, r := range records {
		byURL[r.URL] = r
	}

	prestige, ok := byURL["https://www.99acres.com/prestige-suncrest-electronic-city-bangalore-south-npxid-r439895"]
	require.True(t, ok)
	assert.Equal(t, "Prestige Suncrest", prestige.Name)
	assert.Equal(t, "Electronic City", prestige.Locality)
	require.NotNil(t, prestige.PriceMinLakhs)
	assert.InDelta(t, 71, *prestige.PriceMinLakhs, 0.001)

	godrej, ok := byURL["https://www.99acres.com/godrej-park-retreat-hennur-bangalore-north-npxid-r123456"]
	require.True(t, ok)
	assert.Equal(t, "Godrej Park Retreat", godrej.Name)
}

func TestStrategyChain_NoEscalationOnSmallPages(t *testing.T) {
	chain := NewStrategyChain()

	// small page, zero DOM yield: the raw fallback must not run
	page := `<html><body><script>
		"https://www.99acres.com/prestige-suncrest-electronic-city-bangalore-south-npxid-r439895"
	</script></body></html>`
	require.Less(t, len(page), minDocumentBytes)

	records := chain.Extract(page, "https://www.99acres.com/x", repository.StatusNewLaunch)
	assert.Empty(t, records)
}

func TestStrategyChain_NoEscalationOnHealthyYield(t *testing.T) {
	chain := NewStrategyChain()

	var cards strings.Builder
	cards.WriteString("<html><body>")
	for _, slug := range []string{
		"/prestige-suncrest-electronic-city-bangalore-south-npxid-r1",
		"/godrej-park-retreat-hennur-bangalore-north-npxid-r2",
		"/sobha-dream-acres-panathur-bangalore-east-npxid-r3",
	} {
		cards.WriteString(`<div class="card"><a href="` + slug + `">View details</a><span>₹ 0.85 - 1.40 Cr</span></div>`)
	}
	// hide an extra URL in a script; it must stay invisible
	cards.WriteString(`<script>"https://www.99acres.com/hidden-project-varthur-bangalore-east-npxid-r4"</script>`)
	cards.WriteString(strings.Repeat("<!-- filler -->", 400))
	cards.WriteString("</body></html>")

	records := chain.Extract(cards.String(), "https://www.99acres.com/x", repository.StatusNewLaunch)
	require.Len(t, records, 3)
	for _, r := range records {
		assert.NotContains(t, r.URL, "hidden-project")
	}
}

package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNameAndLocalityFromPath(t *testing.T) {
	tests := []struct {
		name         string
		href         string
		wantName     string
		wantLocality string
	}{
		{
			name:         "known two-word locality",
			href:         "https://www.99acres.com/prestige-suncrest-electronic-city-bangalore-south-npxid-r439895",
			wantName:     "Prestige Suncrest",
			wantLocality: "Electronic City",
		},
		{
			name:         "single segment locality",
			href:         "/godrej-park-retreat-hennur-bangalore-north-npxid-r123456",
			wantName:     "Godrej Park Retreat",
			wantLocality: "Hennur",
		},
		{
			name:         "known locality wins over generic split",
			href:         "/sobha-dream-acres-sarjapur-road-bangalore-east-npxid-r777777",
			wantName:     "Sobha Dream Acres",
			wantLocality: "Sarjapur Road",
		},
		{
			name:         "query string ignored",
			href:         "/brigade-cornerstone-utopia-varthur-bangalore-east-npxid-r88888?src=srp",
			wantName:     "Brigade Cornerstone Utopia",
			wantLocality: "Varthur",
		},
		{
			name:         "no identifier marker",
			href:         "/new-launch-projects-in-bangalore-ffid",
			wantName:     "",
			wantLocality: "",
		},
		{
			name:         "marker but no city token",
			href:         "/lodha-belmondo-pune-west-npxid-r555555",
			wantName:     "",
			wantLocality: "",
		},
		{
			name:         "slug without zone keeps full name",
			href:         "/purva-atmosphere-bangalore-npxid-r222222",
			wantName:     "Purva Atmosphere Bangalore",
			wantLocality: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotName, gotLocality := NameAndLocalityFromPath(tt.href)
			assert.Equal(t, tt.wantName, gotName)
			assert.Equal(t, tt.wantLocality, gotLocality)
		})
	}
}

func TestNameFromSlug(t *testing.T) {
	tests := []struct {
		name string
		href string
		want string
	}{
		{
			name: "city token only in the directory",
			href: "/bangalore/purva-towers-npxid-r999",
			want: "Purva Towers",
		},
		{
			name: "absolute url with query string",
			href: "https://www.99acres.com/shriram-chirping-grove-npxid-r1234?src=srp",
			want: "Shriram Chirping Grove",
		},
		{
			name: "no identifier marker",
			href: "/new-launch-projects-in-bangalore-ffid",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NameFromSlug(tt.href))
		})
	}
}

func TestLocalityFromText(t *testing.T) {
	assert.Equal(t, "Panathur", LocalityFromText("2 BHK from ₹ 85 L, Panathur, Bangalore East"))
	assert.Equal(t, "", LocalityFromText("2 BHK apartments with clubhouse"))
}

func TestBuilderFromName(t *testing.T) {
	assert.Equal(t, "Prestige", BuilderFromName("Prestige Suncrest"))
	assert.Equal(t, "Sobha", BuilderFromName("Sobha Dream Acres"))
	assert.Equal(t, "", BuilderFromName("  "))
}

package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRupeeAmount(t *testing.T) {
	display, lakhs := ParseRupeeAmount("Reserve Price ₹ 36,90,000.00 only")
	assert.Equal(t, "₹ 36,90,000.00", display)
	require.NotNil(t, lakhs)
	assert.InDelta(t, 36.9, *lakhs, 0.001)

	display, lakhs = ParseRupeeAmount("no amount here")
	assert.Equal(t, "", display)
	assert.Nil(t, lakhs)
}

func TestParsePriceLakhs(t *testing.T) {
	tests := []struct {
		name string
		text string
		want *float64
	}{
		{
			name: "crore figure",
			text: "₹ 1.2 Cr",
			want: f64(120),
		},
		{
			name: "lakh figure",
			text: "Rs. 45.5 Lakh",
			want: f64(45.5),
		},
		{
			name: "grouped rupee figure",
			text: "₹36,90,000.00",
			want: f64(36.9),
		},
		{
			name: "empty",
			text: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParsePriceLakhs(tt.text)
			assertPrice(t, tt.want, got)
		})
	}
}

func TestParseSqFt(t *testing.T) {
	assert.Equal(t, "1,250", ParseSqFt("Area: 1,250 sq ft"))
	assert.Equal(t, "980", ParseSqFt("980sqft carpet"))
	assert.Equal(t, "", ParseSqFt("spacious homes"))
}

package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseBHK(t *testing.T) {
	assert.Equal(t, "1, 2, 3", ParseBHK("1, 2, 3 BHK Apartment in Whitefield"))
	assert.Equal(t, "2", ParseBHK("2 BHK Flat"))
	assert.Equal(t, "", ParseBHK("Apartments in Whitefield"))
}

func TestParseBHKLabel(t *testing.T) {
	assert.Equal(t, "2,3,4", ParseBHKLabel("BHK-2, 3, 4"))
	assert.Equal(t, "3", ParseBHKLabel("bhk 3"))
	assert.Equal(t, "", ParseBHKLabel("no configurations"))
}

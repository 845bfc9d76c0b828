package parser

import (
	"regexp"
	"strings"
)

var (
	bhkRegex      = regexp.MustCompile(`(\d[\d,\s]*)\s*BHK`)
	bhkLabelRegex = regexp.MustCompile(`(?i)BHK[-\s]*([\d.,\s]+)`)
)

// ParseBHK extracts the digit list immediately preceding a BHK marker:
// "1, 2, 3 BHK Apartment" -> "1, 2, 3".
func ParseBHK(text string) string {
	if m := bhkRegex.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// ParseBHKLabel extracts configurations written label-first ("BHK-2,3,4"),
// as NoBroker renders them. Spaces are removed to get a compact list.
func ParseBHKLabel(text string) string {
	if m := bhkLabelRegex.FindStringSubmatch(text); m != nil {
		return strings.ReplaceAll(strings.TrimSpace(m[1]), " ", "")
	}
	return ""
}

package parser

import (
	"regexp"
	"strconv"
	"strings"
)

// Handover years outside this window are treated as parsing noise.
const (
	HandoverYearMin = 2020
	HandoverYearMax = 2040
)

// ReadyToMove is the canonical handover value for completed projects.
const ReadyToMove = "Ready to move"

var (
	monthYearRegex = regexp.MustCompile(`(?i)(?:Possession:?\s*)?([A-Za-z]+\s+\d{4})`)
	yearRegex      = regexp.MustCompile(`\d{4}`)
)

// ParsePossession extracts only the short handover token: "Dec 2026",
// "Jan 2032" or "Ready to move". It never returns surrounding description
// text; when nothing matches it returns "".
func ParsePossession(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	if strings.Contains(strings.ToLower(text), "ready to move") {
		return ReadyToMove
	}
	if m := monthYearRegex.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// YearFromPossession derives the numeric handover year from a possession
// token. Ready-to-move projects have no handover year.
func YearFromPossession(possession string) *int {
	if possession == "" || strings.Contains(strings.ToLower(possession), "ready") {
		return nil
	}
	m := yearRegex.FindString(possession)
	if m == "" {
		return nil
	}
	year, err := strconv.Atoi(m)
	if err != nil {
		return nil
	}
	return &year
}

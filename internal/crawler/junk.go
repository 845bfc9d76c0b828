package crawler

import (
	"strings"

	"github.com/propradar/go-property-crawler/internal/utils"
)

// Page titles and navigation labels that anchor extraction keeps mistaking
// for project names. Matched exactly after key normalization.
var junkNameVocabulary = map[string]struct{}{
	"new launch projects in bangalore":                     {},
	"under construction projects in bangalore":             {},
	"ready to move projects in bangalore":                  {},
	"new projects in bangalore":                            {},
	"projects in bangalore":                                {},
	"upcoming projects in bangalore":                       {},
	"new projects by reputed bangalore builders in bangalore": {},
	"ready to move & pre launch":                           {},
	"list":                                                 {},
	"map":                                                  {},
	"filter your search":                                   {},
	"reset":                                                {},
	"sort by":                                              {},
	"find other projects matching your search nearby":      {},
	"quick links":                                          {},
	"bangalore":                                            {},
}

var statusWordPrefixes = []string{"new ", "under ", "ready ", "upcoming "}

// JunkFilter classifies a candidate name as structural page noise rather
// than a real project title. Any one rule disqualifies the candidate.
type JunkFilter struct{}

func NewJunkFilter() *JunkFilter {
	return &JunkFilter{}
}

// IsJunkName reports whether name is page chrome instead of a listing title.
func (f *JunkFilter) IsJunkName(name string) bool {
	if len(strings.TrimSpace(name)) < 4 {
		return true
	}
	key := utils.NormalizeKey(name)
	if len(key) > 120 {
		key = key[:120]
	}
	if _, ok := junkNameVocabulary[key]; ok {
		return true
	}

	// "<status word> projects in bangalore" section headers
	if strings.Contains(key, "projects in ") && strings.Contains(key, "bangalore") {
		for _, prefix := range statusWordPrefixes {
			if strings.HasPrefix(key, prefix) {
				return true
			}
		}
	}

	// Promotional section headers like "New Projects by Reputed Bangalore Builders"
	if strings.Contains(key, "by reputed") && strings.Contains(key, "builders") && strings.Contains(key, "bangalore") {
		return true
	}

	return false
}

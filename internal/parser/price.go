package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Price sanity ceilings. A rule whose numbers fall outside these bounds is
// skipped so that unrelated large numbers in the text never win.
const (
	maxCroreRange = 1000  // "A - B Cr" with B >= 1000 Cr is not a price
	maxLakhValue  = 10000 // single values and lakh ranges above 100 Cr are noise
)

var currencyCleaner = strings.NewReplacer(",", "", "₹", "", "Rs.", "")

// priceRule is one entry of the ordered rule list: a pattern plus a
// converter that validates the captured numbers. Rules are evaluated in
// fixed order with early exit; generic single-value rules sit last because
// they are supersets of the range rules and must never shadow them.
type priceRule struct {
	name string
	re   *regexp.Regexp
	conv func(groups []string) (min, max *float64, ok bool)
}

var priceRules = []priceRule{
	{
		// "1.2 - 3.4 Cr": both ends in crore
		name: "crore_range",
		re:   regexp.MustCompile(`(?i)([\d.]+)\s*-\s*([\d.]+)\s*Cr`),
		conv: func(g []string) (*float64, *float64, bool) {
			low, okL := parseAmount(g[1])
			high, okH := parseAmount(g[2])
			if !okL || !okH || low > high || high >= maxCroreRange {
				return nil, nil, false
			}
			return f64(low * 100), f64(high * 100), true
		},
	},
	{
		// "45 L - 90 L"
		name: "lakh_range",
		re:   regexp.MustCompile(`(?i)([\d.]+)\s*(?:L|Lakh|Lac)\s*-\s*([\d.]+)\s*(?:L|Lakh|Lac)`),
		conv: func(g []string) (*float64, *float64, bool) {
			low, okL := parseAmount(g[1])
			high, okH := parseAmount(g[2])
			if !okL || !okH || low > high || high >= maxLakhValue {
				return nil, nil, false
			}
			return f64(low), f64(high), true
		},
	},
	{
		// "71 L - 2.11 Cr": min in lakh, max in crore
		name: "mixed_range",
		re:   regexp.MustCompile(`(?i)([\d.]+)\s*(?:L|Lakh|Lac)\s*-\s*([\d.]+)\s*Cr`),
		conv: func(g []string) (*float64, *float64, bool) {
			low, okL := parseAmount(g[1])
			high, okH := parseAmount(g[2])
			if !okL || !okH {
				return nil, nil, false
			}
			high *= 100
			if low > high {
				return nil, nil, false
			}
			return f64(low), f64(high), true
		},
	},
	{
		// "48 lakhs onwards": min-only
		name: "lakh_onwards",
		re:   regexp.MustCompile(`(?i)([\d.]+)\s*(?:lacs?|lakhs?)\s+onwards?`),
		conv: func(g []string) (*float64, *float64, bool) {
			n, ok := parseAmount(g[1])
			if !ok || n >= maxLakhValue {
				return nil, nil, false
			}
			return f64(n), nil, true
		},
	},
	{
		// "Starting ₹ 1.2 Cr" / "1.2 Cr onwards": min-only
		name: "crore_onwards",
		re:   regexp.MustCompile(`(?i)(?:Starting\s+₹?\s*([\d.]+)\s*Cr|([\d.]+)\s*Cr\s+onwards?)`),
		conv: func(g []string) (*float64, *float64, bool) {
			raw := g[1]
			if raw == "" {
				raw = g[2]
			}
			n, ok := parseAmount(raw)
			if !ok {
				return nil, nil, false
			}
			n *= 100
			if n >= maxLakhValue {
				return nil, nil, false
			}
			return f64(n), nil, true
		},
	},
	{
		// bare "2.3 Cr": used as both ends
		name: "single_crore",
		re:   regexp.MustCompile(`(?i)([\d.]+)\s*Cr`),
		conv: func(g []string) (*float64, *float64, bool) {
			n, ok := parseAmount(g[1])
			if !ok || n >= maxCroreRange {
				return nil, nil, false
			}
			return f64(n * 100), f64(n * 100), true
		},
	},
	{
		// bare "85 L": used as both ends
		name: "single_lakh",
		re:   regexp.MustCompile(`(?i)([\d.]+)\s*(?:L|Lakh|Lac)`),
		conv: func(g []string) (*float64, *float64, bool) {
			n, ok := parseAmount(g[1])
			if !ok || n >= maxLakhValue {
				return nil, nil, false
			}
			return f64(n), f64(n), true
		},
	},
}

// ParsePriceRange parses free text into (min, max) lakhs. It prefers one
// explicit range over any single value so numbers from different listings in
// the same text never get mixed; the first rule whose numbers validate wins.
// Returns (nil, nil) when no rule matches.
func ParsePriceRange(text string) (*float64, *float64) {
	if text == "" {
		return nil, nil
	}
	raw := strings.TrimSpace(currencyCleaner.Replace(text))

	for _, rule := range priceRules {
		m := rule.re.FindStringSubmatch(raw)
		if m == nil {
			continue
		}
		if min, max, ok := rule.conv(m); ok {
			return min, max
		}
	}
	return nil, nil
}

// FormatPriceDisplay renders the canonical display string from the numeric
// pair: crore notation when the max reaches one crore, lakh notation below.
// Display strings are always regenerated from the numbers, never taken from
// page text.
func FormatPriceDisplay(min, max *float64) string {
	if min == nil && max == nil {
		return ""
	}
	lo, hi := min, max
	if lo == nil {
		lo = hi
	}
	if hi == nil {
		hi = lo
	}
	if *hi >= 100 {
		return fmt.Sprintf("₹ %.2f - %.2f Cr", *lo/100, *hi/100)
	}
	return fmt.Sprintf("₹ %.2f - %.2f L", *lo, *hi)
}

func parseAmount(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func f64(v float64) *float64 {
	return &v
}

package parser

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	rupeeAmountRegex = regexp.MustCompile(`₹\s*([\d,]+(?:\.\d{2})?)`)
	croreAmountRegex = regexp.MustCompile(`(?i)([\d.]+)\s*Cr`)
	lakhAmountRegex  = regexp.MustCompile(`(?i)([\d.]+)\s*(?:Lakhs?|Lacs?|L)\b`)
	plainAmountRegex = regexp.MustCompile(`[\d,]+(?:\.\d{2})?`)
	sqftRegex        = regexp.MustCompile(`(?i)(\d[\d,.]*)\s*(?:sq\.?\s*ft|sqft|sft)`)
	sqftLabeledRegex = regexp.MustCompile(`(?i)(?:carpet|built-up|super)\s*[:\s]*(\d[\d,.]*)\s*sq`)
)

// ParseRupeeAmount finds the first "₹ 36,90,000.00" style amount and returns
// it verbatim for display plus its value in lakhs.
func ParseRupeeAmount(text string) (string, *float64) {
	m := rupeeAmountRegex.FindStringSubmatch(text)
	if m == nil {
		return "", nil
	}
	display := strings.TrimSpace(rupeeAmountRegex.FindString(text))
	rupees, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
	if err != nil {
		return display, nil
	}
	lakhs := rupees / 100_000
	return display, &lakhs
}

// ParsePriceLakhs parses a lone auction amount into lakhs. Handles
// "Rs. 45.5 Lakh", "₹ 1.2 Cr" and Indian-grouped rupee figures like
// "₹36,90,000.00".
func ParsePriceLakhs(text string) *float64 {
	if text == "" {
		return nil
	}
	raw := strings.TrimSpace(currencyCleaner.Replace(text))

	if m := croreAmountRegex.FindStringSubmatch(raw); m != nil {
		if n, ok := parseAmount(m[1]); ok {
			return f64(n * 100)
		}
	}
	if m := lakhAmountRegex.FindStringSubmatch(raw); m != nil {
		if n, ok := parseAmount(m[1]); ok {
			return f64(n)
		}
	}
	// Raw rupee figure: 36,90,000 -> 36.9 lakhs
	if m := plainAmountRegex.FindString(raw); m != "" {
		if n, ok := parseAmount(strings.ReplaceAll(m, ",", "")); ok {
			return f64(n / 100_000)
		}
	}
	return nil
}

// ParseSqFt extracts a square-footage figure from auction text.
func ParseSqFt(text string) string {
	if m := sqftRegex.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := sqftLabeledRegex.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

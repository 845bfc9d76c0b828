package utils

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	whitespaceRegex = regexp.MustCompile(`\s+`)
	tagRegex        = regexp.MustCompile(`<[^>]+>`)
	nonAlnumRegex   = regexp.MustCompile(`[^a-zA-Z0-9]`)
	titleCaser      = cases.Title(language.English)
)

// CollapseWhitespace trims the string and folds every whitespace run into a
// single space.
func CollapseWhitespace(text string) string {
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(text, " "))
}

// StripTags replaces markup tags with spaces and collapses the result.
// Used by the raw-text extraction path, where no parsed tree exists.
func StripTags(markup string) string {
	return CollapseWhitespace(tagRegex.ReplaceAllString(markup, " "))
}

// SlugToTitle converts a hyphenated URL slug into a display title:
// "prestige-suncrest-electronic-city" -> "Prestige Suncrest Electronic City".
func SlugToTitle(slug string) string {
	return titleCaser.String(CollapseWhitespace(strings.ReplaceAll(slug, "-", " ")))
}

// NormalizeKey lowercases a string, strips diacritics and collapses
// whitespace, producing a stable key for vocabulary lookups.
func NormalizeKey(text string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	normalized, _, err := transform.String(t, strings.ToLower(text))
	if err != nil {
		normalized = strings.ToLower(text)
	}
	return CollapseWhitespace(normalized)
}

// AlnumSuffix keeps only letters and digits and returns the last n of them.
// Record ids are derived this way from canonical URLs.
func AlnumSuffix(text string, n int) string {
	cleaned := nonAlnumRegex.ReplaceAllString(text, "")
	if len(cleaned) <= n {
		return cleaned
	}
	return cleaned[len(cleaned)-n:]
}

// Truncate caps a string at max bytes without splitting a rune.
func Truncate(text string, max int) string {
	if len(text) <= max {
		return text
	}
	cut := text[:max]
	for len(cut) > 0 && !utf8.ValidString(cut) {
		cut = cut[:len(cut)-1]
	}
	return cut
}

// SelectionText flattens a goquery selection into text, joining text nodes
// with sep. Equivalent to reading the rendered text of a card while keeping
// line boundaries when sep is "\n".
func SelectionText(sel *goquery.Selection, sep string) string {
	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			if t := strings.TrimSpace(n.Data); t != "" {
				parts = append(parts, t)
			}
			return
		case html.ElementNode:
			if n.Data == "script" || n.Data == "style" {
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range sel.Nodes {
		walk(n)
	}
	return strings.Join(parts, sep)
}

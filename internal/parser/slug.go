package parser

import (
	"regexp"
	"strings"

	"github.com/propradar/go-property-crawler/internal/utils"
)

// IdentifierMarker is the URL token that marks a path as a project listing
// or detail page rather than a navigational page.
const IdentifierMarker = "npxid"

// CityToken must appear in a slug for it to be treated as a listing path.
const CityToken = "bangalore"

// Known multi-word localities, longest-match-first semantics via alternation.
// Without this vocabulary a project name containing a word that doubles as a
// locality would be mis-split ("Prestige Raintree Park" must not become
// "Prestige Raintree" + "Park Whitefield").
var knownLocalities = []string{
	"sarjapur-road", "hennur-road", "electronic-city", "kanakapura-road",
	"bannerghatta-road", "begur-road", "hosur-road", "mysore-road",
	"devanahalli", "marathahalli", "whitefield", "bagalur", "yelahanka",
	"varthur", "panathur", "nallurhalli", "kogilu", "nelamangala", "kengeri",
	"uttarahalli", "rajarajeshwari-nagar", "hosa-road", "hebbal",
	"thanisandra", "kr-puram", "malleshwaram", "horamavu", "gunjur",
	"budigere-cross", "doddaballapur", "chandapura", "jigani", "anekal",
	"kasaba-hobli", "bidarahalli", "sarjapur", "hoskote",
}

var (
	markerSuffixRegex   = regexp.MustCompile(`(?i)-` + IdentifierMarker + `.*`)
	knownLocalityRegex  = regexp.MustCompile(`(?i)^(.+)-(` + strings.Join(knownLocalities, "|") + `)-bangalore-(north|south|east|west)$`)
	singleSegmentRegex  = regexp.MustCompile(`(?i)^(.+)-([a-z0-9]+)-bangalore-(north|south|east|west)$`)
	localityInTextRegex = regexp.MustCompile(`([A-Za-z\s]+),\s*Bangalore\s*(?:North|South|East|West)`)
)

// NameAndLocalityFromPath derives (project name, locality) from a listing
// URL path. The slug is the source of truth for which project a link points
// to; DOM text on listing pages is frequently attributed to the wrong card.
// Returns ("", "") when the path does not look like a listing (missing
// identifier marker or city token).
func NameAndLocalityFromPath(href string) (string, string) {
	slug := lastSegment(href)
	if !strings.Contains(slug, "-"+IdentifierMarker) || !strings.Contains(strings.ToLower(slug), CityToken) {
		return "", ""
	}

	beforeMarker := strings.TrimSpace(markerSuffixRegex.ReplaceAllString(slug, ""))

	// Known two-word localities first, then a generic one-segment split
	if m := knownLocalityRegex.FindStringSubmatch(beforeMarker); m != nil {
		return titleFromSlug(m[1], 200), titleFromSlug(m[2], 100)
	}
	if m := singleSegmentRegex.FindStringSubmatch(beforeMarker); m != nil {
		return titleFromSlug(m[1], 200), titleFromSlug(m[2], 100)
	}
	return titleFromSlug(beforeMarker, 200), ""
}

// NameFromSlug title-cases the slug segment before the identifier marker.
// Last-resort name source for listing links whose slug carries a project
// name but no city token to anchor the name/locality split.
func NameFromSlug(href string) string {
	slug := lastSegment(href)
	if !strings.Contains(slug, "-"+IdentifierMarker) {
		return ""
	}
	return titleFromSlug(strings.TrimSpace(markerSuffixRegex.ReplaceAllString(slug, "")), 200)
}

func lastSegment(href string) string {
	path := href
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	path = strings.TrimRight(path, "/")
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		return path[i+1:]
	}
	return path
}

// LocalityFromText finds "<area>, Bangalore <zone>" mentions in card text.
func LocalityFromText(text string) string {
	if m := localityInTextRegex.FindStringSubmatch(text); m != nil {
		return utils.Truncate(strings.TrimSpace(m[1]), 100)
	}
	return ""
}

// BuilderFromName guesses the builder as the first token of a project name
// ("Prestige Suncrest" -> "Prestige"). Weak signal, overridden whenever a
// detail page supplies the real builder.
func BuilderFromName(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func titleFromSlug(slug string, max int) string {
	return utils.Truncate(utils.SlugToTitle(slug), max)
}

package crawler

import (
	"github.com/propradar/go-property-crawler/internal/repository"
)

// Deduplicator tracks listing URLs across an entire crawl run. Identity is
// the canonical URL; the first record seen for a URL wins and later
// occurrences are discarded, so listing-page data is never overwritten by a
// repeat sighting on a later page.
type Deduplicator struct {
	seen map[string]struct{}
}

func NewDeduplicator() *Deduplicator {
	return &Deduplicator{seen: make(map[string]struct{})}
}

// Filter returns the records whose URL has not been seen before, in input
// order, and marks them seen.
func (d *Deduplicator) Filter(records []repository.Property) []repository.Property {
	kept := make([]repository.Property, 0, len(records))
	for _, record := range records {
		if _, dup := d.seen[record.URL]; dup {
			continue
		}
		d.seen[record.URL] = struct{}{}
		kept = append(kept, record)
	}
	return kept
}

// Seen reports whether a URL was already accepted this run.
func (d *Deduplicator) Seen(url string) bool {
	_, ok := d.seen[url]
	return ok
}

// Count returns how many distinct URLs have been accepted.
func (d *Deduplicator) Count() int {
	return len(d.seen)
}

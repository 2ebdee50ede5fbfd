// Package reconcile assembles complete flight records from classified page
// fragments. Every unit of work (segment, container, pass) has its own
// failure boundary: a malformed fragment degrades to an absent value and
// never discards otherwise-good results.
package reconcile

import (
	"matrix_parser/internal/fragments"
	"matrix_parser/internal/page"
)

// RelatedFragments gathers the fragment texts referenced by a container via
// described-by attributes, on the container itself and on its descendants.
// Ids absent from the pool are dropped. Containers hold only the id tokens
// they reference; the pool is the single lookup table.
func RelatedFragments(c *page.Container, pool fragments.Pool) []string {
	var related []string

	for _, id := range page.DescribedByIDs(c.DescribedBy) {
		if text, ok := pool[id]; ok {
			related = append(related, text)
		}
	}

	for i := range c.Descendants {
		for _, id := range page.DescribedByIDs(c.Descendants[i].DescribedBy()) {
			if text, ok := pool[id]; ok {
				related = append(related, text)
			}
		}
	}

	return related
}

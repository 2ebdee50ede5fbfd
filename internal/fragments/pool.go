// Package fragments builds and classifies the tooltip fragment pool for a
// captured result page. The target site exposes overlapping accessibility
// and framework-specific tooltip mechanisms with no single reliable
// selector, so harvesting tries progressively looser strategies and
// deduplicates by element id.
package fragments

import (
	"sort"
	"strings"

	"matrix_parser/internal/page"
)

// Pool maps fragment id to raw visible text.
type Pool map[string]string

// Harvest collects tooltip-like fragments from captured elements. Three
// tiers are tried in order; later tiers only add fragments whose id was
// not already captured.
func Harvest(elems []page.Element) Pool {
	pool := make(Pool)

	// Tier 1: elements with an explicit aria tooltip role.
	for i := range elems {
		e := &elems[i]
		if e.Role == "tooltip" {
			add(pool, e.ID, e.Text)
		}
	}

	// Tier 2: framework description-pattern ids (cdk-describedby-message).
	for i := range elems {
		e := &elems[i]
		if strings.Contains(e.ID, "cdk-describedby-message") {
			add(pool, e.ID, e.Text)
		}
	}

	// Tier 3: anything with "tooltip" in its id, class or a data-tooltip
	// attribute. The data-tooltip value serves as the id when none exists.
	for i := range elems {
		e := &elems[i]
		if strings.Contains(e.ID, "tooltip") ||
			strings.Contains(e.Class, "tooltip") ||
			e.Attr("data-tooltip") != "" {
			id := e.ID
			if id == "" {
				id = e.Attr("data-tooltip")
			}
			add(pool, id, e.Text)
		}
	}

	return pool
}

func add(pool Pool, id, text string) {
	if id == "" {
		return
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	if _, ok := pool[id]; !ok {
		pool[id] = text
	}
}

// SortedIDs returns the pool's fragment ids in stable order.
func (p Pool) SortedIDs() []string {
	ids := make([]string, 0, len(p))
	for id := range p {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Texts returns all fragment texts in id order.
func (p Pool) Texts() []string {
	ids := p.SortedIDs()
	texts := make([]string, 0, len(ids))
	for _, id := range ids {
		texts = append(texts, p[id])
	}
	return texts
}

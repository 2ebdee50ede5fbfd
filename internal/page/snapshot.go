// Package page provides the captured page snapshot types consumed by the
// reconciliation engine. A snapshot is what the browser-automation layer
// hands over: raw element text plus the attributes needed to correlate
// tooltip fragments with itinerary rows. The engine never touches the DOM.
package page

import (
	"encoding/json"
	"strings"
)

// Element is a captured page element. Only the fields the harvesting and
// correlation heuristics look at are kept: id, role, class, inner text and
// a free-form attribute map for the rest (aria-describedby, data-tooltip).
type Element struct {
	ID    string            `json:"id,omitempty"`
	Role  string            `json:"role,omitempty"`
	Class string            `json:"class,omitempty"`
	Text  string            `json:"text,omitempty"`
	Attrs map[string]string `json:"attrs,omitempty"`
}

// Attr returns a named attribute value, or "" if absent.
func (e *Element) Attr(name string) string {
	if e.Attrs == nil {
		return ""
	}
	return e.Attrs[name]
}

// DescribedBy returns the element's aria-describedby token list.
func (e *Element) DescribedBy() string {
	return e.Attr("aria-describedby")
}

// Container is a page element hypothesized to represent one itinerary row.
// Descendants carries only those child elements that expose their own
// described-by references.
type Container struct {
	Text        string    `json:"text"`
	DescribedBy string    `json:"described_by,omitempty"`
	Descendants []Element `json:"descendants,omitempty"`
}

// Snapshot is everything captured from one result page: the ordered
// itinerary containers and all tooltip-like elements found on the page.
type Snapshot struct {
	URL        string      `json:"url,omitempty"`
	CapturedAt string      `json:"captured_at,omitempty"`
	Containers []Container `json:"containers"`
	Elements   []Element   `json:"elements,omitempty"`
}

// FeedSource identifies the harvester that produced a feed message.
type FeedSource struct {
	Name        string `json:"name,omitempty"`
	Application string `json:"application,omitempty"`
}

// FeedWrapper is the feed message format where the snapshot is nested
// inside a "snapshot" field with harvester metadata at the top level.
type FeedWrapper struct {
	Source   *FeedSource `json:"source,omitempty"`
	Snapshot *Snapshot   `json:"snapshot,omitempty"`
}

// Decode parses a JSON snapshot in either supported shape and reports which
// one matched: "feed" for the wrapped form, "flat" for a bare snapshot.
// Returns nil if neither shape yields any content.
func Decode(b []byte) (*Snapshot, string) {
	// 1) Feed wrapper.
	var w FeedWrapper
	if err := json.Unmarshal(b, &w); err == nil && w.Snapshot != nil {
		if len(w.Snapshot.Containers) > 0 || len(w.Snapshot.Elements) > 0 {
			return w.Snapshot, "feed"
		}
	}

	// 2) Flat snapshot.
	var s Snapshot
	if err := json.Unmarshal(b, &s); err == nil {
		if len(s.Containers) > 0 || len(s.Elements) > 0 {
			return &s, "flat"
		}
	}

	return nil, ""
}

// DescribedByIDs splits an aria-describedby value into its id tokens.
func DescribedByIDs(value string) []string {
	return strings.Fields(value)
}

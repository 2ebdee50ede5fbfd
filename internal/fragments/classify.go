package fragments

import (
	"strings"

	"matrix_parser/internal/patterns"
)

// Category is a fragment content category. Classification is exclusive for
// bucket placement: the first matching signature wins, in price, time,
// airline, note order.
type Category int

const (
	Unclassified Category = iota
	CategoryPrice
	CategoryTime
	CategoryAirline
	CategoryNote
)

func (c Category) String() string {
	switch c {
	case CategoryPrice:
		return "price"
	case CategoryTime:
		return "time"
	case CategoryAirline:
		return "airline"
	case CategoryNote:
		return "note"
	}
	return "unclassified"
}

// noteKeywords mark fragments describing itinerary quirks worth surfacing.
var noteKeywords = []string{"overnight", "red-eye", "layover", "connection"}

// Classify assigns a fragment to its content category by cheap string
// signatures, no regex.
func Classify(text string) Category {
	switch {
	case IsPriceBearing(text):
		return CategoryPrice
	case IsTimeBearing(text):
		return CategoryTime
	case IsAirlineBearing(text):
		return CategoryAirline
	case IsNoteBearing(text):
		return CategoryNote
	}
	return Unclassified
}

// IsPriceBearing reports whether text carries a price signal.
func IsPriceBearing(text string) bool {
	return strings.Contains(text, "$") || strings.Contains(strings.ToLower(text), "price")
}

// IsTimeBearing reports whether text carries an airport time line with a
// meridiem marker.
func IsTimeBearing(text string) bool {
	return strings.Contains(text, "time:") &&
		(strings.Contains(text, "AM") || strings.Contains(text, "PM"))
}

// IsAirlineBearing reports whether text names a known carrier.
func IsAirlineBearing(text string) bool {
	for _, name := range patterns.SeedAirlineNames {
		if strings.Contains(text, name) {
			return true
		}
	}
	return false
}

// IsNoteBearing reports whether text mentions an itinerary quirk.
func IsNoteBearing(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range noteKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// Buckets holds pool fragments partitioned by content signature, each in
// fragment-id order.
type Buckets struct {
	Price   []string
	Time    []string
	Airline []string
	Note    []string
}

// Partition buckets every fragment in the pool by its category. Fragments
// matching no signature are dropped.
func (p Pool) Partition() Buckets {
	var b Buckets
	for _, id := range p.SortedIDs() {
		text := p[id]
		switch Classify(text) {
		case CategoryPrice:
			b.Price = append(b.Price, text)
		case CategoryTime:
			b.Time = append(b.Time, text)
		case CategoryAirline:
			b.Airline = append(b.Airline, text)
		case CategoryNote:
			b.Note = append(b.Note, text)
		}
	}
	return b
}

package flight

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// CalendarEntry is one date's observed fare for a route.
type CalendarEntry struct {
	Date      time.Time        `json:"date"`
	Price     *decimal.Decimal `json:"price,omitempty"`
	Available bool             `json:"available"`
}

// PriceCalendar tracks fares per date for flexible-date searches.
type PriceCalendar struct {
	Origin      string          `json:"origin"`
	Destination string          `json:"destination"`
	Entries     []CalendarEntry `json:"entries"`
	CabinClass  CabinClass      `json:"cabin_class"`
}

// CheapestDates returns up to limit available entries with a price, lowest
// fare first. Ties keep their original order.
func (c *PriceCalendar) CheapestDates(limit int) []CalendarEntry {
	var available []CalendarEntry
	for _, e := range c.Entries {
		if e.Available && e.Price != nil {
			available = append(available, e)
		}
	}

	sort.SliceStable(available, func(i, j int) bool {
		return available[i].Price.LessThan(*available[j].Price)
	})

	if limit > 0 && len(available) > limit {
		available = available[:limit]
	}
	return available
}

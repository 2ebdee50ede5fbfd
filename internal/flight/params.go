package flight

import (
	"fmt"
	"time"

	"matrix_parser/internal/patterns"
)

// SearchParams are the public flight-search parameters supplied by callers.
type SearchParams struct {
	Origin        string     `json:"origin"`
	Destination   string     `json:"destination"`
	DepartureDate time.Time  `json:"departure_date"`
	ReturnDate    *time.Time `json:"return_date,omitempty"`
	TripType      TripType   `json:"trip_type"`
	CabinClass    CabinClass `json:"cabin_class"`
	Adults        int        `json:"adults"`
	Children      int        `json:"children"`
	Infants       int        `json:"infants"`
}

// Validate normalizes airport codes and checks passenger counts and date
// rules. Params are modified in place on success.
func (p *SearchParams) Validate() error {
	origin, err := patterns.ValidateAirportCode(p.Origin)
	if err != nil {
		return fmt.Errorf("origin: %w", err)
	}
	destination, err := patterns.ValidateAirportCode(p.Destination)
	if err != nil {
		return fmt.Errorf("destination: %w", err)
	}
	p.Origin = origin
	p.Destination = destination

	if p.Adults < 1 || p.Adults > 9 {
		return fmt.Errorf("adults must be between 1 and 9, got %d", p.Adults)
	}
	if p.Children < 0 || p.Children > 8 {
		return fmt.Errorf("children must be between 0 and 8, got %d", p.Children)
	}
	if p.Infants < 0 || p.Infants > 4 {
		return fmt.Errorf("infants must be between 0 and 4, got %d", p.Infants)
	}

	if p.TripType == "" {
		p.TripType = RoundTrip
	}
	if p.CabinClass == "" {
		p.CabinClass = Economy
	}

	if p.TripType == RoundTrip && p.ReturnDate == nil {
		return fmt.Errorf("return date required for round trip")
	}
	if p.ReturnDate != nil && !p.ReturnDate.After(p.DepartureDate) {
		return fmt.Errorf("return date must be after departure date")
	}

	return nil
}

// Route renders the params as "JFK-LHR" for logging and storage keys.
func (p *SearchParams) Route() string {
	return p.Origin + "-" + p.Destination
}

// Matches reports whether a record flies the params' route.
func (p *SearchParams) Matches(rec *Record) bool {
	return rec.Origin() == p.Origin && rec.Destination() == p.Destination
}

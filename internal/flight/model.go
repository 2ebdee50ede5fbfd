// Package flight defines the caller-facing flight record model produced by
// the reconciliation engine, plus the public search-parameter types.
package flight

import (
	"time"

	"github.com/shopspring/decimal"
)

// CabinClass enumerates cabin options.
type CabinClass string

const (
	Economy        CabinClass = "economy"
	PremiumEconomy CabinClass = "premium_economy"
	Business       CabinClass = "business"
	First          CabinClass = "first"
)

// TripType enumerates trip shapes.
type TripType string

const (
	RoundTrip TripType = "round_trip"
	OneWay    TripType = "one_way"
	MultiCity TripType = "multi_city"
)

// Airline identifies a carrier.
type Airline struct {
	Code string `json:"code"`
	Name string `json:"name,omitempty"`
}

// Airport identifies an airport by IATA/ICAO code.
type Airport struct {
	Code string `json:"code"`
}

// Segment is one resolved flight leg.
type Segment struct {
	Airline          Airline   `json:"airline"`
	FlightNumber     string    `json:"flight_number"`
	DepartureAirport Airport   `json:"departure_airport"`
	ArrivalAirport   Airport   `json:"arrival_airport"`
	DepartureTime    time.Time `json:"departure_time"`
	ArrivalTime      time.Time `json:"arrival_time"`
	DurationMinutes  int       `json:"duration_minutes"`
	Stops            int       `json:"stops"`
}

// Record is a fully resolved itinerary. It always carries at least one
// segment and a positive price; reconciliation substitutes defaults rather
// than emitting an empty record.
type Record struct {
	Segments             []Segment       `json:"segments"`
	Price                decimal.Decimal `json:"price"`
	CabinClass           CabinClass      `json:"cabin_class"`
	TotalDurationMinutes int             `json:"total_duration_minutes"`
	Stops                int             `json:"stops"`
	Notes                []string        `json:"notes,omitempty"`
}

// DepartureTime returns the first segment's departure time.
func (r *Record) DepartureTime() time.Time {
	return r.Segments[0].DepartureTime
}

// ArrivalTime returns the last segment's arrival time.
func (r *Record) ArrivalTime() time.Time {
	return r.Segments[len(r.Segments)-1].ArrivalTime
}

// AirlineCodes returns the distinct airline codes across segments, in
// first-appearance order.
func (r *Record) AirlineCodes() []string {
	seen := make(map[string]bool)
	var codes []string
	for _, seg := range r.Segments {
		if !seen[seg.Airline.Code] {
			seen[seg.Airline.Code] = true
			codes = append(codes, seg.Airline.Code)
		}
	}
	return codes
}

// Origin returns the first segment's departure airport code.
func (r *Record) Origin() string {
	return r.Segments[0].DepartureAirport.Code
}

// Destination returns the last segment's arrival airport code.
func (r *Record) Destination() string {
	return r.Segments[len(r.Segments)-1].ArrivalAirport.Code
}

// Result is a completed search: extracted flights plus the parameters that
// produced them.
type Result struct {
	Flights    []Record     `json:"flights"`
	Params     SearchParams `json:"search_params"`
	SearchedAt time.Time    `json:"searched_at"`
	Currency   string       `json:"currency"`
}

// Cheapest returns the lowest-priced flight, or nil if there are none.
func (r *Result) Cheapest() *Record {
	var best *Record
	for i := range r.Flights {
		if best == nil || r.Flights[i].Price.LessThan(best.Price) {
			best = &r.Flights[i]
		}
	}
	return best
}

// Fastest returns the flight with the smallest total duration, or nil.
func (r *Result) Fastest() *Record {
	var best *Record
	for i := range r.Flights {
		if best == nil || r.Flights[i].TotalDurationMinutes < best.TotalDurationMinutes {
			best = &r.Flights[i]
		}
	}
	return best
}

package flight

import (
	"testing"
	"time"
)

func TestSearchParamsValidate(t *testing.T) {
	departure := time.Date(2025, time.July, 12, 0, 0, 0, 0, time.UTC)
	ret := departure.AddDate(0, 0, 7)

	tests := []struct {
		name    string
		params  SearchParams
		wantErr bool
	}{
		{
			"valid round trip",
			SearchParams{Origin: "JFK", Destination: "LHR", DepartureDate: departure, ReturnDate: &ret, Adults: 1},
			false,
		},
		{
			"lowercase codes normalized",
			SearchParams{Origin: "jfk", Destination: "lhr", DepartureDate: departure, ReturnDate: &ret, Adults: 2},
			false,
		},
		{
			"one way without return",
			SearchParams{Origin: "JFK", Destination: "LHR", DepartureDate: departure, TripType: OneWay, Adults: 1},
			false,
		},
		{
			"round trip missing return",
			SearchParams{Origin: "JFK", Destination: "LHR", DepartureDate: departure, Adults: 1},
			true,
		},
		{
			"return before departure",
			SearchParams{Origin: "JFK", Destination: "LHR", DepartureDate: ret, ReturnDate: &departure, Adults: 1},
			true,
		},
		{
			"bad origin",
			SearchParams{Origin: "J1", Destination: "LHR", DepartureDate: departure, TripType: OneWay, Adults: 1},
			true,
		},
		{
			"zero adults",
			SearchParams{Origin: "JFK", Destination: "LHR", DepartureDate: departure, TripType: OneWay, Adults: 0},
			true,
		},
		{
			"too many children",
			SearchParams{Origin: "JFK", Destination: "LHR", DepartureDate: departure, TripType: OneWay, Adults: 1, Children: 9},
			true,
		},
		{
			"too many infants",
			SearchParams{Origin: "JFK", Destination: "LHR", DepartureDate: departure, TripType: OneWay, Adults: 1, Infants: 5},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSearchParamsValidateDefaults(t *testing.T) {
	departure := time.Date(2025, time.July, 12, 0, 0, 0, 0, time.UTC)
	ret := departure.AddDate(0, 0, 7)

	p := SearchParams{Origin: "jfk", Destination: "lhr", DepartureDate: departure, ReturnDate: &ret, Adults: 1}
	if err := p.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if p.Origin != "JFK" || p.Destination != "LHR" {
		t.Errorf("codes = %q-%q, want JFK-LHR", p.Origin, p.Destination)
	}
	if p.TripType != RoundTrip {
		t.Errorf("TripType = %q, want %q", p.TripType, RoundTrip)
	}
	if p.CabinClass != Economy {
		t.Errorf("CabinClass = %q, want %q", p.CabinClass, Economy)
	}
	if got := p.Route(); got != "JFK-LHR" {
		t.Errorf("Route() = %q, want JFK-LHR", got)
	}
}

func TestSearchParamsMatches(t *testing.T) {
	p := SearchParams{Origin: "JFK", Destination: "LHR"}
	rec := func(origin, destination string) Record {
		return Record{Segments: []Segment{{
			DepartureAirport: Airport{Code: origin},
			ArrivalAirport:   Airport{Code: destination},
		}}}
	}

	tests := []struct {
		origin, destination string
		want                bool
	}{
		{"JFK", "LHR", true},
		{"JFK", "CDG", false},
		{"LHR", "JFK", false},
	}
	for _, tt := range tests {
		r := rec(tt.origin, tt.destination)
		if got := p.Matches(&r); got != tt.want {
			t.Errorf("Matches(%s->%s) = %v, want %v", tt.origin, tt.destination, got, tt.want)
		}
	}
}

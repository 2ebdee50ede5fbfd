package reconcile

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"matrix_parser/internal/patterns"
)

func TestAssembleRecordResolvesDrafts(t *testing.T) {
	in := AssembleInput{
		Drafts: []SegmentDraft{{
			DepartureAirport: "JFK",
			ArrivalAirport:   "LHR",
			DepartureStamp:   "6:25 AM Sat July 12",
			ArrivalStamp:     "9:50 PM Sat July 12",
			AirlineLabel:     "Delta",
		}},
		Airlines:          []string{"Delta"},
		ContainerPrice:    decimal.RequireFromString("1234"),
		HasContainerPrice: true,
	}

	rec := AssembleRecord(in)
	if len(rec.Segments) != 1 {
		t.Fatalf("segments = %d, want 1", len(rec.Segments))
	}

	seg := rec.Segments[0]
	if seg.Airline.Code != "DL" {
		t.Errorf("airline code = %q, want DL", seg.Airline.Code)
	}
	if seg.FlightNumber != "DL0000" {
		t.Errorf("flight number = %q, want DL0000", seg.FlightNumber)
	}
	wantDep := time.Date(patterns.ReferenceYear, time.July, 12, 6, 25, 0, 0, time.UTC)
	if !seg.DepartureTime.Equal(wantDep) {
		t.Errorf("departure = %v, want %v", seg.DepartureTime, wantDep)
	}
	if seg.DurationMinutes != 925 {
		t.Errorf("duration = %d, want 925", seg.DurationMinutes)
	}
	if rec.TotalDurationMinutes != 925 {
		t.Errorf("total duration = %d, want 925", rec.TotalDurationMinutes)
	}
	if !rec.Price.Equal(decimal.RequireFromString("1234")) {
		t.Errorf("price = %s, want 1234", rec.Price)
	}
	if rec.Stops != 0 {
		t.Errorf("stops = %d, want 0", rec.Stops)
	}
}

func TestAssembleRecordDefaults(t *testing.T) {
	rec := AssembleRecord(AssembleInput{})

	if len(rec.Segments) != 1 {
		t.Fatalf("segments = %d, want 1 synthetic segment", len(rec.Segments))
	}
	seg := rec.Segments[0]
	if seg.DepartureAirport.Code != "JFK" || seg.ArrivalAirport.Code != "LHR" {
		t.Errorf("route = %s->%s, want JFK->LHR", seg.DepartureAirport.Code, seg.ArrivalAirport.Code)
	}
	if seg.DurationMinutes != 480 {
		t.Errorf("duration = %d, want 480", seg.DurationMinutes)
	}
	// "Unknown" falls through to the derived-code path.
	if seg.Airline.Code != "UN" {
		t.Errorf("airline = %q, want UN", seg.Airline.Code)
	}
	if !rec.Price.Equal(decimal.RequireFromString("500")) {
		t.Errorf("price = %s, want 500", rec.Price)
	}
	if rec.Stops != 0 {
		t.Errorf("stops = %d, want 0", rec.Stops)
	}
}

func TestAssembleRecordUnparsableStamps(t *testing.T) {
	in := AssembleInput{
		Drafts: []SegmentDraft{{
			DepartureAirport: "JFK",
			ArrivalAirport:   "LHR",
			DepartureStamp:   "garbled",
			ArrivalStamp:     "also garbled",
			AirlineLabel:     "Delta",
		}},
	}

	rec := AssembleRecord(in)
	if len(rec.Segments) != 1 {
		t.Fatalf("segments = %d, want 1", len(rec.Segments))
	}
	if got := rec.Segments[0].DurationMinutes; got != 120 {
		t.Errorf("duration = %d, want clamped 120", got)
	}
}

func TestAssembleRecordPriceFromCandidates(t *testing.T) {
	in := AssembleInput{
		Candidates: []patterns.PriceCandidate{
			{Kind: patterns.PriceGeneral, Amount: decimal.RequireFromString("899")},
			{Kind: patterns.PricePerPassenger, Amount: decimal.RequireFromString("1050")},
		},
	}

	rec := AssembleRecord(in)
	if !rec.Price.Equal(decimal.RequireFromString("1050")) {
		t.Errorf("price = %s, want per-passenger 1050", rec.Price)
	}
}

func TestAssembleRecordStops(t *testing.T) {
	draft := func(dep, arr string) SegmentDraft {
		return SegmentDraft{
			DepartureAirport: dep,
			ArrivalAirport:   arr,
			DepartureStamp:   "6:25 AM Sat July 12",
			ArrivalStamp:     "9:50 PM Sat July 12",
			AirlineLabel:     "Delta",
		}
	}

	rec := AssembleRecord(AssembleInput{
		Drafts:            []SegmentDraft{draft("JFK", "AMS"), draft("AMS", "LHR")},
		HasContainerPrice: true,
		ContainerPrice:    decimal.RequireFromString("700"),
	})
	if len(rec.Segments) != 2 {
		t.Fatalf("segments = %d, want 2", len(rec.Segments))
	}
	if rec.Stops != 1 {
		t.Errorf("stops = %d, want 1", rec.Stops)
	}
	if rec.TotalDurationMinutes != 1850 {
		t.Errorf("total duration = %d, want 1850", rec.TotalDurationMinutes)
	}
}

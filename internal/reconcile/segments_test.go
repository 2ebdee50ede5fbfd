package reconcile

import (
	"reflect"
	"testing"

	"matrix_parser/internal/patterns"
)

func mention(airport, clock, date string) patterns.TimeMention {
	return patterns.TimeMention{Airport: airport, ClockTime: clock, TravelDate: date}
}

func TestBuildSegments(t *testing.T) {
	jfk := mention("JFK", "6:25 AM", "Sat July 12")
	lhr := mention("LHR", "9:50 PM", "Sat July 12")

	drafts := BuildSegments([]patterns.TimeMention{jfk, lhr}, []string{"Delta"})
	if len(drafts) != 1 {
		t.Fatalf("BuildSegments returned %d drafts, want 1", len(drafts))
	}

	want := SegmentDraft{
		DepartureAirport: "JFK",
		ArrivalAirport:   "LHR",
		DepartureStamp:   "6:25 AM Sat July 12",
		ArrivalStamp:     "9:50 PM Sat July 12",
		AirlineLabel:     "Delta",
	}
	if drafts[0] != want {
		t.Errorf("draft = %+v, want %+v", drafts[0], want)
	}
}

// Mention order on the page must not affect the result: pairing goes by
// clock time within a date group.
func TestBuildSegmentsOrderIndependent(t *testing.T) {
	jfk := mention("JFK", "6:25 AM", "Sat July 12")
	lhr := mention("LHR", "9:50 PM", "Sat July 12")

	forward := BuildSegments([]patterns.TimeMention{jfk, lhr}, nil)
	reversed := BuildSegments([]patterns.TimeMention{lhr, jfk}, nil)

	if !reflect.DeepEqual(forward, reversed) {
		t.Errorf("order changed result:\n forward  %+v\n reversed %+v", forward, reversed)
	}
	if forward[0].DepartureAirport != "JFK" {
		t.Errorf("departure = %q, want JFK", forward[0].DepartureAirport)
	}
}

func TestBuildSegmentsTrailingMention(t *testing.T) {
	mentions := []patterns.TimeMention{
		mention("JFK", "6:25 AM", "Sat July 12"),
		mention("AMS", "2:10 PM", "Sat July 12"),
		mention("LHR", "9:50 PM", "Sat July 12"),
	}

	drafts := BuildSegments(mentions, nil)
	if len(drafts) != 2 {
		t.Fatalf("BuildSegments returned %d drafts, want 2", len(drafts))
	}

	// The odd mention out becomes a degenerate segment with itself.
	last := drafts[1]
	if last.DepartureAirport != "LHR" || last.ArrivalAirport != "LHR" {
		t.Errorf("trailing draft = %q->%q, want LHR->LHR", last.DepartureAirport, last.ArrivalAirport)
	}
	if last.DepartureStamp != last.ArrivalStamp {
		t.Errorf("trailing draft stamps differ: %q vs %q", last.DepartureStamp, last.ArrivalStamp)
	}
}

// The return leg's weekday sorts before the outbound's lexically
// ("Mon" < "Sat"); ordering must follow the calendar, not the string.
func TestBuildSegmentsMultipleDates(t *testing.T) {
	mentions := []patterns.TimeMention{
		mention("LHR", "11:00 AM", "Mon July 14"),
		mention("JFK", "2:15 PM", "Mon July 14"),
		mention("JFK", "6:25 AM", "Sat July 12"),
		mention("LHR", "9:50 PM", "Sat July 12"),
	}

	drafts := BuildSegments(mentions, nil)
	if len(drafts) != 2 {
		t.Fatalf("BuildSegments returned %d drafts, want 2", len(drafts))
	}
	if drafts[0].DepartureAirport != "JFK" || drafts[0].ArrivalAirport != "LHR" {
		t.Errorf("outbound = %q->%q, want JFK->LHR", drafts[0].DepartureAirport, drafts[0].ArrivalAirport)
	}
	if drafts[0].DepartureStamp != "6:25 AM Sat July 12" {
		t.Errorf("first departure = %q, want the July 12 outbound", drafts[0].DepartureStamp)
	}
	if drafts[1].DepartureAirport != "LHR" || drafts[1].ArrivalAirport != "JFK" {
		t.Errorf("return = %q->%q, want LHR->JFK", drafts[1].DepartureAirport, drafts[1].ArrivalAirport)
	}
}

func TestBuildSegmentsTooFew(t *testing.T) {
	if got := BuildSegments(nil, nil); got != nil {
		t.Errorf("BuildSegments(nil) = %v, want nil", got)
	}
	one := []patterns.TimeMention{mention("JFK", "6:25 AM", "Sat July 12")}
	if got := BuildSegments(one, nil); got != nil {
		t.Errorf("BuildSegments with one mention = %v, want nil", got)
	}
}

func TestBuildSegmentsUnknownAirline(t *testing.T) {
	mentions := []patterns.TimeMention{
		mention("JFK", "6:25 AM", "Sat July 12"),
		mention("LHR", "9:50 PM", "Sat July 12"),
	}
	drafts := BuildSegments(mentions, nil)
	if drafts[0].AirlineLabel != "Unknown" {
		t.Errorf("AirlineLabel = %q, want Unknown", drafts[0].AirlineLabel)
	}
}

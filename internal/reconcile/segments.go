package reconcile

import (
	"sort"
	"time"

	"matrix_parser/internal/patterns"
)

// SegmentDraft is an unresolved departure/arrival pair awaiting airline and
// flight-number resolution.
type SegmentDraft struct {
	DepartureAirport string
	ArrivalAirport   string
	DepartureStamp   string // "6:25 AM Sat July 12"
	ArrivalStamp     string
	AirlineLabel     string
}

// BuildSegments pairs time mentions into ordered segment drafts. Mentions
// are grouped by travel date and the groups are walked in chronological
// order; within a date group mentions are sorted by clock time ascending
// and paired consecutively. A trailing unpaired mention
// forms a degenerate segment with itself as both endpoints. Fewer than two
// mentions total yields no segments.
//
// Pairing is purely by sort order within a date group. When more than two
// mentions share a date (a layover plus the next leg) this can pair
// unrelated mentions; the true segment boundaries are not recoverable from
// the page signals, so the observed policy is kept as-is.
func BuildSegments(mentions []patterns.TimeMention, airlines []string) []SegmentDraft {
	if len(mentions) < 2 {
		return nil
	}

	byDate := make(map[string][]patterns.TimeMention)
	var dates []string
	for _, m := range mentions {
		if _, ok := byDate[m.TravelDate]; !ok {
			dates = append(dates, m.TravelDate)
		}
		byDate[m.TravelDate] = append(byDate[m.TravelDate], m)
	}
	sortDates(dates)

	label := "Unknown"
	if len(airlines) > 0 {
		label = airlines[0]
	}

	var drafts []SegmentDraft
	for _, date := range dates {
		group := byDate[date]
		sortByClock(group)

		for i := 0; i < len(group); i += 2 {
			departure := group[i]
			arrival := departure // degenerate: trailing unpaired mention
			if i+1 < len(group) {
				arrival = group[i+1]
			}
			drafts = append(drafts, SegmentDraft{
				DepartureAirport: departure.Airport,
				ArrivalAirport:   arrival.Airport,
				DepartureStamp:   departure.MentionStampText(),
				ArrivalStamp:     arrival.MentionStampText(),
				AirlineLabel:     label,
			})
		}
	}

	return drafts
}

// sortDates orders date-group keys chronologically; lexical order on
// strings like "Sat July 12" would put a later weekday's date first.
// Unparsable dates sort after parsable ones, by raw text among themselves.
func sortDates(dates []string) {
	sort.SliceStable(dates, func(i, j int) bool {
		di, iok := patterns.ParseTravelDate(dates[i])
		dj, jok := patterns.ParseTravelDate(dates[j])
		switch {
		case iok && jok:
			return di.Before(dj)
		case iok:
			return true
		case jok:
			return false
		}
		return dates[i] < dates[j]
	})
}

// sortByClock orders mentions chronologically within a date group. An
// unparsable clock sorts after parsable ones, by raw text among themselves.
func sortByClock(group []patterns.TimeMention) {
	sort.SliceStable(group, func(i, j int) bool {
		ti, iok := patterns.ParseClockTime(group[i].ClockTime, time.Time{})
		tj, jok := patterns.ParseClockTime(group[j].ClockTime, time.Time{})
		switch {
		case iok && jok:
			return ti.Before(tj)
		case iok:
			return true
		case jok:
			return false
		}
		return group[i].ClockTime < group[j].ClockTime
	})
}

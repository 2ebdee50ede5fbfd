package patterns

import (
	"strconv"
	"strings"
	"time"
)

// ReferenceYear anchors travel dates that carry no year on the page.
const ReferenceYear = 2025

// clockLayouts are tried in order: 12-hour with meridiem, 24-hour colon
// form, 12-hour without a space, dotted 24-hour form.
var clockLayouts = []string{
	"3:04 PM",
	"15:04",
	"3:04PM",
	"15.04",
}

// ParseClockTime parses a bare clock time. A "+1" marker anywhere in the
// text means next-day arrival; when ref carries a date the result is that
// date (plus one day for "+1") combined with the parsed time. With a zero
// ref the raw layout parse is returned.
func ParseClockTime(text string, ref time.Time) (time.Time, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}, false
	}

	nextDay := false
	if strings.Contains(text, "+1") {
		nextDay = true
		text = strings.TrimSpace(strings.ReplaceAll(text, "+1", ""))
	}

	for _, layout := range clockLayouts {
		parsed, err := time.Parse(layout, text)
		if err != nil {
			continue
		}

		if ref.IsZero() {
			return parsed, true
		}

		combined := time.Date(ref.Year(), ref.Month(), ref.Day(),
			parsed.Hour(), parsed.Minute(), 0, 0, ref.Location())
		if nextDay {
			combined = combined.AddDate(0, 0, 1)
		}
		return combined, true
	}

	return time.Time{}, false
}

// ParseTravelDate parses a travel date as written on the page: "Sat July 12",
// "July 12" or "Sat Jul 5". A leading weekday is ignored; the year is fixed
// to ReferenceYear since the page never states one.
func ParseTravelDate(text string) (time.Time, bool) {
	fields := strings.Fields(text)
	if len(fields) < 2 {
		return time.Time{}, false
	}

	datePart := strings.Join(fields[len(fields)-2:], " ") + " " + strconv.Itoa(ReferenceYear)
	day, err := time.Parse("January 2 2006", datePart)
	if err != nil {
		// Short month form: "Jul 12".
		day, err = time.Parse("Jan 2 2006", datePart)
		if err != nil {
			return time.Time{}, false
		}
	}

	return time.Date(ReferenceYear, day.Month(), day.Day(), 0, 0, 0, 0, time.UTC), true
}

// ParseMentionStamp parses a combined mention timestamp like
// "6:25 AM Sat July 12".
func ParseMentionStamp(text string) (time.Time, bool) {
	m := MentionStampPattern.FindStringSubmatch(text)
	if m == nil {
		return time.Time{}, false
	}

	clock, err := time.Parse("3:04 PM", m[1])
	if err != nil {
		return time.Time{}, false
	}

	day, ok := ParseTravelDate(m[2])
	if !ok {
		return time.Time{}, false
	}

	return time.Date(ReferenceYear, day.Month(), day.Day(),
		clock.Hour(), clock.Minute(), 0, 0, time.UTC), true
}

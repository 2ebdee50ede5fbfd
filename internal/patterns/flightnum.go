package patterns

import (
	"strings"
)

// ExtractFlightNumber pulls a flight number from text. An airline-code-like
// token followed by digits wins; otherwise the first digit run is combined
// with the supplied airline code; with no digits at all the placeholder
// "<code>0000" is returned.
func ExtractFlightNumber(text, airlineCode string) string {
	if airlineCode == "" {
		airlineCode = "XX"
	}
	if strings.TrimSpace(text) == "" {
		return airlineCode + "0000"
	}

	upper := strings.ToUpper(text)
	if m := FlightNumPattern.FindStringSubmatch(upper); m != nil {
		return m[1] + m[2]
	}

	if digits := DigitsPattern.FindString(text); digits != "" {
		return airlineCode + digits
	}

	return airlineCode + "0000"
}

package patterns

import (
	"fmt"
	"strings"
)

// ValidateAirportCode normalizes and validates a 3-letter IATA or 4-letter
// ICAO airport code. Used by the search-parameter model; the extraction
// pipeline itself tolerates unknown placeholder codes.
func ValidateAirportCode(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return "", fmt.Errorf("airport code cannot be empty")
	}

	if (len(code) == 3 || len(code) == 4) && isAlpha(code) {
		return code, nil
	}

	return "", fmt.Errorf("invalid airport code: %s", code)
}

func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

package patterns

import (
	"strings"
)

// IdentifyAirline resolves free text to an IATA (code, name) pair. It never
// fails: an isolated 2-letter code wins, then seed-table name lookup, then
// a code derived from the first two letters of the name, then "XX".
func IdentifyAirline(text string) (code, name string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "XX", "Unknown Airline"
	}

	// Isolated 2-uppercase-letter token is taken as the code; whatever is
	// left over becomes the display name.
	if m := IATACodePattern.FindStringSubmatch(text); m != nil {
		code = m[1]
		name = strings.TrimSpace(strings.Replace(text, code, "", 1))
		if name == "" {
			name = code + " Airlines"
		}
		return code, name
	}

	// Seed-table lookup by substring, case-insensitive.
	lower := strings.ToLower(text)
	for _, seed := range airlineSeed {
		if strings.Contains(lower, seed.Name) {
			return seed.Code, text
		}
	}

	// Derive a code from the first two letters of the name.
	letters := nonAlphaPattern.ReplaceAllString(text, "")
	if len(letters) >= 2 {
		return strings.ToUpper(letters[:2]), text
	}
	return "XX", text
}

// ExtractAirlineNames scans free text for known carrier names. Text that
// looks like a comma-separated carrier list (no time indicators) also
// contributes its alphabetic parts.
func ExtractAirlineNames(text string) []string {
	var airlines []string

	for _, seedName := range SeedAirlineNames {
		if containsFold(text, seedName) {
			airlines = append(airlines, seedName)
		}
	}

	if strings.Contains(text, ",") && !hasTimeIndicator(text) {
		for _, part := range strings.Split(text, ",") {
			part = strings.TrimSpace(part)
			if len(part) > 2 && isAlphaWithSpaces(part) {
				airlines = append(airlines, part)
			}
		}
	}

	return airlines
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func hasTimeIndicator(text string) bool {
	return strings.Contains(text, "AM") || strings.Contains(text, "PM") || strings.Contains(text, ":")
}

func isAlphaWithSpaces(s string) bool {
	for _, r := range s {
		if r == ' ' {
			continue
		}
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return s != ""
}

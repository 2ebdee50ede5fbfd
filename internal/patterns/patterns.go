// Package patterns provides shared regex patterns and value extraction
// functions for flight-itinerary text fragments.
package patterns

import (
	"regexp"
)

// Core patterns used across multiple extractors.
var (
	// TimeMentionPattern matches tooltip time lines like
	// "LHR time: 6:25 AM Sat July 12".
	TimeMentionPattern = regexp.MustCompile(`(\w{3})\s+time:\s+(\d{1,2}:\d{2}\s+[AP]M)\s+(\w+\s+\w+\s+\d+)`)

	// MentionStampPattern matches a combined timestamp built from a mention:
	// "6:25 AM Sat July 12" (time, weekday, month day).
	MentionStampPattern = regexp.MustCompile(`(\d{1,2}:\d{2}\s+[AP]M)\s+\w+\s+(\w+\s+\d+)`)

	// IATACodePattern matches an isolated 2-uppercase-letter airline code.
	IATACodePattern = regexp.MustCompile(`\b([A-Z]{2})\b`)

	// FlightNumPattern matches airline code + flight number, e.g. "DL 42",
	// "VS-3", "DAL1260".
	FlightNumPattern = regexp.MustCompile(`([A-Z]{2,3})[\s-]?(\d{1,4})`)

	// DigitsPattern matches the first run of digits.
	DigitsPattern = regexp.MustCompile(`\d+`)

	// nonNumericPattern strips everything except digits and separators
	// before price parsing.
	nonNumericPattern = regexp.MustCompile(`[^\d.,]`)

	// nonAlphaPattern strips non-letters when deriving airline codes.
	nonAlphaPattern = regexp.MustCompile(`[^A-Za-z]`)
)

// Labeled price patterns, tried in order. The first three carry an explicit
// label from the page; the currency-sign pattern is the catch-all.
var (
	PricePerPassengerPattern = regexp.MustCompile(`(?i)price per passenger:\s*\$(\d+(?:,\d{3})*(?:\.\d{2})?)`)
	PricePerAdultPattern     = regexp.MustCompile(`(?i)price per adult:\s*\$(\d+(?:,\d{3})*(?:\.\d{2})?)`)
	PricePerMilePattern      = regexp.MustCompile(`(?i)price per mile:\s*\$(\d+(?:\.\d+)?)`)
	PriceGeneralPattern      = regexp.MustCompile(`\$(\d+(?:,\d{3})*(?:\.\d{2})?)`)

	// USD-suffixed/prefixed amounts, for container row text without a sign.
	PriceUSDSuffixPattern = regexp.MustCompile(`(\d+(?:,\d{3})*(?:\.\d{2})?)\s*USD`)
	PriceUSDPrefixPattern = regexp.MustCompile(`USD\s*(\d+(?:,\d{3})*(?:\.\d{2})?)`)
)

// airlineSeed maps lower-cased carrier name fragments to IATA codes.
// Longer names come before their prefixes so substring lookup picks the
// most specific entry ("virgin atlantic" before "virgin").
var airlineSeed = []struct {
	Name string
	Code string
}{
	{"virgin atlantic", "VS"},
	{"virgin", "VS"},
	{"british airways", "BA"},
	{"air france", "AF"},
	{"qatar airways", "QR"},
	{"qatar", "QR"},
	{"delta", "DL"},
	{"american", "AA"},
	{"united", "UA"},
	{"southwest", "WN"},
	{"jetblue", "B6"},
	{"alaska", "AS"},
	{"spirit", "NK"},
	{"frontier", "F9"},
	{"lufthansa", "LH"},
	{"klm", "KL"},
	{"emirates", "EK"},
	{"turkish", "TK"},
}

// SeedAirlineNames are the display names probed by substring search when
// scanning free text for carrier mentions, in match-priority order.
var SeedAirlineNames = []string{
	"Virgin Atlantic",
	"British Airways",
	"Air France",
	"Qatar Airways",
	"Delta",
	"American",
	"United",
	"Southwest",
	"JetBlue",
	"Alaska",
	"Spirit",
	"Frontier",
	"Lufthansa",
	"KLM",
	"Emirates",
	"Turkish",
}

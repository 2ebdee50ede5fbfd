package patterns

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// PriceKind labels where a price candidate came from on the page.
type PriceKind string

const (
	PricePerPassenger PriceKind = "per_passenger"
	PricePerAdult     PriceKind = "per_adult"
	PricePerMile      PriceKind = "per_mile"
	PriceGeneral      PriceKind = "general"
)

// PriceCandidate is a labeled price amount extracted from fragment text.
type PriceCandidate struct {
	Kind   PriceKind
	Amount decimal.Decimal
}

// ParsePrice extracts a decimal amount from arbitrary price text. It strips
// everything except digits and separators, then disambiguates decimal vs
// thousands separators: when both "," and "." appear, the earlier one is
// the thousands separator ("1,234.56" and "1.234,56" both yield 1234.56).
// A lone comma followed by exactly two digits is a decimal point.
func ParsePrice(text string) (decimal.Decimal, bool) {
	if text == "" {
		return decimal.Zero, false
	}

	clean := nonNumericPattern.ReplaceAllString(text, "")
	if clean == "" {
		return decimal.Zero, false
	}

	hasComma := strings.Contains(clean, ",")
	hasDot := strings.Contains(clean, ".")

	switch {
	case hasComma && hasDot:
		if strings.Index(clean, ".") < strings.Index(clean, ",") {
			// European convention: 1.234,56
			clean = strings.ReplaceAll(clean, ".", "")
			clean = strings.ReplaceAll(clean, ",", ".")
		} else {
			// US convention: 1,234.56
			clean = strings.ReplaceAll(clean, ",", "")
		}
	case hasComma && strings.Count(clean, ",") == 1:
		parts := strings.SplitN(clean, ",", 2)
		if len(parts[1]) == 2 {
			// Decimal comma: 123,45
			clean = parts[0] + "." + parts[1]
		} else {
			clean = strings.ReplaceAll(clean, ",", "")
		}
	case hasComma:
		clean = strings.ReplaceAll(clean, ",", "")
	}

	amount, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, false
	}
	return amount, true
}

// labeledPriceRules is the ordered rule table for labeled price extraction.
var labeledPriceRules = []struct {
	kind    PriceKind
	pattern *regexp.Regexp
}{
	{PricePerPassenger, PricePerPassengerPattern},
	{PricePerMile, PricePerMilePattern},
	{PricePerAdult, PricePerAdultPattern},
	{PriceGeneral, PriceGeneralPattern},
}

// ExtractPriceCandidates finds all labeled prices in text. Later matches of
// the same kind overwrite earlier ones, mirroring how the page repeats the
// same figure across fragments.
func ExtractPriceCandidates(text string) []PriceCandidate {
	byKind := make(map[PriceKind]decimal.Decimal)
	var order []PriceKind

	for _, rule := range labeledPriceRules {
		for _, m := range rule.pattern.FindAllStringSubmatch(text, -1) {
			amount, err := decimal.NewFromString(strings.ReplaceAll(m[1], ",", ""))
			if err != nil {
				continue
			}
			if _, seen := byKind[rule.kind]; !seen {
				order = append(order, rule.kind)
			}
			byKind[rule.kind] = amount
		}
	}

	candidates := make([]PriceCandidate, 0, len(order))
	for _, kind := range order {
		candidates = append(candidates, PriceCandidate{Kind: kind, Amount: byKind[kind]})
	}
	return candidates
}

// BestPrice resolves "the" price from a candidate set in priority order
// per_passenger, per_adult, general. Per-mile figures never stand in for a
// fare.
func BestPrice(candidates []PriceCandidate) (decimal.Decimal, bool) {
	for _, kind := range []PriceKind{PricePerPassenger, PricePerAdult, PriceGeneral} {
		for _, c := range candidates {
			if c.Kind == kind {
				return c.Amount, true
			}
		}
	}
	return decimal.Zero, false
}

// ExtractMainPrice pulls the headline fare from row text: a $-amount, then
// USD-suffixed, then USD-prefixed forms.
func ExtractMainPrice(text string) (decimal.Decimal, bool) {
	for _, re := range []*regexp.Regexp{PriceGeneralPattern, PriceUSDSuffixPattern, PriceUSDPrefixPattern} {
		if m := re.FindStringSubmatch(text); len(m) > 1 {
			if amount, err := decimal.NewFromString(strings.ReplaceAll(m[1], ",", "")); err == nil {
				return amount, true
			}
		}
	}
	return decimal.Zero, false
}

package patterns

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
		ok   bool
	}{
		{"dollar sign", "$500", "500", true},
		{"us convention", "$1,234.56", "1234.56", true},
		{"european convention", "1.234,56", "1234.56", true},
		{"decimal comma", "123,45", "123.45", true},
		{"thousands comma only", "1,234", "1234", true},
		{"plain integer", "899", "899", true},
		{"embedded in text", "Total: $2,150.00 per person", "2150.00", true},
		{"empty", "", "", false},
		{"no digits", "free", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParsePrice(tt.text)
			if ok != tt.ok {
				t.Fatalf("ParsePrice(%q) ok = %v, want %v", tt.text, ok, tt.ok)
			}
			if !ok {
				return
			}
			want := decimal.RequireFromString(tt.want)
			if !got.Equal(want) {
				t.Errorf("ParsePrice(%q) = %s, want %s", tt.text, got, want)
			}
		})
	}
}

func TestExtractPriceCandidates(t *testing.T) {
	text := "Price per passenger: $1,050.00 taxes included $899 Price per mile: $0.12"

	candidates := ExtractPriceCandidates(text)
	byKind := make(map[PriceKind]decimal.Decimal)
	for _, c := range candidates {
		byKind[c.Kind] = c.Amount
	}

	if got, ok := byKind[PricePerPassenger]; !ok || !got.Equal(decimal.RequireFromString("1050.00")) {
		t.Errorf("per_passenger = %s (ok=%v), want 1050.00", got, ok)
	}
	if _, ok := byKind[PricePerMile]; !ok {
		t.Errorf("per_mile candidate missing")
	}
	// The general pattern matches every $-amount; the last one wins.
	if got, ok := byKind[PriceGeneral]; !ok || !got.Equal(decimal.RequireFromString("899")) {
		t.Errorf("general = %s (ok=%v), want 899", got, ok)
	}
}

func TestBestPrice(t *testing.T) {
	passenger := PriceCandidate{PricePerPassenger, decimal.RequireFromString("1050")}
	adult := PriceCandidate{PricePerAdult, decimal.RequireFromString("980")}
	mile := PriceCandidate{PricePerMile, decimal.RequireFromString("0.12")}
	general := PriceCandidate{PriceGeneral, decimal.RequireFromString("899")}

	tests := []struct {
		name       string
		candidates []PriceCandidate
		want       string
		ok         bool
	}{
		{"per passenger wins", []PriceCandidate{general, adult, passenger}, "1050", true},
		{"per adult next", []PriceCandidate{general, adult}, "980", true},
		{"general last", []PriceCandidate{mile, general}, "899", true},
		{"per mile never a fare", []PriceCandidate{mile}, "", false},
		{"no candidates", nil, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := BestPrice(tt.candidates)
			if ok != tt.ok {
				t.Fatalf("BestPrice() ok = %v, want %v", ok, tt.ok)
			}
			if ok && !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("BestPrice() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestExtractMainPrice(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
		ok   bool
	}{
		{"dollar sign", "Delta $1,234 round trip", "1234", true},
		{"usd suffix", "1,299 USD nonstop", "1299", true},
		{"usd prefix", "from USD 450", "450", true},
		{"cents", "$2,150.00", "2150.00", true},
		{"no price", "no fares available", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractMainPrice(tt.text)
			if ok != tt.ok {
				t.Fatalf("ExtractMainPrice(%q) ok = %v, want %v", tt.text, ok, tt.ok)
			}
			if ok && !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("ExtractMainPrice(%q) = %s, want %s", tt.text, got, tt.want)
			}
		})
	}
}

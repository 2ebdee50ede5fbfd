package page

import (
	"reflect"
	"testing"
)

func TestDecodeFlat(t *testing.T) {
	raw := `{
		"url": "https://example.com/search",
		"containers": [{"text": "Delta $1,234", "described_by": "cdk-describedby-message-1"}],
		"elements": [{"id": "cdk-describedby-message-1", "text": "JFK time: 6:25 AM Sat July 12"}]
	}`

	snap, kind := Decode([]byte(raw))
	if snap == nil {
		t.Fatal("Decode returned nil")
	}
	if kind != "flat" {
		t.Errorf("kind = %q, want %q", kind, "flat")
	}
	if len(snap.Containers) != 1 || len(snap.Elements) != 1 {
		t.Errorf("containers = %d, elements = %d, want 1 and 1", len(snap.Containers), len(snap.Elements))
	}
	if snap.URL != "https://example.com/search" {
		t.Errorf("URL = %q", snap.URL)
	}
}

func TestDecodeFeed(t *testing.T) {
	raw := `{
		"source": {"name": "harvester-1", "application": "matrix"},
		"snapshot": {"containers": [{"text": "$500"}]}
	}`

	snap, kind := Decode([]byte(raw))
	if snap == nil {
		t.Fatal("Decode returned nil")
	}
	if kind != "feed" {
		t.Errorf("kind = %q, want %q", kind, "feed")
	}
	if len(snap.Containers) != 1 {
		t.Errorf("containers = %d, want 1", len(snap.Containers))
	}
}

func TestDecodeRejects(t *testing.T) {
	for _, raw := range []string{
		"not json at all {",
		"{}",
		`{"containers": [], "elements": []}`,
		`{"snapshot": {}}`,
	} {
		if snap, kind := Decode([]byte(raw)); snap != nil {
			t.Errorf("Decode(%q) = (%v, %q), want nil", raw, snap, kind)
		}
	}
}

func TestElementHelpers(t *testing.T) {
	e := Element{Attrs: map[string]string{"aria-describedby": "a b", "data-tooltip": "dt"}}
	if got := e.DescribedBy(); got != "a b" {
		t.Errorf("DescribedBy() = %q, want %q", got, "a b")
	}
	if got := e.Attr("data-tooltip"); got != "dt" {
		t.Errorf("Attr(data-tooltip) = %q, want %q", got, "dt")
	}

	var bare Element
	if got := bare.Attr("anything"); got != "" {
		t.Errorf("Attr on nil map = %q, want empty", got)
	}
}

func TestDescribedByIDs(t *testing.T) {
	tests := []struct {
		value string
		want  []string
	}{
		{"a b c", []string{"a", "b", "c"}},
		{"  a   b ", []string{"a", "b"}},
		{"", nil},
	}

	for _, tt := range tests {
		got := DescribedByIDs(tt.value)
		if len(got) == 0 && len(tt.want) == 0 {
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("DescribedByIDs(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

package patterns

import "testing"

func TestExtractTimeMentions(t *testing.T) {
	text := "JFK time: 6:25 AM Sat July 12 LHR time: 9:50 PM Sat July 12"

	mentions := ExtractTimeMentions(text)
	if len(mentions) != 2 {
		t.Fatalf("ExtractTimeMentions returned %d mentions, want 2", len(mentions))
	}

	if mentions[0].Airport != "JFK" || mentions[0].ClockTime != "6:25 AM" || mentions[0].TravelDate != "Sat July 12" {
		t.Errorf("mention 0 = %+v, want JFK 6:25 AM Sat July 12", mentions[0])
	}
	if mentions[1].Airport != "LHR" || mentions[1].ClockTime != "9:50 PM" {
		t.Errorf("mention 1 = %+v, want LHR 9:50 PM", mentions[1])
	}
	if mentions[0].SourceText != text {
		t.Errorf("mention 0 source text not preserved")
	}
}

func TestExtractTimeMentionsNone(t *testing.T) {
	if got := ExtractTimeMentions("no mentions here"); got != nil {
		t.Errorf("ExtractTimeMentions = %v, want nil", got)
	}
}

func TestMentionStampText(t *testing.T) {
	m := TimeMention{Airport: "JFK", ClockTime: "6:25 AM", TravelDate: "Sat July 12"}
	want := "6:25 AM Sat July 12"
	if got := m.MentionStampText(); got != want {
		t.Errorf("MentionStampText() = %q, want %q", got, want)
	}

	// The rebuilt text must round-trip through the stamp parser.
	if _, ok := ParseMentionStamp(m.MentionStampText()); !ok {
		t.Errorf("ParseMentionStamp(%q) failed", m.MentionStampText())
	}
}

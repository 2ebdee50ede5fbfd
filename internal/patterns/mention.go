package patterns

// TimeMention is a parsed (airport, clock time, travel date) triple from a
// tooltip line like "LHR time: 6:25 AM Sat July 12".
type TimeMention struct {
	Airport    string // 3-letter code as written on the page
	ClockTime  string // "6:25 AM"
	TravelDate string // "Sat July 12"
	SourceText string // the full fragment the mention came from
}

// ExtractTimeMentions finds all airport time mentions in a fragment.
func ExtractTimeMentions(text string) []TimeMention {
	matches := TimeMentionPattern.FindAllStringSubmatch(text, -1)
	if matches == nil {
		return nil
	}

	mentions := make([]TimeMention, 0, len(matches))
	for _, m := range matches {
		mentions = append(mentions, TimeMention{
			Airport:    m[1],
			ClockTime:  m[2],
			TravelDate: m[3],
			SourceText: text,
		})
	}
	return mentions
}

// MentionStampText rebuilds the combined timestamp text for a mention,
// suitable for ParseMentionStamp.
func (m TimeMention) MentionStampText() string {
	return m.ClockTime + " " + m.TravelDate
}

package patterns

import (
	"regexp"
	"strconv"
	"strings"
)

// durationRules is the ordered rule table for duration parsing. First match
// wins: hours+minutes, colon form, minutes-only, hours-only.
var durationRules = []struct {
	pattern *regexp.Regexp
	minutes func(m []string) int
}{
	{
		// 2h 30m, 1hr 45min, 3 hours 15 minutes
		regexp.MustCompile(`(\d+)\s*(?:h|hr|hour|hours)\s*(\d+)\s*(?:m|min|minute|minutes)?`),
		func(m []string) int { return atoi(m[1])*60 + atoi(m[2]) },
	},
	{
		// 2:30
		regexp.MustCompile(`(\d+):(\d+)`),
		func(m []string) int { return atoi(m[1])*60 + atoi(m[2]) },
	},
	{
		// 90m, 45 minutes
		regexp.MustCompile(`(\d+)\s*(?:m|min|minute|minutes)(?:\s|$)`),
		func(m []string) int { return atoi(m[1]) },
	},
	{
		// 2h, 1 hour
		regexp.MustCompile(`(\d+)\s*(?:h|hr|hour|hours)(?:\s|$)`),
		func(m []string) int { return atoi(m[1]) * 60 },
	},
}

// ParseDurationMinutes converts duration text to total minutes. Returns
// false when no rule matches; malformed input never panics.
func ParseDurationMinutes(text string) (int, bool) {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return 0, false
	}

	for _, rule := range durationRules {
		if m := rule.pattern.FindStringSubmatch(text); m != nil {
			return rule.minutes(m), true
		}
	}
	return 0, false
}

// FormatDuration renders minutes as "2h 30m", "2h" or "45m".
func FormatDuration(minutes int) string {
	if minutes < 0 {
		return "0m"
	}

	hours := minutes / 60
	mins := minutes % 60

	if hours > 0 {
		if mins > 0 {
			return strconv.Itoa(hours) + "h " + strconv.Itoa(mins) + "m"
		}
		return strconv.Itoa(hours) + "h"
	}
	return strconv.Itoa(mins) + "m"
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

package parser

import (
	"regexp"
	"strings"
)

// priorityPattern matches a "!" marker followed by a level name or its
// one-letter abbreviation, bounded by whitespace or string edges. Full
// words come first in the alternation so "!low" is not consumed as "!l".
var priorityPattern = regexp.MustCompile(`(?i)(^|\s)!(low|medium|high|l|m|h)($|\s)`)

var priorityLevels = map[string]Priority{
	"l":      PriorityLow,
	"low":    PriorityLow,
	"m":      PriorityMedium,
	"medium": PriorityMedium,
	"h":      PriorityHigh,
	"high":   PriorityHigh,
}

// extractPriority finds the first "!" priority marker in s, strips it and
// returns the cleaned string and the canonical level. Only the first
// match is honored; later markers stay in the title.
func extractPriority(s string) (string, Priority) {
	loc := priorityPattern.FindStringSubmatchIndex(s)
	if loc == nil {
		return s, PriorityNone
	}
	level := priorityLevels[strings.ToLower(group(s, loc, 2))]
	return stripSpan(s, loc[4]-1, loc[5]), level
}

package parser

import (
	"regexp"
)

// tagPattern matches a whole whitespace-delimited token of the form
// "#name". Tokens that merely contain a '#' somewhere do not qualify.
var tagPattern = regexp.MustCompile(`(^|\s)#([A-Za-z0-9_-]+)($|\s)`)

// extractHashtags pulls all "#tag" tokens out of s. It returns the
// cleaned string and the tag names in order of appearance, including
// duplicates. Each pass strips the span it matched, so a '#' embedded
// in an earlier word is never touched.
func extractHashtags(s string) (string, []string) {
	var tags []string
	for {
		loc := tagPattern.FindStringSubmatchIndex(s)
		if loc == nil {
			break
		}
		tags = append(tags, group(s, loc, 2))
		s = stripSpan(s, loc[4]-1, loc[5])
	}
	return s, tags
}

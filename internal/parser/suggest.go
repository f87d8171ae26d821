package parser

import (
	"regexp"
	"strings"
)

// Suggestion is an autocomplete proposal for a partial marker at the end
// of a query. Base is the query prefix the selected candidate should be
// appended to (including the marker character itself being re-added by
// the host as "base + marker + candidate").
type Suggestion struct {
	Base       string
	Candidates []string
}

// The probes operate on the raw query, not the cleaned title, so they
// keep working while the user is still typing.
var (
	trailingProjectPattern  = regexp.MustCompile(`~([^\s]*)$`)
	trailingPriorityPattern = regexp.MustCompile(`!([^\s]*)$`)
)

// SuggestProjects proposes project-name completions for a query ending
// in "~partial". Candidates are known display names with the partial as
// case-insensitive prefix, strictly longer than the partial, capped at
// the configured maximum. Without a trailing marker (or without a
// project directory) the candidate list is empty and Base is the query
// itself.
func (p *Parser) SuggestProjects(query string) Suggestion {
	m := trailingProjectPattern.FindStringSubmatchIndex(query)
	if m == nil {
		return Suggestion{Base: query}
	}
	base := query[:m[0]]
	partial := query[m[2]:m[3]]

	return Suggestion{
		Base:       base,
		Candidates: p.completeNames(p.projects.Load().Names(), partial),
	}
}

// SuggestPriorities proposes priority-level completions for a query
// ending in "!partial".
func (p *Parser) SuggestPriorities(query string) Suggestion {
	m := trailingPriorityPattern.FindStringSubmatchIndex(query)
	if m == nil {
		return Suggestion{Base: query}
	}
	base := query[:m[0]]
	partial := query[m[2]:m[3]]

	levels := []string{string(PriorityHigh), string(PriorityLow), string(PriorityMedium)}
	return Suggestion{
		Base:       base,
		Candidates: p.completeNames(levels, partial),
	}
}

// completeNames filters names down to those with partial as a
// case-insensitive proper prefix.
func (p *Parser) completeNames(names []string, partial string) []string {
	lower := strings.ToLower(partial)

	var candidates []string
	for _, name := range names {
		if len(name) <= len(partial) {
			continue
		}
		if !strings.HasPrefix(strings.ToLower(name), lower) {
			continue
		}
		candidates = append(candidates, name)
		if len(candidates) == p.maxSuggestions {
			break
		}
	}
	return candidates
}

package parser

import (
	"log/slog"
	"strings"
	"sync/atomic"
	"time"
)

// Priority is a canonical task priority level.
type Priority string

// Priority levels recognized by the "!" marker.
const (
	PriorityNone   Priority = ""
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Result holds everything extracted from a single query.
// All fields are freshly computed per Parse call; nothing is shared.
type Result struct {
	// Title is the working string after all annotations have been
	// stripped, with surrounding whitespace trimmed.
	Title string

	// Tags are the "#tag" names in order of appearance, without the '#'.
	// Duplicates are preserved.
	Tags []string

	// Priority is the level extracted from a "!" marker, or PriorityNone.
	Priority Priority

	// ProjectName and ProjectID identify the project matched by a "~name"
	// reference. Both are empty when no project matched.
	ProjectName string
	ProjectID   string

	// Date is the extracted due date (local midnight). Only valid when
	// HasDate is true.
	Date    time.Time
	HasDate bool

	// Hour and Minute hold the extracted clock time. Only valid when
	// HasTime is true; HasTime implies HasDate.
	Hour    int
	Minute  int
	HasTime bool

	// Timezone is the process-local zone abbreviation (e.g. "CET").
	// It is set on every result, whether or not a date was found.
	Timezone string
}

// AllDay reports whether the result carries a date without a clock time.
func (r Result) AllDay() bool {
	return r.HasDate && !r.HasTime
}

// DueTime combines date and time into a single local instant.
// For all-day results the time component is midnight.
func (r Result) DueTime() time.Time {
	if !r.HasDate {
		return time.Time{}
	}
	return time.Date(r.Date.Year(), r.Date.Month(), r.Date.Day(), r.Hour, r.Minute, 0, 0, time.Local)
}

// Parser runs the extraction pipeline. The zero value is not usable;
// construct with New.
type Parser struct {
	// projects holds the current ProjectIndex snapshot. Refreshes swap
	// the pointer while Parse calls read it, so access goes through
	// atomic loads and stores.
	projects       atomic.Pointer[ProjectIndex]
	maxSuggestions int
	logger         *slog.Logger

	// now is the clock used for rollover decisions. Injectable for tests.
	now func() time.Time
}

// Option configures a Parser.
type Option func(*Parser)

// WithProjects supplies the project directory snapshot used to resolve
// "~name" references. Without it, project extraction is a no-op.
func WithProjects(idx *ProjectIndex) Option {
	return func(p *Parser) { p.projects.Store(idx) }
}

// WithMaxSuggestions caps the number of autocomplete candidates returned
// by the suggestion probes.
func WithMaxSuggestions(n int) Option {
	return func(p *Parser) { p.maxSuggestions = n }
}

// WithLogger sets the logger used for malformed-date warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Parser) { p.logger = logger }
}

// WithClock overrides the time source. Tests use this to pin "today".
func WithClock(now func() time.Time) Option {
	return func(p *Parser) { p.now = now }
}

// DefaultMaxSuggestions is the default cap for autocomplete candidates.
const DefaultMaxSuggestions = 5

// New creates a Parser with the given options.
func New(opts ...Option) *Parser {
	p := &Parser{
		maxSuggestions: DefaultMaxSuggestions,
		logger:         slog.Default(),
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// SetProjects replaces the project directory snapshot. The index is
// swapped wholesale via an atomic store, never mutated, so Parse calls
// running concurrently with a refresh read either the old snapshot or
// the new one, both complete.
func (p *Parser) SetProjects(idx *ProjectIndex) {
	p.projects.Store(idx)
}

// Parse runs the full extraction pipeline on query and returns the
// structured result. The pipeline order is fixed: hashtags, priority,
// project, date/time. Each pass sees the string as left by the previous
// one.
func (p *Parser) Parse(query string) Result {
	var res Result

	s := query
	s, res.Tags = extractHashtags(s)
	s, res.Priority = extractPriority(s)
	s, res.ProjectName, res.ProjectID = p.projects.Load().extract(s)
	s, dt := p.extractDateTime(s)

	res.Date = dt.date
	res.HasDate = dt.hasDate
	res.Hour = dt.hour
	res.Minute = dt.minute
	res.HasTime = dt.hasTime
	res.Timezone = dt.zone
	res.Title = strings.TrimSpace(s)

	return res
}

// stripSpan removes s[start:end], swallowing one adjacent space so the
// removal does not leave a double space behind. The span is the exact
// range a recognizer matched; an equal token appearing earlier in the
// string is left alone.
func stripSpan(s string, start, end int) string {
	if start > 0 && s[start-1] == ' ' {
		start--
	} else if end < len(s) && s[end] == ' ' {
		end++
	}
	return s[:start] + s[end:]
}

// group returns the text of capture group i from a
// FindStringSubmatchIndex result, or "" when the group did not
// participate in the match.
func group(s string, loc []int, i int) string {
	if loc[2*i] < 0 {
		return ""
	}
	return s[loc[2*i]:loc[2*i+1]]
}

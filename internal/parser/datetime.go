package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// dateTime accumulates the output of the date/time recognizers.
type dateTime struct {
	date    time.Time
	hasDate bool
	hour    int
	minute  int
	hasTime bool
	zone    string
}

// The recognizers run in a fixed order and are independent probes: each
// one that matches commits its result and strips its span, and a later
// recognizer may overwrite the date committed by an earlier one. That
// overwrite is deliberate, long-standing behavior and pinned by tests.
var (
	europeanDatePattern = regexp.MustCompile(`(^|\s)(([0-2][0-9]|3[01])\.(0[0-9]|1[0-2])(?:\.((?:20)?[0-9]{2})?)?)($|\s)`)
	americanDatePattern = regexp.MustCompile(`(^|\s)((0[0-9]|1[0-2])/([0-2][0-9]|3[01])(?:/((?:20)?[0-9]{2}))?)($|\s)`)
	isoDatePattern      = regexp.MustCompile(`(^|\s)((20[0-9]{2})-(0[0-9]|1[0-2])-([0-2][0-9]|3[01]))($|\s)`)

	textualMonthPattern = regexp.MustCompile(`(?i)(^|\s)((january|february|march|april|may|june|july|august|september|october|november|december|jan|feb|mar|apr|jun|jul|aug|sep|oct|nov|dec)\.?(?:\s+([0-2]?[0-9]|3[01])(?:th|st|nd|rd|\.)?(?:\s+((?:20)?[0-9]{2}))?)?)($|\s)`)

	relativePeriodPattern = regexp.MustCompile(`(?i)(^|\s)(next\s+(week|month|year|wk|mon|yr))($|\s)`)
	todayPattern          = regexp.MustCompile(`(?i)(^|\s)(today|tod)($|\s)`)
	tomorrowPattern       = regexp.MustCompile(`(?i)(^|\s)(tomorrow|tom)($|\s)`)
	clockTimePattern      = regexp.MustCompile(`(^|\s)(([01]?[0-9]|2[0-3]):([0-5][0-9]))($|\s)`)
)

var monthsByName = map[string]time.Month{
	"jan": time.January, "january": time.January,
	"feb": time.February, "february": time.February,
	"mar": time.March, "march": time.March,
	"apr": time.April, "april": time.April,
	"may": time.May,
	"jun": time.June, "june": time.June,
	"jul": time.July, "july": time.July,
	"aug": time.August, "august": time.August,
	"sep": time.September, "september": time.September,
	"oct": time.October, "october": time.October,
	"nov": time.November, "november": time.November,
	"dec": time.December, "december": time.December,
}

// extractDateTime runs all date/time recognizers over s in order and
// returns the cleaned string and the accumulated result. The local zone
// abbreviation is always set, even when nothing matched.
func (p *Parser) extractDateTime(s string) (string, dateTime) {
	var dt dateTime

	recognizers := []func(string, *dateTime) string{
		p.recognizeEuropeanDate,
		p.recognizeAmericanDate,
		p.recognizeISODate,
		p.recognizeTextualMonth,
		p.recognizeRelativePeriod,
		p.recognizeToday,
		p.recognizeTomorrow,
		p.recognizeClockTime,
	}
	for _, recognize := range recognizers {
		s = recognize(s, &dt)
	}

	dt.zone, _ = p.now().Zone()
	return s, dt
}

// today returns the current date at local midnight.
func (p *Parser) today() time.Time {
	now := p.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
}

// makeDate builds a local-midnight date and reports whether the
// components denote a real calendar day. time.Date normalizes overflow
// (Apr 31 becomes May 1), so validity is checked by comparing back.
func makeDate(year int, month time.Month, day int) (time.Time, bool) {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.Local)
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

// expandYear maps a 2-digit year to a full year using the POSIX pivot:
// 69-99 mean 19xx, 00-68 mean 20xx.
func expandYear(year int) int {
	if year >= 100 {
		return year
	}
	if year >= 69 {
		return year + 1900
	}
	return year + 2000
}

// resolveDate applies the shared year rules: a missing year defaults to
// the current one and rolls forward a year when the date has already
// passed; an explicit year is taken as-is (2-digit years expanded) and
// never advanced.
func (p *Parser) resolveDate(yearStr string, month time.Month, day int) (time.Time, bool) {
	if yearStr == "" {
		today := p.today()
		date, ok := makeDate(today.Year(), month, day)
		if !ok {
			return time.Time{}, false
		}
		if today.After(date) {
			return makeDate(today.Year()+1, month, day)
		}
		return date, true
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return time.Time{}, false
	}
	return makeDate(expandYear(year), month, day)
}

func (p *Parser) recognizeEuropeanDate(s string, dt *dateTime) string {
	loc := europeanDatePattern.FindStringSubmatchIndex(s)
	if loc == nil {
		return s
	}
	day, _ := strconv.Atoi(group(s, loc, 3))
	month, _ := strconv.Atoi(group(s, loc, 4))

	date, ok := p.resolveDate(group(s, loc, 5), time.Month(month), day)
	if !ok {
		p.logger.Warn("cannot parse date", "token", group(s, loc, 2))
		return s
	}
	dt.date, dt.hasDate = date, true
	return stripSpan(s, loc[4], loc[5])
}

func (p *Parser) recognizeAmericanDate(s string, dt *dateTime) string {
	loc := americanDatePattern.FindStringSubmatchIndex(s)
	if loc == nil {
		return s
	}
	month, _ := strconv.Atoi(group(s, loc, 3))
	day, _ := strconv.Atoi(group(s, loc, 4))

	date, ok := p.resolveDate(group(s, loc, 5), time.Month(month), day)
	if !ok {
		p.logger.Warn("cannot parse date", "token", group(s, loc, 2))
		return s
	}
	dt.date, dt.hasDate = date, true
	return stripSpan(s, loc[4], loc[5])
}

func (p *Parser) recognizeISODate(s string, dt *dateTime) string {
	loc := isoDatePattern.FindStringSubmatchIndex(s)
	if loc == nil {
		return s
	}
	year, _ := strconv.Atoi(group(s, loc, 3))
	month, _ := strconv.Atoi(group(s, loc, 4))
	day, _ := strconv.Atoi(group(s, loc, 5))

	// The year is explicit by construction, so no rollover applies.
	date, ok := makeDate(year, time.Month(month), day)
	if !ok {
		p.logger.Warn("cannot parse date", "token", group(s, loc, 2))
		return s
	}
	dt.date, dt.hasDate = date, true
	return stripSpan(s, loc[4], loc[5])
}

func (p *Parser) recognizeTextualMonth(s string, dt *dateTime) string {
	loc := textualMonthPattern.FindStringSubmatchIndex(s)
	if loc == nil {
		return s
	}
	month := monthsByName[strings.ToLower(group(s, loc, 3))]

	day := 1
	if g := group(s, loc, 4); g != "" {
		day, _ = strconv.Atoi(g)
	}

	date, ok := p.resolveDate(group(s, loc, 5), month, day)
	if !ok {
		p.logger.Warn("cannot parse date", "token", group(s, loc, 2))
		return s
	}
	dt.date, dt.hasDate = date, true
	return stripSpan(s, loc[4], loc[5])
}

func (p *Parser) recognizeRelativePeriod(s string, dt *dateTime) string {
	loc := relativePeriodPattern.FindStringSubmatchIndex(s)
	if loc == nil {
		return s
	}
	today := p.today()

	switch strings.ToLower(group(s, loc, 3)) {
	case "week", "wk":
		// Days until the next Monday-aligned week boundary.
		weekday := (int(today.Weekday()) + 6) % 7 // 0 = Monday
		dt.date = today.AddDate(0, 0, 7-weekday)
	case "month", "mon":
		if today.Month() == time.December {
			dt.date = time.Date(today.Year()+1, time.January, 1, 0, 0, 0, 0, time.Local)
		} else {
			dt.date = time.Date(today.Year(), today.Month()+1, 1, 0, 0, 0, 0, time.Local)
		}
	case "year", "yr":
		dt.date = time.Date(today.Year()+1, time.January, 1, 0, 0, 0, 0, time.Local)
	}
	dt.hasDate = true
	return stripSpan(s, loc[4], loc[5])
}

func (p *Parser) recognizeToday(s string, dt *dateTime) string {
	loc := todayPattern.FindStringSubmatchIndex(s)
	if loc == nil {
		return s
	}
	dt.date, dt.hasDate = p.today(), true
	return stripSpan(s, loc[4], loc[5])
}

func (p *Parser) recognizeTomorrow(s string, dt *dateTime) string {
	loc := tomorrowPattern.FindStringSubmatchIndex(s)
	if loc == nil {
		return s
	}
	dt.date, dt.hasDate = p.today().AddDate(0, 0, 1), true
	return stripSpan(s, loc[4], loc[5])
}

func (p *Parser) recognizeClockTime(s string, dt *dateTime) string {
	loc := clockTimePattern.FindStringSubmatchIndex(s)
	if loc == nil {
		return s
	}
	hour, _ := strconv.Atoi(group(s, loc, 3))
	minute, _ := strconv.Atoi(group(s, loc, 4))

	if !dt.hasDate {
		// Implicit "today", rolled to tomorrow when the instant has
		// already passed. An explicit date from an earlier recognizer is
		// never rolled.
		date := p.today()
		instant := time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, time.Local)
		if p.now().After(instant) {
			date = date.AddDate(0, 0, 1)
		}
		dt.date, dt.hasDate = date, true
	}

	dt.hour, dt.minute, dt.hasTime = hour, minute, true
	return stripSpan(s, loc[4], loc[5])
}

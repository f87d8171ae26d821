package launcher

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"tickadd/internal/parser"
)

const (
	describeDateLayout = "02.01.2006"
	describeTimeLayout = "15:04"
)

// describe compiles a human-readable summary of what will happen on
// creation, e.g. "Tag with #a,#b, set due date to 15.03.2025, 14:30 and
// store in ~work.".
func describe(res parser.Result) string {
	var extracts []string

	if len(res.Tags) > 0 {
		tokens := make([]string, len(res.Tags))
		for i, tag := range res.Tags {
			tokens[i] = "#" + tag
		}
		extracts = append(extracts, "tag with "+strings.Join(tokens, ","))
	}

	if res.Priority != parser.PriorityNone {
		extracts = append(extracts, "set priority to "+string(res.Priority))
	}

	if res.HasDate {
		extract := "set due date to " + res.Date.Format(describeDateLayout)
		if res.HasTime {
			extract += ", " + res.DueTime().Format(describeTimeLayout)
		}
		extracts = append(extracts, extract)
	}

	if res.ProjectName != "" {
		extracts = append(extracts, "store in ~"+res.ProjectName)
	}

	if len(extracts) == 0 {
		return ""
	}

	last := extracts[len(extracts)-1]
	sentence := last
	if rest := extracts[:len(extracts)-1]; len(rest) > 0 {
		sentence = strings.Join(rest, ", ") + " and " + last
	}

	return capitalize(sentence) + "."
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

package launcher

import (
	"log/slog"
	"strings"

	"tickadd/internal/auth"
	"tickadd/internal/config"
	"tickadd/internal/parser"
	"tickadd/internal/ticktick"
)

// ActionKind discriminates what selecting an item should do.
type ActionKind string

const (
	// ActionNone items are informational only.
	ActionNone ActionKind = "none"
	// ActionCreate items create the task described by Action.Task.
	ActionCreate ActionKind = "create"
	// ActionAuthorize items start the OAuth flow.
	ActionAuthorize ActionKind = "authorize"
	// ActionSetQuery items replace the current query with Action.Query.
	ActionSetQuery ActionKind = "set-query"
)

// Action is the payload attached to a result item.
type Action struct {
	Kind  ActionKind          `json:"kind"`
	Task  *ticktick.TaskInput `json:"task,omitempty"`
	Query string              `json:"query,omitempty"`
}

// Item is a single launcher result row.
type Item struct {
	Label       string `json:"label"`
	Description string `json:"description"`
	Action      Action `json:"action"`
}

// Engine produces result items for queries. Token state is re-read on
// every call so an authorization completed elsewhere takes effect
// immediately.
type Engine struct {
	cfg    *config.Config
	store  *auth.Store
	parser *parser.Parser
	logger *slog.Logger
}

// NewEngine wires an engine from its collaborators.
func NewEngine(cfg *config.Config, store *auth.Store, p *parser.Parser, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{cfg: cfg, store: store, parser: p, logger: logger}
}

// Query returns the result items for a raw query string. With a stored
// token the single item is a create-task action carrying the parsed
// request; otherwise the item either starts authorization or explains
// that credentials are missing.
func (e *Engine) Query(query string) []Item {
	if e.store.Has() {
		res := e.parser.Parse(query)

		desc := "Type in a task title and press Enter..."
		if len(query) > 0 {
			desc = describe(res)
		}

		input := TaskInput(res)
		return []Item{{
			Label:       "Create new task",
			Description: desc,
			Action:      Action{Kind: ActionCreate, Task: &input},
		}}
	}

	if e.cfg.HasCredentials() {
		return []Item{{
			Label:       "Retrieve access token",
			Description: "Click here to retrieve your access token.",
			Action:      Action{Kind: ActionAuthorize},
		}}
	}

	return []Item{{
		Label:       "No credentials",
		Description: "Provide your client id and secret in the configuration.",
		Action:      Action{Kind: ActionNone},
	}}
}

// Suggest returns completion items for a query ending in a partial
// project or priority marker. Selecting an item replaces the query with
// the completed form.
func (e *Engine) Suggest(query string) []Item {
	if s := e.parser.SuggestProjects(query); len(s.Candidates) > 0 {
		items := make([]Item, 0, len(s.Candidates))
		for _, c := range s.Candidates {
			items = append(items, Item{
				Label:       "~" + c,
				Description: "Store the task in " + c,
				Action:      Action{Kind: ActionSetQuery, Query: s.Base + "~" + c + " "},
			})
		}
		return items
	}

	if s := e.parser.SuggestPriorities(query); len(s.Candidates) > 0 {
		items := make([]Item, 0, len(s.Candidates))
		for _, c := range s.Candidates {
			items = append(items, Item{
				Label:       "!" + c,
				Description: "Set the priority to " + c,
				Action:      Action{Kind: ActionSetQuery, Query: s.Base + "!" + c + " "},
			})
		}
		return items
	}

	return nil
}

// TaskInput converts a parse result into a task-creation request. Tags
// are carried in the description as "#tag" tokens.
func TaskInput(res parser.Result) ticktick.TaskInput {
	input := ticktick.TaskInput{
		Title:     res.Title,
		ProjectID: res.ProjectID,
		Priority:  ticktick.PriorityValue(res.Priority),
	}

	if len(res.Tags) > 0 {
		tokens := make([]string, len(res.Tags))
		for i, tag := range res.Tags {
			tokens[i] = "#" + tag
		}
		input.Description = strings.Join(tokens, " ")
	}

	if res.HasDate {
		input.Due = res.DueTime()
		input.HasDue = true
		input.IsAllDay = res.AllDay()
		input.WithReminder = res.HasTime
	}

	return input
}

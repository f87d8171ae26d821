package ticktick

import (
	"time"

	"tickadd/internal/parser"
)

// Project is a task list/container in TickTick, referenced by opaque id.
type Project struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Task is the subset of the API task representation tickadd reads back.
type Task struct {
	ID        string `json:"id"`
	ProjectID string `json:"projectId"`
	Title     string `json:"title"`
}

// Numeric priority values of the task-creation contract.
const (
	PriorityNone   = 0
	PriorityLow    = 1
	PriorityMedium = 2
	PriorityHigh   = 3
)

// dueDateLayout is ISO-8601 with a UTC offset without colon,
// e.g. "2024-03-15T09:00:00+0100".
const dueDateLayout = "2006-01-02T15:04:05-0700"

// reminderAtDueTime fires a reminder exactly at the due instant. It is
// attached whenever the query carried an explicit clock time.
const reminderAtDueTime = "TRIGGER:PT0S"

// TaskInput describes a task to create.
type TaskInput struct {
	Title       string
	Description string
	ProjectID   string
	Priority    int
	Due         time.Time
	HasDue      bool
	IsAllDay    bool
	// WithReminder attaches a reminder at the due instant.
	WithReminder bool
}

// taskPayload is the wire form of a create-task request.
type taskPayload struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	ProjectID   string   `json:"projectId,omitempty"`
	Priority    int      `json:"priority"`
	DueDate     string   `json:"dueDate,omitempty"`
	IsAllDay    bool     `json:"isAllDay"`
	Reminders   []string `json:"reminders,omitempty"`
}

func (in TaskInput) payload() taskPayload {
	p := taskPayload{
		Title:       in.Title,
		Description: in.Description,
		ProjectID:   in.ProjectID,
		Priority:    in.Priority,
		IsAllDay:    in.IsAllDay,
	}
	if in.HasDue {
		p.DueDate = in.Due.Format(dueDateLayout)
	}
	if in.WithReminder {
		p.Reminders = []string{reminderAtDueTime}
	}
	return p
}

// PriorityValue maps a canonical parser priority to its numeric wire
// value.
func PriorityValue(p parser.Priority) int {
	switch p {
	case parser.PriorityLow:
		return PriorityLow
	case parser.PriorityMedium:
		return PriorityMedium
	case parser.PriorityHigh:
		return PriorityHigh
	default:
		return PriorityNone
	}
}

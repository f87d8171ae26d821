package ticktick_tools

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tickadd/internal/config"
	"tickadd/internal/parser"
	"tickadd/internal/server"
)

func TestNewParseResult(t *testing.T) {
	res := parser.Result{
		Title:       "Team sync",
		Tags:        []string{"meeting"},
		Priority:    parser.PriorityHigh,
		ProjectName: "Work",
		ProjectID:   "p1",
		Date:        time.Date(2025, 3, 15, 0, 0, 0, 0, time.Local),
		HasDate:     true,
		Hour:        14,
		Minute:      30,
		HasTime:     true,
		Timezone:    "CET",
	}

	out := newParseResult(res)
	assert.Equal(t, "Team sync", out.Title)
	assert.Equal(t, "#meeting", out.Description)
	assert.Equal(t, []string{"meeting"}, out.Tags)
	assert.Equal(t, "high", out.Priority)
	assert.Equal(t, "Work", out.ProjectName)
	assert.Equal(t, "p1", out.ProjectID)
	assert.False(t, out.IsAllDay)
	assert.True(t, out.Reminder)
	assert.Equal(t, "CET", out.Timezone)
	assert.Equal(t, time.Date(2025, 3, 15, 14, 30, 0, 0, time.Local).Format("2006-01-02T15:04:05-0700"), out.DueDate)
}

func TestNewParseResultAllDay(t *testing.T) {
	res := parser.Result{
		Title:    "Pay rent",
		Date:     time.Date(2024, 6, 11, 0, 0, 0, 0, time.Local),
		HasDate:  true,
		Timezone: "CET",
	}

	out := newParseResult(res)
	assert.True(t, out.IsAllDay)
	assert.False(t, out.Reminder)
	assert.Empty(t, out.Description)
	assert.Empty(t, out.Priority)
}

func TestNewParseResultPlainTitle(t *testing.T) {
	out := newParseResult(parser.Result{Title: "just text", Timezone: "UTC"})
	assert.Equal(t, "just text", out.Title)
	assert.Empty(t, out.DueDate)
	assert.False(t, out.IsAllDay)
}

func TestRegisterTickTickTools(t *testing.T) {
	sc, err := server.NewServerContext(context.Background(), &config.Config{
		APIBaseURL:     "https://ticktick.invalid",
		TokenPath:      filepath.Join(t.TempDir(), "ticktick.token"),
		MaxSuggestions: 5,
	}, nil)
	require.NoError(t, err)
	defer func() { _ = sc.Shutdown() }()

	s := mcpserver.NewMCPServer("test", "0.0.1")
	require.NoError(t, RegisterTickTickTools(s, sc, nil))
}

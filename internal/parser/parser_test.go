package parser

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedClock pins "now" so rollover logic is deterministic.
func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func testProjects() *ProjectIndex {
	return NewProjectIndex([]Project{
		{ID: "p1", Name: "Work"},
		{ID: "p2", Name: "home"},
	})
}

func TestParsePlainTextUnchanged(t *testing.T) {
	p := New(WithClock(fixedClock(time.Date(2024, 6, 10, 12, 0, 0, 0, time.Local))))

	res := p.Parse("Water the plants every so often")

	assert.Equal(t, "Water the plants every so often", res.Title)
	assert.Empty(t, res.Tags)
	assert.Equal(t, PriorityNone, res.Priority)
	assert.Empty(t, res.ProjectName)
	assert.Empty(t, res.ProjectID)
	assert.False(t, res.HasDate)
	assert.False(t, res.HasTime)
	assert.NotEmpty(t, res.Timezone)
}

func TestParseHashtags(t *testing.T) {
	p := New()

	res := p.Parse("Buy milk #errand #shopping")

	assert.Equal(t, "Buy milk", res.Title)
	assert.Equal(t, []string{"errand", "shopping"}, res.Tags)
}

func TestParseHashtagEdgeCases(t *testing.T) {
	p := New()

	tests := []struct {
		name  string
		query string
		title string
		tags  []string
	}{
		{
			name:  "embedded hash is not a tag",
			query: "issue a#b stays",
			title: "issue a#b stays",
			tags:  nil,
		},
		{
			name:  "bare hash is not a tag",
			query: "look # here",
			title: "look # here",
			tags:  nil,
		},
		{
			name:  "duplicates preserved in order",
			query: "x #a #b #a",
			title: "x",
			tags:  []string{"a", "b", "a"},
		},
		{
			name:  "hyphen and underscore allowed",
			query: "y #to-do_1",
			title: "y",
			tags:  []string{"to-do_1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := p.Parse(tt.query)
			assert.Equal(t, tt.title, res.Title)
			assert.Equal(t, tt.tags, res.Tags)
		})
	}
}

func TestParsePriority(t *testing.T) {
	p := New()

	tests := []struct {
		name     string
		query    string
		title    string
		priority Priority
	}{
		{"full word", "call mom !high", "call mom", PriorityHigh},
		{"abbreviation", "call mom !m", "call mom", PriorityMedium},
		{"case insensitive", "call mom !LOW", "call mom", PriorityLow},
		{"first match wins", "!l then !h", "then !h", PriorityLow},
		{"embedded marker ignored", "ship it!h now", "ship it!h now", PriorityNone},
		{"unknown level ignored", "really !urgent", "really !urgent", PriorityNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := p.Parse(tt.query)
			assert.Equal(t, tt.title, res.Title)
			assert.Equal(t, tt.priority, res.Priority)
		})
	}
}

func TestParseProject(t *testing.T) {
	p := New(WithProjects(testProjects()))

	res := p.Parse("file expenses ~work")

	assert.Equal(t, "file expenses", res.Title)
	assert.Equal(t, "Work", res.ProjectName, "canonical display name, not the typed form")
	assert.Equal(t, "p1", res.ProjectID)
}

func TestParseProjectLongestNameWins(t *testing.T) {
	idx := NewProjectIndex([]Project{
		{ID: "p1", Name: "work"},
		{ID: "p2", Name: "work-private"},
	})
	p := New(WithProjects(idx))

	res := p.Parse("diary ~work-private")

	assert.Equal(t, "diary", res.Title)
	assert.Equal(t, "work-private", res.ProjectName)
	assert.Equal(t, "p2", res.ProjectID)
}

func TestParseProjectWithoutDirectory(t *testing.T) {
	p := New()

	res := p.Parse("file expenses ~work")

	assert.Equal(t, "file expenses ~work", res.Title)
	assert.Empty(t, res.ProjectName)
	assert.Empty(t, res.ProjectID)
}

func TestParseUnknownProjectLeftInPlace(t *testing.T) {
	p := New(WithProjects(testProjects()))

	res := p.Parse("file expenses ~garden")

	assert.Equal(t, "file expenses ~garden", res.Title)
	assert.Empty(t, res.ProjectID)
}

func TestParseFullQuery(t *testing.T) {
	now := time.Date(2025, 1, 10, 9, 0, 0, 0, time.Local)
	p := New(WithProjects(testProjects()), WithClock(fixedClock(now)))

	res := p.Parse("Team sync 15.03.2025 14:30 ~work !high")

	assert.Equal(t, "Team sync", res.Title)
	require.True(t, res.HasDate)
	assert.Equal(t, time.Date(2025, 3, 15, 0, 0, 0, 0, time.Local), res.Date)
	require.True(t, res.HasTime)
	assert.Equal(t, 14, res.Hour)
	assert.Equal(t, 30, res.Minute)
	assert.Equal(t, "Work", res.ProjectName)
	assert.Equal(t, PriorityHigh, res.Priority)
	assert.False(t, res.AllDay())
}

func TestParseStripsMatchedSpanOnly(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.Local)
	p := New(WithClock(fixedClock(now)))

	t.Run("priority marker after lookalike word", func(t *testing.T) {
		res := p.Parse("ship !memo !m")
		assert.Equal(t, "ship !memo", res.Title)
		assert.Equal(t, PriorityMedium, res.Priority)
	})

	t.Run("month name embedded in earlier word", func(t *testing.T) {
		res := p.Parse("call mayday may")
		assert.Equal(t, "call mayday", res.Title)
		require.True(t, res.HasDate)
		assert.Equal(t, time.Date(2025, 5, 1, 0, 0, 0, 0, time.Local), res.Date)
	})

	t.Run("tag embedded in earlier word", func(t *testing.T) {
		res := p.Parse("note#a bla #a")
		assert.Equal(t, "note#a bla", res.Title)
		assert.Equal(t, []string{"a"}, res.Tags)
	})
}

func TestSetProjectsConcurrentWithParse(t *testing.T) {
	p := New(WithProjects(testProjects()))

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			p.SetProjects(NewProjectIndex([]Project{{ID: "p9", Name: "garden"}}))
			p.SetProjects(testProjects())
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			res := p.Parse("water plants ~work")
			// Either snapshot may be current; the reference resolves
			// only while the "Work" snapshot is loaded.
			if res.ProjectID != "" {
				assert.Equal(t, "p1", res.ProjectID)
			}
		}
	}()
	wg.Wait()
}

func TestParseIdempotent(t *testing.T) {
	now := time.Date(2025, 1, 10, 9, 0, 0, 0, time.Local)
	p := New(WithProjects(testProjects()), WithClock(fixedClock(now)))

	first := p.Parse("Team sync 15.03.2025 14:30 ~work !high #standup")
	second := p.Parse(first.Title)

	assert.Equal(t, first.Title, second.Title)
	assert.Empty(t, second.Tags)
	assert.Equal(t, PriorityNone, second.Priority)
	assert.Empty(t, second.ProjectID)
	assert.False(t, second.HasDate)
	assert.False(t, second.HasTime)
}

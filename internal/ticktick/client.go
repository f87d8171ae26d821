package ticktick

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"tickadd/internal/logging"
)

// Client wraps the TickTick open API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a client for the API at baseURL. The httpClient is
// expected to carry authentication (an oauth2 transport); pass
// http.DefaultClient only in tests against unauthenticated fakes.
func NewClient(baseURL string, httpClient *http.Client, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}
}

// GetProjects fetches the project directory.
func (c *Client) GetProjects(ctx context.Context) ([]Project, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/open/v1/project", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build project request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch projects: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch projects: unexpected status %d", resp.StatusCode)
	}

	var projects []Project
	if err := json.NewDecoder(resp.Body).Decode(&projects); err != nil {
		return nil, fmt.Errorf("failed to decode project list: %w", err)
	}

	return projects, nil
}

// CreateTask creates a new task. A whitespace-only title suppresses the
// call entirely and returns (nil, nil); the launcher treats an empty
// query as "nothing to do", not as an error.
func (c *Client) CreateTask(ctx context.Context, input TaskInput) (*Task, error) {
	if strings.TrimSpace(input.Title) == "" {
		c.logger.Debug("skipping task creation for empty title",
			logging.Operation("create_task"))
		return nil, nil
	}

	body, err := json.Marshal(input.payload())
	if err != nil {
		return nil, fmt.Errorf("failed to encode task: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/open/v1/task", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build task request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		// Drain a little of the body for diagnostics.
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("failed to create task: unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var task Task
	if err := json.NewDecoder(resp.Body).Decode(&task); err != nil {
		return nil, fmt.Errorf("failed to decode created task: %w", err)
	}

	c.logger.Info("task created",
		logging.Operation("create_task"),
		logging.Status(logging.StatusSuccess),
		slog.String("task_id", task.ID))

	return &task, nil
}

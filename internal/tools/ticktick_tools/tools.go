package ticktick_tools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"tickadd/internal/instrumentation"
	"tickadd/internal/launcher"
	"tickadd/internal/parser"
	"tickadd/internal/server"
)

// parseResult is the wire form of a parse returned to the MCP client.
type parseResult struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Priority    string   `json:"priority,omitempty"`
	ProjectName string   `json:"projectName,omitempty"`
	ProjectID   string   `json:"projectId,omitempty"`
	DueDate     string   `json:"dueDate,omitempty"`
	IsAllDay    bool     `json:"isAllDay"`
	Reminder    bool     `json:"reminder"`
	Timezone    string   `json:"timezone"`
}

type suggestItem struct {
	Label       string `json:"label"`
	Description string `json:"description"`
	Query       string `json:"query"`
}

type authStatus struct {
	Authenticated  bool   `json:"authenticated"`
	HasCredentials bool   `json:"hasCredentials"`
	TokenPath      string `json:"tokenPath"`
}

func newParseResult(res parser.Result) parseResult {
	out := parseResult{
		Title:       res.Title,
		Tags:        res.Tags,
		Priority:    string(res.Priority),
		ProjectName: res.ProjectName,
		ProjectID:   res.ProjectID,
		IsAllDay:    res.AllDay(),
		Reminder:    res.HasTime,
		Timezone:    res.Timezone,
	}
	input := launcher.TaskInput(res)
	out.Description = input.Description
	if input.HasDue {
		out.DueDate = input.Due.Format("2006-01-02T15:04:05-0700")
	}
	return out
}

// RegisterTickTickTools registers all TickTick tools with the MCP
// server. The metrics recorder may be nil.
func RegisterTickTickTools(s *mcpserver.MCPServer, sc *server.ServerContext, metrics *instrumentation.Metrics) error {
	if metrics == nil {
		metrics = &instrumentation.Metrics{}
	}

	registerParseTool(s, sc, metrics)
	registerCreateTool(s, sc, metrics)
	registerSuggestTool(s, sc, metrics)
	registerRefreshTool(s, sc, metrics)
	registerAuthStatusTool(s, sc, metrics)

	return nil
}

func queryArg(request mcp.CallToolRequest) (string, bool) {
	args, _ := request.Params.Arguments.(map[string]interface{})
	query, ok := args["query"].(string)
	return query, ok
}

func registerParseTool(s *mcpserver.MCPServer, sc *server.ServerContext, metrics *instrumentation.Metrics) {
	tool := mcp.NewTool("ticktick_parse_query",
		mcp.WithDescription("Parse a free-text query into a structured TickTick task request. Recognizes #tags, !priority, ~project and date/time expressions."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("The raw query string, e.g. 'Team sync 15.03.2025 14:30 ~work !high'"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()

		query, ok := queryArg(request)
		if !ok {
			metrics.RecordToolInvocation(ctx, "ticktick_parse_query", instrumentation.StatusError, time.Since(start))
			return mcp.NewToolResultError("query must be a string"), nil
		}

		res := sc.Parser().Parse(query)
		metrics.RecordParse(ctx, instrumentation.StatusSuccess, time.Since(start))

		out, _ := json.MarshalIndent(newParseResult(res), "", "  ")
		metrics.RecordToolInvocation(ctx, "ticktick_parse_query", instrumentation.StatusSuccess, time.Since(start))
		return mcp.NewToolResultText(string(out)), nil
	})
}

func registerCreateTool(s *mcpserver.MCPServer, sc *server.ServerContext, metrics *instrumentation.Metrics) {
	tool := mcp.NewTool("ticktick_create_task",
		mcp.WithDescription("Parse a free-text query and create the resulting task in TickTick. Requires a stored access token (run the auth flow first)."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("The raw query string; annotations are stripped into task fields"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()
		record := func(status string) {
			metrics.RecordToolInvocation(ctx, "ticktick_create_task", status, time.Since(start))
		}

		query, ok := queryArg(request)
		if !ok {
			record(instrumentation.StatusError)
			return mcp.NewToolResultError("query must be a string"), nil
		}

		client := sc.Client()
		if client == nil {
			record(instrumentation.StatusError)
			return mcp.NewToolResultError("not authenticated: no TickTick access token stored. Run 'tickadd auth' to authorize."), nil
		}

		res := sc.Parser().Parse(query)
		input := launcher.TaskInput(res)

		apiStart := time.Now()
		task, err := client.CreateTask(ctx, input)
		if err != nil {
			metrics.RecordAPIOperation(ctx, "create_task", instrumentation.StatusError, time.Since(apiStart))
			record(instrumentation.StatusError)
			return mcp.NewToolResultError(fmt.Sprintf("Failed to create task: %v", err)), nil
		}
		metrics.RecordAPIOperation(ctx, "create_task", instrumentation.StatusSuccess, time.Since(apiStart))

		if task == nil {
			record(instrumentation.StatusSuccess)
			return mcp.NewToolResultText("Nothing to create: the query has no title."), nil
		}

		out, _ := json.MarshalIndent(task, "", "  ")
		record(instrumentation.StatusSuccess)
		return mcp.NewToolResultText(string(out)), nil
	})
}

func registerSuggestTool(s *mcpserver.MCPServer, sc *server.ServerContext, metrics *instrumentation.Metrics) {
	tool := mcp.NewTool("ticktick_suggest",
		mcp.WithDescription("Propose completions for a query ending in a partial ~project or !priority marker."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("The query being typed, e.g. 'Buy milk ~wo'"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()

		query, ok := queryArg(request)
		if !ok {
			metrics.RecordToolInvocation(ctx, "ticktick_suggest", instrumentation.StatusError, time.Since(start))
			return mcp.NewToolResultError("query must be a string"), nil
		}

		items := sc.Engine().Suggest(query)
		out := make([]suggestItem, 0, len(items))
		for _, item := range items {
			out = append(out, suggestItem{
				Label:       item.Label,
				Description: item.Description,
				Query:       item.Action.Query,
			})
		}

		result, _ := json.MarshalIndent(out, "", "  ")
		metrics.RecordToolInvocation(ctx, "ticktick_suggest", instrumentation.StatusSuccess, time.Since(start))
		return mcp.NewToolResultText(string(result)), nil
	})
}

func registerRefreshTool(s *mcpserver.MCPServer, sc *server.ServerContext, metrics *instrumentation.Metrics) {
	tool := mcp.NewTool("ticktick_refresh_projects",
		mcp.WithDescription("Refresh the project directory used to resolve ~project references."),
	)

	s.AddTool(tool, func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()

		err := sc.RefreshProjects(ctx)
		if err != nil {
			metrics.RecordAPIOperation(ctx, "get_projects", instrumentation.StatusError, time.Since(start))
			metrics.RecordToolInvocation(ctx, "ticktick_refresh_projects", instrumentation.StatusError, time.Since(start))
			return mcp.NewToolResultError(fmt.Sprintf("Failed to refresh projects: %v", err)), nil
		}

		metrics.RecordAPIOperation(ctx, "get_projects", instrumentation.StatusSuccess, time.Since(start))
		metrics.RecordToolInvocation(ctx, "ticktick_refresh_projects", instrumentation.StatusSuccess, time.Since(start))
		return mcp.NewToolResultText("Project directory refreshed."), nil
	})
}

func registerAuthStatusTool(s *mcpserver.MCPServer, sc *server.ServerContext, metrics *instrumentation.Metrics) {
	tool := mcp.NewTool("ticktick_auth_status",
		mcp.WithDescription("Report whether an access token is stored and credentials are configured."),
	)

	s.AddTool(tool, func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()

		status := authStatus{
			Authenticated:  sc.Store().Has(),
			HasCredentials: sc.Config().HasCredentials(),
			TokenPath:      sc.Store().Path(),
		}

		out, _ := json.MarshalIndent(status, "", "  ")
		metrics.RecordToolInvocation(ctx, "ticktick_auth_status", instrumentation.StatusSuccess, time.Since(start))
		return mcp.NewToolResultText(string(out)), nil
	})
}

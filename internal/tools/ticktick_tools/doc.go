// Package ticktick_tools registers the TickTick MCP tools: parsing a
// query into a structured task request, creating the task, proposing
// completions for partial markers, refreshing the project directory and
// reporting authentication status.
package ticktick_tools

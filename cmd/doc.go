// Package cmd implements the command-line interface for tickadd.
//
// This package provides the following commands:
//   - query: Parse a query and print the launcher result items
//   - add: Parse a query and create the task in TickTick
//   - auth: Run the OAuth authorization flow and store the token
//   - serve: Start the MCP server to provide tools for AI assistants
//   - version: Display version information
//
// The query command is the default command when no subcommand is specified.
package cmd

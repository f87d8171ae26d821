// Package server holds the shared state behind the MCP server: the
// configuration, token store, parser and TickTick client, plus the
// dedicated Prometheus metrics server.
//
// The ServerContext is handed to every tool handler. Token changes flow
// through SetToken, which rebuilds the API client and refreshes the
// project directory so subsequent parses resolve "~name" references
// against the latest snapshot.
package server

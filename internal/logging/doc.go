// Package logging provides slog helpers shared across the codebase:
// canonical attribute keys, attribute constructors and token masking.
package logging

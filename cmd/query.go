package cmd

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"tickadd/internal/config"
	"tickadd/internal/launcher"
	"tickadd/internal/server"
)

func newLogger(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func newQueryCmd() *cobra.Command {
	var (
		debugMode  bool
		suggest    bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "query [text...]",
		Short: "Parse a query and print the launcher result items",
		Long: `Parse a free-text query the way the launcher does and print the result
items. With a stored access token the item describes the task that would
be created; otherwise it points at the authorization flow.

With --suggest, print completion items for a query ending in a partial
~project or !priority marker instead. With --json, print the items with
their full action payloads.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(debugMode)

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			sc, err := server.NewServerContext(cmd.Context(), cfg, logger)
			if err != nil {
				return fmt.Errorf("failed to initialize: %w", err)
			}
			defer func() { _ = sc.Shutdown() }()

			query := strings.Join(args, " ")

			var items []launcher.Item
			if suggest {
				items = sc.Engine().Suggest(query)
			} else {
				items = sc.Engine().Query(query)
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(items)
			}

			for _, item := range items {
				fmt.Fprintln(cmd.OutOrStdout(), item.Label)
				if item.Description != "" {
					fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", item.Description)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	cmd.Flags().BoolVar(&suggest, "suggest", false, "Print completion items for a trailing partial marker")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print items as JSON with their action payloads")

	return cmd
}

package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tickadd/internal/config"
	"tickadd/internal/launcher"
	"tickadd/internal/server"
)

func newAddCmd() *cobra.Command {
	var debugMode bool

	cmd := &cobra.Command{
		Use:   "add [text...]",
		Short: "Parse a query and create the task in TickTick",
		Long: `Parse a free-text query and create the resulting task, e.g.:

  tickadd add "Team sync 15.03.2025 14:30 ~work !high #meeting"

Requires a stored access token; run 'tickadd auth' first.`,
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

			client := sc.Client()
			if client == nil {
				return fmt.Errorf("not authenticated: run 'tickadd auth' first")
			}

			query := strings.Join(args, " ")
			res := sc.Parser().Parse(query)
			input := launcher.TaskInput(res)

			task, err := client.CreateTask(cmd.Context(), input)
			if err != nil {
				return fmt.Errorf("failed to create task: %w", err)
			}
			if task == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to create: the query has no title.")
				return nil
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(task)
		},
	}

	cmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug logging")

	return cmd
}

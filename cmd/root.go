package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the tickadd application
var rootCmd = &cobra.Command{
	Use:   "tickadd",
	Short: "Create TickTick tasks from free-text queries",
	Long: `tickadd turns a free-text query into a TickTick task. Annotations are
recognized anywhere in the query and stripped from the title:

  #tag        attach a tag (repeatable)
  !high       set the priority (low, medium, high; also l, m, h)
  ~project    file the task in a project
  15.03.2025  set a due date (also 03/15, 2025-03-15, "mar 15", today,
              tomorrow, next week/month/year)
  14:30       set a due time, firing a reminder at that instant

It can run as:
  - A standalone CLI tool (default)
  - An MCP (Model Context Protocol) server for AI assistants`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "tickadd version %s\n" .Version}}`)

	// If no subcommand is provided, run the query command by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "query")
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newQueryCmd())
	rootCmd.AddCommand(newAddCmd())
	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newVersionCmd())
}

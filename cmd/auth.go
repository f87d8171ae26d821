package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"tickadd/internal/auth"
	"tickadd/internal/config"
	"tickadd/internal/instrumentation"
)

func newAuthCmd() *cobra.Command {
	var (
		debugMode bool
		reset     bool
	)

	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Run the OAuth authorization flow and store the token",
		Long: `Run the TickTick OAuth authorization flow. A URL is printed for you to
open in a browser; after you grant access, the redirect is captured on
a local port and the access token is stored.

Credentials come from TICKTICK_CLIENT_ID and TICKTICK_CLIENT_SECRET
environment variables or the configuration file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(debugMode)

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			store := auth.NewStore(cfg.TokenPath, logger)

			if reset {
				if err := store.Clear(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Stored token removed.")
				return nil
			}

			if !cfg.HasCredentials() {
				return fmt.Errorf("no credentials: set TICKTICK_CLIENT_ID and TICKTICK_CLIENT_SECRET")
			}

			instrConfig := instrumentation.DefaultConfig()
			instrConfig.ServiceVersion = version

			provider, err := instrumentation.NewProvider(cmd.Context(), instrConfig)
			if err != nil {
				return fmt.Errorf("failed to create instrumentation provider: %w", err)
			}
			defer func() {
				if err := provider.Shutdown(cmd.Context()); err != nil {
					logger.Warn("error during instrumentation shutdown", "error", err)
				}
			}()
			metrics := provider.Metrics()

			flow := auth.NewFlow(cfg.ClientID, cfg.ClientSecret, cfg.AuthBaseURL, cfg.RedirectPort, logger)

			token, err := flow.Authorize(cmd.Context(), func(authURL string) {
				fmt.Fprintf(cmd.OutOrStdout(), "Open this URL in your browser to authorize tickadd:\n\n  %s\n\nWaiting for the redirect on %s...\n", authURL, cfg.RedirectURI())
			})
			if err != nil {
				metrics.RecordOAuthAuth(cmd.Context(), "failure")
				return fmt.Errorf("authorization failed: %w", err)
			}
			metrics.RecordOAuthAuth(cmd.Context(), "success")

			if err := store.Save(token); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Access token stored at %s\n", store.Path())
			return nil
		},
	}

	cmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	cmd.Flags().BoolVar(&reset, "reset", false, "Remove the stored token instead of authorizing")

	return cmd
}

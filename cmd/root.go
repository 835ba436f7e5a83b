package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/applywise/applywise-cli/internal/api"
	"github.com/applywise/applywise-cli/internal/app"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "applywise",
	Short: "AI-powered job application client",
	Long: `Applywise is the command-line client for the Applywise backend.
It manages auto-apply settings, triggers runs, tailors resumes per job,
and tracks applications.`,
	Version: "0.1.0",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Initialize app with all dependencies
		application, err := app.NewApp(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to initialize app: %w", err)
		}

		// Store app in command context
		cmd.SetContext(app.SetAppInContext(cmd.Context(), application))

		return nil
	},
	// The App lives in the executed command's context, not the outer one
	// Execute created, so cleanup has to happen here where that context is
	// still in hand.
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if appInstance := app.GetAppFromContext(cmd.Context()); appInstance != nil {
			return appInstance.Close()
		}
		return nil
	},
}

// Execute runs the root command
func Execute() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rootCmd.SetContext(ctx)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// getAPI returns the backend client from the command context
func getAPI(cmd *cobra.Command) *api.Client {
	appInstance := app.GetAppFromContext(cmd.Context())
	if appInstance == nil {
		return nil
	}
	return appInstance.API
}

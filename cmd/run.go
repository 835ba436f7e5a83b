package cmd

import (
	"errors"
	"fmt"
	"log"

	"github.com/applywise/applywise-cli/internal/app"
	"github.com/applywise/applywise-cli/internal/autoapply"
	"github.com/applywise/applywise-cli/internal/cache"
	"github.com/applywise/applywise-cli/internal/config"
	"github.com/applywise/applywise-cli/pkg/models"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Trigger an auto-apply run",
	Long: `Trigger a bulk auto-apply run on the backend: it searches matching jobs,
tailors your resume per job and creates (or submits) applications up to the
daily cap. The command blocks until the run finishes.`,
	Example: `  applywise run
  applywise run --source premium`,
	RunE: func(cmd *cobra.Command, args []string) error {
		source, _ := cmd.Flags().GetString("source")
		if source == "" {
			source = config.AppConfig.DefaultSource
		}
		if source != models.SourceFree && source != models.SourcePremium {
			return fmt.Errorf("invalid source %q: use free or premium", source)
		}

		client := getAPI(cmd)
		ctx := cmd.Context()

		// Settings are needed for the gate (resume selection) and for the
		// quota display afterwards.
		store := autoapply.NewStore(client)
		outcome := store.Load(ctx)
		if outcome.SettingsErr != nil {
			return fmt.Errorf("failed to load settings: %w", outcome.SettingsErr)
		}

		// A failed completeness fetch blocks the run (gate fails closed).
		completeness, err := client.ProfileCompleteness(ctx)
		if err != nil {
			log.Printf("profile completeness fetch failed: %v", err)
			completeness = nil
		}

		controller := autoapply.NewController(client, config.AppConfig.HistoryLimit)

		fmt.Printf("⏳ Running auto-apply (%s source)...\n", source)
		progress, err := controller.Run(ctx, source, store.Settings, completeness)
		if err != nil {
			if errors.Is(err, app.ErrNotEligible) || errors.Is(err, app.ErrRunInFlight) {
				fmt.Printf("❌ %v\n", err)
				return nil
			}
			return err
		}

		printProgress(progress)

		if status := controller.Status(); status != nil {
			fmt.Printf("\n%s %d today, %d submitted total, %.1f%% success rate\n",
				labelStyle.Render("Usage:"), status.ApplicationsToday,
				status.TotalSubmitted, status.SuccessRate)
		}
		if history := controller.History(); len(history) > 0 {
			counts := autoapply.CountByOutcome(history)
			fmt.Printf("%s %d submitted / %d failed / %d pending (last %d)\n",
				labelStyle.Render("History:"), counts.Submitted, counts.Failed,
				counts.Pending, len(history))
			if err := cache.SaveHistory(history); err != nil {
				log.Printf("failed to cache history: %v", err)
			}
		}
		return nil
	},
}

func printProgress(progress autoapply.Progress) {
	switch progress.Phase {
	case autoapply.PhaseCompleted:
		fmt.Printf("\n✅ Run complete: %d jobs processed\n", progress.JobsProcessed)
		fmt.Printf("   Submitted: %d\n", progress.SubmittedCount)
		fmt.Printf("   Failed:    %d\n", progress.FailedCount)
		if progress.Note != "" {
			fmt.Printf("ℹ️  %s\n", progress.Note)
		}
		for _, result := range progress.Results {
			marker := "✓"
			if !result.Success {
				marker = "✗"
			}
			fmt.Printf("   %s %s at %s\n", marker, result.JobTitle, result.Company)
			if result.Error != "" {
				fmt.Printf("      %s\n", result.Error)
			}
		}
	case autoapply.PhaseNoJobs:
		fmt.Printf("\nℹ️  %s\n", progress.CurrentJob)
	case autoapply.PhaseError:
		fmt.Printf("\n❌ %s\n", progress.CurrentJob)
	}
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().String("source", "", "Job source variant (free or premium)")
}

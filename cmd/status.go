package cmd

import (
	"fmt"

	"github.com/applywise/applywise-cli/internal/autoapply"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "View the auto-apply dashboard",
	Long:  "Show auto-apply usage, quota and the current configuration at a glance",
	RunE: func(cmd *cobra.Command, args []string) error {
		client := getAPI(cmd)
		store := autoapply.NewStore(client)

		outcome := store.Load(cmd.Context())

		fmt.Println(titleStyle.Render("Auto-Apply Dashboard"))

		if outcome.StatusErr != nil {
			fmt.Printf("⚠️  Could not load usage: %v\n", outcome.StatusErr)
		} else if store.Status != nil {
			status := store.Status
			fmt.Printf("%s\n", labelStyle.Render("Usage"))
			fmt.Printf("  Applications today: %d / %d\n", status.ApplicationsToday, store.Settings.MaxApplicationsPerDay)
			fmt.Printf("  Total submitted:    %d\n", status.TotalSubmitted)
			fmt.Printf("  Total failed:       %d\n", status.TotalFailed)
			fmt.Printf("  Success rate:       %.1f%%\n", status.SuccessRate)
		}

		if outcome.SettingsErr != nil {
			fmt.Printf("⚠️  Could not load settings: %v\n", outcome.SettingsErr)
			return nil
		}

		settings := store.Settings
		fmt.Printf("\n%s\n", labelStyle.Render("Configuration"))
		fmt.Printf("  Enabled:       %s\n", onOff(settings.Enabled))
		fmt.Printf("  Resume:        %s\n", orNone(settings.ResumeID))
		fmt.Printf("  Keywords:      %d configured\n", len(settings.JobKeywords))
		fmt.Printf("  Locations:     %d configured\n", len(settings.Locations))
		fmt.Printf("  Daily cap:     %d\n", settings.MaxApplicationsPerDay)
		fmt.Printf("  Auto-tailor:   %s\n", onOff(settings.AutoTailorResume))
		fmt.Printf("  Cover letters: %s\n", onOff(settings.GenerateCoverLetter))
		fmt.Printf("  Auto-submit:   %s\n", onOff(settings.AutoSubmitEnabled))
		if settings.ScheduleEnabled {
			fmt.Printf("  Schedule:      every %s\n", settings.ScheduleFrequency)
		} else {
			fmt.Printf("  Schedule:      off\n")
		}
		return nil
	},
}

func onOff(b bool) string {
	if b {
		return "✅ on"
	}
	return "✗ off"
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

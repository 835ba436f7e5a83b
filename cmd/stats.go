package cmd

import (
	"fmt"
	"sort"

	"github.com/applywise/applywise-cli/internal/cache"
	"github.com/applywise/applywise-cli/pkg/models"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "View application statistics from the local cache",
	Long:  "Display counts and success rates over the locally cached history and applications",
	RunE: func(cmd *cobra.Command, args []string) error {
		counts, err := cache.CountHistoryByStatus()
		if err != nil {
			return fmt.Errorf("failed to read cached history: %w", err)
		}
		apps, err := cache.ListApplications()
		if err != nil {
			return fmt.Errorf("failed to read cached applications: %w", err)
		}

		total := 0
		for _, n := range counts {
			total += n
		}
		if total == 0 && len(apps) == 0 {
			fmt.Println("No cached activity yet. Run 'applywise history' or 'applywise run' first")
			return nil
		}

		fmt.Println(titleStyle.Render("Application Statistics"))

		if total > 0 {
			submitted := counts[models.StatusSubmitted] + counts[models.StatusApplied]
			failed := counts[models.StatusFailed] + counts[models.StatusError]

			fmt.Printf("\n%s\n", labelStyle.Render("Auto-Apply History"))
			fmt.Printf("  Total: %d\n", total)
			fmt.Printf("  Submitted: %d (%.1f%%)\n", submitted, float64(submitted)/float64(total)*100)
			fmt.Printf("  Failed: %d (%.1f%%)\n", failed, float64(failed)/float64(total)*100)

			fmt.Printf("\n%s\n", labelStyle.Render("Status Breakdown"))
			statuses := make([]string, 0, len(counts))
			for status := range counts {
				statuses = append(statuses, status)
			}
			sort.Strings(statuses)
			for _, status := range statuses {
				fmt.Printf("  %s: %d\n", status, counts[status])
			}
		}

		if len(apps) > 0 {
			fmt.Printf("\n%s\n", labelStyle.Render("Manual Applications"))
			fmt.Printf("  Total: %d\n", len(apps))

			fmt.Printf("\n%s\n", labelStyle.Render("Recent"))
			for i, a := range apps {
				if i >= 5 {
					break
				}
				fmt.Printf("  %s: %s at %s (%s)\n", a.CreatedAt.Format("Jan 2"), a.JobTitle, a.Company, a.Status)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

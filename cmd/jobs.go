package cmd

import (
	"fmt"

	"github.com/applywise/applywise-cli/internal/config"
	"github.com/applywise/applywise-cli/internal/matcher"
	"github.com/applywise/applywise-cli/pkg/models"
	"github.com/spf13/cobra"
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Browse job postings",
}

var jobsSearchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search live job postings",
	Example: `  applywise jobs search -q "golang developer"
  applywise jobs search -q "backend" -l "Berlin" --source premium`,
	RunE: func(cmd *cobra.Command, args []string) error {
		query, _ := cmd.Flags().GetString("query")
		location, _ := cmd.Flags().GetString("location")
		limit, _ := cmd.Flags().GetInt("limit")
		source, _ := cmd.Flags().GetString("source")
		if source == "" {
			source = config.AppConfig.DefaultSource
		}

		fmt.Printf("🔍 Searching %s jobs...\n", source)
		jobs, err := getAPI(cmd).SearchJobs(cmd.Context(), source, query, location, limit)
		if err != nil {
			return fmt.Errorf("job search failed: %w", err)
		}
		printJobs(cmd, jobs)
		return nil
	},
}

var jobsRecommendedCmd = &cobra.Command{
	Use:   "recommended",
	Short: "List jobs recommended for your profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		source, _ := cmd.Flags().GetString("source")
		if source == "" {
			source = config.AppConfig.DefaultSource
		}

		jobs, err := getAPI(cmd).RecommendedJobs(cmd.Context(), source, limit)
		if err != nil {
			return fmt.Errorf("failed to fetch recommendations: %w", err)
		}
		printJobs(cmd, jobs)
		return nil
	},
}

func printJobs(cmd *cobra.Command, jobs []models.Job) {
	if len(jobs) == 0 {
		fmt.Println("No jobs found")
		return
	}

	var settings models.AutoApplySettings
	if s, err := getAPI(cmd).AutoApplySettings(cmd.Context()); err == nil {
		if s.JobKeywords != nil {
			settings.JobKeywords = *s.JobKeywords
		}
		if s.Locations != nil {
			settings.Locations = *s.Locations
		}
	}
	matcher.SortByScore(jobs, settings)

	fmt.Printf("Found %d job(s):\n\n", len(jobs))
	for _, job := range jobs {
		score := matcher.Score(job, settings)
		fmt.Printf("%s %s\n", titleStyle.Render(job.Title), valueStyle.Render(fmt.Sprintf("(%.0f%% match)", score*100)))
		fmt.Printf("   %s %s", labelStyle.Render("Company:"), job.Company)
		if job.Location != "" {
			fmt.Printf(" | %s %s", labelStyle.Render("Location:"), job.Location)
		}
		fmt.Println()
		if job.SalaryRange != "" {
			fmt.Printf("   %s %s\n", labelStyle.Render("Salary:"), job.SalaryRange)
		}
		if job.URL != "" {
			fmt.Printf("   %s %s\n", labelStyle.Render("URL:"), job.URL)
		}
		fmt.Println()
	}
}

func init() {
	rootCmd.AddCommand(jobsCmd)
	jobsCmd.AddCommand(jobsSearchCmd)
	jobsCmd.AddCommand(jobsRecommendedCmd)

	jobsSearchCmd.Flags().StringP("query", "q", "", "Search query")
	jobsSearchCmd.Flags().StringP("location", "l", "", "Location filter")
	jobsSearchCmd.Flags().Int("limit", 20, "Maximum results")
	jobsSearchCmd.Flags().String("source", "", "Job source (free or premium)")

	jobsRecommendedCmd.Flags().Int("limit", 20, "Maximum results")
	jobsRecommendedCmd.Flags().String("source", "", "Job source (free or premium)")
}

package cmd

import (
	"bufio"
	"fmt"
	"log"
	"os"

	"github.com/applywise/applywise-cli/internal/app"
	"github.com/applywise/applywise-cli/internal/autoapply"
	"github.com/applywise/applywise-cli/internal/browser"
	"github.com/applywise/applywise-cli/internal/cache"
	"github.com/applywise/applywise-cli/internal/config"
	"github.com/applywise/applywise-cli/pkg/models"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "View past auto-apply outcomes",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		if limit <= 0 {
			limit = config.AppConfig.HistoryLimit
		}
		cached, _ := cmd.Flags().GetBool("cached")

		entries, err := fetchHistory(cmd, limit, cached)
		if err != nil {
			return err
		}

		if len(entries) == 0 {
			fmt.Println("No auto-apply history yet. Trigger a run with 'applywise run'")
			return nil
		}

		counts := autoapply.CountByOutcome(entries)
		fmt.Println(titleStyle.Render("Auto-Apply History"))
		fmt.Printf("%s %d submitted | %d failed | %d pending\n\n",
			labelStyle.Render("Totals:"), counts.Submitted, counts.Failed, counts.Pending)

		for _, e := range entries {
			fmt.Printf("%s %s at %s\n", statusMarker(e.Status), e.JobTitle, e.Company)
			fmt.Printf("   %s %s | %s %s\n", labelStyle.Render("ID:"), e.ID,
				labelStyle.Render("Status:"), e.Status)
			if e.Error != "" {
				fmt.Printf("   %s %s\n", labelStyle.Render("Error:"), e.Error)
			}
			if autoapply.CanApplyExternally(e) {
				fmt.Printf("   → retry with 'applywise history submit %s' or open with 'applywise history open %s'\n", e.ID, e.ID)
			}
		}
		return nil
	},
}

// fetchHistory reads from the backend (caching the page) or, with --cached,
// from the local mirror.
func fetchHistory(cmd *cobra.Command, limit int, cached bool) ([]models.HistoryEntry, error) {
	if cached {
		entries, err := cache.ListHistory(limit)
		if err != nil {
			return nil, fmt.Errorf("failed to read cached history: %w", err)
		}
		return entries, nil
	}

	entries, err := getAPI(cmd).AutoApplyHistory(cmd.Context(), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch history: %w", err)
	}
	if err := cache.SaveHistory(entries); err != nil {
		log.Printf("failed to cache history: %v", err)
	}
	return entries, nil
}

var historySubmitCmd = &cobra.Command{
	Use:   "submit <entry-id>",
	Short: "Retry submission of a failed or pending entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		entry, err := findHistoryEntry(cmd, args[0])
		if err != nil {
			return err
		}
		if !autoapply.CanRetry(*entry) {
			fmt.Printf("Entry is already %s; nothing to submit\n", entry.Status)
			return nil
		}

		if err := getAPI(cmd).SubmitApplication(cmd.Context(), entry.ID); err != nil {
			return fmt.Errorf("submission failed: %w", err)
		}
		fmt.Printf("✓ Submission queued for %s at %s\n", entry.JobTitle, entry.Company)
		return nil
	},
}

var historyOpenCmd = &cobra.Command{
	Use:   "open <entry-id>",
	Short: "Open the job posting in a browser for manual application",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		entry, err := findHistoryEntry(cmd, args[0])
		if err != nil {
			return err
		}
		if entry.JobURL == "" {
			fmt.Println("Entry has no external job URL")
			return nil
		}

		if browser.SupportsAutomation(entry.JobURL) {
			fmt.Printf("ℹ️  %s posting — the backend can usually submit these automatically\n",
				browser.ATSKind(entry.JobURL))
		}

		fmt.Printf("⏳ Opening %s...\n", entry.JobURL)
		closeBrowser, err := browser.OpenPosting(cmd.Context(), entry.JobURL)
		if err != nil {
			fmt.Printf("❌ %v\n", err)
			return nil
		}
		defer closeBrowser()

		fmt.Println("✓ Posting opened; finish the application in the browser")
		fmt.Print("Press Enter to close the browser when you are done > ")
		bufio.NewReader(os.Stdin).ReadString('\n')
		return nil
	},
}

var historyResumeCmd = &cobra.Command{
	Use:   "resume <entry-id>",
	Short: "View the tailored resume stored with an entry",
	Long:  "Print the tailored resume the backend stored for this entry, or export it as a Word document",
	Example: `  applywise history resume app_17
  applywise history resume app_17 --docx tailored.docx`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		entry, err := findHistoryEntry(cmd, args[0])
		if err != nil {
			return err
		}
		if entry.TailoredResume == "" {
			fmt.Println("Entry has no tailored resume")
			return nil
		}

		docxPath, _ := cmd.Flags().GetString("docx")
		if docxPath != "" {
			data, err := getAPI(cmd).GenerateWord(cmd.Context(),
				entry.JobTitle+" - "+entry.Company, entry.TailoredResume)
			if err != nil {
				return fmt.Errorf("failed to generate document: %w", err)
			}
			if err := os.WriteFile(docxPath, data, 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", docxPath, err)
			}
			fmt.Printf("✓ Saved %s\n", docxPath)
			return nil
		}

		fmt.Println(titleStyle.Render(entry.JobTitle + " — " + entry.Company))
		fmt.Println(entry.TailoredResume)
		if entry.CoverLetter != "" {
			fmt.Println(labelStyle.Render("\nCover Letter"))
			fmt.Println(entry.CoverLetter)
		}
		return nil
	},
}

// findHistoryEntry locates an entry in the current history page. The content
// is already in the fetched page, so no per-entry endpoint exists. The page
// size honors --limit so an entry visible in a wider listing stays reachable.
func findHistoryEntry(cmd *cobra.Command, id string) (*models.HistoryEntry, error) {
	limit, _ := cmd.Flags().GetInt("limit")
	if limit <= 0 {
		limit = config.AppConfig.HistoryLimit
	}

	entries, err := fetchHistory(cmd, limit, false)
	if err != nil {
		return nil, err
	}
	if entry := autoapply.FindEntry(entries, id); entry != nil {
		return entry, nil
	}
	return nil, fmt.Errorf("%w: no history entry %q in the last %d entries",
		app.ErrNotFound, id, limit)
}

func statusMarker(status string) string {
	switch status {
	case models.StatusSubmitted, models.StatusApplied:
		return "✅"
	case models.StatusFailed, models.StatusError:
		return "❌"
	default:
		return "📝"
	}
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historySubmitCmd)
	historyCmd.AddCommand(historyOpenCmd)
	historyCmd.AddCommand(historyResumeCmd)

	historyCmd.Flags().Int("limit", 0, "Number of entries to fetch")
	historyCmd.Flags().Bool("cached", false, "Read from the local cache instead of the backend")
	historySubmitCmd.Flags().Int("limit", 0, "Number of entries to search")
	historyOpenCmd.Flags().Int("limit", 0, "Number of entries to search")
	historyResumeCmd.Flags().Int("limit", 0, "Number of entries to search")
	historyResumeCmd.Flags().String("docx", "", "Export as a Word document to this path")
}

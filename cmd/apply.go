package cmd

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/applywise/applywise-cli/internal/browser"
	"github.com/applywise/applywise-cli/internal/cache"
	"github.com/applywise/applywise-cli/internal/config"
	"github.com/applywise/applywise-cli/internal/matcher"
	"github.com/applywise/applywise-cli/internal/wizard"
	"github.com/applywise/applywise-cli/pkg/models"
	"github.com/spf13/cobra"
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Apply to a single job interactively",
	Long:  "Search for jobs, pick one, and walk through tailoring, review and submission",
	RunE: func(cmd *cobra.Command, args []string) error {
		query, _ := cmd.Flags().GetString("query")
		location, _ := cmd.Flags().GetString("location")
		source, _ := cmd.Flags().GetString("source")
		if source == "" {
			source = config.AppConfig.DefaultSource
		}

		jobs, err := getAPI(cmd).SearchJobs(cmd.Context(), source, query, location, 20)
		if err != nil {
			return fmt.Errorf("job search failed: %w", err)
		}
		if len(jobs) == 0 {
			fmt.Println("No jobs found. Try a different query or source")
			return nil
		}

		reader := bufio.NewReader(os.Stdin)
		job, ok := selectJob(cmd, reader, jobs)
		if !ok {
			return nil
		}

		resumes, err := getAPI(cmd).ListResumes(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list resumes: %w", err)
		}
		if len(resumes) == 0 {
			fmt.Println("❌ No resumes uploaded. Upload one on the web app first")
			return nil
		}

		w := wizard.New(getAPI(cmd))
		w.Open(*job)
		w.ResumeID = pickResume(reader, resumes)

		runWizard(cmd, reader, w)
		return nil
	},
}

func selectJob(cmd *cobra.Command, reader *bufio.Reader, jobs []models.Job) (*models.Job, bool) {
	// Best matches first, per the configured keywords and locations.
	if s, err := getAPI(cmd).AutoApplySettings(cmd.Context()); err == nil {
		settings := models.AutoApplySettings{}
		if s.JobKeywords != nil {
			settings.JobKeywords = *s.JobKeywords
		}
		if s.Locations != nil {
			settings.Locations = *s.Locations
		}
		matcher.SortByScore(jobs, settings)
	}

	for {
		fmt.Println(titleStyle.Render("Select a Job"))
		for i, job := range jobs {
			fmt.Printf("%d. %s at %s", i+1, job.Title, job.Company)
			if job.Location != "" {
				fmt.Printf(" (%s)", job.Location)
			}
			fmt.Println()
		}
		fmt.Print("\nEnter a job number, or 'q' to quit\n> ")

		input, _ := reader.ReadString('\n')
		input = strings.TrimSpace(input)
		if strings.EqualFold(input, "q") {
			return nil, false
		}

		n, err := strconv.Atoi(input)
		if err != nil || n < 1 || n > len(jobs) {
			fmt.Println("Invalid selection")
			continue
		}
		return &jobs[n-1], true
	}
}

func pickResume(reader *bufio.Reader, resumes []models.Resume) string {
	defaultIdx := 0
	for i, r := range resumes {
		if r.IsDefault {
			defaultIdx = i
		}
	}

	fmt.Println(titleStyle.Render("\nSelect a Resume"))
	for i, r := range resumes {
		marker := " "
		if i == defaultIdx {
			marker = "*"
		}
		fmt.Printf("%s %d. %s\n", marker, i+1, r.Name)
	}
	fmt.Printf("\nEnter a resume number (default %d)\n> ", defaultIdx+1)

	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if n, err := strconv.Atoi(input); err == nil && n >= 1 && n <= len(resumes) {
		return resumes[n-1].ID
	}
	return resumes[defaultIdx].ID
}

// runWizard drives the three step flow until submission or quit.
func runWizard(cmd *cobra.Command, reader *bufio.Reader, w *wizard.Wizard) {
	for w.Step() != wizard.StepClosed {
		fmt.Println("\n" + strings.Repeat("=", 60))
		job := w.Job()
		fmt.Println(titleStyle.Render(fmt.Sprintf("Apply: %s at %s [step: %s]", job.Title, job.Company, w.Step())))

		switch w.Step() {
		case wizard.StepTailor:
			if !wizardTailorStep(cmd, reader, w) {
				return
			}
		case wizard.StepReview:
			if !wizardReviewStep(cmd, reader, w) {
				return
			}
		case wizard.StepConfirm:
			if !wizardConfirmStep(cmd, reader, w) {
				return
			}
		}
	}
}

func wizardTailorStep(cmd *cobra.Command, reader *bufio.Reader, w *wizard.Wizard) bool {
	fmt.Println("\nOptions:")
	fmt.Println("  [t] Tailor resume for this job")
	fmt.Println("  [i] Tailor with extra instructions")
	fmt.Println("  [s] Skip tailoring")
	fmt.Println("  [q] Quit")
	fmt.Print("\n> ")

	choice, _ := reader.ReadString('\n')
	switch strings.TrimSpace(strings.ToLower(choice)) {
	case "t":
		fmt.Println("⏳ Tailoring resume...")
		if err := w.Tailor(cmd.Context()); err != nil {
			fmt.Printf("❌ %v\n", err)
		}
	case "i":
		fmt.Print("Instructions: ")
		instructions, _ := reader.ReadString('\n')
		w.AICommand = strings.TrimSpace(instructions)
		fmt.Println("⏳ Tailoring resume...")
		if err := w.Tailor(cmd.Context()); err != nil {
			fmt.Printf("❌ %v\n", err)
		}
	case "s":
		if err := w.SkipTailoring(); err != nil {
			fmt.Printf("❌ %v\n", err)
		}
	case "q":
		w.Close()
		return false
	default:
		fmt.Println("Invalid selection")
	}
	return true
}

func wizardReviewStep(cmd *cobra.Command, reader *bufio.Reader, w *wizard.Wizard) bool {
	if w.TailoredContent != "" {
		fmt.Println(labelStyle.Render("\nTailored Resume:"))
		fmt.Println(w.TailoredContent)
	} else {
		fmt.Println("\nTailoring skipped — the original resume will be submitted")
	}
	if w.ExtractedKeywords != "" {
		fmt.Printf("%s %s\n", labelStyle.Render("Keywords:"), w.ExtractedKeywords)
	}
	if w.CoverLetter != "" {
		fmt.Println(labelStyle.Render("\nCover Letter:"))
		fmt.Println(w.CoverLetter)
	}

	fmt.Println("\nOptions:")
	if len(w.TailoredVersions) > 0 {
		fmt.Printf("  [v] Switch version (%d available)\n", len(w.TailoredVersions))
	}
	fmt.Println("  [g] Generate cover letter")
	fmt.Println("  [n] Continue to submission")
	fmt.Println("  [b] Back")
	fmt.Println("  [q] Quit")
	fmt.Print("\n> ")

	choice, _ := reader.ReadString('\n')
	switch strings.TrimSpace(strings.ToLower(choice)) {
	case "v":
		for i, v := range w.TailoredVersions {
			fmt.Printf("%d. %s\n", i+1, v.Label)
		}
		fmt.Print("> ")
		input, _ := reader.ReadString('\n')
		if n, err := strconv.Atoi(strings.TrimSpace(input)); err == nil {
			if err := w.SelectVersion(n - 1); err != nil {
				fmt.Printf("❌ %v\n", err)
			}
		}
	case "g":
		fmt.Println("⏳ Generating cover letter...")
		if err := w.GenerateCoverLetter(cmd.Context()); err != nil {
			fmt.Printf("❌ %v\n", err)
		}
	case "n":
		if err := w.Next(); err != nil {
			fmt.Printf("❌ %v\n", err)
		}
	case "b":
		w.Back()
	case "q":
		w.Close()
		return false
	default:
		fmt.Println("Invalid selection")
	}
	return true
}

func wizardConfirmStep(cmd *cobra.Command, reader *bufio.Reader, w *wizard.Wizard) bool {
	job := w.Job()
	fmt.Printf("\n%s %s at %s\n", labelStyle.Render("Submitting:"), job.Title, job.Company)
	fmt.Printf("%s %v\n", labelStyle.Render("Tailored resume:"), w.TailoredContent != "")
	fmt.Printf("%s %v\n", labelStyle.Render("Cover letter:"), w.CoverLetter != "")

	fmt.Println("\nOptions:")
	fmt.Println("  [y] Submit application")
	fmt.Println("  [b] Back")
	fmt.Println("  [q] Quit")
	fmt.Print("\n> ")

	choice, _ := reader.ReadString('\n')
	switch strings.TrimSpace(strings.ToLower(choice)) {
	case "y":
		created, externalURL, err := w.Submit(cmd.Context())
		if err != nil {
			fmt.Printf("❌ %v\n", err)
			return true
		}
		fmt.Printf("✅ Application created (%s)\n", created.ID)
		if err := cache.SaveApplication(created); err != nil {
			log.Printf("failed to cache application: %v", err)
		}
		if externalURL != "" {
			fmt.Printf("Open %s to finish the application? [y/N] ", externalURL)
			answer, _ := reader.ReadString('\n')
			if strings.EqualFold(strings.TrimSpace(answer), "y") {
				closeBrowser, openErr := browser.OpenPosting(cmd.Context(), externalURL)
				if openErr != nil {
					fmt.Printf("❌ %v\n", openErr)
				} else {
					fmt.Print("Press Enter to close the browser when you are done > ")
					reader.ReadString('\n')
					closeBrowser()
				}
			}
		}
		return false
	case "b":
		w.Back()
	case "q":
		w.Close()
		return false
	default:
		fmt.Println("Invalid selection")
	}
	return true
}

func init() {
	rootCmd.AddCommand(applyCmd)
	applyCmd.Flags().StringP("query", "q", "", "Search query")
	applyCmd.Flags().StringP("location", "l", "", "Location filter")
	applyCmd.Flags().String("source", "", "Job source (free or premium)")
}

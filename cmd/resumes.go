package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var resumesCmd = &cobra.Command{
	Use:   "resumes",
	Short: "Manage uploaded resumes",
}

var resumesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your uploaded resumes",
	RunE: func(cmd *cobra.Command, args []string) error {
		resumes, err := getAPI(cmd).ListResumes(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list resumes: %w", err)
		}
		if len(resumes) == 0 {
			fmt.Println("No resumes uploaded. Upload one on the web app")
			return nil
		}

		fmt.Println(titleStyle.Render("Resumes"))
		for _, r := range resumes {
			marker := "  "
			if r.IsDefault {
				marker = "* "
			}
			fmt.Printf("%s%s\n", marker, r.Name)
			fmt.Printf("   %s %s | %s %s\n", labelStyle.Render("ID:"), r.ID,
				labelStyle.Render("Uploaded:"), r.CreatedAt.Format("2006-01-02"))
		}
		return nil
	},
}

var resumesDownloadCmd = &cobra.Command{
	Use:   "download <resume-id>",
	Short: "Download a resume as a Word document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")
		if output == "" {
			output = args[0] + ".docx"
		}

		data, err := getAPI(cmd).DownloadResume(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("download failed: %w", err)
		}
		if err := os.WriteFile(output, data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", output, err)
		}
		fmt.Printf("✓ Saved %s\n", output)
		return nil
	},
}

var resumesSavedCmd = &cobra.Command{
	Use:   "saved <application-id>",
	Short: "Download the tailored resume stored with an application",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")
		if output == "" {
			output = args[0] + "-tailored.docx"
		}

		data, err := getAPI(cmd).SavedResume(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("download failed: %w", err)
		}
		if err := os.WriteFile(output, data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", output, err)
		}
		fmt.Printf("✓ Saved %s\n", output)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resumesCmd)
	resumesCmd.AddCommand(resumesListCmd)
	resumesCmd.AddCommand(resumesDownloadCmd)
	resumesCmd.AddCommand(resumesSavedCmd)

	resumesDownloadCmd.Flags().StringP("output", "o", "", "Output file path")
	resumesSavedCmd.Flags().StringP("output", "o", "", "Output file path")
}

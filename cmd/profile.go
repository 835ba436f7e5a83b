package cmd

import (
	"fmt"
	"strings"

	"github.com/applywise/applywise-cli/internal/autoapply"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12")).
			MarginTop(1).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")).
			Bold(true)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("7"))
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "View your account and profile completeness",
	Long:  "Show the signed-in user and the profile completeness that gates auto-apply",
	RunE: func(cmd *cobra.Command, args []string) error {
		client := getAPI(cmd)
		ctx := cmd.Context()

		fmt.Println(titleStyle.Render("Profile"))

		// The two fetches are independent: either may fail without hiding
		// what the other returned.
		user, userErr := client.CurrentUser(ctx)
		if userErr != nil {
			fmt.Printf("⚠️  Could not load account details: %v\n", userErr)
		} else {
			fmt.Printf("%s %s\n", labelStyle.Render("Name:"), valueStyle.Render(user.FullName))
			fmt.Printf("%s %s\n", labelStyle.Render("Email:"), valueStyle.Render(user.Email))
			if user.Location != "" {
				fmt.Printf("%s %s\n", labelStyle.Render("Location:"), valueStyle.Render(user.Location))
			}
		}

		completeness, pcErr := client.ProfileCompleteness(ctx)
		if pcErr != nil {
			fmt.Printf("%s unknown (fetch failed: %v)\n", labelStyle.Render("Completeness:"), pcErr)
			fmt.Println("Auto-apply stays locked until completeness can be verified.")
			return nil
		}

		fmt.Printf("%s %d%%\n", labelStyle.Render("Completeness:"), completeness.Percentage)
		if completeness.Percentage < autoapply.MinCompletenessPercent {
			fmt.Printf("❌ Auto-apply requires %d%%\n", autoapply.MinCompletenessPercent)
			if len(completeness.MissingFields) > 0 {
				fmt.Printf("%s %s\n", labelStyle.Render("Missing:"),
					strings.Join(completeness.MissingFields, ", "))
			}
		} else {
			fmt.Println("✅ Profile is complete enough for auto-apply")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
}

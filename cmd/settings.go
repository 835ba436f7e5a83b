package cmd

import (
	"fmt"
	"strings"

	"github.com/applywise/applywise-cli/internal/autoapply"
	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage auto-apply settings",
	Long:  "View and update the auto-apply configuration stored by the backend",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current auto-apply settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		store := autoapply.NewStore(getAPI(cmd))
		outcome := store.Load(cmd.Context())
		if outcome.SettingsErr != nil {
			return fmt.Errorf("failed to load settings: %w", outcome.SettingsErr)
		}

		settings := store.Settings
		fmt.Println(titleStyle.Render("Auto-Apply Settings"))
		fmt.Printf("%s %s\n", labelStyle.Render("Enabled:"), onOff(settings.Enabled))
		fmt.Printf("%s %s\n", labelStyle.Render("Resume:"), orNone(settings.ResumeID))
		fmt.Printf("%s %s\n", labelStyle.Render("Keywords:"), orNone(strings.Join(settings.JobKeywords, ", ")))
		fmt.Printf("%s %s\n", labelStyle.Render("Locations:"), orNone(strings.Join(settings.Locations, ", ")))
		fmt.Printf("%s %d\n", labelStyle.Render("Daily cap:"), settings.MaxApplicationsPerDay)
		fmt.Printf("%s %s\n", labelStyle.Render("Auto-tailor:"), onOff(settings.AutoTailorResume))
		fmt.Printf("%s %s\n", labelStyle.Render("Cover letters:"), onOff(settings.GenerateCoverLetter))
		fmt.Printf("%s %s\n", labelStyle.Render("Auto-submit:"), onOff(settings.AutoSubmitEnabled))
		fmt.Printf("%s %s (every %s)\n", labelStyle.Render("Schedule:"), onOff(settings.ScheduleEnabled), settings.ScheduleFrequency)
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update auto-apply settings",
	Example: `  applywise settings set --resume res_42
  applywise settings set --max-per-day 15 --auto-submit
  applywise settings set --schedule --frequency 6h`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store := autoapply.NewStore(getAPI(cmd))
		outcome := store.Load(cmd.Context())
		if outcome.SettingsErr != nil {
			return fmt.Errorf("failed to load settings: %w", outcome.SettingsErr)
		}

		flags := cmd.Flags()
		if flags.Changed("resume") {
			store.Settings.ResumeID, _ = flags.GetString("resume")
		}
		if flags.Changed("max-per-day") {
			store.Settings.MaxApplicationsPerDay, _ = flags.GetInt("max-per-day")
		}
		if flags.Changed("auto-tailor") {
			store.Settings.AutoTailorResume, _ = flags.GetBool("auto-tailor")
		}
		if flags.Changed("cover-letter") {
			store.Settings.GenerateCoverLetter, _ = flags.GetBool("cover-letter")
		}
		if flags.Changed("auto-submit") {
			store.Settings.AutoSubmitEnabled, _ = flags.GetBool("auto-submit")
		}
		if flags.Changed("schedule") {
			store.Settings.ScheduleEnabled, _ = flags.GetBool("schedule")
		}
		if flags.Changed("frequency") {
			store.Settings.ScheduleFrequency, _ = flags.GetString("frequency")
		}

		if err := store.Save(cmd.Context()); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		fmt.Println("✓ Settings saved")
		return nil
	},
}

var settingsKeywordsCmd = &cobra.Command{
	Use:   "keywords <add|remove> <keyword>",
	Short: "Manage job keywords",
	Args:  cobra.ExactArgs(2),
	Example: `  applywise settings keywords add "backend engineer"
  applywise settings keywords remove "backend engineer"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runListMutation(cmd, args, "keyword",
			func(s *autoapply.Store, v string) bool { return s.AddKeyword(v) },
			func(s *autoapply.Store, v string) bool { return s.RemoveKeyword(v) })
	},
}

var settingsLocationsCmd = &cobra.Command{
	Use:   "locations <add|remove> <location>",
	Short: "Manage target locations",
	Args:  cobra.ExactArgs(2),
	Example: `  applywise settings locations add "Berlin"
  applywise settings locations remove "Berlin"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runListMutation(cmd, args, "location",
			func(s *autoapply.Store, v string) bool { return s.AddLocation(v) },
			func(s *autoapply.Store, v string) bool { return s.RemoveLocation(v) })
	},
}

// runListMutation loads settings, applies one add/remove, and saves. The
// mutation itself is local; a no-op (duplicate or empty add, missing remove)
// skips the save entirely.
func runListMutation(cmd *cobra.Command, args []string, kind string,
	add func(*autoapply.Store, string) bool, remove func(*autoapply.Store, string) bool) error {

	op, value := args[0], args[1]

	store := autoapply.NewStore(getAPI(cmd))
	outcome := store.Load(cmd.Context())
	if outcome.SettingsErr != nil {
		return fmt.Errorf("failed to load settings: %w", outcome.SettingsErr)
	}

	var changed bool
	switch op {
	case "add":
		changed = add(store, value)
		if !changed {
			fmt.Printf("Nothing to do: %s already present or empty\n", kind)
			return nil
		}
	case "remove":
		changed = remove(store, value)
		if !changed {
			fmt.Printf("Nothing to do: %s not found\n", kind)
			return nil
		}
	default:
		return fmt.Errorf("unknown operation %q: use add or remove", op)
	}

	if err := store.Save(cmd.Context()); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	fmt.Printf("✓ %s %s\n", kind, map[string]string{"add": "added", "remove": "removed"}[op])
	return nil
}

var settingsAutofillCmd = &cobra.Command{
	Use:   "autofill",
	Short: "Fill settings from your profile",
	Long:  "Ask the backend to derive keywords, locations and a resume from profile data and merge them into the current settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		store := autoapply.NewStore(getAPI(cmd))
		outcome := store.Load(cmd.Context())
		if outcome.SettingsErr != nil {
			return fmt.Errorf("failed to load settings: %w", outcome.SettingsErr)
		}

		if err := store.AutoFill(cmd.Context()); err != nil {
			return fmt.Errorf("auto-fill failed: %w", err)
		}
		if err := store.Save(cmd.Context()); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}

		fmt.Println("✓ Settings filled from profile")
		fmt.Printf("  Keywords:  %s\n", orNone(strings.Join(store.Settings.JobKeywords, ", ")))
		fmt.Printf("  Locations: %s\n", orNone(strings.Join(store.Settings.Locations, ", ")))
		return nil
	},
}

var settingsToggleCmd = &cobra.Command{
	Use:   "toggle <on|off>",
	Short: "Enable or disable auto-apply",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var enable bool
		switch args[0] {
		case "on":
			enable = true
		case "off":
			enable = false
		default:
			return fmt.Errorf("invalid argument %q: use on or off", args[0])
		}

		client := getAPI(cmd)
		store := autoapply.NewStore(client)
		outcome := store.Load(cmd.Context())
		if outcome.SettingsErr != nil {
			return fmt.Errorf("failed to load settings: %w", outcome.SettingsErr)
		}

		// Enabling is gated the same way a run is. A failed completeness
		// fetch leaves the gate closed.
		if enable {
			completeness, err := client.ProfileCompleteness(cmd.Context())
			if err != nil {
				completeness = nil
			}
			if gate := autoapply.CanRunAutoApply(store.Settings, completeness); !gate.Allowed {
				fmt.Printf("❌ Cannot enable auto-apply: %s\n", gate.Reason)
				return nil
			}
		}

		if err := store.Toggle(cmd.Context(), enable); err != nil {
			return fmt.Errorf("failed to toggle auto-apply: %w", err)
		}
		fmt.Printf("✓ Auto-apply %s\n", map[bool]string{true: "enabled", false: "disabled"}[enable])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsKeywordsCmd)
	settingsCmd.AddCommand(settingsLocationsCmd)
	settingsCmd.AddCommand(settingsAutofillCmd)
	settingsCmd.AddCommand(settingsToggleCmd)

	settingsSetCmd.Flags().String("resume", "", "Resume ID to apply with")
	settingsSetCmd.Flags().Int("max-per-day", 10, "Daily application cap (1-25)")
	settingsSetCmd.Flags().Bool("auto-tailor", true, "Tailor the resume per job")
	settingsSetCmd.Flags().Bool("cover-letter", true, "Generate cover letters")
	settingsSetCmd.Flags().Bool("auto-submit", false, "Submit applications automatically")
	settingsSetCmd.Flags().Bool("schedule", false, "Run on a schedule")
	settingsSetCmd.Flags().String("frequency", "daily", "Schedule frequency (1h, 6h, 12h, daily)")
}

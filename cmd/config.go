package cmd

import (
	"fmt"
	"os"

	"github.com/applywise/applywise-cli/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  "View and update CLI configuration settings",
}

var showConfigCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current configuration",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(titleStyle.Render("Configuration"))
		fmt.Printf("%s %s\n", labelStyle.Render("Config File:"), config.GetConfigPath())
		fmt.Printf("%s %s\n", labelStyle.Render("Base URL:"), config.AppConfig.BaseURL)

		// Show if the token is configured (but don't show the actual token)
		if config.AppConfig.APIToken != "" {
			fmt.Printf("%s %s\n", labelStyle.Render("API Token:"), "✓ Configured")
		} else {
			fmt.Printf("%s %s\n", labelStyle.Render("API Token:"), "✗ Not configured")
		}

		fmt.Printf("%s %s\n", labelStyle.Render("Default Source:"), config.AppConfig.DefaultSource)
		fmt.Printf("%s %d\n", labelStyle.Render("History Limit:"), config.AppConfig.HistoryLimit)
	},
}

var setConfigCmd = &cobra.Command{
	Use:   "set",
	Short: "Update a configuration value",
	Example: `  applywise config set --key api_token --value aw-...
  applywise config set --key base_url --value https://api.applywise.dev
  applywise config set --key default_source --value premium
  applywise config set --key history_limit --value 50`,
	Run: func(cmd *cobra.Command, args []string) {
		key, _ := cmd.Flags().GetString("key")
		value, _ := cmd.Flags().GetString("value")

		if key == "" || value == "" {
			fmt.Println("Both --key and --value are required")
			return
		}

		validKeys := []string{"base_url", "api_token", "default_source", "history_limit"}
		valid := false
		for _, k := range validKeys {
			if k == key {
				valid = true
				break
			}
		}
		if !valid {
			fmt.Printf("Invalid key. Must be one of: %v\n", validKeys)
			return
		}

		if err := config.Set(key, value); err != nil {
			fmt.Fprintf(os.Stderr, "Error updating config: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("✓ Configuration updated: %s\n", key)

		// Reload config
		if err := config.Initialize(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Could not reload config: %v\n", err)
		}
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(config.GetConfigPath())
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(showConfigCmd)
	configCmd.AddCommand(setConfigCmd)
	configCmd.AddCommand(configPathCmd)

	setConfigCmd.Flags().String("key", "", "Configuration key")
	setConfigCmd.Flags().String("value", "", "Configuration value")
}

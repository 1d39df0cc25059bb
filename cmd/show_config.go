package cmd

import (
	"fmt"
	"os"

	"github.com/ovh-ux/ovh-protractor-jasmine2-logs-reporter/internal/actions"
	"github.com/spf13/cobra"
)

var showConfigFile string

var showConfigCmd = &cobra.Command{
	Use:   "show-config",
	Short: "Display current reporter configuration",
	Long:  `Shows the configuration loaded from the config file, environment variables and .env file.`,
	RunE: func(_ *cobra.Command, _ []string) error {
		if err := actions.ShowConfig(os.Stdout, showConfigFile); err != nil {
			return fmt.Errorf("failed to show config: %w", err)
		}
		return nil
	},
}

func init() {
	showConfigCmd.Flags().StringVar(&showConfigFile, "config", "", "YAML config file")
	rootCmd.AddCommand(showConfigCmd)
}

package cmd

import (
	"os"

	"github.com/ovh-ux/ovh-protractor-jasmine2-logs-reporter/internal/actions"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <report.json>",
	Short: "Pretty-print a report file",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return actions.ShowReport(os.Stdout, args[0])
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}

// Package cmd contains CLI command definitions
package cmd

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/ovh-ux/ovh-protractor-jasmine2-logs-reporter/internal/actions"
	"github.com/ovh-ux/ovh-protractor-jasmine2-logs-reporter/pkg/interactive"
	"github.com/spf13/cobra"
)

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Launch interactive TUI mode",
	Long:  `Launches the interactive Terminal User Interface to browse configuration and reports.`,
	Run: func(_ *cobra.Command, _ []string) {
		RunInteractive()
	},
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}

// RunInteractive shows the main menu until the user exits.
func RunInteractive() {
	fmt.Println("Logs Reporter - Interactive Mode")
	fmt.Println("================================")
	fmt.Println()

	for {
		options := []interactive.MenuOption{
			{
				Name:        "📋 Show Config",
				Description: "Display current reporter configuration",
				Action: func() error {
					if err := actions.ShowConfig(os.Stdout, ""); err != nil {
						fmt.Printf("\n❌ Error: %v\n", err)
					}
					interactive.PauseForEnter()
					return nil
				},
			},
			{
				Name:        "🔎 Show Report",
				Description: "Pick a report from the base directory and display it",
				Action:      showReportMenu,
			},
		}

		if err := interactive.ShowMainMenu(options); err != nil {
			if errors.Is(err, interactive.ErrExit) {
				fmt.Println("Goodbye!")
				return
			}
			log.Fatal(err)
		}

		fmt.Println()
	}
}

func showReportMenu() error {
	cfg, err := actions.LoadConfig("")
	if err != nil {
		fmt.Printf("\n❌ Error: %v\n", err)
		interactive.PauseForEnter()
		return nil
	}

	dir := cfg.BaseDirectory
	if dir == "" {
		dir = interactive.Input("Report directory", ".")
	}

	reports, err := actions.ListReports(dir)
	if err != nil {
		fmt.Printf("\n❌ Error: %v\n", err)
		interactive.PauseForEnter()
		return nil
	}

	path, err := interactive.SelectFile("Which report?", reports)
	if err != nil {
		if errors.Is(err, interactive.ErrNoChoices) {
			fmt.Printf("\nNo reports found in %s\n", dir)
			interactive.PauseForEnter()
			return nil
		}
		return nil
	}

	if err := actions.ShowReport(os.Stdout, path); err != nil {
		fmt.Printf("\n❌ Error: %v\n", err)
	}

	interactive.PauseForEnter()

	return nil
}

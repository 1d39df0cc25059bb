package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	// Logger is the shared logger instance for all commands
	Logger *logrus.Logger

	envFile string
	verbose bool

	rootCmd = &cobra.Command{
		Use:   "logs-reporter",
		Short: "Browser logs reporter for end-to-end test runs",
		Long: `logs-reporter watches an end-to-end test run and, when a spec fails, writes a
JSON report with the spec result, the browser console logs and optionally the
failed HTTP requests of the browser under test.

Run without arguments to launch interactive mode, or use subcommands for direct operations.`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if err := LoadEnvFile(envFile); err != nil {
				return err
			}

			InitLogger()

			return nil
		},
	}
)

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// LoadEnvFile loads file into the environment. A missing default .env is not an error.
func LoadEnvFile(file string) error {
	if file == "" {
		file = ".env"
	}

	if err := godotenv.Load(file); err != nil {
		if file == ".env" && os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to load env file '%s': %w", file, err)
	}

	return nil
}

func init() {
	Logger = newLogger(false)

	rootCmd.PersistentFlags().StringVar(&envFile, "env", "", "Environment file to load (default .env)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
}

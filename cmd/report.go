package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ovh-ux/ovh-protractor-jasmine2-logs-reporter/internal/actions"
	"github.com/ovh-ux/ovh-protractor-jasmine2-logs-reporter/internal/config"
	"github.com/spf13/cobra"
)

var (
	reportConfigFile     string
	reportBaseDirectory  string
	reportFileName       string
	reportEnableHTTPLogs bool
	reportSessionFile    string
	reportDevtoolsURL    string
	reportDevtoolsTarget string
	reportInput          string
	reportTimeout        time.Duration
)

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Write a logs report for the first failed spec of a test run",
	Long: `Reads ` + "`go test -json`" + ` events and, on the first failed test, collects the
browser console logs, the browser capabilities and optionally the failed HTTP
requests, then writes them as a JSON report.

Logs come either from a captured session file or from a live browser reached
over the Chrome DevTools protocol.

Example:
  go test -json ./e2e/... | logs-reporter report --base-directory out --session session.yaml
  go test -json ./e2e/... | logs-reporter report --base-directory out \
      --devtools-url ws://127.0.0.1:9222/devtools/browser/<id> --enable-http-logs`,
	RunE: runReport,
}

func runReport(cmd *cobra.Command, _ []string) error {
	cfg, err := actions.LoadConfig(reportConfigFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	applyReportFlags(cmd, cfg)

	input := io.Reader(os.Stdin)
	if reportInput != "" && reportInput != "-" {
		f, err := os.Open(reportInput)
		if err != nil {
			return fmt.Errorf("opening input %s: %w", reportInput, err)
		}
		defer f.Close()

		input = f
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return actions.Report(ctx, Logger, actions.ReportOptions{
		Config:  cfg,
		Input:   input,
		Output:  os.Stdout,
		Timeout: reportTimeout,
	})
}

// applyReportFlags overrides cfg with the flags set on the command line.
func applyReportFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()

	if flags.Changed("base-directory") {
		cfg.BaseDirectory = reportBaseDirectory
	}
	if flags.Changed("file-name") {
		cfg.FileName = reportFileName
	}
	if flags.Changed("enable-http-logs") {
		cfg.EnableHTTPLogs = reportEnableHTTPLogs
	}
	if flags.Changed("session") {
		cfg.SessionFile = reportSessionFile
	}
	if flags.Changed("devtools-url") {
		cfg.DevtoolsURL = reportDevtoolsURL
	}
	if flags.Changed("devtools-target") {
		cfg.DevtoolsTarget = reportDevtoolsTarget
	}
}

func init() {
	reportCmd.Flags().StringVar(&reportConfigFile, "config", "", "YAML config file")
	reportCmd.Flags().StringVar(&reportBaseDirectory, "base-directory", "", "Directory the report is written to")
	reportCmd.Flags().StringVar(&reportFileName, "file-name", config.DefaultFileName, "Report file name")
	reportCmd.Flags().BoolVar(&reportEnableHTTPLogs, "enable-http-logs", false, "Collect failed HTTP requests from performance logs")
	reportCmd.Flags().StringVar(&reportSessionFile, "session", "", "Captured session file (yaml or json) to read logs from")
	reportCmd.Flags().StringVar(&reportDevtoolsURL, "devtools-url", "", "DevTools websocket URL of the browser under test")
	reportCmd.Flags().StringVar(&reportDevtoolsTarget, "devtools-target", "", "DevTools target id of the page under test")
	reportCmd.Flags().StringVar(&reportInput, "input", "-", "File with go test -json events, - for stdin")
	reportCmd.Flags().DurationVar(&reportTimeout, "timeout", 0, "Maximum time to wait for the report once input ends (0 waits forever)")

	rootCmd.AddCommand(reportCmd)
}

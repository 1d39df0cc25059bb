// Package main is the entry point for the logs-reporter application
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/ovh-ux/ovh-protractor-jasmine2-logs-reporter/cmd"
)

const (
	envFlag      = "--env"
	envFlagEqual = "--env="
)

func main() {
	envFile, runTUI := parseArgs()

	if !runTUI {
		// cobra handles --env itself
		cmd.Execute()
		return
	}

	if err := cmd.LoadEnvFile(envFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading env file: %v\n", err)
		os.Exit(1)
	}

	cmd.InitLogger()
	cmd.RunInteractive()
}

// parseArgs extracts --env and decides whether to run the TUI, which happens
// when nothing but --env was given.
func parseArgs() (envFile string, runTUI bool) {
	for i, arg := range os.Args {
		if arg == envFlag && i+1 < len(os.Args) {
			envFile = os.Args[i+1]
			break
		}
		if strings.HasPrefix(arg, envFlagEqual) {
			envFile = arg[len(envFlagEqual):]
			break
		}
	}

	switch len(os.Args) {
	case 1:
		return envFile, true
	case 2:
		if os.Args[1] == envFlag {
			fmt.Fprintln(os.Stderr, "Error: --env flag requires a value")
			os.Exit(1)
		}
		return envFile, strings.HasPrefix(os.Args[1], envFlagEqual)
	case 3:
		return envFile, os.Args[1] == envFlag
	default:
		return envFile, false
	}
}

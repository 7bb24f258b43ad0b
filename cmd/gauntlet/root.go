// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for gauntlet.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables verbose output
	verbose bool
	// matrixFile is the matrix definition file path
	matrixFile string

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "gauntlet",
		Short: "A declarative environment-matrix test orchestrator",
		Long: TitleStyle.Render("gauntlet") + SubtitleStyle.Render(" - A declarative environment-matrix test orchestrator") + `

gauntlet runs a matrix of named environments (lint, typecheck, unit
tests across interpreter versions, docs builds), provisions each one
in isolation, executes its command sequence in order, and aggregates
everything into a single exit code.

Environments are defined in a 'matrix.cue' file using CUE format.
Bracketed names like 'unit-py3{9,10,11}' expand into one environment
per alternative.

` + SubtitleStyle.Render("Examples:") + `
  gauntlet run                  Run every environment in the matrix
  gauntlet run -e lint,docs     Run only 'lint' and 'docs'
  gauntlet run --fail-fast      Stop scheduling after the first failure
  gauntlet list                 List the expanded environment names`,
	}
)

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&matrixFile, "file", "f", "matrix.cue", "matrix definition file")

	// Add subcommands
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(listCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Use fang.Execute for enhanced Cobra styling
	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(1)
	}
}

// newLogger creates the CLI logger writing to stderr; debug level is gated
// behind --verbose.
func newLogger() *log.Logger {
	logger := log.New(os.Stderr)
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

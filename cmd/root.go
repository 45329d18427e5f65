// Package cmd contains all CLI commands for the ganttkit binary.
package cmd

import (
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	cmdbatch "github.com/sandrine-crypto/ganttkit/cmd/batch"
	"github.com/sandrine-crypto/ganttkit/cmd/completion"
	cmdconfig "github.com/sandrine-crypto/ganttkit/cmd/config"
	"github.com/sandrine-crypto/ganttkit/cmd/convert"
	"github.com/sandrine-crypto/ganttkit/cmd/generate"
	"github.com/sandrine-crypto/ganttkit/cmd/serve"
	cmdshell "github.com/sandrine-crypto/ganttkit/cmd/shell"
	"github.com/sandrine-crypto/ganttkit/cmd/stats"
	cmdtelemetry "github.com/sandrine-crypto/ganttkit/cmd/telemetry"
	cmdtemplate "github.com/sandrine-crypto/ganttkit/cmd/template"
	"github.com/sandrine-crypto/ganttkit/cmd/version"
	cmdwatch "github.com/sandrine-crypto/ganttkit/cmd/watch"
	"github.com/sandrine-crypto/ganttkit/internal/output"
	"github.com/sandrine-crypto/ganttkit/internal/telemetry"
)

var (
	jsonOutput bool
	verbose    bool
	noColor    bool
)

// NewRootCommand creates and returns the root cobra command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ganttkit",
		Short: "Gantt chart generator for Excel and CSV project plans",
		Long: `ganttkit — from spreadsheet to Gantt chart.

Reads project plans from .xlsx, .xls, or .csv files, normalizes their
columns and dates, and renders SVG Gantt charts, HTML reports, and
clean CSV exports — from the command line or a small web UI.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor {
				color.NoColor = true
			}
		},
	}

	// Global persistent flags
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as machine-readable JSON")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable ANSI color output")

	// Register subcommands
	rootCmd.AddCommand(generate.NewCommand())
	rootCmd.AddCommand(stats.NewCommand())
	rootCmd.AddCommand(convert.NewCommand())
	rootCmd.AddCommand(cmdtemplate.NewCommand())
	rootCmd.AddCommand(serve.NewCommand())
	rootCmd.AddCommand(cmdwatch.NewCommand())
	rootCmd.AddCommand(cmdbatch.NewCommand())
	rootCmd.AddCommand(cmdshell.NewCommand())
	rootCmd.AddCommand(cmdconfig.NewCommand())
	rootCmd.AddCommand(cmdtelemetry.NewCommand())
	rootCmd.AddCommand(completion.NewCommand(rootCmd))
	rootCmd.AddCommand(version.NewCommand())

	return rootCmd
}

// Execute runs the root command and handles any returned errors.
func Execute() {
	rootCmd := NewRootCommand()

	start := time.Now()
	err := rootCmd.Execute()

	exit := output.ExitCode(err)
	store := telemetry.DefaultStore()
	store.Record(telemetry.Event{
		Timestamp:  start,
		Command:    commandName(os.Args[1:]),
		DurationMs: time.Since(start).Milliseconds(),
		ExitCode:   exit,
	})
	_ = store.Rotate()

	if err != nil {
		output.WriteError("%s", err)
		os.Exit(exit)
	}
}

// commandName picks the first non-flag argument.
func commandName(args []string) string {
	for _, a := range args {
		if len(a) > 0 && a[0] != '-' {
			return a
		}
	}
	return "help"
}

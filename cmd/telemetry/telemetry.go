// Package telemetry provides CLI commands for the local usage log.
package telemetry

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sandrine-crypto/ganttkit/internal/output"
	"github.com/sandrine-crypto/ganttkit/internal/telemetry"
)

// NewCommand returns the telemetry subcommand group.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "telemetry",
		Short: "Inspect or clear the local usage log",
		Long: `ganttkit keeps a local, append-only usage log at
~/.ganttkit/telemetry.jsonl. Nothing ever leaves the machine.`,
	}

	cmd.AddCommand(newStatsCommand())
	cmd.AddCommand(newClearCommand())

	return cmd
}

func newStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Summarize recorded command usage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonFlag, _ := cmd.Flags().GetBool("json")

			stats, err := telemetry.DefaultStore().Summary()
			if err != nil {
				return err
			}
			if jsonFlag {
				return output.PrintJSON("telemetry stats", stats)
			}

			fmt.Printf("Commands run:  %d\n", stats.TotalCommands)
			fmt.Printf("Errors:        %d\n", stats.ErrorCount)
			fmt.Printf("Avg duration:  %.0f ms\n", stats.AvgDuration)
			if len(stats.TopCommands) > 0 {
				fmt.Println("By command:")
				for name, n := range stats.TopCommands {
					fmt.Printf("  %-12s %d\n", name, n)
				}
			}
			return nil
		},
	}
}

func newClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete the local usage log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := telemetry.DefaultStore().Clear(); err != nil {
				return err
			}
			fmt.Println("Usage log cleared.")
			return nil
		},
	}
}

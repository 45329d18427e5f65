// Package stats provides the command that prints plan statistics.
package stats

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sandrine-crypto/ganttkit/internal/dates"
	"github.com/sandrine-crypto/ganttkit/internal/ingest"
	"github.com/sandrine-crypto/ganttkit/internal/output"
)

// NewCommand returns the stats subcommand.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats <file.xlsx|file.csv>",
		Short: "Show plan statistics for a project file",
		Long: `Loads and normalizes a project spreadsheet, then prints task counts,
category breakdowns, and the overall date span.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonFlag, _ := cmd.Flags().GetBool("json")

			plan, err := ingest.LoadFile(args[0])
			if err != nil {
				return err
			}

			st := plan.Summary()

			if jsonFlag {
				return output.PrintJSON("stats", map[string]interface{}{
					"input":      args[0],
					"stats":      st,
					"categories": plan.CategorySummaries(),
				})
			}

			header := color.New(color.Bold, color.FgCyan)
			dim := color.New(color.FgHiBlack)

			header.Printf("%s\n", args[0])
			fmt.Printf("  Tasks:       %d\n", st.Tasks)
			fmt.Printf("  Categories:  %d\n", st.Categories)
			fmt.Printf("  Avg length:  %.0f days\n", st.AvgDays)
			fmt.Printf("  Span:        %s → %s (%d days)\n",
				dates.Format(st.Start), dates.Format(st.End), st.SpanDays)
			fmt.Println()

			header.Println("Categories")
			for _, cs := range plan.CategorySummaries() {
				fmt.Printf("  %-30s %3d task(s)", cs.Category, cs.Tasks)
				dim.Printf("  avg %.0f days, %s → %s\n",
					cs.AvgDays, dates.Format(cs.Start), dates.Format(cs.End))
			}
			return nil
		},
	}

	return cmd
}

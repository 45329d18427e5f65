// Package generate provides the command that renders chart artifacts.
package generate

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sandrine-crypto/ganttkit/internal/chart"
	"github.com/sandrine-crypto/ganttkit/internal/config"
	"github.com/sandrine-crypto/ganttkit/internal/export"
	"github.com/sandrine-crypto/ganttkit/internal/ingest"
	"github.com/sandrine-crypto/ganttkit/internal/output"
	"github.com/sandrine-crypto/ganttkit/internal/progress"
)

// NewCommand returns the generate subcommand.
func NewCommand() *cobra.Command {
	var (
		formats  []string
		outDir   string
		title    string
		width    int
		category string
	)

	cmd := &cobra.Command{
		Use:   "generate <file.xlsx|file.csv>",
		Short: "Render Gantt chart exports from a project file",
		Long: `Reads a project spreadsheet, normalizes its columns and dates, and
writes the requested exports to the output directory.

Formats: svg (the chart), html (the full report), csv (the clean data),
or all.

Example:
  ganttkit generate projet.xlsx --format svg --format html --out ./dist`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonFlag, _ := cmd.Flags().GetBool("json")

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if title == "" {
				title = cfg.Chart.Title
			}
			if width == 0 {
				width = cfg.Chart.Width
			}
			if outDir == "" {
				outDir = cfg.Output.Dir
			}

			spin := progress.NewSpinner("Reading "+args[0], jsonFlag)
			spin.Start()
			plan, err := ingest.LoadFile(args[0])
			spin.Stop(fmt.Sprintf("Read %s", args[0]))
			if err != nil {
				return err
			}
			if category != "" {
				sub := plan.ByCategory(category)
				if len(sub.Tasks) == 0 {
					return fmt.Errorf("no tasks in category %q — run 'ganttkit stats %s' to list categories", category, args[0])
				}
				plan = sub
			}

			wanted, err := resolveFormats(formats)
			if err != nil {
				return err
			}

			opts := chart.Options{Title: title, Width: width}
			now := time.Now()
			var results []*export.Result
			for _, format := range wanted {
				res, err := export.Write(plan, format, outDir, opts, now)
				if err != nil {
					return output.System(err)
				}
				results = append(results, res)
			}

			if jsonFlag {
				return output.PrintJSON("generate", map[string]interface{}{
					"input":     args[0],
					"stats":     plan.Summary(),
					"artifacts": results,
				})
			}

			ok := color.New(color.FgGreen)
			st := plan.Summary()
			fmt.Printf("%d tasks in %d categories (%s span)\n", st.Tasks, st.Categories,
				fmt.Sprintf("%d-day", st.SpanDays))
			for _, res := range results {
				ok.Printf("  ✓ %s (%d bytes)\n", res.Path, res.Bytes)
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&formats, "format", []string{"svg"}, "Export format: svg, html, csv, or all (repeatable)")
	cmd.Flags().StringVar(&outDir, "out", "", "Output directory (default from config)")
	cmd.Flags().StringVar(&title, "title", "", "Chart title")
	cmd.Flags().IntVar(&width, "width", 0, "Chart width in pixels")
	cmd.Flags().StringVar(&category, "category", "", "Render only one category")

	return cmd
}

func resolveFormats(formats []string) ([]string, error) {
	var out []string
	seen := map[string]bool{}
	for _, f := range formats {
		if f == "all" {
			return []string{"csv", "svg", "html"}, nil
		}
		switch f {
		case "csv", "svg", "html":
			if !seen[f] {
				seen[f] = true
				out = append(out, f)
			}
		default:
			return nil, fmt.Errorf("unknown format %q — use svg, html, csv, or all", f)
		}
	}
	return out, nil
}

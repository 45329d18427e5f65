// Package batch provides the command that runs render jobs in bulk.
package batch

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sandrine-crypto/ganttkit/internal/batch"
	"github.com/sandrine-crypto/ganttkit/internal/config"
	"github.com/sandrine-crypto/ganttkit/internal/output"
	"github.com/sandrine-crypto/ganttkit/internal/progress"
)

// NewCommand returns the batch subcommand.
func NewCommand() *cobra.Command {
	var (
		glob    string
		outDir  string
		formats []string
	)

	cmd := &cobra.Command{
		Use:   "batch [jobs.yaml]",
		Short: "Run a batch of render jobs from a YAML file or a glob",
		Long: `Runs render jobs in bulk. Either pass a YAML job file, or use --glob to
render every matching spreadsheet with the same settings.

On error, the batch logs the failure and continues to the next job.

Example:
  ganttkit batch jobs.yaml
  ganttkit batch --glob './projets/*.xlsx' --format svg --out ./dist`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonFlag, _ := cmd.Flags().GetBool("json")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			var file *batch.File
			switch {
			case len(args) == 1 && glob != "":
				return fmt.Errorf("pass either a job file or --glob, not both")
			case len(args) == 1:
				file, err = batch.LoadFile(args[0])
			case glob != "":
				file, err = batch.FromGlob(glob, outDir, formats)
			default:
				return fmt.Errorf("nothing to do — pass a job file or --glob\n\nExample: ganttkit batch jobs.yaml")
			}
			if err != nil {
				return err
			}

			bar := progress.New(file.Name, len(file.Jobs), jsonFlag)
			onProgress := func(res batch.Result) {
				status := filepath.Base(res.Input)
				if res.Error != "" {
					status = "error: " + status
				}
				bar.Increment(status)
			}

			results, runErr := batch.Run(file, cfg.Chart.Width, time.Now(), onProgress)
			bar.Finish(fmt.Sprintf("%d job(s) done", len(results)))

			if jsonFlag {
				if runErr != nil {
					return output.PrintJSONError("batch", runErr, output.ExitUserError)
				}
				return output.PrintJSON("batch", results)
			}

			ok := color.New(color.FgGreen)
			fail := color.New(color.FgRed)
			for _, res := range results {
				if res.Error != "" {
					fail.Printf("  ✗ %s: %s\n", res.JobID, res.Error)
					continue
				}
				for _, art := range res.Artifacts {
					ok.Printf("  ✓ %s: %s\n", res.JobID, art.Path)
				}
			}
			return runErr
		},
	}

	cmd.Flags().StringVar(&glob, "glob", "", "Render every spreadsheet matching this glob")
	cmd.Flags().StringVar(&outDir, "out", "", "Output directory for --glob jobs")
	cmd.Flags().StringSliceVar(&formats, "format", nil, "Export format for --glob jobs (repeatable)")

	return cmd
}

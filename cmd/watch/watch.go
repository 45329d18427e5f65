// Package watch provides the command that auto-renders changed spreadsheets.
package watch

import (
	"fmt"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sandrine-crypto/ganttkit/internal/chart"
	"github.com/sandrine-crypto/ganttkit/internal/config"
	"github.com/sandrine-crypto/ganttkit/internal/export"
	"github.com/sandrine-crypto/ganttkit/internal/ingest"
	w "github.com/sandrine-crypto/ganttkit/internal/watch"
)

// NewCommand returns the watch subcommand.
func NewCommand() *cobra.Command {
	var (
		outDir    string
		formats   []string
		recursive bool
		debounce  int
	)

	cmd := &cobra.Command{
		Use:   "watch <directory> [directory...]",
		Short: "Watch directories and auto-render changed spreadsheets",
		Long: `Monitors directories for new or modified project files and renders the
configured exports for each one. Events are debounced so editors that
write in bursts trigger a single render.

Example:
  ganttkit watch ./drop --format svg --format html --out ./dist`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if debounce == 0 {
				debounce = cfg.Watch.DebounceMs
			}
			if !recursive {
				recursive = cfg.Watch.Recursive
			}

			for _, f := range formats {
				switch f {
				case "csv", "svg", "html":
				default:
					return fmt.Errorf("unknown format %q — use svg, html, or csv", f)
				}
			}

			ok := color.New(color.FgGreen)
			fail := color.New(color.FgRed)

			opts := chart.Options{Title: cfg.Chart.Title, Width: cfg.Chart.Width}
			handler := func(path string) error {
				plan, err := ingest.LoadFile(path)
				if err != nil {
					fail.Printf("  ✗ %s: %s\n", filepath.Base(path), err)
					return err
				}
				dir := outDir
				if dir == "" {
					dir = filepath.Dir(path)
				}
				base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
				for _, format := range formats {
					res, err := export.WriteAs(plan, format,
						filepath.Join(dir, base+"."+format), opts, time.Now())
					if err != nil {
						fail.Printf("  ✗ %s: %s\n", filepath.Base(path), err)
						return err
					}
					ok.Printf("  ✓ %s → %s\n", filepath.Base(path), res.Path)
				}
				return nil
			}

			watcher, err := w.New(w.Config{
				Directories: args,
				OutputDir:   outDir,
				Formats:     formats,
				Recursive:   recursive,
				Debounce:    debounce,
			}, handler)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			fmt.Printf("Watching %s — press Ctrl+C to stop.\n", strings.Join(args, ", "))
			return watcher.Start(ctx)
		},
	}

	cmd.Flags().StringVar(&outDir, "out", "", "Output directory (default: next to each input)")
	cmd.Flags().StringSliceVar(&formats, "format", []string{"svg"}, "Export format: svg, html, csv (repeatable)")
	cmd.Flags().BoolVar(&recursive, "recursive", false, "Also watch subdirectories")
	cmd.Flags().IntVar(&debounce, "debounce", 0, "Debounce window in milliseconds")

	return cmd
}

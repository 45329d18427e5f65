// Package serve provides the command that runs the web UI.
package serve

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/sandrine-crypto/ganttkit/internal/config"
	"github.com/sandrine-crypto/ganttkit/internal/output"
	"github.com/sandrine-crypto/ganttkit/internal/server"
)

// NewCommand returns the serve subcommand.
func NewCommand() *cobra.Command {
	var (
		addr        string
		maxUploadMB int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the Gantt chart web application",
		Long: `Starts the web UI: upload a spreadsheet, view the rendered chart, and
download CSV, SVG, or HTML exports. Stops cleanly on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			verbose, _ := cmd.Flags().GetBool("verbose")

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Serve.Addr
			}
			if maxUploadMB == 0 {
				maxUploadMB = cfg.Serve.MaxUploadMB
			}

			if !verbose {
				gin.SetMode(gin.ReleaseMode)
			}

			s := server.New(server.Config{
				Addr:           addr,
				MaxUploadBytes: int64(maxUploadMB) << 20,
				RateLimit:      cfg.Serve.RateLimit,
				RateLimitTTL:   time.Duration(cfg.Serve.RateLimitTTL) * time.Second,
				ChartTitle:     cfg.Chart.Title,
				ChartWidth:     cfg.Chart.Width,
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			fmt.Printf("Listening on %s — press Ctrl+C to stop.\n", addr)
			return output.System(s.Run(ctx))
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config, :8080)")
	cmd.Flags().IntVar(&maxUploadMB, "max-upload-mb", 0, "Maximum upload size in megabytes")

	return cmd
}

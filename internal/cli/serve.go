package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/squaremap/internal/server"
	"github.com/matzehuels/squaremap/pkg/observability"
)

// serveCommand creates the serve command for the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout and render API over HTTP",
		Long: `Serve the layout and render API over HTTP.

Settings come from SQUAREMAP_* environment variables (SQUAREMAP_ADDR,
SQUAREMAP_MAX_BODY_BYTES, SQUAREMAP_MAX_ITEMS, SQUAREMAP_BATCH_LIMIT,
SQUAREMAP_MAX_BATCH, SQUAREMAP_REQUEST_TIMEOUT). The listen address is taken
from --addr, then SQUAREMAP_ADDR, then [server].addr in the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := server.LoadSettings()
			if err != nil {
				return err
			}
			if _, ok := os.LookupEnv("SQUAREMAP_ADDR"); !ok {
				cfg, err := c.loadConfig()
				if err != nil {
					return err
				}
				if cfg.Server.Addr != "" {
					settings.Addr = cfg.Server.Addr
				}
			}
			if addr != "" {
				settings.Addr = addr
			}

			counters := observability.NewCounters()
			observability.SetPipelineHooks(counters)
			observability.SetHTTPHooks(counters)

			c.ui().info("Listening on %s", StyleHighlight.Render(settings.Addr))
			return server.New(settings, c.Logger, server.WithCounters(counters)).ListenAndServe(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default :8080)")

	return cmd
}

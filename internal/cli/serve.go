package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/nodegraph/internal/server"
)

// serveCommand creates the serve command running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout engines over HTTP",
		Long: `Serve the layout engines over HTTP.

Endpoints:
  GET  /engines          list engines
  POST /layout/{engine}  lay out a snapshot posted as the request body
  GET  /healthz          liveness probe
  GET  /metrics          Prometheus metrics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.config.Server.Addr
			}
			srv := server.New(server.Options{
				Registry: c.registry,
				Logger:   loggerFromContext(cmd.Context()),
			})
			return srv.ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")

	return cmd
}

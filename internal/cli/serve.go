package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/stadump/pkg/pipeline"
	"github.com/matzehuels/stadump/pkg/server"
)

// serveCommand creates the serve command for the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dump and baseline API over HTTP",
		Long: `Serve the dump and baseline API over HTTP.

Routes:
  POST   /dump
  GET    /baselines
  GET    /baselines/{name}
  PUT    /baselines/{name}
  DELETE /baselines/{name}
  POST   /baselines/{name}/check
  GET    /healthz`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.Config.Server
			if addr != "" {
				cfg.Addr = addr
			}
			return c.withRunner(cmd, func(r *pipeline.Runner) error {
				return server.New(r, cfg, c.Logger).ListenAndServe(cmd.Context())
			})
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, 127.0.0.1:8080)")

	return cmd
}

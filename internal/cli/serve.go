package cli

import (
	"github.com/spf13/cobra"

	"github.com/koljapluemer/canvasgrid/internal/config"
	"github.com/koljapluemer/canvasgrid/internal/server"
	"github.com/koljapluemer/canvasgrid/pkg/cache"
	"github.com/koljapluemer/canvasgrid/pkg/observability"
)

// apiKeyPrefix keeps grids saved by the server apart from CLI cache entries.
const apiKeyPrefix = "api:"

// serveCommand starts the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout API over HTTP",
		Long: `Serve the layout API over HTTP.

  POST /api/layouts                       lay out the JSON Canvas in the body
  GET  /api/layouts/{id}                  saved grid as JSON
  GET  /api/layouts/{id}/render/{format}  saved grid in any output format
  GET  /health                            liveness probe

Saved grids live in the configured cache; use the redis or mongo backend to
share them between instances.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if !cmd.Flags().Changed("addr") {
				addr = c.Config.Server.Addr
			}

			runner, err := c.newScopedRunner(ctx, noCache, cache.NewScopedKeyer(nil, apiKeyPrefix))
			if err != nil {
				return err
			}
			defer runner.Close()

			hooks := observability.NewLogHooks(c.Logger)
			observability.SetHTTPHooks(hooks)
			observability.SetPipelineHooks(hooks)
			observability.SetCacheHooks(hooks)
			defer observability.Reset()

			srv := server.New(runner, server.Config{
				Addr:     addr,
				Defaults: c.Config.PipelineOptions(),
				Logger:   c.Logger,
			})
			printInfo("Serving on %s", addr)
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", config.DefaultAddr, "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "keep nothing between requests (saved grids cannot be fetched)")
	return cmd
}

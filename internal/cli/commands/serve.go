package commands

import (
	"os/signal"
	"syscall"

	"github.com/sparkfmt/sparkfmt/internal/api"
	"github.com/sparkfmt/sparkfmt/internal/cli/config"
	"github.com/spf13/cobra"
)

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the formatting HTTP API",
		Long: `Start an HTTP server exposing the formatter.

POST /api/v1/format accepts {"sql": "...", "options": {...}} and returns
the formatted text; GET /healthz reports liveness. Request options
override the server's configured style per call.`,
		Example: `  # Serve on the default port
  sparkfmt serve

  # Serve on a specific port
  sparkfmt serve --port 9000

  # Format through the API
  curl -s -X POST localhost:8815/api/v1/format -d '{"sql": "select 1"}'`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx := NewCommandContext(cmd)

			// The flag wins over the config file when set.
			if !cmd.Flags().Changed("port") && cmdCtx.Cfg.Serve.Port > 0 {
				port = cmdCtx.Cfg.Serve.Port
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			srv := api.NewServer(api.Config{
				Port:           port,
				DefaultOptions: cmdCtx.Cfg.FormatOptions(),
				Logger:         cmdCtx.Logger,
			})
			return srv.Serve(ctx)
		},
	}

	cmd.Flags().IntVar(&port, "port", config.DefaultServePort, "Port to listen on")

	return cmd
}

package commands

import (
	"fmt"

	"github.com/leapstack-labs/leapcalc/internal/server"
	"github.com/spf13/cobra"
)

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API and browser playground",
		Long: `Start an HTTP server exposing both languages.

Endpoints:
  GET  /              browser playground
  POST /api/eval      {"expression": "..."}
  POST /api/query     {"sql": "..."}
  GET  /api/tokens    ?lang=calc|query&input=...
  GET  /api/history   recent runs, newest first
  GET  /healthz

The server stops gracefully on SIGINT or SIGTERM.`,
		Example: `  leapcalc serve
  leapcalc serve --addr :9000
  LEAPCALC_SERVER__SESSION_SECRET=... leapcalc serve`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}

	cmd.Flags().String("addr", "", "Address to listen on (default from config)")

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	cmdCtx := NewCommandContext(cmd)

	serverCfg := cmdCtx.Cfg.Server
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		serverCfg.Addr = addr
	}

	srv, err := server.New(server.Config{
		Engine:       cmdCtx.Engine,
		Server:       serverCfg,
		DefaultQuery: cmdCtx.Cfg.Query.Default,
		Logger:       cmdCtx.Logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	ctx, stop := signalContext(cmd)
	defer stop()

	cmdCtx.Renderer.Printf("Serving on http://%s\n", serverCfg.Addr)
	cmdCtx.Renderer.Muted("Press Ctrl+C to stop")
	return srv.Serve(ctx)
}

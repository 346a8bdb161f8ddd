package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/panyam/snippet/web"
)

var (
	serveHost string
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the compile API over HTTP",
	Long: `Start an HTTP server exposing:
  POST /api/compile   compile a snippet ({"code": "...", "options": {...}})
  POST /api/classify  detect the form of a snippet
  GET  /api/health    liveness and version

The target is chosen per request from the caller's User-Agent unless the
request options or configuration set one.

Example:
  snippet serve --port 9090
  snippet compile --server http://localhost:9090 Counter.vue`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if serveHost != "" {
			cfg.Server.Host = serveHost
		}
		if servePort != 0 {
			cfg.Server.Port = servePort
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		server := web.NewServer(cfg.Server.Addr(), newCompiler())
		server.API.Version = Version
		printf("%s http://%s\n", successColor("Serving snippet API on"), cfg.Server.Addr())
		return server.Start(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Host to bind to (default from config)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from config)")
	AddCommand(serveCmd)
}

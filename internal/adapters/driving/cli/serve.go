package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/lodestar-labs/lodestar/internal/adapters/driving/httpapi"
	"github.com/lodestar-labs/lodestar/internal/logger"
)

var (
	serveHost string
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the compatibility HTTP server",
	Long: `Start the HTTP server exposing search and fetch to assistants.

The server speaks three dialects on one port: REST-style operation
endpoints (POST /search, POST /fetch, GET /health), a JSON-RPC
initialize envelope on the root path, and a Server-Sent Events stream
for clients that hold a connection open.

Bind address comes from HOST and PORT (default 0.0.0.0:8000) and can
be overridden with flags.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "", "bind host (overrides HOST)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "bind port (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if cfg == nil || registry == nil {
		return errors.New("server not configured")
	}

	host := cfg.Host
	if serveHost != "" {
		host = serveHost
	}
	port := cfg.Port
	if servePort != 0 {
		port = servePort
	}

	server, err := httpapi.NewServer(registry, httpapi.Config{
		ServerName:     "Lodestar MCP Server",
		Version:        version,
		AllowedOrigins: cfg.AllowedOrigins,
	})
	if err != nil {
		return err
	}

	probeUpstream(cmd.Context())

	addr := httpapi.Addr(host, port)
	fmt.Fprintf(cmd.OutOrStdout(), "Starting server on %s\n", addr)
	return server.Run(cmd.Context(), addr)
}

// probeUpstream pings the vector-store API once at startup. Failure is
// logged but never fatal: search degrades to empty results on its own
// and the upstream may come back.
func probeUpstream(ctx context.Context) {
	if retrievalClient == nil {
		return
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := retrievalClient.Ping(pingCtx); err != nil {
		logger.Warn("upstream unreachable at startup: %v", err)
		return
	}
	logger.Info("upstream vector store reachable")
}

package httpapi

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/lodestar-labs/lodestar/internal/core/services"
	"github.com/lodestar-labs/lodestar/internal/logger"
)

// Default configuration values.
const (
	// DefaultKeepaliveInterval is the pause between SSE keepalive events.
	DefaultKeepaliveInterval = 15 * time.Second
)

// Config holds configuration for the HTTP protocol adapter.
type Config struct {
	// ServerName identifies the server in capability envelopes.
	ServerName string

	// Version is the reported server version.
	Version string

	// AllowedOrigins is the CORS allow-list. Empty or containing "*"
	// allows any origin.
	AllowedOrigins []string

	// KeepaliveInterval overrides the SSE keepalive pause.
	// Zero means DefaultKeepaliveInterval. Tests shorten it.
	KeepaliveInterval time.Duration
}

// Server routes inbound HTTP requests onto the operation registry and
// normalizes handler results into consistent JSON responses.
type Server struct {
	registry  *services.Registry
	cfg       Config
	allowAny  bool
	originSet map[string]bool
}

// NewServer creates the protocol adapter for registry.
func NewServer(registry *services.Registry, cfg Config) (*Server, error) {
	if registry == nil {
		return nil, ErrMissingRegistry
	}
	if cfg.KeepaliveInterval <= 0 {
		cfg.KeepaliveInterval = DefaultKeepaliveInterval
	}

	s := &Server{
		registry:  registry,
		cfg:       cfg,
		originSet: make(map[string]bool),
	}

	if len(cfg.AllowedOrigins) == 0 {
		s.allowAny = true
	}
	for _, origin := range cfg.AllowedOrigins {
		if origin == "*" {
			s.allowAny = true
		}
		s.originSet[origin] = true
	}

	return s, nil
}

// Run serves the adapter on addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// SSE loops watch the request context; BaseContext ties it to ctx so
	// shutdown terminates open streams.
	httpServer.BaseContext = func(net.Listener) context.Context {
		return ctx
	}

	// Graceful shutdown when context is cancelled.
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx) //nolint:errcheck
	}()

	logger.Info("HTTP server listening on %s", addr)

	err := httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// corsOrigin resolves the Access-Control-Allow-Origin value for a request.
// Returns empty when the origin is not allowed.
func (s *Server) corsOrigin(r *http.Request) string {
	if s.allowAny {
		return "*"
	}
	origin := r.Header.Get("Origin")
	if origin != "" && s.originSet[origin] {
		return origin
	}
	return ""
}

// applyCommonHeaders sets CORS and security headers on every response.
func (s *Server) applyCommonHeaders(w http.ResponseWriter, r *http.Request) {
	if origin := s.corsOrigin(r); origin != "" {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
	}
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("X-Frame-Options", "DENY")
	w.Header().Set("Content-Security-Policy", "default-src 'self'")
}

// serverInfo returns the serverInfo object used in capability envelopes.
func (s *Server) serverInfo() map[string]any {
	return map[string]any{
		"name":    s.cfg.ServerName,
		"version": s.cfg.Version,
	}
}

// capabilities returns the capability object announcing invocable
// operations. The health operation is internal plumbing and not announced.
func (s *Server) capabilities() map[string]any {
	allowed := make([]string, 0)
	for _, op := range s.registry.List() {
		if op.Name == services.OpHealth {
			continue
		}
		allowed = append(allowed, op.Name)
	}
	return map[string]any{
		"tools": map[string]any{
			"allowedTools": allowed,
		},
	}
}

// Addr formats host and port into a listen address.
func Addr(host string, port int) string {
	return fmt.Sprintf("%s:%d", host, port)
}

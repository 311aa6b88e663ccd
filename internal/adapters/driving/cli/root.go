// Package cli wires the cobra command tree for the lodestar binary.
// Services are injected by the entrypoint before Execute runs; commands
// that need a service fail with a clear error when it is absent.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/lodestar-labs/lodestar/internal/config"
	"github.com/lodestar-labs/lodestar/internal/core/ports/driven"
	"github.com/lodestar-labs/lodestar/internal/core/ports/driving"
	"github.com/lodestar-labs/lodestar/internal/core/services"
	"github.com/lodestar-labs/lodestar/internal/logger"
)

// version is stamped at build time via -ldflags.
var version = "1.0.0"

var (
	cfg              *config.Config
	retrievalService driving.RetrievalService
	retrievalClient  driven.RetrievalClient
	registry         *services.Registry

	verbose bool
)

// Services carries everything the commands need from the entrypoint.
type Services struct {
	Config    *config.Config
	Retrieval driving.RetrievalService
	Client    driven.RetrievalClient
	Registry  *services.Registry
}

// SetServices injects the wired services into the command tree.
func SetServices(s *Services) {
	cfg = s.Config
	retrievalService = s.Retrieval
	retrievalClient = s.Client
	registry = s.Registry
}

var rootCmd = &cobra.Command{
	Use:   "lodestar",
	Short: "Retrieval bridge for vector-store search",
	Long: `Lodestar bridges AI assistants to an OpenAI vector store.

It serves search and document fetch over a compatibility HTTP API
(REST, JSON-RPC envelope and SSE) or as a native MCP server, and
offers one-shot search and fetch commands for scripting.`,
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

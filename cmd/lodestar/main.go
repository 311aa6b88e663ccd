package main

import (
	"fmt"
	"os"

	"github.com/lodestar-labs/lodestar/internal/adapters/driven/vectorstore/openai"
	"github.com/lodestar-labs/lodestar/internal/adapters/driving/cli"
	"github.com/lodestar-labs/lodestar/internal/config"
	"github.com/lodestar-labs/lodestar/internal/core/services"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load("")
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	wired := &cli.Services{Config: cfg}

	// Commands that never touch the upstream (version, help) still work
	// without credentials, so a validation failure only skips the wiring.
	if err := cfg.Validate(); err == nil {
		client, err := openai.NewClient(openai.Config{
			APIKey:            cfg.APIKey,
			VectorStoreID:     cfg.VectorStoreID,
			RequestsPerSecond: cfg.RequestsPerSecond,
			BurstSize:         cfg.BurstSize,
		})
		if err != nil {
			return fmt.Errorf("creating vector store client: %w", err)
		}

		svc := services.NewRetrievalService(client, services.ServiceInfo{
			Name:    "lodestar",
			Version: "1.0.0",
		})

		registry, err := services.NewDefaultRegistry(svc)
		if err != nil {
			return fmt.Errorf("building operation registry: %w", err)
		}

		wired.Retrieval = svc
		wired.Client = client
		wired.Registry = registry
	}

	cli.SetServices(wired)

	return cli.Execute()
}

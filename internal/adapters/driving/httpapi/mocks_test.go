package httpapi

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lodestar-labs/lodestar/internal/core/domain"
	"github.com/lodestar-labs/lodestar/internal/core/ports/driven"
	"github.com/lodestar-labs/lodestar/internal/core/services"
)

// mockRetrievalClient is a mock implementation of driven.RetrievalClient.
// It counts calls so tests can assert the upstream was never touched.
type mockRetrievalClient struct {
	matches []domain.Match
	doc     *domain.Document

	searchErr error
	fetchErr  error

	searchCalls int
	fetchCalls  int
}

var _ driven.RetrievalClient = (*mockRetrievalClient)(nil)

func (m *mockRetrievalClient) Search(_ context.Context, _ string, _ int) ([]domain.Match, error) {
	m.searchCalls++
	if m.searchErr != nil {
		return []domain.Match{}, nil
	}
	return m.matches, nil
}

func (m *mockRetrievalClient) Fetch(_ context.Context, _ string) (*domain.Document, error) {
	m.fetchCalls++
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	return m.doc, nil
}

func (m *mockRetrievalClient) Ping(_ context.Context) error {
	return nil
}

// newTestServer wires a real service and registry around client, mirroring
// production composition.
func newTestServer(t *testing.T, client driven.RetrievalClient) *Server {
	t.Helper()

	svc := services.NewRetrievalService(client, services.ServiceInfo{
		Name:    "lodestar",
		Version: "1.0.0",
	})
	registry, err := services.NewDefaultRegistry(svc)
	require.NoError(t, err)

	server, err := NewServer(registry, Config{
		ServerName:        "Lodestar MCP Server",
		Version:           "1.0.0",
		KeepaliveInterval: 50 * time.Millisecond,
	})
	require.NoError(t, err)
	return server
}

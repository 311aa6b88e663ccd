package services

import (
	"context"

	"github.com/lodestar-labs/lodestar/internal/core/domain"
	"github.com/lodestar-labs/lodestar/internal/core/ports/driven"
	"github.com/lodestar-labs/lodestar/internal/core/ports/driving"
)

// mockRetrievalClient is a mock implementation of driven.RetrievalClient.
// It counts calls so tests can assert the upstream was never touched.
type mockRetrievalClient struct {
	matches []domain.Match
	doc     *domain.Document

	searchErr error
	fetchErr  error
	pingErr   error

	searchCalls int
	fetchCalls  int
}

var _ driven.RetrievalClient = (*mockRetrievalClient)(nil)

func (m *mockRetrievalClient) Search(_ context.Context, _ string, _ int) ([]domain.Match, error) {
	m.searchCalls++
	return m.matches, m.searchErr
}

func (m *mockRetrievalClient) Fetch(_ context.Context, _ string) (*domain.Document, error) {
	m.fetchCalls++
	return m.doc, m.fetchErr
}

func (m *mockRetrievalClient) Ping(_ context.Context) error {
	return m.pingErr
}

// mockRetrievalService is a mock implementation of driving.RetrievalService.
type mockRetrievalService struct {
	searchResp driving.SearchResponse
	searchErr  error
	doc        *domain.Document
	fetchErr   error
	health     driving.HealthStatus
	healthErr  error
}

var _ driving.RetrievalService = (*mockRetrievalService)(nil)

func (m *mockRetrievalService) Search(_ context.Context, _ string) (driving.SearchResponse, error) {
	return m.searchResp, m.searchErr
}

func (m *mockRetrievalService) Fetch(_ context.Context, _ string) (*domain.Document, error) {
	return m.doc, m.fetchErr
}

func (m *mockRetrievalService) Health(_ context.Context) (driving.HealthStatus, error) {
	return m.health, m.healthErr
}

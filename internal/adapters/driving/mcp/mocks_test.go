package mcp

import (
	"context"

	"github.com/lodestar-labs/lodestar/internal/core/domain"
	"github.com/lodestar-labs/lodestar/internal/core/ports/driving"
)

// mockRetrievalService is a mock implementation of driving.RetrievalService.
type mockRetrievalService struct {
	searchResp driving.SearchResponse
	searchErr  error
	doc        *domain.Document
	fetchErr   error
	health     driving.HealthStatus
	healthErr  error
}

func (m *mockRetrievalService) Search(_ context.Context, _ string) (driving.SearchResponse, error) {
	return m.searchResp, m.searchErr
}

func (m *mockRetrievalService) Fetch(_ context.Context, _ string) (*domain.Document, error) {
	return m.doc, m.fetchErr
}

func (m *mockRetrievalService) Health(_ context.Context) (driving.HealthStatus, error) {
	return m.health, m.healthErr
}

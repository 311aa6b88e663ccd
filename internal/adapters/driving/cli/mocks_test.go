package cli

import (
	"context"

	"github.com/lodestar-labs/lodestar/internal/config"
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

// mockRetrievalClient is a mock implementation of driven.RetrievalClient.
type mockRetrievalClient struct {
	pingErr error
}

func (m *mockRetrievalClient) Search(_ context.Context, _ string, _ int) ([]domain.Match, error) {
	return []domain.Match{}, nil
}

func (m *mockRetrievalClient) Fetch(_ context.Context, id string) (*domain.Document, error) {
	return &domain.Document{ID: id}, nil
}

func (m *mockRetrievalClient) Ping(_ context.Context) error {
	return m.pingErr
}

// setupTestServices installs mock services and returns a cleanup func
// restoring the previous wiring.
func setupTestServices() func() {
	oldCfg := cfg
	oldService := retrievalService
	oldClient := retrievalClient
	oldRegistry := registry

	svc := &mockRetrievalService{
		searchResp: driving.SearchResponse{
			Results: []domain.Match{
				{
					ID:      "file_mock1",
					Title:   "Mock Document",
					Snippet: "a short mock snippet",
					URL:     "https://platform.openai.com/storage/files/file_mock1",
				},
			},
		},
		doc: &domain.Document{
			ID:    "file_mock1",
			Title: "Mock Document",
			Text:  "full mock content",
			URL:   "https://platform.openai.com/storage/files/file_mock1",
		},
	}

	SetServices(&Services{
		Config:    &config.Config{Host: "127.0.0.1", Port: 8000},
		Retrieval: svc,
		Client:    &mockRetrievalClient{},
	})

	return func() {
		cfg = oldCfg
		retrievalService = oldService
		retrievalClient = oldClient
		registry = oldRegistry
	}
}

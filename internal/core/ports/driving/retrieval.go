package driving

import (
	"context"

	"github.com/lodestar-labs/lodestar/internal/core/domain"
)

// SearchResponse is the documented result shape of the search operation.
type SearchResponse struct {
	Results []domain.Match `json:"results"`
}

// HealthStatus is the fixed-shape liveness payload of the health operation.
type HealthStatus struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Service   string `json:"service"`
	Version   string `json:"version"`
}

// RetrievalService exposes the retrieval operations to driving adapters.
type RetrievalService interface {
	// Search finds semantically relevant matches for query.
	// Empty queries yield an empty result set; upstream failures
	// degrade to an empty result set and never return an error.
	Search(ctx context.Context, query string) (SearchResponse, error)

	// Fetch retrieves the full document for id. Invalid ids fail with
	// domain.ErrInvalidDocumentID; upstream failures are wrapped with
	// domain.ErrUpstream.
	Fetch(ctx context.Context, id string) (*domain.Document, error)

	// Health reports process liveness. The payload is verified to be
	// JSON-serializable before it is returned.
	Health(ctx context.Context) (HealthStatus, error)
}

package driven

import (
	"context"

	"github.com/lodestar-labs/lodestar/internal/core/domain"
)

// RetrievalClient is the typed facade over the upstream vector-store API.
// Implementations own timeout configuration and collapse the upstream
// SDK's response shapes into the domain types.
type RetrievalClient interface {
	// Search returns matches for query in upstream order.
	//
	// Empty or whitespace-only queries short-circuit to an empty slice
	// without an upstream call. Upstream transport and auth failures
	// degrade to an empty slice rather than an error; the condition is
	// logged but never surfaced to the caller.
	Search(ctx context.Context, query string, limit int) ([]domain.Match, error)

	// Fetch retrieves the full document for id.
	//
	// Ids failing domain.ValidDocumentID are rejected with
	// domain.ErrInvalidDocumentID before any upstream call. Unlike
	// Search, upstream failures propagate to the caller.
	Fetch(ctx context.Context, id string) (*domain.Document, error)

	// Ping validates the upstream API is reachable with the configured
	// credentials. It is a lightweight check that runs no retrieval.
	Ping(ctx context.Context) error
}

package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/lodestar-labs/lodestar/internal/core/domain"
	"github.com/lodestar-labs/lodestar/internal/core/ports/driven"
	"github.com/lodestar-labs/lodestar/internal/core/ports/driving"
	"github.com/lodestar-labs/lodestar/internal/logger"
)

// Ensure RetrievalService implements the interface.
var _ driving.RetrievalService = (*RetrievalService)(nil)

// searchLimit is the upstream API's own maximum; the service passes it
// through without enforcing a separate ceiling.
const searchLimit = 100

// ServiceInfo identifies the running process in health responses.
type ServiceInfo struct {
	Name    string
	Version string
}

// RetrievalService implements search, fetch and health on top of the
// upstream retrieval client.
type RetrievalService struct {
	client driven.RetrievalClient
	info   ServiceInfo
}

// NewRetrievalService creates a retrieval service backed by client.
func NewRetrievalService(client driven.RetrievalClient, info ServiceInfo) *RetrievalService {
	return &RetrievalService{
		client: client,
		info:   info,
	}
}

// Search finds semantically relevant matches for query.
//
// Empty or whitespace-only queries return an empty result set without
// touching the upstream store. Upstream failures degrade to an empty
// result set; the client logs the condition.
func (s *RetrievalService) Search(ctx context.Context, query string) (driving.SearchResponse, error) {
	resp := driving.SearchResponse{Results: []domain.Match{}}

	if strings.TrimSpace(query) == "" {
		logger.Debug("Empty query, returning no results")
		return resp, nil
	}
	if s.client == nil {
		return resp, domain.ErrRetrievalUnavailable
	}

	matches, err := s.client.Search(ctx, query, searchLimit)
	if err != nil {
		// The client contract degrades upstream failures to an empty
		// slice, so an error here is a programming fault. Keep the
		// degrade-to-empty behaviour at this layer too.
		logger.Warn("Search client returned error: %v", err)
		return resp, nil
	}

	// A nil slice from the client must not reach the wire as null.
	if matches != nil {
		resp.Results = matches
	}
	return resp, nil
}

// Fetch retrieves the full document for id.
//
// The id format is validated before any upstream call; a violation fails
// fast with domain.ErrInvalidDocumentID. Upstream failures propagate
// wrapped in domain.ErrUpstream so callers can surface the message.
func (s *RetrievalService) Fetch(ctx context.Context, id string) (*domain.Document, error) {
	if !domain.ValidDocumentID(id) {
		return nil, fmt.Errorf("fetch %q: %w", id, domain.ErrInvalidDocumentID)
	}
	if s.client == nil {
		return nil, domain.ErrRetrievalUnavailable
	}

	doc, err := s.client.Fetch(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	return doc, nil
}

// Health reports process liveness regardless of upstream reachability.
// The payload is round-tripped through the JSON encoder so that a
// serialization bug surfaces as a handler failure rather than a silent
// wire-format corruption.
func (s *RetrievalService) Health(_ context.Context) (driving.HealthStatus, error) {
	status := driving.HealthStatus{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Service:   s.info.Name,
		Version:   s.info.Version,
	}

	if _, err := json.Marshal(status); err != nil {
		return driving.HealthStatus{}, fmt.Errorf("health payload not serializable: %w", err)
	}
	return status, nil
}

package services

import (
	"context"
	"errors"

	"github.com/lodestar-labs/lodestar/internal/core/domain"
	"github.com/lodestar-labs/lodestar/internal/core/ports/driving"
)

// Operation names exposed by the default registry.
const (
	OpSearch = "search"
	OpFetch  = "fetch"
	OpHealth = "health_check"
)

// NewDefaultRegistry builds the registry of operations for svc:
// search, fetch and health_check, each with its declared input schema.
func NewDefaultRegistry(svc driving.RetrievalService) (*Registry, error) {
	reg := NewRegistry()

	ops := []domain.Operation{
		{
			Name: OpSearch,
			Description: "Search for documents in the vector store. " +
				"Returns matches with id, title, text snippet and URL; " +
				"use fetch to retrieve complete document content.",
			InputSchema: domain.InputSchema{
				Type: "object",
				Properties: map[string]domain.Property{
					"query": {Type: "string", Description: "The search query"},
				},
				Required: []string{"query"},
			},
			Handler: searchHandler(svc),
		},
		{
			Name: OpFetch,
			Description: "Retrieve complete document content by ID for " +
				"detailed analysis and citation.",
			InputSchema: domain.InputSchema{
				Type: "object",
				Properties: map[string]domain.Property{
					"id": {Type: "string", Description: "File ID from the vector store (file_xxx)"},
				},
				Required: []string{"id"},
			},
			Handler: fetchHandler(svc),
		},
		{
			Name:        OpHealth,
			Description: "Health check returning server status and metadata.",
			InputSchema: domain.InputSchema{
				Type:       "object",
				Properties: map[string]domain.Property{},
				Required:   []string{},
			},
			Handler: healthHandler(svc),
		},
	}

	for _, op := range ops {
		if err := reg.Register(op); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// searchHandler validates the query argument and delegates to the service.
// Upstream failures never surface here; the service degrades to an empty
// result set.
func searchHandler(svc driving.RetrievalService) domain.HandlerFunc {
	return func(ctx context.Context, args map[string]any) domain.HandlerResult {
		raw, ok := args["query"]
		if !ok {
			return domain.Err(domain.ErrorKindValidation, "missing required field: query")
		}
		query, ok := raw.(string)
		if !ok {
			return domain.Err(domain.ErrorKindValidation, "field query must be a string")
		}

		resp, err := svc.Search(ctx, query)
		if err != nil {
			return domain.Err(domain.ErrorKindInternal, err.Error())
		}
		return domain.Ok(map[string]any{"results": resp.Results})
	}
}

// fetchHandler validates the id argument and delegates to the service.
// Invalid ids short-circuit to a client-input failure before any upstream
// call; upstream failures surface with the upstream message attached.
func fetchHandler(svc driving.RetrievalService) domain.HandlerFunc {
	return func(ctx context.Context, args map[string]any) domain.HandlerResult {
		raw, ok := args["id"]
		if !ok {
			return domain.Err(domain.ErrorKindInvalidInput, "missing required field: id")
		}
		id, ok := raw.(string)
		if !ok {
			return domain.Err(domain.ErrorKindInvalidInput, "field id must be a string")
		}

		doc, err := svc.Fetch(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrInvalidDocumentID) {
				return domain.Err(domain.ErrorKindInvalidInput, domain.ErrInvalidDocumentID.Error())
			}
			return domain.Err(domain.ErrorKindUpstream, err.Error())
		}

		result := map[string]any{
			"id":    doc.ID,
			"title": doc.Title,
			"text":  doc.Text,
			"url":   doc.URL,
		}
		if doc.Metadata != nil {
			result["metadata"] = doc.Metadata
		}
		return domain.Ok(result)
	}
}

// healthHandler reports process liveness. It takes no arguments.
func healthHandler(svc driving.RetrievalService) domain.HandlerFunc {
	return func(ctx context.Context, _ map[string]any) domain.HandlerResult {
		status, err := svc.Health(ctx)
		if err != nil {
			return domain.Err(domain.ErrorKindInternal, err.Error())
		}
		return domain.Ok(map[string]any{
			"status":    status.Status,
			"timestamp": status.Timestamp,
			"service":   status.Service,
			"version":   status.Version,
		})
	}
}

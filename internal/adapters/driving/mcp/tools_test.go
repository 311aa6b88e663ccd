package mcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lodestar-labs/lodestar/internal/core/domain"
	"github.com/lodestar-labs/lodestar/internal/core/ports/driving"
)

func newTestServer(t *testing.T, svc driving.RetrievalService) *Server {
	t.Helper()

	server, err := NewServer(&Ports{Retrieval: svc})
	require.NoError(t, err)

	return server
}

func TestServer_handleSearch(t *testing.T) {
	t.Run("returns matches from the service", func(t *testing.T) {
		svc := &mockRetrievalService{
			searchResp: driving.SearchResponse{
				Results: []domain.Match{
					{
						ID:      "file_abc",
						Title:   "release notes",
						Snippet: "v2 ships next week",
						URL:     "https://platform.openai.com/storage/files/file_abc",
					},
				},
			},
		}
		server := newTestServer(t, svc)

		_, output, err := server.handleSearch(context.Background(), nil, SearchInput{Query: "release"})

		require.NoError(t, err)
		require.Len(t, output.Results, 1)
		assert.Equal(t, "file_abc", output.Results[0].ID)
		assert.Equal(t, "release notes", output.Results[0].Title)
		assert.Equal(t, "v2 ships next week", output.Results[0].Text)
	})

	t.Run("empty result set yields empty slice", func(t *testing.T) {
		svc := &mockRetrievalService{
			searchResp: driving.SearchResponse{Results: []domain.Match{}},
		}
		server := newTestServer(t, svc)

		_, output, err := server.handleSearch(context.Background(), nil, SearchInput{Query: "nothing"})

		require.NoError(t, err)
		assert.Empty(t, output.Results)
		assert.NotNil(t, output.Results)
	})

	t.Run("service error propagates", func(t *testing.T) {
		svc := &mockRetrievalService{searchErr: assert.AnError}
		server := newTestServer(t, svc)

		_, _, err := server.handleSearch(context.Background(), nil, SearchInput{Query: "q"})

		assert.ErrorIs(t, err, assert.AnError)
	})
}

func TestServer_handleFetch(t *testing.T) {
	t.Run("returns full document", func(t *testing.T) {
		svc := &mockRetrievalService{
			doc: &domain.Document{
				ID:       "file_abc",
				Title:    "notes.md",
				Text:     "full body",
				URL:      "https://platform.openai.com/storage/files/file_abc",
				Metadata: map[string]any{"author": "ops"},
			},
		}
		server := newTestServer(t, svc)

		_, output, err := server.handleFetch(context.Background(), nil, FetchInput{ID: "file_abc"})

		require.NoError(t, err)
		assert.Equal(t, "file_abc", output.ID)
		assert.Equal(t, "notes.md", output.Title)
		assert.Equal(t, "full body", output.Text)
		assert.Equal(t, map[string]any{"author": "ops"}, output.Metadata)
	})

	t.Run("invalid id error propagates", func(t *testing.T) {
		svc := &mockRetrievalService{fetchErr: domain.ErrInvalidDocumentID}
		server := newTestServer(t, svc)

		_, _, err := server.handleFetch(context.Background(), nil, FetchInput{ID: "not-a-file"})

		assert.ErrorIs(t, err, domain.ErrInvalidDocumentID)
	})
}

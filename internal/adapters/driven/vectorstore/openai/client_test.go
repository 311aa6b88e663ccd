package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lodestar-labs/lodestar/internal/core/domain"
)

func testClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(Config{
		APIKey:        "test-key",
		VectorStoreID: "vs_test",
		BaseURL:       srv.URL,
	})
	require.NoError(t, err)
	return client, srv
}

func TestNewClient(t *testing.T) {
	t.Run("missing API key returns error", func(t *testing.T) {
		_, err := NewClient(Config{VectorStoreID: "vs_test"})
		assert.Error(t, err)
	})

	t.Run("missing vector store ID returns error", func(t *testing.T) {
		_, err := NewClient(Config{APIKey: "k"})
		assert.Error(t, err)
	})

	t.Run("defaults applied", func(t *testing.T) {
		client, err := NewClient(Config{APIKey: "k", VectorStoreID: "vs_test"})
		require.NoError(t, err)
		assert.Equal(t, DefaultBaseURL, client.baseURL)
		assert.Equal(t, DefaultTimeout, client.client.Timeout)
	})
}

func TestClient_Search(t *testing.T) {
	t.Run("empty query issues no upstream call", func(t *testing.T) {
		var calls atomic.Int32
		client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			calls.Add(1)
			w.Write([]byte(`{"data":[]}`))
		}))

		for _, query := range []string{"", "   ", "\n\t"} {
			matches, err := client.Search(context.Background(), query, 100)
			require.NoError(t, err)
			assert.Empty(t, matches)
		}
		assert.Equal(t, int32(0), calls.Load())
	})

	t.Run("normalizes upstream items", func(t *testing.T) {
		client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/vector_stores/vs_test/search", r.URL.Path)
			assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

			var req map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "hello", req["query"])

			fmt.Fprint(w, `{"data":[
				{"file_id":"file_123","filename":"doc.txt","content":[{"type":"text","text":"short content"}]},
				{"content":[]},
				{"file_id":"file_456","filename":"bare.txt","content":["plain string chunk"]}
			]}`)
		}))

		matches, err := client.Search(context.Background(), "hello", 100)
		require.NoError(t, err)
		require.Len(t, matches, 3)

		assert.Equal(t, "file_123", matches[0].ID)
		assert.Equal(t, "doc.txt", matches[0].Title)
		assert.Equal(t, "short content", matches[0].Snippet)
		assert.Equal(t, "https://platform.openai.com/storage/files/file_123", matches[0].URL)

		// Absent fields synthesize placeholders.
		assert.Equal(t, "vs_1", matches[1].ID)
		assert.Equal(t, "Document 2", matches[1].Title)
		assert.Equal(t, domain.NoContentPlaceholder, matches[1].Snippet)

		// Bare-string content chunks decode too.
		assert.Equal(t, "plain string chunk", matches[2].Snippet)
	})

	t.Run("long content is snippet-truncated", func(t *testing.T) {
		long := strings.Repeat("x", 500)
		client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprintf(w, `{"data":[{"file_id":"file_1","filename":"a","content":[{"text":%q}]}]}`, long)
		}))

		matches, err := client.Search(context.Background(), "q", 100)
		require.NoError(t, err)
		require.Len(t, matches, 1)
		assert.Len(t, matches[0].Snippet, domain.SnippetLength+3)
		assert.True(t, strings.HasSuffix(matches[0].Snippet, "..."))
	})

	t.Run("upstream failure degrades to empty results", func(t *testing.T) {
		client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, `{"error":{"message":"bad key"}}`, http.StatusUnauthorized)
		}))

		matches, err := client.Search(context.Background(), "hello", 100)
		require.NoError(t, err)
		assert.Empty(t, matches)
	})

	t.Run("unreachable upstream degrades to empty results", func(t *testing.T) {
		client, err := NewClient(Config{
			APIKey:        "k",
			VectorStoreID: "vs_test",
			BaseURL:       "http://127.0.0.1:1",
		})
		require.NoError(t, err)

		matches, err := client.Search(context.Background(), "hello", 100)
		require.NoError(t, err)
		assert.Empty(t, matches)
	})
}

func TestClient_Fetch(t *testing.T) {
	t.Run("invalid id rejected before upstream call", func(t *testing.T) {
		var calls atomic.Int32
		client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			calls.Add(1)
		}))

		_, err := client.Fetch(context.Background(), "invalid_id")
		assert.ErrorIs(t, err, domain.ErrInvalidDocumentID)
		assert.Equal(t, int32(0), calls.Load())
	})

	t.Run("joins content chunks and attaches metadata", func(t *testing.T) {
		client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/vector_stores/vs_test/files/file_123/content":
				fmt.Fprint(w, `{"data":[{"text":"first chunk"},{"text":"second chunk"}]}`)
			case "/vector_stores/vs_test/files/file_123":
				fmt.Fprint(w, `{"id":"file_123","filename":"test_document.txt","attributes":{"size":1234}}`)
			default:
				http.NotFound(w, r)
			}
		}))

		doc, err := client.Fetch(context.Background(), "file_123")
		require.NoError(t, err)
		assert.Equal(t, "file_123", doc.ID)
		assert.Equal(t, "test_document.txt", doc.Title)
		assert.Equal(t, "first chunk\nsecond chunk", doc.Text)
		assert.Equal(t, "https://platform.openai.com/storage/files/file_123", doc.URL)
		require.NotNil(t, doc.Metadata)
		assert.Equal(t, float64(1234), doc.Metadata["size"])
	})

	t.Run("no content yields placeholder text", func(t *testing.T) {
		client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.HasSuffix(r.URL.Path, "/content") {
				fmt.Fprint(w, `{"data":[]}`)
				return
			}
			fmt.Fprint(w, `{"id":"file_123","filename":"empty.txt"}`)
		}))

		doc, err := client.Fetch(context.Background(), "file_123")
		require.NoError(t, err)
		assert.Equal(t, domain.NoContentPlaceholder, doc.Text)
		assert.Nil(t, doc.Metadata)
	})

	t.Run("missing filename synthesizes title", func(t *testing.T) {
		client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.HasSuffix(r.URL.Path, "/content") {
				fmt.Fprint(w, `{"data":[{"text":"body"}]}`)
				return
			}
			fmt.Fprint(w, `{"id":"file_123"}`)
		}))

		doc, err := client.Fetch(context.Background(), "file_123")
		require.NoError(t, err)
		assert.Equal(t, "Document file_123", doc.Title)
	})

	t.Run("upstream failure propagates", func(t *testing.T) {
		client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, `{"error":{"message":"No file found"}}`, http.StatusNotFound)
		}))

		_, err := client.Fetch(context.Background(), "file_123")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "404")
	})
}

func TestClient_Ping(t *testing.T) {
	t.Run("ok on 200", func(t *testing.T) {
		client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/models", r.URL.Path)
			fmt.Fprint(w, `{"data":[]}`)
		}))
		assert.NoError(t, client.Ping(context.Background()))
	})

	t.Run("error on non-200", func(t *testing.T) {
		client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "nope", http.StatusUnauthorized)
		}))
		assert.Error(t, client.Ping(context.Background()))
	})
}

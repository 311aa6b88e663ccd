// Package openai provides a retrieval client adapter for the OpenAI
// vector stores API.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/lodestar-labs/lodestar/internal/core/domain"
	"github.com/lodestar-labs/lodestar/internal/core/ports/driven"
	"github.com/lodestar-labs/lodestar/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.RetrievalClient = (*Client)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "https://api.openai.com/v1"
	DefaultTimeout = 30 * time.Second

	// DefaultRequestsPerSecond is a conservative client-side ceiling on
	// upstream calls, well below the API's actual limits.
	DefaultRequestsPerSecond = 10.0
	DefaultBurstSize         = 20

	// fileURLBase is the citation URL prefix for vector store files.
	fileURLBase = "https://platform.openai.com/storage/files/"
)

// Config holds configuration for the vector store client.
type Config struct {
	// APIKey is the OpenAI API key (required).
	APIKey string

	// VectorStoreID identifies the vector store to search (required).
	VectorStoreID string

	// BaseURL is the API base URL (default: https://api.openai.com/v1).
	// Can be changed for compatible APIs and for tests.
	BaseURL string

	// Timeout is the per-request timeout (default: 30s).
	Timeout time.Duration

	// RequestsPerSecond is the sustained client-side rate limit
	// (default: DefaultRequestsPerSecond).
	RequestsPerSecond float64

	// BurstSize is the maximum burst size (default: DefaultBurstSize).
	BurstSize int
}

// Client searches and fetches documents from an OpenAI vector store.
type Client struct {
	client        *http.Client
	limiter       *rate.Limiter
	baseURL       string
	apiKey        string
	vectorStoreID string
}

// searchRequest is the vector store search request format.
type searchRequest struct {
	Query          string `json:"query"`
	MaxNumResults  int    `json:"max_num_results,omitempty"`
	IncludeContent bool   `json:"include_content"`
}

// searchResponse is the vector store search response format.
// Item fields vary across SDK versions, so everything is optional and
// content chunks are decoded leniently by contentChunk.
type searchResponse struct {
	Data []searchItem `json:"data"`

	Error *apiError `json:"error,omitempty"`
}

type searchItem struct {
	FileID   string         `json:"file_id"`
	Filename string         `json:"filename"`
	Content  []contentChunk `json:"content"`
}

// contentResponse is the file content response format.
type contentResponse struct {
	Data []contentChunk `json:"data"`

	Error *apiError `json:"error,omitempty"`
}

// fileResponse is the file metadata response format.
type fileResponse struct {
	ID         string         `json:"id"`
	Filename   string         `json:"filename"`
	Attributes map[string]any `json:"attributes"`

	Error *apiError `json:"error,omitempty"`
}

type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// contentChunk decodes an upstream content item that may be either an
// object carrying a text field or a bare string. All shape-guessing for
// upstream content lives here.
type contentChunk struct {
	Text string
}

func (c *contentChunk) UnmarshalJSON(data []byte) error {
	var obj struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(data, &obj); err == nil {
		c.Text = obj.Text
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("content chunk is neither object nor string: %w", err)
	}
	c.Text = s
	return nil
}

// NewClient creates a new vector store client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai: API key is required")
	}
	if cfg.VectorStoreID == "" {
		return nil, fmt.Errorf("openai: vector store ID is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = DefaultRequestsPerSecond
	}
	if cfg.BurstSize <= 0 {
		cfg.BurstSize = DefaultBurstSize
	}

	return &Client{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		limiter:       rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.BurstSize),
		baseURL:       cfg.BaseURL,
		apiKey:        cfg.APIKey,
		vectorStoreID: cfg.VectorStoreID,
	}, nil
}

// Search queries the vector store and returns matches in upstream order.
//
// Empty or whitespace-only queries return an empty slice without an
// upstream call. Upstream transport and auth failures degrade to an empty
// slice; the condition is logged but never surfaced to the caller.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]domain.Match, error) {
	if strings.TrimSpace(query) == "" {
		return []domain.Match{}, nil
	}

	logger.Info("Searching %s for query: %q", c.vectorStoreID, query)

	reqBody := searchRequest{
		Query:          query,
		MaxNumResults:  limit,
		IncludeContent: true,
	}

	var searchResp searchResponse
	url := fmt.Sprintf("%s/vector_stores/%s/search", c.baseURL, c.vectorStoreID)
	if err := c.doJSON(ctx, http.MethodPost, url, reqBody, &searchResp); err != nil {
		logger.Warn("Vector store search failed, returning no results: %v", err)
		return []domain.Match{}, nil
	}
	if searchResp.Error != nil {
		logger.Warn("Vector store search error, returning no results: %s", searchResp.Error.Message)
		return []domain.Match{}, nil
	}

	matches := make([]domain.Match, 0, len(searchResp.Data))
	for i, item := range searchResp.Data {
		matches = append(matches, normalizeItem(item, i))
	}

	logger.Info("Vector store search returned %d results", len(matches))
	return matches, nil
}

// normalizeItem collapses an upstream search item into a domain.Match,
// synthesizing placeholders for absent fields.
func normalizeItem(item searchItem, index int) domain.Match {
	id := item.FileID
	if id == "" {
		id = fmt.Sprintf("vs_%d", index)
	}

	title := item.Filename
	if title == "" {
		title = fmt.Sprintf("Document %d", index+1)
	}

	content := ""
	if len(item.Content) > 0 {
		content = item.Content[0].Text
	}
	if content == "" {
		content = domain.NoContentPlaceholder
	}

	return domain.Match{
		ID:      id,
		Title:   title,
		Snippet: domain.Snippet(content),
		URL:     fileURLBase + id,
	}
}

// Fetch retrieves the full document for id.
//
// Ids failing domain.ValidDocumentID are rejected before any upstream
// call. Content and metadata are fetched with two upstream calls; content
// chunks are joined with newlines. Unlike Search, upstream failures
// propagate to the caller.
func (c *Client) Fetch(ctx context.Context, id string) (*domain.Document, error) {
	if !domain.ValidDocumentID(id) {
		return nil, fmt.Errorf("fetch %q: %w", id, domain.ErrInvalidDocumentID)
	}

	logger.Info("Fetching content from vector store for file ID: %s", id)

	var contentResp contentResponse
	contentURL := fmt.Sprintf("%s/vector_stores/%s/files/%s/content", c.baseURL, c.vectorStoreID, id)
	if err := c.doJSON(ctx, http.MethodGet, contentURL, nil, &contentResp); err != nil {
		return nil, fmt.Errorf("fetch content: %w", err)
	}
	if contentResp.Error != nil {
		return nil, fmt.Errorf("fetch content: %s", contentResp.Error.Message)
	}

	var fileResp fileResponse
	fileURL := fmt.Sprintf("%s/vector_stores/%s/files/%s", c.baseURL, c.vectorStoreID, id)
	if err := c.doJSON(ctx, http.MethodGet, fileURL, nil, &fileResp); err != nil {
		return nil, fmt.Errorf("fetch metadata: %w", err)
	}
	if fileResp.Error != nil {
		return nil, fmt.Errorf("fetch metadata: %s", fileResp.Error.Message)
	}

	parts := make([]string, 0, len(contentResp.Data))
	for _, chunk := range contentResp.Data {
		if chunk.Text != "" {
			parts = append(parts, chunk.Text)
		}
	}
	text := strings.Join(parts, "\n")
	if text == "" {
		text = domain.NoContentPlaceholder
	}

	title := fileResp.Filename
	if title == "" {
		title = fmt.Sprintf("Document %s", id)
	}

	doc := &domain.Document{
		ID:    id,
		Title: title,
		Text:  text,
		URL:   fileURLBase + id,
	}
	if len(fileResp.Attributes) > 0 {
		doc.Metadata = fileResp.Attributes
	}

	logger.Info("Fetched vector store file: %s", id)
	return doc, nil
}

// Ping validates the API is reachable by checking the /models endpoint.
// This is a lightweight check that validates the API key without running
// a retrieval.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/models", http.NoBody)
	if err != nil {
		return fmt.Errorf("openai: failed to create ping request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("openai: ping failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("openai: API returned status %d (failed to read body: %w)", resp.StatusCode, err)
		}
		return fmt.Errorf("openai: API returned status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

// doJSON performs one rate-limited request and decodes the JSON response
// into out. Non-2xx statuses are returned as errors carrying the body.
func (c *Client) doJSON(ctx context.Context, method, url string, in, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	var body io.Reader = http.NoBody
	if in != nil {
		jsonBody, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("openai error (status %d): %s", resp.StatusCode, string(respBody))
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

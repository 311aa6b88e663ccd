package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"the search query; natural language works best"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Results []MatchOutput `json:"results"`
}

// MatchOutput represents a single search result.
type MatchOutput struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Text  string `json:"text"`
	URL   string `json:"url"`
}

// FetchInput is the input schema for the fetch tool.
type FetchInput struct {
	ID string `json:"id" jsonschema:"file ID from the vector store (file_xxx)"`
}

// FetchOutput is the output schema for the fetch tool.
type FetchOutput struct {
	ID       string         `json:"id"`
	Title    string         `json:"title"`
	Text     string         `json:"text"`
	URL      string         `json:"url"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name: "search",
		Description: "Search for documents in the vector store. Returns matches " +
			"with id, title, text snippet and URL; use fetch for full content.",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name: "fetch",
		Description: "Retrieve complete document content by ID for detailed " +
			"analysis and citation.",
	}, s.handleFetch)
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	resp, err := s.ports.Retrieval.Search(ctx, input.Query)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results: make([]MatchOutput, len(resp.Results)),
	}
	for i := range resp.Results {
		output.Results[i] = MatchOutput{
			ID:    resp.Results[i].ID,
			Title: resp.Results[i].Title,
			Text:  resp.Results[i].Snippet,
			URL:   resp.Results[i].URL,
		}
	}

	return nil, output, nil
}

// handleFetch handles the fetch tool invocation.
func (s *Server) handleFetch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FetchInput,
) (*mcp.CallToolResult, FetchOutput, error) {
	doc, err := s.ports.Retrieval.Fetch(ctx, input.ID)
	if err != nil {
		return nil, FetchOutput{}, err
	}

	return nil, FetchOutput{
		ID:       doc.ID,
		Title:    doc.Title,
		Text:     doc.Text,
		URL:      doc.URL,
		Metadata: doc.Metadata,
	}, nil
}

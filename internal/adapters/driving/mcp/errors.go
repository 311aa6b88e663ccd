// Package mcp provides an MCP (Model Context Protocol) server adapter for
// Lodestar. It exposes the search and fetch operations to AI assistants
// over stdio or streamable HTTP using the official MCP SDK.
package mcp

import "errors"

// ErrMissingRetrievalService is returned when the retrieval service is not provided.
var ErrMissingRetrievalService = errors.New("mcp: retrieval service is required")

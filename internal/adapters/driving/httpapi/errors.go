// Package httpapi exposes the operation registry over a compatibility HTTP
// surface: REST-style operation invocation, a JSON-RPC capability envelope
// and a persistent SSE stream.
package httpapi

import "errors"

// ErrMissingRegistry is returned when the operation registry is not provided.
var ErrMissingRegistry = errors.New("httpapi: operation registry is required")

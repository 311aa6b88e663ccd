// Package domain defines the core business entities for Lodestar.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Match: A lightweight search-result reference (id, title, snippet, url)
//   - Document: Full retrieved content for a single identifier
//   - Operation: A named, schema-described handler exposed by the server
//   - HandlerResult: The tagged union every operation handler produces
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain

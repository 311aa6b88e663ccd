// Package driving defines the interfaces that the outside world uses to
// drive the core.
//
// These are the "driving" or "primary" ports in hexagonal architecture.
// Core services implement them; CLI, HTTP and MCP adapters consume them.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driving

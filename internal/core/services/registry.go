package services

import (
	"fmt"

	"github.com/lodestar-labs/lodestar/internal/core/domain"
)

// Registry holds the set of named operations exposed by the server.
// It is populated once at construction and read-only thereafter, so
// concurrent reads need no locking.
type Registry struct {
	byName map[string]*domain.Operation
	order  []string
}

// NewRegistry creates an empty operation registry.
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]*domain.Operation),
	}
}

// Register adds an operation to the registry.
// Registering a name twice fails with domain.ErrDuplicateOperation and
// leaves the registry unchanged.
func (r *Registry) Register(op domain.Operation) error {
	if op.Name == "" {
		return fmt.Errorf("register operation: %w: empty name", domain.ErrInvalidInput)
	}
	if _, exists := r.byName[op.Name]; exists {
		return fmt.Errorf("register operation %q: %w", op.Name, domain.ErrDuplicateOperation)
	}

	r.byName[op.Name] = &op
	r.order = append(r.order, op.Name)
	return nil
}

// Get returns the operation registered under name.
func (r *Registry) Get(name string) (*domain.Operation, error) {
	op, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("operation %q: %w", name, domain.ErrNotFound)
	}
	return op, nil
}

// List returns all operations in insertion order.
// Used for capability discovery responses.
func (r *Registry) List() []*domain.Operation {
	ops := make([]*domain.Operation, 0, len(r.order))
	for _, name := range r.order {
		ops = append(ops, r.byName[name])
	}
	return ops
}

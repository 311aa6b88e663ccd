package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateOperation indicates an operation name is already registered.
	ErrDuplicateOperation = errors.New("duplicate operation")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidDocumentID indicates a document id missing the required
	// upstream prefix. Rejected before any upstream call.
	ErrInvalidDocumentID = errors.New("invalid document ID format")

	// ErrUpstream indicates the upstream vector store failed.
	ErrUpstream = errors.New("upstream vector store error")

	// ErrRetrievalUnavailable indicates the retrieval client is not configured.
	ErrRetrievalUnavailable = errors.New("retrieval client unavailable")
)

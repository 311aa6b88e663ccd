package domain

import "context"

// InputSchema is a JSON-Schema-like descriptor for an operation's arguments.
type InputSchema struct {
	// Type is the schema type, always "object" for operation inputs.
	Type string `json:"type"`

	// Properties maps argument names to their descriptors.
	Properties map[string]Property `json:"properties"`

	// Required lists the argument names that must be present.
	Required []string `json:"required"`
}

// Property describes a single operation argument.
type Property struct {
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}

// HandlerFunc executes an operation with already-decoded arguments.
// It always returns a HandlerResult; transport adapters never see a
// raw error from a handler.
type HandlerFunc func(ctx context.Context, args map[string]any) HandlerResult

// Operation is a named, schema-described handler exposed by the server.
// Operations are created at server construction and immutable thereafter.
type Operation struct {
	// Name uniquely identifies the operation within a registry.
	Name string

	// Description is the human-readable summary shown in capability
	// discovery responses.
	Description string

	// InputSchema declares the operation's argument types and
	// required fields.
	InputSchema InputSchema

	// Handler executes the operation.
	Handler HandlerFunc
}

// ErrorKind classifies a handler failure so transport adapters can map it
// to a protocol status code without inspecting error text.
type ErrorKind int

const (
	// ErrorKindNone marks a successful result.
	ErrorKindNone ErrorKind = iota

	// ErrorKindInvalidInput marks malformed or missing arguments (400).
	ErrorKindInvalidInput

	// ErrorKindValidation marks a failed schema validation (422).
	ErrorKindValidation

	// ErrorKindUpstream marks an upstream retrieval failure (502).
	ErrorKindUpstream

	// ErrorKindInternal marks a serialization or other server fault (500).
	ErrorKindInternal
)

// HandlerResult is the tagged union every operation handler produces:
// either a JSON-representable value or a classified error. Modelling the
// outcome explicitly keeps runtime type-sniffing out of the response
// normalizer.
type HandlerResult struct {
	// Value is the JSON-representable result. Only meaningful when
	// Kind is ErrorKindNone.
	Value any

	// Kind classifies the failure. ErrorKindNone on success.
	Kind ErrorKind

	// Message is the human-readable failure description.
	Message string
}

// Ok wraps a successful handler value.
func Ok(value any) HandlerResult {
	return HandlerResult{Value: value, Kind: ErrorKindNone}
}

// Err wraps a classified handler failure.
func Err(kind ErrorKind, message string) HandlerResult {
	return HandlerResult{Kind: kind, Message: message}
}

// IsErr reports whether the result carries a failure.
func (r HandlerResult) IsErr() bool {
	return r.Kind != ErrorKindNone
}

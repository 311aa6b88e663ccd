package httpapi

import "encoding/json"

// JSON-RPC error codes used by the protocol adapter.
const (
	codeMethodNotFound = -32601
)

// rpcRequest represents an incoming JSON-RPC request envelope.
type rpcRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      any             `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// rpcResponse represents an outgoing JSON-RPC response envelope.
type rpcResponse struct {
	JSONRPC string    `json:"jsonrpc"`
	ID      any       `json:"id"`
	Result  any       `json:"result,omitempty"`
	Error   *rpcError `json:"error,omitempty"`
}

// rpcError represents a JSON-RPC error object.
type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// newRPCResult builds a success envelope for id.
// A nil id defaults to 1, matching the behaviour expected by clients that
// omit ids on notification-style calls.
func newRPCResult(id, result any) rpcResponse {
	if id == nil {
		id = 1
	}
	return rpcResponse{JSONRPC: "2.0", ID: id, Result: result}
}

// newRPCError builds an error envelope for id.
func newRPCError(id any, code int, message string) rpcResponse {
	if id == nil {
		id = 1
	}
	return rpcResponse{JSONRPC: "2.0", ID: id, Error: &rpcError{Code: code, Message: message}}
}

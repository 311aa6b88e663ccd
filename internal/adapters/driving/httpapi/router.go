package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/lodestar-labs/lodestar/internal/core/domain"
	"github.com/lodestar-labs/lodestar/internal/core/services"
	"github.com/lodestar-labs/lodestar/internal/logger"
)

// ServeHTTP is the single entry point mapping (path, method, headers, body)
// to one of six behaviours: health check, capability listing, direct
// operation invocation, SSE upgrade, JSON-RPC envelope handling, or 404.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.applyCommonHeaders(w, r)

	path := r.URL.Path

	switch {
	case r.Method == http.MethodOptions:
		w.WriteHeader(http.StatusNoContent)

	case path == "/health" && r.Method == http.MethodGet:
		s.handleHealth(w, r)

	case path == "/tools" && r.Method == http.MethodGet:
		s.handleToolList(w)

	case (path == "/" || path == "/sse") && r.Method == http.MethodGet && wantsEventStream(r):
		s.handleEventStream(w, r)

	case (path == "/" || path == "/sse") && (r.Method == http.MethodGet || r.Method == http.MethodPost):
		s.handleEnvelope(w, r)

	case r.Method == http.MethodPost && s.operationPath(path) != "":
		s.handleInvoke(w, r, s.operationPath(path))

	default:
		s.writeJSON(w, http.StatusNotFound, map[string]any{"error": "Not Found"})
	}
}

// wantsEventStream reports whether the request asks for an SSE upgrade.
func wantsEventStream(r *http.Request) bool {
	return strings.Contains(strings.ToLower(r.Header.Get("Accept")), "text/event-stream")
}

// operationPath resolves a request path to a registered operation name,
// or empty when no operation matches.
func (s *Server) operationPath(path string) string {
	name := strings.TrimPrefix(path, "/")
	if name == "" || strings.Contains(name, "/") {
		return ""
	}
	if _, err := s.registry.Get(name); err != nil {
		return ""
	}
	return name
}

// handleHealth invokes the health operation.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	op, err := s.registry.Get(services.OpHealth)
	if err != nil {
		s.writeJSON(w, http.StatusNotFound, map[string]any{"error": "Not Found"})
		return
	}

	payload, status := s.normalize(op.Handler(r.Context(), map[string]any{}))
	s.writeJSON(w, status, payload)
}

// handleToolList writes the capability discovery response: every
// registered operation with name, description and input schema, wrapped
// in a JSON-RPC result.tools envelope.
func (s *Server) handleToolList(w http.ResponseWriter) {
	tools := make([]map[string]any, 0)
	for _, op := range s.registry.List() {
		tools = append(tools, map[string]any{
			"name":        op.Name,
			"description": op.Description,
			"inputSchema": op.InputSchema,
		})
	}

	resp := newRPCResult(1, map[string]any{"tools": tools})
	s.writeJSON(w, http.StatusOK, resp)
}

// handleInvoke parses the JSON body as operation arguments, invokes the
// named operation and writes the normalized result.
func (s *Server) handleInvoke(w http.ResponseWriter, r *http.Request, name string) {
	op, err := s.registry.Get(name)
	if err != nil {
		s.writeJSON(w, http.StatusNotFound, map[string]any{"error": "Not Found"})
		return
	}

	args := decodeArgs(r.Body)

	logger.Debug("Invoking operation %q", name)
	payload, status := s.normalize(op.Handler(r.Context(), args))
	s.writeJSON(w, status, payload)
}

// handleEnvelope services non-stream requests on / and /sse: a fixed
// server identity response for GET, the initialize capability envelope
// for JSON-RPC POSTs, and a -32601 error for any other method. JSON-RPC
// errors are transport-level successes, so the HTTP status stays 200.
func (s *Server) handleEnvelope(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		s.writeJSON(w, http.StatusOK, map[string]any{
			"status":  "ok",
			"server":  s.cfg.ServerName,
			"version": s.cfg.Version,
			"endpoints": map[string]any{
				"mcp_initialize": map[string]string{"method": "POST", "path": "/"},
				"search":         map[string]string{"method": "POST", "path": "/search"},
				"fetch":          map[string]string{"method": "POST", "path": "/fetch"},
				"health":         map[string]string{"method": "GET", "path": "/health"},
			},
		})
		return
	}

	var req rpcRequest
	body, err := io.ReadAll(r.Body)
	if err == nil && len(body) > 0 {
		// Malformed JSON is treated as an absent envelope, mirroring
		// lenient clients that POST empty probes.
		json.Unmarshal(body, &req) //nolint:errcheck
	}

	if req.Method == "initialize" {
		resp := newRPCResult(req.ID, map[string]any{
			"capabilities": s.capabilities(),
			"serverInfo":   s.serverInfo(),
		})
		s.writeJSON(w, http.StatusOK, resp)
		return
	}

	s.writeJSON(w, http.StatusOK, newRPCError(req.ID, codeMethodNotFound, "Method not found"))
}

// decodeArgs parses a request body into operation arguments.
// Unparseable bodies collapse to empty arguments; schema validation in
// the handler produces the client-facing failure.
func decodeArgs(body io.Reader) map[string]any {
	args := make(map[string]any)
	data, err := io.ReadAll(body)
	if err != nil || len(data) == 0 {
		return args
	}
	if err := json.Unmarshal(data, &args); err != nil {
		return map[string]any{}
	}
	return args
}

// writeJSON serializes payload with the given status code.
// Serialization failures surface as a generic 500 and are logged; no
// stack context crosses the boundary.
func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Failed to serialize response: %v", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"status":"error","error":"Internal server error"}`)) //nolint:errcheck
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data) //nolint:errcheck
}

// statusForKind maps a handler failure class to an HTTP status code.
func statusForKind(kind domain.ErrorKind) int {
	switch kind {
	case domain.ErrorKindInvalidInput:
		return http.StatusBadRequest
	case domain.ErrorKindValidation:
		return http.StatusUnprocessableEntity
	case domain.ErrorKindUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

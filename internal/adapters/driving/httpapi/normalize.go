package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"reflect"
	"time"

	"github.com/lodestar-labs/lodestar/internal/core/domain"
)

// normalize turns a handler result into one canonical JSON envelope and
// HTTP status code. The rules, applied in order:
//
//  1. nil value               -> {status:"error", message:"No response from tool"}, 500
//  2. string                  -> JSON-parse if possible, else {status:"ok", message:<s>}
//  3. sequence                -> {status:"ok", result:<seq>}
//  4. mapping without status  -> same mapping with status:"ok" injected
//  5. anything else           -> {status:"ok", result:<stringified>}
//  6. mapping lacking timestamp -> current UTC time injected
//
// Failures skip the value rules entirely: the tagged union carries the
// classification, so no type-sniffing of errors happens here.
func (s *Server) normalize(res domain.HandlerResult) (map[string]any, int) {
	if res.IsErr() {
		return stampTimestamp(map[string]any{
			"status": "error",
			"error":  res.Message,
		}), statusForKind(res.Kind)
	}

	value := res.Value

	// Rule 1: a handler that produced nothing is a server fault.
	if value == nil {
		return stampTimestamp(map[string]any{
			"status":  "error",
			"message": "No response from tool",
		}), http.StatusInternalServerError
	}

	// Rule 2: strings that parse as JSON replace the value; the
	// remaining rules then apply to the parsed form.
	if str, ok := value.(string); ok {
		var parsed any
		if err := json.Unmarshal([]byte(str), &parsed); err == nil {
			value = parsed
		} else {
			return stampTimestamp(map[string]any{
				"status":  "ok",
				"message": str,
			}), http.StatusOK
		}
	}

	switch v := value.(type) {
	case map[string]any:
		// Rule 4.
		if _, ok := v["status"]; !ok {
			v["status"] = "ok"
		}
		return stampTimestamp(v), http.StatusOK
	default:
		if isSequence(value) {
			// Rule 3.
			return stampTimestamp(map[string]any{
				"status": "ok",
				"result": value,
			}), http.StatusOK
		}
		// Rule 5.
		return stampTimestamp(map[string]any{
			"status": "ok",
			"result": fmt.Sprintf("%v", value),
		}), http.StatusOK
	}
}

// isSequence reports whether value marshals as a JSON array.
func isSequence(value any) bool {
	kind := reflect.ValueOf(value).Kind()
	return kind == reflect.Slice || kind == reflect.Array
}

// stampTimestamp injects the current UTC time unless the payload already
// carries a timestamp (rule 6).
func stampTimestamp(payload map[string]any) map[string]any {
	if _, ok := payload["timestamp"]; !ok {
		payload["timestamp"] = time.Now().UTC().Format(time.RFC3339)
	}
	return payload
}

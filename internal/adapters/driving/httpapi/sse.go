package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/lodestar-labs/lodestar/internal/logger"
)

// handleEventStream upgrades the connection to a persistent event stream:
// one init event announcing capabilities and server identity, a ready
// event, then periodic keepalive events until the peer disconnects or the
// server shuts down. Disconnection is detected via a failed write and
// terminates the loop without surfacing an error.
func (s *Server) handleEventStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		s.writeJSON(w, http.StatusInternalServerError, map[string]any{
			"status": "error",
			"error":  "streaming unsupported",
		})
		return
	}

	streamID := uuid.New().String()
	logger.Info("SSE stream %s connected from %s", streamID, r.RemoteAddr)

	h := w.Header()
	h.Set("Content-Type", "text/event-stream; charset=utf-8")
	h.Set("Cache-Control", "no-cache, no-transform")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	init := newRPCResult(1, map[string]any{
		"capabilities": s.capabilities(),
		"serverInfo":   s.serverInfo(),
	})

	if err := writeEvent(w, "init", init); err != nil {
		logger.Info("SSE stream %s closed during init: %v", streamID, err)
		return
	}
	if err := writeEvent(w, "ready", map[string]any{}); err != nil {
		return
	}
	if err := writeEvent(w, "keepalive", map[string]any{}); err != nil {
		return
	}
	flusher.Flush()

	ticker := time.NewTicker(s.cfg.KeepaliveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			logger.Info("SSE stream %s closed: %v", streamID, r.Context().Err())
			return
		case <-ticker.C:
			if err := writeEvent(w, "keepalive", map[string]any{}); err != nil {
				logger.Info("SSE stream %s client disconnected: %v", streamID, err)
				return
			}
			flusher.Flush()
		}
	}
}

// writeEvent writes one SSE event with a JSON data payload.
func writeEvent(w http.ResponseWriter, event string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal event %q: %w", event, err)
	}
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, payload); err != nil {
		return fmt.Errorf("write event %q: %w", event, err)
	}
	return nil
}

// Package processor implements the downstream service: minimal processing
// that echoes the payload back.
package processor

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/laucilla/tracing-demo/internal/server"
)

// Handler serves POST /process.
func Handler(logger *slog.Logger) server.Handler {
	return func(w http.ResponseWriter, r *http.Request) error {
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			return fmt.Errorf("decode body: %w", server.ErrBadPayload)
		}
		ctx := r.Context()
		logger.InfoContext(ctx, "process.received", "payload", payload)

		result := map[string]any{"echo": payload}
		logger.InfoContext(ctx, "process.complete", "result", result)

		w.Header().Set("Content-Type", "application/json")
		return json.NewEncoder(w).Encode(map[string]any{
			"status": "processed",
			"result": result,
		})
	}
}

// WorkHandler serves POST /work, the variant that returns the payload
// unwrapped under "received".
func WorkHandler(logger *slog.Logger) server.Handler {
	return func(w http.ResponseWriter, r *http.Request) error {
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			return fmt.Errorf("decode body: %w", server.ErrBadPayload)
		}
		logger.InfoContext(r.Context(), "work.received", "payload", payload)

		w.Header().Set("Content-Type", "application/json")
		return json.NewEncoder(w).Encode(map[string]any{
			"status":   "processed",
			"received": payload,
		})
	}
}

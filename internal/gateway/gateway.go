// Package gateway implements the entry service: it proxies arbitrary JSON
// payloads to the downstream processor.
package gateway

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/laucilla/tracing-demo/internal/client"
	"github.com/laucilla/tracing-demo/internal/server"
)

// Handler serves POST /proxy (and its /call alias). A downstream failure
// fails the whole proxied request; there are no partial results.
func Handler(logger *slog.Logger, downstream *client.Downstream) server.Handler {
	return func(w http.ResponseWriter, r *http.Request) error {
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			return fmt.Errorf("decode body: %w", server.ErrBadPayload)
		}
		ctx := r.Context()
		logger.InfoContext(ctx, "proxy.received", "payload", payload)

		body, status, err := downstream.Call(ctx, payload)
		if err != nil {
			return err
		}
		logger.InfoContext(ctx, "proxy.downstream_response",
			"status_code", status,
			"downstream", body,
		)

		w.Header().Set("Content-Type", "application/json")
		return json.NewEncoder(w).Encode(map[string]any{
			"status":     "ok",
			"downstream": body,
		})
	}
}

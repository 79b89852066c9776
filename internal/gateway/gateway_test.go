package gateway

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/laucilla/tracing-demo/internal/client"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func newDownstream(t *testing.T, handler http.HandlerFunc) *client.Downstream {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	tp := sdktrace.NewTracerProvider()
	return client.New(srv.URL, 5*time.Second, "gateway", tp.Tracer("test"))
}

func TestProxyWrapsDownstreamResponse(t *testing.T) {
	d := newDownstream(t, func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]any
		_ = json.NewDecoder(r.Body).Decode(&payload)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status": "processed",
			"result": map[string]any{"echo": payload},
		})
	})

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/proxy", strings.NewReader(`{"a":1}`))
	Handler(discardLogger(), d).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rr.Code, rr.Body.String())
	}
	var body map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body["status"] != "ok" {
		t.Fatalf("status field %v", body["status"])
	}
	downstream, _ := body["downstream"].(map[string]any)
	if downstream["status"] != "processed" {
		t.Fatalf("downstream %v", body["downstream"])
	}
	result, _ := downstream["result"].(map[string]any)
	echo, _ := result["echo"].(map[string]any)
	if echo["a"] != float64(1) {
		t.Fatalf("echo %v", result)
	}
}

func TestProxyBadBody(t *testing.T) {
	d := newDownstream(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("downstream called for undecodable body")
	})

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/proxy", strings.NewReader("{"))
	Handler(discardLogger(), d).ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status %d", rr.Code)
	}
}

func TestProxyDownstreamFailureFailsRequest(t *testing.T) {
	d := newDownstream(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "broken", http.StatusInternalServerError)
	})

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/proxy", strings.NewReader(`{"a":1}`))
	Handler(discardLogger(), d).ServeHTTP(rr, req)

	if rr.Code != http.StatusBadGateway {
		t.Fatalf("status %d", rr.Code)
	}
}

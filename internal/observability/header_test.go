package observability

import (
	"net/http"
	"testing"
)

func TestExtractRequestID(t *testing.T) {
	h := http.Header{}
	if got := ExtractRequestID(h); got != "" {
		t.Fatalf("empty headers: %q", got)
	}
	h.Set("x-request-id", "abc")
	if got := ExtractRequestID(h); got != "abc" {
		t.Fatalf("case-insensitive lookup: %q", got)
	}
}

func TestInjectOverwrites(t *testing.T) {
	h := http.Header{}
	h.Set(RequestIDHeader, "old")
	InjectRequestID(h, "new")
	if got := h.Get(RequestIDHeader); got != "new" {
		t.Fatalf("got %q", got)
	}
	if vals := h.Values(RequestIDHeader); len(vals) != 1 {
		t.Fatalf("want a single value, got %v", vals)
	}
}

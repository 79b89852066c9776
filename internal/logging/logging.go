// Package logging emits one JSON object per line to the configured sink and
// stamps every record with the request id bound to the calling context.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/laucilla/tracing-demo/internal/observability"
)

// RequestIDKey is the log field carrying the correlation id.
const RequestIDKey = "request_id"

var (
	mu         sync.Mutex
	configured bool
)

// Setup installs the JSON handler on the default logger, writing to stdout.
// Repeated calls are no-ops, so any package may call it during bootstrap.
func Setup() {
	SetupWithWriter(os.Stdout)
}

// SetupWithWriter is Setup with an explicit sink. Only the first call takes
// effect; later calls never install a second sink.
func SetupWithWriter(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if configured {
		return
	}
	slog.SetDefault(slog.New(NewHandler(w)))
	configured = true
}

// New returns a named logger on the default handler.
func New(name string) *slog.Logger {
	return slog.Default().With("name", name)
}

// Handler wraps a JSON slog handler and appends request_id at emission time,
// read from the record's context. A logger built with a fixed request_id attr
// keeps it; the handler never writes the field twice.
type Handler struct {
	inner slog.Handler
	fixed bool
}

// NewHandler builds the handler writing JSON lines to w with the envelope
// keys asctime, levelname, message.
func NewHandler(w io.Writer) *Handler {
	inner := slog.NewJSONHandler(w, &slog.HandlerOptions{ReplaceAttr: renameEnvelope})
	return &Handler{inner: inner}
}

func renameEnvelope(groups []string, a slog.Attr) slog.Attr {
	if len(groups) > 0 {
		return a
	}
	switch a.Key {
	case slog.TimeKey:
		a.Key = "asctime"
	case slog.LevelKey:
		a.Key = "levelname"
	case slog.MessageKey:
		a.Key = "message"
	}
	return a
}

func (h *Handler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	if h.fixed {
		return h.inner.Handle(ctx, r)
	}
	overridden := false
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == RequestIDKey {
			overridden = true
			return false
		}
		return true
	})
	if !overridden {
		if id := observability.RequestIDFromContext(ctx); id != "" {
			r.AddAttrs(slog.String(RequestIDKey, id))
		} else {
			// absent is legal and serializes as null
			r.AddAttrs(slog.Any(RequestIDKey, nil))
		}
	}
	return h.inner.Handle(ctx, r)
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	fixed := h.fixed
	for _, a := range attrs {
		if a.Key == RequestIDKey {
			fixed = true
		}
	}
	return &Handler{inner: h.inner.WithAttrs(attrs), fixed: fixed}
}

func (h *Handler) WithGroup(name string) slog.Handler {
	return &Handler{inner: h.inner.WithGroup(name), fixed: h.fixed}
}

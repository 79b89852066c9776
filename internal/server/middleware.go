package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/laucilla/tracing-demo/internal/observability"

	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Policy controls how the correlation middleware resolves a request id.
type Policy int

const (
	// GenerateIfAbsent mints a fresh id when the inbound header is missing.
	// Used by the entry service.
	GenerateIfAbsent Policy = iota
	// ExtractOnly takes the id from the header or leaves it empty. Downstream
	// services never mint ids; a missing header stays absent and logs as null.
	ExtractOnly
)

// requestIDMiddleware resolves the request id per policy, binds it to the
// request context, opens the per-request span and echoes the id on the
// response. Cleanup is deferred so it runs on panics too; panics propagate
// after the span is closed.
func requestIDMiddleware(service string, policy Policy, logger *slog.Logger, tracer trace.Tracer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := observability.ExtractRequestID(r.Header)
			if reqID == "" && policy == GenerateIfAbsent {
				reqID = uuid.NewString()
			}
			rc := observability.RequestContext{ID: reqID, StartedAt: time.Now()}
			ctx := observability.WithRequestContext(r.Context(), rc)

			opts := []trace.SpanStartOption{}
			if reqID != "" {
				opts = append(opts, trace.WithAttributes(attribute.String("request.id", reqID)))
			}
			ctx, span := tracer.Start(ctx, service+".request", opts...)
			defer span.End()

			if reqID != "" {
				observability.InjectRequestID(w.Header(), reqID)
			}
			logger.InfoContext(ctx, "request.start")
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func loggingMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()
			next.ServeHTTP(rec, r)

			logger.InfoContext(r.Context(), "request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"duration_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}

// ChainMiddlewares wraps handler with the full inbound stack: correlation
// (outermost), access log, metrics, then otel HTTP instrumentation.
func ChainMiddlewares(handler http.Handler, service string, policy Policy, logger *slog.Logger, tracer trace.Tracer) http.Handler {
	h := otelhttp.NewHandler(handler, "http.server")
	h = observeMetrics(h)
	h = loggingMiddleware(logger)(h)
	h = requestIDMiddleware(service, policy, logger, tracer)(h)
	return h
}

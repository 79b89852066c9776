package observability

import (
	"context"
	"time"
)

type ctxKey struct{}

// RequestContext carries the correlation state of one in-flight request.
// It is bound by the middleware and lives only as long as the request's
// context.Context.
type RequestContext struct {
	ID        string
	StartedAt time.Time
}

// WithRequestContext returns a child context carrying rc. The parent context
// is untouched, so sibling requests never observe each other's binding and
// the previous value is back in effect once the derived context goes out of
// scope.
func WithRequestContext(ctx context.Context, rc RequestContext) context.Context {
	return context.WithValue(ctx, ctxKey{}, rc)
}

// RequestContextFrom reports the RequestContext bound to ctx, if any.
func RequestContextFrom(ctx context.Context) (RequestContext, bool) {
	rc, ok := ctx.Value(ctxKey{}).(RequestContext)
	return rc, ok
}

// RequestIDFromContext returns the bound request id, or "" when no request
// context is bound or the bound id is empty.
func RequestIDFromContext(ctx context.Context) string {
	if rc, ok := RequestContextFrom(ctx); ok {
		return rc.ID
	}
	return ""
}

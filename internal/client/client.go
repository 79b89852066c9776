// Package client performs the outbound hop to the downstream service,
// carrying the caller's request id and a child span.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/laucilla/tracing-demo/internal/observability"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ErrDownstream marks any failure of the downstream call: transport error,
// non-2xx status or an undecodable body. Callers do not retry.
var ErrDownstream = errors.New("downstream call failed")

type Downstream struct {
	url     string
	service string
	tracer  trace.Tracer
	http    *http.Client
}

func New(url string, timeout time.Duration, service string, tracer trace.Tracer) *Downstream {
	return &Downstream{
		url:     url,
		service: service,
		tracer:  tracer,
		http:    &http.Client{Timeout: timeout},
	}
}

// Call posts payload to the downstream service. The request id bound to ctx
// travels on the X-Request-ID header; trace context is deliberately not
// injected, so each service keeps its own trace joined only by the id.
func (d *Downstream) Call(ctx context.Context, payload any) (map[string]any, int, error) {
	ctx, span := d.tracer.Start(ctx, d.service+".call")
	defer span.End()

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, 0, fmt.Errorf("marshal payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.url, bytes.NewReader(body))
	if err != nil {
		return nil, 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if id := observability.RequestIDFromContext(ctx); id != "" {
		observability.InjectRequestID(req.Header, id)
	}

	resp, err := d.http.Do(req)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, 0, fmt.Errorf("%w: %v", ErrDownstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		span.SetStatus(codes.Error, resp.Status)
		return nil, resp.StatusCode, fmt.Errorf("%w: status %d", ErrDownstream, resp.StatusCode)
	}
	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, resp.StatusCode, fmt.Errorf("%w: decode body: %v", ErrDownstream, err)
	}
	return out, resp.StatusCode, nil
}

package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/laucilla/tracing-demo/internal/client"
)

// ErrBadPayload marks an inbound body that could not be decoded.
var ErrBadPayload = errors.New("invalid payload")

// Handler is an http.Handler whose error return is mapped to a status code.
// Errors surface after the middleware stack has run its cleanup.
type Handler func(http.ResponseWriter, *http.Request) error

func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := h(w, r); err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, ErrBadPayload):
			status = http.StatusBadRequest
		case errors.Is(err, client.ErrDownstream):
			status = http.StatusBadGateway
		}
		http.Error(w, http.StatusText(status), status)
	}
}

// StartHTTPServer runs the HTTP server and shuts down on context cancel.
func StartHTTPServer(ctx context.Context, addr string, handler http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutCtx)
	}()
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

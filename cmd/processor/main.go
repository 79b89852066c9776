package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/laucilla/tracing-demo/internal/config"
	"github.com/laucilla/tracing-demo/internal/logging"
	"github.com/laucilla/tracing-demo/internal/observability"
	"github.com/laucilla/tracing-demo/internal/processor"
	"github.com/laucilla/tracing-demo/internal/server"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
)

const serviceName = "processor"

func main() {
	logging.Setup()
	logger := logging.New(serviceName)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("load config", "err", err)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	tp, err := observability.InitTracer(ctx, observability.TracingConfig{
		ServiceName:    serviceName,
		Exporter:       cfg.TraceExporter,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		JaegerEndpoint: cfg.JaegerEndpoint,
	})
	if err != nil {
		logger.Error("init tracer", "err", err)
		return
	}
	defer func() {
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = tp.Shutdown(shutCtx)
	}()

	tracer := otel.Tracer(serviceName)

	mux := http.NewServeMux()
	mux.Handle("/process", processor.Handler(logger))
	mux.Handle("/work", processor.WorkHandler(logger))
	mux.Handle("/metrics", promhttp.Handler())

	handler := server.ChainMiddlewares(mux, serviceName, server.ExtractOnly, logger, tracer)
	if err := server.StartHTTPServer(ctx, cfg.ProcessorAddr, handler, logger); err != nil {
		logger.Error("http", "err", err)
	}
}

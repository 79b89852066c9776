package config

import (
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	GatewayAddr       string        `env:"GATEWAY_ADDR" env-default:":8000"`
	ProcessorAddr     string        `env:"PROCESSOR_ADDR" env-default:":8001"`
	DownstreamURL     string        `env:"DOWNSTREAM_URL" env-default:"http://localhost:8001/process"`
	DownstreamTimeout time.Duration `env:"DOWNSTREAM_TIMEOUT" env-default:"10s"`
	TraceExporter     string        `env:"TRACE_EXPORTER" env-default:"console"`
	OTLPEndpoint      string        `env:"OTEL_EXPORTER_OTLP_ENDPOINT" env-default:""`
	JaegerEndpoint    string        `env:"JAEGER_ENDPOINT" env-default:"http://localhost:14268/api/traces"`
}

func Load() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

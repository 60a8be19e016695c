// Package observability builds the logger, tracer and metrics registry shared by every module.
package observability

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// Config selects how observability components are built.
type Config struct {
	ServiceName    string
	Environment    string
	LogLevel       string
	MetricsEnabled bool
}

// Observability bundles the handles injected into modules.
type Observability struct {
	Logger   *slog.Logger
	Tracer   trace.Tracer
	Registry *prometheus.Registry
	Metrics  SyncMetrics
}

// New builds an Observability writing JSON logs to stdout.
func New(cfg Config) Observability {
	return NewWithWriter(cfg, os.Stdout)
}

// NewWithWriter is New with an explicit log destination.
func NewWithWriter(cfg Config, w io.Writer) Observability {
	name := cfg.ServiceName
	if name == "" {
		name = "minton3t-ranking"
	}

	logger := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: ParseLevel(cfg.LogLevel),
	})).With(
		slog.String("service", name),
		slog.String("environment", cfg.Environment),
	)

	registry := prometheus.NewRegistry()
	var metrics SyncMetrics = NewNoopMetrics()
	if cfg.MetricsEnabled {
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		metrics = NewPrometheusMetrics(registry)
	}

	return Observability{
		Logger:   logger,
		Tracer:   otel.Tracer(name),
		Registry: registry,
		Metrics:  metrics,
	}
}

// ParseLevel maps a config string to a slog level. Unknown values mean info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

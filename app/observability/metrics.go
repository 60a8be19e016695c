package observability

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// SyncMetrics records service operations and ingested rows.
type SyncMetrics interface {
	RecordOperationAttempt(ctx context.Context, operation, service string)
	RecordOperationSuccess(ctx context.Context, operation, service string)
	RecordOperationFailure(ctx context.Context, operation, service string)
	RecordOperationDuration(ctx context.Context, operation, service string, d time.Duration)
	RecordRows(ctx context.Context, flow, outcome string, n int)
}

type prometheusMetrics struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	rows       *prometheus.CounterVec
}

// NewPrometheusMetrics registers the sync collectors on reg.
func NewPrometheusMetrics(reg prometheus.Registerer) SyncMetrics {
	m := &prometheusMetrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "minton3t",
			Name:      "sync_operations_total",
			Help:      "Service operations by outcome.",
		}, []string{"service", "operation", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "minton3t",
			Name:      "sync_operation_duration_seconds",
			Help:      "Service operation latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"service", "operation"}),
		rows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "minton3t",
			Name:      "ingested_rows_total",
			Help:      "Spreadsheet rows processed by flow and outcome.",
		}, []string{"flow", "outcome"}),
	}
	reg.MustRegister(m.operations, m.duration, m.rows)
	return m
}

func (m *prometheusMetrics) RecordOperationAttempt(_ context.Context, operation, service string) {
	m.operations.WithLabelValues(service, operation, "attempt").Inc()
}

func (m *prometheusMetrics) RecordOperationSuccess(_ context.Context, operation, service string) {
	m.operations.WithLabelValues(service, operation, "success").Inc()
}

func (m *prometheusMetrics) RecordOperationFailure(_ context.Context, operation, service string) {
	m.operations.WithLabelValues(service, operation, "failure").Inc()
}

func (m *prometheusMetrics) RecordOperationDuration(_ context.Context, operation, service string, d time.Duration) {
	m.duration.WithLabelValues(service, operation).Observe(d.Seconds())
}

func (m *prometheusMetrics) RecordRows(_ context.Context, flow, outcome string, n int) {
	if n <= 0 {
		return
	}
	m.rows.WithLabelValues(flow, outcome).Add(float64(n))
}

type noopMetrics struct{}

// NewNoopMetrics returns metrics that record nothing.
func NewNoopMetrics() SyncMetrics { return noopMetrics{} }

func (noopMetrics) RecordOperationAttempt(context.Context, string, string)                 {}
func (noopMetrics) RecordOperationSuccess(context.Context, string, string)                 {}
func (noopMetrics) RecordOperationFailure(context.Context, string, string)                 {}
func (noopMetrics) RecordOperationDuration(context.Context, string, string, time.Duration) {}
func (noopMetrics) RecordRows(context.Context, string, string, int)                        {}

package ingestservice

import (
	"log/slog"

	"github.com/DanielWijono/minton3t-ranking/app/modules/ingest/parsers"
	"github.com/DanielWijono/minton3t-ranking/app/observability"
	"github.com/DanielWijono/minton3t-ranking/app/shared/operation"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "ingest"

// IngestService implements Service.
type IngestService struct {
	parsers     parsers.ParserFactory
	leaderboard LeaderboardSyncer
	mvp         MVPSyncer
	publisher   Publisher
	logger      *slog.Logger
	metrics     observability.SyncMetrics
	runner      *operation.Runner
	guard       *busyGuard
}

// NewIngestService creates an IngestService. publisher may be nil, in which case no events are
// published.
func NewIngestService(
	factory parsers.ParserFactory,
	leaderboard LeaderboardSyncer,
	mvp MVPSyncer,
	publisher Publisher,
	logger *slog.Logger,
	metrics observability.SyncMetrics,
	tracer trace.Tracer,
) *IngestService {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = observability.NewNoopMetrics()
	}
	if factory == nil {
		factory = parsers.NewFactory()
	}
	return &IngestService{
		parsers:     factory,
		leaderboard: leaderboard,
		mvp:         mvp,
		publisher:   publisher,
		logger:      logger,
		metrics:     metrics,
		guard:       newBusyGuard(),
		runner: &operation.Runner{
			Service: serviceName,
			Logger:  logger,
			Metrics: metrics,
			Tracer:  tracer,
		},
	}
}

var _ Service = (*IngestService)(nil)

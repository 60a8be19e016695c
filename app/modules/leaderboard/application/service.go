package leaderboardservice

import (
	"log/slog"

	leaderboarddb "github.com/DanielWijono/minton3t-ranking/app/modules/leaderboard/infrastructure/repositories"
	playerdb "github.com/DanielWijono/minton3t-ranking/app/modules/player/infrastructure/repositories"
	"github.com/DanielWijono/minton3t-ranking/app/observability"
	"github.com/DanielWijono/minton3t-ranking/app/shared/operation"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "leaderboard"

// LeaderboardService implements Service.
type LeaderboardService struct {
	players playerdb.Repository
	stats   leaderboarddb.Repository
	logger  *slog.Logger
	metrics observability.SyncMetrics
	runner  *operation.Runner
}

// NewLeaderboardService creates a LeaderboardService. A nil db runs operations without a
// transaction, which the in-memory repositories rely on.
func NewLeaderboardService(
	players playerdb.Repository,
	stats leaderboarddb.Repository,
	logger *slog.Logger,
	metrics observability.SyncMetrics,
	tracer trace.Tracer,
	db *bun.DB,
) *LeaderboardService {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = observability.NewNoopMetrics()
	}
	return &LeaderboardService{
		players: players,
		stats:   stats,
		logger:  logger,
		metrics: metrics,
		runner: &operation.Runner{
			Service: serviceName,
			Logger:  logger,
			Metrics: metrics,
			Tracer:  tracer,
			DB:      db,
		},
	}
}

var _ Service = (*LeaderboardService)(nil)

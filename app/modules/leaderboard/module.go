package leaderboard

import (
	"context"
	"log/slog"
	"sync"

	leaderboardservice "github.com/DanielWijono/minton3t-ranking/app/modules/leaderboard/application"
	leaderboardhandlers "github.com/DanielWijono/minton3t-ranking/app/modules/leaderboard/infrastructure/handlers"
	leaderboarddb "github.com/DanielWijono/minton3t-ranking/app/modules/leaderboard/infrastructure/repositories"
	playerdb "github.com/DanielWijono/minton3t-ranking/app/modules/player/infrastructure/repositories"
	"github.com/DanielWijono/minton3t-ranking/app/observability"
	"github.com/DanielWijono/minton3t-ranking/app/shared/httpapi"
	"github.com/DanielWijono/minton3t-ranking/config"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
)

// Module represents the leaderboard module.
type Module struct {
	service    leaderboardservice.Service
	handlers   leaderboardhandlers.Handlers
	cancelFunc context.CancelFunc
	logger     *slog.Logger
}

// NewModule creates a new leaderboard module. httpRouter may be nil for offline use.
func NewModule(
	ctx context.Context,
	cfg *config.Config,
	obs observability.Observability,
	players playerdb.Repository,
	stats leaderboarddb.Repository,
	httpRouter chi.Router,
	db *bun.DB,
) (*Module, error) {
	logger := obs.Logger
	tracer := obs.Tracer

	logger.InfoContext(ctx, "Initializing leaderboard module")

	service := leaderboardservice.NewLeaderboardService(
		players,
		stats,
		logger,
		obs.Metrics,
		tracer,
		db,
	)
	handlers := leaderboardhandlers.NewLeaderboardHandlers(service, logger, tracer)

	if httpRouter != nil {
		httpRouter.Group(func(r chi.Router) {
			r.Use(httpapi.CORSMiddleware(cfg.HTTP.AllowedOrigins))
			leaderboardhandlers.Mount(r, handlers)
		})
	}

	return &Module{
		service:  service,
		handlers: handlers,
		logger:   logger,
	}, nil
}

// Run blocks until ctx is cancelled or Close is called.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	m.logger.InfoContext(ctx, "Leaderboard module started")
	<-ctx.Done()
	m.logger.InfoContext(ctx, "Leaderboard module goroutine stopped")
}

// Close stops the leaderboard module.
func (m *Module) Close() error {
	m.logger.Info("Stopping leaderboard module")
	if m.cancelFunc != nil {
		m.cancelFunc()
	}
	m.logger.Info("Leaderboard module stopped")
	return nil
}

// GetService returns the leaderboard service for use by other modules.
func (m *Module) GetService() leaderboardservice.Service {
	return m.service
}

package ingest

import (
	"context"
	"log/slog"
	"sync"

	"github.com/DanielWijono/minton3t-ranking/app/eventbus"
	ingestservice "github.com/DanielWijono/minton3t-ranking/app/modules/ingest/application"
	ingesthandlers "github.com/DanielWijono/minton3t-ranking/app/modules/ingest/infrastructure/handlers"
	"github.com/DanielWijono/minton3t-ranking/app/modules/ingest/parsers"
	"github.com/DanielWijono/minton3t-ranking/app/observability"
	"github.com/DanielWijono/minton3t-ranking/app/shared/httpapi"
	"github.com/DanielWijono/minton3t-ranking/config"
	"github.com/go-chi/chi/v5"
	"golang.org/x/time/rate"
)

// Module represents the ingest module.
type Module struct {
	service    ingestservice.Service
	handlers   ingesthandlers.Handlers
	cancelFunc context.CancelFunc
	logger     *slog.Logger
}

// NewModule creates a new ingest module on top of the leaderboard and MVP services. bus may
// be nil, in which case sync events are not published. httpRouter may be nil for offline use.
func NewModule(
	ctx context.Context,
	cfg *config.Config,
	obs observability.Observability,
	leaderboard ingestservice.LeaderboardSyncer,
	mvp ingestservice.MVPSyncer,
	bus eventbus.EventBus,
	httpRouter chi.Router,
) (*Module, error) {
	logger := obs.Logger
	tracer := obs.Tracer

	logger.InfoContext(ctx, "Initializing ingest module")

	var publisher ingestservice.Publisher
	if bus != nil {
		publisher = bus
	}

	service := ingestservice.NewIngestService(
		parsers.NewFactory(),
		leaderboard,
		mvp,
		publisher,
		logger,
		obs.Metrics,
		tracer,
	)
	handlers := ingesthandlers.NewIngestHandlers(service, logger, tracer, cfg.Upload.MaxBytes)

	if httpRouter != nil {
		limiter := httpapi.NewIPRateLimiter(rate.Limit(cfg.Upload.RateLimit), cfg.Upload.RateBurst)
		httpRouter.Group(func(r chi.Router) {
			r.Use(httpapi.CORSMiddleware(cfg.HTTP.AllowedOrigins))
			r.Use(httpapi.RateLimitMiddleware(limiter))
			ingesthandlers.Mount(r, handlers)
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

	m.logger.InfoContext(ctx, "Ingest module started")
	<-ctx.Done()
	m.logger.InfoContext(ctx, "Ingest module goroutine stopped")
}

// Close stops the ingest module.
func (m *Module) Close() error {
	m.logger.Info("Stopping ingest module")
	if m.cancelFunc != nil {
		m.cancelFunc()
	}
	m.logger.Info("Ingest module stopped")
	return nil
}

// GetService returns the ingest service for use by the CLI.
func (m *Module) GetService() ingestservice.Service {
	return m.service
}

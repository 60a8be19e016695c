package mvp

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/DanielWijono/minton3t-ranking/app/eventbus"
	"github.com/DanielWijono/minton3t-ranking/app/events"
	mvpservice "github.com/DanielWijono/minton3t-ranking/app/modules/mvp/application"
	mvphandlers "github.com/DanielWijono/minton3t-ranking/app/modules/mvp/infrastructure/handlers"
	mvpdb "github.com/DanielWijono/minton3t-ranking/app/modules/mvp/infrastructure/repositories"
	playerdb "github.com/DanielWijono/minton3t-ranking/app/modules/player/infrastructure/repositories"
	"github.com/DanielWijono/minton3t-ranking/app/observability"
	"github.com/DanielWijono/minton3t-ranking/app/shared/httpapi"
	"github.com/DanielWijono/minton3t-ranking/config"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
)

// invalidatePeriodsHandler is the watermill handler name of the period cache subscriber.
const invalidatePeriodsHandler = "mvp.invalidate-periods"

// Module represents the MVP module.
type Module struct {
	service    mvpservice.Service
	handlers   mvphandlers.Handlers
	router     *message.Router
	cancelFunc context.CancelFunc
	logger     *slog.Logger
}

// NewModule creates a new MVP module. bus may be nil, in which case the period cache only
// expires by age. httpRouter may be nil for offline use.
func NewModule(
	ctx context.Context,
	cfg *config.Config,
	obs observability.Observability,
	players playerdb.Repository,
	repo mvpdb.Repository,
	bus eventbus.EventBus,
	httpRouter chi.Router,
	db *bun.DB,
) (*Module, error) {
	obs.Logger.InfoContext(ctx, "Initializing MVP module")

	service := mvpservice.NewMVPService(
		players,
		repo,
		obs.Logger,
		obs.Metrics,
		obs.Tracer,
		db,
		mvpservice.WithAllowedYears(cfg.MVP.AllowedYears...),
	)
	return newModule(cfg, obs, service, bus, httpRouter)
}

func newModule(
	cfg *config.Config,
	obs observability.Observability,
	service mvpservice.Service,
	bus eventbus.EventBus,
	httpRouter chi.Router,
) (*Module, error) {
	logger := obs.Logger
	handlers := mvphandlers.NewMVPHandlers(service, logger, obs.Tracer)

	module := &Module{
		service:  service,
		handlers: handlers,
		logger:   logger,
	}

	if bus != nil {
		router, err := eventbus.NewRouter(logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create MVP event router: %w", err)
		}
		eventbus.Handle(router, bus, logger, invalidatePeriodsHandler, events.MVPPeriodSyncedV1,
			func(ctx context.Context, p *events.MVPPeriodSyncedPayloadV1) error {
				logger.InfoContext(ctx, "Dropping cached period list",
					slog.String("period_id", p.PeriodID.String()),
					slog.Bool("period_created", p.PeriodCreated),
				)
				service.InvalidatePeriods()
				return nil
			})
		module.router = router
	}

	if httpRouter != nil {
		httpRouter.Group(func(r chi.Router) {
			r.Use(httpapi.CORSMiddleware(cfg.HTTP.AllowedOrigins))
			mvphandlers.Mount(r, handlers)
		})
	}

	return module, nil
}

// Run starts the event router and blocks until ctx is cancelled or Close is called.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	m.logger.InfoContext(ctx, "Starting MVP module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	if m.router != nil {
		go func() {
			if err := m.router.Run(ctx); err != nil {
				m.logger.ErrorContext(ctx, "MVP event router stopped", slog.Any("error", err))
			}
		}()
	}

	<-ctx.Done()
	m.logger.InfoContext(ctx, "MVP module goroutine stopped")
}

// Running is closed once the event router is consuming. It is closed immediately when the
// module has no router.
func (m *Module) Running() <-chan struct{} {
	if m.router == nil {
		ch := make(chan struct{})
		close(ch)
		return ch
	}
	return m.router.Running()
}

// Close stops the MVP module.
func (m *Module) Close() error {
	m.logger.Info("Stopping MVP module")

	if m.cancelFunc != nil {
		m.cancelFunc()
	}

	if m.router != nil {
		if err := m.router.Close(); err != nil {
			m.logger.Error("Error stopping MVP event router", slog.Any("error", err))
			return fmt.Errorf("error stopping router: %w", err)
		}
	}

	m.logger.Info("MVP module stopped")
	return nil
}

// GetService returns the MVP service for use by other modules.
func (m *Module) GetService() mvpservice.Service {
	return m.service
}

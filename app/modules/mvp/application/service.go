package mvpservice

import (
	"log/slog"
	"sync"
	"time"

	mvpdb "github.com/DanielWijono/minton3t-ranking/app/modules/mvp/infrastructure/repositories"
	playerdb "github.com/DanielWijono/minton3t-ranking/app/modules/player/infrastructure/repositories"
	"github.com/DanielWijono/minton3t-ranking/app/observability"
	"github.com/DanielWijono/minton3t-ranking/app/shared/operation"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"
)

const (
	serviceName = "mvp"

	// DefaultDivision is shown for players without a division.
	DefaultDivision = "SILVER HAWK"
	// DefaultDivisionColor is used when a division has no colour.
	DefaultDivisionColor = "#8a9bb3"

	periodCacheTTL = 5 * time.Minute
)

// MVPService implements Service.
type MVPService struct {
	players      playerdb.Repository
	repo         mvpdb.Repository
	logger       *slog.Logger
	metrics      observability.SyncMetrics
	runner       *operation.Runner
	allowedYears map[int]bool
	palette      ChartPalette

	cacheMu  sync.Mutex
	periods  []mvpdb.Period
	cachedAt time.Time
	// cacheGen is bumped by every invalidation. A list read under an older generation is not stored.
	cacheGen uint64
	now      func() time.Time
}

// Option customises an MVPService.
type Option func(*MVPService)

// WithAllowedYears restricts the years SyncPeriod accepts. No years means any year.
func WithAllowedYears(years ...int) Option {
	return func(s *MVPService) {
		for _, y := range years {
			s.allowedYears[y] = true
		}
	}
}

// WithChartPalette overrides the chart colours.
func WithChartPalette(p ChartPalette) Option {
	return func(s *MVPService) { s.palette = p }
}

// NewMVPService creates an MVPService.
func NewMVPService(
	players playerdb.Repository,
	repo mvpdb.Repository,
	logger *slog.Logger,
	metrics observability.SyncMetrics,
	tracer trace.Tracer,
	db *bun.DB,
	opts ...Option,
) *MVPService {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = observability.NewNoopMetrics()
	}
	s := &MVPService{
		players:      players,
		repo:         repo,
		logger:       logger,
		metrics:      metrics,
		allowedYears: map[int]bool{},
		palette:      DefaultChartPalette(),
		now:          time.Now,
		runner: &operation.Runner{
			Service: serviceName,
			Logger:  logger,
			Metrics: metrics,
			Tracer:  tracer,
			DB:      db,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ Service = (*MVPService)(nil)

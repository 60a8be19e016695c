package mvphandlers

import (
	"context"
	"sync"

	"github.com/DanielWijono/minton3t-ranking/app/modules/ingest/normalize"
	mvpservice "github.com/DanielWijono/minton3t-ranking/app/modules/mvp/application"
	mvpdb "github.com/DanielWijono/minton3t-ranking/app/modules/mvp/infrastructure/repositories"
	playerdb "github.com/DanielWijono/minton3t-ranking/app/modules/player/infrastructure/repositories"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// FakeService is a programmable mvpservice.Service.
type FakeService struct {
	ListPeriodsFunc   func(ctx context.Context) ([]mvpdb.Period, error)
	PeriodEntriesFunc func(ctx context.Context, periodID uuid.UUID) (*mvpservice.PeriodView, error)
	RankMovementFunc  func(ctx context.Context, query string) (*mvpservice.RankMovement, error)
	ListDivisionsFunc func(ctx context.Context) ([]playerdb.Division, error)
	PlayerChartFunc   func(ctx context.Context, playerID uuid.UUID) ([]byte, error)
	invalidated       int
}

func (f *FakeService) SyncPeriod(context.Context, int, int, []normalize.Entry) (*mvpservice.SyncReport, error) {
	return &mvpservice.SyncReport{}, nil
}

func (f *FakeService) ValidatePeriod(int, int) error { return nil }

func (f *FakeService) ListPeriods(ctx context.Context) ([]mvpdb.Period, error) {
	if f.ListPeriodsFunc != nil {
		return f.ListPeriodsFunc(ctx)
	}
	return []mvpdb.Period{}, nil
}

func (f *FakeService) InvalidatePeriods() { f.invalidated++ }

func (f *FakeService) PeriodEntries(ctx context.Context, periodID uuid.UUID) (*mvpservice.PeriodView, error) {
	if f.PeriodEntriesFunc != nil {
		return f.PeriodEntriesFunc(ctx, periodID)
	}
	return &mvpservice.PeriodView{}, nil
}

func (f *FakeService) RankMovement(ctx context.Context, query string) (*mvpservice.RankMovement, error) {
	if f.RankMovementFunc != nil {
		return f.RankMovementFunc(ctx, query)
	}
	return &mvpservice.RankMovement{Query: query}, nil
}

func (f *FakeService) ListDivisions(ctx context.Context) ([]playerdb.Division, error) {
	if f.ListDivisionsFunc != nil {
		return f.ListDivisionsFunc(ctx)
	}
	return playerdb.DefaultDivisions(), nil
}

func (f *FakeService) PlayerChart(ctx context.Context, playerID uuid.UUID) ([]byte, error) {
	if f.PlayerChartFunc != nil {
		return f.PlayerChartFunc(ctx, playerID)
	}
	return []byte("\x89PNG"), nil
}

var _ mvpservice.Service = (*FakeService)(nil)

// recordingTracer records the name of every span started through it.
type recordingTracer struct {
	noop.Tracer
	mu    sync.Mutex
	names []string
}

func (r *recordingTracer) Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	r.mu.Lock()
	r.names = append(r.names, name)
	r.mu.Unlock()
	return r.Tracer.Start(ctx, name, opts...)
}

func (r *recordingTracer) spans() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.names...)
}

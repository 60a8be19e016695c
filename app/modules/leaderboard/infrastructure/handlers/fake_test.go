package leaderboardhandlers

import (
	"context"
	"sync"

	"github.com/DanielWijono/minton3t-ranking/app/modules/ingest/normalize"
	leaderboardservice "github.com/DanielWijono/minton3t-ranking/app/modules/leaderboard/application"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// FakeService is a programmable leaderboardservice.Service.
type FakeService struct {
	SyncLeaderboardFunc func(ctx context.Context, entries []normalize.Entry) (*leaderboardservice.SyncReport, error)
	GetStandingsFunc    func(ctx context.Context, query string) (*leaderboardservice.Standings, error)
	queries             []string
}

func (f *FakeService) SyncLeaderboard(ctx context.Context, entries []normalize.Entry) (*leaderboardservice.SyncReport, error) {
	if f.SyncLeaderboardFunc != nil {
		return f.SyncLeaderboardFunc(ctx, entries)
	}
	return &leaderboardservice.SyncReport{}, nil
}

func (f *FakeService) GetStandings(ctx context.Context, query string) (*leaderboardservice.Standings, error) {
	f.queries = append(f.queries, query)
	if f.GetStandingsFunc != nil {
		return f.GetStandingsFunc(ctx, query)
	}
	return &leaderboardservice.Standings{Query: query}, nil
}

var _ leaderboardservice.Service = (*FakeService)(nil)

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

package ingestservice

import (
	"context"
	"fmt"
	"sync"

	"github.com/DanielWijono/minton3t-ranking/app/modules/ingest/normalize"
	leaderboardservice "github.com/DanielWijono/minton3t-ranking/app/modules/leaderboard/application"
	mvpservice "github.com/DanielWijono/minton3t-ranking/app/modules/mvp/application"
	"github.com/DanielWijono/minton3t-ranking/app/shared/syncerr"
	"go.opentelemetry.io/otel/trace/noop"
)

type fakeLeaderboard struct {
	mu      sync.Mutex
	batches [][]normalize.Entry
	SyncFn  func(ctx context.Context, entries []normalize.Entry) (*leaderboardservice.SyncReport, error)
}

func (f *fakeLeaderboard) SyncLeaderboard(ctx context.Context, entries []normalize.Entry) (*leaderboardservice.SyncReport, error) {
	f.mu.Lock()
	f.batches = append(f.batches, entries)
	f.mu.Unlock()
	if f.SyncFn != nil {
		return f.SyncFn(ctx, entries)
	}
	return &leaderboardservice.SyncReport{PlayersInserted: len(entries), StatsInserted: len(entries)}, nil
}

func (f *fakeLeaderboard) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.batches)
}

type fakeMVP struct {
	mu      sync.Mutex
	batches [][]normalize.Entry
	SyncFn  func(ctx context.Context, month, year int, entries []normalize.Entry) (*mvpservice.SyncReport, error)
}

func (f *fakeMVP) ValidatePeriod(month, year int) error {
	if month < 1 || month > 12 || year < 2000 {
		return fmt.Errorf("%w: %d/%d", syncerr.ErrInvalidPeriod, month, year)
	}
	return nil
}

func (f *fakeMVP) SyncPeriod(ctx context.Context, month, year int, entries []normalize.Entry) (*mvpservice.SyncReport, error) {
	f.mu.Lock()
	f.batches = append(f.batches, entries)
	f.mu.Unlock()
	if f.SyncFn != nil {
		return f.SyncFn(ctx, month, year, entries)
	}
	return &mvpservice.SyncReport{
		PeriodName:      mvpservice.PeriodName(month, year),
		PeriodCreated:   true,
		EntriesInserted: len(entries),
	}, nil
}

func (f *fakeMVP) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.batches)
}

type published struct {
	topic   string
	payload any
}

type fakePublisher struct {
	mu     sync.Mutex
	events []published
	err    error
}

func (f *fakePublisher) PublishJSON(_ context.Context, topic string, payload any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, published{topic: topic, payload: payload})
	return nil
}

func (f *fakePublisher) all() []published {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]published(nil), f.events...)
}

type fixture struct {
	leaderboard *fakeLeaderboard
	mvp         *fakeMVP
	publisher   *fakePublisher
	svc         *IngestService
}

func newFixture() *fixture {
	f := &fixture{
		leaderboard: &fakeLeaderboard{},
		mvp:         &fakeMVP{},
		publisher:   &fakePublisher{},
	}
	f.svc = NewIngestService(nil, f.leaderboard, f.mvp, f.publisher, nil, nil, noop.NewTracerProvider().Tracer("test"))
	return f
}

const leaderboardCSV = `NAME,RANK,RATING,DIVISION
Herry/HerKu,1st,1850,PLATINUM PHOENIX
Aldo,2nd,n/a,golden falcon
`

const mvpCSV = `NO,NAME,RATING GAIN,EVENT,DIVISION
1,Herry Kuhuela / HerKu,120,4,GOLDEN FALCON
2,Aldo,80,,SILVER HAWK
`

package mvpservice

import (
	"io"
	"log/slog"
	"time"

	mvpdb "github.com/DanielWijono/minton3t-ranking/app/modules/mvp/infrastructure/repositories"
	playerdb "github.com/DanielWijono/minton3t-ranking/app/modules/player/infrastructure/repositories"
	"go.opentelemetry.io/otel/trace/noop"
)

type fixture struct {
	players   *playerdb.FakeRepository
	repo      *mvpdb.FakeRepository
	divisions map[string]playerdb.Division
	svc       *MVPService
}

func newFixture(opts ...Option) *fixture {
	divisions := playerdb.DefaultDivisions()
	players := playerdb.NewFakeRepository(divisions...)
	repo := mvpdb.NewFakeRepository(players)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	f := &fixture{
		players:   players,
		repo:      repo,
		divisions: map[string]playerdb.Division{},
		svc:       NewMVPService(players, repo, logger, nil, noop.NewTracerProvider().Tracer("test"), nil, opts...),
	}
	for _, d := range divisions {
		f.divisions[d.Name] = d
	}
	return f
}

// advance moves the service clock forward.
func (f *fixture) advance(d time.Duration) {
	now := f.svc.now()
	f.svc.now = func() time.Time { return now.Add(d) }
}

func ptr[T any](v T) *T { return &v }

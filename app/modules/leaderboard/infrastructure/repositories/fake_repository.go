package leaderboarddb

import (
	"context"
	"sort"
	"sync"

	playerdb "github.com/DanielWijono/minton3t-ranking/app/modules/player/infrastructure/repositories"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// FakeRepository is an in-memory Repository. When Players is set, inserted stats must reference
// one of its players and ListStandings joins them.
type FakeRepository struct {
	InsertBatchFn   func(ctx context.Context, db bun.IDB, stats []*Stat) error
	ListStandingsFn func(ctx context.Context, db bun.IDB) ([]Stat, error)

	Players *playerdb.FakeRepository

	mu    sync.Mutex
	stats []Stat
	calls []string
}

// NewFakeRepository returns a fake linked to players. Deleting all players clears the stats.
func NewFakeRepository(players *playerdb.FakeRepository) *FakeRepository {
	f := &FakeRepository{Players: players}
	if players != nil {
		players.OnDeleteAll(f.Clear)
	}
	return f
}

// Clear drops every stored stat.
func (f *FakeRepository) Clear() {
	f.mu.Lock()
	f.stats = nil
	f.mu.Unlock()
}

// Stats returns the stored stats.
func (f *FakeRepository) Stats() []Stat {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Stat(nil), f.stats...)
}

// Calls returns the recorded method names.
func (f *FakeRepository) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *FakeRepository) record(call string) {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()
}

func (f *FakeRepository) InsertBatch(ctx context.Context, db bun.IDB, stats []*Stat) error {
	f.record("InsertBatch")
	if f.InsertBatchFn != nil {
		return f.InsertBatchFn(ctx, db, stats)
	}
	if f.Players != nil {
		known := make(map[uuid.UUID]bool)
		for _, p := range f.Players.Players() {
			known[p.ID] = true
		}
		for _, s := range stats {
			if !known[s.PlayerID] {
				return ErrUnknownPlayer
			}
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range stats {
		if s.ID == uuid.Nil {
			s.ID = uuid.New()
		}
		f.stats = append(f.stats, *s)
	}
	return nil
}

func (f *FakeRepository) ListStandings(ctx context.Context, db bun.IDB) ([]Stat, error) {
	f.record("ListStandings")
	if f.ListStandingsFn != nil {
		return f.ListStandingsFn(ctx, db)
	}
	players := map[uuid.UUID]playerdb.Player{}
	if f.Players != nil {
		for _, p := range f.Players.Players() {
			players[p.ID] = p
		}
	}

	out := f.Stats()
	for i := range out {
		if p, ok := players[out[i].PlayerID]; ok {
			out[i].Player = &p
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Rank != out[j].Rank {
			return out[i].Rank < out[j].Rank
		}
		return out[i].Rating > out[j].Rating
	})
	return out, nil
}

var _ Repository = (*FakeRepository)(nil)

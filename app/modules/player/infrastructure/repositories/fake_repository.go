package playerdb

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// FakeRepository is an in-memory Repository for tests. Each method calls its Fn override when
// set, otherwise it operates on the in-memory tables. Calls are recorded in order.
type FakeRepository struct {
	DeleteAllFn     func(ctx context.Context, db bun.IDB) (int64, error)
	InsertBatchFn   func(ctx context.Context, db bun.IDB, players []*Player) error
	InsertFn        func(ctx context.Context, db bun.IDB, player *Player) error
	GetByFullNameFn func(ctx context.Context, db bun.IDB, fullName string) (*Player, error)
	GetByIDFn       func(ctx context.Context, db bun.IDB, id uuid.UUID) (*Player, error)
	UpdateProfileFn func(ctx context.Context, db bun.IDB, id uuid.UUID, update ProfileUpdate) error
	ListDivisionsFn func(ctx context.Context, db bun.IDB) ([]Division, error)

	mu        sync.Mutex
	cascades  []func()
	players   []*Player
	divisions []Division
	calls     []string
	clock     time.Time
}

// NewFakeRepository returns a fake seeded with divisions.
func NewFakeRepository(divisions ...Division) *FakeRepository {
	f := &FakeRepository{clock: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	for _, d := range divisions {
		if d.ID == uuid.Nil {
			d.ID = uuid.New()
		}
		f.divisions = append(f.divisions, d)
	}
	return f
}

// DefaultDivisions returns the three seeded tiers.
func DefaultDivisions() []Division {
	return []Division{
		{ID: uuid.New(), Name: "PLATINUM PHOENIX", Color: "#e8d5b5", SortOrder: 1},
		{ID: uuid.New(), Name: "GOLDEN FALCON", Color: "#d4a853", SortOrder: 2},
		{ID: uuid.New(), Name: "SILVER HAWK", Color: "#8a9bb3", SortOrder: 3},
	}
}

// Calls returns the recorded method names.
func (f *FakeRepository) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// Players returns copies of the stored players in insertion order.
func (f *FakeRepository) Players() []Player {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Player, 0, len(f.players))
	for _, p := range f.players {
		out = append(out, *p)
	}
	return out
}

// Seed stores players as if they had been inserted earlier.
func (f *FakeRepository) Seed(players ...Player) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range players {
		p := players[i]
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		if p.CreatedAt.IsZero() {
			p.CreatedAt = f.tick()
		}
		f.players = append(f.players, &p)
	}
}

// OnDeleteAll registers fn to run after DeleteAll clears the players, so dependent fakes can
// mimic ON DELETE CASCADE.
func (f *FakeRepository) OnDeleteAll(fn func()) {
	f.mu.Lock()
	f.cascades = append(f.cascades, fn)
	f.mu.Unlock()
}

func (f *FakeRepository) record(call string) {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()
}

func (f *FakeRepository) tick() time.Time {
	f.clock = f.clock.Add(time.Second)
	return f.clock
}

func (f *FakeRepository) DeleteAll(ctx context.Context, db bun.IDB) (int64, error) {
	f.record("DeleteAll")
	if f.DeleteAllFn != nil {
		return f.DeleteAllFn(ctx, db)
	}
	f.mu.Lock()
	n := int64(len(f.players))
	f.players = nil
	cascades := f.cascades
	f.mu.Unlock()
	for _, fn := range cascades {
		fn()
	}
	return n, nil
}

func (f *FakeRepository) InsertBatch(ctx context.Context, db bun.IDB, players []*Player) error {
	f.record("InsertBatch")
	if f.InsertBatchFn != nil {
		return f.InsertBatchFn(ctx, db, players)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range players {
		f.store(p)
	}
	return nil
}

func (f *FakeRepository) Insert(ctx context.Context, db bun.IDB, player *Player) error {
	f.record("Insert")
	if f.InsertFn != nil {
		return f.InsertFn(ctx, db, player)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.store(player)
	return nil
}

func (f *FakeRepository) store(p *Player) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	now := f.tick()
	p.CreatedAt, p.UpdatedAt = now, now
	cp := *p
	f.players = append(f.players, &cp)
}

func (f *FakeRepository) GetByFullName(ctx context.Context, db bun.IDB, fullName string) (*Player, error) {
	f.record("GetByFullName")
	if f.GetByFullNameFn != nil {
		return f.GetByFullNameFn(ctx, db, fullName)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var found *Player
	for _, p := range f.players {
		if p.FullName != fullName {
			continue
		}
		if found == nil || p.CreatedAt.Before(found.CreatedAt) {
			found = p
		}
	}
	if found == nil {
		return nil, ErrNotFound
	}
	cp := *found
	return &cp, nil
}

func (f *FakeRepository) GetByID(ctx context.Context, db bun.IDB, id uuid.UUID) (*Player, error) {
	f.record("GetByID")
	if f.GetByIDFn != nil {
		return f.GetByIDFn(ctx, db, id)
	}
	p, ok := f.Find(id)
	if !ok {
		return nil, ErrNotFound
	}
	return p, nil
}

// Find looks up a player with its division without recording a call.
func (f *FakeRepository) Find(id uuid.UUID) (*Player, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.players {
		if p.ID != id {
			continue
		}
		cp := *p
		if cp.DivisionID != nil {
			for i := range f.divisions {
				if f.divisions[i].ID == *cp.DivisionID {
					d := f.divisions[i]
					cp.Division = &d
				}
			}
		}
		return &cp, true
	}
	return nil, false
}

func (f *FakeRepository) UpdateProfile(ctx context.Context, db bun.IDB, id uuid.UUID, update ProfileUpdate) error {
	f.record("UpdateProfile")
	if f.UpdateProfileFn != nil {
		return f.UpdateProfileFn(ctx, db, id, update)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.players {
		if p.ID == id {
			p.AlternateName = update.AlternateName
			p.DivisionID = update.DivisionID
			p.UpdatedAt = f.tick()
			return nil
		}
	}
	return ErrNoRowsAffected
}

func (f *FakeRepository) ListDivisions(ctx context.Context, db bun.IDB) ([]Division, error) {
	f.record("ListDivisions")
	if f.ListDivisionsFn != nil {
		return f.ListDivisionsFn(ctx, db)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := append([]Division(nil), f.divisions...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out, nil
}

var _ Repository = (*FakeRepository)(nil)

package mvpdb

import (
	"context"
	"sort"
	"sync"

	playerdb "github.com/DanielWijono/minton3t-ranking/app/modules/player/infrastructure/repositories"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// FakeRepository is an in-memory Repository linked to a player fake for joins and cascades.
type FakeRepository struct {
	GetPeriodFn           func(ctx context.Context, db bun.IDB, month, year int) (*Period, error)
	GetPeriodByIDFn       func(ctx context.Context, db bun.IDB, id uuid.UUID) (*Period, error)
	CreatePeriodFn        func(ctx context.Context, db bun.IDB, period *Period) error
	ListPeriodsFn         func(ctx context.Context, db bun.IDB) ([]Period, error)
	LatestPeriodFn        func(ctx context.Context, db bun.IDB) (*Period, error)
	DeleteEntriesFn       func(ctx context.Context, db bun.IDB, periodID uuid.UUID) (int64, error)
	InsertEntryFn         func(ctx context.Context, db bun.IDB, entry *Entry) error
	ListEntriesFn         func(ctx context.Context, db bun.IDB, periodID uuid.UUID, order EntryOrder) ([]Entry, error)
	ListEntriesByPlayerFn func(ctx context.Context, db bun.IDB, playerID uuid.UUID) ([]Entry, error)

	Players *playerdb.FakeRepository

	mu      sync.Mutex
	periods []Period
	entries []Entry
	calls   []string
}

// NewFakeRepository returns a fake whose entries are dropped when players.DeleteAll runs.
func NewFakeRepository(players *playerdb.FakeRepository) *FakeRepository {
	f := &FakeRepository{Players: players}
	if players != nil {
		players.OnDeleteAll(func() {
			f.mu.Lock()
			f.entries = nil
			f.mu.Unlock()
		})
	}
	return f
}

// Calls returns the recorded method names.
func (f *FakeRepository) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// Entries returns every stored entry.
func (f *FakeRepository) Entries() []Entry {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Entry(nil), f.entries...)
}

// Periods returns every stored period.
func (f *FakeRepository) Periods() []Period {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Period(nil), f.periods...)
}

// SeedPeriod stores a period as if created earlier.
func (f *FakeRepository) SeedPeriod(p Period) Period {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	f.mu.Lock()
	f.periods = append(f.periods, p)
	f.mu.Unlock()
	return p
}

// SeedEntry stores an entry as if inserted earlier.
func (f *FakeRepository) SeedEntry(e Entry) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	f.mu.Lock()
	f.entries = append(f.entries, e)
	f.mu.Unlock()
}

func (f *FakeRepository) record(call string) {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()
}

func (f *FakeRepository) GetPeriod(ctx context.Context, db bun.IDB, month, year int) (*Period, error) {
	f.record("GetPeriod")
	if f.GetPeriodFn != nil {
		return f.GetPeriodFn(ctx, db, month, year)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.periods {
		if p.Month == month && p.Year == year {
			cp := p
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (f *FakeRepository) GetPeriodByID(ctx context.Context, db bun.IDB, id uuid.UUID) (*Period, error) {
	f.record("GetPeriodByID")
	if f.GetPeriodByIDFn != nil {
		return f.GetPeriodByIDFn(ctx, db, id)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.periods {
		if p.ID == id {
			cp := p
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (f *FakeRepository) CreatePeriod(ctx context.Context, db bun.IDB, period *Period) error {
	f.record("CreatePeriod")
	if f.CreatePeriodFn != nil {
		return f.CreatePeriodFn(ctx, db, period)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.periods {
		if p.Month == period.Month && p.Year == period.Year {
			return ErrDuplicatePeriod
		}
	}
	if period.ID == uuid.Nil {
		period.ID = uuid.New()
	}
	f.periods = append(f.periods, *period)
	return nil
}

func (f *FakeRepository) ListPeriods(ctx context.Context, db bun.IDB) ([]Period, error) {
	f.record("ListPeriods")
	if f.ListPeriodsFn != nil {
		return f.ListPeriodsFn(ctx, db)
	}
	out := f.Periods()
	sortPeriodsDesc(out)
	return out, nil
}

func (f *FakeRepository) LatestPeriod(ctx context.Context, db bun.IDB) (*Period, error) {
	f.record("LatestPeriod")
	if f.LatestPeriodFn != nil {
		return f.LatestPeriodFn(ctx, db)
	}
	out := f.Periods()
	if len(out) == 0 {
		return nil, ErrNotFound
	}
	sortPeriodsDesc(out)
	return &out[0], nil
}

func (f *FakeRepository) DeleteEntries(ctx context.Context, db bun.IDB, periodID uuid.UUID) (int64, error) {
	f.record("DeleteEntries")
	if f.DeleteEntriesFn != nil {
		return f.DeleteEntriesFn(ctx, db, periodID)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.entries[:0]
	var n int64
	for _, e := range f.entries {
		if e.PeriodID == periodID {
			n++
			continue
		}
		kept = append(kept, e)
	}
	f.entries = kept
	return n, nil
}

func (f *FakeRepository) InsertEntry(ctx context.Context, db bun.IDB, entry *Entry) error {
	f.record("InsertEntry")
	if f.InsertEntryFn != nil {
		return f.InsertEntryFn(ctx, db, entry)
	}
	if entry.PlayerID == uuid.Nil || entry.PeriodID == uuid.Nil {
		return ErrUnknownReference
	}
	if f.Players != nil {
		if _, ok := f.Players.Find(entry.PlayerID); !ok {
			return ErrUnknownReference
		}
	}
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	f.mu.Lock()
	f.entries = append(f.entries, *entry)
	f.mu.Unlock()
	return nil
}

func (f *FakeRepository) ListEntries(ctx context.Context, db bun.IDB, periodID uuid.UUID, order EntryOrder) ([]Entry, error) {
	f.record("ListEntries")
	if f.ListEntriesFn != nil {
		return f.ListEntriesFn(ctx, db, periodID, order)
	}
	var out []Entry
	for _, e := range f.Entries() {
		if e.PeriodID != periodID {
			continue
		}
		if f.Players != nil {
			if p, ok := f.Players.Find(e.PlayerID); ok {
				e.Player = p
			}
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if order == OrderByRatingGain {
			if out[i].RatingGain != out[j].RatingGain {
				return out[i].RatingGain > out[j].RatingGain
			}
			return out[i].Rank < out[j].Rank
		}
		if out[i].Rank != out[j].Rank {
			return out[i].Rank < out[j].Rank
		}
		return out[i].RatingGain > out[j].RatingGain
	})
	return out, nil
}

func (f *FakeRepository) ListEntriesByPlayer(ctx context.Context, db bun.IDB, playerID uuid.UUID) ([]Entry, error) {
	f.record("ListEntriesByPlayer")
	if f.ListEntriesByPlayerFn != nil {
		return f.ListEntriesByPlayerFn(ctx, db, playerID)
	}
	periods := map[uuid.UUID]Period{}
	for _, p := range f.Periods() {
		periods[p.ID] = p
	}
	var out []Entry
	for _, e := range f.Entries() {
		if e.PlayerID != playerID {
			continue
		}
		if p, ok := periods[e.PeriodID]; ok {
			e.Period = &p
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Period == nil || out[j].Period == nil {
			return false
		}
		pi, pj := out[i].Period, out[j].Period
		if pi.Year != pj.Year {
			return pi.Year < pj.Year
		}
		return pi.Month < pj.Month
	})
	return out, nil
}

func sortPeriodsDesc(periods []Period) {
	sort.SliceStable(periods, func(i, j int) bool {
		if periods[i].Year != periods[j].Year {
			return periods[i].Year > periods[j].Year
		}
		return periods[i].Month > periods[j].Month
	})
}

var _ Repository = (*FakeRepository)(nil)

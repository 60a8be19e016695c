package mvpdb

import (
	"context"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Repository defines the contract for MVP period and entry persistence.
//
// Error semantics:
//   - ErrNotFound: period does not exist
//   - ErrDuplicatePeriod: (month, year) already taken
//   - Other errors: infrastructure failures
type Repository interface {
	GetPeriod(ctx context.Context, db bun.IDB, month, year int) (*Period, error)
	GetPeriodByID(ctx context.Context, db bun.IDB, id uuid.UUID) (*Period, error)
	CreatePeriod(ctx context.Context, db bun.IDB, period *Period) error
	// ListPeriods orders by year desc, month desc.
	ListPeriods(ctx context.Context, db bun.IDB) ([]Period, error)
	// LatestPeriod returns ErrNotFound when no period exists.
	LatestPeriod(ctx context.Context, db bun.IDB) (*Period, error)

	DeleteEntries(ctx context.Context, db bun.IDB, periodID uuid.UUID) (int64, error)
	InsertEntry(ctx context.Context, db bun.IDB, entry *Entry) error
	// ListEntries returns a period's entries with player and division.
	ListEntries(ctx context.Context, db bun.IDB, periodID uuid.UUID, order EntryOrder) ([]Entry, error)
	// ListEntriesByPlayer returns a player's entries with their periods, oldest period first.
	ListEntriesByPlayer(ctx context.Context, db bun.IDB, playerID uuid.UUID) ([]Entry, error)
}

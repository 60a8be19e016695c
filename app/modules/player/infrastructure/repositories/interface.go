package playerdb

import (
	"context"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Repository defines the contract for player and division persistence. Every method takes the
// bun.IDB to run against so callers can pass a transaction.
//
// Error semantics:
//   - ErrNotFound: record does not exist
//   - ErrNoRowsAffected: UPDATE matched no rows
//   - Other errors: infrastructure failures
type Repository interface {
	// DeleteAll removes every player. Stats and MVP entries go with them through ON DELETE CASCADE.
	DeleteAll(ctx context.Context, db bun.IDB) (int64, error)

	// InsertBatch inserts players in one statement and fills in their identifiers.
	InsertBatch(ctx context.Context, db bun.IDB, players []*Player) error

	// Insert inserts a single player.
	Insert(ctx context.Context, db bun.IDB, player *Player) error

	// GetByFullName returns the oldest player whose full_name equals fullName exactly.
	// Returns ErrNotFound when there is none.
	GetByFullName(ctx context.Context, db bun.IDB, fullName string) (*Player, error)

	// GetByID returns a player with its division.
	GetByID(ctx context.Context, db bun.IDB, id uuid.UUID) (*Player, error)

	// UpdateProfile overwrites alternate_name and division_id.
	UpdateProfile(ctx context.Context, db bun.IDB, id uuid.UUID, update ProfileUpdate) error

	// ListDivisions returns every division ordered by sort_order.
	ListDivisions(ctx context.Context, db bun.IDB) ([]Division, error)
}

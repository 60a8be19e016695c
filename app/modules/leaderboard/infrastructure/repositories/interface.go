package leaderboarddb

import (
	"context"

	"github.com/uptrace/bun"
)

// Repository defines the contract for leaderboard stat persistence.
type Repository interface {
	// InsertBatch inserts stats in one statement.
	InsertBatch(ctx context.Context, db bun.IDB, stats []*Stat) error

	// ListStandings returns every stat with its player, ordered by rank then rating desc.
	ListStandings(ctx context.Context, db bun.IDB) ([]Stat, error)
}

package leaderboarddb

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Impl is the bun-backed Repository.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a Repository. db is used whenever a call passes a nil bun.IDB.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

func (r *Impl) conn(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

func (r *Impl) InsertBatch(ctx context.Context, db bun.IDB, stats []*Stat) error {
	if len(stats) == 0 {
		return nil
	}
	for _, s := range stats {
		if s.ID == uuid.Nil {
			s.ID = uuid.New()
		}
	}
	if _, err := r.conn(db).NewInsert().Model(&stats).Exec(ctx); err != nil {
		return fmt.Errorf("leaderboarddb.InsertBatch: %w", err)
	}
	return nil
}

func (r *Impl) ListStandings(ctx context.Context, db bun.IDB) ([]Stat, error) {
	var stats []Stat
	err := r.conn(db).NewSelect().
		Model(&stats).
		Relation("Player").
		OrderExpr("ls.rank ASC, ls.rating DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("leaderboarddb.ListStandings: %w", err)
	}
	return stats, nil
}

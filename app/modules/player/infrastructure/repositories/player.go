package playerdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

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

func (r *Impl) DeleteAll(ctx context.Context, db bun.IDB) (int64, error) {
	res, err := r.conn(db).NewDelete().
		Model((*Player)(nil)).
		Where("id <> ?", uuid.Nil).
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("playerdb.DeleteAll: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("playerdb.DeleteAll: rows affected: %w", err)
	}
	return n, nil
}

func (r *Impl) InsertBatch(ctx context.Context, db bun.IDB, players []*Player) error {
	if len(players) == 0 {
		return nil
	}
	for _, p := range players {
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
	}
	_, err := r.conn(db).NewInsert().
		Model(&players).
		Returning("*").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("playerdb.InsertBatch: %w", err)
	}
	return nil
}

func (r *Impl) Insert(ctx context.Context, db bun.IDB, player *Player) error {
	if player.ID == uuid.Nil {
		player.ID = uuid.New()
	}
	_, err := r.conn(db).NewInsert().
		Model(player).
		Returning("*").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("playerdb.Insert: %w", err)
	}
	return nil
}

func (r *Impl) GetByFullName(ctx context.Context, db bun.IDB, fullName string) (*Player, error) {
	player := new(Player)
	err := r.conn(db).NewSelect().
		Model(player).
		Where("p.full_name = ?", fullName).
		OrderExpr("p.created_at ASC, p.id ASC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("playerdb.GetByFullName: %w", err)
	}
	return player, nil
}

func (r *Impl) GetByID(ctx context.Context, db bun.IDB, id uuid.UUID) (*Player, error) {
	player := new(Player)
	err := r.conn(db).NewSelect().
		Model(player).
		Relation("Division").
		Where("p.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("playerdb.GetByID: %w", err)
	}
	return player, nil
}

func (r *Impl) UpdateProfile(ctx context.Context, db bun.IDB, id uuid.UUID, update ProfileUpdate) error {
	res, err := r.conn(db).NewUpdate().
		Model((*Player)(nil)).
		Set("alternate_name = ?", update.AlternateName).
		Set("division_id = ?", update.DivisionID).
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("playerdb.UpdateProfile: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("playerdb.UpdateProfile: rows affected: %w", err)
	}
	if n == 0 {
		return ErrNoRowsAffected
	}
	return nil
}

func (r *Impl) ListDivisions(ctx context.Context, db bun.IDB) ([]Division, error) {
	var divisions []Division
	err := r.conn(db).NewSelect().
		Model(&divisions).
		OrderExpr("d.sort_order ASC, d.name ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("playerdb.ListDivisions: %w", err)
	}
	return divisions, nil
}

package mvpdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"
)

const uniqueViolation = "23505"

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

func (r *Impl) GetPeriod(ctx context.Context, db bun.IDB, month, year int) (*Period, error) {
	period := new(Period)
	err := r.conn(db).NewSelect().
		Model(period).
		Where("mp.month = ? AND mp.year = ?", month, year).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("mvpdb.GetPeriod: %w", err)
	}
	return period, nil
}

func (r *Impl) GetPeriodByID(ctx context.Context, db bun.IDB, id uuid.UUID) (*Period, error) {
	period := new(Period)
	err := r.conn(db).NewSelect().
		Model(period).
		Where("mp.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("mvpdb.GetPeriodByID: %w", err)
	}
	return period, nil
}

func (r *Impl) CreatePeriod(ctx context.Context, db bun.IDB, period *Period) error {
	if period.ID == uuid.Nil {
		period.ID = uuid.New()
	}
	_, err := r.conn(db).NewInsert().
		Model(period).
		Returning("*").
		Exec(ctx)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicatePeriod
		}
		return fmt.Errorf("mvpdb.CreatePeriod: %w", err)
	}
	return nil
}

func (r *Impl) ListPeriods(ctx context.Context, db bun.IDB) ([]Period, error) {
	var periods []Period
	err := r.conn(db).NewSelect().
		Model(&periods).
		OrderExpr("mp.year DESC, mp.month DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("mvpdb.ListPeriods: %w", err)
	}
	return periods, nil
}

func (r *Impl) LatestPeriod(ctx context.Context, db bun.IDB) (*Period, error) {
	period := new(Period)
	err := r.conn(db).NewSelect().
		Model(period).
		OrderExpr("mp.year DESC, mp.month DESC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("mvpdb.LatestPeriod: %w", err)
	}
	return period, nil
}

func (r *Impl) DeleteEntries(ctx context.Context, db bun.IDB, periodID uuid.UUID) (int64, error) {
	res, err := r.conn(db).NewDelete().
		Model((*Entry)(nil)).
		Where("period_id = ?", periodID).
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("mvpdb.DeleteEntries: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("mvpdb.DeleteEntries: rows affected: %w", err)
	}
	return n, nil
}

func (r *Impl) InsertEntry(ctx context.Context, db bun.IDB, entry *Entry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if _, err := r.conn(db).NewInsert().Model(entry).Exec(ctx); err != nil {
		return fmt.Errorf("mvpdb.InsertEntry: %w", err)
	}
	return nil
}

func (r *Impl) ListEntries(ctx context.Context, db bun.IDB, periodID uuid.UUID, order EntryOrder) ([]Entry, error) {
	var entries []Entry
	q := r.conn(db).NewSelect().
		Model(&entries).
		Relation("Player").
		Relation("Player.Division").
		Where("me.period_id = ?", periodID)
	switch order {
	case OrderByRatingGain:
		q = q.OrderExpr("me.rating_gain DESC, me.rank ASC")
	default:
		q = q.OrderExpr("me.rank ASC, me.rating_gain DESC")
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("mvpdb.ListEntries: %w", err)
	}
	return entries, nil
}

func (r *Impl) ListEntriesByPlayer(ctx context.Context, db bun.IDB, playerID uuid.UUID) ([]Entry, error) {
	var entries []Entry
	err := r.conn(db).NewSelect().
		Model(&entries).
		Relation("Period").
		Where("me.player_id = ?", playerID).
		OrderExpr("period.year ASC, period.month ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("mvpdb.ListEntriesByPlayer: %w", err)
	}
	return entries, nil
}

func isUniqueViolation(err error) bool {
	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) {
		return pgErr.Field('C') == uniqueViolation
	}
	return false
}

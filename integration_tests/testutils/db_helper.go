//go:build integration

package testutils

import (
	"context"
	"fmt"
	"strings"

	mvpdb "github.com/DanielWijono/minton3t-ranking/app/modules/mvp/infrastructure/repositories"
	playerdb "github.com/DanielWijono/minton3t-ranking/app/modules/player/infrastructure/repositories"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// appTables are truncated between tests. Dependent tables are emptied by CASCADE.
var appTables = []string{"players", "mvp_periods"}

// CleanupDatabase truncates all tables in the database to ensure a clean state
func CleanupDatabase(ctx context.Context, db *bun.DB) error {
	query := fmt.Sprintf("TRUNCATE TABLE %s CASCADE", strings.Join(appTables, ", "))
	if _, err := db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to truncate tables: %w", err)
	}
	return nil
}

// CountRows returns the number of rows in table.
func CountRows(ctx context.Context, db bun.IDB, table string) (int, error) {
	return db.NewSelect().Table(table).Count(ctx)
}

// PlayerByFullName loads a player with its division.
func PlayerByFullName(ctx context.Context, db bun.IDB, fullName string) (*playerdb.Player, error) {
	player := new(playerdb.Player)
	err := db.NewSelect().
		Model(player).
		Relation("Division").
		Where("p.full_name = ?", fullName).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return player, nil
}

// EntriesForPeriod returns the entries of a period ordered by rank.
func EntriesForPeriod(ctx context.Context, db bun.IDB, periodID uuid.UUID) ([]mvpdb.Entry, error) {
	var entries []mvpdb.Entry
	err := db.NewSelect().
		Model(&entries).
		Where("me.period_id = ?", periodID).
		Order("me.rank ASC").
		Scan(ctx)
	return entries, err
}

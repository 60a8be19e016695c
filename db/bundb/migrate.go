package bundb

import (
	"context"
	"fmt"
	"log/slog"

	leaderboardmigrations "github.com/DanielWijono/minton3t-ranking/app/modules/leaderboard/infrastructure/repositories/migrations"
	mvpmigrations "github.com/DanielWijono/minton3t-ranking/app/modules/mvp/infrastructure/repositories/migrations"
	playermigrations "github.com/DanielWijono/minton3t-ranking/app/modules/player/infrastructure/repositories/migrations"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
)

// ModuleMigrator is the migrator of one module.
type ModuleMigrator struct {
	Name     string
	Migrator *migrate.Migrator
}

// ModuleMigrations is the migration set of one module.
type ModuleMigrations struct {
	Name       string
	Migrations *migrate.Migrations
}

// OrderedMigrations lists every module's migrations in foreign key order.
func OrderedMigrations() []ModuleMigrations {
	return []ModuleMigrations{
		{"player", playermigrations.Migrations},
		{"leaderboard", leaderboardmigrations.Migrations},
		{"mvp", mvpmigrations.Migrations},
	}
}

// Migrators returns one migrator per module, in foreign key order. Each module records its
// history in its own bun_migrations_<module> table.
func Migrators(db *bun.DB) []ModuleMigrator {
	mods := OrderedMigrations()
	out := make([]ModuleMigrator, 0, len(mods))
	for _, mod := range mods {
		out = append(out, ModuleMigrator{
			Name: mod.Name,
			Migrator: migrate.NewMigrator(db, mod.Migrations,
				migrate.WithTableName("bun_migrations_"+mod.Name),
				migrate.WithLocksTableName("bun_migration_locks_"+mod.Name),
			),
		})
	}
	return out
}

// Migrate creates the migration tables when missing and applies every pending migration.
func Migrate(ctx context.Context, db *bun.DB, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	for _, m := range Migrators(db) {
		if err := m.Migrator.Init(ctx); err != nil {
			return fmt.Errorf("failed to initialize %s migrations: %w", m.Name, err)
		}
		if err := m.Migrator.Lock(ctx); err != nil {
			return fmt.Errorf("failed to lock %s migrations: %w", m.Name, err)
		}
		group, err := m.Migrator.Migrate(ctx)
		if unlockErr := m.Migrator.Unlock(ctx); unlockErr != nil && err == nil {
			err = unlockErr
		}
		if err != nil {
			return fmt.Errorf("failed to run %s migrations: %w", m.Name, err)
		}
		if group.IsZero() {
			logger.InfoContext(ctx, "No migrations to run", slog.String("module", m.Name))
		} else {
			logger.InfoContext(ctx, "Ran migrations",
				slog.String("module", m.Name),
				slog.String("group", group.String()),
			)
		}
	}
	return nil
}

package playermigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating players table...")

		_, err := db.NewRaw(`
			CREATE TABLE IF NOT EXISTS players (
				id             uuid        PRIMARY KEY,
				username       text        NOT NULL,
				full_name      text        NOT NULL,
				initials       text        NOT NULL,
				alternate_name text        NULL,
				division_id    uuid        NULL REFERENCES divisions (id) ON DELETE SET NULL,
				created_at     timestamptz NOT NULL DEFAULT current_timestamp,
				updated_at     timestamptz NOT NULL DEFAULT current_timestamp
			)
		`).Exec(ctx)
		if err != nil {
			return err
		}

		_, err = db.NewRaw("CREATE INDEX IF NOT EXISTS idx_players_full_name ON players (full_name)").Exec(ctx)
		if err != nil {
			return err
		}

		fmt.Println("Players table created successfully!")
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping players table...")

		if _, err := db.NewRaw("DROP TABLE IF EXISTS players CASCADE").Exec(ctx); err != nil {
			return err
		}

		fmt.Println("Players table dropped successfully!")
		return nil
	})
}

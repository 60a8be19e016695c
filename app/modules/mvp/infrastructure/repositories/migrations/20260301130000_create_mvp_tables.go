package mvpmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating mvp_periods and mvp_entries tables...")

		_, err := db.NewRaw(`
			CREATE TABLE IF NOT EXISTS mvp_periods (
				id         uuid        PRIMARY KEY,
				name       text        NOT NULL,
				month      integer     NOT NULL CHECK (month BETWEEN 1 AND 12),
				year       integer     NOT NULL,
				created_at timestamptz NOT NULL DEFAULT current_timestamp,
				UNIQUE (month, year)
			)
		`).Exec(ctx)
		if err != nil {
			return err
		}

		_, err = db.NewRaw(`
			CREATE TABLE IF NOT EXISTS mvp_entries (
				id           uuid    PRIMARY KEY,
				period_id    uuid    NOT NULL REFERENCES mvp_periods (id) ON DELETE CASCADE,
				player_id    uuid    NOT NULL REFERENCES players (id) ON DELETE CASCADE,
				rank         integer NOT NULL DEFAULT 0,
				rating_gain  integer NOT NULL DEFAULT 0,
				events_count integer NOT NULL DEFAULT 0
			)
		`).Exec(ctx)
		if err != nil {
			return err
		}

		_, err = db.NewRaw("CREATE INDEX IF NOT EXISTS idx_mvp_entries_period_id ON mvp_entries (period_id)").Exec(ctx)
		if err != nil {
			return err
		}
		_, err = db.NewRaw("CREATE INDEX IF NOT EXISTS idx_mvp_entries_player_id ON mvp_entries (player_id)").Exec(ctx)
		if err != nil {
			return err
		}

		fmt.Println("MVP tables created successfully!")
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping mvp_entries and mvp_periods tables...")

		if _, err := db.NewRaw("DROP TABLE IF EXISTS mvp_entries").Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewRaw("DROP TABLE IF EXISTS mvp_periods").Exec(ctx); err != nil {
			return err
		}

		fmt.Println("MVP tables dropped successfully!")
		return nil
	})
}

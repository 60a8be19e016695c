package leaderboardmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating leaderboard_stats table...")

		_, err := db.NewRaw(`
			CREATE TABLE IF NOT EXISTS leaderboard_stats (
				id         uuid        PRIMARY KEY,
				player_id  uuid        NOT NULL REFERENCES players (id) ON DELETE CASCADE,
				rating     integer     NOT NULL DEFAULT 0,
				tier       text        NOT NULL DEFAULT '',
				rank       integer     NOT NULL DEFAULT 0,
				created_at timestamptz NOT NULL DEFAULT current_timestamp
			)
		`).Exec(ctx)
		if err != nil {
			return err
		}

		_, err = db.NewRaw("CREATE INDEX IF NOT EXISTS idx_leaderboard_stats_rank ON leaderboard_stats (rank, rating DESC)").Exec(ctx)
		if err != nil {
			return err
		}

		fmt.Println("Leaderboard stats table created successfully!")
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping leaderboard_stats table...")

		if _, err := db.NewRaw("DROP TABLE IF EXISTS leaderboard_stats").Exec(ctx); err != nil {
			return err
		}

		fmt.Println("Leaderboard stats table dropped successfully!")
		return nil
	})
}

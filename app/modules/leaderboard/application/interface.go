package leaderboardservice

import (
	"context"

	"github.com/DanielWijono/minton3t-ranking/app/modules/ingest/normalize"
)

// Service defines the leaderboard operations.
type Service interface {
	// SyncLeaderboard replaces every player and stat with the given batch.
	SyncLeaderboard(ctx context.Context, entries []normalize.Entry) (*SyncReport, error)

	// GetStandings returns the leaderboard, optionally filtered by query.
	GetStandings(ctx context.Context, query string) (*Standings, error)
}

package ingestservice

import (
	"context"

	"github.com/DanielWijono/minton3t-ranking/app/modules/ingest/normalize"
	leaderboardservice "github.com/DanielWijono/minton3t-ranking/app/modules/leaderboard/application"
	mvpservice "github.com/DanielWijono/minton3t-ranking/app/modules/mvp/application"
)

// Service drives uploads from raw file bytes to the store.
type Service interface {
	// Preview parses and normalizes data without touching the store.
	Preview(ctx context.Context, flow normalize.Flow, fileName string, data []byte) (*Preview, error)

	// SyncLeaderboard replaces the leaderboard with the file's rows.
	SyncLeaderboard(ctx context.Context, fileName string, data []byte) (*LeaderboardResult, error)

	// SyncMVP replaces the entries of (month, year) with the file's rows.
	SyncMVP(ctx context.Context, month, year int, fileName string, data []byte) (*MVPResult, error)
}

// LeaderboardSyncer is the part of the leaderboard service the orchestrator needs.
type LeaderboardSyncer interface {
	SyncLeaderboard(ctx context.Context, entries []normalize.Entry) (*leaderboardservice.SyncReport, error)
}

// MVPSyncer is the part of the MVP service the orchestrator needs.
type MVPSyncer interface {
	ValidatePeriod(month, year int) error
	SyncPeriod(ctx context.Context, month, year int, entries []normalize.Entry) (*mvpservice.SyncReport, error)
}

// Publisher publishes sync notifications.
type Publisher interface {
	PublishJSON(ctx context.Context, topic string, payload any) error
}

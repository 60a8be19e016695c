// Package events defines the topics and payloads published after a sync.
package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	// LeaderboardSyncedV1 is published after the leaderboard has been replaced.
	LeaderboardSyncedV1 = "leaderboard.synced.v1"
	// MVPPeriodSyncedV1 is published after a period's entries have been replaced.
	MVPPeriodSyncedV1 = "mvp.period.synced.v1"
)

// LeaderboardSyncedPayloadV1 is the payload of LeaderboardSyncedV1.
type LeaderboardSyncedPayloadV1 struct {
	FileName        string    `json:"file_name"`
	PlayersInserted int       `json:"players_inserted"`
	StatsInserted   int       `json:"stats_inserted"`
	Skipped         int       `json:"skipped"`
	SyncedAt        time.Time `json:"synced_at"`
}

// MVPPeriodSyncedPayloadV1 is the payload of MVPPeriodSyncedV1.
type MVPPeriodSyncedPayloadV1 struct {
	FileName        string    `json:"file_name"`
	PeriodID        uuid.UUID `json:"period_id"`
	Month           int       `json:"month"`
	Year            int       `json:"year"`
	PeriodCreated   bool      `json:"period_created"`
	EntriesInserted int       `json:"entries_inserted"`
	Failed          int       `json:"failed"`
	SyncedAt        time.Time `json:"synced_at"`
}

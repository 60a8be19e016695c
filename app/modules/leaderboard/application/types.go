package leaderboardservice

import "github.com/google/uuid"

// SyncReport summarises a leaderboard sync.
type SyncReport struct {
	PlayersDeleted  int64          `json:"playersDeleted"`
	PlayersInserted int            `json:"playersInserted"`
	StatsInserted   int            `json:"statsInserted"`
	Skipped         []SkippedEntry `json:"skipped,omitempty"`
	// DuplicateUsernames lists display names that occurred more than once. Their stats are
	// linked to the first player with that name.
	DuplicateUsernames []string `json:"duplicateUsernames,omitempty"`
}

// SkippedEntry is an entry that got no stat row.
type SkippedEntry struct {
	Line        int    `json:"line"`
	DisplayName string `json:"displayName"`
	Reason      string `json:"reason"`
}

// Standing is one row of the leaderboard read model.
type Standing struct {
	PlayerID    uuid.UUID `json:"playerId"`
	Rank        int       `json:"rank"`
	DisplayName string    `json:"displayName"`
	FullName    string    `json:"fullName"`
	Initials    string    `json:"initials"`
	Rating      int       `json:"rating"`
	Tier        string    `json:"tier"`
	TierColor   string    `json:"tierColor"`
}

// Standings is the leaderboard split into a podium and the rest. Podium is ordered
// 2nd, 1st, 3rd and is empty when a query is applied.
type Standings struct {
	Query  string     `json:"query,omitempty"`
	Podium []Standing `json:"podium"`
	Rest   []Standing `json:"rest"`
}

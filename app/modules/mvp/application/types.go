package mvpservice

import (
	mvpdb "github.com/DanielWijono/minton3t-ranking/app/modules/mvp/infrastructure/repositories"
	"github.com/google/uuid"
)

// SyncReport summarises an MVP sync. Entries listed in Failed have no entry row.
type SyncReport struct {
	PeriodID        uuid.UUID      `json:"periodId"`
	PeriodName      string         `json:"periodName"`
	PeriodCreated   bool           `json:"periodCreated"`
	EntriesDeleted  int64          `json:"entriesDeleted"`
	EntriesInserted int            `json:"entriesInserted"`
	PlayersCreated  int            `json:"playersCreated"`
	PlayersUpdated  int            `json:"playersUpdated"`
	Failed          []EntryFailure `json:"failed,omitempty"`
	// Duplicates lists names that occurred more than once in the batch. Later rows overwrite
	// the player's alternate name and division.
	Duplicates []string `json:"duplicates,omitempty"`
}

// EntryFailure describes one entry that could not be reconciled.
type EntryFailure struct {
	Line  int    `json:"line"`
	Name  string `json:"name"`
	Cause string `json:"cause"`
}

// PeriodEntry is one row of a period table.
type PeriodEntry struct {
	PlayerID      uuid.UUID `json:"playerId"`
	Rank          int       `json:"rank"`
	FullName      string    `json:"fullName"`
	AlternateName string    `json:"alternateName,omitempty"`
	Initials      string    `json:"initials"`
	Division      string    `json:"division,omitempty"`
	DivisionColor string    `json:"divisionColor"`
	RatingGain    int       `json:"ratingGain"`
	EventsCount   int       `json:"eventsCount"`
}

// PeriodView is a period with its entries ordered by rank.
type PeriodView struct {
	Period  mvpdb.Period  `json:"period"`
	Entries []PeriodEntry `json:"entries"`
}

// Mover is one row of the rank movement board.
type Mover struct {
	PeriodEntry
	Position      int    `json:"position"`
	PositionLabel string `json:"positionLabel"`
}

// RankMovement is the latest period ordered by rating gain. Period is nil when no period exists.
// Podium is ordered 2nd, 1st, 3rd and is empty when a query is applied.
type RankMovement struct {
	Period *mvpdb.Period `json:"period,omitempty"`
	Query  string        `json:"query,omitempty"`
	Podium []Mover       `json:"podium"`
	Rest   []Mover       `json:"rest"`
}

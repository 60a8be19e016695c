package mvpdb

import (
	"time"

	playerdb "github.com/DanielWijono/minton3t-ranking/app/modules/player/infrastructure/repositories"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Period is one month of MVP results. (Month, Year) is unique.
type Period struct {
	bun.BaseModel `bun:"table:mvp_periods,alias:mp"`

	ID        uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	Name      string    `bun:"name,notnull" json:"name"`
	Month     int       `bun:"month,notnull" json:"month"`
	Year      int       `bun:"year,notnull" json:"year"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"createdAt"`
}

// Entry links a player to a period.
type Entry struct {
	bun.BaseModel `bun:"table:mvp_entries,alias:me"`

	ID          uuid.UUID `bun:"id,pk,type:uuid"`
	PeriodID    uuid.UUID `bun:"period_id,type:uuid,notnull"`
	PlayerID    uuid.UUID `bun:"player_id,type:uuid,notnull"`
	Rank        int       `bun:"rank,notnull,default:0"`
	RatingGain  int       `bun:"rating_gain,notnull,default:0"`
	EventsCount int       `bun:"events_count,notnull,default:0"`

	Period *Period          `bun:"rel:belongs-to,join:period_id=id"`
	Player *playerdb.Player `bun:"rel:belongs-to,join:player_id=id"`
}

// EntryOrder selects how ListEntries sorts a period.
type EntryOrder int

const (
	// OrderByRank sorts by declared rank ascending.
	OrderByRank EntryOrder = iota
	// OrderByRatingGain sorts by rating gain descending.
	OrderByRatingGain
)

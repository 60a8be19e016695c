package leaderboarddb

import (
	"time"

	playerdb "github.com/DanielWijono/minton3t-ranking/app/modules/player/infrastructure/repositories"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Stat is one leaderboard row. Rank is the position declared by the uploaded sheet, not one
// computed from Rating.
type Stat struct {
	bun.BaseModel `bun:"table:leaderboard_stats,alias:ls"`

	ID        uuid.UUID `bun:"id,pk,type:uuid"`
	PlayerID  uuid.UUID `bun:"player_id,type:uuid,notnull"`
	Rating    int       `bun:"rating,notnull,default:0"`
	Tier      string    `bun:"tier,notnull,default:''"`
	Rank      int       `bun:"rank,notnull,default:0"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`

	Player *playerdb.Player `bun:"rel:belongs-to,join:player_id=id"`
}

package mvpservice

import (
	"context"

	"github.com/DanielWijono/minton3t-ranking/app/modules/ingest/normalize"
	mvpdb "github.com/DanielWijono/minton3t-ranking/app/modules/mvp/infrastructure/repositories"
	playerdb "github.com/DanielWijono/minton3t-ranking/app/modules/player/infrastructure/repositories"
	"github.com/google/uuid"
)

// Service defines the MVP operations.
type Service interface {
	// SyncPeriod replaces the entries of (month, year), reconciling each entry's player by full
	// name. Per-entry failures are reported, not returned.
	SyncPeriod(ctx context.Context, month, year int, entries []normalize.Entry) (*SyncReport, error)

	// ValidatePeriod checks month and year without touching the store.
	ValidatePeriod(month, year int) error

	ListPeriods(ctx context.Context) ([]mvpdb.Period, error)
	// InvalidatePeriods drops the cached period list.
	InvalidatePeriods()
	PeriodEntries(ctx context.Context, periodID uuid.UUID) (*PeriodView, error)
	RankMovement(ctx context.Context, query string) (*RankMovement, error)
	ListDivisions(ctx context.Context) ([]playerdb.Division, error)
	// PlayerChart renders the player's rating gain across periods as a PNG.
	PlayerChart(ctx context.Context, playerID uuid.UUID) ([]byte, error)
}

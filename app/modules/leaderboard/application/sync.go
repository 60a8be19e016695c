package leaderboardservice

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/DanielWijono/minton3t-ranking/app/modules/ingest/normalize"
	leaderboarddb "github.com/DanielWijono/minton3t-ranking/app/modules/leaderboard/infrastructure/repositories"
	playerdb "github.com/DanielWijono/minton3t-ranking/app/modules/player/infrastructure/repositories"
	"github.com/DanielWijono/minton3t-ranking/app/shared/operation"
	"github.com/DanielWijono/minton3t-ranking/app/shared/results"
	"github.com/DanielWijono/minton3t-ranking/app/shared/syncerr"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type syncResult = results.OperationResult[SyncReport, error]

// SyncLeaderboard deletes every player (stats and MVP entries cascade), inserts one player per
// entry and then one stat per entry linked by username. The steps share one transaction, so a
// failure leaves the previous leaderboard in place.
func (s *LeaderboardService) SyncLeaderboard(ctx context.Context, entries []normalize.Entry) (*SyncReport, error) {
	if len(entries) == 0 {
		return nil, syncerr.ErrEmptyBatch
	}

	result, err := operation.WithTelemetry(s.runner, ctx, "SyncLeaderboard", strconv.Itoa(len(entries)), func(ctx context.Context) (syncResult, error) {
		return operation.RunInTx(s.runner, ctx, func(ctx context.Context, db bun.IDB) (syncResult, error) {
			return s.syncLeaderboardLogic(ctx, db, entries)
		})
	})
	if err != nil {
		s.metrics.RecordRows(ctx, string(normalize.FlowLeaderboard), "failed", len(entries))
		return nil, err
	}
	if result.IsFailure() {
		return nil, *result.Failure
	}

	report := result.Success
	s.metrics.RecordRows(ctx, string(normalize.FlowLeaderboard), "written", report.StatsInserted)
	s.metrics.RecordRows(ctx, string(normalize.FlowLeaderboard), "skipped", len(report.Skipped))
	return report, nil
}

func (s *LeaderboardService) syncLeaderboardLogic(ctx context.Context, db bun.IDB, entries []normalize.Entry) (syncResult, error) {
	divisions, err := s.players.ListDivisions(ctx, db)
	if err != nil {
		return syncResult{}, syncerr.StoreWrite("list divisions", err)
	}
	divisionIDs := make(map[string]uuid.UUID, len(divisions))
	for _, d := range divisions {
		divisionIDs[normalize.Category(d.Name)] = d.ID
	}

	deleted, err := s.players.DeleteAll(ctx, db)
	if err != nil {
		return syncResult{}, syncerr.StoreWrite("delete players", err)
	}

	players := make([]*playerdb.Player, 0, len(entries))
	for _, e := range entries {
		p := &playerdb.Player{
			Username: e.DisplayName,
			FullName: e.FullName,
			Initials: e.Initials,
		}
		if id, ok := divisionIDs[e.Category]; ok {
			p.DivisionID = &id
		}
		players = append(players, p)
	}
	if err := s.players.InsertBatch(ctx, db, players); err != nil {
		return syncResult{}, syncerr.StoreWrite("insert players", err)
	}

	report := SyncReport{PlayersDeleted: deleted, PlayersInserted: len(players)}

	byUsername := make(map[string]uuid.UUID, len(players))
	for _, p := range players {
		if _, seen := byUsername[p.Username]; seen {
			report.DuplicateUsernames = append(report.DuplicateUsernames, p.Username)
			continue
		}
		if p.ID != uuid.Nil {
			byUsername[p.Username] = p.ID
		}
	}

	stats := make([]*leaderboarddb.Stat, 0, len(entries))
	for _, e := range entries {
		id, ok := byUsername[e.DisplayName]
		if !ok {
			report.Skipped = append(report.Skipped, SkippedEntry{
				Line:        e.Line,
				DisplayName: e.DisplayName,
				Reason:      "no inserted player matches username",
			})
			s.logger.WarnContext(ctx, "Skipping leaderboard entry without player",
				slog.Int("line", e.Line),
				slog.String("display_name", e.DisplayName),
			)
			continue
		}
		stats = append(stats, &leaderboarddb.Stat{
			PlayerID: id,
			Rating:   e.Metric,
			Tier:     e.Category,
			Rank:     e.Rank,
		})
	}

	if err := s.stats.InsertBatch(ctx, db, stats); err != nil {
		return syncResult{}, syncerr.StoreWrite("insert stats", err)
	}
	report.StatsInserted = len(stats)

	s.logger.InfoContext(ctx, "Leaderboard replaced",
		slog.Int64("players_deleted", deleted),
		slog.Int("players_inserted", report.PlayersInserted),
		slog.Int("stats_inserted", report.StatsInserted),
		slog.Int("skipped", len(report.Skipped)),
	)

	return results.SuccessResult[SyncReport, error](report), nil
}

func (r SyncReport) String() string {
	return fmt.Sprintf("deleted=%d inserted=%d stats=%d skipped=%d",
		r.PlayersDeleted, r.PlayersInserted, r.StatsInserted, len(r.Skipped))
}

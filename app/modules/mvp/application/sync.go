package mvpservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/DanielWijono/minton3t-ranking/app/modules/ingest/normalize"
	mvpdb "github.com/DanielWijono/minton3t-ranking/app/modules/mvp/infrastructure/repositories"
	playerdb "github.com/DanielWijono/minton3t-ranking/app/modules/player/infrastructure/repositories"
	"github.com/DanielWijono/minton3t-ranking/app/shared/operation"
	"github.com/DanielWijono/minton3t-ranking/app/shared/results"
	"github.com/DanielWijono/minton3t-ranking/app/shared/syncerr"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type syncResult = results.OperationResult[SyncReport, error]

// PeriodName renders "January 2026".
func PeriodName(month, year int) string {
	return fmt.Sprintf("%s %d", time.Month(month).String(), year)
}

// PeriodKey identifies a period in logs and busy guards: "2026-01".
func PeriodKey(month, year int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}

// ValidatePeriod rejects months outside 1..12 and, when allowed years are configured, any
// other year.
func (s *MVPService) ValidatePeriod(month, year int) error {
	if month < 1 || month > 12 {
		return fmt.Errorf("%w: month %d is not between 1 and 12", syncerr.ErrInvalidPeriod, month)
	}
	if year < 1 {
		return fmt.Errorf("%w: year %d", syncerr.ErrInvalidPeriod, year)
	}
	if len(s.allowedYears) > 0 && !s.allowedYears[year] {
		return fmt.Errorf("%w: year %d is not accepted", syncerr.ErrInvalidPeriod, year)
	}
	return nil
}

// SyncPeriod finds or creates the period, deletes its entries and reinserts one entry per
// batch row. Each row's player is matched on full_name equal to the row's display name:
// a match has its alternate name and division overwritten, otherwise a player is created.
// Rows run in their own savepoint so a failing row is rolled back and reported while the rest
// of the batch commits.
func (s *MVPService) SyncPeriod(ctx context.Context, month, year int, entries []normalize.Entry) (*SyncReport, error) {
	if len(entries) == 0 {
		return nil, syncerr.ErrEmptyBatch
	}
	if err := s.ValidatePeriod(month, year); err != nil {
		return nil, err
	}

	result, err := operation.WithTelemetry(s.runner, ctx, "SyncPeriod", PeriodKey(month, year), func(ctx context.Context) (syncResult, error) {
		return operation.RunInTx(s.runner, ctx, func(ctx context.Context, db bun.IDB) (syncResult, error) {
			return s.syncPeriodLogic(ctx, db, month, year, entries)
		})
	})
	if err != nil {
		s.metrics.RecordRows(ctx, string(normalize.FlowMVP), "failed", len(entries))
		return nil, err
	}
	if result.IsFailure() {
		return nil, *result.Failure
	}

	report := result.Success
	s.InvalidatePeriods()
	s.metrics.RecordRows(ctx, string(normalize.FlowMVP), "written", report.EntriesInserted)
	s.metrics.RecordRows(ctx, string(normalize.FlowMVP), "failed", len(report.Failed))
	return report, nil
}

func (s *MVPService) syncPeriodLogic(ctx context.Context, db bun.IDB, month, year int, entries []normalize.Entry) (syncResult, error) {
	report := SyncReport{PeriodName: PeriodName(month, year)}

	period, err := s.repo.GetPeriod(ctx, db, month, year)
	switch {
	case errors.Is(err, mvpdb.ErrNotFound):
		period = &mvpdb.Period{Name: report.PeriodName, Month: month, Year: year}
		if err := s.repo.CreatePeriod(ctx, db, period); err != nil {
			return syncResult{}, syncerr.StoreWrite("create period", err)
		}
		report.PeriodCreated = true
	case err != nil:
		return syncResult{}, syncerr.StoreWrite("find period", err)
	default:
		deleted, err := s.repo.DeleteEntries(ctx, db, period.ID)
		if err != nil {
			return syncResult{}, syncerr.StoreWrite("delete entries", err)
		}
		report.EntriesDeleted = deleted
	}
	report.PeriodID = period.ID

	divisions, err := s.players.ListDivisions(ctx, db)
	if err != nil {
		return syncResult{}, syncerr.StoreWrite("list divisions", err)
	}
	divisionIDs := make(map[string]uuid.UUID, len(divisions))
	for _, d := range divisions {
		divisionIDs[normalize.Category(d.Name)] = d.ID
	}

	// Players resolved earlier in this batch, keyed by name.
	resolved := make(map[string]uuid.UUID, len(entries))

	for _, e := range entries {
		var (
			playerID uuid.UUID
			created  bool
		)
		err := operation.Savepoint(ctx, db, func(ctx context.Context, db bun.IDB) error {
			var err error
			playerID, created, err = s.resolvePlayer(ctx, db, e, divisionIDs, resolved)
			if err != nil {
				return err
			}
			entry := &mvpdb.Entry{
				PeriodID:    period.ID,
				PlayerID:    playerID,
				Rank:        e.Rank,
				RatingGain:  e.Metric,
				EventsCount: e.Events,
			}
			if err := s.repo.InsertEntry(ctx, db, entry); err != nil {
				return fmt.Errorf("insert entry: %w", err)
			}
			return nil
		})
		if err != nil {
			report.Failed = append(report.Failed, EntryFailure{Line: e.Line, Name: e.DisplayName, Cause: err.Error()})
			s.logger.WarnContext(ctx, "MVP entry not reconciled",
				slog.Int("line", e.Line),
				slog.String("name", e.DisplayName),
				slog.Any("error", err),
			)
			continue
		}

		if _, seen := resolved[e.DisplayName]; seen {
			report.Duplicates = append(report.Duplicates, e.DisplayName)
		}
		resolved[e.DisplayName] = playerID
		if created {
			report.PlayersCreated++
		} else {
			report.PlayersUpdated++
		}
		report.EntriesInserted++
	}

	s.logger.InfoContext(ctx, "MVP period replaced",
		slog.String("period", report.PeriodName),
		slog.Bool("period_created", report.PeriodCreated),
		slog.Int64("entries_deleted", report.EntriesDeleted),
		slog.Int("entries_inserted", report.EntriesInserted),
		slog.Int("players_created", report.PlayersCreated),
		slog.Int("players_updated", report.PlayersUpdated),
		slog.Int("failed", len(report.Failed)),
	)

	return results.SuccessResult[SyncReport, error](report), nil
}

// resolvePlayer returns the identifier of the player for e, creating or updating it.
func (s *MVPService) resolvePlayer(
	ctx context.Context,
	db bun.IDB,
	e normalize.Entry,
	divisionIDs map[string]uuid.UUID,
	resolved map[string]uuid.UUID,
) (uuid.UUID, bool, error) {
	if e.DisplayName == "" {
		return uuid.Nil, false, ErrEmptyName
	}

	update := playerdb.ProfileUpdate{}
	if e.FullName != "" {
		alt := e.FullName
		update.AlternateName = &alt
	}
	if id, ok := divisionIDs[e.Category]; ok {
		update.DivisionID = &id
	}

	id, ok := resolved[e.DisplayName]
	if !ok {
		existing, err := s.players.GetByFullName(ctx, db, e.DisplayName)
		switch {
		case errors.Is(err, playerdb.ErrNotFound):
			player := &playerdb.Player{
				Username:      normalize.Handle(e.DisplayName),
				FullName:      e.DisplayName,
				Initials:      e.Initials,
				AlternateName: update.AlternateName,
				DivisionID:    update.DivisionID,
			}
			if err := s.players.Insert(ctx, db, player); err != nil {
				return uuid.Nil, false, fmt.Errorf("create player: %w", err)
			}
			return player.ID, true, nil
		case err != nil:
			return uuid.Nil, false, fmt.Errorf("find player: %w", err)
		}
		id = existing.ID
	}

	if err := s.players.UpdateProfile(ctx, db, id, update); err != nil {
		return uuid.Nil, false, fmt.Errorf("update player: %w", err)
	}
	return id, false, nil
}

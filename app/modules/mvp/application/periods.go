package mvpservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/DanielWijono/minton3t-ranking/app/modules/ingest/normalize"
	mvpdb "github.com/DanielWijono/minton3t-ranking/app/modules/mvp/infrastructure/repositories"
	playerdb "github.com/DanielWijono/minton3t-ranking/app/modules/player/infrastructure/repositories"
	"github.com/DanielWijono/minton3t-ranking/app/shared/operation"
	"github.com/DanielWijono/minton3t-ranking/app/shared/results"
	"github.com/google/uuid"
)

type (
	periodsResult   = results.OperationResult[[]mvpdb.Period, error]
	periodResult    = results.OperationResult[PeriodView, error]
	divisionsResult = results.OperationResult[[]playerdb.Division, error]
)

// ListPeriods returns every period, newest first. The list is cached until InvalidatePeriods
// is called or the cache expires.
func (s *MVPService) ListPeriods(ctx context.Context) ([]mvpdb.Period, error) {
	cached, gen, ok := s.cachedPeriods()
	if ok {
		return cached, nil
	}

	result, err := operation.WithTelemetry(s.runner, ctx, "ListPeriods", "", func(ctx context.Context) (periodsResult, error) {
		periods, err := s.repo.ListPeriods(ctx, nil)
		if err != nil {
			return periodsResult{}, fmt.Errorf("failed to list periods: %w", err)
		}
		return results.SuccessResult[[]mvpdb.Period, error](periods), nil
	})
	if err != nil {
		return nil, err
	}

	periods := *result.Success
	s.cacheMu.Lock()
	if s.cacheGen == gen {
		s.periods = periods
		s.cachedAt = s.now()
	}
	s.cacheMu.Unlock()
	return append([]mvpdb.Period(nil), periods...), nil
}

// InvalidatePeriods drops the cached period list.
func (s *MVPService) InvalidatePeriods() {
	s.cacheMu.Lock()
	s.periods = nil
	s.cachedAt = time.Time{}
	s.cacheGen++
	s.cacheMu.Unlock()
}

// cachedPeriods returns the cached list when it is fresh, and the current generation either way.
func (s *MVPService) cachedPeriods() ([]mvpdb.Period, uint64, bool) {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	if s.cachedAt.IsZero() || s.now().Sub(s.cachedAt) > periodCacheTTL {
		return nil, s.cacheGen, false
	}
	return append([]mvpdb.Period(nil), s.periods...), s.cacheGen, true
}

// PeriodEntries returns a period and its entries ordered by rank.
func (s *MVPService) PeriodEntries(ctx context.Context, periodID uuid.UUID) (*PeriodView, error) {
	result, err := operation.WithTelemetry(s.runner, ctx, "PeriodEntries", periodID.String(), func(ctx context.Context) (periodResult, error) {
		period, err := s.repo.GetPeriodByID(ctx, nil, periodID)
		if err != nil {
			if errors.Is(err, mvpdb.ErrNotFound) {
				return results.FailureResult[PeriodView, error](ErrPeriodNotFound), nil
			}
			return periodResult{}, fmt.Errorf("failed to get period: %w", err)
		}
		entries, err := s.repo.ListEntries(ctx, nil, periodID, mvpdb.OrderByRank)
		if err != nil {
			return periodResult{}, fmt.Errorf("failed to list entries: %w", err)
		}
		view := PeriodView{Period: *period, Entries: make([]PeriodEntry, 0, len(entries))}
		for _, e := range entries {
			view.Entries = append(view.Entries, toPeriodEntry(e))
		}
		return results.SuccessResult[PeriodView, error](view), nil
	})
	if err != nil {
		return nil, err
	}
	if result.IsFailure() {
		return nil, *result.Failure
	}
	return result.Success, nil
}

// ListDivisions returns every division.
func (s *MVPService) ListDivisions(ctx context.Context) ([]playerdb.Division, error) {
	result, err := operation.WithTelemetry(s.runner, ctx, "ListDivisions", "", func(ctx context.Context) (divisionsResult, error) {
		divisions, err := s.players.ListDivisions(ctx, nil)
		if err != nil {
			return divisionsResult{}, fmt.Errorf("failed to list divisions: %w", err)
		}
		return results.SuccessResult[[]playerdb.Division, error](divisions), nil
	})
	if err != nil {
		return nil, err
	}
	return *result.Success, nil
}

func toPeriodEntry(e mvpdb.Entry) PeriodEntry {
	row := PeriodEntry{
		PlayerID:      e.PlayerID,
		Rank:          e.Rank,
		RatingGain:    e.RatingGain,
		EventsCount:   e.EventsCount,
		DivisionColor: DefaultDivisionColor,
	}
	if p := e.Player; p != nil {
		row.FullName = p.FullName
		row.Initials = p.Initials
		if p.AlternateName != nil {
			row.AlternateName = *p.AlternateName
		}
		if p.Division != nil {
			row.Division = p.Division.Name
			if p.Division.Color != "" {
				row.DivisionColor = p.Division.Color
			}
		}
	}
	if row.Initials == "" {
		row.Initials = fallbackInitials(row.FullName)
	}
	return row
}

// fallbackInitials derives initials for players stored without them.
func fallbackInitials(fullName string) string {
	if in := normalize.Initials(fullName); in != "" {
		return in
	}
	return "XX"
}

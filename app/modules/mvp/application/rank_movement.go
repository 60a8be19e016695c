package mvpservice

import (
	"context"
	"errors"
	"fmt"
	"strings"

	mvpdb "github.com/DanielWijono/minton3t-ranking/app/modules/mvp/infrastructure/repositories"
	"github.com/DanielWijono/minton3t-ranking/app/shared/operation"
	"github.com/DanielWijono/minton3t-ranking/app/shared/podium"
	"github.com/DanielWijono/minton3t-ranking/app/shared/results"
)

type movementResult = results.OperationResult[RankMovement, error]

// RankMovement ranks the latest period's entries by rating gain. Positions come from that
// order, not from the sheet's rank column. Players without a division show DefaultDivision.
func (s *MVPService) RankMovement(ctx context.Context, query string) (*RankMovement, error) {
	query = strings.TrimSpace(query)

	result, err := operation.WithTelemetry(s.runner, ctx, "RankMovement", query, func(ctx context.Context) (movementResult, error) {
		period, err := s.repo.LatestPeriod(ctx, nil)
		if err != nil {
			if errors.Is(err, mvpdb.ErrNotFound) {
				return results.SuccessResult[RankMovement, error](RankMovement{Query: query, Podium: []Mover{}, Rest: []Mover{}}), nil
			}
			return movementResult{}, fmt.Errorf("failed to get latest period: %w", err)
		}

		entries, err := s.repo.ListEntries(ctx, nil, period.ID, mvpdb.OrderByRatingGain)
		if err != nil {
			return movementResult{}, fmt.Errorf("failed to list entries: %w", err)
		}

		movers := make([]Mover, 0, len(entries))
		for i, e := range entries {
			row := toPeriodEntry(e)
			if row.Division == "" {
				row.Division = DefaultDivision
			}
			movers = append(movers, Mover{
				PeriodEntry:   row,
				Position:      i + 1,
				PositionLabel: podium.Label(i + 1),
			})
		}

		board := RankMovement{Period: period, Query: query}
		if query != "" {
			board.Podium = []Mover{}
			board.Rest = filterMovers(movers, query)
		} else {
			board.Podium, board.Rest = podium.Split(movers)
		}
		return results.SuccessResult[RankMovement, error](board), nil
	})
	if err != nil {
		return nil, err
	}
	return result.Success, nil
}

func filterMovers(movers []Mover, query string) []Mover {
	q := strings.ToLower(query)
	out := []Mover{}
	for _, m := range movers {
		if strings.Contains(strings.ToLower(m.FullName), q) ||
			strings.Contains(strings.ToLower(m.AlternateName), q) ||
			strings.Contains(strings.ToLower(m.Division), q) {
			out = append(out, m)
		}
	}
	return out
}

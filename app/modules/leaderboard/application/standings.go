package leaderboardservice

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/DanielWijono/minton3t-ranking/app/modules/ingest/normalize"
	leaderboarddb "github.com/DanielWijono/minton3t-ranking/app/modules/leaderboard/infrastructure/repositories"
	"github.com/DanielWijono/minton3t-ranking/app/shared/operation"
	"github.com/DanielWijono/minton3t-ranking/app/shared/podium"
	"github.com/DanielWijono/minton3t-ranking/app/shared/results"
	"github.com/uptrace/bun"
)

// DefaultTierColor is used for tiers without a division row.
const DefaultTierColor = "#ffffff"

type standingsResult = results.OperationResult[Standings, error]

// GetStandings returns the leaderboard ordered by declared rank. Entries with no rank (0) sort
// last. Without a query the top three form the podium.
func (s *LeaderboardService) GetStandings(ctx context.Context, query string) (*Standings, error) {
	query = strings.TrimSpace(query)

	result, err := operation.WithTelemetry(s.runner, ctx, "GetStandings", query, func(ctx context.Context) (standingsResult, error) {
		return s.getStandingsLogic(ctx, nil, query)
	})
	if err != nil {
		return nil, err
	}
	if result.IsFailure() {
		return nil, *result.Failure
	}
	return result.Success, nil
}

func (s *LeaderboardService) getStandingsLogic(ctx context.Context, db bun.IDB, query string) (standingsResult, error) {
	stats, err := s.stats.ListStandings(ctx, db)
	if err != nil {
		return standingsResult{}, fmt.Errorf("failed to list standings: %w", err)
	}
	divisions, err := s.players.ListDivisions(ctx, db)
	if err != nil {
		return standingsResult{}, fmt.Errorf("failed to list divisions: %w", err)
	}
	colors := make(map[string]string, len(divisions))
	for _, d := range divisions {
		colors[normalize.Category(d.Name)] = d.Color
	}

	rows := make([]Standing, 0, len(stats))
	for _, st := range stats {
		rows = append(rows, toStanding(st, colors))
	}
	sort.SliceStable(rows, func(i, j int) bool {
		ri, rj := rows[i].Rank, rows[j].Rank
		if (ri == 0) != (rj == 0) {
			return rj == 0
		}
		return ri < rj
	})

	if query != "" {
		return results.SuccessResult[Standings, error](Standings{
			Query:  query,
			Podium: []Standing{},
			Rest:   filter(rows, query),
		}), nil
	}

	top, rest := podium.Split(rows)
	return results.SuccessResult[Standings, error](Standings{Podium: top, Rest: rest}), nil
}

func toStanding(st leaderboarddb.Stat, colors map[string]string) Standing {
	row := Standing{
		PlayerID:  st.PlayerID,
		Rank:      st.Rank,
		Rating:    st.Rating,
		Tier:      st.Tier,
		TierColor: DefaultTierColor,
	}
	if c, ok := colors[normalize.Category(st.Tier)]; ok {
		row.TierColor = c
	}
	if st.Player != nil {
		row.DisplayName = st.Player.Username
		row.FullName = st.Player.FullName
		row.Initials = st.Player.Initials
	}
	return row
}

func filter(rows []Standing, query string) []Standing {
	q := strings.ToLower(query)
	out := []Standing{}
	for _, r := range rows {
		if strings.Contains(strings.ToLower(r.DisplayName), q) ||
			strings.Contains(strings.ToLower(r.FullName), q) ||
			strings.Contains(strings.ToLower(r.Tier), q) {
			out = append(out, r)
		}
	}
	return out
}

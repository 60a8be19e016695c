package leaderboardservice

import (
	"context"
	"errors"
	"testing"

	"github.com/DanielWijono/minton3t-ranking/app/modules/ingest/normalize"
	leaderboarddb "github.com/DanielWijono/minton3t-ranking/app/modules/leaderboard/infrastructure/repositories"
	playerdb "github.com/DanielWijono/minton3t-ranking/app/modules/player/infrastructure/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

func TestLeaderboardService_GetStandings(t *testing.T) {
	entries := append(sampleEntries(),
		normalize.Entry{Line: 5, DisplayName: "Yosam", FullName: "Yohanes Samuel", Initials: "YO", Metric: 1169, Category: "GOLDEN FALCON", Rank: 6},
		normalize.Entry{Line: 6, DisplayName: "Unranked", FullName: "Unranked", Initials: "UN", Metric: 1000, Category: "BRONZE MERLIN"},
	)

	players := playerdb.NewFakeRepository(playerdb.DefaultDivisions()...)
	stats := leaderboarddb.NewFakeRepository(players)
	svc := newTestService(players, stats)
	ctx := context.Background()
	_, err := svc.SyncLeaderboard(ctx, entries)
	require.NoError(t, err)

	t.Run("podium and rest", func(t *testing.T) {
		got, err := svc.GetStandings(ctx, "")
		require.NoError(t, err)

		require.Len(t, got.Podium, 3)
		assert.Equal(t, "Brian Alexander", got.Podium[0].DisplayName)
		assert.Equal(t, "Miko", got.Podium[1].DisplayName)
		assert.Equal(t, "Yosam", got.Podium[2].DisplayName)
		assert.Equal(t, "#d4a853", got.Podium[1].TierColor)

		require.Len(t, got.Rest, 2)
		assert.Equal(t, "HerKu (rovo)", got.Rest[0].DisplayName)
		assert.Equal(t, "#8a9bb3", got.Rest[0].TierColor)
		assert.Equal(t, "Unranked", got.Rest[1].DisplayName)
		assert.Equal(t, DefaultTierColor, got.Rest[1].TierColor)
	})

	t.Run("search filters without podium", func(t *testing.T) {
		got, err := svc.GetStandings(ctx, "  falcon ")
		require.NoError(t, err)

		assert.Equal(t, "falcon", got.Query)
		assert.Empty(t, got.Podium)
		require.Len(t, got.Rest, 2)
		assert.Equal(t, "Miko", got.Rest[0].DisplayName)
		assert.Equal(t, "Yosam", got.Rest[1].DisplayName)
	})

	t.Run("search matches full name", func(t *testing.T) {
		got, err := svc.GetStandings(ctx, "kuhuela")
		require.NoError(t, err)
		require.Len(t, got.Rest, 1)
		assert.Equal(t, "HR", got.Rest[0].Initials)
	})
}

func TestLeaderboardService_GetStandings_RepoError(t *testing.T) {
	players := playerdb.NewFakeRepository()
	stats := leaderboarddb.NewFakeRepository(players)
	stats.ListStandingsFn = func(context.Context, bun.IDB) ([]leaderboarddb.Stat, error) {
		return nil, errors.New("timeout")
	}
	svc := newTestService(players, stats)

	_, err := svc.GetStandings(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GetStandings")
}

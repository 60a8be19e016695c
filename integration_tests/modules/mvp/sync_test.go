//go:build integration

package mvpintegrationtests

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"testing"

	ingestservice "github.com/DanielWijono/minton3t-ranking/app/modules/ingest/application"
	"github.com/DanielWijono/minton3t-ranking/app/modules/ingest/normalize"
	"github.com/DanielWijono/minton3t-ranking/app/modules/ingest/parsers"
	leaderboardservice "github.com/DanielWijono/minton3t-ranking/app/modules/leaderboard/application"
	mvpservice "github.com/DanielWijono/minton3t-ranking/app/modules/mvp/application"
	mvpdb "github.com/DanielWijono/minton3t-ranking/app/modules/mvp/infrastructure/repositories"
	"github.com/DanielWijono/minton3t-ranking/integration_tests/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

type services struct {
	leaderboard *leaderboardservice.LeaderboardService
	mvp         *mvpservice.MVPService
	ingest      *ingestservice.IngestService
}

func newServices() services {
	db := testEnv.DBService
	logger := testEnv.Observability.Logger
	lb := leaderboardservice.NewLeaderboardService(db.Players, db.Leaderboard, logger, nil, nil, db.GetDB())
	mvp := mvpservice.NewMVPService(db.Players, db.MVP, logger, nil, nil, db.GetDB())
	return services{
		leaderboard: lb,
		mvp:         mvp,
		ingest:      ingestservice.NewIngestService(nil, lb, mvp, nil, logger, nil, nil),
	}
}

func mvpCSV(t *testing.T, rows []testutils.MVPRow) []byte {
	t.Helper()
	data, err := testutils.MVPCSV(rows)
	require.NoError(t, err)
	return data
}

func TestSyncMVP_CreatesPlayersAndPeriod(t *testing.T) {
	testEnv.Reset(t)
	gen := testutils.NewTestDataGenerator(11)
	rows := gen.GenerateMVPRows(5)
	svc := newServices()

	res, err := svc.ingest.SyncMVP(testEnv.Ctx, 4, 2026, "april.csv", mvpCSV(t, rows))
	require.NoError(t, err)

	report := res.Report
	assert.True(t, report.PeriodCreated)
	assert.Equal(t, "April 2026", report.PeriodName)
	assert.Equal(t, 5, report.PlayersCreated)
	assert.Zero(t, report.PlayersUpdated)
	assert.Equal(t, 5, report.EntriesInserted)
	assert.Empty(t, report.Failed)

	for _, row := range rows {
		p, err := testutils.PlayerByFullName(testEnv.Ctx, testEnv.DB, row.FullName)
		require.NoError(t, err, "player %q", row.FullName)
		assert.Equal(t, normalize.Handle(row.FullName), p.Username)
		require.NotNil(t, p.AlternateName)
		assert.Equal(t, row.Alternate, *p.AlternateName)
		require.NotNil(t, p.Division)
		assert.Equal(t, row.Division, p.Division.Name)
	}

	entries, err := testutils.EntriesForPeriod(testEnv.Ctx, testEnv.DB, report.PeriodID)
	require.NoError(t, err)
	require.Len(t, entries, 5)
	for i, e := range entries {
		assert.Equal(t, rows[i].No, e.Rank)
		assert.Equal(t, rows[i].RatingGain, e.RatingGain)
		assert.Equal(t, rows[i].Events, e.EventsCount)
	}
}

func TestSyncMVP_ReconcilesLeaderboardPlayers(t *testing.T) {
	testEnv.Reset(t)
	gen := testutils.NewTestDataGenerator(12)
	svc := newServices()

	lbRows := gen.GenerateLeaderboardRows(4)
	lbData, err := testutils.LeaderboardCSV(lbRows)
	require.NoError(t, err)
	_, err = svc.ingest.SyncLeaderboard(testEnv.Ctx, "leaderboard.csv", lbData)
	require.NoError(t, err)

	mvpRows := gen.MVPRowsFor(lbRows)
	mvpRows[0].Division = "GOLDEN FALCON"
	res, err := svc.ingest.SyncMVP(testEnv.Ctx, 5, 2026, "may.csv", mvpCSV(t, mvpRows))
	require.NoError(t, err)
	assert.Zero(t, res.Report.PlayersCreated)
	assert.Equal(t, 4, res.Report.PlayersUpdated)

	players, err := testutils.CountRows(testEnv.Ctx, testEnv.DB, "players")
	require.NoError(t, err)
	assert.Equal(t, 4, players)

	p, err := testutils.PlayerByFullName(testEnv.Ctx, testEnv.DB, lbRows[0].FullName)
	require.NoError(t, err)
	require.NotNil(t, p.Division)
	assert.Equal(t, "GOLDEN FALCON", p.Division.Name)
	assert.Equal(t, lbRows[0].Handle, p.Username)
}

func TestSyncMVP_ResyncReplacesEntries(t *testing.T) {
	testEnv.Reset(t)
	gen := testutils.NewTestDataGenerator(13)
	svc := newServices()

	first, err := svc.ingest.SyncMVP(testEnv.Ctx, 6, 2026, "june.csv", mvpCSV(t, gen.GenerateMVPRows(6)))
	require.NoError(t, err)

	secondRows := gen.GenerateMVPRows(2)
	second, err := svc.ingest.SyncMVP(testEnv.Ctx, 6, 2026, "june-fixed.csv", mvpCSV(t, secondRows))
	require.NoError(t, err)

	assert.False(t, second.Report.PeriodCreated)
	assert.Equal(t, first.Report.PeriodID, second.Report.PeriodID)
	assert.EqualValues(t, 6, second.Report.EntriesDeleted)
	assert.Equal(t, 2, second.Report.EntriesInserted)

	entries, err := testutils.EntriesForPeriod(testEnv.Ctx, testEnv.DB, second.Report.PeriodID)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	periods, err := testutils.CountRows(testEnv.Ctx, testEnv.DB, "mvp_periods")
	require.NoError(t, err)
	assert.Equal(t, 1, periods)
}

func TestSyncMVP_XLSX(t *testing.T) {
	testEnv.Reset(t)
	gen := testutils.NewTestDataGenerator(14)
	rows := gen.GenerateMVPRows(3)
	data, err := testutils.MVPXLSX(rows)
	require.NoError(t, err)

	res, err := newServices().ingest.SyncMVP(testEnv.Ctx, 7, 2026, "july.xlsx", data)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Report.EntriesInserted)
	assert.Empty(t, res.Notes)
}

func TestSyncMVP_EmptyNameFailsOnlyThatEntry(t *testing.T) {
	testEnv.Reset(t)
	gen := testutils.NewTestDataGenerator(15)
	rows := gen.GenerateMVPRows(3)
	rows[1].FullName = ""
	rows[1].Alternate = ""

	raw, err := parsers.Parse(parsers.NewFactory(), "mvp.csv", mvpCSV(t, rows))
	require.NoError(t, err)
	entries, _ := normalize.Batch(normalize.FlowMVP, raw)

	report, err := newServices().mvp.SyncPeriod(testEnv.Ctx, 8, 2026, entries)
	require.NoError(t, err)
	assert.Equal(t, 2, report.EntriesInserted)
	require.Len(t, report.Failed, 1)
	assert.Equal(t, 3, report.Failed[0].Line)

	stored, err := testutils.EntriesForPeriod(testEnv.Ctx, testEnv.DB, report.PeriodID)
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}

// rejectRank writes through to the real repository but refuses entries at one rank.
type rejectRank struct {
	mvpdb.Repository
	rank int
}

func (r rejectRank) InsertEntry(ctx context.Context, db bun.IDB, entry *mvpdb.Entry) error {
	if entry.Rank == r.rank {
		return errors.New("entry rejected")
	}
	return r.Repository.InsertEntry(ctx, db, entry)
}

func TestSyncMVP_EntryFailureRollsBackNewPlayer(t *testing.T) {
	testEnv.Reset(t)
	gen := testutils.NewTestDataGenerator(18)
	rows := gen.GenerateMVPRows(3)

	raw, err := parsers.Parse(parsers.NewFactory(), "mvp.csv", mvpCSV(t, rows))
	require.NoError(t, err)
	entries, _ := normalize.Batch(normalize.FlowMVP, raw)

	db := testEnv.DBService
	svc := mvpservice.NewMVPService(db.Players, rejectRank{Repository: db.MVP, rank: rows[1].No}, testEnv.Observability.Logger, nil, nil, db.GetDB())
	report, err := svc.SyncPeriod(testEnv.Ctx, 10, 2026, entries)
	require.NoError(t, err)

	assert.Equal(t, 2, report.EntriesInserted)
	assert.Equal(t, 2, report.PlayersCreated)
	require.Len(t, report.Failed, 1)
	assert.Equal(t, 3, report.Failed[0].Line)
	assert.Contains(t, report.Failed[0].Cause, "entry rejected")

	_, err = testutils.PlayerByFullName(testEnv.Ctx, testEnv.DB, rows[1].FullName)
	assert.ErrorIs(t, err, sql.ErrNoRows, "player of the rejected entry must not persist")
	for _, row := range []testutils.MVPRow{rows[0], rows[2]} {
		_, err := testutils.PlayerByFullName(testEnv.Ctx, testEnv.DB, row.FullName)
		assert.NoError(t, err, "player %q", row.FullName)
	}

	players, err := testutils.CountRows(testEnv.Ctx, testEnv.DB, "players")
	require.NoError(t, err)
	assert.Equal(t, 2, players)
	stored, err := testutils.EntriesForPeriod(testEnv.Ctx, testEnv.DB, report.PeriodID)
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}

func TestReadModels(t *testing.T) {
	testEnv.Reset(t)
	gen := testutils.NewTestDataGenerator(16)
	svc := newServices()

	rows := gen.GenerateMVPRows(4)
	for i := range rows {
		rows[i].RatingGain = 10 * (i + 1)
	}
	_, err := svc.ingest.SyncMVP(testEnv.Ctx, 1, 2026, "jan.csv", mvpCSV(t, rows))
	require.NoError(t, err)
	latest, err := svc.ingest.SyncMVP(testEnv.Ctx, 2, 2026, "feb.csv", mvpCSV(t, rows))
	require.NoError(t, err)
	_, err = svc.ingest.SyncMVP(testEnv.Ctx, 12, 2025, "dec.csv", mvpCSV(t, rows[:1]))
	require.NoError(t, err)

	t.Run("periods newest first", func(t *testing.T) {
		periods, err := svc.mvp.ListPeriods(testEnv.Ctx)
		require.NoError(t, err)
		require.Len(t, periods, 3)
		assert.Equal(t, "February 2026", periods[0].Name)
		assert.Equal(t, "January 2026", periods[1].Name)
		assert.Equal(t, "December 2025", periods[2].Name)
	})

	t.Run("period entries by rank", func(t *testing.T) {
		view, err := svc.mvp.PeriodEntries(testEnv.Ctx, latest.Report.PeriodID)
		require.NoError(t, err)
		require.Len(t, view.Entries, 4)
		for i, e := range view.Entries {
			assert.Equal(t, i+1, e.Rank)
			assert.Equal(t, rows[i].FullName, e.FullName)
		}
	})

	t.Run("rank movement by gain", func(t *testing.T) {
		board, err := svc.mvp.RankMovement(testEnv.Ctx, "")
		require.NoError(t, err)
		require.NotNil(t, board.Period)
		assert.Equal(t, latest.Report.PeriodID, board.Period.ID)
		require.Len(t, board.Podium, 3)
		assert.Equal(t, rows[2].FullName, board.Podium[0].FullName)
		assert.Equal(t, rows[3].FullName, board.Podium[1].FullName)
		assert.Equal(t, 1, board.Podium[1].Position)
		assert.Equal(t, rows[1].FullName, board.Podium[2].FullName)
		require.Len(t, board.Rest, 1)
		assert.Equal(t, rows[0].FullName, board.Rest[0].FullName)
	})

	t.Run("player chart", func(t *testing.T) {
		p, err := testutils.PlayerByFullName(testEnv.Ctx, testEnv.DB, rows[0].FullName)
		require.NoError(t, err)
		png, err := svc.mvp.PlayerChart(testEnv.Ctx, p.ID)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))
	})
}

package ingestservice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/DanielWijono/minton3t-ranking/app/events"
	"github.com/DanielWijono/minton3t-ranking/app/modules/ingest/normalize"
	"github.com/DanielWijono/minton3t-ranking/app/modules/ingest/parsers"
	"github.com/DanielWijono/minton3t-ranking/app/shared/operation"
	"github.com/DanielWijono/minton3t-ranking/app/shared/results"
	"github.com/DanielWijono/minton3t-ranking/app/shared/syncerr"
)

type (
	previewResult     = results.OperationResult[Preview, error]
	leaderboardResult = results.OperationResult[LeaderboardResult, error]
	mvpResult         = results.OperationResult[MVPResult, error]
)

// expectedColumns are the header labels each flow reads.
var expectedColumns = map[normalize.Flow][]string{
	normalize.FlowLeaderboard: {normalize.ColumnName, normalize.ColumnRank, normalize.ColumnRating, normalize.ColumnDivision},
	normalize.FlowMVP:         {normalize.ColumnNo, normalize.ColumnName, normalize.ColumnRatingGain, normalize.ColumnEvent, normalize.ColumnDivision},
}

// Preview parses and normalizes data. Nothing is written.
func (s *IngestService) Preview(ctx context.Context, flow normalize.Flow, fileName string, data []byte) (*Preview, error) {
	if !flow.Valid() {
		return nil, fmt.Errorf("unknown flow %q", flow)
	}

	result, err := operation.WithTelemetry(s.runner, ctx, "Preview", fileName, func(ctx context.Context) (previewResult, error) {
		p, err := s.load(ctx, flow, fileName, data)
		if err != nil {
			return results.FailureResult[Preview, error](err), nil
		}
		return results.SuccessResult[Preview, error](*p), nil
	})
	if err != nil {
		return nil, err
	}
	if result.IsFailure() {
		return nil, *result.Failure
	}
	return result.Success, nil
}

// SyncLeaderboard parses, normalizes and replaces the leaderboard.
func (s *IngestService) SyncLeaderboard(ctx context.Context, fileName string, data []byte) (*LeaderboardResult, error) {
	result, err := operation.WithTelemetry(s.runner, ctx, "SyncLeaderboard", fileName, func(ctx context.Context) (leaderboardResult, error) {
		p, err := s.load(ctx, normalize.FlowLeaderboard, fileName, data)
		if err != nil {
			return results.FailureResult[LeaderboardResult, error](err), nil
		}
		if len(p.Entries) == 0 {
			return results.FailureResult[LeaderboardResult, error](syncerr.ErrEmptyBatch), nil
		}

		release, ok := s.guard.acquire(leaderboardTarget)
		if !ok {
			return results.FailureResult[LeaderboardResult, error](syncerr.ErrSyncInProgress), nil
		}
		defer release()

		report, err := s.leaderboard.SyncLeaderboard(ctx, p.Entries)
		if err != nil {
			return leaderboardResult{}, err
		}

		s.publish(ctx, events.LeaderboardSyncedV1, events.LeaderboardSyncedPayloadV1{
			FileName:        fileName,
			PlayersInserted: report.PlayersInserted,
			StatsInserted:   report.StatsInserted,
			Skipped:         len(report.Skipped),
			SyncedAt:        time.Now().UTC(),
		})

		return results.SuccessResult[LeaderboardResult, error](LeaderboardResult{
			FileName: fileName,
			Report:   *report,
			Notes:    p.Notes,
		}), nil
	})
	if err != nil {
		return nil, err
	}
	if result.IsFailure() {
		return nil, *result.Failure
	}
	return result.Success, nil
}

// SyncMVP validates the period, then parses, normalizes and replaces the period's entries.
func (s *IngestService) SyncMVP(ctx context.Context, month, year int, fileName string, data []byte) (*MVPResult, error) {
	target := mvpTarget(month, year)

	result, err := operation.WithTelemetry(s.runner, ctx, "SyncMVP", target, func(ctx context.Context) (mvpResult, error) {
		if err := s.mvp.ValidatePeriod(month, year); err != nil {
			return results.FailureResult[MVPResult, error](err), nil
		}
		p, err := s.load(ctx, normalize.FlowMVP, fileName, data)
		if err != nil {
			return results.FailureResult[MVPResult, error](err), nil
		}
		if len(p.Entries) == 0 {
			return results.FailureResult[MVPResult, error](syncerr.ErrEmptyBatch), nil
		}

		release, ok := s.guard.acquire(target)
		if !ok {
			return results.FailureResult[MVPResult, error](syncerr.ErrSyncInProgress), nil
		}
		defer release()

		report, err := s.mvp.SyncPeriod(ctx, month, year, p.Entries)
		if err != nil {
			return mvpResult{}, err
		}
		if len(report.Failed) > 0 {
			s.logger.WarnContext(ctx, "MVP sync finished with failed entries",
				slog.String("target", target),
				slog.Int("failed", len(report.Failed)),
				slog.Int("inserted", report.EntriesInserted),
			)
		}

		s.publish(ctx, events.MVPPeriodSyncedV1, events.MVPPeriodSyncedPayloadV1{
			FileName:        fileName,
			PeriodID:        report.PeriodID,
			Month:           month,
			Year:            year,
			PeriodCreated:   report.PeriodCreated,
			EntriesInserted: report.EntriesInserted,
			Failed:          len(report.Failed),
			SyncedAt:        time.Now().UTC(),
		})

		return results.SuccessResult[MVPResult, error](MVPResult{
			FileName: fileName,
			Report:   *report,
			Notes:    p.Notes,
		}), nil
	})
	if err != nil {
		return nil, err
	}
	if result.IsFailure() {
		return nil, *result.Failure
	}
	return result.Success, nil
}

// load parses and normalizes a file for flow, logging coercion notes.
func (s *IngestService) load(ctx context.Context, flow normalize.Flow, fileName string, data []byte) (*Preview, error) {
	rows, err := parsers.Parse(s.parsers, fileName, data)
	if err != nil {
		return nil, err
	}

	entries, notes := normalize.Batch(flow, rows)
	for _, n := range notes {
		s.logger.DebugContext(ctx, "Cell defaulted to zero",
			slog.String("flow", string(flow)),
			slog.Int("line", n.Line),
			slog.String("column", n.Column),
			slog.String("raw", n.Raw),
		)
	}
	if len(notes) > 0 {
		s.logger.InfoContext(ctx, "Batch contains defaulted cells",
			slog.String("flow", string(flow)),
			slog.String("file", fileName),
			slog.Int("notes", len(notes)),
		)
	}
	s.metrics.RecordRows(ctx, string(flow), "parsed", len(entries))

	p := &Preview{Flow: flow, FileName: fileName, Entries: entries, Notes: notes}
	if len(rows) > 0 {
		for _, col := range expectedColumns[flow] {
			if !rows[0].InHeader(col) {
				p.MissingColumns = append(p.MissingColumns, col)
			}
		}
	}
	return p, nil
}

func (s *IngestService) publish(ctx context.Context, topic string, payload any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishJSON(ctx, topic, payload); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish sync event",
			slog.String("topic", topic),
			slog.Any("error", err),
		)
	}
}

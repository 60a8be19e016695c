package mvpservice

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	mvpdb "github.com/DanielWijono/minton3t-ranking/app/modules/mvp/infrastructure/repositories"
	playerdb "github.com/DanielWijono/minton3t-ranking/app/modules/player/infrastructure/repositories"
	"github.com/DanielWijono/minton3t-ranking/app/shared/operation"
	"github.com/DanielWijono/minton3t-ranking/app/shared/results"
	"github.com/google/uuid"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ChartPalette holds the chart colours as hex strings.
type ChartPalette struct {
	Background  string
	PrimaryLine string
	AccentLine  string
	TextColor   string
}

// DefaultChartPalette matches the dark navy site theme.
func DefaultChartPalette() ChartPalette {
	return ChartPalette{
		Background:  "#0f1a2e",
		PrimaryLine: "#d4a853",
		AccentLine:  "#e8d5b5",
		TextColor:   "#c8d1e0",
	}
}

// GainPoint is one period of a player's history.
type GainPoint struct {
	Month      time.Time
	RatingGain int
}

type chartResult = results.OperationResult[[]byte, error]

// PlayerChart renders the player's rating gain per period.
func (s *MVPService) PlayerChart(ctx context.Context, playerID uuid.UUID) ([]byte, error) {
	result, err := operation.WithTelemetry(s.runner, ctx, "PlayerChart", playerID.String(), func(ctx context.Context) (chartResult, error) {
		if _, err := s.players.GetByID(ctx, nil, playerID); err != nil {
			if errors.Is(err, playerdb.ErrNotFound) {
				return results.FailureResult[[]byte, error](ErrPlayerNotFound), nil
			}
			return chartResult{}, fmt.Errorf("failed to get player: %w", err)
		}
		entries, err := s.repo.ListEntriesByPlayer(ctx, nil, playerID)
		if err != nil {
			return chartResult{}, fmt.Errorf("failed to list player entries: %w", err)
		}
		png, err := GenerateRatingGainChart(gainPoints(entries), s.palette)
		if err != nil {
			return chartResult{}, fmt.Errorf("failed to render chart: %w", err)
		}
		return results.SuccessResult[[]byte, error](png), nil
	})
	if err != nil {
		return nil, err
	}
	if result.IsFailure() {
		return nil, *result.Failure
	}
	return *result.Success, nil
}

// gainPoints keeps one point per period, summing duplicate rows of the same period.
func gainPoints(entries []mvpdb.Entry) []GainPoint {
	var points []GainPoint
	index := map[time.Time]int{}
	for _, e := range entries {
		if e.Period == nil {
			continue
		}
		month := time.Date(e.Period.Year, time.Month(e.Period.Month), 1, 0, 0, 0, 0, time.UTC)
		if i, ok := index[month]; ok {
			points[i].RatingGain += e.RatingGain
			continue
		}
		index[month] = len(points)
		points = append(points, GainPoint{Month: month, RatingGain: e.RatingGain})
	}
	return points
}

// GenerateRatingGainChart produces a PNG line chart. Fewer than two points render a placeholder.
func GenerateRatingGainChart(points []GainPoint, palette ChartPalette) ([]byte, error) {
	if len(points) < 2 {
		return renderNoDataPlaceholder(palette)
	}

	xValues := make([]time.Time, len(points))
	yValues := make([]float64, len(points))
	for i, p := range points {
		xValues[i] = p.Month
		yValues[i] = float64(p.RatingGain)
	}

	mainSeries := chart.TimeSeries{
		Name:    "Rating Gain",
		XValues: xValues,
		YValues: yValues,
		Style: chart.Style{
			StrokeColor: drawing.ColorFromHex(trimHash(palette.PrimaryLine)),
			StrokeWidth: 2,
			DotWidth:    4,
			DotColor:    drawing.ColorFromHex(trimHash(palette.AccentLine)),
		},
	}

	graph := chart.Chart{
		Width:  800,
		Height: 400,
		Background: chart.Style{
			FillColor: drawing.ColorFromHex(trimHash(palette.Background)),
		},
		Canvas: chart.Style{
			FillColor: drawing.ColorFromHex(trimHash(palette.Background)),
		},
		XAxis: chart.XAxis{
			Name:           "Period",
			ValueFormatter: chart.TimeValueFormatterWithFormat("Jan 2006"),
			Style: chart.Style{
				FontColor: drawing.ColorFromHex(trimHash(palette.TextColor)),
			},
		},
		YAxis: chart.YAxis{
			Name: "Rating Gain",
			Style: chart.Style{
				FontColor: drawing.ColorFromHex(trimHash(palette.TextColor)),
			},
		},
		Series: []chart.Series{mainSeries},
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

func renderNoDataPlaceholder(palette ChartPalette) ([]byte, error) {
	const (
		width  = 400
		height = 200
		msg    = "Not enough periods to chart"
	)

	background := drawing.ColorFromHex(trimHash(palette.Background))
	graph := chart.Chart{
		Width:  width,
		Height: height,
		Background: chart.Style{
			FillColor: background,
		},
		Canvas: chart.Style{
			FillColor: background,
		},
		// go-chart refuses to render without a series; this one is drawn in the background colour.
		Series: []chart.Series{
			chart.ContinuousSeries{
				XValues: []float64{0, 1},
				YValues: []float64{0, 1},
				Style: chart.Style{
					StrokeColor: background,
					StrokeWidth: 1,
				},
			},
		},
		Elements: []chart.Renderable{
			func(r chart.Renderer, cb chart.Box, chartDefaults chart.Style) {
				r.SetFontColor(drawing.ColorFromHex(trimHash(palette.TextColor)))
				r.SetFontSize(12.0)
				tb := r.MeasureText(msg)
				x := (cb.Width() - tb.Width()) / 2
				y := (cb.Height() + tb.Height()) / 2
				r.Text(msg, x, y)
			},
		},
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

func trimHash(hex string) string {
	if len(hex) > 0 && hex[0] == '#' {
		return hex[1:]
	}
	return hex
}

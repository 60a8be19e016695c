package mvphandlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	mvpservice "github.com/DanielWijono/minton3t-ranking/app/modules/mvp/application"
	mvpdb "github.com/DanielWijono/minton3t-ranking/app/modules/mvp/infrastructure/repositories"
	"github.com/DanielWijono/minton3t-ranking/app/shared/httpapi"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

func newServer(svc *FakeService) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewMVPHandlers(svc, logger, noop.NewTracerProvider().Tracer("test"))
	r := chi.NewRouter()
	Mount(r, h)
	return r
}

func get(t *testing.T, srv http.Handler, url string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	srv.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, url, nil))
	return rr
}

func TestMVPHandlers_ListDivisions(t *testing.T) {
	rr := get(t, newServer(&FakeService{}), "/api/divisions")

	require.Equal(t, http.StatusOK, rr.Code)
	var body []map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Len(t, body, 3)
}

func TestMVPHandlers_ListPeriods(t *testing.T) {
	svc := &FakeService{
		ListPeriodsFunc: func(context.Context) ([]mvpdb.Period, error) {
			return []mvpdb.Period{
				{ID: uuid.New(), Name: "February 2026", Month: 2, Year: 2026},
				{ID: uuid.New(), Name: "January 2026", Month: 1, Year: 2026},
			}, nil
		},
	}

	rr := get(t, newServer(svc), "/api/mvp/periods")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "February 2026")
}

func TestMVPHandlers_PeriodEntries(t *testing.T) {
	periodID := uuid.New()

	tests := []struct {
		name       string
		url        string
		fn         func(context.Context, uuid.UUID) (*mvpservice.PeriodView, error)
		wantStatus int
	}{
		{
			name: "success",
			url:  fmt.Sprintf("/api/mvp/periods/%s/entries", periodID),
			fn: func(_ context.Context, id uuid.UUID) (*mvpservice.PeriodView, error) {
				if id != periodID {
					return nil, errors.New("wrong id")
				}
				return &mvpservice.PeriodView{Entries: []mvpservice.PeriodEntry{{Rank: 1, FullName: "Herry"}}}, nil
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "malformed id",
			url:        "/api/mvp/periods/not-a-uuid/entries",
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "unknown period",
			url:  fmt.Sprintf("/api/mvp/periods/%s/entries", periodID),
			fn: func(context.Context, uuid.UUID) (*mvpservice.PeriodView, error) {
				return nil, fmt.Errorf("PeriodEntries: %w", mvpservice.ErrPeriodNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name: "store error",
			url:  fmt.Sprintf("/api/mvp/periods/%s/entries", periodID),
			fn: func(context.Context, uuid.UUID) (*mvpservice.PeriodView, error) {
				return nil, errors.New("db down")
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := get(t, newServer(&FakeService{PeriodEntriesFunc: tt.fn}), tt.url)

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus != http.StatusOK {
				var body httpapi.ErrorBody
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
				assert.NotEmpty(t, body.Error)
				assert.NotContains(t, body.Error, "db down")
			}
		})
	}
}

func TestMVPHandlers_RankMovement(t *testing.T) {
	var got string
	svc := &FakeService{
		RankMovementFunc: func(_ context.Context, query string) (*mvpservice.RankMovement, error) {
			got = query
			return &mvpservice.RankMovement{Query: query, Podium: []mvpservice.Mover{}, Rest: []mvpservice.Mover{}}, nil
		},
	}

	rr := get(t, newServer(svc), "/api/mvp/rank-movement?q=falcon")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "falcon", got)
	var body mvpservice.RankMovement
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "falcon", body.Query)
}

func TestMVPHandlers_PlayerChart(t *testing.T) {
	playerID := uuid.New()

	t.Run("png", func(t *testing.T) {
		rr := get(t, newServer(&FakeService{}), fmt.Sprintf("/api/mvp/players/%s/chart.png", playerID))

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "image/png", rr.Header().Get("Content-Type"))
		assert.Equal(t, "public, max-age=300", rr.Header().Get("Cache-Control"))
		assert.Equal(t, "\x89PNG", rr.Body.String())
	})

	t.Run("unknown player", func(t *testing.T) {
		svc := &FakeService{
			PlayerChartFunc: func(context.Context, uuid.UUID) ([]byte, error) {
				return nil, mvpservice.ErrPlayerNotFound
			},
		}
		rr := get(t, newServer(svc), fmt.Sprintf("/api/mvp/players/%s/chart.png", playerID))
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestMVPHandlers_StartSpans(t *testing.T) {
	tracer := &recordingTracer{}
	h := NewMVPHandlers(&FakeService{}, slog.New(slog.NewTextHandler(io.Discard, nil)), tracer)
	r := chi.NewRouter()
	Mount(r, h)

	id := uuid.New().String()
	for _, url := range []string{
		"/api/divisions",
		"/api/mvp/periods",
		"/api/mvp/periods/" + id + "/entries",
		"/api/mvp/rank-movement",
		"/api/mvp/players/" + id + "/chart.png",
	} {
		rr := get(t, r, url)
		require.Equal(t, http.StatusOK, rr.Code, url)
	}

	assert.Equal(t, []string{
		"MVPHandlers.HandleListDivisions",
		"MVPHandlers.HandleListPeriods",
		"MVPHandlers.HandlePeriodEntries",
		"MVPHandlers.HandleRankMovement",
		"MVPHandlers.HandlePlayerChart",
	}, tracer.spans())
}

package app

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DanielWijono/minton3t-ranking/app/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRouter(t *testing.T) {
	obs := observability.NewWithWriter(observability.Config{MetricsEnabled: true}, io.Discard)
	obs.Metrics.RecordRows(t.Context(), "leaderboard", "parsed", 3)
	r := NewRouter(obs)

	t.Run("healthz", func(t *testing.T) {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
	})

	t.Run("metrics", func(t *testing.T) {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `minton3t_ingested_rows_total{flow="leaderboard",outcome="parsed"} 3`)
	})

	t.Run("unknown route", func(t *testing.T) {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/missing", nil))
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestApp_CloseIsSafeOnEmptyApp(t *testing.T) {
	app := &App{}
	app.Close()
}

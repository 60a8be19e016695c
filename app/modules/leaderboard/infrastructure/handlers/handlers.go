package leaderboardhandlers

import (
	"log/slog"
	"net/http"
	"strings"

	leaderboardservice "github.com/DanielWijono/minton3t-ranking/app/modules/leaderboard/application"
	"github.com/DanielWijono/minton3t-ranking/app/shared/httpapi"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Handlers serves the public leaderboard.
type Handlers interface {
	HandleGetStandings(w http.ResponseWriter, r *http.Request)
}

// LeaderboardHandlers implements Handlers.
type LeaderboardHandlers struct {
	service leaderboardservice.Service
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewLeaderboardHandlers creates a new LeaderboardHandlers instance.
func NewLeaderboardHandlers(service leaderboardservice.Service, logger *slog.Logger, tracer trace.Tracer) Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("leaderboardhandlers")
	}
	return &LeaderboardHandlers{
		service: service,
		logger:  logger,
		tracer:  tracer,
	}
}

// HandleGetStandings serves GET /api/leaderboard?q=.
func (h *LeaderboardHandlers) HandleGetStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "LeaderboardHandlers.HandleGetStandings")
	defer span.End()

	query := strings.TrimSpace(r.URL.Query().Get("q"))

	standings, err := h.service.GetStandings(ctx, query)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to load standings", slog.Any("error", err))
		httpapi.WriteError(w, http.StatusInternalServerError, "failed to load leaderboard")
		return
	}

	httpapi.WriteJSON(w, http.StatusOK, standings)
}

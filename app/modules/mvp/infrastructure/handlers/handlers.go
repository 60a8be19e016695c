package mvphandlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	mvpservice "github.com/DanielWijono/minton3t-ranking/app/modules/mvp/application"
	"github.com/DanielWijono/minton3t-ranking/app/shared/httpapi"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// chartMaxAge is how long clients may cache a rendered chart, in seconds.
const chartMaxAge = "300"

// Handlers serves the MVP read API.
type Handlers interface {
	HandleListDivisions(w http.ResponseWriter, r *http.Request)
	HandleListPeriods(w http.ResponseWriter, r *http.Request)
	HandlePeriodEntries(w http.ResponseWriter, r *http.Request)
	HandleRankMovement(w http.ResponseWriter, r *http.Request)
	HandlePlayerChart(w http.ResponseWriter, r *http.Request)
}

// MVPHandlers implements Handlers.
type MVPHandlers struct {
	service mvpservice.Service
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewMVPHandlers creates a new MVPHandlers instance.
func NewMVPHandlers(service mvpservice.Service, logger *slog.Logger, tracer trace.Tracer) Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("mvphandlers")
	}
	return &MVPHandlers{
		service: service,
		logger:  logger,
		tracer:  tracer,
	}
}

// HandleListDivisions serves GET /api/divisions.
func (h *MVPHandlers) HandleListDivisions(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "MVPHandlers.HandleListDivisions")
	defer span.End()

	divisions, err := h.service.ListDivisions(ctx)
	if err != nil {
		h.fail(ctx, w, "Failed to list divisions", err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, divisions)
}

// HandleListPeriods serves GET /api/mvp/periods, newest first.
func (h *MVPHandlers) HandleListPeriods(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "MVPHandlers.HandleListPeriods")
	defer span.End()

	periods, err := h.service.ListPeriods(ctx)
	if err != nil {
		h.fail(ctx, w, "Failed to list periods", err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, periods)
}

// HandlePeriodEntries serves GET /api/mvp/periods/{periodID}/entries.
func (h *MVPHandlers) HandlePeriodEntries(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "MVPHandlers.HandlePeriodEntries")
	defer span.End()

	periodID, ok := pathUUID(w, r, "periodID")
	if !ok {
		return
	}

	view, err := h.service.PeriodEntries(ctx, periodID)
	if err != nil {
		h.fail(ctx, w, "Failed to load period entries", err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, view)
}

// HandleRankMovement serves GET /api/mvp/rank-movement?q=.
func (h *MVPHandlers) HandleRankMovement(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "MVPHandlers.HandleRankMovement")
	defer span.End()

	query := strings.TrimSpace(r.URL.Query().Get("q"))

	board, err := h.service.RankMovement(ctx, query)
	if err != nil {
		h.fail(ctx, w, "Failed to load rank movement", err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, board)
}

// HandlePlayerChart serves GET /api/mvp/players/{playerID}/chart.png.
func (h *MVPHandlers) HandlePlayerChart(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "MVPHandlers.HandlePlayerChart")
	defer span.End()

	playerID, ok := pathUUID(w, r, "playerID")
	if !ok {
		return
	}

	png, err := h.service.PlayerChart(ctx, playerID)
	if err != nil {
		h.fail(ctx, w, "Failed to render player chart", err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age="+chartMaxAge)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

func (h *MVPHandlers) fail(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	switch {
	case errors.Is(err, mvpservice.ErrPeriodNotFound), errors.Is(err, mvpservice.ErrPlayerNotFound):
		httpapi.WriteError(w, http.StatusNotFound, errorMessage(err))
	default:
		h.logger.ErrorContext(ctx, msg, slog.Any("error", err))
		httpapi.WriteError(w, http.StatusInternalServerError, "internal error")
	}
}

func errorMessage(err error) string {
	switch {
	case errors.Is(err, mvpservice.ErrPeriodNotFound):
		return mvpservice.ErrPeriodNotFound.Error()
	case errors.Is(err, mvpservice.ErrPlayerNotFound):
		return mvpservice.ErrPlayerNotFound.Error()
	}
	return err.Error()
}

func pathUUID(w http.ResponseWriter, r *http.Request, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "invalid "+param)
		return uuid.Nil, false
	}
	return id, true
}

package ingesthandlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	ingestservice "github.com/DanielWijono/minton3t-ranking/app/modules/ingest/application"
	"github.com/DanielWijono/minton3t-ranking/app/modules/ingest/normalize"
	"github.com/DanielWijono/minton3t-ranking/app/modules/ingest/parsers"
	"github.com/DanielWijono/minton3t-ranking/app/shared/httpapi"
	"github.com/DanielWijono/minton3t-ranking/app/shared/syncerr"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const (
	// DefaultMaxUploadBytes caps an upload when no limit is configured.
	DefaultMaxUploadBytes int64 = 10 << 20

	fileField = "file"
)

// Handlers serves the admin upload endpoints.
type Handlers interface {
	HandlePreview(w http.ResponseWriter, r *http.Request)
	HandleSyncLeaderboard(w http.ResponseWriter, r *http.Request)
	HandleSyncMVP(w http.ResponseWriter, r *http.Request)
}

// IngestHandlers implements Handlers.
type IngestHandlers struct {
	service  ingestservice.Service
	logger   *slog.Logger
	tracer   trace.Tracer
	maxBytes int64
}

// NewIngestHandlers creates a new IngestHandlers instance. maxBytes <= 0 uses
// DefaultMaxUploadBytes.
func NewIngestHandlers(service ingestservice.Service, logger *slog.Logger, tracer trace.Tracer, maxBytes int64) Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("ingesthandlers")
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	return &IngestHandlers{
		service:  service,
		logger:   logger,
		tracer:   tracer,
		maxBytes: maxBytes,
	}
}

// HandlePreview serves POST /api/admin/{flow}/preview.
func (h *IngestHandlers) HandlePreview(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "IngestHandlers.HandlePreview")
	defer span.End()

	flow := normalize.Flow(chi.URLParam(r, "flow"))
	if !flow.Valid() {
		httpapi.WriteError(w, http.StatusNotFound, fmt.Sprintf("unknown flow %q", flow))
		return
	}

	fileName, data, ok := h.readUpload(w, r)
	if !ok {
		return
	}

	preview, err := h.service.Preview(ctx, flow, fileName, data)
	if err != nil {
		h.fail(ctx, w, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, preview)
}

// HandleSyncLeaderboard serves POST /api/admin/leaderboard/sync.
func (h *IngestHandlers) HandleSyncLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "IngestHandlers.HandleSyncLeaderboard")
	defer span.End()

	fileName, data, ok := h.readUpload(w, r)
	if !ok {
		return
	}

	result, err := h.service.SyncLeaderboard(ctx, fileName, data)
	if err != nil {
		h.fail(ctx, w, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, result)
}

// HandleSyncMVP serves POST /api/admin/mvp/sync. The form carries month and year next to the file.
func (h *IngestHandlers) HandleSyncMVP(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "IngestHandlers.HandleSyncMVP")
	defer span.End()

	fileName, data, ok := h.readUpload(w, r)
	if !ok {
		return
	}

	month, errMonth := strconv.Atoi(r.FormValue("month"))
	year, errYear := strconv.Atoi(r.FormValue("year"))
	if errMonth != nil || errYear != nil {
		httpapi.WriteError(w, http.StatusBadRequest, syncerr.ErrInvalidPeriod.Error()+": month and year must be numbers")
		return
	}

	result, err := h.service.SyncMVP(ctx, month, year, fileName, data)
	if err != nil {
		h.fail(ctx, w, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, result)
}

// readUpload reads the multipart file field, writing the error response itself when it fails.
func (h *IngestHandlers) readUpload(w http.ResponseWriter, r *http.Request) (string, []byte, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	if err := r.ParseMultipartForm(h.maxBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) || r.ContentLength > h.maxBytes {
			httpapi.WriteError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("upload exceeds %d bytes", h.maxBytes))
			return "", nil, false
		}
		httpapi.WriteError(w, http.StatusBadRequest, "expected a multipart form")
		return "", nil, false
	}

	file, header, err := r.FormFile(fileField)
	if err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "missing file field")
		return "", nil, false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to read upload", slog.Any("error", err))
		httpapi.WriteError(w, http.StatusBadRequest, "could not read upload")
		return "", nil, false
	}
	return header.Filename, data, true
}

func (h *IngestHandlers) fail(ctx context.Context, w http.ResponseWriter, err error) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.ErrorContext(ctx, "Upload failed", slog.Any("error", err))
		var swe *syncerr.StoreWriteError
		if errors.As(err, &swe) {
			httpapi.WriteError(w, status, fmt.Sprintf("store write failed during %s: %v", swe.Op, swe.Err))
			return
		}
		httpapi.WriteError(w, status, "internal error")
		return
	}
	httpapi.WriteError(w, status, err.Error())
}

// StatusFor maps an ingestion error to its HTTP status.
func StatusFor(err error) int {
	var mfe *parsers.MalformedFileError
	switch {
	case errors.As(err, &mfe),
		errors.Is(err, syncerr.ErrEmptyBatch),
		errors.Is(err, syncerr.ErrInvalidPeriod):
		return http.StatusBadRequest
	case errors.Is(err, syncerr.ErrSyncInProgress):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"mooring/internal/codec"
	"mooring/internal/monitor"
	"mooring/internal/repository"
	"mooring/internal/service"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
)

// MaxPayloadBytes bounds an ingested request body
const MaxPayloadBytes = 10 << 20

// IngestResponse is the reply to a posted snapshot
type IngestResponse struct {
	Status          string          `json:"status"`
	RecordsReceived int             `json:"records_received"`
	BatchID         string          `json:"batch_id"`
	Attention       int             `json:"attention"`
	Critical        int             `json:"critical"`
	Persisted       bool            `json:"persisted"`
	Alerts          []monitor.Alert `json:"alerts,omitempty"`
}

// ReceiverHandler handles the aggregating receiver API
type ReceiverHandler struct {
	svc          *service.ReceiverService
	importer     codec.Importer
	historyLimit int
	logger       *log.Logger
}

// NewReceiverHandler creates a receiver handler
func NewReceiverHandler(svc *service.ReceiverService, historyLimit int, logger *log.Logger) *ReceiverHandler {
	if logger == nil {
		logger = log.Default()
	}
	return &ReceiverHandler{
		svc:          svc,
		importer:     codec.NewJSONCodec(),
		historyLimit: historyLimit,
		logger:       logger,
	}
}

// Routes mounts the receiver API; events may be nil to disable SSE
func (h *ReceiverHandler) Routes(events http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Ingest)
	r.Get("/healthz", h.Health)
	if events != nil {
		r.Handle("/events", events)
	}

	r.Route("/api", func(r chi.Router) {
		r.Post("/readings", h.Ingest)
		r.Get("/hooks", h.ListHooks)
		r.Get("/hooks/{key}", h.GetHook)
		r.Get("/hooks/{key}/history", h.GetHistory)
		r.Get("/alerts", h.ListAlerts)
		r.Get("/batches", h.ListBatches)
	})

	return r
}

// Ingest parses a posted snapshot and folds it into the monitor
func (h *ReceiverHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxPayloadBytes)
	port, err := h.importer.Parse(r.Body)
	if err != nil {
		writeError(w, "Invalid JSON", err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.svc.Ingest(r.Context(), port)
	if err != nil {
		h.logger.Error("failed to ingest snapshot", "err", err)
		writeError(w, "Failed to ingest snapshot", err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, IngestResponse{
		Status:          "success",
		RecordsReceived: result.RecordsReceived,
		BatchID:         result.BatchID,
		Attention:       result.Attention,
		Critical:        result.Critical,
		Persisted:       result.Persisted,
		Alerts:          result.Alerts,
	}, http.StatusOK)
}

// ListHooks returns every tracked hook sorted by key
func (h *ReceiverHandler) ListHooks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.svc.Monitor().Hooks(), http.StatusOK)
}

// GetHook returns one tracked hook
func (h *ReceiverHandler) GetHook(w http.ResponseWriter, r *http.Request) {
	key, ok := hookKey(w, r)
	if !ok {
		return
	}

	status, found := h.svc.Monitor().Hook(key)
	if !found {
		writeError(w, "Not found", "no hook "+key, http.StatusNotFound)
		return
	}
	writeJSON(w, status, http.StatusOK)
}

// GetHistory returns a hook's tension history, oldest first
func (h *ReceiverHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	key, ok := hookKey(w, r)
	if !ok {
		return
	}
	limit, ok := queryLimit(w, r, h.historyLimit)
	if !ok {
		return
	}

	samples, err := h.svc.History(r.Context(), key, limit)
	if errors.Is(err, repository.ErrNotFound) {
		writeError(w, "Not found", "no hook "+key, http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.Error("failed to get history", "hook", key, "err", err)
		writeError(w, "Failed to get history", err.Error(), http.StatusInternalServerError)
		return
	}
	if samples == nil {
		samples = []monitor.Sample{}
	}
	writeJSON(w, samples, http.StatusOK)
}

// ListAlerts returns hooks over the attention threshold
func (h *ReceiverHandler) ListAlerts(w http.ResponseWriter, r *http.Request) {
	alerts := h.svc.Monitor().Alerts()
	if alerts == nil {
		alerts = []monitor.Alert{}
	}
	writeJSON(w, alerts, http.StatusOK)
}

// ListBatches returns the newest stored batches
func (h *ReceiverHandler) ListBatches(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryLimit(w, r, 20)
	if !ok {
		return
	}
	batches, err := h.svc.Batches(r.Context(), limit)
	if err != nil {
		h.logger.Error("failed to list batches", "err", err)
		writeError(w, "Failed to list batches", err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, batches, http.StatusOK)
}

// Health reports liveness and the number of tracked hooks
func (h *ReceiverHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]interface{}{
		"status": "ok",
		"hooks":  h.svc.Monitor().Len(),
	}, http.StatusOK)
}

// hookKey reads the {key} URL parameter, e.g. "Berth B.BOL001.Hook 1"
func hookKey(w http.ResponseWriter, r *http.Request) (string, bool) {
	key, err := url.PathUnescape(chi.URLParam(r, "key"))
	if err != nil || key == "" {
		writeError(w, "Invalid hook key", "expected <berth>.<bollard>.<hook>", http.StatusBadRequest)
		return "", false
	}
	return key, true
}

func queryLimit(w http.ResponseWriter, r *http.Request, fallback int) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return fallback, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		writeError(w, "Invalid limit", "limit must be a positive integer", http.StatusBadRequest)
		return 0, false
	}
	return n, true
}

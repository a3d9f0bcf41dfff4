package handler

import (
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
)

// SnapshotLocator finds the newest snapshot file
type SnapshotLocator interface {
	Latest() (string, bool)
}

// GlobLocator finds the newest snapshot by globbing on every call
type GlobLocator string

// Latest returns the greatest file name matching the glob
func (g GlobLocator) Latest() (string, bool) {
	matches, err := filepath.Glob(string(g))
	if err != nil || len(matches) == 0 {
		return "", false
	}
	sort.Strings(matches)
	return matches[len(matches)-1], true
}

// DevHandler serves the newest snapshot and a static root
type DevHandler struct {
	locator SnapshotLocator
	root    string
	logger  *log.Logger
}

// NewDevHandler creates a dev snapshot handler serving static files from root
func NewDevHandler(locator SnapshotLocator, root string, logger *log.Logger) *DevHandler {
	if logger == nil {
		logger = log.Default()
	}
	return &DevHandler{locator: locator, root: root, logger: logger}
}

// Routes mounts /hooks, optional /events and the static file server
func (h *DevHandler) Routes(events http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/hooks", h.LatestSnapshot)
	if events != nil {
		r.Handle("/events", events)
	}
	r.Handle("/*", http.FileServer(http.Dir(h.root)))
	return r
}

// LatestSnapshot returns the newest snapshot file as is
func (h *DevHandler) LatestSnapshot(w http.ResponseWriter, r *http.Request) {
	path, ok := h.locator.Latest()
	if !ok {
		writeJSON(w, ErrorResponse{Error: "no output files found"}, http.StatusNotFound)
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		h.logger.Error("failed to read snapshot", "path", path, "err", err)
		writeJSON(w, ErrorResponse{Error: err.Error()}, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

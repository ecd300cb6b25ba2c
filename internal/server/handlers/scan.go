// internal/server/handlers/scan.go

package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/ericxyz86/culturesoup/internal/domain/trend"
)

// HistoryStore reads back persisted scans. Nil when no database is
// configured; the history endpoint then reports itself unavailable.
type HistoryStore interface {
	RecentScans(ctx context.Context, limit int) ([]trend.ScanResult, error)
}

// ScanHandler handles scan-related HTTP requests
type ScanHandler struct {
	scanner trend.Scanner
	history HistoryStore
}

// NewScanHandler creates a new scan handler
func NewScanHandler(scanner trend.Scanner, history HistoryStore) *ScanHandler {
	return &ScanHandler{
		scanner: scanner,
		history: history,
	}
}

// RunScan triggers one full pipeline run and returns its result.
// Individual source failures do not fail the scan; only an internal
// pipeline error does, in which case the previous cached result stays
// servable.
func (h *ScanHandler) RunScan(w http.ResponseWriter, r *http.Request) {
	result, err := h.scanner.Scan(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Scan failed", err)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

// GetLatest returns the last successful scan without triggering a new one.
func (h *ScanHandler) GetLatest(w http.ResponseWriter, r *http.Request) {
	result, ok := h.scanner.Latest()
	if !ok {
		respondWithError(w, http.StatusNotFound, "No scan yet", nil)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

// GetHistory returns recent persisted scans, newest first.
func (h *ScanHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	if h.history == nil {
		respondWithError(w, http.StatusServiceUnavailable, "Scan history not configured", nil)
		return
	}

	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 || parsed > 100 {
			respondWithError(w, http.StatusBadRequest, "Invalid limit", nil)
			return
		}
		limit = parsed
	}

	scans, err := h.history.RecentScans(r.Context(), limit)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load scan history", err)
		return
	}

	respondWithJSON(w, http.StatusOK, scans)
}

// internal/server/handlers/supplement.go

package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ericxyz86/culturesoup/internal/cache"
	"github.com/ericxyz86/culturesoup/internal/domain/trend"
)

// SupplementHandler handles feeder pushes into the supplemental cache.
// The shared-secret check happens in router middleware before requests
// reach this handler.
type SupplementHandler struct {
	cache *cache.SupplementCache
}

// NewSupplementHandler creates a new supplement handler
func NewSupplementHandler(c *cache.SupplementCache) *SupplementHandler {
	return &SupplementHandler{
		cache: c,
	}
}

type pushItem struct {
	Title        string             `json:"title"`
	URL          string             `json:"url"`
	Source       string             `json:"source"`
	SourceDetail string             `json:"sourceDetail"`
	Engagement   string             `json:"engagement"`
	Metrics      map[string]float64 `json:"metrics"`
	DiscoveredAt time.Time          `json:"discoveredAt"`
}

type pushRequest struct {
	GeneratedAt time.Time  `json:"generatedAt"`
	Items       []pushItem `json:"items"`
}

// Push replaces the cached batch. Malformed payloads are rejected
// before any cache mutation.
func (h *SupplementHandler) Push(w http.ResponseWriter, r *http.Request) {
	var req pushRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Malformed payload", nil)
		return
	}
	if req.Items == nil {
		respondWithError(w, http.StatusBadRequest, "Payload must contain an items array", nil)
		return
	}

	items := make([]trend.RawItem, 0, len(req.Items))
	counts := make(map[string]int)
	for _, p := range req.Items {
		if p.Title == "" {
			respondWithError(w, http.StatusBadRequest, "Every item needs a title", nil)
			return
		}

		source := p.Source
		if source == "" {
			source = "Supplement"
		}

		items = append(items, trend.RawItem{
			Title:        p.Title,
			URL:          p.URL,
			SourceName:   source,
			SourceDetail: p.SourceDetail,
			Engagement:   p.Engagement,
			RawMetrics:   p.Metrics,
			DiscoveredAt: p.DiscoveredAt,
		})
		counts[source]++
	}

	generatedAt := req.GeneratedAt
	if generatedAt.IsZero() {
		generatedAt = time.Now()
	}

	h.cache.Set(&trend.SupplementalBatch{
		GeneratedAt: generatedAt,
		Items:       items,
		Counts:      counts,
	})

	respondWithJSON(w, http.StatusOK, map[string]any{
		"ok":     true,
		"cached": len(items),
	})
}

// Status reports whether a fresh batch is available.
func (h *SupplementHandler) Status(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.cache.Status())
}

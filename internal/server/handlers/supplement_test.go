package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ericxyz86/culturesoup/internal/cache"
	"github.com/ericxyz86/culturesoup/internal/domain/trend"
)

func TestSupplementHandler_Push_MalformedJSON(t *testing.T) {
	h := NewSupplementHandler(cache.NewSupplementCache(6 * time.Hour))

	req := httptest.NewRequest(http.MethodPost, "/supplement", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	h.Push(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestSupplementHandler_Push_MissingItems(t *testing.T) {
	c := cache.NewSupplementCache(6 * time.Hour)
	h := NewSupplementHandler(c)

	req := httptest.NewRequest(http.MethodPost, "/supplement", strings.NewReader(`{"generatedAt":"2025-06-01T10:00:00Z"}`))
	rec := httptest.NewRecorder()

	h.Push(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if c.Status().Available {
		t.Error("rejected payload mutated the cache")
	}
}

func TestSupplementHandler_Push_ItemWithoutTitle(t *testing.T) {
	c := cache.NewSupplementCache(6 * time.Hour)
	h := NewSupplementHandler(c)

	body := `{"items":[{"title":"fine"},{"url":"https://example.com/x"}]}`
	req := httptest.NewRequest(http.MethodPost, "/supplement", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Push(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if c.Status().Available {
		t.Error("rejected payload mutated the cache")
	}
}

func TestSupplementHandler_PushAndStatus(t *testing.T) {
	c := cache.NewSupplementCache(6 * time.Hour)
	h := NewSupplementHandler(c)

	body := `{
		"generatedAt": "2025-06-01T10:00:00Z",
		"items": [
			{"title": "feeder item one", "source": "Bird", "metrics": {"likes": 120}, "discoveredAt": "2025-06-01T09:00:00Z"},
			{"title": "feeder item two", "source": "Bird", "discoveredAt": "2025-06-01T08:30:00Z"},
			{"title": "feeder item three", "source": "Last30Days", "discoveredAt": "2025-06-01T07:00:00Z"}
		]
	}`
	req := httptest.NewRequest(http.MethodPost, "/supplement", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Push(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rec.Code, rec.Body.String())
	}

	statusRec := httptest.NewRecorder()
	h.Status(statusRec, httptest.NewRequest(http.MethodGet, "/supplement/status", nil))

	var status trend.SupplementStatus
	if err := json.NewDecoder(statusRec.Body).Decode(&status); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	if !status.Available {
		t.Fatal("status.Available = false after push")
	}
	if status.TotalCount != 3 {
		t.Errorf("TotalCount = %d, want 3", status.TotalCount)
	}
	if status.Counts["Bird"] != 2 || status.Counts["Last30Days"] != 1 {
		t.Errorf("Counts = %v", status.Counts)
	}
}

func TestSupplementHandler_DefaultsSourceName(t *testing.T) {
	c := cache.NewSupplementCache(6 * time.Hour)
	h := NewSupplementHandler(c)

	body := `{"items":[{"title":"anonymous feeder item"}]}`
	req := httptest.NewRequest(http.MethodPost, "/supplement", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Push(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	items := c.Items()
	if len(items) != 1 {
		t.Fatalf("cached items = %d, want 1", len(items))
	}
	if items[0].SourceName != "Supplement" {
		t.Errorf("SourceName = %q, want Supplement", items[0].SourceName)
	}
}

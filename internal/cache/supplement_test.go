package cache

import (
	"testing"
	"time"

	"github.com/ericxyz86/culturesoup/internal/domain/trend"
)

func testBatch() *trend.SupplementalBatch {
	return &trend.SupplementalBatch{
		GeneratedAt: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
		Items: []trend.RawItem{
			{Title: "feeder item one", SourceName: "Bird"},
			{Title: "feeder item two", SourceName: "Bird"},
			{Title: "feeder item three", SourceName: "Last30Days"},
		},
		Counts: map[string]int{"Bird": 2, "Last30Days": 1},
	}
}

func TestSupplementCache_EmptyByDefault(t *testing.T) {
	c := NewSupplementCache(6 * time.Hour)

	if items := c.Items(); items != nil {
		t.Errorf("Items on empty cache = %v, want nil", items)
	}
	if status := c.Status(); status.Available {
		t.Error("Status.Available = true on empty cache")
	}
}

func TestSupplementCache_ServesFreshBatch(t *testing.T) {
	c := NewSupplementCache(6 * time.Hour)
	current := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return current }

	c.Set(testBatch())

	current = current.Add(5 * time.Hour)

	if items := c.Items(); len(items) != 3 {
		t.Errorf("Items = %d, want 3", len(items))
	}

	status := c.Status()
	if !status.Available {
		t.Fatal("Status.Available = false for fresh batch")
	}
	if status.TotalCount != 3 {
		t.Errorf("TotalCount = %d, want 3", status.TotalCount)
	}
	if status.Counts["Bird"] != 2 || status.Counts["Last30Days"] != 1 {
		t.Errorf("Counts = %v", status.Counts)
	}
	if status.AgeMinutes != 300 {
		t.Errorf("AgeMinutes = %d, want 300", status.AgeMinutes)
	}
}

func TestSupplementCache_LogicalExpiry(t *testing.T) {
	c := NewSupplementCache(6 * time.Hour)
	current := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return current }

	c.Set(testBatch())

	// One minute past the TTL: the batch is never cleared, readers just
	// stop seeing it.
	current = current.Add(6*time.Hour + time.Minute)

	if items := c.Items(); items != nil {
		t.Errorf("Items after expiry = %v, want nil", items)
	}
	if status := c.Status(); status.Available {
		t.Error("Status.Available = true after expiry")
	}
}

func TestSupplementCache_PushReplacesBatch(t *testing.T) {
	c := NewSupplementCache(6 * time.Hour)
	current := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return current }

	c.Set(testBatch())
	c.Set(&trend.SupplementalBatch{
		GeneratedAt: current,
		Items:       []trend.RawItem{{Title: "only item", SourceName: "Bird"}},
		Counts:      map[string]int{"Bird": 1},
	})

	if items := c.Items(); len(items) != 1 {
		t.Errorf("Items = %d, want 1 after replacement", len(items))
	}
}

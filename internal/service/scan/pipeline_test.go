package scan

import (
	"testing"
	"time"

	"github.com/ericxyz86/culturesoup/internal/domain/trend"
)

func fixedNow() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

func testPipeline() *Pipeline {
	p := NewPipeline(48, 25)
	p.Now = fixedNow
	return p
}

func TestPipeline_Process(t *testing.T) {
	now := fixedNow()

	items := []trend.RawItem{
		{
			Title:        "OpenAI announces GPT-6 today",
			SourceName:   trend.SourceTwitter,
			RawMetrics:   map[string]float64{"likes": 1000, "reposts": 200, "replies": 50, "quotes": 10, "views": 100000},
			DiscoveredAt: now.Add(-2 * time.Hour),
		},
		{
			Title:        "an old story everyone already read",
			SourceName:   trend.SourceReddit,
			RawMetrics:   map[string]float64{"points": 5000, "comments": 900},
			DiscoveredAt: now.Add(-50 * time.Hour),
		},
		{
			Title:        "OpenAI announces something 新しいモデル today",
			SourceName:   trend.SourceReddit,
			RawMetrics:   map[string]float64{"points": 9000},
			DiscoveredAt: now.Add(-1 * time.Hour),
		},
		{
			Title:      "a story with no usable timestamp at all",
			SourceName: trend.SourceReddit,
			RawMetrics: map[string]float64{"points": 9000},
		},
	}

	got := testPipeline().Process(items)
	if len(got) != 1 {
		t.Fatalf("Process returned %d topics, want 1", len(got))
	}
	if got[0].ID != "scan-1" {
		t.Errorf("topic ID = %q, want scan-1", got[0].ID)
	}
	if got[0].Title != "OpenAI announces GPT-6 today" {
		t.Errorf("surviving topic = %q", got[0].Title)
	}
}

func TestPipeline_DedupeAcrossSources(t *testing.T) {
	now := fixedNow()

	// Same story on two platforms; Reddit has the higher normalized
	// velocity and must win.
	items := []trend.RawItem{
		{
			Title:        "OpenAI announces GPT-6 today",
			SourceName:   trend.SourceTwitter,
			RawMetrics:   map[string]float64{"likes": 100},
			DiscoveredAt: now.Add(-2 * time.Hour),
		},
		{
			Title:        "openai Announces GPT 6 Today!!",
			SourceName:   trend.SourceReddit,
			RawMetrics:   map[string]float64{"points": 4000, "comments": 100},
			DiscoveredAt: now.Add(-2 * time.Hour),
		},
	}

	got := testPipeline().Process(items)
	if len(got) != 1 {
		t.Fatalf("Process returned %d topics, want 1", len(got))
	}
	if got[0].Platform != trend.SourceReddit {
		t.Errorf("surviving platform = %q, want %q", got[0].Platform, trend.SourceReddit)
	}
}

func TestPipeline_CapsOutput(t *testing.T) {
	now := fixedNow()

	p := NewPipeline(48, 3)
	p.Now = fixedNow

	var items []trend.RawItem
	for i := 0; i < 10; i++ {
		items = append(items, trend.RawItem{
			Title:        titleN(i),
			SourceName:   trend.SourceHackerNews,
			RawMetrics:   map[string]float64{"points": float64(100 * (i + 1))},
			DiscoveredAt: now.Add(-3 * time.Hour),
		})
	}

	got := p.Process(items)
	if len(got) != 3 {
		t.Fatalf("Process returned %d topics, want 3", len(got))
	}
	// highest-point story first
	if got[0].Title != titleN(9) {
		t.Errorf("top topic = %q, want %q", got[0].Title, titleN(9))
	}
}

func titleN(i int) string {
	letters := "abcdefghij"
	return "unique trending story called " + string(letters[i])
}

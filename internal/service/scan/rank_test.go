package scan

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/ericxyz86/culturesoup/internal/domain/trend"
)

func TestRank_SortsAndCaps(t *testing.T) {
	var items []trend.RawItem
	for i := 0; i < 30; i++ {
		items = append(items, trend.RawItem{
			Title:              fmt.Sprintf("story number %d", i),
			SourceName:         trend.SourceReddit,
			NormalizedVelocity: float64(i * 10),
			AgeHours:           2,
			DiscoveredAt:       time.Now().Add(-2 * time.Hour),
		})
	}

	got := Rank(items, 25)
	if len(got) != 25 {
		t.Fatalf("Rank returned %d topics, want 25", len(got))
	}

	for i, topic := range got {
		wantID := fmt.Sprintf("scan-%d", i+1)
		if topic.ID != wantID {
			t.Errorf("topic %d ID = %q, want %q", i, topic.ID, wantID)
		}
	}

	// highest velocity first
	if got[0].Title != "story number 29" {
		t.Errorf("top topic = %q, want story number 29", got[0].Title)
	}
}

func TestRank_DescendingOrder(t *testing.T) {
	items := []trend.RawItem{
		{Title: "slow", NormalizedVelocity: 5},
		{Title: "fast", NormalizedVelocity: 500},
		{Title: "medium", NormalizedVelocity: 50},
	}

	got := Rank(items, 10)
	want := []string{"fast", "medium", "slow"}
	for i, title := range want {
		if got[i].Title != title {
			t.Errorf("position %d = %q, want %q", i, got[i].Title, title)
		}
	}
}

func TestRank_WhyTrending(t *testing.T) {
	items := []trend.RawItem{{
		Title:              "OpenAI announces GPT-6 today",
		SourceName:         trend.SourceTwitter,
		Engagement:         "2.7K likes · 300 RTs · 50 replies",
		NormalizedVelocity: 1370,
		AgeHours:           2,
	}}

	got := Rank(items, 10)
	if len(got) != 1 {
		t.Fatalf("Rank returned %d topics, want 1", len(got))
	}

	why := got[0].WhyTrending
	if !strings.Contains(why, "1.4K engagement/hr") {
		t.Errorf("whyTrending missing velocity: %q", why)
	}
	if !strings.Contains(why, "2.7K likes") {
		t.Errorf("whyTrending missing engagement label: %q", why)
	}
	if !strings.Contains(why, "2h") {
		t.Errorf("whyTrending missing age: %q", why)
	}
}

func TestFormatCount(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{950, "950"},
		{1000, "1.0K"},
		{1370, "1.4K"},
		{2400000, "2.4M"},
	}

	for _, tt := range tests {
		if got := FormatCount(tt.in); got != tt.want {
			t.Errorf("FormatCount(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

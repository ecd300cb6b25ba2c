package scan

import (
	"math"
	"testing"
	"time"

	"github.com/ericxyz86/culturesoup/internal/domain/trend"
)

func TestScore_TwitterWeights(t *testing.T) {
	metrics := map[string]float64{
		"likes":   1000,
		"reposts": 200,
		"replies": 50,
		"quotes":  10,
		"views":   100000,
	}

	// 1000 + 600 + 100 + 40 + 1000
	got := Score(metrics, trend.SourceTwitter)
	if got != 2740 {
		t.Errorf("Score = %v, want 2740", got)
	}

	velocity := got / 2.0
	if velocity != 1370 {
		t.Errorf("velocity = %v, want 1370", velocity)
	}
	if normalized := velocity * ScaleFor(trend.SourceTwitter); normalized != 1370 {
		t.Errorf("normalized velocity = %v, want 1370", normalized)
	}
}

func TestScore_UnknownSourceSumsMetrics(t *testing.T) {
	metrics := map[string]float64{"likes": 10, "whatever": 5}

	if got := Score(metrics, "Bird"); got != 15 {
		t.Errorf("Score = %v, want 15", got)
	}
	if scale := ScaleFor("Bird"); scale != 1.0 {
		t.Errorf("ScaleFor = %v, want 1.0", scale)
	}
}

func TestScaleFor(t *testing.T) {
	tests := []struct {
		source string
		want   float64
	}{
		{trend.SourceTwitter, 1.0},
		{trend.SourceReddit, 0.8},
		{trend.SourceHackerNews, 1.5},
		{trend.SourceYouTube, 0.3},
		{trend.SourceShortVideo, 0.4},
		{trend.SourceTechPress, 1.2},
	}

	for _, tt := range tests {
		if got := ScaleFor(tt.source); got != tt.want {
			t.Errorf("ScaleFor(%q) = %v, want %v", tt.source, got, tt.want)
		}
	}
}

func TestAgeHours(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		ts        time.Time
		wantHours float64
		wantOK    bool
	}{
		{"two hours old", now.Add(-2 * time.Hour), 2, true},
		{"floored at 0.1", now.Add(-3 * time.Minute), 0.1, true},
		{"zero timestamp", time.Time{}, 0, false},
		{"future timestamp", now.Add(time.Hour), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := AgeHours(now, tt.ts)
			if ok != tt.wantOK {
				t.Fatalf("AgeHours ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && math.Abs(got-tt.wantHours) > 1e-9 {
				t.Errorf("AgeHours = %v, want %v", got, tt.wantHours)
			}
		})
	}
}

package trend

import (
	"context"
	"time"
)

// RawItem is one candidate trending unit collected from a single source.
// The derived fields (AgeHours, Score, Velocity, NormalizedVelocity) are
// computed once by the scan pipeline and not mutated afterwards.
type RawItem struct {
	Title        string             `json:"title"`
	URL          string             `json:"url"`
	SourceName   string             `json:"source"`
	SourceDetail string             `json:"sourceDetail"`
	Engagement   string             `json:"engagement"`
	RawMetrics   map[string]float64 `json:"rawMetrics"`
	DiscoveredAt time.Time          `json:"discoveredAt"`

	AgeHours           float64 `json:"-"`
	Score              float64 `json:"-"`
	Velocity           float64 `json:"-"`
	NormalizedVelocity float64 `json:"-"`
}

// TrendingTopic is the public shape of one ranked trend.
type TrendingTopic struct {
	ID             string    `json:"id"`
	Platform       string    `json:"platform"`
	PlatformDetail string    `json:"platformDetail"`
	Title          string    `json:"title"`
	URL            string    `json:"url"`
	Engagement     string    `json:"engagement"`
	WhyTrending    string    `json:"whyTrending"`
	DiscoveredAt   time.Time `json:"discoveredAt"`
}

// ScanResult is the output of one pipeline run. It is immutable after
// creation; the result cache replaces it wholesale, never merges.
type ScanResult struct {
	Trends    []TrendingTopic `json:"trends"`
	ScannedAt time.Time       `json:"scannedAt"`
	Sources   []string        `json:"sources"`
	RawCount  int             `json:"rawCount"`
}

// SupplementalBatch holds raw items pushed by an out-of-band feeder
// process. The batch is merged into the next scan as a virtual source
// until it expires.
type SupplementalBatch struct {
	GeneratedAt time.Time      `json:"generatedAt"`
	Items       []RawItem      `json:"items"`
	Counts      map[string]int `json:"counts"`
}

// SupplementStatus describes the state of the supplemental cache.
type SupplementStatus struct {
	Available   bool           `json:"available"`
	GeneratedAt *time.Time     `json:"generatedAt,omitempty"`
	Counts      map[string]int `json:"counts,omitempty"`
	TotalCount  int            `json:"totalCount,omitempty"`
	AgeMinutes  int            `json:"ageMinutes,omitempty"`
}

// Source is one external system supplying candidate trending items.
// Collect returns whatever it could fetch; partial upstream failures are
// handled inside the adapter and never abort sibling sources.
type Source interface {
	Name() string
	Collect(ctx context.Context) ([]RawItem, error)
}

// Scanner runs the aggregation pipeline across all registered sources.
type Scanner interface {
	Scan(ctx context.Context) (*ScanResult, error)
	Latest() (*ScanResult, bool)
}

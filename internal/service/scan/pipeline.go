package scan

import (
	"time"

	"github.com/ericxyz86/culturesoup/internal/domain/trend"
)

// Pipeline holds the pure stages of a scan: language filtering, age
// gating, scoring, normalization, dedupe and ranking. Topical keyword
// filtering happens upstream in the source adapters because only they
// know which of their feeds are always on-topic.
type Pipeline struct {
	MaxAgeHours float64
	MaxResults  int

	// Now is swappable for tests; defaults to time.Now.
	Now func() time.Time
}

func NewPipeline(maxAgeHours float64, maxResults int) *Pipeline {
	return &Pipeline{
		MaxAgeHours: maxAgeHours,
		MaxResults:  maxResults,
		Now:         time.Now,
	}
}

// Process runs collected raw items through the full pipeline and returns
// the ranked, capped trend list. Items failing the language heuristic,
// older than the age cap, or with unresolvable timestamps are dropped
// before scoring.
func (p *Pipeline) Process(items []trend.RawItem) []trend.TrendingTopic {
	now := p.Now()

	scored := make([]trend.RawItem, 0, len(items))
	for _, item := range items {
		if !EnglishText(item.Title) {
			continue
		}
		age, ok := AgeHours(now, item.DiscoveredAt)
		if !ok || age > p.MaxAgeHours {
			continue
		}
		item.AgeHours = age
		item.Score = Score(item.RawMetrics, item.SourceName)
		item.Velocity = item.Score / age
		item.NormalizedVelocity = item.Velocity * ScaleFor(item.SourceName)
		scored = append(scored, item)
	}

	return Rank(Dedupe(scored), p.MaxResults)
}

package scan

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/ericxyz86/culturesoup/internal/domain/trend"
)

// Rank orders items by normalized velocity, truncates to the output cap
// and converts the survivors into their public shape. IDs are positional
// and only assigned here.
func Rank(items []trend.RawItem, limit int) []trend.TrendingTopic {
	ranked := make([]trend.RawItem, len(items))
	copy(ranked, items)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].NormalizedVelocity > ranked[j].NormalizedVelocity
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	topics := make([]trend.TrendingTopic, 0, len(ranked))
	for i, item := range ranked {
		topics = append(topics, trend.TrendingTopic{
			ID:             fmt.Sprintf("scan-%d", i+1),
			Platform:       item.SourceName,
			PlatformDetail: item.SourceDetail,
			Title:          item.Title,
			URL:            item.URL,
			Engagement:     item.Engagement,
			WhyTrending:    whyTrending(item),
			DiscoveredAt:   item.DiscoveredAt,
		})
	}
	return topics
}

func whyTrending(item trend.RawItem) string {
	label := item.Engagement
	if label == "" {
		label = "score " + FormatCount(item.Score)
	}
	return fmt.Sprintf("Velocity: %s engagement/hr · %s in %.0fh",
		FormatCount(item.NormalizedVelocity), label, math.Ceil(item.AgeHours))
}

// FormatCount abbreviates large counters for display: 1370 -> "1.4K",
// 2400000 -> "2.4M".
func FormatCount(n float64) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", n/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fK", n/1_000)
	default:
		return strconv.Itoa(int(math.Round(n)))
	}
}

package source

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/ericxyz86/culturesoup/internal/config"
	"github.com/ericxyz86/culturesoup/internal/domain/trend"
	"github.com/ericxyz86/culturesoup/internal/logger"
	"github.com/ericxyz86/culturesoup/internal/service/scan"
)

// editorialWeight is the flat metric given to press stories, which have
// no native engagement counters. Velocity ends up purely age-driven:
// the freshest coverage ranks highest.
const editorialWeight = 25

// TechPressSource reads the configured publication feeds. Dedicated AI
// verticals are marked always-relevant and skip the keyword test;
// general feeds do not.
type TechPressSource struct {
	parser *gofeed.Parser
	feeds  []config.WatchedRSSFeed

	keywords   *scan.Keywords
	batchSize  int
	batchDelay time.Duration
}

func NewTechPressSource(feeds []config.WatchedRSSFeed, keywords *scan.Keywords) *TechPressSource {
	return &TechPressSource{
		parser:     gofeed.NewParser(),
		feeds:      feeds,
		keywords:   keywords,
		batchSize:  3,
		batchDelay: 250 * time.Millisecond,
	}
}

func (s *TechPressSource) Name() string { return trend.SourceTechPress }

func (s *TechPressSource) Collect(ctx context.Context) ([]trend.RawItem, error) {
	var (
		mu    sync.Mutex
		items []trend.RawItem
	)

	forEachBatch(ctx, len(s.feeds), s.batchSize, s.batchDelay, func(i int) {
		watched := s.feeds[i]
		feed, err := s.parser.ParseURLWithContext(watched.URL, ctx)
		if err != nil {
			logger.Warn("rss feed fetch failed", "feed", watched.Name, "error", err)
			return
		}

		var converted []trend.RawItem
		for _, entry := range feed.Items {
			if entry.Title == "" || entry.PublishedParsed == nil {
				continue
			}
			if !watched.AlwaysRelevant && !s.keywords.Match(entry.Title) {
				continue
			}

			converted = append(converted, trend.RawItem{
				Title:        entry.Title,
				URL:          entry.Link,
				SourceName:   trend.SourceTechPress,
				SourceDetail: watched.Name,
				Engagement:   fmt.Sprintf("featured on %s", watched.Name),
				RawMetrics:   map[string]float64{"editorial": editorialWeight},
				DiscoveredAt: *entry.PublishedParsed,
			})
		}

		mu.Lock()
		items = append(items, converted...)
		mu.Unlock()
	})

	return items, nil
}

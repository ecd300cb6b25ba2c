package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/ericxyz86/culturesoup/internal/domain/trend"
	"github.com/ericxyz86/culturesoup/internal/logger"
	"github.com/ericxyz86/culturesoup/internal/service/scan"
)

// HackerNewsSource scans the front of the topstories list through the
// Firebase API. The whole feed is general tech, so the keyword test
// always applies.
type HackerNewsSource struct {
	httpClient *http.Client
	baseURL    string
	keywords   *scan.Keywords

	topN       int
	batchSize  int
	batchDelay time.Duration
}

type hnItem struct {
	ID          int     `json:"id"`
	Type        string  `json:"type"`
	Title       string  `json:"title"`
	URL         string  `json:"url"`
	Score       float64 `json:"score"`
	Descendants float64 `json:"descendants"`
	Time        int64   `json:"time"`
}

func NewHackerNewsSource(keywords *scan.Keywords) *HackerNewsSource {
	return &HackerNewsSource{
		httpClient: &http.Client{Timeout: 5 * time.Second},
		baseURL:    "https://hacker-news.firebaseio.com/v0",
		keywords:   keywords,
		topN:       40,
		batchSize:  10,
		batchDelay: 250 * time.Millisecond,
	}
}

func (s *HackerNewsSource) Name() string { return trend.SourceHackerNews }

// Collect fetches the top story IDs, then the items themselves in
// concurrent batches. A failed item fetch contributes nothing.
func (s *HackerNewsSource) Collect(ctx context.Context) ([]trend.RawItem, error) {
	ids, err := s.fetchTopStoryIDs(ctx)
	if err != nil {
		return nil, err
	}
	if len(ids) > s.topN {
		ids = ids[:s.topN]
	}

	var (
		mu    sync.Mutex
		items []trend.RawItem
	)

	forEachBatch(ctx, len(ids), s.batchSize, s.batchDelay, func(i int) {
		item, err := s.fetchItem(ctx, ids[i])
		if err != nil {
			logger.Debug("hn item fetch failed", "id", ids[i], "error", err)
			return
		}
		if item.Type != "story" || item.Title == "" {
			return
		}
		if !s.keywords.Match(item.Title) {
			return
		}

		url := item.URL
		if url == "" {
			url = fmt.Sprintf("https://news.ycombinator.com/item?id=%d", item.ID)
		}

		raw := trend.RawItem{
			Title:        item.Title,
			URL:          url,
			SourceName:   trend.SourceHackerNews,
			SourceDetail: fmt.Sprintf("%.0f pts · %.0f comments", item.Score, item.Descendants),
			Engagement:   fmt.Sprintf("%.0f pts · %.0f comments", item.Score, item.Descendants),
			RawMetrics:   map[string]float64{"points": item.Score, "comments": item.Descendants},
			DiscoveredAt: time.Unix(item.Time, 0),
		}

		mu.Lock()
		items = append(items, raw)
		mu.Unlock()
	})

	return items, nil
}

func (s *HackerNewsSource) fetchTopStoryIDs(ctx context.Context) ([]int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/topstories.json", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch top stories: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HN API returned status code %d", resp.StatusCode)
	}

	var ids []int
	if err := json.NewDecoder(resp.Body).Decode(&ids); err != nil {
		return nil, fmt.Errorf("failed to decode top stories: %w", err)
	}
	return ids, nil
}

func (s *HackerNewsSource) fetchItem(ctx context.Context, id int) (*hnItem, error) {
	url := fmt.Sprintf("%s/item/%d.json", s.baseURL, id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch item: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HN API returned status code %d", resp.StatusCode)
	}

	var item hnItem
	if err := json.NewDecoder(resp.Body).Decode(&item); err != nil {
		return nil, fmt.Errorf("failed to decode item: %w", err)
	}
	return &item, nil
}

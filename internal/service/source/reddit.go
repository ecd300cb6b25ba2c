package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/ericxyz86/culturesoup/internal/config"
	"github.com/ericxyz86/culturesoup/internal/domain/trend"
	"github.com/ericxyz86/culturesoup/internal/logger"
	"github.com/ericxyz86/culturesoup/internal/service/scan"
)

// RedditSource pulls the hot listing of each watched subreddit through
// the public JSON API. No credentials needed, just a User-Agent.
type RedditSource struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	subreddits []config.WatchedFeed
	keywords   *scan.Keywords

	batchSize  int
	batchDelay time.Duration
}

type redditPost struct {
	Title       string  `json:"title"`
	URL         string  `json:"url"`
	Permalink   string  `json:"permalink"`
	Score       float64 `json:"score"`
	NumComments float64 `json:"num_comments"`
	Created     float64 `json:"created_utc"`
	Stickied    bool    `json:"stickied"`
	SelfText    string  `json:"selftext"`
}

type redditListing struct {
	Data struct {
		Children []struct {
			Data redditPost `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

func NewRedditSource(subreddits []config.WatchedFeed, keywords *scan.Keywords) *RedditSource {
	return &RedditSource{
		httpClient: &http.Client{Timeout: 8 * time.Second},
		baseURL:    "https://www.reddit.com",
		userAgent:  "culturesoup/0.4",
		subreddits: subreddits,
		keywords:   keywords,
		batchSize:  2,
		batchDelay: 500 * time.Millisecond,
	}
}

func (s *RedditSource) Name() string { return trend.SourceReddit }

// Collect fetches each subreddit's hot listing. A failing subreddit is
// logged and skipped; it never fails the adapter.
func (s *RedditSource) Collect(ctx context.Context) ([]trend.RawItem, error) {
	var (
		mu    sync.Mutex
		items []trend.RawItem
	)

	forEachBatch(ctx, len(s.subreddits), s.batchSize, s.batchDelay, func(i int) {
		sub := s.subreddits[i]
		posts, err := s.fetchSubreddit(ctx, sub.Name)
		if err != nil {
			logger.Warn("reddit subreddit fetch failed", "subreddit", sub.Name, "error", err)
			return
		}

		var converted []trend.RawItem
		for _, p := range posts {
			if p.Title == "" || p.Stickied {
				continue
			}
			if !sub.AlwaysRelevant && !s.keywords.Match(p.Title+" "+truncate(p.SelfText, 300)) {
				continue
			}

			url := p.URL
			if !strings.HasPrefix(url, "https://www.reddit.com") {
				url = s.baseURL + p.Permalink
			}

			converted = append(converted, trend.RawItem{
				Title:        p.Title,
				URL:          url,
				SourceName:   trend.SourceReddit,
				SourceDetail: fmt.Sprintf("r/%s · %s pts", sub.Name, scan.FormatCount(p.Score)),
				Engagement:   fmt.Sprintf("%s pts · %.0f comments", scan.FormatCount(p.Score), p.NumComments),
				RawMetrics:   map[string]float64{"points": p.Score, "comments": p.NumComments},
				DiscoveredAt: time.Unix(int64(p.Created), 0),
			})
		}

		mu.Lock()
		items = append(items, converted...)
		mu.Unlock()
	})

	return items, nil
}

func (s *RedditSource) fetchSubreddit(ctx context.Context, name string) ([]redditPost, error) {
	url := fmt.Sprintf("%s/r/%s/hot.json?limit=20&raw_json=1", s.baseURL, name)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Reddit API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Reddit API returned status code %d", resp.StatusCode)
	}

	var listing redditListing
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		return nil, fmt.Errorf("failed to decode Reddit API response: %w", err)
	}

	posts := make([]redditPost, 0, len(listing.Data.Children))
	for _, child := range listing.Data.Children {
		posts = append(posts, child.Data)
	}
	return posts, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

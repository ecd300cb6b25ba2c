package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/ericxyz86/culturesoup/internal/domain/trend"
	"github.com/ericxyz86/culturesoup/internal/service/scan"
)

// ShortVideoSource reads a trending feed from a short-video platform
// relay. The base URL points at whatever relay is deployed (the public
// APIs there churn too much to hardcode one); main skips registration
// when no relay is configured.
type ShortVideoSource struct {
	httpClient *http.Client
	baseURL    string
	keywords   *scan.Keywords
}

type shortVideoFeed struct {
	Items []struct {
		Title       string  `json:"title"`
		URL         string  `json:"url"`
		Author      string  `json:"author"`
		Plays       float64 `json:"plays"`
		Likes       float64 `json:"likes"`
		Comments    float64 `json:"comments"`
		Shares      float64 `json:"shares"`
		PublishedAt string  `json:"published_at"`
	} `json:"items"`
}

func NewShortVideoSource(baseURL string, keywords *scan.Keywords) *ShortVideoSource {
	return &ShortVideoSource{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    baseURL,
		keywords:   keywords,
	}
}

func (s *ShortVideoSource) Name() string { return trend.SourceShortVideo }

func (s *ShortVideoSource) Collect(ctx context.Context) ([]trend.RawItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/trending.json", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch trending feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("short video relay returned status code %d", resp.StatusCode)
	}

	var feed shortVideoFeed
	if err := json.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("failed to decode trending feed: %w", err)
	}

	var items []trend.RawItem
	for _, v := range feed.Items {
		if v.Title == "" || !s.keywords.Match(v.Title) {
			continue
		}

		publishedAt, err := time.Parse(time.RFC3339, v.PublishedAt)
		if err != nil {
			continue
		}

		items = append(items, trend.RawItem{
			Title:        v.Title,
			URL:          v.URL,
			SourceName:   trend.SourceShortVideo,
			SourceDetail: "@" + v.Author,
			Engagement: fmt.Sprintf("%s plays · %s likes · %s shares",
				scan.FormatCount(v.Plays), scan.FormatCount(v.Likes), scan.FormatCount(v.Shares)),
			RawMetrics: map[string]float64{
				"plays":    v.Plays,
				"likes":    v.Likes,
				"comments": v.Comments,
				"shares":   v.Shares,
			},
			DiscoveredAt: publishedAt,
		})
	}
	return items, nil
}

package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ericxyz86/culturesoup/internal/domain/trend"
	"github.com/ericxyz86/culturesoup/internal/service/scan"
)

// YouTubeSource searches the Data API v3 for recent topical videos and
// looks up their statistics. Requires an API key; main skips
// registration without one.
type YouTubeSource struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	query      string
	maxResults int
}

type ytSearchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
	} `json:"items"`
}

type ytVideosResponse struct {
	Items []struct {
		ID      string `json:"id"`
		Snippet struct {
			Title       string `json:"title"`
			ChannelName string `json:"channelTitle"`
			PublishedAt string `json:"publishedAt"`
		} `json:"snippet"`
		Statistics struct {
			ViewCount    string `json:"viewCount"`
			LikeCount    string `json:"likeCount"`
			CommentCount string `json:"commentCount"`
		} `json:"statistics"`
	} `json:"items"`
}

func NewYouTubeSource(apiKey string) *YouTubeSource {
	return &YouTubeSource{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    "https://www.googleapis.com/youtube/v3",
		apiKey:     apiKey,
		query:      "artificial intelligence OR AI news",
		maxResults: 10,
	}
}

func (s *YouTubeSource) Name() string { return trend.SourceYouTube }

// Collect runs a search for the last 24 hours ordered by view count,
// then a statistics lookup for the hits.
func (s *YouTubeSource) Collect(ctx context.Context) ([]trend.RawItem, error) {
	videoIDs, err := s.search(ctx)
	if err != nil {
		return nil, err
	}
	if len(videoIDs) == 0 {
		return nil, nil
	}

	stats, err := s.videoStats(ctx, videoIDs)
	if err != nil {
		return nil, err
	}

	var items []trend.RawItem
	for _, v := range stats.Items {
		if v.Snippet.Title == "" {
			continue
		}

		publishedAt, err := time.Parse(time.RFC3339, v.Snippet.PublishedAt)
		if err != nil {
			continue
		}

		views, _ := strconv.ParseFloat(v.Statistics.ViewCount, 64)
		likes, _ := strconv.ParseFloat(v.Statistics.LikeCount, 64)
		comments, _ := strconv.ParseFloat(v.Statistics.CommentCount, 64)

		items = append(items, trend.RawItem{
			Title:        v.Snippet.Title,
			URL:          "https://www.youtube.com/watch?v=" + v.ID,
			SourceName:   trend.SourceYouTube,
			SourceDetail: fmt.Sprintf("%s · %s views", v.Snippet.ChannelName, scan.FormatCount(views)),
			Engagement:   fmt.Sprintf("%s views · %s likes", scan.FormatCount(views), scan.FormatCount(likes)),
			RawMetrics:   map[string]float64{"views": views, "likes": likes, "comments": comments},
			DiscoveredAt: publishedAt,
		})
	}
	return items, nil
}

func (s *YouTubeSource) search(ctx context.Context) ([]string, error) {
	publishedAfter := time.Now().Add(-24 * time.Hour).UTC().Format(time.RFC3339)

	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("q", s.query)
	params.Set("type", "video")
	params.Set("order", "viewCount")
	params.Set("publishedAfter", publishedAfter)
	params.Set("relevanceLanguage", "en")
	params.Set("regionCode", "US")
	params.Set("maxResults", strconv.Itoa(s.maxResults))
	params.Set("key", s.apiKey)

	var result ytSearchResponse
	if err := s.getJSON(ctx, s.baseURL+"/search?"+params.Encode(), &result); err != nil {
		return nil, fmt.Errorf("youtube search: %w", err)
	}

	var ids []string
	for _, item := range result.Items {
		if item.ID.VideoID != "" {
			ids = append(ids, item.ID.VideoID)
		}
	}
	return ids, nil
}

func (s *YouTubeSource) videoStats(ctx context.Context, ids []string) (*ytVideosResponse, error) {
	params := url.Values{}
	params.Set("part", "statistics,snippet")
	params.Set("id", strings.Join(ids, ","))
	params.Set("key", s.apiKey)

	var result ytVideosResponse
	if err := s.getJSON(ctx, s.baseURL+"/videos?"+params.Encode(), &result); err != nil {
		return nil, fmt.Errorf("youtube videos: %w", err)
	}
	return &result, nil
}

func (s *YouTubeSource) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("YouTube API returned status code %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

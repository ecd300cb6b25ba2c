package source

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/dghubble/oauth1"
	twitter "github.com/g8rswimmer/go-twitter/v2"

	"github.com/ericxyz86/culturesoup/internal/config"
	"github.com/ericxyz86/culturesoup/internal/domain/trend"
	"github.com/ericxyz86/culturesoup/internal/logger"
	"github.com/ericxyz86/culturesoup/internal/service/scan"
)

// TwitterSource pulls recent tweets from a fixed set of tracked
// accounts. Official org accounts are always on-topic; general-interest
// accounts go through the keyword test.
type TwitterSource struct {
	client   *twitter.Client
	accounts []config.WatchedFeed
	keywords *scan.Keywords

	batchSize  int
	batchDelay time.Duration
}

type bearerAuthorizer struct {
	token string
}

func (a bearerAuthorizer) Add(req *http.Request) {
	req.Header.Add("Authorization", "Bearer "+a.token)
}

// oauthAuthorizer adds nothing: the oauth1 transport signs the request.
type oauthAuthorizer struct{}

func (oauthAuthorizer) Add(req *http.Request) {}

// NewTwitterSource builds the adapter. User-context OAuth1 credentials
// are preferred when all four are configured; otherwise the app bearer
// token is used.
func NewTwitterSource(cfg config.SourcesConfig, accounts []config.WatchedFeed, keywords *scan.Keywords) *TwitterSource {
	var client *twitter.Client

	if cfg.TwitterConsumerKey != "" && cfg.TwitterConsumerSecret != "" &&
		cfg.TwitterAccessToken != "" && cfg.TwitterAccessSecret != "" {
		oauthCfg := oauth1.NewConfig(cfg.TwitterConsumerKey, cfg.TwitterConsumerSecret)
		token := oauth1.NewToken(cfg.TwitterAccessToken, cfg.TwitterAccessSecret)
		client = &twitter.Client{
			Authorizer: oauthAuthorizer{},
			Client:     oauthCfg.Client(oauth1.NoContext, token),
			Host:       "https://api.twitter.com",
		}
	} else {
		client = &twitter.Client{
			Authorizer: bearerAuthorizer{token: cfg.TwitterBearerToken},
			Client:     &http.Client{Timeout: 8 * time.Second},
			Host:       "https://api.twitter.com",
		}
	}

	return &TwitterSource{
		client:     client,
		accounts:   accounts,
		keywords:   keywords,
		batchSize:  3,
		batchDelay: 500 * time.Millisecond,
	}
}

func (s *TwitterSource) Name() string { return trend.SourceTwitter }

var tcoLinkPattern = regexp.MustCompile(`https://t\.co/\S+`)

// Collect looks up the tracked accounts, then fetches their timelines
// in small batches. Per-account failures are logged and skipped.
func (s *TwitterSource) Collect(ctx context.Context) ([]trend.RawItem, error) {
	handles := make([]string, 0, len(s.accounts))
	relevantByHandle := make(map[string]bool, len(s.accounts))
	for _, a := range s.accounts {
		handles = append(handles, a.Name)
		relevantByHandle[strings.ToLower(a.Name)] = a.AlwaysRelevant
	}

	lookup, err := s.client.UserNameLookup(ctx, handles, twitter.UserLookupOpts{})
	if err != nil {
		return nil, fmt.Errorf("twitter user lookup: %w", err)
	}

	users := lookup.Raw.Users

	var (
		mu    sync.Mutex
		items []trend.RawItem
	)

	forEachBatch(ctx, len(users), s.batchSize, s.batchDelay, func(i int) {
		user := users[i]
		converted, err := s.fetchTimeline(ctx, user.ID, user.UserName, relevantByHandle[strings.ToLower(user.UserName)])
		if err != nil {
			logger.Warn("twitter timeline fetch failed", "account", user.UserName, "error", err)
			return
		}

		mu.Lock()
		items = append(items, converted...)
		mu.Unlock()
	})

	return items, nil
}

func (s *TwitterSource) fetchTimeline(ctx context.Context, userID, handle string, alwaysRelevant bool) ([]trend.RawItem, error) {
	timeline, err := s.client.UserTweetTimeline(ctx, userID, twitter.UserTweetTimelineOpts{
		MaxResults: 10,
		Excludes:   []twitter.Exclude{twitter.ExcludeRetweets, twitter.ExcludeReplies},
		TweetFields: []twitter.TweetField{
			twitter.TweetFieldCreatedAt,
			twitter.TweetFieldPublicMetrics,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("user tweet timeline: %w", err)
	}

	var items []trend.RawItem
	for _, tweet := range timeline.Raw.Tweets {
		if tweet.Text == "" || tweet.PublicMetrics == nil {
			continue
		}

		text := strings.TrimSpace(tcoLinkPattern.ReplaceAllString(tweet.Text, ""))
		if !alwaysRelevant && !s.keywords.Match(text) {
			continue
		}

		createdAt, err := time.Parse(time.RFC3339, tweet.CreatedAt)
		if err != nil {
			continue
		}

		m := tweet.PublicMetrics
		items = append(items, trend.RawItem{
			Title:        truncate(text, 200),
			URL:          fmt.Sprintf("https://x.com/%s/status/%s", handle, tweet.ID),
			SourceName:   trend.SourceTwitter,
			SourceDetail: "@" + handle,
			Engagement: fmt.Sprintf("%s likes · %s RTs · %d replies",
				scan.FormatCount(float64(m.Likes)), scan.FormatCount(float64(m.Retweets)), m.Replies),
			RawMetrics: map[string]float64{
				"likes":   float64(m.Likes),
				"reposts": float64(m.Retweets),
				"replies": float64(m.Replies),
				"quotes":  float64(m.Quotes),
			},
			DiscoveredAt: createdAt,
		})
	}
	return items, nil
}

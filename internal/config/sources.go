package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SourceLists is the YAML-configurable part of source setup: which feeds
// to watch and the topical vocabulary. Any field left empty in the file
// keeps its built-in default.
type SourceLists struct {
	Keywords        []string         `yaml:"keywords"`
	TwitterAccounts []WatchedFeed    `yaml:"twitter_accounts"`
	Subreddits      []WatchedFeed    `yaml:"subreddits"`
	RSSFeeds        []WatchedRSSFeed `yaml:"rss_feeds"`
}

// WatchedFeed is one tracked account or community. AlwaysRelevant feeds
// skip the topical keyword test: their whole output counts as on-topic.
type WatchedFeed struct {
	Name           string `yaml:"name"`
	AlwaysRelevant bool   `yaml:"always_relevant"`
}

// WatchedRSSFeed is one tech-press feed for the RSS source.
type WatchedRSSFeed struct {
	Name           string `yaml:"name"`
	URL            string `yaml:"url"`
	AlwaysRelevant bool   `yaml:"always_relevant"`
}

// DefaultSourceLists returns the built-in watch lists, mirroring the
// curated set the dashboard was tuned against.
func DefaultSourceLists() SourceLists {
	return SourceLists{
		Keywords: []string{
			"ai", "artificial intelligence", "machine learning", "llm", "gpt",
			"claude", "openai", "anthropic", "deepfake", "chatbot", "neural",
			"generative", "diffusion", "transformer", "deep learning",
			"neuromorphic", "agentic", "copilot", "gemini", "midjourney",
			"stable diffusion", "grok", "robot", "automation", "agi",
			"superintelligence",
		},
		TwitterAccounts: []WatchedFeed{
			{Name: "OpenAI", AlwaysRelevant: true},
			{Name: "AnthropicAI", AlwaysRelevant: true},
			{Name: "GoogleDeepMind", AlwaysRelevant: true},
			{Name: "sama", AlwaysRelevant: true},
			{Name: "DarioAmodei", AlwaysRelevant: true},
			{Name: "elonmusk", AlwaysRelevant: false},
		},
		Subreddits: []WatchedFeed{
			{Name: "artificial", AlwaysRelevant: true},
			{Name: "MachineLearning", AlwaysRelevant: true},
			{Name: "technology", AlwaysRelevant: false},
			{Name: "singularity", AlwaysRelevant: true},
			{Name: "ChatGPT", AlwaysRelevant: true},
		},
		RSSFeeds: []WatchedRSSFeed{
			{Name: "The Verge AI", URL: "https://www.theverge.com/rss/ai-artificial-intelligence/index.xml", AlwaysRelevant: true},
			{Name: "TechCrunch AI", URL: "https://techcrunch.com/category/artificial-intelligence/feed/", AlwaysRelevant: true},
			{Name: "Ars Technica", URL: "https://feeds.arstechnica.com/arstechnica/index", AlwaysRelevant: false},
		},
	}
}

// LoadSourceLists reads the watch lists from a YAML file, falling back to
// the defaults for anything the file does not set. An empty path returns
// the defaults unchanged.
func LoadSourceLists(path string) (SourceLists, error) {
	lists := DefaultSourceLists()
	if path == "" {
		return lists, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return lists, fmt.Errorf("open sources config: %w", err)
	}
	defer f.Close()

	var fileLists SourceLists
	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&fileLists); err != nil {
		return lists, fmt.Errorf("decode sources config: %w", err)
	}

	if len(fileLists.Keywords) > 0 {
		lists.Keywords = fileLists.Keywords
	}
	if len(fileLists.TwitterAccounts) > 0 {
		lists.TwitterAccounts = fileLists.TwitterAccounts
	}
	if len(fileLists.Subreddits) > 0 {
		lists.Subreddits = fileLists.Subreddits
	}
	if len(fileLists.RSSFeeds) > 0 {
		lists.RSSFeeds = fileLists.RSSFeeds
	}

	return lists, nil
}

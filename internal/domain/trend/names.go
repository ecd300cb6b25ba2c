package trend

// Canonical source names as they appear in ScanResult.Sources and on
// TrendingTopic.Platform. Supplement feeder items carry whatever name
// the feeder assigned them.
const (
	SourceTwitter    = "X/Twitter"
	SourceReddit     = "Reddit"
	SourceHackerNews = "Hacker News"
	SourceYouTube    = "YouTube"
	SourceShortVideo = "Short Video"
	SourceTechPress  = "Tech Press"
)

package scan

import (
	"time"

	"github.com/ericxyz86/culturesoup/internal/domain/trend"
)

// Profile describes how one source's native metrics translate into the
// shared engagement scale. Weights encode the signal value of each
// interaction type; Scale compensates for the order-of-magnitude
// differences between sources so no single one dominates the ranking.
type Profile struct {
	Weights map[string]float64
	Scale   float64
}

// Hand-tuned per-source profiles. The scale factors are static
// configuration; they are not derived at runtime.
var profiles = map[string]Profile{
	trend.SourceTwitter: {
		Weights: map[string]float64{"likes": 1, "reposts": 3, "replies": 2, "quotes": 4, "views": 0.01},
		Scale:   1.0,
	},
	trend.SourceReddit: {
		Weights: map[string]float64{"points": 1, "comments": 2},
		Scale:   0.8,
	},
	trend.SourceHackerNews: {
		Weights: map[string]float64{"points": 1, "comments": 2},
		Scale:   1.5,
	},
	trend.SourceYouTube: {
		Weights: map[string]float64{"views": 1, "likes": 10, "comments": 20},
		Scale:   0.3,
	},
	trend.SourceShortVideo: {
		Weights: map[string]float64{"plays": 0.01, "likes": 1, "comments": 2, "shares": 3},
		Scale:   0.4,
	},
	trend.SourceTechPress: {
		Weights: map[string]float64{"editorial": 1},
		Scale:   1.2,
	},
}

// Sources without a profile (supplement feeder items mostly) get a flat
// unit weighting so their pushed metrics still count for something.
var defaultProfile = Profile{Scale: 1.0}

func profileFor(sourceName string) Profile {
	if p, ok := profiles[sourceName]; ok {
		return p
	}
	return defaultProfile
}

// Score converts a source's native engagement counters into a single
// number using that source's weight vector.
func Score(metrics map[string]float64, sourceName string) float64 {
	p := profileFor(sourceName)

	total := 0.0
	if p.Weights == nil {
		for _, v := range metrics {
			total += v
		}
		return total
	}
	for key, weight := range p.Weights {
		total += metrics[key] * weight
	}
	return total
}

// ScaleFor returns the cross-source normalization factor for a source.
func ScaleFor(sourceName string) float64 {
	return profileFor(sourceName).Scale
}

// minAgeHours floors item age so brand-new items do not get unbounded
// velocity from a near-zero divisor.
const minAgeHours = 0.1

// AgeHours computes the age of an item at scoring time. The second
// return value is false when the timestamp is missing or in the future;
// such items are excluded rather than given a sentinel velocity.
func AgeHours(now time.Time, discoveredAt time.Time) (float64, bool) {
	if discoveredAt.IsZero() {
		return 0, false
	}
	hours := now.Sub(discoveredAt).Hours()
	if hours < 0 {
		return 0, false
	}
	if hours < minAgeHours {
		return minAgeHours, true
	}
	return hours, true
}

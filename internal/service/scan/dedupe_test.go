package scan

import (
	"strings"
	"testing"

	"github.com/ericxyz86/culturesoup/internal/domain/trend"
)

func TestFingerprint(t *testing.T) {
	a := Fingerprint("OpenAI announces GPT-6 today")
	b := Fingerprint("openai Announces GPT 6 Today!!")

	if a != b {
		t.Errorf("fingerprints differ: %q vs %q", a, b)
	}
	if a != "openaiannouncesgpt6today" {
		t.Errorf("Fingerprint = %q, want %q", a, "openaiannouncesgpt6today")
	}
}

func TestFingerprint_Truncation(t *testing.T) {
	long := strings.Repeat("a", 60)
	if got := Fingerprint(long); len(got) != 50 {
		t.Errorf("Fingerprint length = %d, want 50", len(got))
	}
}

func TestDedupe_KeepsHighestVelocity(t *testing.T) {
	items := []trend.RawItem{
		{Title: "openai Announces GPT 6 Today!!", NormalizedVelocity: 950},
		{Title: "OpenAI announces GPT-6 today", NormalizedVelocity: 1370},
		{Title: "Something else entirely happened", NormalizedVelocity: 100},
	}

	got := Dedupe(items)
	if len(got) != 2 {
		t.Fatalf("Dedupe returned %d items, want 2", len(got))
	}
	if got[0].NormalizedVelocity != 1370 {
		t.Errorf("survivor velocity = %v, want 1370", got[0].NormalizedVelocity)
	}
	if got[0].Title != "OpenAI announces GPT-6 today" {
		t.Errorf("survivor title = %q", got[0].Title)
	}
}

func TestDedupe_SurvivorDominatesColliders(t *testing.T) {
	items := []trend.RawItem{
		{Title: "Big AI story breaks now", NormalizedVelocity: 10},
		{Title: "big ai STORY breaks now!", NormalizedVelocity: 70},
		{Title: "Big AI story, breaks now", NormalizedVelocity: 40},
	}

	got := Dedupe(items)
	if len(got) != 1 {
		t.Fatalf("Dedupe returned %d items, want 1", len(got))
	}
	for _, item := range items {
		if got[0].NormalizedVelocity < item.NormalizedVelocity {
			t.Errorf("survivor velocity %v below collider %v", got[0].NormalizedVelocity, item.NormalizedVelocity)
		}
	}
}

func TestDedupe_TieKeepsFirstSeen(t *testing.T) {
	items := []trend.RawItem{
		{Title: "Same story here", URL: "first", NormalizedVelocity: 50},
		{Title: "same STORY here", URL: "second", NormalizedVelocity: 50},
	}

	got := Dedupe(items)
	if len(got) != 1 {
		t.Fatalf("Dedupe returned %d items, want 1", len(got))
	}
	if got[0].URL != "first" {
		t.Errorf("tie survivor = %q, want first-seen", got[0].URL)
	}
}

func TestDedupe_DivergenceBeyondCutoffStillMerges(t *testing.T) {
	prefix := strings.Repeat("x", 55)
	items := []trend.RawItem{
		{Title: prefix + " variant one", NormalizedVelocity: 5},
		{Title: prefix + " variant two", NormalizedVelocity: 9},
	}

	// Titles only diverge after the 50-char fingerprint cutoff, so they
	// share a key and collapse into one story.
	got := Dedupe(items)
	if len(got) != 1 {
		t.Fatalf("Dedupe returned %d items, want 1", len(got))
	}
	if got[0].NormalizedVelocity != 9 {
		t.Errorf("survivor velocity = %v, want 9", got[0].NormalizedVelocity)
	}
}

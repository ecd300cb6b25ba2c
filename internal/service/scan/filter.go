package scan

import (
	"regexp"
	"strings"
	"unicode"
)

// Keywords is the topical vocabulary used for the relevance test.
// Matching follows three rules: phrases match as substrings, short
// tokens (3 chars or less) match on word boundaries so "ai" does not
// fire on "said", and longer single words match as substrings.
type Keywords struct {
	phrases []string
	words   []string
	short   []*regexp.Regexp
}

// NewKeywords compiles a keyword set. Terms are matched case-insensitively.
func NewKeywords(terms []string) *Keywords {
	k := &Keywords{}
	for _, term := range terms {
		term = strings.ToLower(strings.TrimSpace(term))
		if term == "" {
			continue
		}
		switch {
		case strings.Contains(term, " "):
			k.phrases = append(k.phrases, term)
		case len(term) <= 3:
			k.short = append(k.short, regexp.MustCompile(`\b`+regexp.QuoteMeta(term)+`\b`))
		default:
			k.words = append(k.words, term)
		}
	}
	return k
}

// Match reports whether the text mentions any of the configured terms.
func (k *Keywords) Match(text string) bool {
	text = strings.ToLower(text)

	for _, p := range k.phrases {
		if strings.Contains(text, p) {
			return true
		}
	}
	for _, w := range k.words {
		if strings.Contains(text, w) {
			return true
		}
	}
	for _, re := range k.short {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// Scripts whose presence rejects a text outright. Anything written in
// these is not going to pass an English-only dashboard.
var nonLatinScripts = []*unicode.RangeTable{
	unicode.Han,
	unicode.Arabic,
	unicode.Devanagari,
	unicode.Cyrillic,
	unicode.Thai,
	unicode.Hangul,
	unicode.Bengali,
	unicode.Tamil,
	unicode.Hiragana,
	unicode.Katakana,
}

const (
	maxNonASCIILetterRatio = 0.15
	minASCIIWords          = 4
)

// EnglishText is a fast heuristic for "this is English enough to rank".
// It is a pure function of its input and intentionally not a real
// language classifier: a text is rejected if it contains any non-Latin
// script code point, if more than 15% of its letters are non-ASCII, or
// if it has fewer than four ASCII words of two or more letters.
func EnglishText(text string) bool {
	if text == "" {
		return false
	}

	letters := 0
	asciiLetters := 0
	for _, r := range text {
		if unicode.In(r, nonLatinScripts...) {
			return false
		}
		if unicode.IsLetter(r) {
			letters++
			if r < 128 {
				asciiLetters++
			}
		}
	}
	if letters == 0 {
		return false
	}
	if float64(letters-asciiLetters)/float64(letters) > maxNonASCIILetterRatio {
		return false
	}

	words := 0
	for _, w := range strings.FieldsFunc(text, notASCIILetter) {
		if len(w) >= 2 {
			words++
		}
	}
	return words >= minASCIIWords
}

func notASCIILetter(r rune) bool {
	return !((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'))
}

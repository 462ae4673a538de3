// Package readability computes the Gunning Fog index of English text.
//
// Index = 0.4 * ((words / sentences) + 100 * (complexWords / words))
//
// A word is complex when its estimated syllable count is at least three.
// The estimate is a heuristic over vowel groups, not a linguistic count.
package readability

import (
	"strings"

	"filingtext/internal/domain"
	"filingtext/internal/tokenizer"
)

const complexSyllables = 3

// CountSyllables estimates the syllables of word by counting vowel groups
// after dropping one trailing -es, -ed or -ing.
func CountSyllables(word string) int {
	w := lettersOnly(word)
	if w == "" {
		return 0
	}
	// Both two-letter suffixes strip the same amount; only -ing differs.
	switch {
	case strings.HasSuffix(w, "es"):
		w = w[:len(w)-2]
	case strings.HasSuffix(w, "ed"):
		w = w[:len(w)-2]
	case strings.HasSuffix(w, "ing"):
		w = w[:len(w)-3]
	}

	count := 0
	for i := 0; i < len(w); i++ {
		if isVowel(w[i]) && (i == 0 || !isVowel(w[i-1])) {
			count++
		}
	}
	if len(w) == 1 && count == 0 {
		count = 1
	}
	return count
}

// IsComplex reports whether word has an estimated three or more syllables.
func IsComplex(word string) bool {
	return CountSyllables(word) >= complexSyllables
}

// FogIndex applies the Gunning Fog formula. It returns 0 when there are no
// sentences or no words.
func FogIndex(sentences, words, complexWords int) float64 {
	if sentences == 0 || words == 0 {
		return 0
	}
	return 0.4 * (float64(words)/float64(sentences) + 100*(float64(complexWords)/float64(words)))
}

// Score returns the fog index of text using the regex tokenizer.
// Empty or degenerate text scores 0.
func Score(text string) float64 {
	return defaultScorer.Analyze(text).Index
}

// Scorer computes fog reports with a configurable tokenizer.
// It is stateless and safe for concurrent use.
type Scorer struct {
	tok domain.Segmenter
}

// NewScorer returns a Scorer that segments with seg; nil selects the regex tokenizer.
func NewScorer(seg domain.Segmenter) *Scorer {
	if seg == nil {
		seg = tokenizer.New()
	}
	return &Scorer{tok: seg}
}

var defaultScorer = NewScorer(nil)

// Analyze returns the counts and fog index of text.
func (s *Scorer) Analyze(text string) domain.FogReport {
	if strings.TrimSpace(text) == "" {
		return domain.FogReport{}
	}
	seg := s.tok.Segment(text)
	if len(seg.Sentences) == 0 || len(seg.Words) == 0 {
		return domain.FogReport{Sentences: len(seg.Sentences), Words: len(seg.Words)}
	}
	complexWords := 0
	for _, w := range seg.Words {
		if IsComplex(w) {
			complexWords++
		}
	}
	r := domain.FogReport{
		Sentences:         len(seg.Sentences),
		Words:             len(seg.Words),
		ComplexWords:      complexWords,
		AvgSentenceLength: float64(len(seg.Words)) / float64(len(seg.Sentences)),
		PercentComplex:    float64(complexWords) / float64(len(seg.Words)) * 100,
	}
	r.Index = FogIndex(r.Sentences, r.Words, r.ComplexWords)
	return r
}

func lettersOnly(word string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(word) {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isVowel(c byte) bool {
	switch c {
	case 'a', 'e', 'i', 'o', 'u', 'y':
		return true
	}
	return false
}

package readability

import (
	"sort"
	"strings"

	"filingtext/internal/domain"
)

// Hotspots returns the maxSentences sentences with the highest fog index,
// in document order. Sentences without words are ignored.
func (s *Scorer) Hotspots(text string, maxSentences int) []domain.Hotspot {
	if maxSentences <= 0 {
		maxSentences = 5
	}
	var ranked []domain.Hotspot
	for i, sent := range s.tok.Segment(text).Sentences {
		words := s.tok.Segment(sent).Words
		if len(words) == 0 {
			continue
		}
		complexWords := 0
		for _, w := range words {
			if IsComplex(w) {
				complexWords++
			}
		}
		ranked = append(ranked, domain.Hotspot{
			Index:        i,
			Sentence:     strings.TrimSpace(sent),
			Words:        len(words),
			ComplexWords: complexWords,
			Fog:          FogIndex(1, len(words), complexWords),
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Fog > ranked[j].Fog })
	if maxSentences > len(ranked) {
		maxSentences = len(ranked)
	}
	// Back to document order.
	selected := ranked[:maxSentences]
	sort.Slice(selected, func(i, j int) bool { return selected[i].Index < selected[j].Index })
	return selected
}

package readability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const hotspotText = "The cat sat. Beautiful interesting opportunities abound. Dogs run fast."

func hotspotIndexes(t *testing.T, n int) []int {
	t.Helper()
	var idx []int
	for _, h := range NewScorer(nil).Hotspots(hotspotText, n) {
		idx = append(idx, h.Index)
	}
	return idx
}

func TestHotspots_Top(t *testing.T) {
	got := NewScorer(nil).Hotspots(hotspotText, 1)
	require.Len(t, got, 1)
	h := got[0]
	assert.Equal(t, 1, h.Index)
	assert.Equal(t, "Beautiful interesting opportunities abound", h.Sentence)
	assert.Equal(t, 4, h.Words)
	assert.Equal(t, 3, h.ComplexWords)
	assert.InDelta(t, 31.6, h.Fog, 1e-9)
}

func TestHotspots_DocumentOrder(t *testing.T) {
	assert.Equal(t, []int{0, 1}, hotspotIndexes(t, 2))
	// Non-positive limits fall back to five sentences.
	assert.Equal(t, []int{0, 1, 2}, hotspotIndexes(t, 0))
	assert.Equal(t, []int{0, 1, 2}, hotspotIndexes(t, 10))
}

func TestHotspots_SkipsWordlessSentences(t *testing.T) {
	got := NewScorer(nil).Hotspots("2023. Revenue increased substantially.", 5)
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].Index)
	assert.Empty(t, NewScorer(nil).Hotspots("", 3))
}

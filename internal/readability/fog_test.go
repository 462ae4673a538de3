package readability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filingtext/internal/tokenizer"
)

// Two sentences, twenty words, four of them complex.
const fixture = "The cat sat on the mat and the dog ran home. " +
	"Beautiful companies create interesting opportunities for the red dog."

func TestCountSyllables(t *testing.T) {
	tests := []struct {
		word string
		want int
	}{
		{"", 0},
		{"123", 0},
		{"a", 1},
		{"b", 1},
		{"the", 1},
		{"cats", 1},
		{"rhythm", 1},
		{"beautiful", 3},
		{"Beautiful!", 3},
		{"yes", 1},
		{"es", 0},
		{"ed", 0},
		{"ing", 0},
		{"red", 1},
		{"created", 1},
		{"increased", 2},
		{"interesting", 3},
		{"companies", 3},
		{"opportunities", 5},
		{"ÉCOLE", 2},
	}
	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			assert.Equal(t, tt.want, CountSyllables(tt.word))
		})
	}
}

func TestIsComplex(t *testing.T) {
	assert.False(t, IsComplex("a"))
	assert.False(t, IsComplex("the"))
	assert.False(t, IsComplex("cats"))
	assert.False(t, IsComplex(""))
	assert.True(t, IsComplex("beautiful"))
	assert.True(t, IsComplex("interesting"))
}

func TestFogIndex(t *testing.T) {
	assert.InDelta(t, 12.0, FogIndex(2, 20, 4), 1e-9)
	assert.Equal(t, 0.0, FogIndex(0, 20, 4))
	assert.Equal(t, 0.0, FogIndex(2, 0, 0))
	assert.InDelta(t, 0.4*(7.0/3.0), FogIndex(3, 7, 0), 1e-12)
}

func TestFogIndex_MonotonicInComplexWords(t *testing.T) {
	prev := FogIndex(2, 20, 0)
	for c := 1; c <= 20; c++ {
		cur := FogIndex(2, 20, c)
		assert.GreaterOrEqual(t, cur, prev, "complex=%d", c)
		prev = cur
	}
}

func TestScore_Degenerate(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\t\n", "!!! ... ???", "123 456. 7.8!"} {
		assert.Equal(t, 0.0, Score(text), "text %q", text)
	}
}

func TestScore_Fixture(t *testing.T) {
	assert.InDelta(t, 12.0, Score(fixture), 1e-9)
}

func TestScore_IgnoresPadding(t *testing.T) {
	base := Score(fixture)
	assert.Equal(t, base, Score("   "+fixture))
	assert.Equal(t, base, Score(fixture+"\n\n\t "))
	assert.Equal(t, base, Score("\n "+fixture+" \n"))
}

func TestScore_Deterministic(t *testing.T) {
	assert.Equal(t, Score(fixture), Score(fixture))
}

func TestScorer_Analyze(t *testing.T) {
	r := NewScorer(nil).Analyze(fixture)
	assert.Equal(t, 2, r.Sentences)
	assert.Equal(t, 20, r.Words)
	assert.Equal(t, 4, r.ComplexWords)
	assert.InDelta(t, 10.0, r.AvgSentenceLength, 1e-9)
	assert.InDelta(t, 20.0, r.PercentComplex, 1e-9)
	assert.InDelta(t, 12.0, r.Index, 1e-9)
}

func TestScorer_DegenerateReportKeepsCounts(t *testing.T) {
	r := NewScorer(nil).Analyze("42. 17!")
	assert.Equal(t, 2, r.Sentences)
	assert.Equal(t, 0, r.Words)
	assert.Equal(t, 0.0, r.Index)
}

func TestScorer_ProseTokenizer(t *testing.T) {
	prose, err := tokenizer.FromConfig("prose", "")
	require.NoError(t, err)

	const text = "Mr. Smith arrived. He left."
	assert.InDelta(t, 0.4*(5.0/3.0), NewScorer(nil).Analyze(text).Index, 1e-9)
	assert.InDelta(t, 1.0, NewScorer(prose).Analyze(text).Index, 1e-9)
}

func TestScore_CombiningMarksSplitWords(t *testing.T) {
	// A decomposed accent splits the word in regex mode: "beautifu" and "l".
	decomposed := "Beautifu\u0301l companies create opportunities."
	assert.InDelta(t, Score("Beautifu l companies create opportunities."), Score(decomposed), 1e-9)
	assert.Equal(t, 5, NewScorer(nil).Analyze(decomposed).Words)
}

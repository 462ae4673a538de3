package sqlite

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filingtext/internal/domain"
)

func openTemp(t *testing.T) *Storage {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "db", "history.db"))
	require.NoError(t, err)
	require.NoError(t, s.Init())
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStorage_RoundTrip(t *testing.T) {
	s := openTemp(t)
	scoredAt := time.Date(2024, 5, 6, 7, 8, 9, 123, time.UTC)
	want := domain.Result{
		DocumentID: "abc123",
		Path:       "filings/10-k.md",
		Fog: domain.FogReport{
			Sentences: 2, Words: 20, ComplexWords: 4,
			AvgSentenceLength: 10, PercentComplex: 20, Index: 12,
		},
		Keywords: domain.KeywordReport{
			Total: 3,
			Categories: []domain.CategoryCount{
				{Category: "Environmental", Keywords: []domain.KeywordCount{{Keyword: "emissions", Count: 3}}},
			},
		},
		Hotspots: []domain.Hotspot{
			{Index: 1, Sentence: "Beautiful opportunities abound", Words: 3, ComplexWords: 2, Fog: 27.87},
		},
		ScoredAt: scoredAt,
	}
	require.NoError(t, s.Save([]domain.Result{want, {Path: "bad.txt", Err: errors.New("boom")}}))

	got, err := s.List(0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, want, got[0])
}

func TestStorage_ListNewestFirstWithLimit(t *testing.T) {
	s := openTemp(t)
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.Save([]domain.Result{
		{Path: "old.txt", ScoredAt: t0},
		{Path: "new.txt", ScoredAt: t0.Add(time.Hour)},
		{Path: "mid.txt", ScoredAt: t0.Add(time.Minute)},
	}))

	got, err := s.List(2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "new.txt", got[0].Path)
	assert.Equal(t, "mid.txt", got[1].Path)

	require.NoError(t, s.Clear())
	got, err = s.List(0)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStorage_InitIsIdempotent(t *testing.T) {
	s := openTemp(t)
	assert.NoError(t, s.Init())
}

func TestOpen_EmptyPath(t *testing.T) {
	_, err := Open("")
	assert.Error(t, err)
}

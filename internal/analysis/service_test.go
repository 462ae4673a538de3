package analysis

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filingtext/internal/keywords"
	"filingtext/internal/readability"
	"filingtext/internal/store/memory"
)

var fixedNow = time.Date(2024, 6, 30, 9, 0, 0, 0, time.UTC)

func newTestService(opts ...Option) *Service {
	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	return NewService(readability.NewScorer(nil), keywords.NewCounter(nil), opts...)
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestAnalyzeText(t *testing.T) {
	svc := newTestService()
	r := svc.AnalyzeText("Beautiful emissions disclosures. Climate change matters.")
	assert.Equal(t, "(input)", r.Path)
	assert.Equal(t, 2, r.Fog.Sentences)
	assert.Equal(t, 6, r.Fog.Words)
	assert.Equal(t, 2, r.Keywords.Total)
	assert.Equal(t, fixedNow, r.ScoredAt)
	assert.NotEmpty(t, r.DocumentID)
}

func TestAnalyzeText_Hotspots(t *testing.T) {
	text := "The cat sat. Beautiful interesting opportunities abound. Dogs run fast."
	assert.Nil(t, newTestService().AnalyzeText(text).Hotspots)

	r := newTestService(WithHotspots(1)).AnalyzeText(text)
	require.Len(t, r.Hotspots, 1)
	assert.Equal(t, 1, r.Hotspots[0].Index)
}

func TestResolvePaths(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "alpha")
	b := writeFile(t, dir, "sub/b.md", "# beta")
	writeFile(t, dir, "c.csv", "x,y")
	upper := writeFile(t, dir, "sub/deep/D.TXT", "delta")

	svc := newTestService()
	paths, err := svc.ResolvePaths([]string{
		filepath.Join(dir, "**", "*"),
		a, // duplicate of a glob match
		filepath.Join(dir, "missing.txt"),
		filepath.Join(dir, "nothing-*.txt"),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{a, b, upper, filepath.Join(dir, "missing.txt")}, paths)

	_, err = svc.ResolvePaths([]string{filepath.Join(dir, "[")})
	assert.Error(t, err)
}

func TestResolvePaths_CustomExtensions(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "alpha")
	csv := writeFile(t, dir, "c.csv", "x,y")

	paths, err := newTestService(WithExtensions([]string{"CSV"})).ResolvePaths([]string{filepath.Join(dir, "*")})
	require.NoError(t, err)
	assert.Equal(t, []string{csv}, paths)
}

func TestReadDocument_Markdown(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "filing.md", "# Results\n\nRevenue grew **strongly**.\n\n```\ncode block.\n```\n")
	doc, err := ReadDocument(path)
	require.NoError(t, err)
	assert.Equal(t, "Results\nRevenue grew strongly.", doc.Content)
	assert.Equal(t, path, doc.Path)

	_, err = ReadDocument(filepath.Join(dir, "absent.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestAnalyzeFiles_OrderedWithPerItemErrors(t *testing.T) {
	dir := t.TempDir()
	var patterns []string
	for i := 0; i < 12; i++ {
		body := "Short words here."
		if i%2 == 1 {
			body = "Beautiful interesting opportunities. Tiny cat."
		}
		patterns = append(patterns, writeFile(t, dir, fmt.Sprintf("doc%02d.txt", i), body))
	}
	missing := filepath.Join(dir, "gone.txt")
	patterns = append(patterns, missing)

	st := memory.NewStorage()
	svc := newTestService(WithWorkers(3), WithStore(st))
	results, err := svc.AnalyzeFiles(context.Background(), patterns)
	require.NoError(t, err)
	require.Len(t, results, 13)

	for i, p := range patterns[:12] {
		assert.Equal(t, p, results[i].Path)
		assert.NoError(t, results[i].Err)
		if i%2 == 1 {
			assert.Equal(t, 3, results[i].Fog.ComplexWords)
		} else {
			assert.Zero(t, results[i].Fog.ComplexWords)
		}
	}
	assert.Equal(t, missing, results[12].Path)
	assert.ErrorIs(t, results[12].Err, os.ErrNotExist)

	saved, err := st.List(0)
	require.NoError(t, err)
	assert.Len(t, saved, 12)
}

func TestAnalyzeFiles_NoDocuments(t *testing.T) {
	_, err := newTestService().AnalyzeFiles(context.Background(), []string{filepath.Join(t.TempDir(), "*.txt")})
	assert.ErrorIs(t, err, ErrNoDocuments)
}

func TestAnalyzeFiles_Cancelled(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.txt", "Some text.")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestService().AnalyzeFiles(ctx, []string{path})
	assert.ErrorIs(t, err, context.Canceled)
}

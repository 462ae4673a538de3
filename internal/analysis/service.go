package analysis

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"filingtext/internal/domain"
	"filingtext/internal/mdtext"
	"filingtext/internal/store"
)

// ErrNoDocuments is returned when no input pattern matched a readable document.
var ErrNoDocuments = errors.New("no documents found")

// Service scores documents for readability and keyword mentions.
type Service struct {
	scorer     domain.ReadabilityScorer
	counter    domain.KeywordCounter
	store      store.Storage
	workers    int
	hotspots   int
	extensions map[string]struct{}
	logger     *zap.Logger
	now        func() time.Time
}

// Option customizes a Service.
type Option func(*Service)

// WithStore saves every batch to st.
func WithStore(st store.Storage) Option { return func(s *Service) { s.store = st } }

// WithWorkers bounds the number of documents analyzed concurrently.
func WithWorkers(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithHotspots attaches the n most complex sentences to every result.
func WithHotspots(n int) Option { return func(s *Service) { s.hotspots = n } }

// WithExtensions restricts batch inputs to the given file extensions.
func WithExtensions(exts []string) Option {
	return func(s *Service) {
		if len(exts) == 0 {
			return
		}
		s.extensions = make(map[string]struct{}, len(exts))
		for _, e := range exts {
			e = strings.ToLower(strings.TrimSpace(e))
			if e == "" {
				continue
			}
			if !strings.HasPrefix(e, ".") {
				e = "." + e
			}
			s.extensions[e] = struct{}{}
		}
	}
}

// WithLogger sets the logger; the default discards everything.
func WithLogger(l *zap.Logger) Option { return func(s *Service) { s.logger = l } }

// WithClock replaces time.Now for result timestamps.
func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

func NewService(scorer domain.ReadabilityScorer, counter domain.KeywordCounter, opts ...Option) *Service {
	s := &Service{
		scorer:  scorer,
		counter: counter,
		workers: 4,
		logger:  zap.NewNop(),
		now:     time.Now,
	}
	WithExtensions([]string{".txt", ".md"})(s)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AnalyzeText scores a text that did not come from a file.
func (s *Service) AnalyzeText(text string) domain.Result {
	return s.AnalyzeDocument(domain.Document{ID: hashString(text), Path: "(input)", Content: text})
}

// AnalyzeDocument scores one loaded document.
func (s *Service) AnalyzeDocument(doc domain.Document) domain.Result {
	r := domain.Result{
		DocumentID: doc.ID,
		Path:       doc.Path,
		Fog:        s.scorer.Analyze(doc.Content),
		Keywords:   s.counter.Count(doc.Content),
		ScoredAt:   s.now().UTC(),
		Text:       doc.Content,
	}
	if s.hotspots > 0 {
		r.Hotspots = s.scorer.Hotspots(doc.Content, s.hotspots)
	}
	return r
}

// AnalyzeFiles scores every document matched by patterns with a bounded pool
// of workers. Results follow the order of the resolved paths; a document that
// cannot be read gets a result with Err set instead of failing the batch.
func (s *Service) AnalyzeFiles(ctx context.Context, patterns []string) ([]domain.Result, error) {
	paths, err := s.ResolvePaths(patterns)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, ErrNoDocuments
	}
	s.logger.Debug("analyzing documents", zap.Int("documents", len(paths)), zap.Int("workers", s.workers))

	results := make([]domain.Result, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, p := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			doc, err := ReadDocument(p)
			if err != nil {
				s.logger.Warn("skipping unreadable document", zap.String("path", p), zap.Error(err))
				results[i] = domain.Result{DocumentID: hashString(p), Path: p, ScoredAt: s.now().UTC(), Err: err}
				return nil
			}
			results[i] = s.AnalyzeDocument(doc)
			s.logger.Debug("scored document",
				zap.String("path", p),
				zap.Float64("fog_index", results[i].Fog.Index),
				zap.Int("keyword_mentions", results[i].Keywords.Total))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	s.logger.Info("batch complete", zap.Int("documents", len(results)), zap.Int("failed", failed))

	if s.store != nil {
		if err := s.store.Save(results); err != nil {
			return results, fmt.Errorf("save results: %w", err)
		}
	}
	return results, nil
}

// ResolvePaths expands glob patterns (including **) and keeps files with an
// accepted extension. A pattern without glob syntax is taken literally even if
// the file does not exist. Each path appears once, in pattern order.
func (s *Service) ResolvePaths(patterns []string) ([]string, error) {
	var out []string
	seen := make(map[string]struct{})
	for _, p := range patterns {
		matches, err := doublestar.FilepathGlob(p)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", p, err)
		}
		if len(matches) == 0 && !strings.ContainsAny(p, "*?[{") {
			matches = []string{p}
		}
		sort.Strings(matches)
		for _, m := range matches {
			if _, ok := s.extensions[strings.ToLower(filepath.Ext(m))]; !ok {
				continue
			}
			m = filepath.Clean(m)
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			out = append(out, m)
		}
	}
	return out, nil
}

// ReadDocument loads a file; markdown is reduced to its prose first.
func ReadDocument(path string) (domain.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Document{}, err
	}
	content := string(data)
	if mdtext.IsMarkdown(path) {
		content = mdtext.PlainText(data)
	}
	return domain.Document{ID: hashString(path), Path: path, Content: content}, nil
}

func hashString(s string) string {
	h := sha1.Sum([]byte(s))
	return hex.EncodeToString(h[:8])
}

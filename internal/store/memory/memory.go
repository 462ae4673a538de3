package memory

import (
	"sort"
	"sync"

	"filingtext/internal/domain"
)

// Storage keeps analysis results in process memory.
type Storage struct {
	mu      sync.RWMutex
	results []domain.Result
}

func NewStorage() *Storage { return &Storage{} }

func (s *Storage) Init() error { return nil }

// Save appends results; results carrying a read error are skipped.
func (s *Storage) Save(results []domain.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		r.Text = ""
		s.results = append(s.results, r)
	}
	return nil
}

// List returns up to limit results, newest first. limit <= 0 returns all.
func (s *Storage) List(limit int) ([]domain.Result, error) {
	s.mu.RLock()
	out := make([]domain.Result, len(s.results))
	// reverse insertion order, so equal timestamps still list newest first
	for i, r := range s.results {
		out[len(out)-1-i] = r
	}
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].ScoredAt.After(out[j].ScoredAt) })
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (s *Storage) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = nil
	return nil
}

func (s *Storage) Close() error { return nil }

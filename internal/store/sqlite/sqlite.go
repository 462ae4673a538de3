package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"filingtext/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS fog_reports (
	id                  INTEGER PRIMARY KEY AUTOINCREMENT,
	document_id         TEXT    NOT NULL,
	path                TEXT    NOT NULL,
	sentences           INTEGER NOT NULL,
	words               INTEGER NOT NULL,
	complex_words       INTEGER NOT NULL,
	avg_sentence_length REAL    NOT NULL,
	percent_complex     REAL    NOT NULL,
	fog_index           REAL    NOT NULL,
	keyword_total       INTEGER NOT NULL,
	keywords            TEXT    NOT NULL,
	hotspots            TEXT    NOT NULL DEFAULT 'null',
	scored_at           INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_fog_reports_scored_at ON fog_reports(scored_at);
`

// Storage keeps the score history in a SQLite database file.
type Storage struct {
	db   *sql.DB
	path string
}

// Open opens (or creates) the database at path. Call Init before use.
func Open(path string) (*Storage, error) {
	if path == "" {
		return nil, errors.New("sqlite: empty database path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %s: %w", path, err)
	}
	// modernc serializes writers; one connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)
	return &Storage{db: db, path: path}, nil
}

// Init creates the schema if missing.
func (s *Storage) Init() error {
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("sqlite: create schema: %w", err)
	}
	return nil
}

// Save inserts results in one transaction; results carrying a read error are skipped.
func (s *Storage) Save(results []domain.Result) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`INSERT INTO fog_reports
		(document_id, path, sentences, words, complex_words, avg_sentence_length,
		 percent_complex, fog_index, keyword_total, keywords, hotspots, scored_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range results {
		if r.Err != nil {
			continue
		}
		categories, err := json.Marshal(r.Keywords.Categories)
		if err != nil {
			return err
		}
		hotspots, err := json.Marshal(r.Hotspots)
		if err != nil {
			return err
		}
		_, err = stmt.Exec(r.DocumentID, r.Path,
			r.Fog.Sentences, r.Fog.Words, r.Fog.ComplexWords, r.Fog.AvgSentenceLength,
			r.Fog.PercentComplex, r.Fog.Index, r.Keywords.Total, string(categories),
			string(hotspots), r.ScoredAt.UnixNano())
		if err != nil {
			return fmt.Errorf("sqlite: insert %s: %w", r.Path, err)
		}
	}
	return tx.Commit()
}

// List returns up to limit results, newest first. limit <= 0 returns all.
func (s *Storage) List(limit int) ([]domain.Result, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.Query(`SELECT document_id, path, sentences, words, complex_words,
		avg_sentence_length, percent_complex, fog_index, keyword_total, keywords, hotspots, scored_at
		FROM fog_reports ORDER BY scored_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Result
	for rows.Next() {
		var (
			r          domain.Result
			categories string
			hotspots   string
			scoredAt   int64
		)
		if err := rows.Scan(&r.DocumentID, &r.Path, &r.Fog.Sentences, &r.Fog.Words,
			&r.Fog.ComplexWords, &r.Fog.AvgSentenceLength, &r.Fog.PercentComplex,
			&r.Fog.Index, &r.Keywords.Total, &categories, &hotspots, &scoredAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(categories), &r.Keywords.Categories); err != nil {
			return nil, fmt.Errorf("sqlite: decode keywords of %s: %w", r.Path, err)
		}
		if err := json.Unmarshal([]byte(hotspots), &r.Hotspots); err != nil {
			return nil, fmt.Errorf("sqlite: decode hotspots of %s: %w", r.Path, err)
		}
		r.ScoredAt = time.Unix(0, scoredAt).UTC()
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Storage) Clear() error {
	_, err := s.db.Exec(`DELETE FROM fog_reports`)
	return err
}

func (s *Storage) Close() error { return s.db.Close() }

// Path returns the database file location.
func (s *Storage) Path() string { return s.path }

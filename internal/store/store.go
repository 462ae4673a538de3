package store

import (
	"fmt"

	"filingtext/internal/domain"
	"filingtext/internal/store/memory"
	"filingtext/internal/store/sqlite"
)

// Storage persists analysis results and lists them newest first.
type Storage interface {
	Init() error
	Save(results []domain.Result) error
	List(limit int) ([]domain.Result, error)
	Clear() error
	Close() error
}

// Config selects a Storage implementation.
type Config struct {
	Type       string
	SQLitePath string
}

// New opens the configured storage and initializes it. Type "none" returns nil.
func New(cfg Config) (Storage, error) {
	var st Storage
	switch cfg.Type {
	case "none":
		return nil, nil
	case "memory", "":
		st = memory.NewStorage()
	case "sqlite":
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		st = db
	default:
		return nil, fmt.Errorf("unknown store: %s", cfg.Type)
	}
	if err := st.Init(); err != nil {
		_ = st.Close()
		return nil, err
	}
	return st, nil
}

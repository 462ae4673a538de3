package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ErrInvalid marks a configuration that decoded but cannot be used.
var ErrInvalid = errors.New("invalid config")

// TokenizerConfig selects the sentence/word segmentation rules.
type TokenizerConfig struct {
	Mode              string `yaml:"mode"`
	AbbreviationsPath string `yaml:"abbreviations_path,omitempty"`
}

// BatchConfig configures multi-document scoring.
type BatchConfig struct {
	Workers    int      `yaml:"workers"`
	Extensions []string `yaml:"extensions"`
}

// SQLiteConfig contains the location of the score history database.
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// StoreConfig selects and configures where batch results are kept.
type StoreConfig struct {
	Type   string        `yaml:"type"`
	SQLite *SQLiteConfig `yaml:"sqlite,omitempty"`
}

// KeywordCategoryConfig is one category of the keyword taxonomy.
type KeywordCategoryConfig struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// KeywordsConfig overrides the default ESG taxonomy when categories are given.
type KeywordsConfig struct {
	Categories []KeywordCategoryConfig `yaml:"categories,omitempty"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level string `yaml:"level"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Tokenizer TokenizerConfig `yaml:"tokenizer"`
	Batch     BatchConfig     `yaml:"batch"`
	Store     StoreConfig     `yaml:"store"`
	Keywords  KeywordsConfig  `yaml:"keywords"`
	Log       LogConfig       `yaml:"log"`
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := defaultConfig()
			applyEnvOverrides(cfg)
			return cfg, nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	applyConfigDefaults(&cfg)
	applyEnvOverrides(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/filingtext/config.yaml.
// If neither exists, it writes defaults to ~/.config/filingtext/config.yaml and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	applyEnvOverrides(cfg)
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate rejects settings no component can honour.
func (c *AppConfig) Validate() error {
	switch c.Tokenizer.Mode {
	case "regex", "prose":
	default:
		return fmt.Errorf("%w: unknown tokenizer mode %q", ErrInvalid, c.Tokenizer.Mode)
	}
	switch c.Store.Type {
	case "none", "memory":
	case "sqlite":
		if c.Store.SQLite == nil || c.Store.SQLite.Path == "" {
			return fmt.Errorf("%w: sqlite store needs a path", ErrInvalid)
		}
	default:
		return fmt.Errorf("%w: unknown store %q", ErrInvalid, c.Store.Type)
	}
	if c.Batch.Workers <= 0 {
		return fmt.Errorf("%w: batch workers must be positive, got %d", ErrInvalid, c.Batch.Workers)
	}
	return nil
}

func defaultUserConfigPath() (string, error) {
	dir, err := defaultDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

func defaultDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "filingtext"), nil
}

// defaultHistoryPath is empty when the home directory is unknown; Validate
// then rejects the sqlite store.
func defaultHistoryPath() string {
	dir, err := defaultDataDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "history.db")
}

func defaultConfig() *AppConfig {
	cfg := &AppConfig{
		Tokenizer: TokenizerConfig{Mode: "regex"},
		Batch:     BatchConfig{Workers: 4, Extensions: []string{".txt", ".md"}},
		Store:     StoreConfig{Type: "sqlite", SQLite: &SQLiteConfig{Path: defaultHistoryPath()}},
		Log:       LogConfig{Level: "info"},
	}
	return cfg
}

func applyConfigDefaults(cfg *AppConfig) {
	def := defaultConfig()
	if cfg.Tokenizer.Mode == "" {
		cfg.Tokenizer.Mode = def.Tokenizer.Mode
	}
	if cfg.Batch.Workers == 0 {
		cfg.Batch.Workers = def.Batch.Workers
	}
	if len(cfg.Batch.Extensions) == 0 {
		cfg.Batch.Extensions = def.Batch.Extensions
	}
	if cfg.Store.Type == "" {
		cfg.Store.Type = def.Store.Type
	}
	if cfg.Store.Type == "sqlite" {
		if cfg.Store.SQLite == nil {
			cfg.Store.SQLite = &SQLiteConfig{}
		}
		if cfg.Store.SQLite.Path == "" {
			cfg.Store.SQLite.Path = defaultHistoryPath()
		}
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = def.Log.Level
	}
}

// applyEnvOverrides lets FILINGTEXT_LOG_LEVEL and FILINGTEXT_WORKERS win over the file.
func applyEnvOverrides(cfg *AppConfig) {
	if v := os.Getenv("FILINGTEXT_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("FILINGTEXT_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Batch.Workers = n
		}
	}
}

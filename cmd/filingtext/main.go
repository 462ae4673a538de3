package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"filingtext/internal/analysis"
	"filingtext/internal/config"
	"filingtext/internal/keywords"
	"filingtext/internal/logging"
	"filingtext/internal/readability"
	"filingtext/internal/store"
	"filingtext/internal/tokenizer"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// app carries the state shared by all subcommands once the root command has
// loaded the configuration.
type app struct {
	cfgPath string
	verbose bool

	cfg    *config.AppConfig
	logger *zap.Logger
	store  store.Storage
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "filingtext",
		Short: "Readability and ESG keyword metrics for financial filings",
		Long: `filingtext scores filing text with the Gunning Fog index and counts
ESG keyword mentions. Plain text and markdown files are accepted.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: a.teardown,
	}
	root.PersistentFlags().StringVar(&a.cfgPath, "config", "", "Path to YAML config file (uses ./config.yaml or ~/.config/filingtext/config.yaml if not provided)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		a.fogCmd(),
		a.keywordsCmd(),
		a.batchCmd(),
		a.browseCmd(),
		a.historyCmd(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	var err error
	if a.cfgPath == "" {
		a.cfg, _, err = config.LoadDefault()
	} else {
		a.cfg, err = config.Load(a.cfgPath)
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	a.logger, err = logging.New(a.cfg.Log.Level, a.verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

func (a *app) teardown(cmd *cobra.Command, args []string) {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.logger.Warn("closing store", zap.Error(err))
		}
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// scorer assembles the readability scorer for the configured tokenizer.
func (a *app) scorer() (*readability.Scorer, error) {
	tok, err := tokenizer.FromConfig(a.cfg.Tokenizer.Mode, a.cfg.Tokenizer.AbbreviationsPath)
	if err != nil {
		return nil, fmt.Errorf("tokenizer setup failed: %w", err)
	}
	a.logger.Debug("tokenizer ready", zap.String("mode", string(tok.Mode())))
	return readability.NewScorer(tok), nil
}

func (a *app) counter() *keywords.Counter {
	var taxonomy []keywords.Category
	for _, c := range a.cfg.Keywords.Categories {
		taxonomy = append(taxonomy, keywords.Category{Name: c.Name, Keywords: c.Keywords})
	}
	return keywords.NewCounter(taxonomy)
}

func (a *app) openStore() (store.Storage, error) {
	if a.store != nil {
		return a.store, nil
	}
	cfg := store.Config{Type: a.cfg.Store.Type}
	if a.cfg.Store.SQLite != nil {
		cfg.SQLitePath = a.cfg.Store.SQLite.Path
	}
	st, err := store.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("store init failed: %w", err)
	}
	a.store = st
	return st, nil
}

// service assembles the batch analysis service; withStore attaches the
// configured report store.
func (a *app) service(withStore bool, workers, hotspots int) (*analysis.Service, error) {
	sc, err := a.scorer()
	if err != nil {
		return nil, err
	}
	if workers <= 0 {
		workers = a.cfg.Batch.Workers
	}
	opts := []analysis.Option{
		analysis.WithWorkers(workers),
		analysis.WithExtensions(a.cfg.Batch.Extensions),
		analysis.WithLogger(a.logger),
		analysis.WithHotspots(hotspots),
	}
	if withStore {
		st, err := a.openStore()
		if err != nil {
			return nil, err
		}
		if st != nil {
			opts = append(opts, analysis.WithStore(st))
		}
	}
	return analysis.NewService(sc, a.counter(), opts...), nil
}

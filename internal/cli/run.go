package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/opportunities-radar/radar/internal/cache"
	"github.com/opportunities-radar/radar/internal/llm"
	"github.com/opportunities-radar/radar/internal/model"
	"github.com/opportunities-radar/radar/internal/pipeline"
	"github.com/opportunities-radar/radar/internal/storage"
	"github.com/opportunities-radar/radar/internal/worker"
)

var (
	runDSN      string
	runInterval time.Duration
	runTimeout  time.Duration
	runWorkers  int
	runSeed     bool
	runCatalog  string
	runNoCache  bool
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Fetch all enabled sources and generate digests for changes",
	Long: `Run executes the fetch cycle: each enabled source is fetched,
extracted and hashed; changed content is diffed against the previous
snapshot, scored, summarized and stored as a digest.

With --interval the cycle repeats until interrupted.

Example:
  radar run --seed
  radar run --interval 30m --workers 4`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&runDSN, "dsn", "", "Postgres DSN (default: RADAR_DATABASE_DSN or config)")
	runCmd.Flags().DurationVar(&runInterval, "interval", 0, "repeat the cycle at this interval (0 = run once)")
	runCmd.Flags().DurationVar(&runTimeout, "timeout", 10*time.Minute, "per-cycle timeout")
	runCmd.Flags().IntVar(&runWorkers, "workers", 1, "concurrent source workers")
	runCmd.Flags().BoolVar(&runSeed, "seed", false, "seed the source catalog before running")
	runCmd.Flags().StringVar(&runCatalog, "catalog", "", "source catalog YAML (default: built-in catalog)")
	runCmd.Flags().BoolVar(&runNoCache, "no-cache", false, "disable the fetch cache")
}

func runRun(cmd *cobra.Command, args []string) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg := buildConfig()
	if runWorkers > 0 {
		cfg.Concurrency.Workers = runWorkers
	}
	if runNoCache {
		cfg.Cache.Enabled = false
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := storage.Connect(ctx, cfg.Database.DSN)
	if err != nil {
		return err
	}
	defer db.Close()

	store := storage.New(db)

	if runSeed {
		if err := store.Migrate(ctx); err != nil {
			return err
		}
		catalog := model.DefaultCatalog()
		if runCatalog != "" {
			catalog, err = model.LoadCatalog(runCatalog)
			if err != nil {
				return err
			}
		}
		if err := store.SeedSources(ctx, catalog); err != nil {
			return err
		}
		logger.Info("source catalog seeded", "sources", len(catalog))
	}

	p := buildPipeline(cfg, store, logger)

	if err := runCycle(ctx, p, store, cfg, logger); err != nil {
		return err
	}
	if runInterval <= 0 {
		return nil
	}

	ticker := time.NewTicker(runInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := runCycle(ctx, p, store, cfg, logger); err != nil {
				logger.Error("cycle failed", "error", err)
			}
		}
	}
}

func buildConfig() model.Config {
	cfg := model.DefaultConfig()

	if dsn := viper.GetString("database_dsn"); dsn != "" {
		cfg.Database.DSN = dsn
	}
	if runDSN != "" {
		cfg.Database.DSN = runDSN
	}
	if llmModel := viper.GetString("llm_model"); llmModel != "" {
		cfg.LLM.Model = llmModel
	}

	// Provider credentials come straight from the environment, never
	// from the config file.
	cfg.LLM.AnthropicAPIKey = os.Getenv("ANTHROPIC_API_KEY")
	cfg.LLM.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")

	return cfg
}

func buildPipeline(cfg model.Config, store *storage.Store, logger *slog.Logger) *pipeline.Pipeline {
	var bodyCache cache.Cache
	if cfg.Cache.Enabled {
		bodyCache = cache.NewMemory(cfg.Cache.TTL, 2*cfg.Cache.TTL)
	}

	limiter := worker.NewLimiter(cfg.Concurrency.RequestsPerSecond, cfg.Concurrency.Burst)
	fetcher := pipeline.NewFetcher(cfg.HTTP, limiter, bodyCache, cfg.Cache.TTL)

	summarizer := llm.NewSummarizer(llm.Config{
		AnthropicAPIKey: cfg.LLM.AnthropicAPIKey,
		OpenAIAPIKey:    cfg.LLM.OpenAIAPIKey,
		Model:           cfg.LLM.Model,
		BaseURL:         cfg.LLM.BaseURL,
		Timeout:         cfg.LLM.Timeout,
		MaxTokens:       cfg.LLM.MaxTokens,
	}, logger)

	return pipeline.New(store, fetcher, summarizer, logger)
}

func runCycle(ctx context.Context, p *pipeline.Pipeline, store *storage.Store, cfg model.Config, logger *slog.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, runTimeout)
	defer cancel()

	started := time.Now()

	var report pipeline.RunReport
	if cfg.Concurrency.Workers > 1 {
		sources, err := store.EnabledSources(ctx)
		if err != nil {
			return fmt.Errorf("load sources: %w", err)
		}
		report.Total = len(sources)

		batch := worker.NewBatchProcessor(p, cfg.Concurrency.Workers)
		for _, result := range batch.ProcessSources(ctx, sources) {
			p.Tally(&report, result.Source, result.Outcome, result.Err)
		}
	} else {
		var err error
		report, err = p.Run(ctx)
		if err != nil {
			return err
		}
	}

	logger.Info("cycle complete",
		"total", report.Total,
		"processed", report.Processed,
		"unchanged", report.Unchanged,
		"errors", report.Errors,
		"duration", time.Since(started).Round(time.Millisecond))

	return nil
}

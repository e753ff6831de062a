package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/parkerjr2/seogen/internal/config"
	"github.com/parkerjr2/seogen/internal/db"
	"github.com/parkerjr2/seogen/internal/fetch"
	"github.com/parkerjr2/seogen/internal/license"
	"github.com/parkerjr2/seogen/internal/llm"
	"github.com/parkerjr2/seogen/internal/localdata"
	"github.com/parkerjr2/seogen/internal/pipeline"
	"github.com/parkerjr2/seogen/internal/worker"
)

var (
	workerConfigPath  string
	workerConcurrency int
	workerBatchLimit  int
	workerNoBrowser   bool
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Run the bulk job queue worker",
	Long: `Poll the bulk job queue and generate pages for pending items until interrupted.

Multiple workers may run against the same database; the claim protocol guarantees each item is processed by exactly one worker.`,
	RunE: runWorker,
}

func init() {
	workerCmd.Flags().StringVar(&workerConfigPath, "config", "", "Path to config.json file (thresholds and worker tuning)")
	workerCmd.Flags().IntVar(&workerConcurrency, "concurrency", 0, "Items generated in parallel (defaults to WORKER_CONCURRENCY env var, then 3)")
	workerCmd.Flags().IntVar(&workerBatchLimit, "batch-limit", 0, "Items polled per batch (defaults to WORKER_BATCH_LIMIT env var, then 5)")
	workerCmd.Flags().BoolVar(&workerNoBrowser, "no-browser", false, "Disable the headless browser fallback for site context")
	rootCmd.AddCommand(workerCmd)
}

func runWorker(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfigFile(workerConfigPath)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("concurrency") {
		cfg.Worker.Concurrency = workerConcurrency
	}
	if cmd.Flags().Changed("batch-limit") {
		cfg.Worker.BatchLimit = workerBatchLimit
	}
	if err := applyWorkerEnv(&cfg.Worker); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	databaseURL, err := databaseURLFromEnv()
	if err != nil {
		return err
	}
	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	llmCfg, err := llmConfigFromEnv()
	if err != nil {
		return err
	}
	client, err := llm.NewClient(ctx, llmCfg)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer client.Close()

	sites := fetch.NewSiteContextProvider(database, &fetch.SiteContextConfig{
		DisableBrowser: workerNoBrowser,
	})
	census := localdata.NewFetcher(localdata.Config{})

	generator := pipeline.NewGenerator(client, pipeline.Config{
		Thresholds:  cfg.Thresholds,
		SiteContext: sites.Context,
		LocalFacts:  census.HousingFacts,
	})

	w := worker.New(database, generator, license.NewGate(database), worker.Config{
		BatchLimit:  cfg.Worker.BatchLimit,
		Concurrency: cfg.Worker.Concurrency,
		RetryLimit:  cfg.Worker.RetryLimit,
		MaxAttempts: cfg.Worker.MaxAttempts,
		StaleAfter:  time.Duration(cfg.Worker.StaleAfterMinutes) * time.Minute,
	})
	return w.Run(ctx)
}

// applyWorkerEnv fills worker knobs that are still zero from their
// environment variables. Flags and the config file take precedence.
func applyWorkerEnv(wc *config.WorkerConfig) error {
	set := func(target *int, name string) error {
		if *target != 0 {
			return nil
		}
		raw := os.Getenv(name)
		if raw == "" {
			return nil
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", name, raw, err)
		}
		*target = v
		return nil
	}

	if err := set(&wc.BatchLimit, "WORKER_BATCH_LIMIT"); err != nil {
		return err
	}
	if err := set(&wc.Concurrency, "WORKER_CONCURRENCY"); err != nil {
		return err
	}
	if err := set(&wc.RetryLimit, "WORKER_RETRY_LIMIT"); err != nil {
		return err
	}
	if err := set(&wc.MaxAttempts, "WORKER_MAX_ATTEMPTS"); err != nil {
		return err
	}
	return set(&wc.StaleAfterMinutes, "WORKER_STALE_AFTER_MINUTES")
}

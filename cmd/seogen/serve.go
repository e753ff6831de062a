package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/parkerjr2/seogen/internal/config"
	"github.com/parkerjr2/seogen/internal/db"
	"github.com/parkerjr2/seogen/internal/fetch"
	"github.com/parkerjr2/seogen/internal/llm"
	"github.com/parkerjr2/seogen/internal/localdata"
	"github.com/parkerjr2/seogen/internal/pipeline"
	"github.com/parkerjr2/seogen/internal/server"
)

var (
	serveConfigPath string
	servePort       int
	serveNoBrowser  bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes page generation, bulk job, and license administration endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to config.json file (thresholds and worker tuning)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (defaults to PORT env var, then 8080)")
	serveCmd.Flags().BoolVar(&serveNoBrowser, "no-browser", false, "Disable the headless browser fallback for site context")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadConfigFile(serveConfigPath)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	} else if portEnv := os.Getenv("PORT"); portEnv != "" {
		port, err := strconv.Atoi(portEnv)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", portEnv, err)
		}
		cfg.Port = port
	}
	cfg = cfg.MergeWithDefaults(config.DefaultConfig())
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
		DisableBrowser: serveNoBrowser,
	})
	census := localdata.NewFetcher(localdata.Config{})

	generator := pipeline.NewGenerator(client, pipeline.Config{
		Thresholds:  cfg.Thresholds,
		SiteContext: sites.Context,
		LocalFacts:  census.HousingFacts,
	})

	srv, err := server.New(server.Config{Port: cfg.Port}, database, generator)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}

// loadConfigFile loads and returns the JSON config, or a zero config when no
// path was given.
func loadConfigFile(path string) (config.Config, error) {
	if path == "" {
		return config.Config{}, nil
	}
	loaded, err := config.LoadConfig(path)
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	if err := loaded.Validate(); err != nil {
		return config.Config{}, err
	}
	return *loaded, nil
}

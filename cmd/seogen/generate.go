package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/parkerjr2/seogen/internal/fetch"
	"github.com/parkerjr2/seogen/internal/llm"
	"github.com/parkerjr2/seogen/internal/localdata"
	"github.com/parkerjr2/seogen/internal/observability"
	"github.com/parkerjr2/seogen/internal/pipeline"
	"github.com/parkerjr2/seogen/internal/rules"
	"github.com/parkerjr2/seogen/internal/types"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a single page",
	Long: `Run the generate/validate/repair loop for one page request and write the
page JSON to stdout or a file. No database or license is involved.`,
	RunE: runGenerate,
}

var (
	generateConfigPath string
	generateService    string
	generateCity       string
	generateState      string
	generateBusiness   string
	generatePhone      string
	generateEmail      string
	generateAddress    string
	generateVertical   string
	generateMode       string
	generateSiteURL    string
	generateHubKey     string
	generateHubLabel   string
	generateAreaLabel  string
	generateCTAText    string
	generateModel      string
	generateOutput     string
	generateVerbose    bool
)

func init() {
	generateCmd.Flags().StringVar(&generateConfigPath, "config", "", "Path to config.json file (validation thresholds)")
	generateCmd.Flags().StringVarP(&generateService, "service", "s", "", "Service name (e.g. \"Gutter Repair\")")
	generateCmd.Flags().StringVar(&generateCity, "city", "", "City name")
	generateCmd.Flags().StringVar(&generateState, "state", "", "Two-letter state code")
	generateCmd.Flags().StringVarP(&generateBusiness, "business", "b", "", "Business name (required)")
	generateCmd.Flags().StringVar(&generatePhone, "phone", "", "Business phone")
	generateCmd.Flags().StringVar(&generateEmail, "email", "", "Business email")
	generateCmd.Flags().StringVar(&generateAddress, "address", "", "Business street address")
	generateCmd.Flags().StringVar(&generateVertical, "vertical", "", "Trade vertical (e.g. roofing, plumbing)")
	generateCmd.Flags().StringVarP(&generateMode, "mode", "m", "", "Page mode: service_city (default), service_hub, or city_hub")
	generateCmd.Flags().StringVar(&generateSiteURL, "site-url", "", "Business site URL for prompt enrichment")
	generateCmd.Flags().StringVar(&generateHubKey, "hub-key", "",
		"Hub profile key (hub modes): "+strings.Join(rules.HubKeys(), ", "))
	generateCmd.Flags().StringVar(&generateHubLabel, "hub-label", "", "Hub display label (hub modes)")
	generateCmd.Flags().StringVar(&generateAreaLabel, "area-label", "", "Service area label (hub modes)")
	generateCmd.Flags().StringVar(&generateCTAText, "cta-text", "", "Call-to-action text override")
	generateCmd.Flags().StringVar(&generateModel, "model", "", "Model name override (default: LLM_MODEL or provider default)")
	generateCmd.Flags().StringVarP(&generateOutput, "out", "o", "", "Path to output page JSON file (default: stdout)")
	generateCmd.Flags().BoolVarP(&generateVerbose, "verbose", "v", false, "Print request and page summaries")

	if err := generateCmd.MarkFlagRequired("business"); err != nil {
		panic(fmt.Sprintf("failed to mark business flag as required: %v", err))
	}

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	req := types.PageRequest{
		Service:          generateService,
		City:             generateCity,
		State:            generateState,
		BusinessName:     generateBusiness,
		Phone:            generatePhone,
		Email:            generateEmail,
		Address:          generateAddress,
		Vertical:         generateVertical,
		PageMode:         types.PageMode(generateMode),
		SiteURL:          generateSiteURL,
		HubKey:           generateHubKey,
		HubLabel:         generateHubLabel,
		ServiceAreaLabel: generateAreaLabel,
		CTAText:          generateCTAText,
	}
	if err := checkGenerateRequest(req); err != nil {
		return err
	}

	cfg, err := loadConfigFile(generateConfigPath)
	if err != nil {
		return err
	}

	llmCfg, err := llmConfigFromEnv()
	if err != nil {
		return err
	}
	if generateModel != "" {
		llmCfg = llmCfg.WithModel(generateModel)
	}
	client, err := llm.NewClient(ctx, llmCfg)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer client.Close()

	printer := observability.NewPrinter(os.Stdout)
	if generateVerbose {
		printer.PrintRequestSummary(&req)
	}

	// No database here, so site snapshots are not cached between runs.
	sites := fetch.NewSiteContextProvider(nil, &fetch.SiteContextConfig{Verbose: generateVerbose})
	census := localdata.NewFetcher(localdata.Config{})

	generator := pipeline.NewGenerator(client, pipeline.Config{
		Thresholds:  cfg.Thresholds,
		SiteContext: sites.Context,
		LocalFacts:  census.HousingFacts,
	})

	page, err := generator.Generate(ctx, req)
	if err != nil {
		var repairErr *pipeline.RepairFailedError
		if errors.As(err, &repairErr) {
			printer.PrintViolations(repairErr.Violations)
		}
		return fmt.Errorf("failed to generate page: %w", err)
	}

	if generateVerbose {
		printer.PrintPageSummary(page)
	}

	jsonBytes, err := json.MarshalIndent(page, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal page to JSON: %w", err)
	}

	if generateOutput == "" {
		_, _ = fmt.Fprintln(os.Stdout, string(jsonBytes))
		return nil
	}

	outputDir := filepath.Dir(generateOutput)
	if outputDir != "" && outputDir != "." {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(generateOutput, jsonBytes, 0644); err != nil {
		return fmt.Errorf("failed to write page to output file: %w", err)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Page written to %s\n", generateOutput)
	return nil
}

// checkGenerateRequest enforces the per-mode required fields before any
// model call is spent.
func checkGenerateRequest(req types.PageRequest) error {
	switch req.Mode() {
	case types.ModeServiceCity:
		if req.Service == "" {
			return fmt.Errorf("--service is required for service_city pages")
		}
		if req.City == "" {
			return fmt.Errorf("--city is required for service_city pages")
		}
	case types.ModeServiceHub:
		if req.Service == "" && req.HubLabel == "" {
			return fmt.Errorf("--service or --hub-label is required for service_hub pages")
		}
	case types.ModeCityHub:
		if req.City == "" {
			return fmt.Errorf("--city is required for city_hub pages")
		}
	default:
		return fmt.Errorf("unknown mode %q (expected service_city, service_hub, or city_hub)", req.PageMode)
	}
	return nil
}

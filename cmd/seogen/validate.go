package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/parkerjr2/seogen/internal/observability"
	"github.com/parkerjr2/seogen/internal/rules"
	"github.com/parkerjr2/seogen/internal/schemas"
	"github.com/parkerjr2/seogen/internal/types"
	"github.com/parkerjr2/seogen/internal/validation"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a page JSON file against the content rules",
	Long: `Check a previously generated page file against the stored-page schema, then
run the full rule battery (block counts, service+city presence, forbidden
phrases, vocabulary density, word count) over it. Exits non-zero when
violations are found.`,
	RunE: runValidate,
}

var (
	validateConfigPath string
	validateInput      string
	validateService    string
	validateCity       string
	validateState      string
	validateVertical   string
	validateOutput     string
	validateVerbose    bool
)

func init() {
	validateCmd.Flags().StringVar(&validateConfigPath, "config", "", "Path to config.json file (validation thresholds)")
	validateCmd.Flags().StringVarP(&validateInput, "in", "i", "", "Path to page JSON file (required)")
	validateCmd.Flags().StringVarP(&validateService, "service", "s", "", "Service name the page was generated for (required)")
	validateCmd.Flags().StringVar(&validateCity, "city", "", "City the page was generated for (required)")
	validateCmd.Flags().StringVar(&validateState, "state", "", "Two-letter state code")
	validateCmd.Flags().StringVar(&validateVertical, "vertical", "", "Trade vertical (selects the vocabulary list)")
	validateCmd.Flags().StringVarP(&validateOutput, "out", "o", "", "Path to output violations JSON file (optional)")
	validateCmd.Flags().BoolVarP(&validateVerbose, "verbose", "v", false, "Print the effective thresholds")

	if err := validateCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}
	if err := validateCmd.MarkFlagRequired("service"); err != nil {
		panic(fmt.Sprintf("failed to mark service flag as required: %v", err))
	}
	if err := validateCmd.MarkFlagRequired("city"); err != nil {
		panic(fmt.Sprintf("failed to mark city flag as required: %v", err))
	}

	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, _ []string) error {
	content, err := os.ReadFile(validateInput)
	if err != nil {
		return fmt.Errorf("failed to read page file: %w", err)
	}

	if err := schemas.ValidatePayload(schemas.PageResponse, content); err != nil {
		return fmt.Errorf("page file failed schema validation: %w", err)
	}

	var page types.PageResponse
	if err := json.Unmarshal(content, &page); err != nil {
		return fmt.Errorf("failed to unmarshal page JSON: %w", err)
	}

	cfg, err := loadConfigFile(validateConfigPath)
	if err != nil {
		return err
	}
	thresholds := cfg.Thresholds.MergeWithDefaults(rules.DefaultThresholds())

	req := types.PageRequest{
		Service:  validateService,
		City:     validateCity,
		State:    validateState,
		Vertical: validateVertical,
	}

	printer := observability.NewPrinter(os.Stdout)
	if validateVerbose {
		printer.PrintThresholds(thresholds)
	}

	violations := validation.Validate(&page, req, thresholds)
	printer.PrintViolations(violations)

	if validateOutput != "" {
		outputDir := filepath.Dir(validateOutput)
		if outputDir != "" && outputDir != "." {
			if err := os.MkdirAll(outputDir, 0755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}
		jsonBytes, err := json.MarshalIndent(violations, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal violations to JSON: %w", err)
		}
		if err := os.WriteFile(validateOutput, jsonBytes, 0644); err != nil {
			return fmt.Errorf("failed to write violations to output file: %w", err)
		}
		_, _ = fmt.Fprintf(os.Stdout, "Output: %s\n", validateOutput)
	}

	if len(violations) > 0 {
		// Non-zero exit so scripted callers can gate on the result.
		return fmt.Errorf("validation found %d violation(s)", len(violations))
	}
	return nil
}

// Package main provides the entry point for the seogen HTTP API server and
// bulk worker.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "seogen",
	Short: "SEO page generation service",
	Long:  "seogen generates validated local-service marketing pages (service+city and hub pages) through an LLM generate/validate/repair loop, exposed as a REST API with a bulk job queue.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

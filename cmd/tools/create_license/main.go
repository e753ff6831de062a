// Command create_license mints a license key and inserts the subscription
// and API key rows for a new customer.
//
// Usage:
//
//	go run cmd/tools/create_license/main.go -name "Acme Roofing" -page-limit 500 -monthly-limit 100
//
// A limit of 0 means unlimited. Requires DATABASE_URL environment variable
// to be set.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/parkerjr2/seogen/internal/db"
	"github.com/parkerjr2/seogen/internal/server"
)

func main() {
	name := flag.String("name", "", "Customer name for the subscription (required)")
	pageLimit := flag.Int("page-limit", 0, "Lifetime page limit (0 = unlimited)")
	monthlyLimit := flag.Int("monthly-limit", 0, "Pages per billing period (0 = unlimited)")
	flag.Parse()

	if *name == "" {
		fmt.Fprintln(os.Stderr, "ERROR: -name is required")
		flag.Usage()
		os.Exit(1)
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		fmt.Fprintln(os.Stderr, "ERROR: DATABASE_URL environment variable not set")
		os.Exit(1)
	}

	ctx := context.Background()

	database, err := db.Connect(ctx, dsn)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	key, err := server.MintLicenseKey()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to mint license key: %v\n", err)
		os.Exit(1)
	}

	lic, err := database.CreateLicense(ctx, key, *name, *pageLimit, *monthlyLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to create license: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("=== License Created ===")
	fmt.Printf("  Customer:       %s\n", lic.APIKey.Name)
	fmt.Printf("  License key:    %s\n", lic.APIKey.Key)
	fmt.Printf("  Page limit:     %s\n", formatLimit(lic.Subscription.PageLimit))
	fmt.Printf("  Monthly limit:  %s\n", formatLimit(lic.Subscription.MonthlyGenerationLimit))
	fmt.Println()
	fmt.Println("Give the license key to the customer; it is sent as the licenseKey field on generation requests.")
}

func formatLimit(n int) string {
	if n <= 0 {
		return "unlimited"
	}
	return fmt.Sprintf("%d", n)
}

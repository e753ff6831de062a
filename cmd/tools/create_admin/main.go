// Command create_admin creates an admin user for the license administration
// endpoints. The password is bcrypt-hashed with the configured cost and
// pepper before storage.
//
// Usage:
//
//	go run cmd/tools/create_admin/main.go -username ops -password 'secret'
//
// Requires DATABASE_URL environment variable to be set. BCRYPT_COST and
// PASSWORD_PEPPER are honored when set.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/parkerjr2/seogen/internal/config"
	"github.com/parkerjr2/seogen/internal/db"
)

func main() {
	username := flag.String("username", "", "Admin username (required)")
	password := flag.String("password", "", "Admin password (required)")
	flag.Parse()

	if *username == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "ERROR: -username and -password are required")
		flag.Usage()
		os.Exit(1)
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		fmt.Fprintln(os.Stderr, "ERROR: DATABASE_URL environment variable not set")
		os.Exit(1)
	}

	passwords, err := config.NewPasswordConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Invalid password configuration: %v\n", err)
		os.Exit(1)
	}

	hash, err := passwords.HashPassword(*password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to hash password: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	database, err := db.Connect(ctx, dsn)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	admin, err := database.CreateAdminUser(ctx, *username, hash)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to create admin user: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("=== Admin User Created ===")
	fmt.Printf("  Username:  %s\n", admin.Username)
	fmt.Printf("  ID:        %s\n", admin.ID)
	fmt.Println()
	fmt.Println("Log in with POST /auth/login to obtain a bearer token for the /admin endpoints.")
}

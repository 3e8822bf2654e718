package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/mfieldsdev/chatwire/internal/config"
	"github.com/mfieldsdev/chatwire/internal/repository/mongo"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	sourceURL := os.Getenv("MIGRATIONS_URL")
	if sourceURL == "" {
		sourceURL = "file://migrations"
	}

	fmt.Printf("Applying migrations from %s to database %q...\n", sourceURL, cfg.Mongo.Database)

	if err := mongo.RunMigrations(cfg.Mongo.MigrateURI(), sourceURL); err != nil {
		fmt.Fprintf(os.Stderr, "Migration failed: %v\n", err)
		os.Exit(1)
	}
}

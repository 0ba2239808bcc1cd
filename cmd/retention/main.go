package main

import (
	"context"
	"flag"
	"log"

	"ghostorshell-backend/internal/analyses"
	"ghostorshell-backend/internal/shared/config"
	"ghostorshell-backend/internal/shared/storage/db"
)

// Bulk-deletes analysis records older than the retention window. Meant to run
// from cron; the service itself never deletes records.
func main() {
	days := flag.Int("days", 30, "delete records older than this many days")
	flag.Parse()

	if *days <= 0 {
		log.Fatal("days must be positive")
	}

	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	ctx := context.Background()
	opts := db.OptionsFromEnv(db.DefaultCLIOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer sqlDB.Close()

	repo := analyses.NewPGRepo(sqlDB)
	deleted, err := repo.DeleteOlderThan(ctx, *days)
	if err != nil {
		log.Fatalf("delete old records: %v", err)
	}
	log.Printf("deleted %d records older than %d days", deleted, *days)
}

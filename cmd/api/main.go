package main

import (
	"context"
	"log"

	"ghostorshell-backend/internal/shared/config"
	"ghostorshell-backend/internal/shared/server"
	"ghostorshell-backend/internal/shared/storage/db"
)

func main() {
	cfg := config.Load()

	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	ctx := context.Background()
	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer sqlDB.Close()

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		log.Fatalf("migrations: %v", err)
	}

	r := server.NewRouter(cfg, sqlDB)

	addr := server.Addr(cfg.Port)
	log.Printf("Starting API server on %s (demo_mode=%t)", addr, cfg.DemoMode())

	if err := r.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

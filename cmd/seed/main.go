// Command seed creates the catalog tables when they are missing and loads the
// bundled sample data into them.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"time"

	"moviereviews/infrastructure/config"
	"moviereviews/infrastructure/di"
	"moviereviews/infrastructure/persistence/dynamodb"
	"moviereviews/infrastructure/persistence/seed"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	createTables := flag.Bool("create-tables", true, "create missing tables before seeding")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall deadline")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Failed to load .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.StoreBackend != config.StoreDynamoDB {
		log.Fatalf("seed writes to DynamoDB; STORE_BACKEND is %q", cfg.StoreBackend)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	container, err := di.InitializeContainer(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}
	logger := container.Logger
	defer func() { _ = logger.Sync() }()

	if *createTables {
		if err := dynamodb.EnsureTables(ctx, container.DynamoDB, container.Catalog, logger); err != nil {
			logger.Fatal("Failed to create tables", zap.Error(err))
		}
	}

	if err := seed.Seed(ctx, container.Store, container.Tables, logger); err != nil {
		logger.Fatal("Failed to seed tables", zap.Error(err))
	}
	logger.Info("Seeding complete")
}

package main

import (
	"context"
	"flag"
	"strings"
	"time"

	"pick-analytics-service/internal/adapters/cache"
	"pick-analytics-service/internal/config"
	"pick-analytics-service/internal/platform/db"
	"pick-analytics-service/internal/platform/obs"

	"github.com/joho/godotenv"
)

func main() {
	purge := flag.Bool("purge", false, "delete expired cache entries after initializing the schema")
	flag.Parse()

	log := obs.Logger()
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found (using environment variables)")
	}

	databaseURL := config.Get("DATABASE_URL", "")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	conn, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	log.Info("Initializing cache schema...")
	if err := cache.InitPostgresSchema(ctx, conn); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Info("Schema ready.")

	if !*purge {
		return
	}

	n, err := cache.NewSQLResultCache(conn).PurgeExpired(ctx)
	if err != nil {
		log.Fatalf("purge failed: %v", err)
	}
	log.WithField("deleted", n).Info("Expired cache entries purged.")
}

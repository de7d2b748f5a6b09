package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"pick-analytics-service/internal/adapters/cache"
	"pick-analytics-service/internal/adapters/ingest"
	"pick-analytics-service/internal/api"
	"pick-analytics-service/internal/config"
	"pick-analytics-service/internal/platform/db"
	"pick-analytics-service/internal/platform/obs"
	"pick-analytics-service/internal/ports"
	"pick-analytics-service/internal/services"

	"github.com/joho/godotenv"
)

// main is the application composition root.
// It wires the configured result cache behind its port and starts the HTTP server.
func main() {
	log := obs.Logger()

	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if err := obs.Configure(cfg.Log); err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	resultCache, closeCache, err := openCache(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer closeCache.Close()

	svc := services.NewAnalysisService(ingest.NewParser(), resultCache, cfg.CacheTTL)
	router := api.NewRouter(svc, cfg.Analysis, 0)

	// Large XLSX exports take a while to upload and parse on a cold cache.
	log.WithField("addr", ":"+cfg.Port).WithField("cache", cfg.CacheBackend).Info("server listening")
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

var noopCloser = closerFunc(func() error { return nil })

// openCache builds the result cache selected by CACHE_BACKEND. A nil cache
// disables memoization.
func openCache(ctx context.Context, cfg config.Config) (ports.ResultCache, io.Closer, error) {
	switch cfg.CacheBackend {
	case config.CacheNone:
		return nil, noopCloser, nil

	case config.CacheMemory:
		return cache.NewMemoryResultCache(), noopCloser, nil

	case config.CacheRedis:
		client, err := cache.DialRedis(ctx, cfg.RedisAddr)
		if err != nil {
			return nil, nil, fmt.Errorf("open cache: %w", err)
		}
		return cache.NewRedisResultCache(client), client, nil

	case config.CachePostgres:
		conn, err := db.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("open cache: %w", err)
		}
		if err := cache.InitPostgresSchema(ctx, conn); err != nil {
			return nil, nil, closeAfter(conn, fmt.Errorf("open cache: %w", err))
		}
		return cache.NewSQLResultCache(conn), conn, nil

	case config.CacheSqlite:
		conn, err := db.OpenSqlite(cfg.SqlitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open cache: %w", err)
		}
		if err := cache.InitSqliteSchema(ctx, conn); err != nil {
			return nil, nil, closeAfter(conn, fmt.Errorf("open cache: %w", err))
		}
		return cache.NewSqliteResultCache(conn), conn, nil
	}

	return nil, nil, fmt.Errorf("open cache: unknown backend %q", cfg.CacheBackend)
}

func closeAfter(conn *sql.DB, err error) error {
	if cerr := conn.Close(); cerr != nil {
		return errors.Join(err, cerr)
	}
	return err
}

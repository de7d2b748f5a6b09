package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the SQLite result cache schema.
func InitSqliteSchema(ctx context.Context, db *sql.DB) error {
	return initSchema(ctx, db, []string{
		`
		CREATE TABLE IF NOT EXISTS analysis_cache (
			cache_key TEXT PRIMARY KEY,
			payload BLOB NOT NULL,
			expires_at INTEGER NOT NULL
		);
		`,
		`
		CREATE INDEX IF NOT EXISTS idx_analysis_cache_expires_at
		ON analysis_cache(expires_at);
		`,
	})
}

// Initialize the Postgres result cache schema.
func InitPostgresSchema(ctx context.Context, db *sql.DB) error {
	return initSchema(ctx, db, []string{
		`
		CREATE TABLE IF NOT EXISTS analysis_cache (
			cache_key TEXT PRIMARY KEY,
			payload BYTEA NOT NULL,
			expires_at TIMESTAMPTZ NOT NULL
		);
		`,
		`
		CREATE INDEX IF NOT EXISTS idx_analysis_cache_expires_at
		ON analysis_cache(expires_at);
		`,
	})
}

func initSchema(ctx context.Context, db *sql.DB, statements []string) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

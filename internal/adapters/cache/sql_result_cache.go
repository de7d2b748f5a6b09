package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"pick-analytics-service/internal/platform/obs"
)

// SQLResultCache is a Postgres-backed cache for encoded analyses.
type SQLResultCache struct {
	DB *sql.DB
}

func NewSQLResultCache(db *sql.DB) *SQLResultCache {
	return &SQLResultCache{DB: db}
}

// Fetch an unexpired cached analysis.
func (s *SQLResultCache) Get(ctx context.Context, key string) (_ []byte, _ bool, err error) {
	defer obs.Time(ctx, "result.cache.sql.Get")(&err)

	if s.DB == nil {
		return nil, false, errors.New("result cache: db is nil")
	}

	q := `
	SELECT payload
    FROM analysis_cache
    WHERE cache_key = $1
        AND expires_at > now();
	`

	var payload []byte
	err = s.DB.QueryRowContext(ctx, q, key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get result cache: query analysis_cache table: %w", err)
	}

	return payload, true, nil
}

// Store an encoded analysis, replacing any previous entry for the key.
func (s *SQLResultCache) Put(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	if s.DB == nil {
		return errors.New("result cache: db is nil")
	}
	if strings.TrimSpace(key) == "" {
		return errors.New("insert result cache: empty key")
	}

	_, err := s.DB.ExecContext(ctx, `
	INSERT INTO analysis_cache (cache_key, payload, expires_at)
    VALUES ($1, $2, $3)
	ON CONFLICT (cache_key) DO UPDATE
	SET payload = EXCLUDED.payload,
		expires_at = EXCLUDED.expires_at;
	`, key, payload, time.Now().Add(ttl).UTC())
	if err != nil {
		return fmt.Errorf("insert result cache key=%q: %w", key, err)
	}

	return nil
}

// PurgeExpired deletes expired entries and returns how many were removed.
func (s *SQLResultCache) PurgeExpired(ctx context.Context) (int64, error) {
	if s.DB == nil {
		return 0, errors.New("result cache: db is nil")
	}

	res, err := s.DB.ExecContext(ctx, `DELETE FROM analysis_cache WHERE expires_at <= now();`)
	if err != nil {
		return 0, fmt.Errorf("purge result cache: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("purge result cache: rows affected: %w", err)
	}
	return n, nil
}

package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// SQLite backed cache for encoded analyses. Expiry is stored as unix seconds.
type SqliteResultCache struct {
	DB  *sql.DB
	now func() time.Time
}

func NewSqliteResultCache(db *sql.DB) *SqliteResultCache {
	return &SqliteResultCache{DB: db, now: time.Now}
}

// Fetch an unexpired cached analysis.
func (s *SqliteResultCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if s.DB == nil {
		return nil, false, errors.New("result cache: db is nil")
	}

	q := `
	SELECT payload
    FROM analysis_cache
    WHERE cache_key = ?
        AND expires_at > ?;
	`

	var payload []byte
	err := s.DB.QueryRowContext(ctx, q, key, s.now().Unix()).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get result cache: query analysis_cache table: %w", err)
	}

	return payload, true, nil
}

// Store an encoded analysis, replacing any previous entry for the key.
func (s *SqliteResultCache) Put(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	if s.DB == nil {
		return errors.New("result cache: db is nil")
	}
	if strings.TrimSpace(key) == "" {
		return errors.New("insert result cache: empty key")
	}

	_, err := s.DB.ExecContext(ctx, `
	INSERT OR REPLACE INTO analysis_cache (
        cache_key,
        payload,
        expires_at
    )
    VALUES (?, ?, ?);
	`, key, payload, s.now().Add(ttl).Unix())
	if err != nil {
		return fmt.Errorf("insert result cache key=%q: %w", key, err)
	}

	return nil
}

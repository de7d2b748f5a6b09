package ports

import (
	"context"
	"time"
)

// Contract for storing encoded analysis results keyed by dataset identity.
// A miss is reported as (nil, false, nil), not as an error.
type ResultCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, payload []byte, ttl time.Duration) error
}

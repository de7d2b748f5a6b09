package ports

import (
	"context"
	"pick-analytics-service/internal/domain"
)

// Port: a boundary for turning an uploaded export file into typed pick events.
type DatasetParser interface {
	// Parse returns *domain.SchemaError when the timestamp columns are missing.
	Parse(ctx context.Context, name string, data []byte) (*domain.Dataset, error)
}

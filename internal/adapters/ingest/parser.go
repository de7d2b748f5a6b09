package ingest

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"pick-analytics-service/internal/domain"
	"pick-analytics-service/internal/platform/obs"
)

// Parser implements ports.DatasetParser for WMS pick exports in delimited
// text or XLSX form.
type Parser struct{}

func NewParser() *Parser { return &Parser{} }

func (p *Parser) Parse(ctx context.Context, name string, data []byte) (_ *domain.Dataset, err error) {
	defer obs.Time(ctx, "ingest.Parse")(&err)

	var rows [][]string
	if isWorkbook(name, data) {
		rows, err = readWorkbook(data)
	} else {
		rows, err = readDelimited(data)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", name, err)
	}

	ds, err := buildDataset(name, rows)
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", name, err)
	}
	return ds, nil
}

func hasExt(name string, exts ...string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}

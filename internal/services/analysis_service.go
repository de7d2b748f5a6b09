package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"pick-analytics-service/internal/domain"
	"pick-analytics-service/internal/platform/obs"
	"pick-analytics-service/internal/ports"

	"github.com/cespare/xxhash/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// DefaultCacheTTL bounds how long an encoded analysis stays cached.
const DefaultCacheTTL = 24 * time.Hour

type AnalyzeRequest struct {
	Name    string
	Data    []byte
	Options Options
}

// AnalysisService parses an export, runs the engine and memoizes the result
// by file content. The returned Analysis is shared between concurrent callers
// of the same file and must not be modified.
type AnalysisService struct {
	Parser   ports.DatasetParser
	Cache    ports.ResultCache
	CacheTTL time.Duration

	flight singleflight.Group
}

func NewAnalysisService(parser ports.DatasetParser, cache ports.ResultCache, ttl time.Duration) *AnalysisService {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &AnalysisService{Parser: parser, Cache: cache, CacheTTL: ttl}
}

// CacheKey derives the cache key from the file bytes and the options that
// change the analysis.
func CacheKey(data []byte, opts Options) string {
	h := xxhash.New()
	_, _ = h.Write(data)
	_, _ = h.WriteString("\x00" + opts.Fingerprint())
	return fmt.Sprintf("analysis:%016x", h.Sum64())
}

func (s *AnalysisService) Analyze(ctx context.Context, req AnalyzeRequest) (_ *domain.Analysis, err error) {
	defer obs.Time(ctx, "analysis.Analyze")(&err)

	if s.Parser == nil {
		return nil, errors.New("analyze: parser is nil")
	}

	engine, err := NewEngine(req.Options)
	if err != nil {
		obs.AnalysesTotal.WithLabelValues("invalid_options").Inc()
		return nil, fmt.Errorf("analyze: %w", err)
	}

	key := CacheKey(req.Data, req.Options)
	v, err, _ := s.flight.Do(key, func() (any, error) {
		return s.analyze(ctx, key, engine, req)
	})
	if err != nil {
		var se *domain.SchemaError
		if errors.As(err, &se) {
			obs.AnalysesTotal.WithLabelValues("schema_error").Inc()
		} else {
			obs.AnalysesTotal.WithLabelValues("error").Inc()
		}
		return nil, fmt.Errorf("analyze %q: %w", req.Name, err)
	}
	obs.AnalysesTotal.WithLabelValues("ok").Inc()

	// Content-keyed results may come from a differently named upload.
	out := *v.(*domain.Analysis)
	out.Source = req.Name
	return &out, nil
}

func (s *AnalysisService) analyze(ctx context.Context, key string, engine *Engine, req AnalyzeRequest) (*domain.Analysis, error) {
	log := obs.FromContext(ctx).WithFields(logrus.Fields{"source": req.Name, "cache_key": key})

	if cached, ok := s.lookup(ctx, key, log); ok {
		return cached, nil
	}

	start := time.Now()
	ds, err := s.Parser.Parse(ctx, req.Name, req.Data)
	if err != nil {
		return nil, fmt.Errorf("parse dataset: %w", err)
	}

	a := engine.Analyze(ds)
	obs.AnalysisDuration.Observe(time.Since(start).Seconds())
	obs.AnalyzedEvents.Add(float64(len(a.Events)))
	obs.DroppedRows.Add(float64(a.DroppedRows))

	log.WithFields(logrus.Fields{
		"events":      len(a.Events),
		"dropped":     a.DroppedRows,
		"groups":      len(a.Aggregates),
		"group_field": a.GroupField,
	}).Info("dataset analyzed")

	s.store(ctx, key, a, log)
	return a, nil
}

// lookup treats every cache failure as a miss.
func (s *AnalysisService) lookup(ctx context.Context, key string, log *logrus.Entry) (*domain.Analysis, bool) {
	if s.Cache == nil {
		return nil, false
	}

	payload, ok, err := s.Cache.Get(ctx, key)
	if err != nil {
		obs.CacheLookups.WithLabelValues("error").Inc()
		log.WithError(err).Warn("result cache read failed")
		return nil, false
	}
	if !ok {
		obs.CacheLookups.WithLabelValues("miss").Inc()
		return nil, false
	}

	var a domain.Analysis
	if err := json.Unmarshal(payload, &a); err != nil {
		obs.CacheLookups.WithLabelValues("error").Inc()
		log.WithError(err).Warn("result cache entry undecodable")
		return nil, false
	}

	obs.CacheLookups.WithLabelValues("hit").Inc()
	return &a, true
}

func (s *AnalysisService) store(ctx context.Context, key string, a *domain.Analysis, log *logrus.Entry) {
	if s.Cache == nil {
		return
	}

	payload, err := json.Marshal(a)
	if err != nil {
		log.WithError(err).Warn("encode analysis for cache failed")
		return
	}
	if err := s.Cache.Put(ctx, key, payload, s.CacheTTL); err != nil {
		log.WithError(err).Warn("result cache write failed")
	}
}

package obs

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AnalysesTotal counts analysis requests by outcome (ok, schema_error, error).
	AnalysesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pick_analyses_total",
		Help: "Analysis requests by outcome.",
	}, []string{"outcome"})

	// CacheLookups counts result cache lookups by result (hit, miss, error).
	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pick_analysis_cache_lookups_total",
		Help: "Result cache lookups by result.",
	}, []string{"result"})

	DroppedRows = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pick_dropped_rows_total",
		Help: "Rows dropped because their confirmation timestamp did not parse.",
	})

	AnalyzedEvents = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pick_analyzed_events_total",
		Help: "Pick events sequenced by the engine.",
	})

	AnalysisDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "pick_analysis_duration_seconds",
		Help:    "Time spent parsing and analyzing one dataset on a cache miss.",
		Buckets: prometheus.DefBuckets,
	})
)

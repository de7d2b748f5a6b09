package config

import (
	"errors"
	"testing"
	"time"

	"pick-analytics-service/internal/domain"
	"pick-analytics-service/internal/services"
)

var configKeys = []string{
	"PORT", "LOG_LEVEL", "LOG_FORMAT", "LOG_FILE", "CACHE_BACKEND", "CACHE_TTL", "REDIS_ADDR",
	"DATABASE_URL", "SQLITE_PATH", "ROW_CHANGE_PENALTY", "GROUP_BY", "IDLE_THRESHOLD_MINUTES",
	"GROSS_DURATION_CAP_SECONDS", "BREAKS", "KLT_START", "KLT_END",
}

// clearEnv blanks every key Load reads; Get treats blank as unset.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range configKeys {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "8080" {
		t.Fatalf("port = %q, want 8080", cfg.Port)
	}
	if cfg.CacheBackend != CacheMemory {
		t.Fatalf("cache backend = %q, want memory", cfg.CacheBackend)
	}
	if cfg.CacheTTL != services.DefaultCacheTTL {
		t.Fatalf("cache ttl = %v, want %v", cfg.CacheTTL, services.DefaultCacheTTL)
	}
	if cfg.Analysis.Fingerprint() != services.DefaultOptions().Fingerprint() {
		t.Fatalf("analysis options = %+v, want defaults", cfg.Analysis)
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("CACHE_BACKEND", "Redis")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("CACHE_TTL", "30m")
	t.Setenv("ROW_CHANGE_PENALTY", "10")
	t.Setenv("GROUP_BY", "TransferOrder")
	t.Setenv("IDLE_THRESHOLD_MINUTES", "7.5")
	t.Setenv("BREAKS", "12:00-12:30")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "9090" || cfg.CacheBackend != CacheRedis || cfg.CacheTTL != 30*time.Minute {
		t.Fatalf("unexpected service config: %+v", cfg)
	}
	o := cfg.Analysis
	if o.RowChangePenalty != 10 || o.GroupBy != domain.GroupByTransferOrder || o.IdleThresholdMinutes != 7.5 {
		t.Fatalf("unexpected analysis options: %+v", o)
	}
	if len(o.Breaks) != 1 || o.Breaks.String() != "12:00-12:30" {
		t.Fatalf("breaks = %v, want 12:00-12:30", o.Breaks)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]map[string]string{
		"bad int":          {"ROW_CHANGE_PENALTY": "many"},
		"negative penalty": {"ROW_CHANGE_PENALTY": "-1"},
		"bad group":        {"GROUP_BY": "Material"},
		"bad breaks":       {"BREAKS": "lunch"},
		"bad ttl":          {"CACHE_TTL": "forever"},
		"unknown backend":  {"CACHE_BACKEND": "memcached"},
		"redis no addr":    {"CACHE_BACKEND": "redis"},
		"postgres no url":  {"CACHE_BACKEND": "postgres"},
	}

	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %v", env)
			}
		})
	}
}

func TestValidateWrapsInvalidOptions(t *testing.T) {
	clearEnv(t)
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cfg.Analysis.KLTStart, cfg.Analysis.KLTEnd = cfg.Analysis.KLTEnd, cfg.Analysis.KLTStart

	if err := cfg.Validate(); !errors.Is(err, services.ErrInvalidOptions) {
		t.Fatalf("expected ErrInvalidOptions, got %v", err)
	}
}

func TestGet(t *testing.T) {
	t.Setenv("PICK_TEST_KEY", "  value ")
	if got := Get("PICK_TEST_KEY", "x"); got != "value" {
		t.Fatalf("Get = %q, want value", got)
	}
	t.Setenv("PICK_TEST_KEY", "   ")
	if got := Get("PICK_TEST_KEY", "x"); got != "x" {
		t.Fatalf("Get = %q, want fallback", got)
	}
}

// Package config reads service settings from the environment. Callers load
// a .env file with godotenv before calling Load.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"pick-analytics-service/internal/domain"
	"pick-analytics-service/internal/platform/obs"
	"pick-analytics-service/internal/services"

	"github.com/go-playground/validator/v10"
)

// Cache backends selectable with CACHE_BACKEND.
const (
	CacheMemory   = "memory"
	CacheRedis    = "redis"
	CachePostgres = "postgres"
	CacheSqlite   = "sqlite"
	CacheNone     = "none"
)

type Config struct {
	Port string `validate:"required,numeric"`
	Log  obs.LogConfig

	CacheBackend string        `validate:"oneof=memory redis postgres sqlite none"`
	CacheTTL     time.Duration `validate:"gt=0"`
	RedisAddr    string        `validate:"required_if=CacheBackend redis"`
	DatabaseURL  string        `validate:"required_if=CacheBackend postgres"`
	SqlitePath   string        `validate:"required_if=CacheBackend sqlite"`

	Analysis services.Options
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Get returns the trimmed value of key, or fallback when it is unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// Load builds a Config from the environment, applying defaults for unset keys.
func Load() (Config, error) {
	opts := services.DefaultOptions()
	var err error

	if opts.RowChangePenalty, err = getInt("ROW_CHANGE_PENALTY", opts.RowChangePenalty); err != nil {
		return Config{}, err
	}
	if opts.IdleThresholdMinutes, err = getFloat("IDLE_THRESHOLD_MINUTES", opts.IdleThresholdMinutes); err != nil {
		return Config{}, err
	}
	if opts.GrossDurationCapSeconds, err = getFloat("GROSS_DURATION_CAP_SECONDS", opts.GrossDurationCapSeconds); err != nil {
		return Config{}, err
	}
	opts.GroupBy = domain.GroupField(Get("GROUP_BY", string(opts.GroupBy)))
	opts.KLTStart = Get("KLT_START", opts.KLTStart)
	opts.KLTEnd = Get("KLT_END", opts.KLTEnd)
	if raw := Get("BREAKS", ""); raw != "" {
		if opts.Breaks, err = domain.ParseBreakCalendar(raw); err != nil {
			return Config{}, fmt.Errorf("config: BREAKS: %w", err)
		}
	}

	ttl, err := time.ParseDuration(Get("CACHE_TTL", services.DefaultCacheTTL.String()))
	if err != nil {
		return Config{}, fmt.Errorf("config: CACHE_TTL: %w", err)
	}

	cfg := Config{
		Port: Get("PORT", "8080"),
		Log: obs.LogConfig{
			Level:  Get("LOG_LEVEL", "info"),
			Format: Get("LOG_FORMAT", "text"),
			File:   Get("LOG_FILE", ""),
		},
		CacheBackend: strings.ToLower(Get("CACHE_BACKEND", CacheMemory)),
		CacheTTL:     ttl,
		RedisAddr:    Get("REDIS_ADDR", ""),
		DatabaseURL:  Get("DATABASE_URL", ""),
		SqlitePath:   Get("SQLITE_PATH", ""),
		Analysis:     opts,
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := c.Analysis.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

func getInt(key string, fallback int) (int, error) {
	raw := Get(key, "")
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return v, nil
}

func getFloat(key string, fallback float64) (float64, error) {
	raw := Get(key, "")
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return v, nil
}

package obs

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

type ctxKey string

const RequestIDKey ctxKey = "req_id"

var logger = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	return l
}

// LogConfig selects level, format (text|json) and an optional rotated log file.
type LogConfig struct {
	Level  string
	Format string
	File   string
}

// Configure applies cfg to the shared logger. With a File set, output goes to
// both stdout and the rotated file.
func Configure(cfg LogConfig) error {
	level, err := logrus.ParseLevel(strings.TrimSpace(cfg.Level))
	if err != nil {
		return fmt.Errorf("configure logging: %w", err)
	}
	logger.SetLevel(level)

	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "", "text":
		logger.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		return fmt.Errorf("configure logging: unknown format %q", cfg.Format)
	}

	var out io.Writer = os.Stdout
	if f := strings.TrimSpace(cfg.File); f != "" {
		out = io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   f,
			MaxSize:    100,
			MaxBackups: 7,
			MaxAge:     7,
			Compress:   true,
		})
	}
	logger.SetOutput(out)

	return nil
}

func Logger() *logrus.Logger { return logger }

// FromContext returns a log entry carrying the request id, if the context has one.
func FromContext(ctx context.Context) *logrus.Entry {
	entry := logrus.NewEntry(logger)
	if ctx == nil {
		return entry
	}
	if reqID, ok := ctx.Value(RequestIDKey).(string); ok && reqID != "" {
		entry = entry.WithField("req_id", reqID)
	}
	return entry
}

func WithRequestID(ctx context.Context, reqID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, reqID)
}

package observability

import (
	"log/slog"
	"os"
	"strings"
)

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string // "debug", "info", "warn", "error"
	Format string // "json", "text"

	// ServiceName is attached to every record so logs from multiple
	// marketplace services can be told apart in aggregation.
	ServiceName string
}

// InitLogger initializes a structured slog.Logger and installs it as the
// process default.
func InitLogger(cfg LogConfig) *slog.Logger {
	level := parseLevel(cfg.Level)

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "json":
		handler = slog.NewJSONHandler(os.Stdout, opts)
	default:
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	if cfg.ServiceName != "" {
		logger = logger.With("service", cfg.ServiceName)
	}
	slog.SetDefault(logger)

	return logger
}

// ComponentLogger returns a child logger tagged with the component name,
// e.g. "usecase.submit_application" or "repo.applications".
func ComponentLogger(logger *slog.Logger, component string) *slog.Logger {
	return logger.With("component", component)
}

// parseLevel converts string level to slog.Level.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

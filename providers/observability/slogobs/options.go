package slogobs

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Format selects the log output encoding.
type Format string

const (
	// FormatText emits human-readable key=value lines (slog.TextHandler).
	FormatText Format = "text"

	// FormatJSON emits one JSON object per line (slog.JSONHandler).
	FormatJSON Format = "json"
)

// Option is a functional option for configuring the Observer.
type Option func(*config)

// config holds the configuration for creating an Observer.
type config struct {
	format Format
	level  slog.Level
	output io.Writer
	logger *slog.Logger // If provided, use this logger directly
}

// WithFormat sets the log output format.
func WithFormat(format Format) Option {
	return func(c *config) {
		c.format = format
	}
}

// WithLevel sets the minimum log level.
func WithLevel(level slog.Level) Option {
	return func(c *config) {
		c.level = level
	}
}

// WithOutput sets the output writer for logs.
func WithOutput(output io.Writer) Option {
	return func(c *config) {
		c.output = output
	}
}

// WithLogger uses an existing slog.Logger instead of creating a handler.
// This option takes precedence over format/level/output options.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// GetFormatFromEnv reads AGENTGRAPH_LOG_FORMAT and returns the matching
// Format, defaulting to FormatText for unset or unrecognized values.
func GetFormatFromEnv() Format {
	switch strings.ToLower(os.Getenv("AGENTGRAPH_LOG_FORMAT")) {
	case "json":
		return FormatJSON
	default:
		return FormatText
	}
}

// GetLogLevelFromEnv reads AGENTGRAPH_LOG_LEVEL and returns the matching
// slog.Level, defaulting to INFO for unset or unrecognized values.
func GetLogLevelFromEnv() slog.Level {
	switch strings.ToLower(os.Getenv("AGENTGRAPH_LOG_LEVEL")) {
	case "trace":
		return slog.LevelDebug - 4
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// defaultConfig returns the default configuration.
func defaultConfig() *config {
	return &config{
		format: GetFormatFromEnv(),
		level:  GetLogLevelFromEnv(),
		output: os.Stdout,
		logger: nil,
	}
}

// applyOptions applies the given options to the config.
func applyOptions(opts ...Option) *config {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

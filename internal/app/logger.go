package app

import (
	"io"
	"log/slog"
)

// newLogger builds the logger for one invocation from the CLI's log flags.
// The cli package already rejected unknown values, so anything unexpected
// here quietly falls back to info/text. The global logger is left untouched
// to keep concurrent App instances in tests isolated.
func newLogger(levelStr, formatStr string, outW io.Writer) *slog.Logger {
	level := slog.LevelInfo
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}
	if formatStr == "json" {
		return slog.New(slog.NewJSONHandler(outW, opts))
	}
	return slog.New(slog.NewTextHandler(outW, opts))
}

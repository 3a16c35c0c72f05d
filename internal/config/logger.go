package config

import (
	"log/slog"
	"os"
	"strings"
)

// NewLogger builds the process logger. Level can be debug, info, warn or
// error; format is json or text.
func (c LoggerConfig) NewLogger() *slog.Logger {
	var level slog.Level

	switch strings.ToLower(c.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.EqualFold(c.Format, "text") {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}

package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// ErrLogFormat indicates an unsupported log format name.
var ErrLogFormat = errors.New("config: unknown log format")

// LogHandler returns a slog handler writing to w.
//
// format is "text" or "json"; level is any name slog.Level accepts
// ("debug", "info", "warn", "error", optionally with an offset like "info+2").
func LogHandler(w io.Writer, format, level string) (slog.Handler, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("log level %q: %w", level, err)
	}
	opts := &slog.HandlerOptions{Level: lvl}

	switch strings.ToLower(strings.TrimSpace(format)) {
	case "text", "":
		return slog.NewTextHandler(w, opts), nil
	case "json":
		return slog.NewJSONHandler(w, opts), nil
	default:
		return nil, fmt.Errorf("%q: %w", format, ErrLogFormat)
	}
}

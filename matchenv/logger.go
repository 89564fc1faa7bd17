package matchenv

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with matchenv-specific helpers so that every run
// logs with the same field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a Logger with the given handler.
// If handler is nil, a text handler to stderr at Info level is used.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{Logger: slog.New(handler)}
}

// NoopLogger returns a Logger that discards everything. It is the default.
func NoopLogger() *Logger {
	return &Logger{Logger: slog.New(slog.DiscardHandler)}
}

// LogCluster logs the outcome of a Cluster run.
func (l *Logger) LogCluster(particles, clusters int, threshold float64, err error) {
	if err != nil {
		l.Error("cluster failed",
			"particles", particles,
			"threshold", threshold,
			"error", err,
		)
		return
	}
	l.Debug("cluster completed",
		"particles", particles,
		"clusters", clusters,
		"threshold", threshold,
	)
}

// LogMotif logs the outcome of a MatchMotif run.
func (l *Logger) LogMotif(particles, matches int, threshold float64, err error) {
	if err != nil {
		l.Error("motif match failed",
			"particles", particles,
			"threshold", threshold,
			"error", err,
		)
		return
	}
	l.Debug("motif match completed",
		"particles", particles,
		"matches", matches,
		"threshold", threshold,
	)
}

package forGoSearch

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/intel/forGoSearch/config"
)

// Logger wraps slog.Logger with the field names used by search runs.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a Logger with the given handler.
// If handler is nil, a text handler writing to stderr at info level is used.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{Logger: slog.New(handler)}
}

// NewTextLogger creates a Logger that writes human-readable lines to w.
func NewTextLogger(w io.Writer, level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// NewJSONLogger creates a Logger that writes one JSON object per line to w.
func NewJSONLogger(w io.Writer, level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// NoopLogger creates a Logger that discards everything.
func NoopLogger() *Logger {
	return NewLogger(slog.DiscardHandler)
}

// WithRunID tags every record with the id of a search run.
func (l *Logger) WithRunID(id string) *Logger {
	return &Logger{Logger: l.Logger.With("run_id", id)}
}

// WithStrategy tags every record with a strategy name.
func (l *Logger) WithStrategy(s config.Strategy) *Logger {
	return &Logger{Logger: l.Logger.With("strategy", s.String())}
}

// LogDispatch logs the start of a search run.
func (l *Logger) LogDispatch(ctx context.Context, workers, size int) {
	l.DebugContext(ctx, "search dispatched",
		"workers", workers,
		"size", size,
	)
}

// LogSearch logs the end of a search run.
func (l *Logger) LogSearch(ctx context.Context, r Result, err error) {
	if err != nil {
		l.ErrorContext(ctx, "search failed",
			"workers", r.Workers,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "search completed",
		"workers", r.Workers,
		"index", r.Index,
		"found", r.Found(),
		"hits", r.Hits,
		"probes", r.Probes,
		"duration", r.Duration,
	)
}

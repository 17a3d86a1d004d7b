package johari

import (
	"context"
	"log/slog"
	"os"

	"github.com/hupe1980/johari/subject"
)

// Logger wraps slog.Logger with assessment-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	return NewLogger(slog.DiscardHandler)
}

// WithKind adds the assessment kind to every record.
func (l *Logger) WithKind(kind string) *Logger {
	return &Logger{
		Logger: l.Logger.With("kind", kind),
	}
}

// LogSubmission logs a self (empty target) or peer submission.
func (l *Logger) LogSubmission(ctx context.Context, subj, target subject.ID, traits int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "submission failed",
			"subject", subj,
			"target", target,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "submission stored",
			"subject", subj,
			"target", target,
			"traits", traits,
		)
	}
}

// LogIgnoredTraits logs names dropped by permissive ingestion.
func (l *Logger) LogIgnoredTraits(ctx context.Context, subj subject.ID, names []string) {
	l.WarnContext(ctx, "ignored unknown trait names",
		"subject", subj,
		"names", names,
	)
}

// LogQuery logs a classification query.
func (l *Logger) LogQuery(ctx context.Context, subj subject.ID, err error) {
	if err != nil {
		l.ErrorContext(ctx, "query failed",
			"subject", subj,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "query completed",
			"subject", subj,
		)
	}
}

// LogLoad logs a store load.
func (l *Logger) LogLoad(ctx context.Context, name string, subjects int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "store load failed",
			"store", name,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "store loaded",
			"store", name,
			"subjects", subjects,
		)
	}
}

// LogSave logs a store save.
func (l *Logger) LogSave(ctx context.Context, name string, subjects int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "store save failed",
			"store", name,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "store saved",
			"store", name,
			"subjects", subjects,
		)
	}
}

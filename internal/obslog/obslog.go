// Package obslog builds the structured loggers the pipeline and host use.
// The teacher's analyzer traces progress with ad hoc fmt output; this
// module promotes that to the standard log/slog, per SPEC_FULL.md's
// ambient logging section, while keeping the same "debug trace, never
// influences output" discipline §7 requires of normalization's recoverable
// failures.
package obslog

import (
	"io"
	"log/slog"
	"os"
)

// New builds the process-wide logger, text-handler by default so it reads
// well on a terminal; records below level are dropped.
func New(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// NewTo builds a logger writing to an arbitrary sink, used by tests to
// capture output instead of writing to stderr.
func NewTo(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Discard is a logger that drops everything, used where a caller needs a
// Logger but has no sink configured (e.g. a library consumer that doesn't
// care about pipeline tracing).
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// WithRun attaches a run correlation id to every record the returned
// logger emits; internal/host stamps this with a uuid per run.
func WithRun(logger *slog.Logger, runID string) *slog.Logger {
	return logger.With("run_id", runID)
}

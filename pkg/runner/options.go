package runner

import (
	"io"
	"log/slog"
)

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithIO sets where prompts are read from and written to.
func WithIO(r io.Reader, w io.Writer) Option {
	return func(rn *Runner) {
		if r != nil {
			rn.Input = r
		}
		if w != nil {
			rn.Output = w
		}
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.Logger = logger
		}
	}
}

// WithMaxSteps bounds every run. Zero or a negative value means unbounded.
func WithMaxSteps(n int) Option {
	return func(r *Runner) {
		r.MaxSteps = n
	}
}

// WithBlankAlias sets the word users may type instead of the blank rune.
func WithBlankAlias(alias string) Option {
	return func(r *Runner) {
		r.Alias = alias
	}
}

// WithRenderer configures how each configuration is drawn (e.g. TUI tables).
func WithRenderer(renderer SnapshotRenderer) Option {
	return func(r *Runner) {
		r.Renderer = renderer
	}
}

// WithVerdict configures how the outcome of a run is drawn (e.g. colors).
func WithVerdict(verdict VerdictRenderer) Option {
	return func(r *Runner) {
		r.Verdict = verdict
	}
}

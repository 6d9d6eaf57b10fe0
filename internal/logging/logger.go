package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	slogmulti "github.com/samber/slog-multi"
)

// Options configures the application logger.
type Options struct {
	// Writer receives human readable text logs. Defaults to Stderr.
	Writer io.Writer

	// File, when set, additionally receives JSON logs.
	File io.Writer
}

// New creates a configured application logger.
// It writes to Stderr (to separate from Stdout tape rendering).
// It standardizes common keys (e.g., "error" -> "err").
func New(level slog.Level, opts ...Options) *slog.Logger {
	var o Options
	if len(opts) > 0 {
		o = opts[0]
	}
	if o.Writer == nil {
		o.Writer = os.Stderr
	}

	handlerOpts := &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: replaceAttr,
	}

	handler := slog.Handler(slog.NewTextHandler(o.Writer, handlerOpts))
	if o.File != nil {
		handler = slogmulti.Fanout(
			handler,
			slog.NewJSONHandler(o.File, handlerOpts),
		)
	}
	return slog.New(handler)
}

// NewNop returns a no-op logger.
func NewNop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ParseLevel maps a level name (debug, info, warn, error) to a slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", name, err)
	}
	return level, nil
}

func replaceAttr(groups []string, a slog.Attr) slog.Attr {
	// Standardize 'error' key to 'err'
	if a.Key == "error" {
		a.Key = "err"
	}
	return a
}

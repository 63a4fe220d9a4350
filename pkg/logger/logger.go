// Package logger builds the structured loggers used by the ssecodec CLI.
// Every constructor returns a *slog.Logger so packages depend only on the
// standard logging interface.
package logger

import (
	"io"
	"log/slog"
	"os"

	charmlog "github.com/charmbracelet/log"
)

// New creates a *slog.Logger from the given options. With no options it
// writes text at Info level to os.Stderr, leaving stdout free for encoded or
// decoded output.
func New(opts ...Option) *slog.Logger {
	s := settings{level: slog.LevelInfo}
	for _, opt := range opts {
		opt(&s)
	}

	var w io.Writer = os.Stderr
	switch len(s.writers) {
	case 0:
	case 1:
		w = s.writers[0]
	default:
		w = io.MultiWriter(s.writers...)
	}

	return slog.New(newHandler(w, s))
}

func newHandler(w io.Writer, s settings) slog.Handler {
	opts := &slog.HandlerOptions{Level: s.level, AddSource: s.source}

	switch s.format {
	case FormatJSON:
		return slog.NewJSONHandler(w, opts)
	case FormatPretty:
		return charmlog.NewWithOptions(w, charmlog.Options{
			Level:           charmLevel(s.level),
			ReportTimestamp: true,
			ReportCaller:    s.source,
		})
	default:
		return slog.NewTextHandler(w, opts)
	}
}

// Nop returns a logger that discards everything. Commands start with it so
// their run logic is usable before a real logger is configured.
func Nop() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func charmLevel(l slog.Level) charmlog.Level {
	if l <= slog.LevelDebug {
		return charmlog.DebugLevel
	}
	return charmlog.InfoLevel
}

package logger

import (
	"io"
	"log/slog"
)

// Format selects how records are rendered.
type Format int

const (
	// FormatText is slog's logfmt-style key=value text.
	FormatText Format = iota

	// FormatPretty is colorized, timestamped charmbracelet/log output for
	// a terminal.
	FormatPretty

	// FormatJSON is one JSON object per record.
	FormatJSON
)

// FormatFor maps the log.json and log.pretty settings to a Format. JSON wins.
func FormatFor(json, pretty bool) Format {
	switch {
	case json:
		return FormatJSON
	case pretty:
		return FormatPretty
	default:
		return FormatText
	}
}

// Option configures a logger built by New.
type Option func(*settings)

type settings struct {
	level   slog.Level
	format  Format
	source  bool
	writers []io.Writer
}

func WithFormat(f Format) Option {
	return func(s *settings) { s.format = f }
}

// WithDebug lowers the level to Debug.
func WithDebug(debug bool) Option {
	return func(s *settings) {
		s.level = slog.LevelInfo
		if debug {
			s.level = slog.LevelDebug
		}
	}
}

// WithSource adds the caller's file:line to every record.
func WithSource(source bool) Option {
	return func(s *settings) { s.source = source }
}

// WithWriter replaces any writers chosen so far with w.
func WithWriter(w io.Writer) Option {
	return func(s *settings) { s.writers = []io.Writer{w} }
}

// WithWriters adds writers that receive the same rendered bytes as the
// ones already set.
func WithWriters(w ...io.Writer) Option {
	return func(s *settings) { s.writers = append(s.writers, w...) }
}

// Package logger provides opinionated logging capabilities for the cereb system
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"

	charmlog "github.com/charmbracelet/log"
)

type config struct {
	level   slog.Level
	pretty  bool
	json    bool
	source  bool
	writers []io.Writer
}

// New constructs a *slog.Logger from the provided options. The default is a
// text handler at Info level writing to os.Stdout.
func New(opts ...Option) *slog.Logger {
	cfg := &config{
		level:   slog.LevelInfo,
		writers: []io.Writer{os.Stdout},
	}
	for _, opt := range opts {
		opt(cfg)
	}

	w := io.MultiWriter(cfg.writers...)

	switch {
	case cfg.pretty:
		return slog.New(charmlog.NewWithOptions(w, charmlog.Options{
			Level:           charmLevel(cfg.level),
			ReportCaller:    cfg.source,
			ReportTimestamp: true,
		}))
	case cfg.json:
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level:     cfg.level,
			AddSource: cfg.source,
		}))
	default:
		return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
			Level:     cfg.level,
			AddSource: cfg.source,
		}))
	}
}

// Nop returns a logger that discards everything. Handy as a default in
// constructors that accept an optional logger.
func Nop() *slog.Logger {
	return slog.New(nopHandler{})
}

func charmLevel(l slog.Level) charmlog.Level {
	switch {
	case l <= slog.LevelDebug:
		return charmlog.DebugLevel
	case l <= slog.LevelInfo:
		return charmlog.InfoLevel
	case l <= slog.LevelWarn:
		return charmlog.WarnLevel
	default:
		return charmlog.ErrorLevel
	}
}

type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

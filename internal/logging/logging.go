// Package logging configures the slog logger of the xyedge command.
//
// Options come from flags or from the environment:
//   - XYEDGE_LOG_LEVEL=debug|info|warn|error
//   - XYEDGE_LOG_FORMAT=console|json
//   - XYEDGE_LOG_FILE=<path> (adds a rotated JSON log file)
//   - XYEDGE_LOG_SOURCE=true|false
package logging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	lj "gopkg.in/natefinch/lumberjack.v2"
)

// Options controls logger construction. The zero value logs at info level
// in console format.
type Options struct {
	Level     string
	Format    string // "console" or "json"
	AddSource bool
	File      string
}

// FromEnv builds Options from XYEDGE_LOG_* environment variables.
func FromEnv() Options {
	return Options{
		Level:     os.Getenv("XYEDGE_LOG_LEVEL"),
		Format:    os.Getenv("XYEDGE_LOG_FORMAT"),
		AddSource: strings.EqualFold(os.Getenv("XYEDGE_LOG_SOURCE"), "true"),
		File:      os.Getenv("XYEDGE_LOG_FILE"),
	}
}

// Override returns o with every non-empty field of p replacing its
// counterpart.
func (o Options) Override(p Options) Options {
	if p.Level != "" {
		o.Level = p.Level
	}
	if p.Format != "" {
		o.Format = p.Format
	}
	if p.File != "" {
		o.File = p.File
	}
	o.AddSource = o.AddSource || p.AddSource
	return o
}

// ParseLevel converts a level name to a slog.Level. The empty string means
// info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", s)
	}
}

// New returns a logger writing to w and, if opts.File is set, to a rotating
// log file. The returned io.Closer closes the log file and must be called
// when the logger is no longer used.
func New(w io.Writer, opts Options) (*slog.Logger, io.Closer, error) {
	lvl, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, nil, err
	}
	hopts := &slog.HandlerOptions{Level: lvl, AddSource: opts.AddSource}

	var console slog.Handler
	switch strings.ToLower(strings.TrimSpace(opts.Format)) {
	case "", "console":
		console = slog.NewTextHandler(w, hopts)
	case "json":
		console = slog.NewJSONHandler(w, hopts)
	default:
		return nil, nil, fmt.Errorf("unknown log format %q", opts.Format)
	}

	var closer io.Closer = nopCloser{}
	h := console
	if file := strings.TrimSpace(opts.File); file != "" {
		rotated := &lj.Logger{Filename: file, MaxSize: 10, MaxBackups: 3, MaxAge: 28}
		closer = rotated
		h = multiHandler(console, slog.NewJSONHandler(rotated, hopts))
	}
	return slog.New(h).With(slog.String("app", "xyedge")), closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// multiHandler fans out log records to multiple handlers.
func multiHandler(handlers ...slog.Handler) slog.Handler { return &multi{hs: handlers} }

type multi struct{ hs []slog.Handler }

func (m *multi) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range m.hs {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (m *multi) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range m.hs {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *multi) WithAttrs(attrs []slog.Attr) slog.Handler {
	res := make([]slog.Handler, len(m.hs))
	for i, h := range m.hs {
		res[i] = h.WithAttrs(attrs)
	}
	return &multi{hs: res}
}

func (m *multi) WithGroup(name string) slog.Handler {
	res := make([]slog.Handler, len(m.hs))
	for i, h := range m.hs {
		res[i] = h.WithGroup(name)
	}
	return &multi{hs: res}
}

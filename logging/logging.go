// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Log file rotation defaults
const (
	defaultMaxSizeMB  = 50
	defaultMaxBackups = 3
	defaultMaxAgeDays = 14
)

// Config selects level, format and an optional rotated log file
type Config struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// DefaultConfig logs info and above as text to stdout
func DefaultConfig() Config {
	return Config{
		Level:      "info",
		Format:     "text",
		MaxSizeMB:  defaultMaxSizeMB,
		MaxBackups: defaultMaxBackups,
		MaxAgeDays: defaultMaxAgeDays,
	}
}

// ValidLevel reports whether s names a level
func ValidLevel(s string) bool {
	switch strings.ToLower(s) {
	case "debug", "info", "warn", "error":
		return true
	}
	return false
}

// ValidFormat reports whether s names an output format
func ValidFormat(s string) bool {
	return s == "text" || s == "json"
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Manager owns the process logger. The level can change at any time;
// format and file changes rebuild the output handler in place, so loggers
// derived with With keep working.
type Manager struct {
	mu     sync.Mutex
	cfg    Config
	level  *slog.LevelVar
	out    *atomic.Pointer[slog.Handler]
	closer io.Closer
}

// NewManager builds the manager and its logger
func NewManager(cfg Config) (*Manager, *slog.Logger) {
	m := &Manager{
		cfg:   cfg,
		level: &slog.LevelVar{},
		out:   &atomic.Pointer[slog.Handler]{},
	}
	m.level.Set(parseLevel(cfg.Level))

	w, closer := openWriter(cfg)
	h := newHandler(w, m.level, cfg.Format)
	m.out.Store(&h)
	m.closer = closer

	return m, slog.New(&handler{out: m.out})
}

// Reconfigure applies cfg. Only the level is touched when nothing else changed.
func (m *Manager) Reconfigure(cfg Config) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.level.Set(parseLevel(cfg.Level))

	if cfg.Format != m.cfg.Format || cfg.File != m.cfg.File ||
		cfg.MaxSizeMB != m.cfg.MaxSizeMB || cfg.MaxBackups != m.cfg.MaxBackups ||
		cfg.MaxAgeDays != m.cfg.MaxAgeDays {
		if m.closer != nil {
			_ = m.closer.Close()
		}
		w, closer := openWriter(cfg)
		h := newHandler(w, m.level, cfg.Format)
		m.out.Store(&h)
		m.closer = closer
	}

	m.cfg = cfg
}

// Config returns the active configuration
func (m *Manager) Config() Config {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cfg
}

// Close releases the log file, if any. Safe to call twice.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closer == nil {
		return nil
	}
	err := m.closer.Close()
	m.closer = nil
	return err
}

// openWriter writes to stdout, and also to a lumberjack-rotated file when
// one is configured
func openWriter(cfg Config) (io.Writer, io.Closer) {
	if cfg.File == "" {
		return os.Stdout, nil
	}

	lj := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    orDefault(cfg.MaxSizeMB, defaultMaxSizeMB),
		MaxBackups: orDefault(cfg.MaxBackups, defaultMaxBackups),
		MaxAge:     orDefault(cfg.MaxAgeDays, defaultMaxAgeDays),
	}
	return io.MultiWriter(os.Stdout, lj), lj
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

func newHandler(w io.Writer, level slog.Leveler, format string) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}
	if format == "json" {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// handler forwards to whatever output the manager currently holds.
// WithAttrs and WithGroup calls are replayed, in order, on the live output.
type handler struct {
	out *atomic.Pointer[slog.Handler]
	ops []func(slog.Handler) slog.Handler
}

func (h *handler) current() slog.Handler {
	inner := *h.out.Load()
	for _, op := range h.ops {
		inner = op(inner)
	}
	return inner
}

func (h *handler) with(op func(slog.Handler) slog.Handler) *handler {
	ops := make([]func(slog.Handler) slog.Handler, len(h.ops), len(h.ops)+1)
	copy(ops, h.ops)
	return &handler{out: h.out, ops: append(ops, op)}
}

func (h *handler) Enabled(ctx context.Context, level slog.Level) bool {
	return (*h.out.Load()).Enabled(ctx, level)
}

func (h *handler) Handle(ctx context.Context, r slog.Record) error {
	return h.current().Handle(ctx, r)
}

func (h *handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h.with(func(inner slog.Handler) slog.Handler { return inner.WithAttrs(attrs) })
}

func (h *handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return h.with(func(inner slog.Handler) slog.Handler { return inner.WithGroup(name) })
}

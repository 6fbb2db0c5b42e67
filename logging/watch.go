// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package logging

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDebounce coalesces the bursts of events editors produce on save
const reloadDebounce = 250 * time.Millisecond

// LoadFunc reads the logging settings from the config file
type LoadFunc func(path string) (Config, error)

// Watch reloads the logging settings whenever the file at path changes,
// until ctx is done. The parent directory is watched so that editors that
// replace the file on save are picked up too.
func (m *Manager) Watch(ctx context.Context, path string, load LoadFunc, logger *slog.Logger) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating config watcher: %w", err)
	}
	defer w.Close() //nolint:errcheck

	path = filepath.Clean(path)
	if err := w.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(path), err)
	}
	logger.Info("watching config for log changes", "path", path)

	debounce := time.NewTimer(reloadDebounce)
	if !debounce.Stop() {
		<-debounce.C
	}

	for {
		select {
		case <-ctx.Done():
			debounce.Stop()
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			debounce.Reset(reloadDebounce)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("config watcher error", "error", err)

		case <-debounce.C:
			cfg, err := load(path)
			if err != nil {
				logger.Error("failed to reload config", "path", path, "error", err)
				continue
			}
			if !ValidLevel(cfg.Level) {
				logger.Warn("ignoring invalid log level", "level", cfg.Level)
				continue
			}
			old := m.Config()
			m.Reconfigure(cfg)
			if old.Level != cfg.Level {
				logger.Info("log level changed", "from", old.Level, "to", cfg.Level)
			}
		}
	}
}

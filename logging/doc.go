// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package logging builds the process slog logger and lets it be reconfigured
while running.

	mgr, logger := logging.NewManager(cfg.Log)
	defer mgr.Close()
	slog.SetDefault(logger)

Output goes to stdout as text (or JSON). When File is set, lines are also
written to a lumberjack-rotated file.

Manager.Watch follows the YAML config file with fsnotify and applies the
logging section again after each save, so the level can be raised to debug
on a running kiosk without a restart.
*/
package logging

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the ballot kiosk server.

The ballot kiosk simulates a self-service ballot scanner: a voter walks
through welcome, instructions and scanner screens, inserts a ballot, and
sees a success, error or invalid result. Scans are simulated with a
weighted random draw; nothing talks to real hardware.

# Starting the Server

With no configuration the server keeps everything in memory:

	go run .

Or with flags:

	go run . -p 5000 -t sqlite -d kiosk.db -log-level debug

# Configuration

Settings come from flags, then the environment (.env is loaded first), then
an optional YAML file (-c or KIOSK_CONFIG), then defaults:

  - PORT (-p): Server port (default: 5000)
  - DATABASE_TYPE (-t): memory, sqlite or postgres (default: memory)
  - DATABASE_URL (-d): SQLite path or PostgreSQL URL
  - ADMIN_PIN (-pin): 4-character admin PIN (default: 1234)
  - SCAN_DELAY (-scan-delay): delay of POST /api/scan (default: 3.5s)
  - LOG_LEVEL, LOG_FORMAT, LOG_FILE: logging

When a config file is used, edits to its log section apply without a restart.

# Architecture

The server uses a handler-based architecture with dependency injection:

  - kiosk: Screen state machine with timers (inactivity, auto-dismiss, scan)
  - scan: Weighted outcome generation
  - stats: Counter aggregation
  - store: Memory and SQL persistence of stats and location
  - db: Connections and goose migrations
  - event: In-process event bus
  - metrics: Prometheus collectors fed from the bus and HTTP middleware
  - handlers: HTTP request handlers
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, metrics, rate limiting, JSON helpers
  - models: Domain, request and response types
  - auth: Admin PIN validation
  - logging: slog setup, file rotation, config reload
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the ballot kiosk API.

# Handler Types

Each handler is a struct with shared dependencies and config:

  - StatsHandler: Scan counters (get, partial update, reset, summary)
  - LocationHandler: Polling station descriptor
  - AdminHandler: Admin PIN check
  - ScanHandler: Simulated ballot scan
  - KioskHandler: Screen controller state and events

Handlers are created via constructor functions that accept Deps and Config:

	deps := handlers.Deps{Store: st, Kiosk: ctrl, Events: bus}
	statsHandler := handlers.NewStatsHandler(deps, cfg)

Events and Clock default to a discarding publisher and the wall clock.

# Statistics

	GET   /api/stats          → GetStats
	PATCH /api/stats          → UpdateStats (only the counters present)
	POST  /api/stats/update   → UpdateStats
	POST  /api/stats/reset    → ResetStats (id kept)
	GET   /api/stats/summary  → GetSummary (success rate, "3 minutes ago")

Negative counters are rejected with 400.

# Location

	GET   /api/location → GetLocation
	PATCH /api/location → UpdateLocation
	POST  /api/location → UpdateLocation

Both municipality and locationNumber are required after trimming.

# Admin

	POST /api/admin/auth → Auth

A PIN that is not 4 characters is 400; a wrong PIN is 401 with
{"authenticated": false}. Failed attempts are logged with a salted hash of
the client IP.

# Scanning

	POST /api/scan → Scan

The optional body {"forceResult": "success"|"error"} skips the weighted
draw. The handler waits the configured scan delay (cancelled with the
request), generates a result, and aggregates it into the same store the
kiosk uses.

# Kiosk Controller

	GET  /api/kiosk                → GetState
	POST /api/kiosk/events/{event} → SendEvent
	POST /api/kiosk/admin/auth     → Authenticate

Unknown events are 400; events not valid on the current screen are 409 and
leave the state unchanged. Force and reset on a panel not yet unlocked with
the PIN are 403.
*/
package handlers

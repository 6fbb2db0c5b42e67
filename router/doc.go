// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the ballot kiosk API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints and returns
it wrapped in CORS and request metrics:

	handler := router.NewRouter(deps, cfg, m, limiter)

# Endpoints

Health and monitoring:

	GET /health  - Liveness
	GET /metrics - Prometheus exposition

Statistics:

	GET   /api/stats         - Current counters
	PATCH /api/stats         - Partial update
	POST  /api/stats/update  - Partial update
	POST  /api/stats/reset   - Zero counters
	GET   /api/stats/summary - Success rate and age

Location:

	GET   /api/location - Polling station
	PATCH /api/location - Update
	POST  /api/location - Update

Admin and scanning:

	POST /api/admin/auth - Check admin PIN (rate limited)
	POST /api/scan       - Simulated ballot scan

Kiosk controller:

	GET  /api/kiosk                - Screen state
	POST /api/kiosk/events/{event} - Apply an event (start, insert, tap, ...)
	POST /api/kiosk/admin/auth     - Unlock the open admin panel (rate limited)

# Handler Initialization

The router creates handler instances with dependency injection:

	statsHandler := handlers.NewStatsHandler(deps, cfg)
	scanHandler := handlers.NewScanHandler(deps, cfg)
	kioskHandler := handlers.NewKioskHandler(deps, cfg)

All handlers receive the shared Deps (store, kiosk controller, event
publisher) and configuration. API routes are wrapped with
middleware.WithLogging.
*/
package router

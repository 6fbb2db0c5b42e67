// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/ballot-kiosk/cliparse"
	"github.com/danielhkuo/ballot-kiosk/handlers"
	"github.com/danielhkuo/ballot-kiosk/metrics"
	"github.com/danielhkuo/ballot-kiosk/middleware"
)

// NewRouter registers every endpoint and wraps the mux with CORS and
// request metrics. limiter guards the admin PIN check.
func NewRouter(deps handlers.Deps, cfg cliparse.Config, m *metrics.Metrics, limiter *middleware.RateLimiter) http.Handler {
	mux := http.NewServeMux()

	// Initialize handlers
	statsHandler := handlers.NewStatsHandler(deps, cfg)
	locationHandler := handlers.NewLocationHandler(deps, cfg)
	adminHandler := handlers.NewAdminHandler(deps, cfg)
	scanHandler := handlers.NewScanHandler(deps, cfg)
	kioskHandler := handlers.NewKioskHandler(deps, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Prometheus scrape endpoint
	mux.Handle("GET /metrics", m.Handler())

	// Statistics
	mux.HandleFunc("GET /api/stats", middleware.WithLogging(statsHandler.GetStats))
	mux.HandleFunc("PATCH /api/stats", middleware.WithLogging(statsHandler.UpdateStats))
	mux.HandleFunc("POST /api/stats/update", middleware.WithLogging(statsHandler.UpdateStats))
	mux.HandleFunc("POST /api/stats/reset", middleware.WithLogging(statsHandler.ResetStats))
	mux.HandleFunc("GET /api/stats/summary", middleware.WithLogging(statsHandler.GetSummary))

	// Polling station
	mux.HandleFunc("GET /api/location", middleware.WithLogging(locationHandler.GetLocation))
	mux.HandleFunc("PATCH /api/location", middleware.WithLogging(locationHandler.UpdateLocation))
	mux.HandleFunc("POST /api/location", middleware.WithLogging(locationHandler.UpdateLocation))

	// Admin PIN (rate limited per client IP)
	mux.HandleFunc("POST /api/admin/auth", middleware.WithLogging(limiter.Limit(adminHandler.Auth)))

	// Simulated scanner
	mux.HandleFunc("POST /api/scan", middleware.WithLogging(scanHandler.Scan))

	// Kiosk screen controller
	mux.HandleFunc("GET /api/kiosk", middleware.WithLogging(kioskHandler.GetState))
	mux.HandleFunc("POST /api/kiosk/events/{event}", middleware.WithLogging(kioskHandler.SendEvent))
	mux.HandleFunc("POST /api/kiosk/admin/auth", middleware.WithLogging(limiter.Limit(kioskHandler.Authenticate)))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ballot-kiosk API v1"))
	})

	return middleware.CORS(middleware.WithMetrics(m, mux))
}

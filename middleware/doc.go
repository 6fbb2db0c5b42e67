// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /api/stats", middleware.WithLogging(handler))

Logs request start at debug level and completion (status, duration_ms) at info.

# Metrics

WithMetrics wraps the whole mux and reports each request to a
RequestObserver (the metrics package), labelled by the matched route
pattern rather than the raw path:

	handler := middleware.WithMetrics(m, mux)

# Rate Limiting

RateLimiter keeps one golang.org/x/time/rate limiter per client IP. The
admin PIN endpoint is wrapped with it:

	rl := middleware.NewRateLimiter(ctx, 12*time.Second, 5)
	mux.HandleFunc("POST /api/admin/auth", middleware.WithLogging(rl.Limit(h.Auth)))

Over-limit requests get 429 with a Retry-After header.

# CORS Middleware

Enable cross-origin requests for the kiosk frontend:

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Allows methods GET, POST, PATCH, OPTIONS with headers Content-Type and
Authorization.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

Parse JSON request bodies:

	var req models.UpdateLocationRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)

Used as the rate limiter key.
*/
package middleware

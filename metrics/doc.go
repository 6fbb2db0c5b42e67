// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package metrics exposes kiosk activity to Prometheus. Scan, screen and
// admin counters are fed from the event bus (Subscribe); HTTP counters are
// fed by the middleware through ObserveRequest. Handler serves /metrics.
package metrics

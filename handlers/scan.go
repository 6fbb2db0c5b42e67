// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"

	"github.com/danielhkuo/ballot-kiosk/cliparse"
	"github.com/danielhkuo/ballot-kiosk/event"
	"github.com/danielhkuo/ballot-kiosk/middleware"
	"github.com/danielhkuo/ballot-kiosk/models"
	"github.com/danielhkuo/ballot-kiosk/scan"
	"github.com/danielhkuo/ballot-kiosk/stats"
)

type ScanHandler struct {
	deps Deps
	cfg  cliparse.Config
}

// NewScanHandler returns the simulated scanner endpoint. deps.Source is
// shared between requests and must be safe for concurrent use.
func NewScanHandler(deps Deps, cfg cliparse.Config) *ScanHandler {
	deps = deps.withDefaults()
	if deps.Source == nil {
		deps.Source = scan.Locked(scan.NewSource(rand.Uint64()))
	}
	return &ScanHandler{deps: deps, cfg: cfg}
}

// Scan handles POST /api/scan
// The body is optional; forceResult skips the weighted draw.
func (h *ScanHandler) Scan(w http.ResponseWriter, r *http.Request) {
	var req models.ScanRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil && !errors.Is(err, io.EOF) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if !req.ForceResult.Valid() {
		middleware.ErrorResponse(w, http.StatusBadRequest, `forceResult must be "success" or "error"`)
		return
	}

	// Pretend to read the ballot
	if h.cfg.ScanDelay > 0 {
		select {
		case <-h.deps.Clock.After(h.cfg.ScanDelay):
		case <-r.Context().Done():
			slog.Info("scan cancelled by client")
			return
		}
	}

	now := h.deps.Clock.Now().UTC()
	result := scan.Generate(req.ForceResult, h.deps.Source, now)

	_, err := h.deps.Store.ApplyStats(r.Context(), func(cur models.VotingStats) models.VotingStats {
		return stats.Apply(cur, result, now)
	})
	if err != nil {
		slog.Error("failed to record scan", "result", result.Result, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to record scan")
		return
	}

	slog.Info("scan completed",
		"result", result.Result,
		"error_type", result.ErrorType,
		"forced", string(req.ForceResult),
	)
	h.deps.Events.Publish(event.New(now, event.ScanOutcome{
		Result:     result.Result,
		ErrorType:  result.ErrorType,
		Forced:     string(req.ForceResult),
		Source:     event.SourceAPI,
		DurationMs: result.ProcessingTimeMs,
	}))

	middleware.JSONResponse(w, http.StatusOK, result)
}

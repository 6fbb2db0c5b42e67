// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/ballot-kiosk/cliparse"
	"github.com/danielhkuo/ballot-kiosk/event"
	"github.com/danielhkuo/ballot-kiosk/middleware"
	"github.com/danielhkuo/ballot-kiosk/models"
	"github.com/danielhkuo/ballot-kiosk/stats"
	"github.com/danielhkuo/ballot-kiosk/store"
)

type StatsHandler struct {
	deps Deps
	cfg  cliparse.Config
}

func NewStatsHandler(deps Deps, cfg cliparse.Config) *StatsHandler {
	return &StatsHandler{deps: deps.withDefaults(), cfg: cfg}
}

// GetStats handles GET /api/stats
func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	st, err := h.deps.Store.GetStats(r.Context())
	if err != nil {
		slog.Error("failed to get stats", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to load stats")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, st)
}

// UpdateStats handles PATCH /api/stats and POST /api/stats/update
// Only the counters present in the body are changed.
func (h *StatsHandler) UpdateStats(w http.ResponseWriter, r *http.Request) {
	var req models.StatsUpdate
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if stats.Negative(req) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "counters must not be negative")
		return
	}

	st, err := h.deps.Store.UpdateStats(r.Context(), req)
	if errors.Is(err, store.ErrNegativeCounter) {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		slog.Error("failed to update stats", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update stats")
		return
	}

	slog.Info("stats updated", "total_scans", st.TotalScans)

	middleware.JSONResponse(w, http.StatusOK, st)
}

// ResetStats handles POST /api/stats/reset
func (h *StatsHandler) ResetStats(w http.ResponseWriter, r *http.Request) {
	st, err := h.deps.Store.ResetStats(r.Context())
	if err != nil {
		slog.Error("failed to reset stats", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to reset stats")
		return
	}

	slog.Info("stats reset", "id", st.ID)
	h.deps.Events.Publish(event.New(h.deps.Clock.Now().UTC(), event.Reset{StatsID: st.ID}))

	middleware.JSONResponse(w, http.StatusOK, st)
}

// GetSummary handles GET /api/stats/summary
func (h *StatsHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	st, err := h.deps.Store.GetStats(r.Context())
	if err != nil {
		slog.Error("failed to get stats", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to load stats")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.StatsSummary{
		Stats:       st,
		SuccessRate: stats.SuccessRate(st),
		UpdatedAgo:  humanize.RelTime(st.UpdatedAt, h.deps.Clock.Now(), "ago", "from now"),
	})
}

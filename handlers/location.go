// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/ballot-kiosk/cliparse"
	"github.com/danielhkuo/ballot-kiosk/middleware"
	"github.com/danielhkuo/ballot-kiosk/models"
	"github.com/danielhkuo/ballot-kiosk/store"
)

type LocationHandler struct {
	deps Deps
	cfg  cliparse.Config
}

func NewLocationHandler(deps Deps, cfg cliparse.Config) *LocationHandler {
	return &LocationHandler{deps: deps.withDefaults(), cfg: cfg}
}

// GetLocation handles GET /api/location
func (h *LocationHandler) GetLocation(w http.ResponseWriter, r *http.Request) {
	loc, err := h.deps.Store.GetLocation(r.Context())
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Location not set")
		return
	}
	if err != nil {
		slog.Error("failed to get location", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to load location")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, loc)
}

// UpdateLocation handles PATCH /api/location and POST /api/location
func (h *LocationHandler) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateLocationRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	loc, err := h.deps.Store.UpdateLocation(r.Context(), req)
	if errors.Is(err, store.ErrInvalidLocation) {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		slog.Error("failed to update location", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update location")
		return
	}

	slog.Info("location updated", "municipality", loc.Municipality, "location_number", loc.LocationNumber)

	middleware.JSONResponse(w, http.StatusOK, loc)
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/ballot-kiosk/auth"
	"github.com/danielhkuo/ballot-kiosk/cliparse"
	"github.com/danielhkuo/ballot-kiosk/kiosk"
	"github.com/danielhkuo/ballot-kiosk/middleware"
	"github.com/danielhkuo/ballot-kiosk/models"
)

type KioskHandler struct {
	deps Deps
	cfg  cliparse.Config
	salt string
}

func NewKioskHandler(deps Deps, cfg cliparse.Config) *KioskHandler {
	return &KioskHandler{deps: deps.withDefaults(), cfg: cfg, salt: newIPSalt()}
}

// GetState handles GET /api/kiosk
func (h *KioskHandler) GetState(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, h.deps.Kiosk.Snapshot())
}

// SendEvent handles POST /api/kiosk/events/{event}
// Returns the state after the event has been applied.
func (h *KioskHandler) SendEvent(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("event")
	if name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "event is required")
		return
	}

	err := h.deps.Kiosk.Dispatch(r.Context(), name)
	switch {
	case errors.Is(err, kiosk.ErrAdminLocked):
		middleware.ErrorResponse(w, http.StatusForbidden, err.Error())
		return
	case errors.Is(err, kiosk.ErrUnknownEvent):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, kiosk.ErrInvalidTransition):
		middleware.ErrorResponse(w, http.StatusConflict, err.Error())
		return
	case errors.Is(err, kiosk.ErrClosed):
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, err.Error())
		return
	case err != nil:
		slog.Error("kiosk event failed", "event", name, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Event failed")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, h.deps.Kiosk.Snapshot())
}

// Authenticate handles POST /api/kiosk/admin/auth
// Unlocks force and reset on the open admin panel.
func (h *KioskHandler) Authenticate(w http.ResponseWriter, r *http.Request) {
	var req models.AdminAuthRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	err := h.deps.Kiosk.Authenticate(req.PIN)
	switch {
	case errors.Is(err, auth.ErrMalformedPIN):
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid PIN format")
		return
	case errors.Is(err, auth.ErrInvalidPIN):
		slog.Warn("kiosk admin auth failed", "ip_hash", auth.HashIP(middleware.GetClientIP(r), h.salt))
		middleware.JSONResponse(w, http.StatusUnauthorized, models.AdminAuthResponse{
			Authenticated: false,
			Error:         "Invalid PIN",
		})
		return
	case errors.Is(err, kiosk.ErrInvalidTransition):
		middleware.ErrorResponse(w, http.StatusConflict, err.Error())
		return
	case errors.Is(err, kiosk.ErrClosed):
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, err.Error())
		return
	case err != nil:
		slog.Error("kiosk admin auth failed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to validate PIN")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, h.deps.Kiosk.Snapshot())
}

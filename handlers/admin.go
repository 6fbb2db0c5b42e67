// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/ballot-kiosk/auth"
	"github.com/danielhkuo/ballot-kiosk/cliparse"
	"github.com/danielhkuo/ballot-kiosk/middleware"
	"github.com/danielhkuo/ballot-kiosk/models"
)

type AdminHandler struct {
	deps Deps
	cfg  cliparse.Config
	salt string
}

func NewAdminHandler(deps Deps, cfg cliparse.Config) *AdminHandler {
	return &AdminHandler{deps: deps.withDefaults(), cfg: cfg, salt: newIPSalt()}
}

// newIPSalt keys the hashes failed PIN attempts are logged under
func newIPSalt() string {
	salt, err := auth.GenerateSalt(16)
	if err != nil {
		// Failed attempts are still logged, just with an unsalted hash
		slog.Error("failed to generate ip salt", "error", err)
	}
	return salt
}

// Auth handles POST /api/admin/auth
func (h *AdminHandler) Auth(w http.ResponseWriter, r *http.Request) {
	var req models.AdminAuthRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	err := auth.ValidatePIN(req.PIN, h.cfg.AdminPIN)
	switch {
	case errors.Is(err, auth.ErrMalformedPIN):
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid PIN format")
		return
	case errors.Is(err, auth.ErrInvalidPIN):
		slog.Warn("admin auth failed", "ip_hash", auth.HashIP(middleware.GetClientIP(r), h.salt))
		middleware.JSONResponse(w, http.StatusUnauthorized, models.AdminAuthResponse{
			Authenticated: false,
			Error:         "Invalid PIN",
		})
		return
	case err != nil:
		slog.Error("failed to validate PIN", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to validate PIN")
		return
	}

	slog.Info("admin authenticated")

	middleware.JSONResponse(w, http.StatusOK, models.AdminAuthResponse{Authenticated: true})
}

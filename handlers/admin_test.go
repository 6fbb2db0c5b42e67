// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/ballot-kiosk/models"
	"github.com/danielhkuo/ballot-kiosk/testutil"
)

func TestAdminAuth(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		expectedStatus int
		wantAuth       bool
	}{
		{"correct PIN", models.AdminAuthRequest{PIN: "1234"}, http.StatusOK, true},
		{"wrong PIN", models.AdminAuthRequest{PIN: "0000"}, http.StatusUnauthorized, false},
		{"too short", models.AdminAuthRequest{PIN: "123"}, http.StatusBadRequest, false},
		{"too long", models.AdminAuthRequest{PIN: "12345"}, http.StatusBadRequest, false},
		{"missing PIN", map[string]string{}, http.StatusBadRequest, false},
		{"no body", nil, http.StatusBadRequest, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps, _, _ := newTestDeps(t)
			h := NewAdminHandler(deps, testutil.GetTestConfig())

			w := httptest.NewRecorder()
			h.Auth(w, testutil.MakeRequest("POST", "/api/admin/auth", tt.body, nil))

			testutil.AssertStatus(t, w, tt.expectedStatus)

			if tt.expectedStatus == http.StatusBadRequest {
				return
			}

			var resp models.AdminAuthResponse
			testutil.AssertJSON(t, w, &resp)
			if resp.Authenticated != tt.wantAuth {
				t.Errorf("Expected authenticated=%v, got %v", tt.wantAuth, resp.Authenticated)
			}
			if !tt.wantAuth && resp.Error == "" {
				t.Error("Expected error message on failed auth")
			}
		})
	}
}

func TestAdminAuth_ConfiguredPIN(t *testing.T) {
	deps, _, _ := newTestDeps(t)
	cfg := testutil.GetTestConfig()
	cfg.AdminPIN = "9z9z"
	h := NewAdminHandler(deps, cfg)

	w := httptest.NewRecorder()
	h.Auth(w, testutil.MakeRequest("POST", "/api/admin/auth", models.AdminAuthRequest{PIN: "1234"}, nil))
	testutil.AssertStatus(t, w, http.StatusUnauthorized)

	w = httptest.NewRecorder()
	h.Auth(w, testutil.MakeRequest("POST", "/api/admin/auth", models.AdminAuthRequest{PIN: "9z9z"}, nil))
	testutil.AssertStatus(t, w, http.StatusOK)
}

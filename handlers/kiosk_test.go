// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/ballot-kiosk/kiosk"
	"github.com/danielhkuo/ballot-kiosk/models"
	"github.com/danielhkuo/ballot-kiosk/testutil"
)

func newKioskHandler(t *testing.T) (*KioskHandler, *kiosk.Controller) {
	t.Helper()

	deps, pub, mock := newTestDeps(t)
	cfg := testutil.GetTestConfig()
	ctrl := kiosk.New(kiosk.Config{
		Store:    deps.Store,
		Source:   deps.Source,
		Clock:    mock,
		Events:   pub,
		AdminPIN: cfg.AdminPIN,
	})
	t.Cleanup(ctrl.Close)

	deps.Kiosk = ctrl
	return NewKioskHandler(deps, cfg), ctrl
}

func sendPIN(h *KioskHandler, pin string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.Authenticate(w, testutil.MakeRequest("POST", "/api/kiosk/admin/auth", models.AdminAuthRequest{PIN: pin}, nil))
	return w
}

func sendEvent(h *KioskHandler, name string) *httptest.ResponseRecorder {
	req := testutil.MakeRequest("POST", "/api/kiosk/events/"+name, nil, nil)
	req.SetPathValue("event", name)
	w := httptest.NewRecorder()
	h.SendEvent(w, req)
	return w
}

func TestKioskGetState(t *testing.T) {
	h, _ := newKioskHandler(t)

	w := httptest.NewRecorder()
	h.GetState(w, testutil.MakeRequest("GET", "/api/kiosk", nil, nil))

	testutil.AssertStatus(t, w, http.StatusOK)

	var state models.KioskState
	testutil.AssertJSON(t, w, &state)
	if state.Screen != models.ScreenWelcome {
		t.Errorf("Expected welcome screen, got %s", state.Screen)
	}
	if state.AdminPanelOpen {
		t.Error("Admin panel should start closed")
	}
}

func TestKioskSendEvent(t *testing.T) {
	tests := []struct {
		name           string
		events         []string
		expectedStatus int
		wantScreen     models.Screen
	}{
		{"start", []string{"start"}, http.StatusOK, models.ScreenInstructions},
		{"continue to scanner", []string{"start", "continue"}, http.StatusOK, models.ScreenScanner},
		{"cancel from scanner", []string{"start", "continue", "cancel"}, http.StatusOK, models.ScreenWelcome},
		{"insert starts scan", []string{"start", "continue", "insert"}, http.StatusOK, models.ScreenScanning},
		{"continue on welcome", []string{"continue"}, http.StatusConflict, models.ScreenWelcome},
		{"finish on welcome", []string{"finish"}, http.StatusConflict, models.ScreenWelcome},
		{"retry outside error", []string{"start", "retry"}, http.StatusConflict, models.ScreenInstructions},
		{"force with panel closed", []string{"force-success"}, http.StatusConflict, models.ScreenWelcome},
		{"unknown event", []string{"explode"}, http.StatusBadRequest, models.ScreenWelcome},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, ctrl := newKioskHandler(t)

			var w *httptest.ResponseRecorder
			for _, name := range tt.events {
				w = sendEvent(h, name)
			}

			testutil.AssertStatus(t, w, tt.expectedStatus)

			if got := ctrl.Snapshot().Screen; got != tt.wantScreen {
				t.Errorf("Expected screen %s, got %s", tt.wantScreen, got)
			}

			if tt.expectedStatus == http.StatusOK {
				var state models.KioskState
				testutil.AssertJSON(t, w, &state)
				if state.Screen != tt.wantScreen {
					t.Errorf("Response screen %s, want %s", state.Screen, tt.wantScreen)
				}
			}
		})
	}
}

func TestKioskAdminViaEvents(t *testing.T) {
	h, ctrl := newKioskHandler(t)
	testutil.SeedStats(t, h.deps.Store, models.StatsUpdate{TotalScans: testutil.Int(2), Successful: testutil.Int(2)})

	for i := 0; i < 3; i++ {
		testutil.AssertStatus(t, sendEvent(h, "tap"), http.StatusOK)
	}
	if !ctrl.Snapshot().AdminPanelOpen {
		t.Fatal("Expected admin panel open after three taps")
	}

	// Panel open, PIN not entered yet
	testutil.AssertStatus(t, sendEvent(h, "force-success"), http.StatusForbidden)
	testutil.AssertStatus(t, sendEvent(h, "reset-stats"), http.StatusForbidden)
	if got := ctrl.Snapshot().ForcedOutcome; got != models.ForceNone {
		t.Errorf("Locked force set outcome %q", got)
	}
	if st, _ := h.deps.Store.GetStats(context.Background()); st.TotalScans != 2 {
		t.Errorf("Locked reset cleared stats: %+v", st)
	}

	w := sendPIN(h, "9999")
	testutil.AssertStatus(t, w, http.StatusUnauthorized)
	var authResp models.AdminAuthResponse
	testutil.AssertJSON(t, w, &authResp)
	if authResp.Authenticated {
		t.Error("Wrong PIN reported as authenticated")
	}

	w = sendPIN(h, testutil.GetTestConfig().AdminPIN)
	testutil.AssertStatus(t, w, http.StatusOK)
	var state models.KioskState
	testutil.AssertJSON(t, w, &state)
	if !state.AdminAuthenticated {
		t.Fatal("Expected panel unlocked after correct PIN")
	}

	testutil.AssertStatus(t, sendEvent(h, "reset-stats"), http.StatusOK)
	if st, _ := h.deps.Store.GetStats(context.Background()); st.TotalScans != 0 {
		t.Errorf("Reset did not clear stats: %+v", st)
	}

	w = sendEvent(h, "force-error")
	testutil.AssertStatus(t, w, http.StatusOK)

	state = models.KioskState{}
	testutil.AssertJSON(t, w, &state)
	if state.ForcedOutcome != models.ForceError {
		t.Errorf("Expected forced error, got %q", state.ForcedOutcome)
	}
	if state.AdminPanelOpen || state.AdminAuthenticated {
		t.Error("Force should close and lock the admin panel")
	}
	if state.Screen != models.ScreenScanner {
		t.Errorf("Force should go to scanner, got %s", state.Screen)
	}
}

func TestKioskAuthenticate(t *testing.T) {
	tests := []struct {
		name           string
		taps           int
		body           interface{}
		expectedStatus int
	}{
		{"panel closed", 0, models.AdminAuthRequest{PIN: "1234"}, http.StatusConflict},
		{"short PIN", 3, models.AdminAuthRequest{PIN: "12"}, http.StatusBadRequest},
		{"wrong PIN", 3, models.AdminAuthRequest{PIN: "4321"}, http.StatusUnauthorized},
		{"not JSON", 3, "pin=1234", http.StatusBadRequest},
		{"correct PIN", 3, models.AdminAuthRequest{PIN: "1234"}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, ctrl := newKioskHandler(t)
			for i := 0; i < tt.taps; i++ {
				sendEvent(h, "tap")
			}

			w := httptest.NewRecorder()
			h.Authenticate(w, testutil.MakeRequest("POST", "/api/kiosk/admin/auth", tt.body, nil))

			testutil.AssertStatus(t, w, tt.expectedStatus)
			if got := ctrl.Snapshot().AdminAuthenticated; got != (tt.expectedStatus == http.StatusOK) {
				t.Errorf("AdminAuthenticated = %v", got)
			}
		})
	}
}

func TestKioskSendEvent_Closed(t *testing.T) {
	h, ctrl := newKioskHandler(t)
	ctrl.Close()

	testutil.AssertStatus(t, sendEvent(h, "start"), http.StatusServiceUnavailable)
}

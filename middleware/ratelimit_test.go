// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/ballot-kiosk/models"
)

func limitedHandler(t *testing.T, burst int) http.HandlerFunc {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	rl := NewRateLimiter(ctx, time.Hour, burst)
	return rl.Limit(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func send(handler http.HandlerFunc, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/admin/auth", nil)
	req.RemoteAddr = remoteAddr
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

func TestRateLimiter_AllowsBurst(t *testing.T) {
	handler := limitedHandler(t, 5)

	for i := 0; i < 5; i++ {
		if w := send(handler, "203.0.113.1:1234"); w.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want %d", i+1, w.Code, http.StatusOK)
		}
	}
}

func TestRateLimiter_BlocksAfterBurst(t *testing.T) {
	handler := limitedHandler(t, 3)

	for i := 0; i < 3; i++ {
		send(handler, "203.0.113.2:1234")
	}

	w := send(handler, "203.0.113.2:1234")
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusTooManyRequests)
	}
	if w.Header().Get("Retry-After") != "3600" {
		t.Errorf("Retry-After = %q, want 3600", w.Header().Get("Retry-After"))
	}

	var resp models.ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding error body: %v", err)
	}
	if resp.Error != "Too Many Requests" {
		t.Errorf("error = %q", resp.Error)
	}
}

func TestRateLimiter_DifferentIPsIndependent(t *testing.T) {
	handler := limitedHandler(t, 1)

	send(handler, "203.0.113.3:1234")
	if w := send(handler, "203.0.113.3:1234"); w.Code != http.StatusTooManyRequests {
		t.Fatalf("second request from same IP: status = %d", w.Code)
	}
	if w := send(handler, "203.0.113.4:1234"); w.Code != http.StatusOK {
		t.Errorf("other IP: status = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestNewRateLimiter_Defaults(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rl := NewRateLimiter(ctx, 0, 0)
	if rl.every != DefaultPINRate || rl.burst != DefaultPINBurst {
		t.Errorf("defaults not applied: every=%v burst=%d", rl.every, rl.burst)
	}
}

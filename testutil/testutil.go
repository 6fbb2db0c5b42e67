// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/danielhkuo/ballot-kiosk/cliparse"
	"github.com/danielhkuo/ballot-kiosk/db"
	"github.com/danielhkuo/ballot-kiosk/models"
	"github.com/danielhkuo/ballot-kiosk/store"
)

// NewTestStore returns an empty in-memory store with the default location
func NewTestStore(t *testing.T) *store.Memory {
	t.Helper()
	return store.NewMemory(store.DefaultLocation)
}

// NewClockedStore is NewTestStore with updatedAt stamped from c
func NewClockedStore(t *testing.T, c clock.Clock) *store.Memory {
	t.Helper()
	d := store.DefaultLocation
	d.Clock = c
	return store.NewMemory(d)
}

// NewSQLiteStore returns a migrated store on a private in-memory SQLite database
func NewSQLiteStore(t *testing.T) *store.SQL {
	t.Helper()

	conn, err := db.Open(db.TypeSQLite, ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.Migrate(conn, db.TypeSQLite); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	st, err := store.NewSQL(context.Background(), conn, db.TypeSQLite, store.DefaultLocation)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	return st
}

// GetTestConfig returns a standard test configuration with no scan delay
func GetTestConfig() cliparse.Config {
	cfg := cliparse.Default()
	cfg.Port = 3318
	cfg.ScanDelay = 0
	return cfg
}

// SeedStats overwrites the counters of st
func SeedStats(t *testing.T, st store.StatsRepository, u models.StatsUpdate) models.VotingStats {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	out, err := st.UpdateStats(ctx, u)
	if err != nil {
		t.Fatalf("Failed to seed stats: %v", err)
	}
	return out
}

// Int returns a pointer to n, for partial stats updates
func Int(n int) *int {
	return &n
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}

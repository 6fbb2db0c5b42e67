// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/danielhkuo/ballot-kiosk/models"
	"github.com/danielhkuo/ballot-kiosk/stats"
	"github.com/danielhkuo/ballot-kiosk/store"
	"github.com/danielhkuo/ballot-kiosk/testutil"
)

// TestConcurrentScans verifies that simultaneous scans against one store
// are all counted and the counters still add up
func TestConcurrentScans(t *testing.T) {
	stores := []struct {
		name string
		new  func(t *testing.T) store.Store
	}{
		{"memory", func(t *testing.T) store.Store { return testutil.NewTestStore(t) }},
		{"sqlite", func(t *testing.T) store.Store { return testutil.NewSQLiteStore(t) }},
	}

	for _, s := range stores {
		t.Run(s.name, func(t *testing.T) {
			deps, _, _ := newTestDeps(t)
			deps.Store = s.new(t)
			h := NewScanHandler(deps, testutil.GetTestConfig())

			numScans := 25
			var okCount atomic.Int32
			var wg sync.WaitGroup

			for i := 0; i < numScans; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()

					w := httptest.NewRecorder()
					h.Scan(w, testutil.MakeRequest("POST", "/api/scan", nil, nil))
					if w.Code == http.StatusOK {
						okCount.Add(1)
					}
				}()
			}

			wg.Wait()

			if int(okCount.Load()) != numScans {
				t.Errorf("Expected %d successful scans, got %d", numScans, okCount.Load())
			}

			st, err := deps.Store.GetStats(context.Background())
			if err != nil {
				t.Fatal(err)
			}
			if st.TotalScans != numScans {
				t.Errorf("Expected %d scans recorded, got %d (lost updates)", numScans, st.TotalScans)
			}
			if !stats.Consistent(st) {
				t.Errorf("Inconsistent stats: %+v", st)
			}
		})
	}
}

// TestConcurrentUpdateAndReset verifies that resets racing with updates
// never leave a negative or half-applied record
func TestConcurrentUpdateAndReset(t *testing.T) {
	deps, _, _ := newTestDeps(t)
	statsHandler := NewStatsHandler(deps, testutil.GetTestConfig())

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			w := httptest.NewRecorder()
			statsHandler.UpdateStats(w, testutil.MakeRequest("PATCH", "/api/stats", models.StatsUpdate{
				TotalScans: testutil.Int(n),
				Successful: testutil.Int(n),
			}, nil))
		}(i)
		go func() {
			defer wg.Done()
			w := httptest.NewRecorder()
			statsHandler.ResetStats(w, testutil.MakeRequest("POST", "/api/stats/reset", nil, nil))
		}()
	}

	wg.Wait()

	st, err := deps.Store.GetStats(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if st.TotalScans != st.Successful {
		t.Errorf("Update applied partially: %+v", st)
	}
}

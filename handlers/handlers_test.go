// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"sync"
	"testing"

	"github.com/benbjohnson/clock"

	"github.com/danielhkuo/ballot-kiosk/event"
	"github.com/danielhkuo/ballot-kiosk/scan"
	"github.com/danielhkuo/ballot-kiosk/testutil"
)

// recordingPublisher keeps every published event
type recordingPublisher struct {
	mu     sync.Mutex
	events []event.Event
}

func (p *recordingPublisher) Publish(e event.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

func (p *recordingPublisher) ofType(t event.Type) []event.Event {
	p.mu.Lock()
	defer p.mu.Unlock()

	var out []event.Event
	for _, e := range p.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

// newTestDeps returns deps on a fresh memory store with a mock clock and a
// seeded random source
func newTestDeps(t *testing.T) (Deps, *recordingPublisher, *clock.Mock) {
	t.Helper()

	pub := &recordingPublisher{}
	mock := clock.NewMock()
	return Deps{
		Store:  testutil.NewClockedStore(t, mock),
		Events: pub,
		Clock:  mock,
		Source: scan.Locked(scan.NewSource(42)),
	}, pub, mock
}

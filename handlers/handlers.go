// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"github.com/benbjohnson/clock"

	"github.com/danielhkuo/ballot-kiosk/event"
	"github.com/danielhkuo/ballot-kiosk/kiosk"
	"github.com/danielhkuo/ballot-kiosk/scan"
	"github.com/danielhkuo/ballot-kiosk/store"
)

// Deps is what the handlers share. Kiosk is only needed by KioskHandler.
type Deps struct {
	Store  store.Store
	Kiosk  *kiosk.Controller
	Events event.Publisher
	Clock  clock.Clock
	Source scan.Source
}

func (d Deps) withDefaults() Deps {
	if d.Events == nil {
		d.Events = event.Discard{}
	}
	if d.Clock == nil {
		d.Clock = clock.New()
	}
	return d
}

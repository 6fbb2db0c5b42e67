// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package event is the kiosk's in-process pub/sub bus.

The kiosk controller and the handlers publish; metrics and logging
subscribe. Every event carries a typed payload, and New derives the event
type from it:

	bus.Publish(event.New(now, event.ScreenChange{From: "welcome", To: "instructions"}))

	event.On(bus, func(e event.Event, s event.ScanOutcome) {
		// only scan.completed events arrive here
	})

Publish never blocks. When the buffer is full the event is dropped and
counted; Dropped reports the total.
*/
package event

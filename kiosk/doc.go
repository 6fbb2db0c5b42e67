// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package kiosk runs the voting kiosk's screen state machine.

# Screens

	welcome --start--> instructions --continue--> scanner --insert--> scanning
	scanning --(scan done)--> success | error | invalid
	success --finish or 10s--> welcome
	error   --retry--> scanner, --new-ballot--> welcome
	invalid --accept or new-ballot--> welcome
	scanner --cancel--> welcome

Events that do not apply to the current screen return ErrInvalidTransition
and change nothing. Dispatch accepts the event names listed as Event*
constants, which is how the HTTP layer drives the controller:

	err := ctrl.Dispatch(ctx, kiosk.EventStart)

# Timers

Every delay is a named task scheduled on a clock.Clock. Scheduling a name
replaces its pending task, leaving a screen cancels the tasks it owns, and a
callback that fires after its task was replaced is dropped. Tests pass a
clock.NewMock() and advance it.

  - inactivity: 30s on welcome, instructions and scanner; resets to welcome
  - scan: three 1s progress steps (33, 66, 100), 500ms settle, then the
    result is generated and shown 50ms later
  - success-dismiss: 10s countdown on the success screen
  - tap: 500ms window for the hidden admin hotspot

# Admin Panel

Three taps on the hotspot, each within the tap window of the previous one,
open the admin panel on any screen. The panel is locked until Authenticate
gets the admin PIN. Once unlocked an operator can force the next scan to
succeed or fail, which also closes the panel and jumps to the scanner, or
reset the statistics. Closing the panel locks it again. A forced outcome is
consumed by the next scan.

# Statistics

Each completed scan is folded into the store with stats.Apply; retries use
stats.Retry. Store failures are logged and never stall the screens.
*/
package kiosk

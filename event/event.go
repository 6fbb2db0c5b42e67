// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package event

import "time"

// Type identifies a category of event
type Type string

// Known event types
const (
	ScreenChanged Type = "screen.changed"
	ScanCompleted Type = "scan.completed"
	AdminOpened   Type = "admin.opened"
	AdminUnlocked Type = "admin.unlocked"
	StatsReset    Type = "stats.reset"
	HelpRequested Type = "help.requested"
)

// All lists every known type, for subscribers that want everything
var All = []Type{ScreenChanged, ScanCompleted, AdminOpened, AdminUnlocked, StatsReset, HelpRequested}

// Event is something the kiosk did. Data always matches Type; build events
// with New.
type Event struct {
	Type      Type      `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      Payload   `json:"data,omitempty"`
}

// New wraps p in an Event of p's type
func New(at time.Time, p Payload) Event {
	return Event{Type: p.EventType(), Timestamp: at, Data: p}
}

// Payload is the typed body of an Event
type Payload interface {
	EventType() Type
}

// ScreenChange is published on every screen transition
type ScreenChange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

func (ScreenChange) EventType() Type { return ScreenChanged }

// ScanOutcome is published for every finished scan, from the kiosk
// controller or from POST /api/scan
type ScanOutcome struct {
	Result     string `json:"result"`
	ErrorType  string `json:"errorType,omitempty"`
	Forced     string `json:"forced,omitempty"`
	Source     string `json:"source"`
	DurationMs int    `json:"durationMs"`
}

func (ScanOutcome) EventType() Type { return ScanCompleted }

// Scan origins
const (
	SourceKiosk = "kiosk"
	SourceAPI   = "api"
)

// AdminOpen is published when the hotspot taps open the admin panel
type AdminOpen struct {
	Screen string `json:"screen"`
}

func (AdminOpen) EventType() Type { return AdminOpened }

// AdminUnlock is published when the admin PIN unlocks the panel
type AdminUnlock struct {
	Screen string `json:"screen"`
}

func (AdminUnlock) EventType() Type { return AdminUnlocked }

// Reset is published after the statistics are zeroed
type Reset struct {
	StatsID string `json:"statsId"`
}

func (Reset) EventType() Type { return StatsReset }

// HelpRequest is published when a voter calls for assistance
type HelpRequest struct {
	Event  string `json:"event"`
	Screen string `json:"screen"`
}

func (HelpRequest) EventType() Type { return HelpRequested }

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package kiosk

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/danielhkuo/ballot-kiosk/auth"
	"github.com/danielhkuo/ballot-kiosk/event"
	"github.com/danielhkuo/ballot-kiosk/models"
	"github.com/danielhkuo/ballot-kiosk/scan"
	"github.com/danielhkuo/ballot-kiosk/stats"
	"github.com/danielhkuo/ballot-kiosk/store"
)

var (
	ErrInvalidTransition = errors.New("event not allowed on current screen")
	ErrUnknownEvent      = errors.New("unknown kiosk event")
	ErrClosed            = errors.New("kiosk controller closed")
	ErrAdminLocked       = errors.New("admin PIN required")
)

// Event names accepted by Dispatch
const (
	EventStart          = "start"
	EventContinue       = "continue"
	EventInsert         = "insert"
	EventCancel         = "cancel"
	EventFinish         = "finish"
	EventRetry          = "retry"
	EventNewBallot      = "new-ballot"
	EventAccept         = "accept"
	EventTap            = "tap"
	EventCloseAdmin     = "close-admin"
	EventForceSuccess   = "force-success"
	EventForceError     = "force-error"
	EventResetStats     = "reset-stats"
	EventCallHelp       = "call-help"
	EventCallCommission = "call-commission"
)

// tapsToOpen is how many hotspot taps open the admin panel
const tapsToOpen = 3

// progressSteps are the progress values shown after each scan step
var progressSteps = []int{33, 66, 100}

// storeTimeout bounds store calls made from timer callbacks
const storeTimeout = 5 * time.Second

// Timings holds every delay the controller uses
type Timings struct {
	Inactivity     time.Duration `yaml:"inactivity"`
	SuccessDismiss time.Duration `yaml:"success_dismiss"`
	TapWindow      time.Duration `yaml:"tap_window"`
	ScanStep       time.Duration `yaml:"scan_step"`
	ScanSettle     time.Duration `yaml:"scan_settle"`
	ResultSettle   time.Duration `yaml:"result_settle"`
}

// DefaultTimings returns the stock kiosk delays
func DefaultTimings() Timings {
	return Timings{
		Inactivity:     30 * time.Second,
		SuccessDismiss: 10 * time.Second,
		TapWindow:      500 * time.Millisecond,
		ScanStep:       1000 * time.Millisecond,
		ScanSettle:     500 * time.Millisecond,
		ResultSettle:   50 * time.Millisecond,
	}
}

// withDefaults fills zero fields from DefaultTimings
func (t Timings) withDefaults() Timings {
	d := DefaultTimings()
	if t.Inactivity <= 0 {
		t.Inactivity = d.Inactivity
	}
	if t.SuccessDismiss <= 0 {
		t.SuccessDismiss = d.SuccessDismiss
	}
	if t.TapWindow <= 0 {
		t.TapWindow = d.TapWindow
	}
	if t.ScanStep <= 0 {
		t.ScanStep = d.ScanStep
	}
	if t.ScanSettle <= 0 {
		t.ScanSettle = d.ScanSettle
	}
	if t.ResultSettle <= 0 {
		t.ResultSettle = d.ResultSettle
	}
	return t
}

// Config wires a Controller. Only Store is required. With no AdminPIN the
// admin actions stay locked.
type Config struct {
	Store    store.StatsRepository
	Source   scan.Source
	Clock    clock.Clock
	Events   event.Publisher
	Logger   *slog.Logger
	AdminPIN string
	Timings  Timings
}

// Controller is the kiosk screen state machine. Events and timer callbacks
// are serialised on one mutex.
type Controller struct {
	mu sync.Mutex

	store   store.StatsRepository
	src     scan.Source
	clock   clock.Clock
	events  event.Publisher
	logger  *slog.Logger
	pin     string
	timings Timings

	state  models.KioskState
	taps   int
	tasks  map[string]*task
	closed bool
}

// New returns a controller on the welcome screen with its inactivity timer armed
func New(cfg Config) *Controller {
	c := &Controller{
		store:   cfg.Store,
		src:     cfg.Source,
		clock:   cfg.Clock,
		events:  cfg.Events,
		logger:  cfg.Logger,
		pin:     cfg.AdminPIN,
		timings: cfg.Timings.withDefaults(),
		state:   models.KioskState{Screen: models.ScreenWelcome},
		tasks:   make(map[string]*task),
	}
	if c.src == nil {
		c.src = scan.NewSource(rand.Uint64())
	}
	if c.clock == nil {
		c.clock = clock.New()
	}
	if c.events == nil {
		c.events = event.Discard{}
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}

	c.mu.Lock()
	c.armInactivity()
	c.mu.Unlock()

	return c
}

// Snapshot returns a copy of the current state
func (c *Controller) Snapshot() models.KioskState {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.state
	if s.LastResult != nil {
		res := *s.LastResult
		s.LastResult = &res
	}
	return s
}

// Dispatch applies a named event. Unknown names return ErrUnknownEvent;
// events not valid on the current screen return ErrInvalidTransition and
// leave the state untouched.
func (c *Controller) Dispatch(ctx context.Context, name string) error {
	switch name {
	case EventStart:
		return c.Start()
	case EventContinue:
		return c.Continue()
	case EventInsert:
		return c.InsertBallot()
	case EventCancel:
		return c.Cancel()
	case EventFinish:
		return c.Finish()
	case EventRetry:
		return c.Retry(ctx)
	case EventNewBallot:
		return c.NewBallot()
	case EventAccept:
		return c.Accept()
	case EventTap:
		return c.Tap()
	case EventCloseAdmin:
		return c.CloseAdmin()
	case EventForceSuccess:
		return c.Force(models.ForceSuccess)
	case EventForceError:
		return c.Force(models.ForceError)
	case EventResetStats:
		return c.ResetStats(ctx)
	case EventCallHelp:
		return c.CallHelp()
	case EventCallCommission:
		return c.CallCommission()
	}
	return fmt.Errorf("%w: %q", ErrUnknownEvent, name)
}

// Start moves from welcome to the instructions
func (c *Controller) Start() error {
	return c.move(EventStart, models.ScreenWelcome, models.ScreenInstructions)
}

// Continue moves from the instructions to the scanner
func (c *Controller) Continue() error {
	return c.move(EventContinue, models.ScreenInstructions, models.ScreenScanner)
}

// Cancel abandons the scanner and returns to welcome
func (c *Controller) Cancel() error {
	return c.move(EventCancel, models.ScreenScanner, models.ScreenWelcome)
}

// Finish dismisses a successful scan before its countdown ends
func (c *Controller) Finish() error {
	return c.move(EventFinish, models.ScreenSuccess, models.ScreenWelcome)
}

// NewBallot gives up on an error or invalid ballot and starts over
func (c *Controller) NewBallot() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.check(EventNewBallot, models.ScreenError, models.ScreenInvalid); err != nil {
		return err
	}
	c.enter(models.ScreenWelcome)
	return nil
}

// Accept acknowledges an invalid ballot
func (c *Controller) Accept() error {
	return c.move(EventAccept, models.ScreenInvalid, models.ScreenWelcome)
}

// InsertBallot starts the simulated scan
func (c *Controller) InsertBallot() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.check(EventInsert, models.ScreenScanner); err != nil {
		return err
	}

	c.state.Progress = 0
	c.state.ScanStep = 0
	c.enter(models.ScreenScanning)
	c.nextScanStep()
	return nil
}

// Retry counts a retry and sends the voter back to the scanner. A failed
// store update is logged; the voter is not held up by it.
func (c *Controller) Retry(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.check(EventRetry, models.ScreenError); err != nil {
		return err
	}

	now := c.clock.Now().UTC()
	if _, err := c.store.ApplyStats(ctx, func(cur models.VotingStats) models.VotingStats {
		return stats.Retry(cur, now)
	}); err != nil {
		c.logger.Error("failed to record retry", "error", err)
	}

	c.enter(models.ScreenScanner)
	return nil
}

// Tap registers one tap on the admin hotspot. The third tap inside the tap
// window opens the admin panel.
func (c *Controller) Tap() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}

	c.taps++
	if c.taps >= tapsToOpen {
		c.taps = 0
		if !c.state.AdminPanelOpen {
			c.state.AdminPanelOpen = true
			c.logger.Info("admin panel opened", "screen", string(c.state.Screen))
			c.publish(event.AdminOpen{Screen: string(c.state.Screen)})
		}
	}

	c.schedule(taskTap, c.timings.TapWindow, func() {
		c.taps = 0
	})
	return nil
}

// CloseAdmin hides the admin panel
func (c *Controller) CloseAdmin() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}
	if !c.state.AdminPanelOpen {
		return fmt.Errorf("%w: %s with admin panel closed", ErrInvalidTransition, EventCloseAdmin)
	}
	c.closeAdmin()
	return nil
}

// Authenticate unlocks the admin actions of the open panel. A wrong PIN
// leaves them locked; see auth.ValidatePIN for the errors.
func (c *Controller) Authenticate(pin string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}
	if !c.state.AdminPanelOpen {
		return fmt.Errorf("%w: admin auth with admin panel closed", ErrInvalidTransition)
	}
	if c.pin == "" {
		return auth.ErrInvalidPIN
	}
	if err := auth.ValidatePIN(pin, c.pin); err != nil {
		return err
	}

	c.state.AdminAuthenticated = true
	c.logger.Info("admin panel unlocked", "screen", string(c.state.Screen))
	c.publish(event.AdminUnlock{Screen: string(c.state.Screen)})
	return nil
}

// Force sets the outcome of the next scan, closes the admin panel and
// brings the kiosk to the scanner. Not allowed while a scan is running.
func (c *Controller) Force(outcome models.ForcedOutcome) error {
	var name string
	switch outcome {
	case models.ForceSuccess:
		name = EventForceSuccess
	case models.ForceError:
		name = EventForceError
	default:
		return fmt.Errorf("%w: force %q", ErrUnknownEvent, outcome)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.checkAdmin(name); err != nil {
		return err
	}
	if c.state.Screen == models.ScreenScanning {
		return fmt.Errorf("%w: %s during scan", ErrInvalidTransition, name)
	}

	c.state.ForcedOutcome = outcome
	c.closeAdmin()
	c.logger.Info("next scan forced", "outcome", string(outcome))
	c.enter(models.ScreenScanner)
	return nil
}

// ResetStats zeroes the statistics from the admin panel
func (c *Controller) ResetStats(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.checkAdmin(EventResetStats); err != nil {
		return err
	}

	st, err := c.store.ResetStats(ctx)
	if err != nil {
		return fmt.Errorf("failed to reset stats: %w", err)
	}
	c.logger.Info("stats reset", "id", st.ID)
	c.publish(event.Reset{StatsID: st.ID})
	return nil
}

// CallHelp asks poll workers to come to the kiosk after a scan error
func (c *Controller) CallHelp() error {
	return c.callFor(EventCallHelp, models.ScreenError)
}

// CallCommission asks the election commission to review an invalid ballot
func (c *Controller) CallCommission() error {
	return c.callFor(EventCallCommission, models.ScreenInvalid)
}

// Close stops every pending timer. Events after Close return ErrClosed.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cancelAll()
	c.closed = true
}

func (c *Controller) callFor(name string, on models.Screen) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.check(name, on); err != nil {
		return err
	}
	c.logger.Info("assistance requested", "event", name, "screen", string(on))
	c.publish(event.HelpRequest{Event: name, Screen: string(on)})
	return nil
}

// move is a plain from -> to transition
func (c *Controller) move(name string, from, to models.Screen) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.check(name, from); err != nil {
		return err
	}
	c.enter(to)
	return nil
}

// check fails unless the current screen is one of allowed
func (c *Controller) check(name string, allowed ...models.Screen) error {
	if c.closed {
		return ErrClosed
	}
	for _, s := range allowed {
		if c.state.Screen == s {
			return nil
		}
	}
	return fmt.Errorf("%w: %s on %s", ErrInvalidTransition, name, c.state.Screen)
}

// checkAdmin fails unless the panel is open and unlocked by the PIN
func (c *Controller) checkAdmin(name string) error {
	if c.closed {
		return ErrClosed
	}
	if !c.state.AdminPanelOpen {
		return fmt.Errorf("%w: %s with admin panel closed", ErrInvalidTransition, name)
	}
	if !c.state.AdminAuthenticated {
		return fmt.Errorf("%w: %s", ErrAdminLocked, name)
	}
	return nil
}

// closeAdmin hides the panel and drops its authentication
func (c *Controller) closeAdmin() {
	c.state.AdminPanelOpen = false
	c.state.AdminAuthenticated = false
}

// enter switches screens. Tasks owned by the old screen are cancelled, the
// inactivity timer is re-armed on idle screens and disarmed elsewhere.
func (c *Controller) enter(to models.Screen) {
	from := c.state.Screen
	for _, name := range screenTasks[from] {
		c.cancel(name)
	}

	c.state.Screen = to

	switch to {
	case models.ScreenWelcome:
		c.state.LastResult = nil
		c.armInactivity()
	case models.ScreenInstructions, models.ScreenScanner:
		c.armInactivity()
	case models.ScreenSuccess:
		c.cancel(taskInactivity)
		c.schedule(taskDismiss, c.timings.SuccessDismiss, func() {
			c.logger.Debug("success screen timed out")
			c.enter(models.ScreenWelcome)
		})
	default:
		c.cancel(taskInactivity)
	}

	if from != to {
		c.logger.Debug("screen changed", "from", string(from), "to", string(to))
		c.publish(event.ScreenChange{From: string(from), To: string(to)})
	}
}

func (c *Controller) armInactivity() {
	c.schedule(taskInactivity, c.timings.Inactivity, func() {
		c.logger.Info("inactivity reset", "screen", string(c.state.Screen))
		c.cancelAll(taskTap)
		c.enter(models.ScreenWelcome)
	})
}

// nextScanStep schedules the next progress tick, or the settle delay once
// all steps are shown
func (c *Controller) nextScanStep() {
	step := c.state.ScanStep
	if step >= len(progressSteps) {
		c.schedule(taskScan, c.timings.ScanSettle, c.completeScan)
		return
	}

	c.schedule(taskScan, c.timings.ScanStep, func() {
		c.state.Progress = progressSteps[step]
		c.state.ScanStep = step + 1
		c.nextScanStep()
	})
}

func (c *Controller) completeScan() {
	now := c.clock.Now().UTC()
	forced := c.state.ForcedOutcome

	result := scan.Generate(forced, c.src, now)

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	if _, err := c.store.ApplyStats(ctx, func(cur models.VotingStats) models.VotingStats {
		return stats.Apply(cur, result, now)
	}); err != nil {
		c.logger.Error("failed to record scan", "result", result.Result, "error", err)
	}

	c.state.ForcedOutcome = models.ForceNone
	c.state.LastResult = &result

	c.logger.Info("scan completed",
		"result", result.Result,
		"error_type", result.ErrorType,
		"forced", string(forced),
	)
	c.publish(event.ScanOutcome{
		Result:     result.Result,
		ErrorType:  result.ErrorType,
		Forced:     string(forced),
		Source:     event.SourceKiosk,
		DurationMs: result.ProcessingTimeMs,
	})

	c.schedule(taskScan, c.timings.ResultSettle, func() {
		c.enter(result.Screen())
	})
}

func (c *Controller) publish(p event.Payload) {
	c.events.Publish(event.New(c.clock.Now().UTC(), p))
}

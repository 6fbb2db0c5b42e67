// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package event

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// Handler processes one event
type Handler func(Event)

// Publisher is the sending side of a Bus
type Publisher interface {
	Publish(e Event)
}

// Bus fans kiosk events out to subscribers on a single goroutine, in
// publish order. Publishing never blocks the screen controller: a full
// buffer drops the event and counts it.
type Bus struct {
	ch      chan Event
	mu      sync.RWMutex
	subs    map[Type][]Handler
	logger  *slog.Logger
	done    chan struct{}
	stopped bool
	dropped atomic.Uint64
}

// NewBus creates a bus with the given buffer size (256 when <= 0)
func NewBus(logger *slog.Logger, bufSize int) *Bus {
	if bufSize <= 0 {
		bufSize = 256
	}
	return &Bus{
		ch:     make(chan Event, bufSize),
		subs:   make(map[Type][]Handler),
		logger: logger,
		done:   make(chan struct{}),
	}
}

// Subscribe registers a handler for an event type
func (b *Bus) Subscribe(t Type, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs[t] = append(b.subs[t], h)
}

// On subscribes fn to the events carrying payload type P
func On[P Payload](b *Bus, fn func(Event, P)) {
	var zero P
	b.Subscribe(zero.EventType(), func(e Event) {
		if p, ok := e.Data.(P); ok {
			fn(e, p)
		}
	})
}

// Publish queues e for the subscribers. Events whose payload does not match
// their type are refused.
func (b *Bus) Publish(e Event) {
	if e.Data == nil || e.Data.EventType() != e.Type {
		b.logger.Error("refusing malformed event", "type", string(e.Type))
		return
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
	select {
	case b.ch <- e:
	default:
		b.dropped.Add(1)
		b.logger.Warn("event bus full, dropping event", "type", string(e.Type))
	}
}

// Dropped reports how many events a full buffer has discarded
func (b *Bus) Dropped() uint64 {
	return b.dropped.Load()
}

// Start dispatches events until Stop is called. Run it in a goroutine.
func (b *Bus) Start() {
	for {
		select {
		case e := <-b.ch:
			b.dispatch(e)
		case <-b.done:
			b.drain()
			return
		}
	}
}

// drain delivers whatever was queued before Stop
func (b *Bus) drain() {
	for {
		select {
		case e := <-b.ch:
			b.dispatch(e)
		default:
			return
		}
	}
}

// Stop drains the buffer and ends Start. Safe to call twice.
func (b *Bus) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.stopped {
		b.stopped = true
		close(b.done)
	}
}

func (b *Bus) dispatch(e Event) {
	b.mu.RLock()
	handlers := b.subs[e.Type]
	b.mu.RUnlock()

	for _, h := range handlers {
		b.deliver(h, e)
	}
}

// deliver runs one handler; a panicking subscriber is logged and skipped
func (b *Bus) deliver(h Handler, e Event) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("event handler panicked", "type", string(e.Type), "panic", r)
		}
	}()
	h(e)
}

// Discard is a Publisher that drops everything
type Discard struct{}

func (Discard) Publish(Event) {}

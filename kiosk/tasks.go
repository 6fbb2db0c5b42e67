// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package kiosk

import (
	"time"

	"github.com/benbjohnson/clock"

	"github.com/danielhkuo/ballot-kiosk/models"
)

// Task names. A name holds at most one pending timer.
const (
	taskInactivity = "inactivity"
	taskTap        = "tap"
	taskScan       = "scan"
	taskDismiss    = "success-dismiss"
)

// screenTasks lists the tasks owned by a screen; leaving it cancels them
var screenTasks = map[models.Screen][]string{
	models.ScreenScanning: {taskScan},
	models.ScreenSuccess:  {taskDismiss},
}

type task struct {
	timer *clock.Timer
}

// schedule arms fn to run after d under name, replacing whatever was pending
// there. fn runs with c.mu held and only if the task is still the current
// one for its name.
func (c *Controller) schedule(name string, d time.Duration, fn func()) {
	c.cancel(name)

	t := &task{}
	c.tasks[name] = t
	t.timer = c.clock.AfterFunc(d, func() {
		c.mu.Lock()
		defer c.mu.Unlock()

		if c.closed || c.tasks[name] != t {
			return
		}
		delete(c.tasks, name)
		fn()
	})
}

func (c *Controller) cancel(name string) {
	if t, ok := c.tasks[name]; ok {
		t.timer.Stop()
		delete(c.tasks, name)
	}
}

// cancelAll stops every pending task except the named ones
func (c *Controller) cancelAll(keep ...string) {
	for name := range c.tasks {
		kept := false
		for _, k := range keep {
			if name == k {
				kept = true
				break
			}
		}
		if !kept {
			c.cancel(name)
		}
	}
}

// pendingTask reports whether a timer is armed under name
func (c *Controller) pendingTask(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.tasks[name]
	return ok
}

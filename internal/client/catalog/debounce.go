package catalog

import (
	"sync"
	"time"
)

// Debouncer propagates rapid text input on the trailing edge: every call to
// Input echoes immediately, but the fire callback runs only after a quiet
// period with no further input, and only with the final value. At most one
// timer is pending per instance.
type Debouncer struct {
	mu      sync.Mutex
	quiet   time.Duration
	timer   *time.Timer
	stopped bool
	echo    func(string)
	fire    func(string)
}

// NewDebouncer builds a debouncer with the given quiet period. echo may be
// nil; fire must not be.
func NewDebouncer(quiet time.Duration, echo, fire func(string)) *Debouncer {
	return &Debouncer{quiet: quiet, echo: echo, fire: fire}
}

// Input accepts a keystroke-level value. The echo callback runs synchronously
// so the visible field updates with zero delay; the pending fire timer, if
// any, restarts.
func (d *Debouncer) Input(text string) {
	if d.echo != nil {
		d.echo(text)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.quiet, func() {
		d.mu.Lock()
		if d.stopped {
			d.mu.Unlock()
			return
		}
		d.timer = nil
		d.mu.Unlock()
		d.fire(text)
	})
}

// Stop cancels any pending fire. A canceled timer has no side effect and the
// debouncer accepts no further input.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Pending reports whether a fire is currently scheduled.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

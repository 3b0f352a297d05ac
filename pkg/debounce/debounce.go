// Package debounce coalesces bursts of work into one execution after a
// quiescence window. Profile editors use it so a run of edits produces a
// single sync write rather than one per keystroke.
package debounce

import (
	"sync"
	"time"
)

// DefaultWindow matches the profile editor's save coalescing.
const DefaultWindow = 500 * time.Millisecond

// Debouncer runs the most recent function once no Trigger has arrived for
// a full window. Zero value is not usable; call New.
type Debouncer struct {
	mu     sync.Mutex
	window time.Duration
	timer  *time.Timer
	fn     func()
}

func New(window time.Duration) *Debouncer {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Debouncer{window: window}
}

// Trigger schedules fn to run after the quiescence window, replacing any
// previously scheduled function. fn runs on a timer goroutine.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.fn = fn
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, func() {
		d.mu.Lock()
		run := d.fn
		d.fn = nil
		d.mu.Unlock()
		if run != nil {
			run()
		}
	})
}

// Flush runs any pending function immediately and cancels the timer.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
	}
	run := d.fn
	d.fn = nil
	d.mu.Unlock()
	if run != nil {
		run()
	}
}

// Stop cancels any pending execution without running it.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.fn = nil
}

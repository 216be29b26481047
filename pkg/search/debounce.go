package search

import (
	"sync"
	"time"
)

// DefaultDebounce is the quiet period before a typed query is searched.
const DefaultDebounce = 300 * time.Millisecond

// Debouncer delays a function call until input pauses. At most one timer is
// pending at a time; each Trigger cancels and restarts it.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
}

// NewDebouncer returns a debouncer with the given quiet period. A
// non-positive delay falls back to DefaultDebounce.
func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Debouncer{delay: delay}
}

// Trigger schedules fn after the quiet period, cancelling any pending call.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// Flush cancels any pending call and runs fn immediately, for explicit
// submission.
func (d *Debouncer) Flush(fn func()) {
	d.Cancel()
	fn()
}

// Cancel stops any pending call.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

package projection

import (
	"sync"
	"time"
)

const DefaultSearchDebounce = 250 * time.Millisecond

// Debouncer is a trailing-edge debouncer driven by explicit timestamps. A
// value becomes visible once it has gone unchanged for the full quiet
// period; each Set restarts the period.
type Debouncer struct {
	mu        sync.Mutex
	delay     time.Duration
	settled   string
	pending   string
	pendingAt time.Time
	hasPend   bool
}

func NewDebouncer(initial string, delay time.Duration) *Debouncer {
	if delay < 0 {
		delay = 0
	}
	return &Debouncer{delay: delay, settled: initial}
}

func (d *Debouncer) Delay() time.Duration {
	return d.delay
}

func (d *Debouncer) Set(text string, now time.Time) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.settleLocked(now)
	d.pending = text
	d.pendingAt = now
	d.hasPend = true
}

// Value returns the last settled value as of now.
func (d *Debouncer) Value(now time.Time) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.settleLocked(now)
	return d.settled
}

// Pending reports whether a newer value is still waiting out the period.
func (d *Debouncer) Pending(now time.Time) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.settleLocked(now)
	return d.hasPend
}

func (d *Debouncer) settleLocked(now time.Time) {
	if !d.hasPend {
		return
	}
	if now.Sub(d.pendingAt) >= d.delay {
		d.settled = d.pending
		d.hasPend = false
	}
}

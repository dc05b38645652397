package application

import (
	"sync"
	"time"
)

// IdleTimer is a single-shot, cancellable deadline scheduler. At most one
// timer is pending at a time: arming replaces any prior timer
// (cancel-then-arm, last write wins). Cancel is safe to call from any
// component at any time, with or without a pending timer.
type IdleTimer struct {
	mu       sync.Mutex
	timer    *time.Timer
	armed    bool
	gen      uint64
	deadline time.Time
}

// NewIdleTimer creates a new, unarmed IdleTimer.
func NewIdleTimer() *IdleTimer {
	return &IdleTimer{}
}

// Arm cancels any pending timer and schedules onExpire to run once after d.
func (t *IdleTimer) Arm(d time.Duration, onExpire func()) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stopLocked()
	t.gen++
	gen := t.gen
	t.armed = true
	t.deadline = time.Now().Add(d)
	t.timer = time.AfterFunc(d, func() {
		t.mu.Lock()
		// A replacement or cancel may have raced the firing callback.
		if t.gen != gen || !t.armed {
			t.mu.Unlock()
			return
		}
		t.armed = false
		t.mu.Unlock()
		onExpire()
	})
}

// Cancel invalidates any pending timer. A no-op when none is pending.
func (t *IdleTimer) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopLocked()
}

// Armed returns true if a timer is pending.
func (t *IdleTimer) Armed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.armed
}

// Deadline returns the pending timer's deadline and whether one is pending.
func (t *IdleTimer) Deadline() (time.Time, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.deadline, t.armed
}

func (t *IdleTimer) stopLocked() {
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.armed = false
	t.gen++
}

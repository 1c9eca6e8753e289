// Package deferred provides a frame-stepped, cancellable one-shot task.
//
// The frame driver advances tasks with the same delta it feeds everything
// else, so a scheduled callback fires on the first frame after its delay has
// elapsed and never runs concurrently with the game loop.
package deferred

import "time"

// Task runs a callback once after a delay. At most one callback is pending;
// scheduling again replaces the previous one.
type Task struct {
	fn        func()
	remaining time.Duration
	pending   bool
}

// Schedule arms the task to run fn after delay. Any pending callback is dropped.
func (t *Task) Schedule(delay time.Duration, fn func()) {
	if delay < 0 {
		delay = 0
	}
	t.fn = fn
	t.remaining = delay
	t.pending = fn != nil
}

// Cancel drops the pending callback, if any.
func (t *Task) Cancel() {
	t.fn = nil
	t.remaining = 0
	t.pending = false
}

// Pending reports whether a callback is waiting to fire.
func (t *Task) Pending() bool {
	return t.pending
}

// Remaining returns the time left before the pending callback fires.
func (t *Task) Remaining() time.Duration {
	if !t.pending {
		return 0
	}
	return t.remaining
}

// Advance moves the task forward by dt and fires the callback once the delay
// has elapsed. Returns true if the callback ran.
func (t *Task) Advance(dt time.Duration) bool {
	if !t.pending {
		return false
	}
	t.remaining -= dt
	if t.remaining > 0 {
		return false
	}

	// Disarm before running so the callback may schedule again.
	fn := t.fn
	t.Cancel()
	fn()
	return true
}

package debounce

import "time"

// Timer is a single-shot, restartable quiet-period timer. Every schedule gets
// a new sequence number; a fire carrying an older number is stale.
//
// Restart, Cancel and Current must be called from the owning goroutine. The
// fire callback runs on whatever goroutine the Clock uses and must only
// hand the sequence number back to the owner.
type Timer struct {
	clock    Clock
	interval time.Duration
	fire     func(seq uint64)
	seq      uint64
	pending  Stopper
}

func NewTimer(clock Clock, interval time.Duration, fire func(seq uint64)) *Timer {
	if clock == nil {
		clock = SystemClock()
	}
	return &Timer{clock: clock, interval: interval, fire: fire}
}

// Restart cancels any pending fire and schedules a new one.
func (t *Timer) Restart() uint64 {
	t.Cancel()
	seq := t.seq
	t.pending = t.clock.AfterFunc(t.interval, func() { t.fire(seq) })
	return seq
}

// Cancel stops the pending fire, if any, and invalidates its sequence number
// even when the callback already started.
func (t *Timer) Cancel() {
	if t.pending != nil {
		t.pending.Stop()
		t.pending = nil
	}
	t.seq++
}

// Current reports whether seq belongs to the schedule that is still armed.
func (t *Timer) Current(seq uint64) bool {
	return t.pending != nil && seq == t.seq
}

// Expire disarms the timer after its current fire has been consumed.
func (t *Timer) Expire(seq uint64) bool {
	if !t.Current(seq) {
		return false
	}
	t.pending = nil
	t.seq++
	return true
}

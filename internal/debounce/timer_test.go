package debounce

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimerFiresAfterQuietInterval(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	var fired []uint64
	timer := NewTimer(clock, 300*time.Millisecond, func(seq uint64) { fired = append(fired, seq) })

	seq := timer.Restart()
	clock.Advance(299 * time.Millisecond)
	assert.Empty(t, fired)

	clock.Advance(time.Millisecond)
	require.Equal(t, []uint64{seq}, fired)
	assert.True(t, timer.Current(seq))
	assert.True(t, timer.Expire(seq))
	assert.False(t, timer.Current(seq))
	assert.False(t, timer.Expire(seq))
}

func TestTimerRestartReschedules(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	var fired []uint64
	timer := NewTimer(clock, 300*time.Millisecond, func(seq uint64) { fired = append(fired, seq) })

	first := timer.Restart()
	clock.Advance(200 * time.Millisecond)
	second := timer.Restart()
	clock.Advance(200 * time.Millisecond)
	assert.Empty(t, fired, "restart must push the deadline out")

	clock.Advance(100 * time.Millisecond)
	require.Equal(t, []uint64{second}, fired)
	assert.False(t, timer.Current(first))
	assert.True(t, timer.Current(second))
	assert.Equal(t, 0, clock.Pending())
}

func TestTimerCancelInvalidatesInFlightFire(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	var fired []uint64
	timer := NewTimer(clock, 300*time.Millisecond, func(seq uint64) { fired = append(fired, seq) })

	seq := timer.Restart()
	timer.Cancel()
	clock.Advance(time.Second)
	assert.Empty(t, fired)
	assert.False(t, timer.Current(seq))

	// A fire that was already delivered before Cancel is still stale.
	seq = timer.Restart()
	clock.Advance(time.Second)
	require.Len(t, fired, 1)
	timer.Cancel()
	assert.False(t, timer.Current(seq))
}

func TestSystemClockAfterFunc(t *testing.T) {
	done := make(chan uint64, 1)
	timer := NewTimer(nil, 10*time.Millisecond, func(seq uint64) { done <- seq })
	seq := timer.Restart()

	select {
	case got := <-done:
		assert.Equal(t, seq, got)
	case <-time.After(2 * time.Second):
		t.Fatal("timer never fired")
	}
}

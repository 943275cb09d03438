package sequence

import "fmt"

// Timer accumulates elapsed seconds against a timeout. A zero timeout is always
// expired.
type Timer struct {
	elapsed float64
	timeout float64
}

// NewTimer panics on a negative timeout.
func NewTimer(timeout float64) *Timer {
	checkNonNegative("timeout", timeout)
	return &Timer{timeout: timeout}
}

// Advance adds dt seconds. dt must not be negative.
func (t *Timer) Advance(dt float64) {
	checkNonNegative("dt", dt)
	t.elapsed += dt
}

// Expired reports whether elapsed has reached the timeout. With relaunch set, an
// expired timer starts over, so each expiry is reported once.
func (t *Timer) Expired(relaunch bool) bool {
	if t.elapsed < t.timeout {
		return false
	}
	if relaunch {
		t.elapsed = 0
	}
	return true
}

// Reset zeroes elapsed time and keeps the timeout.
func (t *Timer) Reset() { t.elapsed = 0 }

// ResetTo zeroes elapsed time and replaces the timeout.
func (t *Timer) ResetTo(timeout float64) {
	checkNonNegative("timeout", timeout)
	t.elapsed = 0
	t.timeout = timeout
}

func (t *Timer) Elapsed() float64 { return t.elapsed }
func (t *Timer) Timeout() float64 { return t.timeout }

// Progress is elapsed/timeout clamped to [0,1]; a zero timeout is complete.
func (t *Timer) Progress() float64 {
	if t.timeout <= 0 {
		return 1
	}
	return clamp01(t.elapsed / t.timeout)
}

func checkNonNegative(what string, v float64) {
	if v < 0 {
		panic(fmt.Sprintf("sequence: negative %s %v", what, v))
	}
}

package ecs

// Timer is a one-shot countdown measured in seconds
type Timer struct {
	Duration float64
	Elapsed  float64
}

// NewTimer returns a timer that starts counting from zero
func NewTimer(duration float64) Timer {
	return Timer{Duration: duration}
}

// NewFinishedTimer returns a timer that has already elapsed
func NewFinishedTimer(duration float64) Timer {
	return Timer{Duration: duration, Elapsed: duration}
}

// Tick advances the timer, clamping at Duration, and returns it for chaining
func (t *Timer) Tick(dt float64) *Timer {
	t.Elapsed += dt
	if t.Elapsed > t.Duration {
		t.Elapsed = t.Duration
	}
	return t
}

// Finished reports whether the full duration has elapsed
func (t Timer) Finished() bool {
	return t.Elapsed >= t.Duration
}

// Reset starts the countdown over
func (t *Timer) Reset() {
	t.Elapsed = 0
}

// Remaining returns the seconds left
func (t Timer) Remaining() float64 {
	return t.Duration - t.Elapsed
}

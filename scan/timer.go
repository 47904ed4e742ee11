package scan

import "time"

// Timer measures scan duration on the monotonic clock.
type Timer struct {
	start time.Time
	end   time.Time
}

// StartTimer starts a new running timer.
func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

// Stop freezes the timer. Stopping an already stopped timer keeps the
// first stop time.
func (t *Timer) Stop() {
	if t.end.IsZero() {
		t.end = time.Now()
	}
}

// Running reports whether the timer has not been stopped yet.
func (t *Timer) Running() bool {
	return t.end.IsZero()
}

// Elapsed returns time since start, frozen once stopped.
func (t *Timer) Elapsed() time.Duration {
	if t.end.IsZero() {
		return time.Since(t.start)
	}
	return t.end.Sub(t.start)
}

// Seconds returns the elapsed time in seconds.
func (t *Timer) Seconds() float64 {
	return t.Elapsed().Seconds()
}

package clock

import "time"

// Frames hands out per-frame durations for a fixed update rate. Each
// duration is derived from the frame count, so any run of `rate` frames sums
// to exactly one second even when time.Second/rate is not a whole number of
// nanoseconds.
type Frames struct {
	rate  int64
	count int64
	last  time.Duration
}

// NewFrames creates a frame clock for rate updates per second. A
// non-positive rate falls back to 60.
func NewFrames(rate int) *Frames {
	if rate <= 0 {
		rate = 60
	}
	return &Frames{rate: int64(rate)}
}

// Next advances one frame and returns its duration.
func (f *Frames) Next() time.Duration {
	f.count++
	now := time.Duration(f.count * int64(time.Second) / f.rate)
	dt := now - f.last
	f.last = now
	return dt
}

// Count returns the number of frames handed out.
func (f *Frames) Count() int64 {
	return f.count
}

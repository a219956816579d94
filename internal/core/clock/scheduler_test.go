package clock

import (
	"testing"
	"time"
)

func TestEveryFiresOncePerInterval(t *testing.T) {
	s := NewScheduler()
	count := 0
	s.Every(time.Second, func() { count++ })

	frames := NewFrames(60)
	for i := 0; i < 60*3; i++ {
		s.Advance(frames.Next())
	}

	if count != 3 {
		t.Errorf("Expected 3 ticks after 3 seconds, got %d", count)
	}
}

func TestAdvanceCatchesUpLongFrames(t *testing.T) {
	s := NewScheduler()
	count := 0
	s.Every(time.Second, func() { count++ })

	s.Advance(2500 * time.Millisecond)
	if count != 2 {
		t.Errorf("Expected 2 ticks, got %d", count)
	}
	s.Advance(500 * time.Millisecond)
	if count != 3 {
		t.Errorf("Expected 3 ticks, got %d", count)
	}
}

func TestCancelPreventsFiring(t *testing.T) {
	s := NewScheduler()
	count := 0
	h := s.Every(time.Second, func() { count++ })

	s.Advance(900 * time.Millisecond)
	h.Cancel()
	s.Advance(5 * time.Second)

	if count != 0 {
		t.Errorf("Expected cancelled interval not to fire, got %d ticks", count)
	}
	if h.Active() {
		t.Error("Expected handle to be inactive after cancel")
	}
	if s.Len() != 0 {
		t.Errorf("Expected empty scheduler, got %d intervals", s.Len())
	}
}

func TestCallbackCanCancelItself(t *testing.T) {
	s := NewScheduler()
	count := 0
	var h Handle
	h = s.Every(time.Second, func() {
		count++
		if count == 2 {
			h.Cancel()
		}
	})

	s.Advance(10 * time.Second)
	if count != 2 {
		t.Errorf("Expected 2 ticks before self-cancel, got %d", count)
	}
}

func TestCallbackCancelsLaterInterval(t *testing.T) {
	s := NewScheduler()
	fired := false
	var second Handle
	s.Every(time.Second, func() { second.Cancel() })
	second = s.Every(time.Second, func() { fired = true })

	s.Advance(time.Second)
	if fired {
		t.Error("Expected interval cancelled in the same Advance not to fire")
	}
}

func TestZeroHandle(t *testing.T) {
	var h Handle
	h.Cancel()
	if h.Active() {
		t.Error("Expected zero handle to be inactive")
	}
}

func TestFramesSumToWholeSeconds(t *testing.T) {
	tests := []struct {
		rate int
	}{
		{60},
		{144},
		{30},
		{7},
	}

	for _, tt := range tests {
		f := NewFrames(tt.rate)
		var total time.Duration
		for i := 0; i < tt.rate*5; i++ {
			total += f.Next()
		}
		if total != 5*time.Second {
			t.Errorf("Expected %d frames at %d/s to sum to 5s, got %v", tt.rate*5, tt.rate, total)
		}
	}
}

func TestIntervalFiresOnExactSecondFrame(t *testing.T) {
	s := NewScheduler()
	count := 0
	s.Every(time.Second, func() { count++ })

	frames := NewFrames(60)
	for i := 0; i < 59; i++ {
		s.Advance(frames.Next())
	}
	if count != 0 {
		t.Errorf("Expected no tick before one second, got %d", count)
	}
	s.Advance(frames.Next())
	if count != 1 {
		t.Errorf("Expected a tick on frame 60, got %d", count)
	}
}
